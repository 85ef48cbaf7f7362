package changelog

import (
	"fmt"
	"strings"
)

const (
	// versionLevel and changesLevel are the heading depths of version and
	// change-type titles.
	versionLevel = 2
	changesLevel = 3
)

var changeTitleHint = func() string {
	quoted := make([]string, len(changeTypeOrder))
	for i, ct := range changeTypeOrder {
		quoted[i] = fmt.Sprintf("%q", string(ct))
	}
	return "Choose from " + strings.Join(quoted, ", ") + "."
}()

// parser walks a token slice with one token of lookahead. All state is local
// to a single Parse call.
type parser struct {
	tokens []Token
	cur    int
	lines  []string
	seen   map[string]span
}

// span locates a range of columns on one row.
type span struct {
	row, start, end int
}

// Parse parses a changelog document. It returns a *ParseError describing the
// first structural problem found; there is no partial result.
func Parse(source string) (*Document, error) {
	p := &parser{
		tokens: Tokenize(source),
		lines:  splitLines(source),
		seen:   make(map[string]span),
	}
	return p.document()
}

func (p *parser) peek() Token {
	return p.tokens[p.cur]
}

func (p *parser) previous() Token {
	return p.tokens[p.cur-1]
}

func (p *parser) hasMore() bool {
	return p.peek().Kind != KindEOF
}

func (p *parser) advance() Token {
	if p.hasMore() {
		p.cur++
	}
	return p.previous()
}

func (p *parser) check(kind Kind) bool {
	return p.hasMore() && p.peek().Kind == kind
}

func (p *parser) match(kinds ...Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

// matchMany consumes a run of kind and returns its length.
func (p *parser) matchMany(kind Kind) int {
	n := 0
	for p.match(kind) {
		n++
	}
	return n
}

// expect consumes the given sequence only if every token matches.
func (p *parser) expect(kinds ...Kind) bool {
	if p.cur+len(kinds) >= len(p.tokens) {
		return false
	}
	for i, k := range kinds {
		if p.tokens[p.cur+i].Kind != k {
			return false
		}
	}
	p.cur += len(kinds)
	return true
}

func (p *parser) checkpoint() int {
	return p.cur
}

func (p *parser) restore(mark int) {
	p.cur = mark
}

func (p *parser) skipNewlines() {
	for p.match(KindNewline) {
	}
}

// text concatenates a run of TEXT and NEWLINE tokens.
func (p *parser) text() string {
	var sb strings.Builder
	for p.match(KindText, KindNewline) {
		sb.WriteString(p.previous().Text)
	}
	return strings.TrimSpace(sb.String())
}

func (p *parser) document() (*Document, error) {
	doc := &Document{}

	p.skipNewlines()
	if p.expect(KindHash, KindText) {
		doc.Title = p.previous().Text
	}

	intro := []string{p.text()}
	for p.match(KindFooterBegin) {
		intro = append(intro, p.text())
	}
	doc.Intro = joinBlocks("\n\n", intro...)

	for p.expect(KindHash, KindHash, KindText) {
		v, err := p.version()
		if err != nil {
			return nil, err
		}
		doc.Versions = append(doc.Versions, v)
	}

	if p.hasMore() {
		tok := p.peek()
		return nil, p.errorAt(ErrUnprocessable, "Unprocessable text",
			span{tok.Row, tok.Col, tok.Col + tok.Width()}, "")
	}

	return doc, nil
}

func (p *parser) version() (Version, error) {
	title := p.previous()
	number, date, numberSpan := splitVersionTitle(title)

	if first, ok := p.seen[number]; ok {
		hint := "Version was first used " + annotate(p.lines, first.row, first.start, first.end)
		return Version{}, p.errorAt(ErrDuplicateVersion, "Duplicate version", numberSpan, hint)
	}
	p.seen[number] = numberSpan

	v := Version{Number: number, Date: date, Changes: make(map[ChangeType]ChangeSection)}
	p.skipNewlines()

	for p.expect(KindHash, KindHash, KindHash, KindText) {
		ct, cs, err := p.changes()
		if err != nil {
			return Version{}, err
		}
		if existing, ok := v.Changes[ct]; ok {
			cs = existing.Merge(cs)
		}
		v.Changes[ct] = cs
	}

	if err := p.detectWrongHeadingLevel(changesLevel, "before changes"); err != nil {
		return Version{}, err
	}

	return v, nil
}

// splitVersionTitle splits "[1.2.0] - 2024-01-01" into number and date and
// returns the columns the number occupies in the title token.
func splitVersionTitle(title Token) (number, date string, loc span) {
	raw := title.Text
	if before, after, found := strings.Cut(raw, " - "); found {
		raw, date = before, strings.TrimSpace(after)
	}
	number = strings.TrimSpace(strings.Trim(strings.TrimSpace(raw), "[]"))

	start := title.Col
	if i := strings.Index(raw, number); i >= 0 && number != "" {
		start += len([]rune(raw[:i]))
	}
	width := len([]rune(number))
	if width == 0 {
		width = len([]rune(raw))
	}
	return number, date, span{title.Row, start, start + width}
}

// detectWrongHeadingLevel looks past the current position for a list that is
// introduced by a heading of the wrong depth, or by no heading at all. The
// cursor is restored when no such list follows.
func (p *parser) detectWrongHeadingLevel(expected int, reason string) error {
	mark := p.checkpoint()

	var first Token
	if p.check(KindHash) {
		first = p.peek()
	}
	level := p.matchMany(KindHash)
	if level == expected {
		p.restore(mark)
		return nil
	}

	var last Token
	if level > 0 {
		last = p.previous()
	}
	p.match(KindText)
	p.skipNewlines()
	if !p.match(KindDash) {
		p.restore(mark)
		return nil
	}

	msg := fmt.Sprintf("Expected a title of H%d %s", expected, reason)
	loc := span{p.previous().Row, p.previous().Col, p.previous().Col + 1}
	if level > 0 {
		msg += fmt.Sprintf(", but found H%d", level)
		loc = span{first.Row, first.Col, last.Col + 1}
	}

	err := p.errorAt(ErrHeadingLevel, msg, loc, "")
	err.ExpectedLevel = expected
	err.FoundLevel = level
	return err
}

func (p *parser) changes() (ChangeType, ChangeSection, error) {
	title := p.previous()
	ct, ok := LookupChangeType(title.Text)
	if !ok {
		return "", ChangeSection{}, p.errorAt(ErrChangeTitle, "Unexpected title for changes",
			span{title.Row, title.Col, title.Col + title.Width()}, changeTitleHint)
	}

	p.skipNewlines()

	var cs ChangeSection
	for p.match(KindDash) {
		level := p.previous().Col / IndentWidth
		cs.Items = append(cs.Items, ListItem{Text: p.text(), Level: level})
	}

	var footers []string
	for p.match(KindFooterBegin) {
		footers = append(footers, p.text())
	}
	cs.Footer = joinBlocks("\n", footers...)

	return ct, cs, nil
}

func (p *parser) errorAt(kind ErrorKind, msg string, loc span, hint string) *ParseError {
	return &ParseError{
		Kind:     kind,
		Message:  msg,
		Row:      loc.row,
		ColStart: loc.start,
		ColEnd:   loc.end,
		Hint:     hint,
		Excerpt:  msg + " " + annotate(p.lines, loc.row, loc.start, loc.end),
	}
}
