package changelog

import (
	"strings"
	"unicode"
)

// tokenizer scans source runes into tokens. It holds all cursor state so
// independent documents can be tokenized concurrently.
type tokenizer struct {
	src    []rune
	pos    int
	row    int
	col    int
	tokens []Token

	lineBlank     bool // no token emitted on the current line yet
	prevLineBlank bool
}

// Tokenize splits source into tokens. It never fails: anything that is not a
// heading marker, list marker or newline becomes TEXT. The result always ends
// with an EOF token.
func Tokenize(source string) []Token {
	t := &tokenizer{src: []rune(source), lineBlank: true}
	t.run()
	return t.tokens
}

func (t *tokenizer) run() {
	for t.pos < len(t.src) {
		r := t.src[t.pos]
		switch {
		case r == '#':
			t.emitRune(KindHash, r)
		case r == '-':
			t.emitRune(KindDash, r)
		case r == '\n':
			t.emit(KindNewline, "\n", t.col)
			t.pos++
			t.row++
			t.col = 0
			t.prevLineBlank = t.lineBlank
			t.lineBlank = true
		case unicode.IsSpace(r):
			t.pos++
			t.col++
		default:
			if r == '[' && t.opensFooter() {
				t.emit(KindFooterBegin, "[", t.col)
			}
			t.scanText()
		}
	}
	t.tokens = append(t.tokens, Token{Kind: KindEOF, Row: t.row, Col: t.col})
}

// opensFooter reports whether the cursor is at column 0 of a line that
// follows a blank line.
func (t *tokenizer) opensFooter() bool {
	return t.col == 0 && t.row > 0 && t.prevLineBlank
}

func (t *tokenizer) emitRune(kind Kind, r rune) {
	t.emit(kind, string(r), t.col)
	t.pos++
	t.col++
}

func (t *tokenizer) emit(kind Kind, text string, col int) {
	if kind != KindNewline {
		t.lineBlank = false
	}
	t.tokens = append(t.tokens, Token{Kind: kind, Row: t.row, Col: col, Text: text})
}

// scanText consumes up to the end of the line.
func (t *tokenizer) scanText() {
	start, startCol := t.pos, t.col
	for t.pos < len(t.src) && t.src[t.pos] != '\n' {
		t.pos++
		t.col++
	}
	if text := strings.TrimSpace(string(t.src[start:t.pos])); text != "" {
		t.emit(KindText, text, startCol)
	}
}
