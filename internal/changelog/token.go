package changelog

import "fmt"

// Kind identifies the type of a token.
type Kind int

const (
	KindEOF         Kind = iota
	KindHash             // #
	KindDash             // -
	KindText             // rest of a line
	KindNewline          // \n
	KindFooterBegin      // [ opening a line after a blank line
)

var kindNames = map[Kind]string{
	KindEOF:         "EOF",
	KindHash:        "HASH",
	KindDash:        "DASH",
	KindText:        "TEXT",
	KindNewline:     "NEWLINE",
	KindFooterBegin: "FOOTER_BEGIN",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText lets token dumps show kind names.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Token is a single lexical unit. Row and Col are 0-based; Col counts runes.
type Token struct {
	Kind  Kind   `json:"kind"`
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Text  string `json:"text"`
	Value any    `json:"value,omitempty"`
}

// Width returns the number of runes the token's text covers, at least 1.
func (t Token) Width() int {
	n := len([]rune(t.Text))
	if n == 0 {
		return 1
	}
	return n
}

func (t Token) String() string {
	return fmt.Sprintf("%d:%d %s %q", t.Row+1, t.Col+1, t.Kind, t.Text)
}
