package syntax

import (
	"fmt"
	"strings"
)

// Decoration is the lexical classification attached to a span. Hosts map it
// onto display styling.
type Decoration uint8

const (
	None Decoration = iota
	Error
	CommentSingleLine
	CommentMultiLine
	StringLiteral
	Keyword
	Function
	PreprocessorDirective
	DeliminationExtended

	decorationCount
)

var decorationNames = [decorationCount]string{
	None:                  "none",
	Error:                 "error",
	CommentSingleLine:     "comment-single-line",
	CommentMultiLine:      "comment-multi-line",
	StringLiteral:         "string-literal",
	Keyword:               "keyword",
	Function:              "function",
	PreprocessorDirective: "preprocessor-directive",
	DeliminationExtended:  "delimination-extended",
}

func (d Decoration) String() string {
	if d < decorationCount {
		return decorationNames[d]
	}
	return fmt.Sprintf("decoration(%d)", uint8(d))
}

// Valid reports whether d is one of the declared decorations.
func (d Decoration) Valid() bool {
	return d < decorationCount
}

// Decorations lists every known decoration in declaration order.
func Decorations() []Decoration {
	out := make([]Decoration, 0, decorationCount)
	for d := None; d < decorationCount; d++ {
		out = append(out, d)
	}
	return out
}

// ParseDecoration accepts the kebab-case name ("string-literal") as well as
// snake_case and CamelCase spellings ("string_literal", "StringLiteral").
func ParseDecoration(s string) (Decoration, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.TrimSpace(s)))
	for d, name := range decorationNames {
		if strings.ReplaceAll(name, "-", "") == key {
			return Decoration(d), nil
		}
	}
	return None, fmt.Errorf("unknown decoration %q", s)
}

func (d Decoration) MarshalText() ([]byte, error) {
	if d >= decorationCount {
		return nil, fmt.Errorf("unknown decoration %d", uint8(d))
	}
	return []byte(d.String()), nil
}

func (d *Decoration) UnmarshalText(text []byte) error {
	parsed, err := ParseDecoration(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
