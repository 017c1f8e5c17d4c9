package langdef

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"hilite/internal/syntax"
)

var (
	// ErrUnknownLanguage is returned when a name or extension maps to no definition.
	ErrUnknownLanguage = errors.New("unknown language")
	// ErrInvalidDefinition wraps every validation failure.
	ErrInvalidDefinition = errors.New("invalid language definition")
)

// DefaultPunctuation is used when a definition leaves Punctuation empty.
// Underscore is deliberately absent: it is an identifier character everywhere.
const DefaultPunctuation = "~`!@#$%^&*()-+={}[]|\\:;\"'<>,.?/"

// Definition describes the surface lexical syntax of one language.
// An empty marker disables the construct it introduces.
type Definition struct {
	Name       string   `toml:"name" msgpack:"name"`
	Aliases    []string `toml:"aliases" msgpack:"aliases"`
	Extensions []string `toml:"extensions" msgpack:"extensions"`

	StringStart  string `toml:"string_start" msgpack:"string_start"`
	StringEnd    string `toml:"string_end" msgpack:"string_end"`
	StringEscape string `toml:"string_escape" msgpack:"string_escape"`

	CommentSingleLineStart   string   `toml:"comment_single_line_start" msgpack:"comment_single_line_start"`
	CommentSingleLineEndings []string `toml:"comment_single_line_endings" msgpack:"comment_single_line_endings"`
	// CommentSingleLineEOFTerminates accepts end of file as a valid end of a
	// single-line comment instead of reporting it.
	CommentSingleLineEOFTerminates bool `toml:"comment_single_line_eof_terminates" msgpack:"comment_single_line_eof_terminates"`

	CommentMultiLineStart string `toml:"comment_multi_line_start" msgpack:"comment_multi_line_start"`
	CommentMultiLineEnd   string `toml:"comment_multi_line_end" msgpack:"comment_multi_line_end"`

	FunctionInvocationStart string `toml:"function_invocation_start" msgpack:"function_invocation_start"`
	FunctionInvocationEnd   string `toml:"function_invocation_end" msgpack:"function_invocation_end"`
	MemberAccessToken       string `toml:"member_access_token" msgpack:"member_access_token"`

	Keywords    []string `toml:"keywords" msgpack:"keywords"`
	Punctuation string   `toml:"punctuation" msgpack:"punctuation"`

	Preprocessor *Preprocessor `toml:"preprocessor" msgpack:"preprocessor"`

	keywords map[string]struct{}
}

// Preprocessor configures directive recognition.
type Preprocessor struct {
	TransitionSubstring          string           `toml:"transition" msgpack:"transition"`
	DeliminationExtendedSyntaxes []ExtendedSyntax `toml:"extended" msgpack:"extended"`
}

// ExtendedSyntax is a delimited region that may follow a directive name,
// e.g. the <stdio.h> of #include.
type ExtendedSyntax struct {
	SyntaxStart string            `toml:"start" msgpack:"start"`
	SyntaxEnd   string            `toml:"end" msgpack:"end"`
	Decoration  syntax.Decoration `toml:"decoration" msgpack:"decoration"`
}

// New validates d and returns a frozen copy with its keyword set built.
func New(d Definition) (*Definition, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	out := d
	out.Name = strings.TrimSpace(d.Name)
	out.Aliases = slices.Clone(d.Aliases)
	out.Extensions = make([]string, 0, len(d.Extensions))
	for _, ext := range d.Extensions {
		out.Extensions = append(out.Extensions, NormalizeExtension(ext))
	}
	out.CommentSingleLineEndings = slices.Clone(d.CommentSingleLineEndings)
	out.Keywords = slices.Clone(d.Keywords)
	if out.Punctuation == "" {
		out.Punctuation = DefaultPunctuation
	}
	if d.Preprocessor != nil {
		pp := *d.Preprocessor
		pp.DeliminationExtendedSyntaxes = slices.Clone(pp.DeliminationExtendedSyntaxes)
		for i := range pp.DeliminationExtendedSyntaxes {
			if pp.DeliminationExtendedSyntaxes[i].Decoration == syntax.None {
				pp.DeliminationExtendedSyntaxes[i].Decoration = syntax.DeliminationExtended
			}
		}
		out.Preprocessor = &pp
	}
	out.keywords = make(map[string]struct{}, len(out.Keywords))
	for _, kw := range out.Keywords {
		out.keywords[kw] = struct{}{}
	}
	return &out, nil
}

// MustNew is New for definitions known to be valid.
func MustNew(d Definition) *Definition {
	out, err := New(d)
	if err != nil {
		panic(err)
	}
	return out
}

// Validate reports every structural problem of d joined into one error.
func (d *Definition) Validate() error {
	var errs []error
	problem := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s: %s", ErrInvalidDefinition, d.displayName(), fmt.Sprintf(format, args...)))
	}
	if strings.TrimSpace(d.Name) == "" {
		problem("missing name")
	}
	if d.StringStart != "" && d.StringEnd == "" {
		problem("string_start without string_end")
	}
	if d.CommentMultiLineStart != "" && d.CommentMultiLineEnd == "" {
		problem("comment_multi_line_start without comment_multi_line_end")
	}
	if d.CommentSingleLineStart != "" {
		if len(d.CommentSingleLineEndings) == 0 {
			problem("comment_single_line_start without endings")
		}
		for _, end := range d.CommentSingleLineEndings {
			if end == "" {
				problem("empty single-line comment ending")
			}
		}
	}
	for _, kw := range d.Keywords {
		if kw == "" {
			problem("empty keyword")
		}
	}
	for _, ext := range d.Extensions {
		if strings.TrimSpace(ext) == "" || ext == "." {
			problem("empty extension")
		}
	}
	if pp := d.Preprocessor; pp != nil {
		if pp.TransitionSubstring == "" {
			problem("preprocessor without transition")
		}
		for i, ext := range pp.DeliminationExtendedSyntaxes {
			if ext.SyntaxStart == "" || ext.SyntaxEnd == "" {
				problem("extended syntax #%d needs start and end", i)
			}
			if !ext.Decoration.Valid() {
				problem("extended syntax #%d has unknown decoration %d", i, uint8(ext.Decoration))
			}
		}
	}
	return errors.Join(errs...)
}

func (d *Definition) displayName() string {
	if name := strings.TrimSpace(d.Name); name != "" {
		return name
	}
	return "<unnamed>"
}

// IsKeyword reports whether word is one of the definition's keywords.
// Matching is exact and case-sensitive.
func (d *Definition) IsKeyword(word string) bool {
	if word == "" {
		return false
	}
	if d.keywords != nil {
		_, ok := d.keywords[word]
		return ok
	}
	return slices.Contains(d.Keywords, word)
}

// IsPunctuation reports whether r terminates a word.
func (d *Definition) IsPunctuation(r rune) bool {
	set := d.Punctuation
	if set == "" {
		set = DefaultPunctuation
	}
	return strings.ContainsRune(set, r)
}

// HasExtension reports whether ext (with or without the leading dot) belongs to d.
func (d *Definition) HasExtension(ext string) bool {
	return slices.Contains(d.Extensions, NormalizeExtension(ext))
}

// Fingerprint identifies the lexical behaviour of d. Two definitions with the
// same fingerprint decorate any text identically.
func (d *Definition) Fingerprint() string {
	data, err := msgpack.Marshal(d)
	if err != nil {
		// definitions contain only strings, bools and small integers
		panic(fmt.Errorf("langdef: fingerprint %s: %w", d.displayName(), err))
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}

// NormalizeExtension lower-cases ext and ensures a leading dot.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
