package lexer

import (
	"fortio.org/safecast"

	"hilite/internal/diag"
	"hilite/internal/langdef"
	"hilite/internal/source"
	"hilite/internal/syntax"
)

// ScanFunc parses one construct starting at st.Cursor. A scanner that
// matches returns the node and leaves the cursor on the last rune it
// consumed; a probe that does not match returns false and must leave the
// cursor exactly where it found it.
type ScanFunc func(st *State) (syntax.Node, bool)

// Hooks lets a language replace individual construct parsers. Nil fields
// fall back to the exported defaults, which overrides may call themselves.
type Hooks struct {
	String            ScanFunc
	CommentSingleLine ScanFunc
	CommentMultiLine  ScanFunc
	Keyword           ScanFunc
	Function          ScanFunc
	Preprocessor      ScanFunc
}

func (h Hooks) withDefaults() Hooks {
	if h.String == nil {
		h.String = ScanString
	}
	if h.CommentSingleLine == nil {
		h.CommentSingleLine = ScanCommentSingleLine
	}
	if h.CommentMultiLine == nil {
		h.CommentMultiLine = ScanCommentMultiLine
	}
	if h.Keyword == nil {
		h.Keyword = ProbeKeyword
	}
	if h.Function == nil {
		h.Function = ProbeFunction
	}
	if h.Preprocessor == nil {
		h.Preprocessor = ScanPreprocessor
	}
	return h
}

type Options struct {
	Hooks Hooks
	// Reporter additionally receives every diagnostic; может быть nil.
	Reporter diag.Reporter
}

// State is the per-parse context handed to construct parsers.
type State struct {
	Cursor   *Cursor
	Def      *langdef.Definition
	Reporter diag.Reporter
	// Floor is the end of the last emitted node. Backward walks never cross it.
	Floor uint32

	// end of the last word the default keyword probe rejected
	kwMissEnd uint32
}

// File returns the file being parsed.
func (st *State) File() *source.File {
	return st.Cursor.File
}

// Span builds a decorated span over the parsed file.
func (st *State) Span(start, end uint32, dec syntax.Decoration) syntax.TextSpan {
	return syntax.NewTextSpan(st.Cursor.File, start, end, dec)
}

// IsWordBreak reports whether r ends a word: whitespace, punctuation or EOF.
func (st *State) IsWordBreak(r rune) bool {
	return r == EOFRune || isWhitespace(r) || st.Def.IsPunctuation(r)
}

// settle leaves the cursor on the last consumed rune given the exclusive end
// of what was consumed. At end of text the cursor stays at the end.
func (st *State) settle(end uint32) {
	cur := st.Cursor
	if end >= cur.limit() {
		cur.Off = cur.limit()
		return
	}
	if end > 0 {
		cur.Off = end - 1
	}
}

func (st *State) reportUnterminated(start uint32, opener, what string) {
	f := st.Cursor.File
	primary := source.Span{File: f.ID, Start: start, End: st.Cursor.limit()}
	openLen, err := safecast.Conv[uint32](runeLen(opener))
	if err != nil {
		openLen = 0
	}
	openSpan := source.Span{File: f.ID, Start: start, End: start + openLen}.Clamp(primary.End)
	diag.ReportError(st.Reporter, diag.LexEndOfFileUnexpected, primary, "unterminated "+what).
		WithNote(openSpan, "opened here").
		Emit()
}
