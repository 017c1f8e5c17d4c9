package lexer

import (
	"hilite/internal/syntax"
)

// ScanCommentSingleLine parses a comment up to, but excluding, the first of
// the configured line endings.
func ScanCommentSingleLine(st *State) (syntax.Node, bool) {
	cur, def := st.Cursor, st.Def
	start := cur.Mark()
	cur.ReadRange(runeLen(def.CommentSingleLineStart))
	for !cur.EOF() {
		if _, ok := cur.PeekForAny(def.CommentSingleLineEndings); ok {
			sp := cur.SpanFrom(start)
			st.settle(sp.End)
			return syntax.NewLeaf(syntax.KindCommentSingleLine, st.Span(sp.Start, sp.End, syntax.CommentSingleLine)), true
		}
		cur.Read()
	}
	if !def.CommentSingleLineEOFTerminates {
		st.reportUnterminated(uint32(start), def.CommentSingleLineStart, "single-line comment")
	}
	sp := cur.SpanFrom(start)
	return syntax.NewLeaf(syntax.KindCommentSingleLine, st.Span(sp.Start, sp.End, syntax.CommentSingleLine)), true
}

// ScanCommentMultiLine parses a block comment; the span includes the end
// marker. The end marker is searched only after the whole start marker, so
// "/*/" does not close itself.
func ScanCommentMultiLine(st *State) (syntax.Node, bool) {
	cur, def := st.Cursor, st.Def
	start := cur.Mark()
	cur.ReadRange(runeLen(def.CommentMultiLineStart))
	for !cur.EOF() {
		if cur.PeekFor(def.CommentMultiLineEnd) {
			cur.ReadRange(runeLen(def.CommentMultiLineEnd))
			sp := cur.SpanFrom(start)
			st.settle(sp.End)
			return syntax.NewLeaf(syntax.KindCommentMultiLine, st.Span(sp.Start, sp.End, syntax.CommentMultiLine)), true
		}
		cur.Read()
	}
	st.reportUnterminated(uint32(start), def.CommentMultiLineStart, "multi-line comment")
	sp := cur.SpanFrom(start)
	return syntax.NewLeaf(syntax.KindCommentMultiLine, st.Span(sp.Start, sp.End, syntax.CommentMultiLine)), true
}
