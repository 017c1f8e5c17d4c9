package lexer

import (
	"unicode"

	"hilite/internal/syntax"
)

// ProbeFunction looks backwards from an invocation marker for the callee
// name. Blanks between the name and the marker are skipped; the name ends at
// whitespace, punctuation, the member access token or an invocation end
// marker. The span covers exactly the name. The cursor is always restored:
// the marker itself is left for the main loop.
func ProbeFunction(st *State) (syntax.Node, bool) {
	cur, def := st.Cursor, st.Def
	entry := cur.Mark()
	defer cur.Reset(entry)

	for cur.Pos() > st.Floor && isWhitespace(cur.Prev()) {
		cur.Backtrack()
	}
	end := cur.Pos()
	for cur.Pos() > st.Floor {
		r := cur.Prev()
		if isWhitespace(r) || def.IsPunctuation(r) ||
			cur.PeekBehind(def.MemberAccessToken) || cur.PeekBehind(def.FunctionInvocationEnd) {
			break
		}
		cur.Backtrack()
	}
	start := cur.Pos()

	if start == end || unicode.IsDigit(cur.Current()) {
		return syntax.Node{}, false
	}
	return syntax.NewLeaf(syntax.KindFunctionIdentifier, st.Span(start, end, syntax.Function)), true
}
