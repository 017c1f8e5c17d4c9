package lexer

import (
	"hilite/internal/syntax"
)

// ProbeKeyword classifies the word under the cursor. The cursor may stand
// anywhere inside the word: the probe walks back to its start (never past
// st.Floor), reads it whole and looks it up. On a hit the cursor is left on
// the last rune of the word; on a miss it is restored to the entry position.
func ProbeKeyword(st *State) (syntax.Node, bool) {
	cur := st.Cursor
	entry := cur.Mark()

	for cur.Pos() > st.Floor && !st.IsWordBreak(cur.Prev()) {
		cur.Backtrack()
	}
	word, sp := cur.ReadWord(st.IsWordBreak)
	if word == "" || !st.Def.IsKeyword(word) {
		if sp.End > st.kwMissEnd {
			st.kwMissEnd = sp.End
		}
		cur.Reset(entry)
		return syntax.Node{}, false
	}

	st.settle(sp.End)
	return syntax.NewLeaf(syntax.KindKeyword, st.Span(sp.Start, sp.End, syntax.Keyword)), true
}
