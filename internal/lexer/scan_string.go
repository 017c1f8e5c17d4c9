package lexer

import (
	"hilite/internal/syntax"
)

// ScanString parses a string literal opened at the cursor. The span includes
// both delimiters. An escape marker consumes itself and the following rune,
// so an escaped end marker does not close the literal. When the escape and
// the end marker are the same ('' in SQL), only a doubled marker escapes.
func ScanString(st *State) (syntax.Node, bool) {
	cur, def := st.Cursor, st.Def
	start := cur.Mark()
	cur.ReadRange(runeLen(def.StringStart))
	doubled := def.StringEscape != "" && def.StringEscape == def.StringEnd
	for !cur.EOF() {
		if doubled {
			if cur.PeekFor(def.StringEnd + def.StringEnd) {
				cur.ReadRange(2 * runeLen(def.StringEnd))
				continue
			}
		} else if cur.PeekFor(def.StringEscape) {
			cur.ReadRange(runeLen(def.StringEscape))
			cur.Read()
			continue
		}
		if cur.PeekFor(def.StringEnd) {
			cur.ReadRange(runeLen(def.StringEnd))
			sp := cur.SpanFrom(start)
			st.settle(sp.End)
			return syntax.NewLeaf(syntax.KindStringLiteral, st.Span(sp.Start, sp.End, syntax.StringLiteral)), true
		}
		cur.Read()
	}
	// EOF без закрывающего маркера
	st.reportUnterminated(uint32(start), def.StringStart, "string literal")
	sp := cur.SpanFrom(start)
	return syntax.NewLeaf(syntax.KindStringLiteral, st.Span(sp.Start, sp.End, syntax.StringLiteral)), true
}
