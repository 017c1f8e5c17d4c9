package lexer

import (
	"hilite/internal/syntax"
)

// ScanPreprocessor parses a directive: the transition marker, optional blanks
// and the directive name. The node span runs from the marker to the end of
// the name. At most one delimination-extended region may follow on the same
// line; it becomes the only child.
func ScanPreprocessor(st *State) (syntax.Node, bool) {
	cur, pp := st.Cursor, st.Def.Preprocessor
	start := cur.Mark()
	cur.ReadRange(runeLen(pp.TransitionSubstring))
	skipBlanks(cur)
	cur.ReadWord(func(r rune) bool { return isWhitespace(r) })
	sp := cur.SpanFrom(start)
	span := st.Span(sp.Start, sp.End, syntax.PreprocessorDirective)

	child, ok := probeExtended(st)
	if !ok {
		st.settle(sp.End)
		return syntax.NewDirective(span, nil), true
	}
	return syntax.NewDirective(span, []syntax.Node{child}), true
}

// probeExtended tries each extended syntax in declaration order. On a match
// the child spans the text between the markers and the cursor is left on
// the last rune of the end marker (or at EOF); otherwise the cursor is
// restored.
func probeExtended(st *State) (syntax.Node, bool) {
	cur, pp := st.Cursor, st.Def.Preprocessor
	entry := cur.Mark()
	skipBlanks(cur)

	for _, ext := range pp.DeliminationExtendedSyntaxes {
		if !cur.PeekFor(ext.SyntaxStart) {
			continue
		}
		cur.ReadRange(runeLen(ext.SyntaxStart))
		inner := cur.Mark()
		for !cur.EOF() && !cur.PeekFor(ext.SyntaxEnd) {
			cur.Read()
		}
		sp := cur.SpanFrom(inner)
		if !cur.EOF() {
			cur.ReadRange(runeLen(ext.SyntaxEnd))
			st.settle(cur.Pos())
		}
		return syntax.NewLeaf(syntax.KindDeliminationExtended, st.Span(sp.Start, sp.End, ext.Decoration)), true
	}

	cur.Reset(entry)
	return syntax.Node{}, false
}

// skipBlanks skips whitespace without crossing a line break.
func skipBlanks(cur *Cursor) {
	for !cur.EOF() && isBlank(cur.Current()) {
		cur.Read()
	}
}
