package lexer

import (
	"hilite/internal/diag"
	"hilite/internal/langdef"
	"hilite/internal/source"
	"hilite/internal/syntax"
)

// Lexer decorates text for one language definition. It holds no per-parse
// state, so one Lexer may serve concurrent Parse calls.
type Lexer struct {
	def      *langdef.Definition
	hooks    Hooks
	reporter diag.Reporter
	// defaultKeyword is true when the keyword probe is ProbeKeyword, which
	// lets the loop skip re-probing a word it already rejected.
	defaultKeyword bool
}

// New builds a lexer for def. Nil hooks fall back to the default construct
// parsers; the lexer is immutable and safe for concurrent Parse calls.
func New(def *langdef.Definition, opts Options) *Lexer {
	return &Lexer{
		def:            def,
		hooks:          opts.Hooks.withDefaults(),
		reporter:       opts.Reporter,
		defaultKeyword: opts.Hooks.Keyword == nil,
	}
}

// Definition returns the language the lexer was built for.
func (lx *Lexer) Definition() *langdef.Definition {
	return lx.def
}

// ParseText decorates content as an anonymous file with the default parsers.
func ParseText(id, content string, def *langdef.Definition) syntax.Unit {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(id, []byte(content)))
	return New(def, Options{}).Parse(file)
}

// Parse walks file once and returns the Document tree and diagnostics.
// Children are ordered by position and never overlap: a node starting
// before the end of the previously emitted one is dropped.
func (lx *Lexer) Parse(file *source.File) syntax.Unit {
	cur := NewCursor(file)
	bag := diag.NewBag(0)
	var rep diag.Reporter = &diag.BagReporter{Bag: bag}
	if lx.reporter != nil {
		rep = teeReporter{rep, lx.reporter}
	}
	st := &State{Cursor: &cur, Def: lx.def, Reporter: rep}

	var children []syntax.Node
	for !cur.EOF() {
		if node, ok := lx.dispatch(st); ok && node.Span.Start >= st.Floor {
			children = append(children, node)
			st.Floor = nodeEnd(node)
		}
		cur.Read()
	}

	root := syntax.NewDocument(st.Span(0, cur.Pos(), syntax.None), children)
	return syntax.Unit{Root: root, Diagnostics: bag.Items()}
}

// dispatch tries the constructs in priority order; first match wins.
func (lx *Lexer) dispatch(st *State) (syntax.Node, bool) {
	cur, def := st.Cursor, st.Def
	switch {
	case cur.PeekFor(def.StringStart):
		return lx.hooks.String(st)
	case cur.PeekFor(def.CommentSingleLineStart):
		return lx.hooks.CommentSingleLine(st)
	case cur.PeekFor(def.CommentMultiLineStart):
		return lx.hooks.CommentMultiLine(st)
	case cur.PeekFor(def.FunctionInvocationStart):
		return lx.hooks.Function(st)
	}
	if !st.IsWordBreak(cur.Current()) {
		if lx.defaultKeyword && cur.Pos() < st.kwMissEnd {
			return syntax.Node{}, false
		}
		return lx.hooks.Keyword(st)
	}
	if def.Preprocessor != nil && cur.PeekFor(def.Preprocessor.TransitionSubstring) {
		return lx.hooks.Preprocessor(st)
	}
	return syntax.Node{}, false
}

func nodeEnd(n syntax.Node) uint32 {
	end := n.Span.End
	for _, c := range n.Children {
		if e := nodeEnd(c); e > end {
			end = e
		}
	}
	return end
}

type teeReporter [2]diag.Reporter

func (t teeReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	for _, r := range t {
		r.Report(code, sev, primary, msg, notes)
	}
}
