package syntax_test

import (
	"testing"

	"hilite/internal/source"
	"hilite/internal/syntax"
)

func virtualFile(t *testing.T, content string) *source.File {
	t.Helper()
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("mem.c", []byte(content)))
}

func TestTextSpanClampsAndSlices(t *testing.T) {
	f := virtualFile(t, "héllo")
	sp := syntax.NewTextSpan(f, 1, 99, syntax.Keyword)
	if sp.Start != 1 || sp.End != 5 {
		t.Fatalf("span not clamped: %v", sp.Span)
	}
	if got := sp.Text(); got != "éllo" {
		t.Fatalf("unexpected text %q", got)
	}
	if sp.Source() != f || sp.File != f.ID {
		t.Fatalf("file reference lost")
	}
	other := sp.WithDecoration(syntax.Function)
	if other.Decoration != syntax.Function || sp.Decoration != syntax.Keyword {
		t.Fatalf("WithDecoration must copy")
	}
}

func TestDetachedSpanHasNoText(t *testing.T) {
	sp := syntax.NewTextSpan(nil, 3, 1, syntax.None)
	if sp.Start != 1 || sp.End != 1 {
		t.Fatalf("inverted span not normalised: %v", sp.Span)
	}
	if sp.Text() != "" {
		t.Fatalf("detached span must have empty text")
	}
}

func TestNodeChildrenAreFrozen(t *testing.T) {
	f := virtualFile(t, "#include \"a.h\"")
	kids := []syntax.Node{
		syntax.NewLeaf(syntax.KindDeliminationExtended, syntax.NewTextSpan(f, 10, 13, syntax.StringLiteral)),
	}
	dir := syntax.NewDirective(syntax.NewTextSpan(f, 0, 8, syntax.PreprocessorDirective), kids)
	kids[0] = syntax.NewLeaf(syntax.KindKeyword, syntax.NewTextSpan(f, 0, 1, syntax.Keyword))
	if dir.Children[0].Kind != syntax.KindDeliminationExtended {
		t.Fatalf("directive children alias the caller slice")
	}
	if cap(dir.Children) != len(dir.Children) {
		t.Fatalf("children must be capacity-trimmed")
	}
	if syntax.NewDocument(syntax.NewTextSpan(f, 0, 14, syntax.None), nil).Children != nil {
		t.Fatalf("empty document should have nil children")
	}
}

func TestWalkAndDescendants(t *testing.T) {
	f := virtualFile(t, "#include \"a.h\"\nint x;")
	dir := syntax.NewDirective(
		syntax.NewTextSpan(f, 0, 8, syntax.PreprocessorDirective),
		[]syntax.Node{syntax.NewLeaf(syntax.KindDeliminationExtended, syntax.NewTextSpan(f, 10, 13, syntax.StringLiteral))},
	)
	kw := syntax.NewLeaf(syntax.KindKeyword, syntax.NewTextSpan(f, 15, 18, syntax.Keyword))
	doc := syntax.NewDocument(syntax.NewTextSpan(f, 0, f.RuneLen(), syntax.None), []syntax.Node{dir, kw})

	var kinds []syntax.NodeKind
	for _, n := range doc.Descendants() {
		kinds = append(kinds, n.Kind)
	}
	want := []syntax.NodeKind{syntax.KindPreprocessorDirective, syntax.KindDeliminationExtended, syntax.KindKeyword}
	if len(kinds) != len(want) {
		t.Fatalf("got %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("got %v, want %v", kinds, want)
		}
	}

	visited := 0
	doc.Walk(func(n syntax.Node) bool {
		visited++
		return n.Kind != syntax.KindPreprocessorDirective
	})
	if visited != 3 {
		t.Fatalf("expected walk to prune directive children, visited %d", visited)
	}
	if !syntax.KindDocument.HasChildren() || syntax.KindKeyword.HasChildren() {
		t.Fatalf("HasChildren mismatch")
	}
}
