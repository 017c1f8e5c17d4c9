package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"hilite/internal/diag"
	"hilite/internal/source"
	"hilite/internal/syntax"
)

// NodeOutput is one decorated node in JSON listings.
type NodeOutput struct {
	Kind       string       `json:"kind"`
	Decoration string       `json:"decoration"`
	Location   LocationJSON `json:"location"`
	Text       string       `json:"text,omitempty"`
	Children   []NodeOutput `json:"children,omitempty"`
}

// UnitOutput is the JSON form of a decorated file.
type UnitOutput struct {
	File     string            `json:"file"`
	Language string            `json:"language,omitempty"`
	Length   uint32            `json:"length"`
	Nodes    []NodeOutput      `json:"nodes"`
	Count    int               `json:"count"`
	Diags    DiagnosticsOutput `json:"diagnostics"`
}

// FormatNodesPretty выводит узлы в человекочитаемом формате:
// номер, вид, декорация, диапазон и позиция; дети - с отступом.
func FormatNodesPretty(w io.Writer, unit syntax.Unit, fs *source.FileSet, opts NodeOpts) error {
	for i, n := range unit.Root.Children {
		if err := prettyNode(w, n, fs, opts, fmt.Sprintf("%3d:", i+1)); err != nil {
			return err
		}
	}
	return nil
}

func prettyNode(w io.Writer, n syntax.Node, fs *source.FileSet, opts NodeOpts, prefix string) error {
	startPos, endPos := fs.Resolve(n.Span.Span)
	var b strings.Builder
	fmt.Fprintf(&b, "%s %-22s %-22s [%d,%d) at %d:%d-%d:%d",
		prefix, n.Kind.String(), n.Span.Decoration.String(),
		n.Span.Start, n.Span.End,
		startPos.Line, startPos.Col, endPos.Line, endPos.Col)
	if opts.Text {
		fmt.Fprintf(&b, " %q", n.Span.Text())
	}
	b.WriteByte('\n')
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := prettyNode(w, c, fs, opts, "      └"); err != nil {
			return err
		}
	}
	return nil
}

// BuildUnitOutput формирует структуру JSON-вывода узлов без сериализации.
func BuildUnitOutput(unit syntax.Unit, language string, fs *source.FileSet, opts NodeOpts) UnitOutput {
	out := UnitOutput{
		Language: language,
		Length:   unit.Root.Span.End,
		Nodes:    nodesOutput(unit.Root.Children, fs, opts),
	}
	if f := unit.File(); f != nil {
		out.File = formatPath(f, fs, opts.PathMode)
	}
	out.Count = len(out.Nodes)
	if out.Nodes == nil {
		out.Nodes = []NodeOutput{}
	}

	bag := unitBag(unit)
	out.Diags = BuildDiagnosticsOutput(bag, fs, JSONOpts{
		IncludePositions: true,
		PathMode:         opts.PathMode,
		IncludeNotes:     true,
	})
	return out
}

func nodesOutput(nodes []syntax.Node, fs *source.FileSet, opts NodeOpts) []NodeOutput {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]NodeOutput, 0, len(nodes))
	for _, n := range nodes {
		no := NodeOutput{
			Kind:       n.Kind.String(),
			Decoration: n.Span.Decoration.String(),
			Location:   makeLocation(n.Span.Span, fs, opts.PathMode, true),
			Children:   nodesOutput(n.Children, fs, opts),
		}
		if opts.Text {
			no.Text = n.Span.Text()
		}
		out = append(out, no)
	}
	return out
}

// FormatNodesJSON выводит узлы и диагностики файла в JSON формате
func FormatNodesJSON(w io.Writer, unit syntax.Unit, language string, fs *source.FileSet, opts NodeOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildUnitOutput(unit, language, fs, opts))
}

func unitBag(unit syntax.Unit) *diag.Bag {
	bag := diag.NewBag(0)
	for _, d := range unit.Diagnostics {
		bag.Add(d)
	}
	return bag
}
