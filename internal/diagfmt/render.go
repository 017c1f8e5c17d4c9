package diagfmt

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hilite/internal/syntax"
)

// Theme maps decorations onto lipgloss styles. Decorations without an entry
// are written unstyled.
type Theme map[syntax.Decoration]lipgloss.Style

// NewTheme returns the default 16-colour theme bound to r (nil means the
// default renderer, which picks the profile of stdout).
func NewTheme(r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	comment := base.Foreground(lipgloss.Color("8")).Italic(true)
	return Theme{
		syntax.Error:                 base.Foreground(lipgloss.Color("9")).Underline(true),
		syntax.CommentSingleLine:     comment,
		syntax.CommentMultiLine:      comment,
		syntax.StringLiteral:         base.Foreground(lipgloss.Color("2")),
		syntax.Keyword:               base.Foreground(lipgloss.Color("5")).Bold(true),
		syntax.Function:              base.Foreground(lipgloss.Color("3")),
		syntax.PreprocessorDirective: base.Foreground(lipgloss.Color("6")),
		syntax.DeliminationExtended:  base.Foreground(lipgloss.Color("4")),
	}
}

// Segment is a maximal run of text carrying one decoration.
type Segment struct {
	Start, End uint32
	Decoration syntax.Decoration
}

// Segments flattens the tree into contiguous runs covering the whole file.
// Children win over their parent where they overlap; undecorated text is
// reported as syntax.None.
func Segments(unit syntax.Unit) []Segment {
	n := unit.Root.Span.End
	if n == 0 {
		return nil
	}
	paint := make([]syntax.Decoration, n)
	var fill func(nodes []syntax.Node)
	fill = func(nodes []syntax.Node) {
		for _, node := range nodes {
			for i := node.Span.Start; i < node.Span.End && i < n; i++ {
				paint[i] = node.Span.Decoration
			}
			fill(node.Children)
		}
	}
	fill(unit.Root.Children)

	var out []Segment
	start := uint32(0)
	for i := uint32(1); i <= n; i++ {
		if i == n || paint[i] != paint[start] {
			out = append(out, Segment{Start: start, End: i, Decoration: paint[start]})
			start = i
		}
	}
	return out
}

// Render writes the unit's text with every segment styled by theme. Styles
// are applied line by line so multi-line comments are not block-aligned.
func Render(w io.Writer, unit syntax.Unit, theme Theme) error {
	file := unit.File()
	if file == nil {
		return nil
	}
	var b strings.Builder
	for _, seg := range Segments(unit) {
		text := string(file.Text[seg.Start:seg.End])
		style, ok := theme[seg.Decoration]
		if !ok || seg.Decoration == syntax.None {
			b.WriteString(text)
			continue
		}
		lines := strings.Split(text, "\n")
		for i, line := range lines {
			if line != "" {
				b.WriteString(style.Render(line))
			}
			if i != len(lines)-1 {
				b.WriteByte('\n')
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
