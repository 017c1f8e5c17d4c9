package syntax

import (
	"hilite/internal/source"
)

// TextSpan is a decorated span over one file's text. The file reference lets
// hosts read the covered text without carrying the content around.
type TextSpan struct {
	source.Span
	Decoration Decoration
	file       *source.File
}

// NewTextSpan builds a span over file, clamped to the file's rune length.
func NewTextSpan(file *source.File, start, end uint32, dec Decoration) TextSpan {
	sp := source.Span{Start: start, End: end}
	if file != nil {
		sp.File = file.ID
		sp = sp.Clamp(file.RuneLen())
	}
	if sp.Start > sp.End {
		sp.Start = sp.End
	}
	return TextSpan{Span: sp, Decoration: dec, file: file}
}

// WithDecoration returns a copy of s carrying dec.
func (s TextSpan) WithDecoration(dec Decoration) TextSpan {
	s.Decoration = dec
	return s
}

// Source returns the file the span points into (nil for detached spans).
func (s TextSpan) Source() *source.File {
	return s.file
}

// Text returns the covered text.
func (s TextSpan) Text() string {
	if s.file == nil {
		return ""
	}
	return s.file.Slice(s.Span)
}
