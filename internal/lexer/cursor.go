package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"hilite/internal/source"
)

// EOFRune is returned by Current, Read and Backtrack when there is no rune
// to report.
const EOFRune rune = -1

// Cursor представляет собой позицию в тексте файла. Позиция считается в рунах
// и всегда лежит в [0, Limit].
type Cursor struct {
	File *source.File
	Off  uint32
	// Limit is the exclusive upper bound for Off; defaults to the rune length of File.
	Limit uint32
}

// NewCursor creates a new cursor for the provided file.
func NewCursor(f *source.File) Cursor {
	return Cursor{
		File:  f,
		Off:   0,
		Limit: f.RuneLen(),
	}
}

func (c *Cursor) limit() uint32 {
	if c.Limit != 0 {
		return c.Limit
	}
	return c.File.RuneLen()
}

// Pos returns the current offset.
func (c *Cursor) Pos() uint32 {
	return c.Off
}

// EOF проверяет, достигнут ли конец текста
func (c *Cursor) EOF() bool {
	return c.Off >= c.limit()
}

// Current возвращает руну под курсором или EOFRune
func (c *Cursor) Current() rune {
	if c.EOF() {
		return EOFRune
	}
	return c.File.Text[c.Off]
}

// Prev returns the rune just before the cursor, or EOFRune at offset 0.
func (c *Cursor) Prev() rune {
	if c.Off == 0 || c.Off > c.limit() {
		return EOFRune
	}
	return c.File.Text[c.Off-1]
}

// Read возвращает текущую руну и сдвигает курсор на одну позицию вперёд.
// На конце текста курсор не двигается.
func (c *Cursor) Read() rune {
	r := c.Current()
	if r != EOFRune {
		c.Off++
	}
	return r
}

// ReadRange consumes up to n runes and returns them.
func (c *Cursor) ReadRange(n int) string {
	if n <= 0 {
		return ""
	}
	start := c.Off
	avail := c.limit() - start
	step, err := safecast.Conv[uint32](n)
	if err != nil || step > avail {
		step = avail
	}
	c.Off += step
	return string(c.File.Text[start:c.Off])
}

// PeekFor reports whether s starts at the cursor. Empty s never matches.
func (c *Cursor) PeekFor(s string) bool {
	return s != "" && c.matchAt(c.Off, s)
}

// PeekForAny reports the first candidate that starts at the cursor.
func (c *Cursor) PeekForAny(candidates []string) (string, bool) {
	for _, s := range candidates {
		if c.PeekFor(s) {
			return s, true
		}
	}
	return "", false
}

// PeekBehind reports whether the text before the cursor ends with s.
func (c *Cursor) PeekBehind(s string) bool {
	if s == "" {
		return false
	}
	n, err := safecast.Conv[uint32](utf8.RuneCountInString(s))
	if err != nil || n > c.Off {
		return false
	}
	return c.matchAt(c.Off-n, s)
}

func (c *Cursor) matchAt(off uint32, s string) bool {
	limit := c.limit()
	for _, r := range s {
		if off >= limit || c.File.Text[off] != r {
			return false
		}
		off++
	}
	return true
}

// Backtrack отступает на одну руну и возвращает руну под курсором.
// В позиции 0 курсор не двигается и возвращается EOFRune.
func (c *Cursor) Backtrack() rune {
	if c.Off == 0 {
		return EOFRune
	}
	c.Off--
	return c.Current()
}

// BacktrackRange moves back n runes, stopping at offset 0.
func (c *Cursor) BacktrackRange(n int) {
	if n <= 0 {
		return
	}
	step, err := safecast.Conv[uint32](n)
	if err != nil || step > c.Off {
		step = c.Off
	}
	c.Off -= step
}

// ReadWord consumes runes until stop reports true or the text ends. The stop
// rune is not consumed.
func (c *Cursor) ReadWord(stop func(rune) bool) (string, source.Span) {
	start := c.Mark()
	for !c.EOF() && !stop(c.Current()) {
		c.Off++
	}
	sp := c.SpanFrom(start)
	return string(c.File.Text[sp.Start:sp.End]), sp
}

// Mark это метка, что бы быстро получать Span читаемого фрагмента
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{
		File:  c.File.ID,
		Start: uint32(m),
		End:   c.Off,
	}
}

// Reset возвращает курсор к метке
func (c *Cursor) Reset(m Mark) {
	off := uint32(m)
	if limit := c.limit(); off > limit {
		panic(fmt.Errorf("cursor reset past end: %d > %d", off, limit))
	}
	c.Off = off
}

// runeLen is the length of s in runes as a cursor step.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
