package diagfmt

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"hilite/internal/source"
	"hilite/internal/syntax"
)

var sgr = regexp.MustCompile("\x1b\\[[0-9;]*m")

func TestSegmentsCoverText(t *testing.T) {
	fs := source.NewFileSet()
	text := "#include <a.h>\nint f() { return \"s\"; } // c\n"
	unit := parseC(t, fs, "s.c", text)

	segs := Segments(unit)
	if len(segs) == 0 || segs[0].Start != 0 || segs[len(segs)-1].End != uint32(len([]rune(text))) {
		t.Fatalf("segments must cover the text, got %+v", segs)
	}
	for i := 1; i < len(segs); i++ {
		if segs[i].Start != segs[i-1].End {
			t.Fatalf("gap between %+v and %+v", segs[i-1], segs[i])
		}
		if segs[i].Decoration == segs[i-1].Decoration {
			t.Fatalf("adjacent segments must differ: %+v %+v", segs[i-1], segs[i])
		}
	}

	want := map[string]syntax.Decoration{
		"#include": syntax.PreprocessorDirective,
		"a.h":      syntax.StringLiteral,
		"int":      syntax.Keyword,
		"f":        syntax.Function,
		"return":   syntax.Keyword,
		`"s"`:      syntax.StringLiteral,
		"// c":     syntax.CommentSingleLine,
	}
	runes := []rune(text)
	for _, s := range segs {
		frag := string(runes[s.Start:s.End])
		if dec, ok := want[frag]; ok {
			if dec != s.Decoration {
				t.Errorf("%q decorated %s, want %s", frag, s.Decoration, dec)
			}
			delete(want, frag)
		}
	}
	if len(want) != 0 {
		t.Errorf("segments not found: %v", want)
	}
}

func TestSegmentsEmpty(t *testing.T) {
	fs := source.NewFileSet()
	if segs := Segments(parseC(t, fs, "e.c", "")); segs != nil {
		t.Fatalf("expected no segments, got %+v", segs)
	}
}

func TestRenderPlainProfileKeepsText(t *testing.T) {
	fs := source.NewFileSet()
	text := "/* a\n\tb */\nint x = \"y\";\n"
	unit := parseC(t, fs, "r.c", text)

	var buf bytes.Buffer
	r := lipgloss.NewRenderer(&buf)
	r.SetColorProfile(termenv.Ascii)
	if err := Render(&buf, unit, NewTheme(r)); err != nil {
		t.Fatal(err)
	}
	if buf.String() != text {
		t.Fatalf("ascii rendering must reproduce the text:\n%q\nwant\n%q", buf.String(), text)
	}
}

func TestRenderColorProfile(t *testing.T) {
	fs := source.NewFileSet()
	text := "/* a\n   b */ int x;\n"
	unit := parseC(t, fs, "r.c", text)

	var buf bytes.Buffer
	r := lipgloss.NewRenderer(&buf)
	r.SetColorProfile(termenv.ANSI)
	if err := Render(&buf, unit, NewTheme(r)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "\x1b[") {
		t.Fatalf("expected escapes, got %q", out)
	}
	// стили применяются построчно: без выравнивания блока пробелами
	if got := sgr.ReplaceAllString(out, ""); got != text {
		t.Fatalf("stripped output differs:\n%q\nwant\n%q", got, text)
	}
}
