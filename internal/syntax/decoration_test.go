package syntax_test

import (
	"testing"

	"hilite/internal/syntax"
)

func TestDecorationNamesRoundTrip(t *testing.T) {
	for _, d := range syntax.Decorations() {
		text, err := d.MarshalText()
		if err != nil {
			t.Fatalf("%v: marshal: %v", d, err)
		}
		var back syntax.Decoration
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("%q: unmarshal: %v", text, err)
		}
		if back != d {
			t.Fatalf("round trip %v -> %q -> %v", d, text, back)
		}
	}
}

func TestParseDecorationSpellings(t *testing.T) {
	cases := map[string]syntax.Decoration{
		"string-literal":         syntax.StringLiteral,
		"string_literal":         syntax.StringLiteral,
		"StringLiteral":          syntax.StringLiteral,
		" keyword ":              syntax.Keyword,
		"DeliminationExtended":   syntax.DeliminationExtended,
		"preprocessor-directive": syntax.PreprocessorDirective,
	}
	for in, want := range cases {
		got, err := syntax.ParseDecoration(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if got != want {
			t.Fatalf("%q: got %v, want %v", in, got, want)
		}
	}
	if _, err := syntax.ParseDecoration("bold"); err == nil {
		t.Fatalf("expected error for unknown decoration")
	}
}

func TestDecorationStringUnknown(t *testing.T) {
	if got := syntax.Decoration(200).String(); got != "decoration(200)" {
		t.Fatalf("unexpected name %q", got)
	}
	if _, err := syntax.Decoration(200).MarshalText(); err == nil {
		t.Fatalf("expected marshal error")
	}
}
