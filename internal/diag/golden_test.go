package diag

import (
	"testing"

	"hilite/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	userFile := fs.Add("/workspace/testdata/golden/sample.c", []byte("a\nb\n"), 0)
	virtual := fs.AddVirtual("buffer.cs", []byte("x\n"))

	diags := []Diagnostic{
		{
			Severity: SevError,
			Code:     LexEndOfFileUnexpected,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: userFile, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: userFile, Start: 2, End: 3}, Msg: "note line"},
			},
		},
		{
			Severity: SevWarning,
			Code:     PrjUnknownLanguage,
			Message:  "another",
			Primary:  source.Span{File: virtual, Start: 0, End: 0},
		},
		{
			Severity: SevError,
			Code:     IOLoadFileError,
			Message:  "unresolvable file",
			Primary:  source.Span{File: 42},
		},
	}

	expected := "warning PRJ5001 buffer.cs:1:1 another\n" +
		"error LEX1001 testdata/golden/sample.c:1:1 first line second\n" +
		"note LEX1001 testdata/golden/sample.c:2:1 note line"

	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestBagLimitAndSort(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(NewError(LexEndOfFileUnexpected, source.Span{Start: 5, End: 9}, "b")) {
		t.Fatal("first Add rejected")
	}
	bag.Add(New(SevWarning, PrjUnknownLanguage, source.Span{Start: 1, End: 2}, "a"))
	if bag.Add(NewError(LexEndOfFileUnexpected, source.Span{}, "c")) {
		t.Fatal("Add beyond limit must be rejected")
	}
	bag.Sort()
	items := bag.Items()
	if items[0].Message != "a" || items[1].Message != "b" {
		t.Fatalf("unexpected order: %+v", items)
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Fatal("expected errors and warnings")
	}
}

func TestBagDedupAndMerge(t *testing.T) {
	a := NewBag(0)
	a.Add(NewError(LexEndOfFileUnexpected, source.Span{Start: 0, End: 3}, "x"))
	b := NewBag(0)
	b.Add(NewError(LexEndOfFileUnexpected, source.Span{Start: 0, End: 3}, "x"))
	a.Merge(b)
	if a.Len() != 2 {
		t.Fatalf("Merge: expected 2 items, got %d", a.Len())
	}
	a.Dedup()
	if a.Len() != 1 {
		t.Fatalf("Dedup: expected 1 item, got %d", a.Len())
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	b := ReportError(BagReporter{Bag: bag}, LexEndOfFileUnexpected, source.Span{Start: 0, End: 4}, "unterminated").
		WithNote(source.Span{Start: 0, End: 1}, "opened here")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", bag.Len())
	}
	if len(bag.Items()[0].Notes) != 1 {
		t.Fatalf("expected note to be attached")
	}
}
