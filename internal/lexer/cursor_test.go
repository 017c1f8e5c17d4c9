package lexer

import (
	"testing"

	"hilite/internal/source"
)

// helper function to create a file
func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.c", []byte(content))
	return fs.Get(id)
}

// TestSequentialReading проверяет последовательное чтение: "a\nб" → a, \n, б, EOF
func TestSequentialReading(t *testing.T) {
	file := createFile("a\nб")
	cursor := NewCursor(file)

	for i, want := range []rune{'a', '\n', 'б'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before rune %d", i)
		}
		if cursor.Current() != want {
			t.Errorf("Expected current %q, got %q", want, cursor.Current())
		}
		if got := cursor.Read(); got != want {
			t.Errorf("Expected read %q, got %q", want, got)
		}
	}

	// Проверяем EOF: позиция зажата на длине текста
	if !cursor.EOF() {
		t.Error("Expected EOF at end")
	}
	if cursor.Read() != EOFRune || cursor.Current() != EOFRune {
		t.Error("Expected EOFRune past the end")
	}
	if cursor.Pos() != 3 {
		t.Errorf("Expected position clamped at 3, got %d", cursor.Pos())
	}
}

func TestBacktrackAtStart(t *testing.T) {
	cursor := NewCursor(createFile("ab"))
	if cursor.Backtrack() != EOFRune || cursor.Pos() != 0 {
		t.Fatalf("backtrack at 0 must be a no-op returning EOFRune")
	}
	if cursor.Prev() != EOFRune {
		t.Fatalf("Prev at 0 must be EOFRune")
	}
	cursor.Read()
	if got := cursor.Backtrack(); got != 'a' || cursor.Pos() != 0 {
		t.Fatalf("expected to land on 'a' at 0, got %q at %d", got, cursor.Pos())
	}
}

func TestReadRangeAndBacktrackRange(t *testing.T) {
	cursor := NewCursor(createFile("héllo"))
	if got := cursor.ReadRange(2); got != "hé" {
		t.Fatalf("ReadRange(2) = %q", got)
	}
	if got := cursor.ReadRange(10); got != "llo" || !cursor.EOF() {
		t.Fatalf("ReadRange past the end = %q, eof=%v", got, cursor.EOF())
	}
	cursor.BacktrackRange(3)
	if cursor.Current() != 'l' || cursor.Pos() != 2 {
		t.Fatalf("BacktrackRange(3) landed at %d", cursor.Pos())
	}
	cursor.BacktrackRange(100)
	if cursor.Pos() != 0 {
		t.Fatalf("BacktrackRange must clamp at 0, got %d", cursor.Pos())
	}
	if cursor.ReadRange(0) != "" || cursor.ReadRange(-1) != "" || cursor.Pos() != 0 {
		t.Fatalf("non-positive ReadRange must not move")
	}
}

// TestReadBacktrackRoundTrip: every read* has a symmetric backtrack*.
func TestReadBacktrackRoundTrip(t *testing.T) {
	cursor := NewCursor(createFile("int main() { return 0; }"))
	for start := 0; start <= 24; start++ {
		for n := 0; n <= 30; n++ {
			cursor.Reset(Mark(start))
			got := cursor.ReadRange(n)
			cursor.BacktrackRange(len([]rune(got)))
			if cursor.Pos() != uint32(start) {
				t.Fatalf("start=%d n=%d: ended at %d", start, n, cursor.Pos())
			}
		}
	}
}

func TestPeekFor(t *testing.T) {
	cursor := NewCursor(createFile("/*ü*/"))
	if !cursor.PeekFor("/*") || cursor.PeekFor("*/") {
		t.Fatal("PeekFor mismatch at 0")
	}
	if cursor.PeekFor("") {
		t.Fatal("empty lookahead must never match")
	}
	if cursor.PeekFor("/*ü*/x") {
		t.Fatal("lookahead past the end must not match")
	}
	if cursor.Pos() != 0 {
		t.Fatal("PeekFor must not move the cursor")
	}
	cursor.ReadRange(3)
	got, ok := cursor.PeekForAny([]string{"", "*x", "*/"})
	if !ok || got != "*/" {
		t.Fatalf("PeekForAny = %q, %v", got, ok)
	}
	if !cursor.PeekBehind("ü") || !cursor.PeekBehind("/*ü") || cursor.PeekBehind("x/*ü") || cursor.PeekBehind("") {
		t.Fatal("PeekBehind mismatch")
	}
}

func TestReadWord(t *testing.T) {
	cursor := NewCursor(createFile("привет, мир"))
	word, sp := cursor.ReadWord(func(r rune) bool { return r == ',' })
	if word != "привет" || sp.Start != 0 || sp.End != 6 {
		t.Fatalf("ReadWord = %q %v", word, sp)
	}
	if cursor.Current() != ',' {
		t.Fatalf("stop rune must not be consumed")
	}
	cursor.ReadRange(2)
	word, sp = cursor.ReadWord(func(rune) bool { return false })
	if word != "мир" || sp.End != 11 || !cursor.EOF() {
		t.Fatalf("ReadWord to EOF = %q %v", word, sp)
	}
}

// TestMarkReset проверяет работу Mark, Reset и SpanFrom
func TestMarkReset(t *testing.T) {
	file := createFile("abc")
	cursor := NewCursor(file)

	mark1 := cursor.Mark()
	cursor.Read()
	mark2 := cursor.Mark()
	cursor.Read()

	sp := cursor.SpanFrom(mark1)
	if sp.Start != 0 || sp.End != 2 || sp.File != file.ID {
		t.Errorf("unexpected span %v", sp)
	}

	cursor.Reset(mark2)
	if cursor.Current() != 'b' {
		t.Errorf("Expected 'b' after reset to mark2, got %q", cursor.Current())
	}
	cursor.Reset(mark1)
	if cursor.Current() != 'a' {
		t.Errorf("Expected 'a' after reset to mark1, got %q", cursor.Current())
	}

	defer func() {
		if recover() == nil {
			t.Error("Reset past the end must panic")
		}
	}()
	cursor.Reset(Mark(4))
}
