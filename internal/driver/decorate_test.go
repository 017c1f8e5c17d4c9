package driver

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"hilite/internal/diag"
	"hilite/internal/observ"
	"hilite/internal/source"
	"hilite/internal/syntax"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func kinds(nodes []syntax.Node) []syntax.NodeKind {
	out := make([]syntax.NodeKind, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Kind)
	}
	return out
}

func TestDecorateSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.c", "int main() { return 0; } // done\n")

	fs, res, err := Decorate(context.Background(), path, Options{})
	require.NoError(t, err)
	require.NotNil(t, fs)
	require.Equal(t, "c", res.Language)
	require.False(t, res.Cached)
	require.Equal(t, []syntax.NodeKind{
		syntax.KindKeyword,
		syntax.KindFunctionIdentifier,
		syntax.KindKeyword,
		syntax.KindCommentSingleLine,
	}, kinds(res.Unit.Root.Children))
	require.Equal(t, 0, res.Bag.Len())
}

func TestDecorateLanguageOverride(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "script.txt", "# note\nif x:\n")

	_, _, err := Decorate(context.Background(), path, Options{})
	require.Error(t, err, "no language for .txt")

	_, res, err := Decorate(context.Background(), path, Options{Language: "py"})
	require.NoError(t, err)
	require.Equal(t, "python", res.Language)
	require.Equal(t, []syntax.NodeKind{syntax.KindCommentSingleLine, syntax.KindKeyword},
		kinds(res.Unit.Root.Children))
}

func TestDecorateMissingFile(t *testing.T) {
	_, res, err := Decorate(context.Background(), filepath.Join(t.TempDir(), "nope.c"), Options{})
	require.Error(t, err)
	require.Nil(t, res)
}

func TestDecorateDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.go", "package b\nfunc f() {}\n")
	writeFile(t, dir, "a.py", `"open`)
	writeFile(t, dir, "notes.md", "ignored")
	writeFile(t, dir, ".git/x.c", "int x;")
	writeFile(t, dir, "sub/c.java", "class C {}")

	var mu sync.Mutex
	var events []Event
	timer := observ.NewTimer()
	_, results, err := DecorateDir(context.Background(), dir, Options{
		Jobs:  2,
		Timer: timer,
		Progress: SinkFunc(func(ev Event) {
			mu.Lock()
			events = append(events, ev)
			mu.Unlock()
		}),
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	// порядок детерминирован: отсортированные пути
	require.Equal(t, filepath.Join(dir, "a.py"), results[0].Path)
	require.Equal(t, filepath.Join(dir, "b.go"), results[1].Path)
	require.Equal(t, filepath.Join(dir, "sub", "c.java"), results[2].Path)

	require.True(t, results[0].Bag.HasErrors(), "unterminated python string")
	require.Equal(t, diag.LexEndOfFileUnexpected, results[0].Bag.Items()[0].Code)
	require.False(t, results[1].Bag.HasErrors())

	done := 0
	for _, ev := range events {
		if ev.Stage == StageDecorate && ev.Status == StatusDone {
			done++
		}
	}
	require.Equal(t, 3, done)

	rep := timer.Report()
	require.Len(t, rep.Phases, 1)
	require.Equal(t, "decorate", rep.Phases[0].Name)
	require.Equal(t, 3, rep.Phases[0].Count)
}

func TestDecorateDirLanguageFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.c", "int a;")
	writeFile(t, dir, "b.h", "int b;")
	writeFile(t, dir, "c.go", "var c int")

	_, results, err := DecorateDir(context.Background(), dir, Options{Language: "c"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		require.Equal(t, "c", r.Language)
	}
}

func TestDecorateFilesReportsFailuresAsDiagnostics(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "ok.js", "function f() {}")
	unknown := writeFile(t, dir, "data.bin", "xx")
	missing := filepath.Join(dir, "gone.c")

	results, err := DecorateFiles(context.Background(), source.NewFileSetWithBase(dir),
		[]string{good, unknown, missing}, Options{})
	require.NoError(t, err)
	require.Len(t, results, 3)

	require.NotNil(t, results[0].File)
	require.False(t, results[0].Bag.HasErrors())

	require.Nil(t, results[1].File)
	require.Equal(t, diag.PrjUnknownLanguage, results[1].Bag.Items()[0].Code)

	require.Nil(t, results[2].File)
	require.Equal(t, diag.IOLoadFileError, results[2].Bag.Items()[0].Code)
}

func TestDecorateFilesCancelled(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.c", "int a;")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DecorateFiles(ctx, source.NewFileSetWithBase(dir), []string{path}, Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestMaxDiagnosticsCapsBag(t *testing.T) {
	dir := t.TempDir()
	// одна незакрытая строка даёт одну ошибку; лимит 1 её сохраняет
	path := writeFile(t, dir, "a.c", `char *s = "abc`)
	_, res, err := Decorate(context.Background(), path, Options{MaxDiagnostics: 1})
	require.NoError(t, err)
	require.Equal(t, 1, res.Bag.Len())
	require.Len(t, res.Unit.Diagnostics, 1)
}
