package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"hilite/internal/langdef"
)

const razorDef = `
name = "razor"
extensions = [".razor"]
string_start = '"'
string_end = '"'
comment_multi_line_start = "@*"
comment_multi_line_end = "*@"
keywords = ["code", "page"]
`

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, ManifestName), "")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	path, ok, err := FindManifest(nested)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, filepath.Join(root, ManifestName), path)

	dir, ok, err := FindProjectRoot(nested)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, root, dir)
}

func TestLoadWithoutManifest(t *testing.T) {
	// во временном каталоге манифеста нет, но выше по дереву он может быть
	// только если кто-то положил hilite.toml в корень /tmp
	dir := t.TempDir()
	m, ok, err := Load(dir)
	if ok {
		t.Skip("a hilite.toml exists above the temp dir")
	}
	require.NoError(t, err)
	require.Nil(t, m)
}

func TestLoadAndApply(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "langs", "razor.toml"), razorDef)
	write(t, filepath.Join(root, ManifestName), `
[languages]
paths = ["langs/razor.toml"]

[extensions]
".cshtml" = "razor"
".h" = "cpp"

[cache]
disabled = true
dir = ".cache"

[decorate]
jobs = 2
max_diagnostics = 10
normalize_crlf = true
`)

	m, ok, err := Load(root)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, root, m.Root)
	require.True(t, m.Config.Cache.Disabled)
	require.Equal(t, filepath.Join(root, ".cache"), m.CacheDir())
	require.Equal(t, 2, m.Config.Decorate.Jobs)
	require.Equal(t, 10, m.Config.Decorate.MaxDiagnostics)
	require.True(t, m.Config.Decorate.NormalizeCRLF)
	require.Equal(t, []string{filepath.Join(root, "langs", "razor.toml")}, m.LanguagePaths())

	reg := langdef.Builtins()
	require.NoError(t, m.Apply(reg))

	d, err := reg.ForPath("Index.cshtml")
	require.NoError(t, err)
	require.Equal(t, "razor", d.Name)
	d, err = reg.ForPath("x.razor")
	require.NoError(t, err)
	require.Equal(t, "razor", d.Name)
	d, err = reg.ForPath("x.h")
	require.NoError(t, err)
	require.Equal(t, "cpp", d.Name)
}

func TestApplyCollectsErrors(t *testing.T) {
	root := t.TempDir()
	m := &Manifest{
		Path: filepath.Join(root, ManifestName),
		Root: root,
		Config: Config{
			Languages:  LanguagesConfig{Paths: []string{"missing.toml"}},
			Extensions: map[string]string{".x": "nope", ".c2": "c"},
		},
	}
	reg := langdef.Builtins()
	err := m.Apply(reg)
	require.Error(t, err)
	require.ErrorIs(t, err, langdef.ErrUnknownLanguage)
	require.Contains(t, err.Error(), "missing.toml")

	// корректные записи применяются несмотря на ошибки
	d, err := reg.ForPath("a.c2")
	require.NoError(t, err)
	require.Equal(t, "c", d.Name)
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestName)
	write(t, path, "[cache]\ndisabeld = true\n")
	_, err := LoadConfig(path)
	require.ErrorContains(t, err, "unknown keys: cache.disabeld")
}

func TestLoadConfigValidation(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"empty path":    "[languages]\npaths = [\"\"]\n",
		"negative jobs": "[decorate]\njobs = -1\n",
		"bad toml":      "[cache\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".toml")
			write(t, path, body)
			_, err := LoadConfig(path)
			require.Error(t, err)
		})
	}
}
