package langdef_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"hilite/internal/langdef"
	"hilite/internal/syntax"
)

const razorTOML = `
name = "razor"
extensions = [".cshtml"]
string_start = '"'
string_end = '"'
comment_multi_line_start = "@*"
comment_multi_line_end = "*@"
keywords = ["model", "using", "inject"]

[preprocessor]
transition = "@"

[[preprocessor.extended]]
start = "{"
end = "}"
decoration = "delimination-extended"

[[preprocessor.extended]]
start = "("
end = ")"
decoration = "string_literal"
`

func TestDecodeTOML(t *testing.T) {
	d, err := langdef.Decode([]byte(razorTOML))
	require.NoError(t, err)
	require.Equal(t, "razor", d.Name)
	require.True(t, d.IsKeyword("inject"))
	require.Equal(t, "@", d.Preprocessor.TransitionSubstring)
	require.Len(t, d.Preprocessor.DeliminationExtendedSyntaxes, 2)
	require.Equal(t, syntax.StringLiteral, d.Preprocessor.DeliminationExtendedSyntaxes[1].Decoration)
}

func TestDecodeRejectsUnknownKeysAndDecorations(t *testing.T) {
	_, err := langdef.Decode([]byte("name = \"x\"\nstrnig_start = '\"'\n"))
	require.ErrorIs(t, err, langdef.ErrInvalidDefinition)

	_, err = langdef.Decode([]byte("name = \"x\"\n[preprocessor]\ntransition = \"#\"\n[[preprocessor.extended]]\nstart = \"<\"\nend = \">\"\ndecoration = \"bold\"\n"))
	require.Error(t, err)
}

func TestRegistryLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "razor.toml")
	require.NoError(t, os.WriteFile(path, []byte(razorTOML), 0o600))

	r := langdef.Builtins()
	d, err := r.LoadFile(path)
	require.NoError(t, err)
	got, err := r.ForPath("Views/Index.cshtml")
	require.NoError(t, err)
	require.Same(t, d, got)

	_, err = r.LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}
