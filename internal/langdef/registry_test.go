package langdef_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"hilite/internal/langdef"
)

func TestBuiltinsResolveByNameAliasAndExtension(t *testing.T) {
	r := langdef.Builtins()
	require.Equal(t, []string{"c", "cpp", "csharp", "go", "java", "javascript", "python"}, r.Names())

	d, err := r.Lookup("C#")
	require.NoError(t, err)
	require.Equal(t, "csharp", d.Name)

	d, err = r.ForPath("/tmp/src/main.HPP")
	require.NoError(t, err)
	require.Equal(t, "cpp", d.Name)

	d, err = r.ForExtension("py")
	require.NoError(t, err)
	require.Equal(t, "python", d.Name)

	_, err = r.Lookup("cobol")
	require.True(t, errors.Is(err, langdef.ErrUnknownLanguage))
	_, err = r.ForPath("Makefile")
	require.True(t, errors.Is(err, langdef.ErrUnknownLanguage))
}

func TestRegistryOverridesAndMapping(t *testing.T) {
	r := langdef.Builtins()
	custom := langdef.MustNew(langdef.Definition{Name: "C", Extensions: []string{".c"}, Keywords: []string{"only"}})
	require.NoError(t, r.Register(custom))
	d, err := r.Lookup("c")
	require.NoError(t, err)
	require.Same(t, custom, d)

	require.NoError(t, r.MapExtension("inc", "cpp"))
	d, err = r.ForExtension(".INC")
	require.NoError(t, err)
	require.Equal(t, "cpp", d.Name)
	require.Contains(t, r.Extensions("cpp"), ".inc")

	require.ErrorIs(t, r.MapExtension(".x", "nope"), langdef.ErrUnknownLanguage)
	require.ErrorIs(t, r.Register(&langdef.Definition{Name: "raw"}), langdef.ErrInvalidDefinition)
}

func TestBuiltinDefinitionsAreValid(t *testing.T) {
	r := langdef.Builtins()
	for _, name := range r.Names() {
		d, err := langdef.Builtin(name)
		require.NoError(t, err)
		require.NoError(t, d.Validate(), name)
		require.NotEmpty(t, d.Extensions, name)
	}
}
