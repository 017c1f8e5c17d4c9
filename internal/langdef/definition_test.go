package langdef_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"hilite/internal/langdef"
	"hilite/internal/syntax"
)

func TestNewBuildsKeywordSetAndDefaults(t *testing.T) {
	d, err := langdef.New(langdef.Definition{
		Name:       " toy ",
		Extensions: []string{"TOY", ".tY"},
		Keywords:   []string{"if", "else"},
		Preprocessor: &langdef.Preprocessor{
			TransitionSubstring: "#",
			DeliminationExtendedSyntaxes: []langdef.ExtendedSyntax{
				{SyntaxStart: "<", SyntaxEnd: ">"},
			},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "toy", d.Name)
	require.Equal(t, []string{".toy", ".ty"}, d.Extensions)
	require.True(t, d.IsKeyword("if"))
	require.False(t, d.IsKeyword("If"))
	require.False(t, d.IsKeyword(""))
	require.Equal(t, langdef.DefaultPunctuation, d.Punctuation)
	require.True(t, d.IsPunctuation('('))
	require.False(t, d.IsPunctuation('_'))
	require.Equal(t, syntax.DeliminationExtended, d.Preprocessor.DeliminationExtendedSyntaxes[0].Decoration)
	require.True(t, d.HasExtension("TOY"))
}

func TestNewCopiesInput(t *testing.T) {
	kws := []string{"if"}
	src := langdef.Definition{Name: "toy", Keywords: kws}
	d, err := langdef.New(src)
	require.NoError(t, err)
	kws[0] = "while"
	require.True(t, d.IsKeyword("if"))
	require.Equal(t, []string{"if"}, d.Keywords)
}

func TestIsKeywordWithoutNew(t *testing.T) {
	d := &langdef.Definition{Name: "raw", Keywords: []string{"for"}}
	require.True(t, d.IsKeyword("for"))
	require.False(t, d.IsKeyword("fo"))
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]langdef.Definition{
		"no name":             {},
		"string without end":  {Name: "x", StringStart: `"`},
		"multi without end":   {Name: "x", CommentMultiLineStart: "/*"},
		"single without ends": {Name: "x", CommentSingleLineStart: "//"},
		"empty ending":        {Name: "x", CommentSingleLineStart: "//", CommentSingleLineEndings: []string{""}},
		"empty keyword":       {Name: "x", Keywords: []string{""}},
		"empty extension":     {Name: "x", Extensions: []string{"."}},
		"no transition":       {Name: "x", Preprocessor: &langdef.Preprocessor{}},
		"extended no end": {Name: "x", Preprocessor: &langdef.Preprocessor{
			TransitionSubstring:          "#",
			DeliminationExtendedSyntaxes: []langdef.ExtendedSyntax{{SyntaxStart: "<"}},
		}},
		"bad decoration": {Name: "x", Preprocessor: &langdef.Preprocessor{
			TransitionSubstring:          "#",
			DeliminationExtendedSyntaxes: []langdef.ExtendedSyntax{{SyntaxStart: "<", SyntaxEnd: ">", Decoration: 99}},
		}},
	}
	for name, def := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := langdef.New(def)
			require.Error(t, err)
			require.True(t, errors.Is(err, langdef.ErrInvalidDefinition))
		})
	}
}

func TestFingerprintTracksBehaviour(t *testing.T) {
	a := langdef.MustNew(langdef.Definition{Name: "toy", Keywords: []string{"if"}})
	b := langdef.MustNew(langdef.Definition{Name: "toy", Keywords: []string{"if"}})
	c := langdef.MustNew(langdef.Definition{Name: "toy", Keywords: []string{"if", "for"}})
	require.Equal(t, a.Fingerprint(), b.Fingerprint())
	require.NotEqual(t, a.Fingerprint(), c.Fingerprint())
	require.Len(t, a.Fingerprint(), 16)
}
