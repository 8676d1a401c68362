package block

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/styleguide/internal/extract"
	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
)

func rawBlock(text string) extract.RawBlock {
	return extract.RawBlock{Text: text, Line: 7}
}

func TestParse_SplitsMetadataAndBody(t *testing.T) {
	b, err := Parse(rawBlock("/*styleguide\ncategory: Forms => Inputs\ntitle: Text Field\nstatus: stable\n---\nUse `.input`.\n*/"),
		extract.ModeNonCapturing, "sass/forms.scss")
	require.NoError(t, err)

	require.Equal(t, "Forms => Inputs", b.Info.Category)
	require.Equal(t, "Text Field", b.Info.Title)
	require.Equal(t, "stable", b.Info.Get("status"))
	require.Equal(t, "\nUse `.input`.\n", b.Body)
	require.Equal(t, "sass/forms.scss", b.Source)
	require.Equal(t, 7, b.Line)
	require.NotEmpty(t, b.Fingerprint)
}

func TestParse_LaterRulesStayInBody(t *testing.T) {
	b, err := Parse(rawBlock("/*styleguide\ncategory: A\ntitle: T\n---\nintro\n-----\nmore\n---\nend\n*/"),
		extract.ModeNonCapturing, "a.css")
	require.NoError(t, err)
	require.Equal(t, "\nintro\n-----\nmore\n---\nend\n", b.Body)
}

func TestParse_NoRuleMeansEmptyBody(t *testing.T) {
	b, err := Parse(rawBlock("/*styleguide\ncategory: A\ntitle: T\n*/"), extract.ModeNonCapturing, "a.css")
	require.NoError(t, err)
	require.Empty(t, b.Body)
}

func TestParse_NonStringTitle(t *testing.T) {
	b, err := Parse(rawBlock("/*styleguide\ncategory: Grid\ntitle: 12\n---\n*/"), extract.ModeNonCapturing, "a.css")
	require.NoError(t, err)
	require.Equal(t, "12", b.Info.Title)
}

func TestParse_CapturingBodyKeepsTerminators(t *testing.T) {
	text := "/*styleguide\ncategory: Code\ntitle: Sample\n---\n<style>/* x */</style>\nend styleguide */"
	b, err := Parse(rawBlock(text), extract.ModeCapturing, "a.css")
	require.NoError(t, err)
	require.Equal(t, "\n<style>/* x */</style>\n", b.Body)
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		text string
		want error
	}{
		{"malformed yaml", "/*styleguide\ncategory: [A\n---\nbody\n*/", ErrMalformedMetadata},
		{"scalar header", "/*styleguide\njust text\n---\nbody\n*/", ErrMalformedMetadata},
		{"missing category", "/*styleguide\ntitle: T\n---\nbody\n*/", ErrMissingCategory},
		{"empty category", "/*styleguide\ncategory: '  '\n---\n*/", ErrMissingCategory},
		{"list category", "/*styleguide\ncategory: [A, B]\n---\n*/", ErrMissingCategory},
		{"empty header", "/*styleguide\n---\nbody\n*/", ErrMissingCategory},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(rawBlock(tc.text), extract.ModeNonCapturing, "bad.scss")
			require.ErrorIs(t, err, tc.want)
			require.True(t, ferrors.HasCategory(err, ferrors.CategoryParse))

			classified, _ := ferrors.AsClassified(err)
			path, _ := classified.Context().GetString("path")
			require.Equal(t, "bad.scss", path)
			line, _ := classified.Context().Get("line")
			require.Equal(t, 7, line)
		})
	}
}

func TestParseSource(t *testing.T) {
	text := "/*styleguide\ncategory: A\ntitle: One\n---\n1\n*/\n.x{}\n/*styleguide\ncategory: A\ntitle: Two\n---\n2\n*/\n"
	blocks, err := ParseSource("a.css", text, extract.ModeNonCapturing)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	require.Equal(t, "One", blocks[0].Info.Title)
	require.Equal(t, "Two", blocks[1].Info.Title)
	require.Equal(t, 8, blocks[1].Line)

	blocks, err = ParseSource("empty.css", ".x{}", extract.ModeNonCapturing)
	require.NoError(t, err)
	require.Empty(t, blocks)

	_, err = ParseSource("bad.css", text+"/*styleguide\ntitle: orphan\n*/", extract.ModeNonCapturing)
	require.ErrorIs(t, err, ErrMissingCategory)
}

func TestFingerprintTracksContent(t *testing.T) {
	a, err := Parse(rawBlock("/*styleguide\ncategory: A\n---\none\n*/"), extract.ModeNonCapturing, "a.css")
	require.NoError(t, err)
	b, err := Parse(rawBlock("/*styleguide\ncategory: A\n---\ntwo\n*/"), extract.ModeNonCapturing, "a.css")
	require.NoError(t, err)
	c, err := Parse(rawBlock("/*styleguide\ncategory: A\n---\none\n*/"), extract.ModeNonCapturing, "b.css")
	require.NoError(t, err)

	require.NotEqual(t, a.Fingerprint, b.Fingerprint)
	require.Equal(t, a.Fingerprint, c.Fingerprint)
}
