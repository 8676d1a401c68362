package render

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/styleguide/internal/block"
	"git.home.luguber.info/inful/styleguide/internal/config"
	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
	"git.home.luguber.info/inful/styleguide/internal/tree"
)

func testBlock(category, title, body string) *block.Block {
	return &block.Block{
		Info:   block.Metadata{Category: category, Title: title},
		Body:   body,
		Source: "a.css",
		Line:   3,
	}
}

func newTestRenderer(t *testing.T, files map[string]string) *Renderer {
	t.Helper()
	var base fs.FS
	if files != nil {
		m := fstest.MapFS{}
		for name, data := range files {
			m[name] = &fstest.MapFile{Data: []byte(data)}
		}
		base = m
	}
	th, err := LoadTheme(config.TemplatesConfig{}, base)
	require.NoError(t, err)

	cfg := config.Default()
	r, err := New(th, newTestHelpers(cfg.BasePath), NewSettings(cfg))
	require.NoError(t, err)
	return r
}

func TestRenderer_DefaultTheme(t *testing.T) {
	b := testBlock("Forms => Inputs", "Text Field", "\n<input class=\"field\">\n")
	root, err := tree.Fold(nil, []*block.Block{b})
	require.NoError(t, err)

	r := newTestRenderer(t, nil)

	var index bytes.Buffer
	require.NoError(t, r.Index(&index, root))
	require.Contains(t, index.String(), `href="/forms/inputs/text-field.html"`)
	require.Contains(t, index.String(), "Text Field")
	require.Contains(t, index.String(), `id="forms-inputs-text-field"`)
	require.Contains(t, index.String(), `/assets/styleguide.css`)

	var item bytes.Buffer
	require.NoError(t, r.Item(&item, NewItemPage(b, root)))
	require.Contains(t, item.String(), "<h1>Text Field</h1>")
	require.Contains(t, item.String(), `<input class="field">`)
	require.Contains(t, item.String(), `class="sg-highlight"`)
	require.Contains(t, item.String(), "Forms / Inputs")
}

func TestRenderer_EmptyTree(t *testing.T) {
	r := newTestRenderer(t, nil)
	var index bytes.Buffer
	require.NoError(t, r.Index(&index, tree.NewRoot()))
	require.Contains(t, index.String(), "No documentation blocks found.")
}

func TestRenderer_RecursiveFragments(t *testing.T) {
	r := newTestRenderer(t, map[string]string{
		"index.html":    `{{ nav .Content }}|{{ categories .Content }}`,
		"nav.html":      `{{ range .Content.Nodes }}[{{ .Name }}{{ with .Subcat }}{{ nav . }}{{ end }}]{{ end }}`,
		"category.html": `{{ range .Content.Nodes }}{{ .Name }}:{{ len .Items }};{{ with .Subcat }}{{ categories . }}{{ end }}{{ end }}`,
		"item.html":     `{{ .Content.Info.Title }}@{{ filePath .Content.Info.Category .Content.Info.Title }}`,
	})

	blocks := []*block.Block{
		testBlock("A => B", "One", ""),
		testBlock("A => C", "Two", ""),
		testBlock("D", "Three", ""),
		testBlock("A", "Four", ""),
	}
	root, err := tree.Fold(nil, blocks)
	require.NoError(t, err)

	var index bytes.Buffer
	require.NoError(t, r.Index(&index, root))
	require.Equal(t, "[A[B][C]][D]|A:1;B:1;C:1;D:1;", index.String())

	var item bytes.Buffer
	require.NoError(t, r.Item(&item, NewItemPage(blocks[0], root)))
	require.Equal(t, "One@/a/b/one.html", item.String())
}

func TestRenderer_CompileError(t *testing.T) {
	fsys := fstest.MapFS{
		"index.html":    {Data: []byte(`{{ .Broken `)},
		"nav.html":      {Data: []byte(``)},
		"category.html": {Data: []byte(``)},
		"item.html":     {Data: []byte(``)},
	}
	th, err := LoadTheme(config.TemplatesConfig{}, fsys)
	require.NoError(t, err)

	_, err = New(th, newTestHelpers("/"), NewSettings(config.Default()))
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryRender))
}

func TestRenderer_ExecuteErrorPropagates(t *testing.T) {
	r := newTestRenderer(t, map[string]string{
		"index.html":    `{{ highlight 42 }}`,
		"nav.html":      ``,
		"category.html": ``,
		"item.html":     ``,
	})
	err := r.Index(&bytes.Buffer{}, tree.NewRoot())
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryRender))
}

func TestLoadTheme_Overrides(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{IndexTemplate, NavTemplate, CategoryTemplate} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600))
	}

	th, err := LoadTheme(config.TemplatesConfig{Index: dir}, nil)
	require.NoError(t, err)
	require.Equal(t, SourceFile, th.IndexSource)
	require.Equal(t, SourceEmbedded, th.ItemSource)
	require.Nil(t, th.Assets())

	require.NoError(t, os.MkdirAll(filepath.Join(dir, AssetsDir), 0o750))
	require.NotNil(t, th.Assets())
}

func TestLoadTheme_MissingTemplate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, IndexTemplate), []byte("x"), 0o600))

	_, err := LoadTheme(config.TemplatesConfig{Index: dir}, nil)
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))

	_, err = LoadTheme(config.TemplatesConfig{Item: filepath.Join(dir, "missing")}, nil)
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestLoadTheme_DefaultAssets(t *testing.T) {
	th, err := LoadTheme(config.TemplatesConfig{}, nil)
	require.NoError(t, err)
	require.NotNil(t, th.Assets())
}
