package render

import (
	"html/template"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

func newTestHelpers(base string) *Helpers {
	return NewHelpers(base, NewMarkdown(nil), NewHighlighter("github"))
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Text Field":   "text-field",
		"Forms":        "forms",
		"a b c":        "a-bc",
		"Héllo, World": "hllo-world",
		"snake_case":   "snake_case",
		"":             "",
		"!!!":          "",
	}
	for in, want := range cases {
		require.Equal(t, want, Slug(in), in)
	}
}

func TestSlug_IdempotentOnSafeInput(t *testing.T) {
	for _, in := range []string{"text-field", "a_b-c", "abc123", "x"} {
		once := Slug(in)
		require.Equal(t, once, Slug(once), in)
	}
}

func TestID(t *testing.T) {
	require.Equal(t, "forms-inputs", ID("Forms => Inputs"))
	require.Equal(t, "forms-text-field", ID("Forms", "Text Field"))
	require.Equal(t, "forms", ID("Forms", 12))
	require.Equal(t, "forms", ID("Forms", nil))
}

func TestFilePath(t *testing.T) {
	h := newTestHelpers("/")
	require.Equal(t, "/forms/inputs/text-field.html", h.FilePath("Forms => Inputs", "Text Field"))
	require.Equal(t, "/buttons/primary.html", h.FilePath("Buttons", "Primary"))

	h = newTestHelpers("/docs")
	require.Equal(t, "/docs/", h.BasePath())
	require.Equal(t, "/docs/forms/inputs/text-field.html", h.FilePath("Forms => Inputs", "Text Field"))
}

func TestNormalizeBasePath(t *testing.T) {
	require.Equal(t, "/", NormalizeBasePath(""))
	require.Equal(t, "/", NormalizeBasePath("/"))
	require.Equal(t, "/sg/", NormalizeBasePath("sg"))
	require.Equal(t, "/a/b/", NormalizeBasePath("/a/b/"))
}

func TestMarkdown(t *testing.T) {
	h := newTestHelpers("/")
	out, err := h.Markdown("# Buttons\n\nUse *primary* sparingly.\n\n<button class=\"btn\">Go</button>\n")
	require.NoError(t, err)
	require.Contains(t, string(out), `<h1 id="buttons">Buttons</h1>`)
	require.Contains(t, string(out), "<em>primary</em>")
	require.Contains(t, string(out), `<button class="btn">Go</button>`)
}

func TestMarkdown_ExtensionSelection(t *testing.T) {
	require.True(t, KnownExtension("GFM"))
	require.True(t, KnownExtension(" footnote "))
	require.False(t, KnownExtension("mermaid"))
	require.Equal(t, []goldmark.Extender{extension.GFM}, collectExtensions(nil))
	require.Len(t, collectExtensions([]string{"table", "tables", "unknown"}), 1)
}

func TestMarkdown_ExtensionsRegisteredOnce(t *testing.T) {
	require.Equal(t,
		[]goldmark.Extender{extension.GFM, extension.Footnote},
		collectExtensions([]string{"table", "gfm", "Tables", "linkify", "footnote", "gfm"}))
	require.Equal(t,
		[]goldmark.Extender{extension.Linkify, extension.TaskList},
		collectExtensions([]string{"autolink", "linkify", "tasklist"}))

	h := NewHelpers("/", NewMarkdown([]string{"gfm", "table", "strikethrough"}), NewHighlighter("github"))
	out, err := h.Markdown("| a |\n|---|\n| ~~b~~ |\n")
	require.NoError(t, err)
	require.Contains(t, string(out), "<table>")
	require.Contains(t, string(out), "<del>b</del>")
}

func TestHighlight(t *testing.T) {
	h := newTestHelpers("/")
	out, err := h.Highlight(`<button class="btn">Go</button>`)
	require.NoError(t, err)

	s := string(out)
	require.True(t, strings.HasPrefix(s, highlightOpen), s)
	require.True(t, strings.HasSuffix(s, highlightClose), s)
	require.Contains(t, s, "&lt;")
	require.NotContains(t, s, "<button")

	fromHTML, err := h.Highlight(template.HTML(`<button class="btn">Go</button>`))
	require.NoError(t, err)
	require.Equal(t, out, fromHTML)
}

func TestHighlight_RejectsOtherTypes(t *testing.T) {
	h := newTestHelpers("/")
	_, err := h.Highlight(42)
	require.Error(t, err)
}

func TestHighlighter_WriteCSS(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, NewHighlighter("github").WriteCSS(&sb))
	require.Contains(t, sb.String(), ".chroma")
}
