package render

import (
	"html/template"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"

	"git.home.luguber.info/inful/styleguide/internal/tree"
)

var slugStrip = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// Slug lowercases name, replaces the first space with a dash and drops every
// character outside [A-Za-z0-9_-]. Only one space is replaced, so "a b c"
// becomes "a-bc".
func Slug(name string) string {
	s := strings.ToLower(name)
	s = strings.Replace(s, " ", "-", 1)
	return slugStrip.ReplaceAllString(s, "")
}

// ID builds an anchor id from a category and an optional title. The title is
// only used when it is a string.
func ID(category string, title ...any) string {
	id := Slug(category)
	if len(title) > 0 {
		if t, ok := title[0].(string); ok {
			id += "-" + Slug(t)
		}
	}
	return id
}

// Helpers is the helper registry handed to one render run.
type Helpers struct {
	basePath    string
	markdown    goldmark.Markdown
	highlighter *Highlighter
}

// NewHelpers returns helpers that build links under basePath. A missing trailing
// slash is added.
func NewHelpers(basePath string, md goldmark.Markdown, hl *Highlighter) *Helpers {
	return &Helpers{
		basePath:    NormalizeBasePath(basePath),
		markdown:    md,
		highlighter: hl,
	}
}

// NormalizeBasePath returns p with a leading and trailing slash.
func NormalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}

// BasePath returns the normalized web base path.
func (h *Helpers) BasePath() string { return h.basePath }

// FilePath returns the web path of an item page.
func (h *Helpers) FilePath(category, title string) string {
	return h.basePath + relPage(category, title)
}

// relPage is the slash-separated page path relative to the output root.
func relPage(category, title string) string {
	segments := tree.SplitPath(category)
	slugs := make([]string, len(segments))
	for i, seg := range segments {
		slugs[i] = Slug(seg)
	}
	return strings.Join(slugs, "/") + "/" + Slug(title) + ".html"
}

// Markdown converts text to HTML. The output is trusted as-is.
func (h *Helpers) Markdown(text string) (template.HTML, error) {
	out, err := convertMarkdown(h.markdown, text)
	if err != nil {
		return "", err
	}
	return template.HTML(out), nil //nolint:gosec // documentation bodies are authored HTML
}

// Highlight returns src as highlighted, escaped HTML source. It accepts a string
// or template.HTML.
func (h *Helpers) Highlight(src any) (template.HTML, error) {
	var text string
	switch v := src.(type) {
	case template.HTML:
		text = string(v)
	case string:
		text = v
	default:
		return "", errUnsupportedHighlightInput(src)
	}
	out, err := h.highlighter.Highlight(text)
	if err != nil {
		return "", err
	}
	return template.HTML(out), nil //nolint:gosec // chroma escapes token text
}
