package render

import (
	"bytes"
	"html/template"
	"io"

	"git.home.luguber.info/inful/styleguide/internal/block"
	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
	"git.home.luguber.info/inful/styleguide/internal/tree"
)

// ItemPage is the content of one item page.
type ItemPage struct {
	*block.Block
	// Path is the block's category path split into segments.
	Path []string
	Root *tree.Categories
}

// NewItemPage builds the page content for b within root.
func NewItemPage(b *block.Block, root *tree.Categories) ItemPage {
	return ItemPage{Block: b, Path: tree.SplitPath(b.Info.Category), Root: root}
}

// Renderer executes a theme's templates. It is safe for concurrent use once
// constructed.
type Renderer struct {
	set      *template.Template
	helpers  *Helpers
	settings Settings
}

// New compiles every template of th once.
func New(th *Theme, helpers *Helpers, settings Settings) (*Renderer, error) {
	r := &Renderer{helpers: helpers, settings: settings}

	set := template.New("styleguide").Funcs(r.funcMap())
	set, err := set.ParseFS(th.Index, IndexTemplate, CategoryTemplate, NavTemplate)
	if err != nil {
		return nil, compileError(err, th.IndexSource)
	}
	set, err = set.ParseFS(th.Item, ItemTemplate)
	if err != nil {
		return nil, compileError(err, th.ItemSource)
	}
	r.set = set
	return r, nil
}

func compileError(err error, source string) error {
	return ferrors.WrapError(err, ferrors.CategoryRender, "failed to compile templates").
		Fatal().
		WithContext("source", source).
		Build()
}

func (r *Renderer) funcMap() template.FuncMap {
	return template.FuncMap{
		"slug":       Slug,
		"id":         ID,
		"filePath":   r.helpers.FilePath,
		"highlight":  r.helpers.Highlight,
		"markdown":   r.helpers.Markdown,
		"nav":        func(c *tree.Categories) (template.HTML, error) { return r.fragment(NavTemplate, c) },
		"categories": func(c *tree.Categories) (template.HTML, error) { return r.fragment(CategoryTemplate, c) },
	}
}

// Settings returns the settings templates see.
func (r *Renderer) Settings() Settings { return r.settings }

// fragment renders a recursive template into a string for inclusion by its caller.
func (r *Renderer) fragment(name string, c *tree.Categories) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.set.ExecuteTemplate(&buf, name, Context{Settings: r.settings, Content: c}); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil //nolint:gosec // output of an html/template execution
}

// Index renders index.html for the full tree.
func (r *Renderer) Index(w io.Writer, root *tree.Categories) error {
	return r.execute(w, IndexTemplate, root)
}

// Item renders one item page.
func (r *Renderer) Item(w io.Writer, page ItemPage) error {
	return r.execute(w, ItemTemplate, page)
}

func (r *Renderer) execute(w io.Writer, name string, content any) error {
	if err := r.set.ExecuteTemplate(w, name, Context{Settings: r.settings, Content: content}); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryRender, "failed to render template").
			WithContext("template", name).
			Build()
	}
	return nil
}
