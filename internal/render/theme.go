package render

import (
	"io/fs"
	"os"

	"git.home.luguber.info/inful/styleguide/internal/config"
	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
	"git.home.luguber.info/inful/styleguide/internal/theme"
)

// Template file names a theme provides.
const (
	IndexTemplate    = "index.html"
	CategoryTemplate = "category.html"
	NavTemplate      = "nav.html"
	ItemTemplate     = "item.html"
	AssetsDir        = "assets"
)

// Where a theme part was loaded from.
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
)

// Theme holds the template file systems of one run. Index provides the index,
// category and nav templates plus the assets folder; Item provides item.html.
type Theme struct {
	Index       fs.FS
	Item        fs.FS
	IndexSource string
	ItemSource  string
}

// LoadTheme resolves the configured template directories. Unset directories use
// base, or the embedded default theme when base is nil.
func LoadTheme(cfg config.TemplatesConfig, base fs.FS) (*Theme, error) {
	if base == nil {
		base = theme.Default()
	}
	th := &Theme{Index: base, Item: base, IndexSource: SourceEmbedded, ItemSource: SourceEmbedded}

	if cfg.Index != "" {
		dir, err := openDir(cfg.Index)
		if err != nil {
			return nil, err
		}
		th.Index, th.IndexSource = dir, SourceFile
	}
	if cfg.Item != "" {
		dir, err := openDir(cfg.Item)
		if err != nil {
			return nil, err
		}
		th.Item, th.ItemSource = dir, SourceFile
	}

	if err := requireFiles(th.Index, cfg.Index, IndexTemplate, CategoryTemplate, NavTemplate); err != nil {
		return nil, err
	}
	if err := requireFiles(th.Item, cfg.Item, ItemTemplate); err != nil {
		return nil, err
	}
	return th, nil
}

// Assets returns the theme's asset folder, or nil when it has none.
func (t *Theme) Assets() fs.FS {
	if info, err := fs.Stat(t.Index, AssetsDir); err != nil || !info.IsDir() {
		return nil
	}
	sub, err := fs.Sub(t.Index, AssetsDir)
	if err != nil {
		return nil
	}
	return sub
}

func openDir(dir string) (fs.FS, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "template directory not found").
			UserAction().
			WithContext("path", dir).
			Build()
	}
	if !info.IsDir() {
		return nil, ferrors.ConfigError("template path is not a directory").WithContext("path", dir).Build()
	}
	return os.DirFS(dir), nil
}

func requireFiles(fsys fs.FS, dir string, names ...string) error {
	for _, name := range names {
		if _, err := fs.Stat(fsys, name); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryConfig, "theme is missing a template").
				UserAction().
				WithContext("template", name).
				WithContext("path", dir).
				Build()
		}
	}
	return nil
}
