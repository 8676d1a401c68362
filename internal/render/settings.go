package render

import (
	"git.home.luguber.info/inful/styleguide/internal/config"
)

// Settings is the run configuration visible to templates as .Settings.
type Settings struct {
	Title     string
	OutputDir string
	BasePath  string
	AssetDir  string
	// AssetsPath is the web path of the asset folder, with a trailing slash.
	AssetsPath string
	Encoding   string
	Capture    bool
	Templates  config.TemplatesConfig
	// Scripts and Styles are web paths of the extra assets copied for this run.
	Scripts []string
	Styles  []string
	BuildID string
}

// NewSettings derives template settings from a validated configuration.
func NewSettings(cfg *config.Config) Settings {
	base := NormalizeBasePath(cfg.BasePath)
	return Settings{
		Title:      cfg.Title,
		OutputDir:  cfg.Output,
		BasePath:   base,
		AssetDir:   cfg.AssetDir,
		AssetsPath: base + cfg.AssetDir + "/",
		Encoding:   cfg.Encoding,
		Capture:    cfg.Capture,
		Templates:  cfg.Templates,
	}
}

// Context is the data passed to every template. Content is the tree root for
// index, nav and category templates and an ItemPage for item pages.
type Context struct {
	Settings Settings
	Content  any
}
