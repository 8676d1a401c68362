package site

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/styleguide/internal/foundation/errors"
	"git.home.luguber.info/inful/styleguide/internal/logfields"
	"git.home.luguber.info/inful/styleguide/internal/render"
)

// stagePrepareOutput resolves the theme, compiles templates once and creates the
// output directory.
func stagePrepareOutput(_ context.Context, bs *BuildState) error {
	cfg := bs.Config

	th, err := render.LoadTheme(cfg.Templates, bs.opts.theme)
	if err != nil {
		return err
	}
	bs.Theme = th
	bs.Report.Templates["index"] = TemplateInfo{Source: th.IndexSource, Path: cfg.Templates.Index}
	bs.Report.Templates["item"] = TemplateInfo{Source: th.ItemSource, Path: cfg.Templates.Item}

	bs.Highlighter = render.NewHighlighter(cfg.Highlight.Style)
	helpers := render.NewHelpers(cfg.BasePath, render.NewMarkdown(cfg.Markdown.Extensions), bs.Highlighter)

	settings := render.NewSettings(cfg)
	settings.BuildID = bs.Report.BuildID
	for _, src := range bs.Scripts {
		settings.Scripts = append(settings.Scripts, settings.AssetsPath+"js/"+filepath.Base(src))
	}
	for _, src := range bs.Styles {
		settings.Styles = append(settings.Styles, settings.AssetsPath+"css/"+filepath.Base(src))
	}

	if bs.Renderer, err = render.New(th, helpers, settings); err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Output, 0o750); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create output directory").
			WithContext("path", cfg.Output).
			Build()
	}
	bs.logger.Debug("Prepared output",
		logfields.Output(cfg.Output),
		slog.String("index_templates", th.IndexSource),
		slog.String("item_templates", th.ItemSource))
	return nil
}
