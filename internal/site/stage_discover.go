package site

import (
	"context"
	"strings"

	"git.home.luguber.info/inful/styleguide/internal/logfields"
	"git.home.luguber.info/inful/styleguide/internal/sources"
)

func stageDiscoverSources(_ context.Context, bs *BuildState) error {
	files, err := sources.Discover(bs.Config.Files)
	if err != nil {
		return err
	}
	bs.Sources = files
	bs.Report.Files = len(files)
	bs.recorder.SetSourceFiles(len(files))

	if bs.Scripts, err = sources.Discover(bs.Config.Assets.JS); err != nil {
		return err
	}
	if bs.Styles, err = sources.Discover(bs.Config.Assets.CSS); err != nil {
		return err
	}

	if len(files) == 0 {
		bs.logger.Warn("No source files matched", logfields.Pattern(strings.Join(bs.Config.Files, ", ")))
	} else {
		bs.logger.Info("Discovered source files", logfields.Count(len(files)))
	}
	return nil
}
