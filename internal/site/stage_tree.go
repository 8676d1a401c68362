package site

import (
	"context"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/styleguide/internal/foundation/errors"
	"git.home.luguber.info/inful/styleguide/internal/logfields"
	"git.home.luguber.info/inful/styleguide/internal/render"
	"git.home.luguber.info/inful/styleguide/internal/tree"
)

// stageBuildTree folds blocks into the category tree and plans one page per block.
func stageBuildTree(_ context.Context, bs *BuildState) error {
	root, err := tree.Fold(nil, bs.Blocks)
	if err != nil {
		return err
	}
	bs.Root = root

	seen := make(map[string]int, len(bs.Blocks))
	bs.Pages = make([]page, 0, len(bs.Blocks))
	for _, b := range bs.Blocks {
		path, err := render.PagePath(bs.Config.Output, b.Info.Category, b.Info.Title)
		if err != nil {
			if ce, ok := errors.AsClassified(err); ok {
				return ce.WithContext("path", b.Source).WithContext("line", b.Line)
			}
			return err
		}
		rel, err := filepath.Rel(bs.Config.Output, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if prev, dup := seen[rel]; dup {
			bs.Pages[prev].Superseded = true
			bs.logger.Warn("Duplicate page path; later block wins",
				logfields.Output(rel),
				logfields.Path(b.Source),
				logfields.Line(b.Line))
		}
		seen[rel] = len(bs.Pages)
		bs.Pages = append(bs.Pages, page{Block: b, Rel: rel, Path: path})
	}

	bs.logger.Debug("Built category tree",
		logfields.Count(root.Len()),
		logfields.Category(strings.Join(root.Names(), ", ")))
	return nil
}
