package site

import (
	"context"

	"git.home.luguber.info/inful/styleguide/internal/block"
	"git.home.luguber.info/inful/styleguide/internal/logfields"
	"git.home.luguber.info/inful/styleguide/internal/sources"
)

// stageExtractBlocks reads sources one at a time so block order follows file order.
func stageExtractBlocks(ctx context.Context, bs *BuildState) error {
	for _, path := range bs.Sources {
		if err := ctx.Err(); err != nil {
			return err
		}
		src, err := sources.Read(path, bs.Config.Encoding)
		if err != nil {
			return err
		}
		blocks, err := block.ParseSource(src.Path, src.Text, bs.Mode)
		if err != nil {
			return err
		}
		bs.Stats = append(bs.Stats, sourceStats{Path: path, Blocks: len(blocks)})
		bs.Blocks = append(bs.Blocks, blocks...)
		bs.logger.Debug("Extracted blocks", logfields.Path(path), logfields.Count(len(blocks)))
	}

	bs.Report.Blocks = len(bs.Blocks)
	bs.recorder.AddBlocks(len(bs.Blocks))
	bs.logger.Info("Extracted documentation blocks", logfields.Count(len(bs.Blocks)))
	return nil
}
