package site

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"git.home.luguber.info/inful/styleguide/internal/config"
	"git.home.luguber.info/inful/styleguide/internal/foundation/errors"
	"git.home.luguber.info/inful/styleguide/internal/linkverify"
	"git.home.luguber.info/inful/styleguide/internal/logfields"
	"git.home.luguber.info/inful/styleguide/internal/manifest"
	"git.home.luguber.info/inful/styleguide/internal/render"
)

// stagePostProcess verifies links and writes the manifest. In warn mode broken
// links make the stage a warning; in strict mode they fail the build.
func stagePostProcess(ctx context.Context, bs *BuildState) error {
	sort.Strings(bs.written)
	sort.Strings(bs.assets)

	var linkErr error
	if mode := bs.Config.VerifyLinks; mode != config.LinkModeOff && mode != "" {
		linkErr = bs.verifyLinks(ctx, mode)
		if linkErr != nil && errors.GetSeverity(linkErr) != errors.SeverityWarning {
			return linkErr
		}
	}

	if bs.Config.Manifest {
		if err := bs.writeManifest(); err != nil {
			return err
		}
	}
	return linkErr
}

func (bs *BuildState) verifyLinks(ctx context.Context, mode config.LinkMode) error {
	v := linkverify.NewVerifier(bs.Config.Output, render.NormalizeBasePath(bs.Config.BasePath),
		linkverify.WithConcurrency(bs.Config.Concurrency),
		linkverify.WithLogger(bs.logger))
	res, err := v.Verify(ctx, bs.written)
	if err != nil {
		return err
	}
	bs.Report.BrokenLinks = len(res.Broken)
	bs.logger.Info("Verified links",
		logfields.Count(res.LinksChecked),
		logfields.Path(bs.Config.Output))
	if res.OK() {
		return nil
	}

	eb := errors.ValidationError("broken internal links").
		WithContext("broken", len(res.Broken)).
		WithContext("first", res.Broken[0].URL).
		WithContext("page", res.Broken[0].Page)
	if mode == config.LinkModeWarn {
		eb = eb.Warning()
	}
	return eb.Build()
}

func (bs *BuildState) writeManifest() error {
	m := &manifest.BuildManifest{
		ID:        bs.Report.BuildID,
		Timestamp: bs.Report.Start.UTC(),
		Inputs:    manifest.Inputs{ConfigHash: bs.Report.ConfigHash},
		Plan: manifest.Plan{
			Mode:        bs.Mode.String(),
			BasePath:    render.NormalizeBasePath(bs.Config.BasePath),
			IndexSource: bs.Theme.IndexSource,
			ItemSource:  bs.Theme.ItemSource,
		},
		Status:   string(OutcomeSuccess),
		Duration: time.Since(bs.Report.Start).Milliseconds(),
	}
	if len(bs.Report.Warnings) > 0 || bs.Report.BrokenLinks > 0 {
		m.Status = string(OutcomeWarning)
	}
	for _, s := range bs.Stats {
		m.Inputs.Sources = append(m.Inputs.Sources, manifest.SourceInput{Path: s.Path, Blocks: s.Blocks})
	}
	for _, p := range bs.Pages {
		if p.Superseded {
			continue
		}
		m.Outputs.Pages = append(m.Outputs.Pages, manifest.PageEntry{
			Path:        p.Rel,
			Category:    p.Block.Info.Category,
			Title:       p.Block.Info.Title,
			Source:      p.Block.Source,
			Line:        p.Block.Line,
			Fingerprint: p.Block.Fingerprint,
		})
	}
	m.Outputs.Assets = append([]string(nil), bs.assets...)
	m.ComputeContentHash()
	bs.compareWithPrevious(m)

	path, err := m.Write(bs.Config.Output)
	if err != nil {
		return err
	}
	bs.Report.ManifestPath = path
	bs.logger.Info("Wrote manifest", logfields.Output(path))
	return nil
}

// compareWithPrevious records whether page content changed since the manifest
// about to be replaced. Without a readable previous manifest the content counts
// as changed.
func (bs *BuildState) compareWithPrevious(m *manifest.BuildManifest) {
	bs.Report.ContentChanged = true
	prev, err := manifest.Read(bs.Config.Output)
	if err != nil {
		bs.logger.Debug("No previous manifest", logfields.Error(err))
		return
	}
	bs.Report.PreviousBuildID = prev.ID
	if prev.Outputs.ContentHash == m.Outputs.ContentHash {
		bs.Report.ContentChanged = false
		bs.logger.Info("Page content unchanged since previous build", slog.String("previous_build_id", prev.ID))
	}
}
