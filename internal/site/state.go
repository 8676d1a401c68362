package site

import (
	"log/slog"
	"sync"

	"git.home.luguber.info/inful/styleguide/internal/block"
	"git.home.luguber.info/inful/styleguide/internal/config"
	"git.home.luguber.info/inful/styleguide/internal/extract"
	"git.home.luguber.info/inful/styleguide/internal/metrics"
	"git.home.luguber.info/inful/styleguide/internal/render"
	"git.home.luguber.info/inful/styleguide/internal/tree"
)

// sourceStats is the per-file block count kept for the manifest.
type sourceStats struct {
	Path   string
	Blocks int
}

// page is one planned item page.
type page struct {
	Block *block.Block
	// Rel is the slash-separated path below the output directory.
	Rel  string
	Path string
	// Superseded pages share their path with a later block and are not written.
	Superseded bool
}

// BuildState is the mutable state shared by the stages of one build.
type BuildState struct {
	Config   *config.Config
	Mode     extract.Mode
	Report   *Report
	logger   *slog.Logger
	recorder metrics.Recorder
	opts     *options

	Sources []string
	Scripts []string // extra js sources
	Styles  []string // extra css sources
	Stats   []sourceStats
	Blocks  []*block.Block
	Root    *tree.Categories
	Pages   []page

	Theme       *render.Theme
	Highlighter *render.Highlighter
	Renderer    *render.Renderer

	mu        sync.Mutex
	written   []string // pages written, relative to the output directory
	assets    []string
	itemPages int
}

func (bs *BuildState) markWritten(rel string, item bool) {
	bs.mu.Lock()
	bs.written = append(bs.written, rel)
	if item {
		bs.itemPages++
	}
	bs.mu.Unlock()
}

func (bs *BuildState) markAsset(rel string) {
	bs.mu.Lock()
	bs.assets = append(bs.assets, rel)
	bs.mu.Unlock()
}
