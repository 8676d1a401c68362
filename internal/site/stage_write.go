package site

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"git.home.luguber.info/inful/styleguide/internal/completion"
	"git.home.luguber.info/inful/styleguide/internal/foundation/errors"
	"git.home.luguber.info/inful/styleguide/internal/logfields"
	"git.home.luguber.info/inful/styleguide/internal/render"
)

// HighlightCSS is the highlighter stylesheet written into the asset directory.
const HighlightCSS = "highlight.css"

// stageWriteOutput writes every item page, the index and the assets concurrently.
// The completion group expects exactly one task per page plus the index and the
// asset copy.
func stageWriteOutput(ctx context.Context, bs *BuildState) error {
	expected := len(bs.Pages) + 2
	g, gctx := completion.NewGroup(ctx, expected, bs.Config.Concurrency, func(err error) {
		if err == nil {
			bs.logger.Info("All outputs written", logfields.Count(expected))
		}
	})

	for _, p := range bs.Pages {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if p.Superseded {
				return nil
			}
			return bs.writePage(p)
		})
	}
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		return bs.writeIndex()
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		return bs.copyAssets()
	})

	err := g.Wait()
	bs.Report.Pages = bs.itemPages
	bs.Report.Assets = len(bs.assets)
	return err
}

func (bs *BuildState) writePage(p page) error {
	err := writeFile(p.Path, func(w io.Writer) error {
		return bs.Renderer.Item(w, render.NewItemPage(p.Block, bs.Root))
	})
	if err != nil {
		if ce, ok := errors.AsClassified(err); ok {
			return ce.WithContext("source", p.Block.Source).WithContext("line", p.Block.Line)
		}
		return err
	}
	bs.markWritten(p.Rel, true)
	bs.recorder.IncPagesWritten()
	bs.logger.Info("Wrote page",
		logfields.Output(p.Path),
		logfields.Category(p.Block.Info.Category),
		logfields.Title(p.Block.Info.Title))
	return nil
}

func (bs *BuildState) writeIndex() error {
	out := filepath.Join(bs.Config.Output, render.IndexTemplate)
	if err := writeFile(out, func(w io.Writer) error { return bs.Renderer.Index(w, bs.Root) }); err != nil {
		return err
	}
	bs.markWritten(render.IndexTemplate, false)
	bs.recorder.IncPagesWritten()
	bs.logger.Info("Wrote index", logfields.Output(out))
	return nil
}

// copyAssets copies the theme assets, then extra scripts and styles, then the
// highlighter stylesheet. Later files overwrite earlier ones.
func (bs *BuildState) copyAssets() error {
	dest := filepath.Join(bs.Config.Output, bs.Config.AssetDir)

	if assets := bs.Theme.Assets(); assets != nil {
		err := fs.WalkDir(assets, ".", func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			return bs.copyAsset(dest, p, func() (io.ReadCloser, error) { return assets.Open(p) })
		})
		if err != nil {
			return wrapFS(err, "failed to copy theme assets", dest)
		}
	}

	for _, src := range bs.Scripts {
		if err := bs.copyAsset(dest, path.Join("js", filepath.Base(src)), openFile(src)); err != nil {
			return err
		}
	}
	for _, src := range bs.Styles {
		if err := bs.copyAsset(dest, path.Join("css", filepath.Base(src)), openFile(src)); err != nil {
			return err
		}
	}

	cssPath := filepath.Join(dest, HighlightCSS)
	if err := writeFile(cssPath, bs.Highlighter.WriteCSS); err != nil {
		return err
	}
	bs.markAsset(HighlightCSS)

	bs.logger.Info("Copied assets", logfields.Output(dest), logfields.Count(len(bs.assets)))
	return nil
}

func (bs *BuildState) copyAsset(dest, rel string, open func() (io.ReadCloser, error)) error {
	in, err := open()
	if err != nil {
		return wrapFS(err, "failed to open asset", rel)
	}
	defer func() { _ = in.Close() }()

	if err := writeFile(filepath.Join(dest, filepath.FromSlash(rel)), func(w io.Writer) error {
		_, err := io.Copy(w, in)
		return err
	}); err != nil {
		return err
	}
	bs.markAsset(rel)
	return nil
}

func openFile(p string) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) { return os.Open(filepath.Clean(p)) }
}

// writeFile creates the parent directory if needed and writes the file,
// replacing any previous content.
func writeFile(p string, fill func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return wrapFS(err, "failed to create directory", filepath.Dir(p))
	}
	f, err := os.Create(filepath.Clean(p))
	if err != nil {
		return wrapFS(err, "failed to create file", p)
	}
	if err := fill(f); err != nil {
		_ = f.Close()
		if errors.IsClassified(err) {
			return err
		}
		return wrapFS(err, "failed to write file", p)
	}
	if err := f.Close(); err != nil {
		return wrapFS(err, "failed to close file", p)
	}
	return nil
}

func wrapFS(err error, msg, p string) error {
	return errors.WrapError(err, errors.CategoryFileSystem, msg).WithContext("path", p).Build()
}
