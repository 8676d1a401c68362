package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"git.home.luguber.info/inful/styleguide/internal/block"
	"git.home.luguber.info/inful/styleguide/internal/config"
	"git.home.luguber.info/inful/styleguide/internal/extract"
	"git.home.luguber.info/inful/styleguide/internal/logfields"
	"git.home.luguber.info/inful/styleguide/internal/sources"
	"git.home.luguber.info/inful/styleguide/internal/tree"
)

// ListCmd implements the 'list' command.
type ListCmd struct {
	Capture bool `help:"Blocks end at an explicit 'end styleguide' marker"`
}

func (l *ListCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	if l.Capture {
		cfg.Capture = true
	}
	return RunList(os.Stdout, cfg, loggerOf(g))
}

// RunList discovers and parses every configured source and prints the category
// tree on w. Nothing is written to the output directory.
func RunList(w io.Writer, cfg *config.Config, logger *slog.Logger) error {
	files, err := sources.Discover(cfg.Files)
	if err != nil {
		return err
	}
	logger.Debug("Discovered sources", logfields.Count(len(files)))

	mode := extract.ModeFor(cfg.Capture)
	var blocks []*block.Block
	for _, f := range files {
		src, err := sources.Read(f, cfg.Encoding)
		if err != nil {
			return err
		}
		parsed, err := block.ParseSource(src.Path, src.Text, mode)
		if err != nil {
			return err
		}
		blocks = append(blocks, parsed...)
	}

	root, err := tree.Fold(tree.NewRoot(), blocks)
	if err != nil {
		return err
	}

	if root.Len() == 0 {
		_, _ = fmt.Fprintln(w, "No documentation blocks found.")
		return nil
	}
	categories := 0
	root.Walk(func(*tree.Node) bool {
		categories++
		return true
	})
	printCategories(w, root, 0)
	_, _ = fmt.Fprintf(w, "\n%d blocks in %d categories from %d files\n", root.Count(), categories, len(files))
	return nil
}

func printCategories(w io.Writer, c *tree.Categories, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, node := range c.Nodes() {
		_, _ = fmt.Fprintf(w, "%s%s\n", indent, node.Name)
		for _, b := range node.Items {
			title := b.Info.Title
			if title == "" {
				title = "(untitled)"
			}
			_, _ = fmt.Fprintf(w, "%s  - %s (%s:%d)\n", indent, title, b.Source, b.Line)
		}
		if node.Subcat != nil {
			printCategories(w, node.Subcat, depth+1)
		}
	}
}
