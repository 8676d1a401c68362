package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/styleguide/internal/config"
	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
	"git.home.luguber.info/inful/styleguide/internal/site"
)

// BuildCmd implements the 'build' command. Flags override the configuration file.
type BuildCmd struct {
	Output      string `short:"o" help:"Output directory for the generated styleguide"`
	BasePath    string `name:"base-path" help:"URL path the styleguide is served under"`
	Capture     bool   `help:"Blocks end at an explicit 'end styleguide' marker"`
	Manifest    bool   `help:"Write manifest.json into the output directory"`
	VerifyLinks string `name:"verify-links" help:"Check internal links after the build (off, warn, strict)"`
	MetricsFile string `name:"metrics-file" help:"Write build metrics in node-exporter textfile format"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	if err := b.apply(cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = RunBuild(ctx, os.Stdout, cfg, loggerOf(g))
	return err
}

// apply copies explicitly set flags onto cfg.
func (b *BuildCmd) apply(cfg *config.Config) error {
	if b.Output != "" {
		cfg.Output = b.Output
	}
	if b.BasePath != "" {
		cfg.BasePath = b.BasePath
	}
	if b.Capture {
		cfg.Capture = true
	}
	if b.Manifest {
		cfg.Manifest = true
	}
	if b.MetricsFile != "" {
		cfg.MetricsFile = b.MetricsFile
	}
	if b.VerifyLinks != "" {
		mode, ok := config.NormalizeLinkMode(b.VerifyLinks)
		if !ok {
			return ferrors.ConfigError("invalid --verify-links value").
				UserAction().
				WithContext("value", b.VerifyLinks).
				Build()
		}
		cfg.VerifyLinks = mode
	}
	return nil
}

// RunBuild renders the styleguide and prints a one-line summary on w.
func RunBuild(ctx context.Context, w io.Writer, cfg *config.Config, logger *slog.Logger) (*site.Report, error) {
	_, _ = fmt.Fprintf(w, "Building styleguide into %s\n", cfg.Output)
	report, err := site.Run(ctx, cfg, site.WithLogger(logger))
	if report != nil {
		_, _ = fmt.Fprintln(w, report.Summary())
	}
	if err != nil {
		_, _ = fmt.Fprintln(w, "Build failed")
		return report, err
	}
	_, _ = fmt.Fprintln(w, "Build completed")
	return report, nil
}
