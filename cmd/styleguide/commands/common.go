// Package commands implements the styleguide CLI subcommands.
package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/styleguide/internal/config"
)

// Environment variables consulted when setting up logging.
const (
	EnvLogLevel  = "STYLEGUIDE_LOG_LEVEL"
	EnvLogFormat = "STYLEGUIDE_LOG_FORMAT"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"styleguide.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build BuildCmd `cmd:"" default:"withargs" help:"Extract documentation blocks and render the styleguide"`
	Init  InitCmd  `cmd:"" help:"Write an example configuration file"`
	List  ListCmd  `cmd:"" help:"Print the category tree without writing any files"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := config.NormalizeLogLevel(os.Getenv(EnvLogLevel))
	if c.Verbose {
		level = config.LogLevelDebug
	}
	slog.SetDefault(NewLogger(os.Stderr, level, config.NormalizeLogFormat(os.Getenv(EnvLogFormat))))
	return nil
}

// NewLogger builds the process logger for the given level and format.
func NewLogger(w io.Writer, level config.LogLevel, format config.LogFormat) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slogLevel(level)}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func slogLevel(level config.LogLevel) slog.Level {
	switch level {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelWarn:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func loggerOf(g *Global) *slog.Logger {
	if g == nil || g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}
