package config

import (
	"bytes"
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
)

// DefaultPath is the configuration file looked up when --config is not given.
const DefaultPath = "styleguide.yaml"

// Config is the process-wide configuration for one styleguide build.
type Config struct {
	// Files lists glob patterns of stylesheet sources to scan for documentation blocks.
	Files     []string        `yaml:"files"`
	Assets    AssetsConfig    `yaml:"assets,omitempty"`
	Templates TemplatesConfig `yaml:"templates,omitempty"`

	Output   string `yaml:"output"`
	BasePath string `yaml:"base_path"`
	AssetDir string `yaml:"asset_dir"`
	Encoding string `yaml:"encoding"`
	// Capture switches the extractor to capturing mode: blocks end at an explicit
	// "end styleguide" marker, so bodies may contain "*/".
	Capture bool   `yaml:"capture"`
	Title   string `yaml:"title"`

	// Concurrency bounds parallel output writes. Zero means unbounded.
	Concurrency int             `yaml:"concurrency,omitempty"`
	Manifest    bool            `yaml:"manifest,omitempty"`
	VerifyLinks LinkMode        `yaml:"verify_links,omitempty"`
	MetricsFile string          `yaml:"metrics_file,omitempty"`
	Markdown    MarkdownConfig  `yaml:"markdown,omitempty"`
	Highlight   HighlightConfig `yaml:"highlight,omitempty"`
}

// AssetsConfig lists extra script and stylesheet globs copied next to the theme assets.
type AssetsConfig struct {
	JS  []string `yaml:"js,omitempty"`
	CSS []string `yaml:"css,omitempty"`
}

// TemplatesConfig points at theme directories overriding the embedded theme.
// Index must contain index.html, category.html, nav.html and an assets/ folder;
// Item must contain item.html.
type TemplatesConfig struct {
	Index string `yaml:"index,omitempty"`
	Item  string `yaml:"item,omitempty"`
}

// MarkdownConfig selects goldmark extensions by name (gfm, table, linkify, ...).
type MarkdownConfig struct {
	Extensions []string `yaml:"extensions,omitempty"`
}

// HighlightConfig selects the chroma style used for highlight.css.
type HighlightConfig struct {
	Style string `yaml:"style,omitempty"`
}

// Default returns a configuration with every default applied and no input files.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset fields. It is idempotent.
func (c *Config) ApplyDefaults() {
	if c.Output == "" {
		c.Output = "styleguide/"
	}
	if c.BasePath == "" {
		c.BasePath = "/"
	}
	if c.AssetDir == "" {
		c.AssetDir = "assets"
	}
	if c.Encoding == "" {
		c.Encoding = "utf8"
	}
	if c.Title == "" {
		c.Title = "Styleguide"
	}
	if c.VerifyLinks == "" {
		c.VerifyLinks = LinkModeOff
	}
	if c.Highlight.Style == "" {
		c.Highlight.Style = "github"
	}
}

// Load reads, expands and validates a configuration file. Environment variables from
// .env/.env.local are loaded first and may be referenced as ${NAME} in the file.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ferrors.NewError(ferrors.CategoryNotFound, "configuration file not found").
				UserAction().
				WithContext("path", configPath).
				Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").
			WithContext("path", configPath).
			Build()
	}

	cfg, err := Parse([]byte(os.ExpandEnv(string(data))))
	if err != nil {
		if classified, ok := ferrors.AsClassified(err); ok {
			return nil, classified.WithContext("path", configPath)
		}
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML configuration, applies defaults and validates the result.
// Unknown keys are rejected so typos surface instead of silently falling back to defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to unmarshal config").Fatal().Build()
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
