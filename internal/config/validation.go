package config

import (
	"strings"

	"golang.org/x/text/encoding/htmlindex"

	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
)

// Validate checks the fields the build depends on. Only structural problems are
// reported; glob patterns are compiled later by the sources stage.
func (c *Config) Validate() error {
	if len(c.Files) == 0 {
		return ferrors.ConfigError("no input files configured").WithContext("field", "files").Build()
	}
	for i, pattern := range c.Files {
		if strings.TrimSpace(pattern) == "" {
			return ferrors.ConfigError("empty file pattern").WithContext("field", "files").WithContext("index", i).Build()
		}
	}
	if strings.TrimSpace(c.Output) == "" {
		return ferrors.ConfigError("output directory is required").WithContext("field", "output").Build()
	}
	if strings.ContainsAny(c.AssetDir, `/\`) || c.AssetDir == "." || c.AssetDir == ".." {
		return ferrors.ConfigError("asset_dir must be a single directory name").
			WithContext("field", "asset_dir").
			WithContext("value", c.AssetDir).
			Build()
	}
	if _, err := htmlindex.Get(c.Encoding); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "unsupported encoding").
			Fatal().
			WithContext("field", "encoding").
			WithContext("value", c.Encoding).
			Build()
	}
	if c.Concurrency < 0 {
		return ferrors.ConfigError("concurrency must not be negative").WithContext("field", "concurrency").Build()
	}
	mode, ok := NormalizeLinkMode(string(c.VerifyLinks))
	if !ok {
		return ferrors.ConfigError("invalid verify_links mode").
			WithContext("field", "verify_links").
			WithContext("value", string(c.VerifyLinks)).
			WithContext("valid", strings.Join(enumKeys(linkModes), ",")).
			Build()
	}
	c.VerifyLinks = mode
	return nil
}
