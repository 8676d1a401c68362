package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
)

// Example returns the configuration written by Init.
func Example() *Config {
	cfg := &Config{
		Files: []string{
			"sass/partials/*.scss",
			"sass/style.scss",
		},
		Assets: AssetsConfig{
			JS:  []string{"js/*.js"},
			CSS: []string{"css/normalize.css"},
		},
		Output: "styleguide/",
	}
	cfg.ApplyDefaults()
	return cfg
}

// Init writes an example configuration file. An existing file is kept unless force is set.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return ferrors.ValidationError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to stat config file").
			WithContext("path", configPath).
			Build()
	}

	data, err := yaml.Marshal(Example())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}
