package errors

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, 0},
		{"validation", ValidationError("bad flag").Build(), 2},
		{"parse", ParseError("bad yaml").Build(), 3},
		{"config", ConfigError("bad config").Build(), 7},
		{"render wrapped", fmt.Errorf("stage: %w", RenderError("boom").Build()), 11},
		{"filesystem", FileSystemError("write").Build(), 11},
		{"internal", InternalError("tracker").Build(), 10},
		{"unclassified", errors.New("unknown"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	err := WrapError(errors.New("yaml: line 2: did not find expected key"), CategoryParse, "malformed block metadata").
		Fatal().
		WithContext("path", "sass/buttons.scss").
		WithContext("line", 12).
		Build()

	quiet := NewCLIErrorAdapter(false, slog.Default())
	require.Equal(t,
		"Error: malformed block metadata in sass/buttons.scss:12: yaml: line 2: did not find expected key",
		quiet.FormatError(err))

	require.Equal(t, "Internal error occurred (use -v for details)",
		quiet.FormatError(InternalError("tracker mismatch").Build()))

	verbose := NewCLIErrorAdapter(true, slog.Default())
	require.Equal(t, err.Error(), verbose.FormatError(err))
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var out, logs bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil)))
	adapter.out = &out
	code := -1
	adapter.exit = func(c int) { code = c }

	adapter.HandleError(nil)
	require.Equal(t, -1, code)

	adapter.HandleError(ConfigError("no input files configured").Build())
	require.Equal(t, 7, code)
	require.Contains(t, out.String(), "no input files configured")
	require.Contains(t, logs.String(), "category=config")
}
