package render

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
)

func TestPagePath(t *testing.T) {
	p, err := PagePath("out/", "Forms => Inputs", "Text Field")
	require.NoError(t, err)
	require.Equal(t, filepath.Join("out", "forms", "inputs", "text-field.html"), p)
}

func TestPagePath_MissingTitle(t *testing.T) {
	for _, title := range []string{"", "???"} {
		_, err := PagePath("out", "Forms", title)
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrMissingTitle))
		require.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
	}
}
