package render

import (
	"errors"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
)

// ErrMissingTitle is returned for an item whose title slugs to nothing.
var ErrMissingTitle = errors.New("block has no usable title")

// PagePath returns the file path of an item page below outputDir.
func PagePath(outputDir, category, title string) (string, error) {
	if Slug(title) == "" {
		return "", ferrors.WrapError(ErrMissingTitle, ferrors.CategoryValidation, ErrMissingTitle.Error()).
			Fatal().
			WithContext("category", category).
			WithContext("title", title).
			Build()
	}
	return filepath.Join(outputDir, filepath.FromSlash(relPage(category, title))), nil
}
