package theme

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultContainsTemplates(t *testing.T) {
	fsys := Default()
	for _, name := range []string{"index.html", "category.html", "nav.html", "item.html", "assets/styleguide.css"} {
		_, err := fs.Stat(fsys, name)
		require.NoError(t, err, name)
	}
}
