// Package theme embeds the default styleguide templates and assets.
package theme

import (
	"embed"
	"io/fs"
)

//go:embed default
var embedded embed.FS

// Default returns the embedded theme rooted at its template files.
func Default() fs.FS {
	sub, err := fs.Sub(embedded, "default")
	if err != nil {
		panic("embedded default theme missing: " + err.Error())
	}
	return sub
}
