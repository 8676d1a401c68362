// Package render turns a category tree into HTML pages.
//
// A Renderer compiles the theme's templates once and exposes a per-run Helpers
// registry to them (slug, filePath, id, highlight, markdown) together with the
// recursive nav and categories fragments. Nothing is registered globally, so two
// renderers with different settings can coexist in one process.
package render
