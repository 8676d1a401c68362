package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
)

const (
	highlightOpen  = `<pre class="sg-highlight"><code class="language-html">`
	highlightClose = `</code></pre>`
)

// Highlighter renders HTML source with CSS classes; the matching stylesheet comes
// from WriteCSS.
type Highlighter struct {
	lexer     chroma.Lexer
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewHighlighter returns a highlighter for the named chroma style. Unknown style
// names fall back to chroma's default style.
func NewHighlighter(style string) *Highlighter {
	lexer := lexers.Get("html")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return &Highlighter{
		lexer:     chroma.Coalesce(lexer),
		style:     styles.Get(style),
		formatter: chromahtml.New(chromahtml.WithClasses(true), chromahtml.PreventSurroundingPre(true)),
	}
}

// Highlight tokenises src and wraps the result in the sg-highlight marker.
func (h *Highlighter) Highlight(src string) (string, error) {
	it, err := h.lexer.Tokenise(nil, src)
	if err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryRender, "highlight tokenise failed").Build()
	}
	var sb strings.Builder
	sb.WriteString(highlightOpen)
	if err := h.formatter.Format(&sb, h.style, it); err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryRender, "highlight format failed").Build()
	}
	sb.WriteString(highlightClose)
	return sb.String(), nil
}

// WriteCSS writes the stylesheet for the highlighter's classes.
func (h *Highlighter) WriteCSS(w io.Writer) error {
	if err := h.formatter.WriteCSS(w, h.style); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryRender, "failed to write highlight stylesheet").Build()
	}
	return nil
}

func errUnsupportedHighlightInput(v any) error {
	return ferrors.NewError(ferrors.CategoryRender, "highlight expects a string").
		WithContext("type", fmt.Sprintf("%T", v)).
		Build()
}
