package render

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
)

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
	"typographer":   extension.Typographer,
}

// gfmBundle lists the extensions extension.GFM already registers.
var gfmBundle = []goldmark.Extender{extension.Linkify, extension.Table, extension.Strikethrough, extension.TaskList}

// NewMarkdown builds the goldmark engine used for block bodies. Raw HTML is
// passed through because bodies usually contain example markup. Unknown
// extension names are ignored; an empty list selects gfm.
func NewMarkdown(extensions []string) goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(collectExtensions(extensions)...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
}

// KnownExtension reports whether name selects a markdown extension.
func KnownExtension(name string) bool {
	_, ok := extensionRegistry[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{extension.GFM}
	}

	keys := make([]string, 0, len(names))
	seen := map[goldmark.Extender]struct{}{}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		keys = append(keys, key)
		if key == "gfm" {
			for _, ext := range gfmBundle {
				seen[ext] = struct{}{}
			}
		}
	}

	var extenders []goldmark.Extender
	for _, key := range keys {
		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}
		if _, dup := seen[ext]; dup {
			continue
		}
		seen[ext] = struct{}{}
		extenders = append(extenders, ext)
	}
	return extenders
}

func convertMarkdown(md goldmark.Markdown, text string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryRender, "markdown conversion failed").Build()
	}
	return buf.String(), nil
}
