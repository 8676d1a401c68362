// Package block decodes raw styleguide comments into documentation blocks.
package block

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/inful/mdfp"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/styleguide/internal/extract"
	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
)

var (
	// ErrMalformedMetadata indicates the metadata section is not a YAML mapping.
	ErrMalformedMetadata = errors.New("malformed block metadata")

	// ErrMissingCategory indicates a block without a usable category path.
	ErrMissingCategory = errors.New("block has no category")
)

// rule separates metadata from body: three or more dashes.
var rule = regexp.MustCompile(`-{3,}`)

// Metadata is the decoded YAML header of a block. Category and Title are lifted
// out of Fields for convenience; Fields keeps every key including those two.
type Metadata struct {
	Category string
	Title    string
	Fields   map[string]any
}

// Get returns an arbitrary metadata field.
func (m Metadata) Get(key string) any {
	return m.Fields[key]
}

// Block is one parsed documentation comment. It is not modified after Parse.
type Block struct {
	Info Metadata
	// Body is the raw documentation text following the first horizontal rule.
	Body        string
	Source      string
	Line        int
	Fingerprint string
}

// Parse decodes a raw block. Malformed metadata and a missing category are
// fatal parse errors carrying the source path and line.
func Parse(raw extract.RawBlock, mode extract.Mode, source string) (*Block, error) {
	inner := extract.Inner(raw.Text, mode)

	header, body := inner, ""
	if loc := rule.FindStringIndex(inner); loc != nil {
		header, body = inner[:loc[0]], inner[loc[1]:]
	}

	info, err := decodeMetadata(header)
	if err != nil {
		msg := ErrMalformedMetadata.Error()
		if errors.Is(err, ErrMissingCategory) {
			msg = ErrMissingCategory.Error()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryParse, msg).
			Fatal().
			WithContext("path", source).
			WithContext("line", raw.Line).
			Build()
	}

	return &Block{
		Info:        info,
		Body:        body,
		Source:      source,
		Line:        raw.Line,
		Fingerprint: mdfp.CalculateFingerprintFromParts(strings.TrimSpace(header), body),
	}, nil
}

func decodeMetadata(header string) (Metadata, error) {
	var fields map[string]any
	if err := yaml.Unmarshal([]byte(header), &fields); err != nil {
		return Metadata{}, fmt.Errorf("%w: %w", ErrMalformedMetadata, err)
	}
	if fields == nil {
		fields = map[string]any{}
	}

	category, ok := fields["category"].(string)
	if !ok || strings.TrimSpace(category) == "" {
		return Metadata{}, ErrMissingCategory
	}

	return Metadata{
		Category: category,
		Title:    scalarString(fields["title"]),
		Fields:   fields,
	}, nil
}

func scalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// ParseSource extracts and parses every block in one source file, in order.
// The first failing block aborts the file.
func ParseSource(path, text string, mode extract.Mode) ([]*Block, error) {
	raws := extract.Extract(text, mode)
	blocks := make([]*Block, 0, len(raws))
	for _, raw := range raws {
		b, err := Parse(raw, mode, path)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}
