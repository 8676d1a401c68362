// Package sources enumerates stylesheet files matched by glob patterns and decodes
// their contents into text for block extraction.
package sources

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"golang.org/x/text/encoding/htmlindex"

	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
)

// SourceFile is one decoded input file.
type SourceFile struct {
	Path string
	Text string
}

const globMeta = `*?[{\`

// Discover expands glob patterns relative to the working directory. Results keep
// pattern order and lexical walk order within a pattern; a file matched by more
// than one pattern is listed once. Patterns matching nothing are not an error.
func Discover(patterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})

	for _, raw := range patterns {
		pattern := normalizePattern(raw)
		matches, err := expand(pattern)
		if err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "invalid file pattern").
				Fatal().
				WithContext("pattern", raw).
				Build()
		}
		for _, m := range matches {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	return files, nil
}

func normalizePattern(raw string) string {
	p := filepath.ToSlash(strings.TrimSpace(raw))
	if p == "" {
		return p
	}
	return path.Clean(p)
}

func expand(pattern string) ([]string, error) {
	base := staticBase(pattern)
	if base == pattern {
		info, err := os.Stat(filepath.FromSlash(pattern))
		if err != nil || info.IsDir() {
			return nil, nil
		}
		return []string{pattern}, nil
	}

	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, err
	}

	var matches []string
	walkErr := filepath.WalkDir(filepath.FromSlash(base), func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		candidate := filepath.ToSlash(p)
		if g.Match(candidate) {
			matches = append(matches, candidate)
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return matches, nil
}

// staticBase returns the leading directory segments of pattern that contain no
// glob syntax. A pattern without any glob syntax is returned unchanged.
func staticBase(pattern string) string {
	if !strings.ContainsAny(pattern, globMeta) {
		return pattern
	}
	segments := strings.Split(pattern, "/")
	var fixed []string
	for _, seg := range segments {
		if strings.ContainsAny(seg, globMeta) {
			break
		}
		fixed = append(fixed, seg)
	}
	switch {
	case len(fixed) == 0:
		return "."
	case len(fixed) == 1 && fixed[0] == "":
		return "/"
	default:
		return strings.Join(fixed, "/")
	}
}

// Read loads a file and decodes it with the given WHATWG encoding label.
// A leading byte order mark is dropped.
func Read(filePath, encoding string) (SourceFile, error) {
	enc, err := htmlindex.Get(encoding)
	if err != nil {
		return SourceFile{}, ferrors.WrapError(err, ferrors.CategoryConfig, "unsupported encoding").
			Fatal().
			WithContext("encoding", encoding).
			Build()
	}

	data, err := os.ReadFile(filepath.FromSlash(filePath))
	if err != nil {
		return SourceFile{}, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read source file").
			WithContext("path", filePath).
			Build()
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return SourceFile{}, ferrors.WrapError(err, ferrors.CategoryParse, "failed to decode source file").
			Fatal().
			WithContext("path", filePath).
			WithContext("encoding", encoding).
			Build()
	}

	return SourceFile{
		Path: filePath,
		Text: strings.TrimPrefix(string(decoded), "\ufeff"),
	}, nil
}
