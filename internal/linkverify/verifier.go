// Package linkverify checks that internal links in a built styleguide resolve to
// files in the output directory.
package linkverify

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/styleguide/internal/foundation/errors"
	"git.home.luguber.info/inful/styleguide/internal/logfields"
)

// BrokenLink is an internal link whose target file does not exist.
type BrokenLink struct {
	Page   string `json:"page"`
	URL    string `json:"url"`
	Tag    string `json:"tag"`
	Line   int    `json:"line"`
	Target string `json:"target"`
}

// Result summarises one verification pass.
type Result struct {
	PagesChecked int
	LinksChecked int
	Broken       []BrokenLink
}

// OK reports whether no broken links were found.
func (r *Result) OK() bool { return len(r.Broken) == 0 }

// Verifier resolves links against an output directory served under basePath.
type Verifier struct {
	outputDir   string
	basePath    string
	concurrency int
	logger      *slog.Logger
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithConcurrency bounds the number of pages parsed in parallel.
func WithConcurrency(n int) Option { return func(v *Verifier) { v.concurrency = n } }

// WithLogger sets the logger used for broken link warnings.
func WithLogger(l *slog.Logger) Option { return func(v *Verifier) { v.logger = l } }

// NewVerifier returns a verifier for outputDir. basePath must carry leading and
// trailing slashes.
func NewVerifier(outputDir, basePath string, opts ...Option) *Verifier {
	v := &Verifier{outputDir: outputDir, basePath: basePath, concurrency: 8, logger: slog.Default()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

type pageResult struct {
	links  int
	broken []BrokenLink
}

// Verify checks every page, given as paths relative to the output directory.
// Broken links are returned in page order; only I/O and parse failures are errors.
func (v *Verifier) Verify(ctx context.Context, pages []string) (*Result, error) {
	results := make([]pageResult, len(pages))

	g, gctx := errgroup.WithContext(ctx)
	if v.concurrency > 0 {
		g.SetLimit(v.concurrency)
	}
	for i, page := range pages {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := v.verifyPage(page)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &Result{PagesChecked: len(pages)}
	for _, r := range results {
		out.LinksChecked += r.links
		out.Broken = append(out.Broken, r.broken...)
	}
	for _, b := range out.Broken {
		v.logger.Warn("Broken link",
			logfields.Path(b.Page),
			logfields.URL(b.URL),
			slog.String("target", b.Target))
	}
	return out, nil
}

func (v *Verifier) verifyPage(page string) (pageResult, error) {
	links, err := ExtractLinks(filepath.Join(v.outputDir, filepath.FromSlash(page)))
	if err != nil {
		if ce, ok := errors.AsClassified(err); ok {
			return pageResult{}, ce.WithContext("page", page)
		}
		return pageResult{}, err
	}

	var res pageResult
	for _, link := range links {
		if !ShouldVerifyLink(link) {
			continue
		}
		rel, ok := v.resolve(page, link.URL)
		if !ok {
			continue
		}
		res.links++
		if v.exists(rel) {
			continue
		}
		res.broken = append(res.broken, BrokenLink{
			Page:   page,
			URL:    link.URL,
			Tag:    link.Tag,
			Line:   link.Line,
			Target: rel,
		})
	}
	return res, nil
}

// resolve maps a link found on page to a slash path relative to the output
// directory. Links outside the base path are not ours and report false.
func (v *Verifier) resolve(page, raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" {
		return "", false
	}

	p := u.Path
	if !strings.HasPrefix(p, "/") {
		p = path.Join(path.Dir(v.basePath+page), p)
		if strings.HasSuffix(u.Path, "/") {
			p += "/"
		}
	}
	if p+"/" == v.basePath {
		p = v.basePath
	}
	if !strings.HasPrefix(p, v.basePath) {
		return "", false
	}

	rel := strings.TrimPrefix(p, v.basePath)
	if rel == "" || strings.HasSuffix(rel, "/") {
		rel += "index.html"
	}
	return rel, true
}

func (v *Verifier) exists(rel string) bool {
	target := filepath.Join(v.outputDir, filepath.FromSlash(rel))
	info, err := os.Stat(target)
	if err != nil {
		return false
	}
	if info.IsDir() {
		_, err = os.Stat(filepath.Join(target, "index.html"))
		return err == nil
	}
	return true
}
