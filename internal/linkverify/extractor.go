package linkverify

import (
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/styleguide/internal/foundation/errors"
)

// Link represents an extracted link from HTML content.
type Link struct {
	URL        string // The URL or path
	Text       string // Link text, alt text or rel
	Tag        string // HTML tag (a, img, script, link, etc.)
	Attribute  string // Attribute containing the link (href, src)
	IsInternal bool   // True if link has no scheme and host
	Line       int    // Element ordinal, a rough position in the document
}

// linkAttrs maps tags to the attribute holding their link.
var linkAttrs = map[string]string{
	"a":      "href",
	"link":   "href",
	"img":    "src",
	"script": "src",
	"video":  "src",
	"audio":  "src",
	"source": "src",
	"iframe": "src",
}

// ExtractLinks extracts all links from an HTML file.
func ExtractLinks(htmlPath string) ([]*Link, error) {
	file, err := os.Open(filepath.Clean(htmlPath))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to open HTML file").WithContext("path", htmlPath).Build()
	}
	defer func() {
		_ = file.Close()
	}()

	return ExtractLinksFromReader(file)
}

// ExtractLinksFromReader extracts all links from an HTML reader in document order.
func ExtractLinksFromReader(r io.Reader) ([]*Link, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryParse, "failed to parse HTML").Build()
	}

	var links []*Link
	var lineNum int

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			lineNum++
			if link := elementLink(n, lineNum); link != nil {
				links = append(links, link)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return links, nil
}

func elementLink(n *html.Node, lineNum int) *Link {
	attr, ok := linkAttrs[n.Data]
	if !ok {
		return nil
	}
	val := getAttr(n, attr)
	if val == "" {
		return nil
	}

	link := &Link{URL: val, Tag: n.Data, Attribute: attr, IsInternal: isInternalLink(val), Line: lineNum}
	switch n.Data {
	case "a":
		link.Text = extractText(n)
	case "img":
		link.Text = getAttr(n, "alt")
	case "link":
		link.Text = getAttr(n, "rel")
	}
	return link
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// extractText extracts text content from an HTML node and its children.
func extractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}

	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text.WriteString(extractText(c))
	}

	return strings.TrimSpace(text.String())
}

func isInternalLink(linkURL string) bool {
	u, err := url.Parse(linkURL)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}

// ShouldVerifyLink reports whether a link points at something a build writes.
func ShouldVerifyLink(link *Link) bool {
	if link.URL == "" || strings.HasPrefix(link.URL, "#") {
		return false
	}
	for _, prefix := range []string{"mailto:", "tel:", "javascript:", "data:"} {
		if strings.HasPrefix(link.URL, prefix) {
			return false
		}
	}
	return link.IsInternal
}
