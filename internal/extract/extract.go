// Package extract finds styleguide documentation comments in stylesheet text.
//
// A block opens with "/*" followed on the same line by the word "styleguide". In
// non-capturing mode it closes at the first "*/"; in capturing mode it closes only
// after an explicit "end styleguide" marker, so example code in the body may itself
// contain comment terminators. Matching is case-sensitive and blocks without a
// terminator are not reported; in capturing mode a block still open when the next
// block starts is dropped.
package extract

import (
	"regexp"
	"strings"
)

const (
	// OpenMarker is the word that turns a comment into a documentation block.
	OpenMarker = "styleguide"
	// EndMarker closes a block in capturing mode.
	EndMarker = "end styleguide"
	// CommentClose terminates every block.
	CommentClose = "*/"
)

// Mode selects how the end of a block is found.
type Mode int

const (
	ModeNonCapturing Mode = iota
	ModeCapturing
)

// ModeFor maps the capture configuration flag to a Mode.
func ModeFor(capture bool) Mode {
	if capture {
		return ModeCapturing
	}
	return ModeNonCapturing
}

func (m Mode) String() string {
	if m == ModeCapturing {
		return "capturing"
	}
	return "non-capturing"
}

var (
	nonCapturingPattern = regexp.MustCompile(`/\*.*styleguide(?s:.*?)\*/`)

	// Capturing mode scans opener by opener.
	openerPattern = regexp.MustCompile(`/\*.*?styleguide`)
	endPattern    = regexp.MustCompile(`end styleguide(?s:.*?)\*/`)
)

// RawBlock is the verbatim text of one documentation comment, markers included.
type RawBlock struct {
	Text   string
	Offset int // byte offset of "/*" in the source text
	Line   int // 1-based line of "/*"
}

// Extract returns every block in text, in source order. Text without blocks
// yields an empty slice.
func Extract(text string, mode Mode) []RawBlock {
	var locs [][]int
	if mode == ModeCapturing {
		locs = capturingSpans(text)
	} else {
		locs = nonCapturingPattern.FindAllStringIndex(text, -1)
	}
	blocks := make([]RawBlock, 0, len(locs))

	line, scanned := 1, 0
	for _, loc := range locs {
		line += strings.Count(text[scanned:loc[0]], "\n")
		scanned = loc[0]
		blocks = append(blocks, RawBlock{
			Text:   text[loc[0]:loc[1]],
			Offset: loc[0],
			Line:   line,
		})
	}
	return blocks
}

// capturingSpans finds blocks closed by an "end styleguide" marker. A block whose
// marker is missing is skipped, and scanning resumes at the next opener so the
// following block is still found.
func capturingSpans(text string) [][]int {
	var spans [][]int
	pos := 0
	for pos < len(text) {
		open := openerPattern.FindStringIndex(text[pos:])
		if open == nil {
			break
		}
		start, body := pos+open[0], pos+open[1]

		end := endPattern.FindStringIndex(text[body:])
		if end == nil {
			break
		}
		if next := openerPattern.FindStringIndex(text[body : body+end[0]]); next != nil {
			pos = body + next[0]
			continue
		}
		spans = append(spans, []int{start, body + end[1]})
		pos = body + end[1]
	}
	return spans
}

// Inner strips the opening marker and the mode's closing terminator from a raw
// block. Any "*/" sequences inside a capturing-mode body are kept.
func Inner(raw string, mode Mode) string {
	if i := strings.Index(raw, OpenMarker); i >= 0 {
		raw = raw[i+len(OpenMarker):]
	}
	if mode == ModeCapturing {
		if i := strings.LastIndex(raw, EndMarker); i >= 0 {
			return raw[:i]
		}
	}
	return strings.TrimSuffix(raw, CommentClose)
}
