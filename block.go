// Copyright © 2026, Docsift Authors.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package outline

import (
	"fmt"
	"strings"
)

// Level is the nesting depth of a detected heading.
type Level int

const (
	H1 Level = iota + 1
	H2
	H3
)

func (l Level) String() string {
	switch l {
	case H1:
		return "H1"
	case H2:
		return "H2"
	case H3:
		return "H3"
	}
	return fmt.Sprintf("H%d", int(l))
}

// MarshalText renders the level as "H1".."H3" for JSON output.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText parses "H1".."H3" (case-insensitive). Anything else maps to H3,
// the deepest level, so malformed external outlines degrade instead of failing.
func (l *Level) UnmarshalText(b []byte) error {
	switch strings.ToUpper(strings.TrimSpace(string(b))) {
	case "H1", "1":
		*l = H1
	case "H2", "2":
		*l = H2
	default:
		*l = H3
	}
	return nil
}

// BBox is an axis-aligned bounding box in page coordinates.
// Y increases downward: y0 near zero means top of the page.
type BBox struct {
	X0, Y0, X1, Y1 float64
}

func (b BBox) Width() float64 { return b.X1 - b.X0 }

// TextBlock is one visually distinct line of text with its font and position
// metadata. Blocks are created once by the normalizer and never mutated.
type TextBlock struct {
	Text     string
	Page     int
	BBox     BBox
	FontName string
	FontSize float64
	Bold     bool
	Italic   bool
	Color    int
}

// FontStatistics holds the document-wide font-size distribution used as the
// baseline against which unusually large text is judged.
type FontStatistics struct {
	AvgSize     float64
	MaxSize     float64
	MinSize     float64
	SizeStdDev  float64
	CommonFonts []string // most frequent first
	TotalBlocks int
}

// ScoredCandidate pairs a block with its heading-likelihood score.
// It only lives between scoring and filtering.
type ScoredCandidate struct {
	Block TextBlock
	Score float64

	ord int // position in document order, for deterministic output ordering
}

// Heading is the final unit of output.
type Heading struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// ExternalOutlineEntry is a table-of-contents entry supplied by the source
// document itself (e.g. PDF bookmarks). It is a candidate heading pending
// validation against the page text.
type ExternalOutlineEntry struct {
	Level Level
	Text  string
	Page  int
}

// Document is everything the upstream extractor hands over for one document.
type Document struct {
	// Name is the source filename, used only for the fallback title.
	Name string

	// Blocks is the ordered per-line text with font and layout metadata.
	// May be empty when the extractor could not recover font information.
	Blocks []TextBlock

	// RawText is the concatenated page text with "--- PAGE N ---" markers,
	// used by the degraded plain-text path and the title extractor.
	RawText string

	// PageTexts holds per-page text, index 0 = page 1. Derived from RawText
	// when the extractor does not fill it.
	PageTexts []string

	// PageCount is the total page count when known, else 0.
	PageCount int

	// PageHeight in points; 0 means the US-Letter default.
	PageHeight float64

	// ExternalOutline is the embedded bookmark outline, if any.
	ExternalOutline []ExternalOutlineEntry
}

// Result is the output contract: a title plus the ordered heading list.
type Result struct {
	Title   string    `json:"title"`
	Outline []Heading `json:"outline"`
}

// pageText returns the text of the given 1-based page, deriving the per-page
// split from RawText markers, or from Blocks when no raw dump was supplied,
// on first use.
func (d *Document) pageText(page int) string {
	if len(d.PageTexts) == 0 {
		if d.RawText != "" {
			d.PageTexts = splitPageTexts(d.RawText)
		} else if len(d.Blocks) > 0 {
			d.PageTexts = pageTextsFromBlocks(d.Blocks)
		}
	}
	if page < 1 || page > len(d.PageTexts) {
		return ""
	}
	return d.PageTexts[page-1]
}

// pageTextsFromBlocks joins block text per page, index 0 = page 1. Pages with
// no blocks come out empty.
func pageTextsFromBlocks(blocks []TextBlock) []string {
	max := 0
	for _, b := range blocks {
		if b.Page > max {
			max = b.Page
		}
	}
	if max == 0 {
		return nil
	}
	pages := make([][]string, max)
	for _, b := range blocks {
		if b.Page < 1 {
			continue
		}
		if t := strings.TrimSpace(b.Text); t != "" {
			pages[b.Page-1] = append(pages[b.Page-1], t)
		}
	}
	out := make([]string, max)
	for i, ls := range pages {
		out[i] = strings.Join(ls, "\n")
	}
	return out
}

// pages returns the best-known page count.
func (d *Document) pages() int {
	if d.PageCount > 0 {
		return d.PageCount
	}
	if len(d.PageTexts) == 0 && d.RawText != "" {
		d.PageTexts = splitPageTexts(d.RawText)
	}
	if n := len(d.PageTexts); n > 0 {
		return n
	}
	max := 0
	for _, b := range d.Blocks {
		if b.Page > max {
			max = b.Page
		}
	}
	return max
}

// lines returns the document text as plain lines with page markers removed,
// preferring block text over the raw dump.
func (d *Document) lines() []string {
	if len(d.Blocks) > 0 {
		out := make([]string, 0, len(d.Blocks))
		for _, b := range d.Blocks {
			if t := strings.TrimSpace(b.Text); t != "" {
				out = append(out, t)
			}
		}
		return out
	}
	var out []string
	for _, line := range strings.Split(d.RawText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || pageMarkerRE.MatchString(line) {
			continue
		}
		out = append(out, line)
	}
	return out
}
