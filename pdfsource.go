// Copyright © 2026, Docsift Authors.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package outline

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/docsift/outline/logger"
)

// Line-assembly tuning, in points. Characters within rowTolerance of each
// other vertically belong to the same visual line; a horizontal gap wider
// than wordSpaceRatio of the font size becomes a space.
const (
	rowTolerance   = 3.0
	wordSpaceRatio = 0.3
)

// PDFSource loads documents through the pure-Go text layer of
// github.com/ledongthuc/pdf. Only the embedded text layer is read; scanned
// (image-only) PDFs come back empty.
type PDFSource struct{}

// NewPDFSource creates the default document source.
func NewPDFSource() *PDFSource {
	return &PDFSource{}
}

// Load extracts per-line text blocks, per-page text, and the embedded
// bookmark outline from a PDF file.
func (s *PDFSource) Load(ctx context.Context, path string) (doc *Document, err error) {
	// The underlying reader panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			logger.Error(fmt.Sprintf("pdf reader panic: path=%s err=%v", path, r))
			doc = nil
			err = fmt.Errorf("read pdf %s: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	total := r.NumPage()
	logger.Debug(fmt.Sprintf("PDF opened: path=%s pages=%d", path, total), true)

	doc = &Document{
		Name:      path,
		PageCount: total,
		PageTexts: make([]string, total),
	}

	var raw strings.Builder
	for i := 1; i <= total; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		p := r.Page(i)
		if p.V.IsNull() {
			logger.Debug(fmt.Sprintf("Null page encountered: index=%d", i), true)
			continue
		}

		height := pageHeight(p)
		if doc.PageHeight == 0 {
			doc.PageHeight = height
		}

		blocks := assembleLines(p.Content().Text, i, height)
		doc.Blocks = append(doc.Blocks, blocks...)

		lines := make([]string, 0, len(blocks))
		for _, b := range blocks {
			lines = append(lines, b.Text)
		}
		pageText := strings.Join(lines, "\n")
		doc.PageTexts[i-1] = pageText
		fmt.Fprintf(&raw, "\n--- PAGE %d ---\n%s", i, pageText)
	}
	doc.RawText = strings.TrimSpace(raw.String())

	doc.ExternalOutline = flattenOutline(r.Outline(), doc)
	if n := len(doc.ExternalOutline); n > 0 {
		logger.Debug(fmt.Sprintf("Embedded outline found: path=%s entries=%d", path, n), true)
	}

	return doc, nil
}

// assembleLines groups per-glyph text runs into visual lines and converts
// them to TextBlocks in top-of-page-down coordinates.
func assembleLines(texts []pdf.Text, page int, height float64) []TextBlock {
	if len(texts) == 0 {
		return nil
	}

	runs := make([]pdf.Text, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" && t.S != " " {
			continue
		}
		runs = append(runs, t)
	}
	if len(runs) == 0 {
		return nil
	}

	// Top of page first, then left to right. PDF Y grows upward.
	sort.SliceStable(runs, func(i, j int) bool {
		if diff := runs[i].Y - runs[j].Y; diff > rowTolerance || diff < -rowTolerance {
			return runs[i].Y > runs[j].Y
		}
		return runs[i].X < runs[j].X
	})

	var blocks []TextBlock
	var line []pdf.Text
	flush := func() {
		if b, ok := lineToBlock(line, page, height); ok {
			blocks = append(blocks, b)
		}
		line = line[:0]
	}
	for _, t := range runs {
		if len(line) > 0 {
			prev := line[len(line)-1]
			if prev.Y-t.Y > rowTolerance || t.Y-prev.Y > rowTolerance {
				flush()
			}
		}
		line = append(line, t)
	}
	flush()
	return blocks
}

// lineToBlock joins one row of runs into a TextBlock, inserting spaces at
// word-sized horizontal gaps and sniffing style flags from the font name.
func lineToBlock(line []pdf.Text, page int, height float64) (TextBlock, bool) {
	if len(line) == 0 {
		return TextBlock{}, false
	}

	var sb strings.Builder
	fontCounts := make(map[string]int)
	maxSize := 0.0
	minX, maxX, baseY := line[0].X, line[0].X, line[0].Y
	endX := line[0].X

	for _, t := range line {
		if endX > 0 && t.FontSize > 0 && t.X-endX > wordSpaceRatio*t.FontSize {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.S)
		fontCounts[t.Font]++
		if t.FontSize > maxSize {
			maxSize = t.FontSize
		}
		if t.X < minX {
			minX = t.X
		}
		if t.X+t.W > maxX {
			maxX = t.X + t.W
		}
		endX = t.X + t.W
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return TextBlock{}, false
	}

	font := ""
	if ranked := rankFonts(fontCounts); len(ranked) > 0 {
		font = ranked[0]
	}
	lower := strings.ToLower(font)

	y0 := height - baseY - maxSize
	if y0 < 0 {
		y0 = 0
	}
	return TextBlock{
		Text:     text,
		Page:     page,
		BBox:     BBox{X0: minX, Y0: y0, X1: maxX, Y1: height - baseY},
		FontName: font,
		FontSize: maxSize,
		Bold:     strings.Contains(lower, "bold") || strings.Contains(lower, "black") || strings.Contains(lower, "heavy"),
		Italic:   strings.Contains(lower, "italic") || strings.Contains(lower, "oblique"),
	}, true
}

// pageHeight reads the page MediaBox height, defaulting to US Letter when
// the box is missing or inherited out of reach.
func pageHeight(p pdf.Page) float64 {
	box := p.V.Key("MediaBox")
	if box.Kind() != pdf.Array || box.Len() < 4 {
		return defaultPageHeight
	}
	h := box.Index(3).Float64() - box.Index(1).Float64()
	if h <= 0 {
		return defaultPageHeight
	}
	return h
}

// flattenOutline walks the bookmark tree depth-first, mapping depth to
// heading level. Bookmarks carry no page number here, so each entry's page
// is resolved to the first page whose text contains the title; unresolvable
// entries are dropped as malformed.
func flattenOutline(root pdf.Outline, doc *Document) []ExternalOutlineEntry {
	var out []ExternalOutlineEntry
	lastPage := 1

	var walk func(node pdf.Outline, depth int)
	walk = func(node pdf.Outline, depth int) {
		title := strings.TrimSpace(node.Title)
		if depth > 0 && title != "" {
			level := H3
			switch depth {
			case 1:
				level = H1
			case 2:
				level = H2
			}
			if page := findTitlePage(doc, title, lastPage); page > 0 {
				out = append(out, ExternalOutlineEntry{Level: level, Text: title, Page: page})
				lastPage = page
			}
		}
		for _, child := range node.Child {
			walk(child, depth+1)
		}
	}
	walk(root, 0)
	return out
}

// findTitlePage locates the first page at or after `from` whose text
// contains the title (case-insensitive), wrapping to earlier pages before
// giving up with 0.
func findTitlePage(doc *Document, title string, from int) int {
	needle := strings.ToLower(title)
	for p := from; p <= len(doc.PageTexts); p++ {
		if strings.Contains(strings.ToLower(doc.PageTexts[p-1]), needle) {
			return p
		}
	}
	for p := 1; p < from && p <= len(doc.PageTexts); p++ {
		if strings.Contains(strings.ToLower(doc.PageTexts[p-1]), needle) {
			return p
		}
	}
	return 0
}
