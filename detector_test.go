// Copyright © 2026, Docsift Authors.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package outline

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fontDoc builds a small two-page report with distinct heading and body
// styles, enough for the statistical path to separate them.
func fontDoc() *Document {
	blocks := []TextBlock{
		{Text: "Annual Engineering Report", Page: 1, FontSize: 24, Bold: true, FontName: "Helvetica-Bold",
			BBox: BBox{X0: 50, Y0: 120, X1: 300, Y1: 144}},
		{Text: "1. Introduction", Page: 1, FontSize: 16, Bold: true, FontName: "Helvetica-Bold",
			BBox: BBox{X0: 50, Y0: 200, X1: 200, Y1: 216}},
		{Text: "2. Methods", Page: 2, FontSize: 16, Bold: true, FontName: "Helvetica-Bold",
			BBox: BBox{X0: 50, Y0: 100, X1: 180, Y1: 116}},
		{Text: "2.1 Data Collection", Page: 2, FontSize: 13, FontName: "Helvetica",
			BBox: BBox{X0: 50, Y0: 150, X1: 220, Y1: 163}},
	}
	for i := 0; i < 10; i++ {
		page := 1
		if i >= 5 {
			page = 2
		}
		blocks = append(blocks, TextBlock{
			Text:     fmt.Sprintf("body prose line %d keeps describing the experiment in plain words without end", i),
			Page:     page,
			FontSize: 10,
			FontName: "Helvetica",
			BBox:     BBox{X0: 50, Y0: 300 + float64(i)*14, X1: 560, Y1: 312 + float64(i)*14},
		})
	}

	doc := &Document{Name: "annual-report.pdf", Blocks: blocks, PageCount: 2, PageHeight: 792}
	return doc
}

func TestFontAwareDetector_Detect(t *testing.T) {
	cfg := NewDefaultConfig()

	res, err := NewFontAwareDetector(cfg).Detect(fontDoc())

	require.NoError(t, err)
	require.NotEmpty(t, res.Outline)

	texts := make([]string, len(res.Outline))
	for i, h := range res.Outline {
		texts[i] = h.Text
	}
	assert.Contains(t, texts, "Annual Engineering Report")
	assert.Contains(t, texts, "1. Introduction")
	assert.Contains(t, texts, "2. Methods")
	assert.NotContains(t, texts, "body prose line 0 keeps describing the experiment in plain words without end")

	assert.Equal(t, "Annual Engineering Report", res.Title)

	// Emission order follows (page, appearance).
	lastPage := 0
	for _, h := range res.Outline {
		assert.GreaterOrEqual(t, h.Page, lastPage)
		lastPage = h.Page
	}

	// Hierarchy invariant.
	last := H1
	for _, h := range res.Outline {
		assert.LessOrEqual(t, int(h.Level), int(last)+1)
		last = h.Level
	}
}

func TestFontAwareDetector_Idempotent(t *testing.T) {
	cfg := NewDefaultConfig()
	det := NewFontAwareDetector(cfg)

	first, err := det.Detect(fontDoc())
	require.NoError(t, err)
	second, err := det.Detect(fontDoc())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFontAwareDetector_DegenerateInput(t *testing.T) {
	cfg := NewDefaultConfig()

	res, err := NewFontAwareDetector(cfg).Detect(&Document{Name: "empty.pdf"})

	require.NoError(t, err)
	assert.Equal(t, "Document from empty", res.Title)
	assert.NotNil(t, res.Outline)
	assert.Empty(t, res.Outline)
}

func TestFontAwareDetector_Deduplicated(t *testing.T) {
	cfg := NewDefaultConfig()

	res, err := NewFontAwareDetector(cfg).Detect(fontDoc())
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, h := range res.Outline {
		key := normalizeKey(h.Text)
		assert.False(t, seen[key], "duplicate heading %q", h.Text)
		seen[key] = true
	}
}

func TestFontAwareDetector_ReconcilesExternalOutline(t *testing.T) {
	cfg := NewDefaultConfig()
	doc := fontDoc()
	doc.PageTexts = []string{
		"Annual Engineering Report\n1. Introduction\nbody prose",
		"2. Methods\n2.1 Data Collection\nbody prose",
	}
	doc.ExternalOutline = []ExternalOutlineEntry{
		{Level: H1, Text: "1. Introduction", Page: 1},
		{Level: H1, Text: "Nowhere To Be Found", Page: 2},
	}

	res, err := NewFontAwareDetector(cfg).Detect(doc)
	require.NoError(t, err)

	texts := make([]string, len(res.Outline))
	for i, h := range res.Outline {
		texts[i] = h.Text
	}
	assert.Contains(t, texts, "1. Introduction")
	assert.NotContains(t, texts, "Nowhere To Be Found")
}

func TestDetectorFor(t *testing.T) {
	cfg := NewDefaultConfig()

	withFonts := &Document{Blocks: []TextBlock{{Text: "x", FontSize: 12}}}
	withoutFonts := &Document{Blocks: []TextBlock{{Text: "x"}}}
	textOnly := &Document{RawText: "plain"}

	assert.IsType(t, &FontAwareDetector{}, detectorFor(withFonts, cfg))
	assert.IsType(t, &PlainTextDetector{}, detectorFor(withoutFonts, cfg))
	assert.IsType(t, &PlainTextDetector{}, detectorFor(textOnly, cfg))

	cfg.DetectionMode = FontAware
	assert.IsType(t, &FontAwareDetector{}, detectorFor(textOnly, cfg))
	cfg.DetectionMode = PlainText
	assert.IsType(t, &PlainTextDetector{}, detectorFor(withFonts, cfg))
}
