// Copyright © 2026, Docsift Authors.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reconcileDoc() *Document {
	return &Document{
		Name:      "paper.pdf",
		PageCount: 3,
		PageTexts: []string{
			"Deep Learning Survey\nAbstract\nWe summarize recent work.",
			"Introduction\nNeural networks have a long history.\nBackground material follows.",
			"Advanced Memory Management\nDetails on allocation strategies.\nConclusion",
		},
	}
}

func TestReconcileOutline_PassThroughWithoutExternal(t *testing.T) {
	fontBased := []Heading{{Level: H1, Text: "Introduction", Page: 2}}

	got := reconcileOutline(nil, fontBased, reconcileDoc())

	assert.Equal(t, fontBased, got)
}

// A validated external entry wins over a fuzzy-equivalent font-based
// detection on the same page: the merged outline has one entry, sourced from
// the external outline.
func TestReconcileOutline_ExternalPreferred(t *testing.T) {
	external := []ExternalOutlineEntry{
		{Level: H1, Text: "Introduction", Page: 2},
	}
	fontBased := []Heading{
		{Level: H2, Text: "INTRODUCTION", Page: 2},
	}

	got := reconcileOutline(external, fontBased, reconcileDoc())

	require.Len(t, got, 1)
	assert.Equal(t, Heading{Level: H1, Text: "Introduction", Page: 2}, got[0])
}

func TestReconcileOutline_MalformedEntriesDropped(t *testing.T) {
	external := []ExternalOutlineEntry{
		{Level: H1, Text: "", Page: 1},
		{Level: H1, Text: "Introduction", Page: 0},
		{Level: H1, Text: "Introduction", Page: 9},
		{Level: H1, Text: "Entirely absent title", Page: 2},
	}

	got := reconcileOutline(external, nil, reconcileDoc())

	assert.Empty(t, got)
}

// A document built from blocks alone, with no raw text dump, still
// corroborates external entries against the block text per page.
func TestReconcileOutline_BlocksOnlyDocument(t *testing.T) {
	doc := &Document{
		Name: "blocks.pdf",
		Blocks: []TextBlock{
			{Text: "Introduction", Page: 1, FontSize: 16},
			{Text: "Neural networks have a long history.", Page: 1, FontSize: 10},
			{Text: "Methods", Page: 2, FontSize: 16},
			{Text: "We describe the experimental setup.", Page: 2, FontSize: 10},
		},
	}
	external := []ExternalOutlineEntry{
		{Level: H1, Text: "Introduction", Page: 1},
		{Level: H1, Text: "Methods", Page: 2},
		{Level: H1, Text: "Entirely absent title", Page: 2},
	}

	got := reconcileOutline(external, nil, doc)

	require.Len(t, got, 2)
	assert.Equal(t, Heading{Level: H1, Text: "Introduction", Page: 1}, got[0])
	assert.Equal(t, Heading{Level: H1, Text: "Methods", Page: 2}, got[1])
}

func TestReconcileOutline_FuzzyValidation(t *testing.T) {
	external := []ExternalOutlineEntry{
		// 3 of the 4 title words occur on page 3; no verbatim match.
		{Level: H1, Text: "Advanced Memory Management Internals", Page: 3},
	}

	got := reconcileOutline(external, nil, reconcileDoc())

	require.Len(t, got, 1)
	assert.Equal(t, "Advanced Memory Management Internals", got[0].Text)
	assert.Equal(t, 3, got[0].Page)
}

func TestReconcileOutline_FontBasedFillsGaps(t *testing.T) {
	external := []ExternalOutlineEntry{
		{Level: H1, Text: "Introduction", Page: 2},
	}
	fontBased := []Heading{
		{Level: H1, Text: "Abstract", Page: 1},
		{Level: H2, Text: "Background", Page: 2}, // survives: not similar to "Introduction"
		{Level: H1, Text: "Conclusion", Page: 3},
	}

	got := reconcileOutline(external, fontBased, reconcileDoc())

	require.Len(t, got, 4)
	assert.Equal(t, "Abstract", got[0].Text)
	assert.Equal(t, 1, got[0].Page)
	assert.Equal(t, "Introduction", got[1].Text)
	assert.Equal(t, "Background", got[2].Text)
	assert.Equal(t, "Conclusion", got[3].Text)
}

func TestReconcileOutline_AdjacentPageSimilarity(t *testing.T) {
	external := []ExternalOutlineEntry{
		{Level: H1, Text: "Introduction", Page: 2},
	}
	// Same normalized text detected one page later, e.g. a heading split
	// across a page break.
	fontBased := []Heading{
		{Level: H2, Text: "Introduction", Page: 3},
	}

	got := reconcileOutline(external, fontBased, reconcileDoc())

	require.Len(t, got, 1)
	assert.Equal(t, H1, got[0].Level)
	assert.Equal(t, 2, got[0].Page)
}

func TestWordOverlap(t *testing.T) {
	assert.InDelta(t, 1.0, wordOverlap("System Design", "system design"), 1e-9)
	assert.InDelta(t, 0.5, wordOverlap("alpha beta gamma", "alpha beta delta"), 1e-9)
	assert.Zero(t, wordOverlap("alpha", "beta"))
	assert.Zero(t, wordOverlap("", "beta"))
}

func TestEntryOnPage(t *testing.T) {
	page := "Chapter One\nThe quick start guide\nBody text continues here."

	assert.True(t, entryOnPage("Chapter One", page), "verbatim match")
	assert.True(t, entryOnPage("chapter one", page), "case-insensitive in first lines")
	assert.True(t, entryOnPage("quick start guide overview", page), "fuzzy 3/4 words")
	assert.False(t, entryOnPage("completely different heading", page))
	assert.False(t, entryOnPage("Chapter One", ""))
}
