// Copyright © 2026, Docsift Authors.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package outline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/docsift/outline/logger"
)

// Reconciler tuning: below this many validated external entries the font
// based detection is merged in to fill gaps.
const minExternalEntries = 10

// reconcileOutline merges an externally supplied outline (e.g. embedded
// bookmarks) with the font-based detection. Validated external entries win;
// font-based headings fill the gaps unless a similar external entry exists on
// the same or an adjacent page. Without an external outline this is a
// pass-through.
func reconcileOutline(external []ExternalOutlineEntry, fontBased []Heading, doc *Document) []Heading {
	if len(external) == 0 {
		return fontBased
	}

	validated := validateExternal(external, doc)
	logger.Debug(fmt.Sprintf("External outline validated: supplied=%d validated=%d", len(external), len(validated)), true)

	merged := make([]Heading, len(validated))
	copy(merged, validated)

	if len(validated) < minExternalEntries {
		for _, h := range fontBased {
			if hasSimilarEntry(validated, h) {
				continue
			}
			merged = append(merged, h)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].Page != merged[j].Page {
			return merged[i].Page < merged[j].Page
		}
		return positionInPage(doc, merged[i]) < positionInPage(doc, merged[j])
	})
	return dedupeHeadings(merged)
}

// validateExternal keeps only entries corroborated by the target page's
// text. Malformed entries (empty title, out-of-range page) are dropped
// silently before validation.
func validateExternal(external []ExternalOutlineEntry, doc *Document) []Heading {
	pageCount := doc.pages()
	var out []Heading
	for _, e := range external {
		title := strings.TrimSpace(e.Text)
		if title == "" || e.Page < 1 || (pageCount > 0 && e.Page > pageCount) {
			continue
		}
		if !entryOnPage(title, doc.pageText(e.Page)) {
			logger.Debug(fmt.Sprintf("External entry not corroborated by page text: text=%q page=%d", title, e.Page), true)
			continue
		}
		level := e.Level
		if level < H1 || level > H3 {
			level = H3
		}
		out = append(out, Heading{Level: level, Text: trimHeadingText(title), Page: e.Page})
	}
	return out
}

// entryOnPage accepts a title that appears verbatim on the page, appears in
// the page's first 20 lines case-insensitively, or fuzzily matches the page
// text (≥70% of its words present, for multi-word titles).
func entryOnPage(title, pageText string) bool {
	if pageText == "" {
		return false
	}
	if strings.Contains(pageText, title) {
		return true
	}

	lowerTitle := strings.ToLower(title)
	lines := strings.Split(pageText, "\n")
	if len(lines) > 20 {
		lines = lines[:20]
	}
	for _, line := range lines {
		if strings.Contains(strings.ToLower(line), lowerTitle) {
			return true
		}
	}

	words := wordSet(title)
	if len(words) < 2 {
		return false
	}
	pageWords := wordSet(pageText)
	found := 0
	for w := range words {
		if pageWords[w] {
			found++
		}
	}
	return float64(found)/float64(len(words)) >= 0.7
}

// hasSimilarEntry reports whether the external list already covers this
// font-based heading: normalized-equal, substring-of-each-other or ≥60%
// word-set overlap, on the same or an adjacent page.
func hasSimilarEntry(external []Heading, h Heading) bool {
	key := normalizeKey(h.Text)
	for _, e := range external {
		if e.Page < h.Page-1 || e.Page > h.Page+1 {
			continue
		}
		ekey := normalizeKey(e.Text)
		if ekey == key {
			return true
		}
		if strings.Contains(ekey, key) || strings.Contains(key, ekey) {
			return true
		}
		if wordOverlap(e.Text, h.Text) >= 0.6 {
			return true
		}
	}
	return false
}

// wordOverlap computes |A∩B| / |A∪B| over the lowercased word sets.
func wordOverlap(a, b string) float64 {
	sa, sb := wordSet(a), wordSet(b)
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}
	inter := 0
	for w := range sa {
		if sb[w] {
			inter++
		}
	}
	union := len(sa) + len(sb) - inter
	return float64(inter) / float64(union)
}

// positionInPage orders headings within one page by where their text first
// occurs in the page text; unresolvable titles sort last in insertion order.
func positionInPage(doc *Document, h Heading) int {
	text := doc.pageText(h.Page)
	if text == "" {
		return 1 << 30
	}
	if idx := strings.Index(strings.ToLower(text), strings.ToLower(h.Text)); idx >= 0 {
		return idx
	}
	return 1 << 30
}

// dedupeHeadings removes case/whitespace-insensitive duplicates, first
// occurrence wins.
func dedupeHeadings(headings []Heading) []Heading {
	seen := make(map[string]bool, len(headings))
	out := headings[:0]
	for _, h := range headings {
		key := normalizeKey(h.Text)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, h)
	}
	return out
}

// trimHeadingText trims whitespace and a trailing colon off heading text.
func trimHeadingText(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), ":")
}
