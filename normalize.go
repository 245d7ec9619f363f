// Copyright © 2026, Docsift Authors.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package outline

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	pageMarkerRE      = regexp.MustCompile(`^--- PAGE (\d+) ---$`)
	pageMarkerSplitRE = regexp.MustCompile(`--- PAGE \d+ ---`)
	whitespaceRE      = regexp.MustCompile(`\s+`)
)

// NormalizeBlocks turns the raw per-line records from the extractor into the
// flat ordered sequence the pipeline works on: NFC-normalized text, collapsed
// whitespace, empty lines dropped, page numbers clamped to ≥1. Input order is
// preserved; the input slice is never modified.
func NormalizeBlocks(blocks []TextBlock) []TextBlock {
	out := make([]TextBlock, 0, len(blocks))
	for _, b := range blocks {
		b.Text = normalizeSpan(b.Text)
		if b.Text == "" {
			continue
		}
		if b.Page < 1 {
			b.Page = 1
		}
		out = append(out, b)
	}
	return out
}

// normalizeSpan canonicalizes one line of extracted text.
func normalizeSpan(s string) string {
	s = norm.NFC.String(s)
	s = whitespaceRE.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// normalizeKey lowercases and collapses whitespace, the comparison form used
// for deduplication and fuzzy title matching.
func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(whitespaceRE.ReplaceAllString(s, " ")))
}

// wordCount counts whitespace-separated tokens.
func wordCount(s string) int {
	return len(strings.Fields(s))
}

// wordSet returns the lowercased unique words of s.
func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		w = strings.Trim(w, ".,:;!?()[]\"'")
		if w != "" {
			set[w] = true
		}
	}
	return set
}

// isAllCaps reports whether s contains at least one letter and no lowercase
// letters.
func isAllCaps(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

// isTitleCase reports whether every word that starts with a letter starts
// with an uppercase one.
func isTitleCase(s string) bool {
	words := strings.Fields(s)
	if len(words) == 0 {
		return false
	}
	sawLetter := false
	for _, w := range words {
		r := []rune(w)[0]
		if !unicode.IsLetter(r) {
			continue
		}
		sawLetter = true
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return sawLetter
}

// isNumeric reports whether s consists solely of digits (with optional
// surrounding whitespace), i.e. a bare page number.
func isNumeric(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// splitPageTexts splits marker-delimited raw text into per-page strings,
// index 0 = page 1. Pages missing from the markers come back empty.
func splitPageTexts(raw string) []string {
	markers := pageMarkerSplitRE.FindAllStringIndex(raw, -1)
	if len(markers) == 0 {
		if strings.TrimSpace(raw) == "" {
			return nil
		}
		return []string{raw}
	}

	numRE := regexp.MustCompile(`\d+`)
	type chunk struct {
		page int
		text string
	}
	var chunks []chunk
	maxPage := 0
	for i, m := range markers {
		page := 0
		if n := numRE.FindString(raw[m[0]:m[1]]); n != "" {
			page = atoiSafe(n)
		}
		end := len(raw)
		if i+1 < len(markers) {
			end = markers[i+1][0]
		}
		if page < 1 {
			continue
		}
		chunks = append(chunks, chunk{page, raw[m[1]:end]})
		if page > maxPage {
			maxPage = page
		}
	}

	out := make([]string, maxPage)
	for _, c := range chunks {
		out[c.page-1] = strings.TrimSpace(c.text)
	}
	return out
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
		if n > 1<<30 {
			return 0
		}
	}
	return n
}
