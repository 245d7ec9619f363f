// Copyright © 2026, Docsift Authors.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package outline

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/docsift/outline/logger"
)

// plainHeadingPatterns are the fixed heading shapes of the degraded path:
// ALL-CAPS lines, numbered headings, chapter/section markers and short
// Title Case lines.
var plainHeadingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[A-Z][A-Z\s\d.\-]{5,50}$`),
	regexp.MustCompile(`^\d+(\.\d+)*\.?\s+[A-Z][A-Za-z\s]{2,60}$`),
	regexp.MustCompile(`^Chapter\s+\d+`),
	regexp.MustCompile(`^Section\s+\d+`),
	regexp.MustCompile(`^[A-Z][a-z]+(\s+[A-Z][a-z]+){0,6}:?$`),
}

// PlainTextDetector is the degraded strategy for input without any font or
// layout metadata: a fixed set of numbering and capitalization regexes over
// plain lines of text. It produces the same Result shape as the font-aware
// path.
type PlainTextDetector struct {
	cfg *Config
}

// NewPlainTextDetector creates the regex-only detector.
func NewPlainTextDetector(cfg *Config) *PlainTextDetector {
	return &PlainTextDetector{cfg: cfg}
}

func (d *PlainTextDetector) Detect(doc *Document) (Result, error) {
	logger.Debug(fmt.Sprintf("Plain-text detection started: doc=%s", doc.Name), true)

	lines := d.pagedLines(doc)

	seen := make(map[string]bool)
	perPage := make(map[int]int)
	var headings []Heading
	for _, pl := range lines {
		text := normalizeSpan(pl.text)
		if text == "" || len(text) >= 100 {
			continue
		}
		if !matchesPlainHeading(text) {
			continue
		}
		if isPlainBoilerplate(text) {
			continue
		}
		key := normalizeKey(text)
		if seen[key] {
			continue
		}
		if perPage[pl.page] >= d.cfg.MaxHeadingsPerPage {
			continue
		}
		seen[key] = true
		perPage[pl.page]++
		headings = append(headings, Heading{
			Level: classifyLevel(text, 0, false),
			Text:  trimHeadingText(text),
			Page:  pl.page,
		})
	}
	headings = repairHierarchy(headings)

	title := extractTitle(doc.lines(), doc.Name, d.cfg.TitleScanLines)

	logger.Debug(fmt.Sprintf("Plain-text detection completed: doc=%s headings=%d title=%q", doc.Name, len(headings), title), true)
	return Result{Title: title, Outline: emptyAsSlice(headings)}, nil
}

type pagedLine struct {
	page int
	text string
}

// pagedLines walks the document text line by line, tracking the current page
// through the "--- PAGE N ---" markers. Block input is used when present so
// page attribution stays exact.
func (d *PlainTextDetector) pagedLines(doc *Document) []pagedLine {
	if len(doc.Blocks) > 0 {
		out := make([]pagedLine, 0, len(doc.Blocks))
		for _, b := range NormalizeBlocks(doc.Blocks) {
			out = append(out, pagedLine{page: b.Page, text: b.Text})
		}
		return out
	}

	var out []pagedLine
	page := 1
	for _, line := range strings.Split(doc.RawText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := pageMarkerRE.FindStringSubmatch(line); m != nil {
			if n := atoiSafe(m[1]); n > 0 {
				page = n
			}
			continue
		}
		out = append(out, pagedLine{page: page, text: line})
	}
	return out
}

func matchesPlainHeading(text string) bool {
	for _, re := range plainHeadingPatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// isPlainBoilerplate applies the text-only header/footer rules (no position
// information is available on this path).
func isPlainBoilerplate(text string) bool {
	key := normalizeKey(text)
	if boilerplatePhrases[key] {
		return true
	}
	if len(text) < 3 || isNumeric(text) {
		return true
	}
	if pageNumberRE.MatchString(key) {
		return true
	}
	return false
}
