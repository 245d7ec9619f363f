// Copyright © 2026, Docsift Authors.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package outline

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/docsift/outline/logger"
)

// boilerplatePhrases are running header/footer strings that must never be
// reported as headings, compared in normalized form.
var boilerplatePhrases = map[string]bool{
	"confidential":                  true,
	"draft":                         true,
	"all rights reserved":           true,
	"copyright":                     true,
	"continued":                     true,
	"table of contents":             true,
	"contents":                      true,
	"page":                          true,
	"cont.":                         true,
	"internal use only":             true,
	"do not distribute":             true,
	"proprietary":                   true,
	"for internal use only":         true,
	"this page intentionally blank": true,
}

// pageNumberRE matches running page markers like "page 3" or "page 3 of 12",
// compared against normalized text.
var pageNumberRE = regexp.MustCompile(`^page \d+( of \d+)?$`)

// Page margin bands used for positional header/footer detection, one inch
// top and bottom.
const (
	headerBandPt      = 72.0
	footerBandPt      = 72.0
	defaultPageHeight = 792.0
)

// filterCandidates applies the adaptive threshold, deduplication, boilerplate
// suppression and the per-page heading cap, returning survivors in document
// order (page, then appearance within the page).
func filterCandidates(cands []ScoredCandidate, pageHeight float64, cfg *Config) []ScoredCandidate {
	// Hard pre-filter.
	pool := make([]ScoredCandidate, 0, len(cands))
	for _, c := range cands {
		if c.Score > cfg.CandidateFloor {
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		return nil
	}

	// Highest score first; equal scores keep document order.
	sort.SliceStable(pool, func(i, j int) bool { return pool[i].Score > pool[j].Score })

	threshold := adaptiveThreshold(pool, cfg)
	logger.Debug(fmt.Sprintf("Adaptive threshold computed: threshold=%.3f candidates=%d", threshold, len(pool)), true)

	seen := make(map[string]bool)
	perPage := make(map[int]int)
	var accepted []ScoredCandidate
	for _, c := range pool {
		if c.Score < threshold {
			break
		}
		key := normalizeKey(c.Block.Text)
		if seen[key] {
			continue
		}
		if isHeaderFooter(c.Block, pageHeight) {
			logger.Debug(fmt.Sprintf("Dropped header/footer candidate: text=%q page=%d", c.Block.Text, c.Block.Page), true)
			continue
		}
		if perPage[c.Block.Page] >= cfg.MaxHeadingsPerPage {
			continue
		}
		seen[key] = true
		perPage[c.Block.Page]++
		accepted = append(accepted, c)
	}

	// Back to emission order.
	sort.SliceStable(accepted, func(i, j int) bool {
		if accepted[i].Block.Page != accepted[j].Block.Page {
			return accepted[i].Block.Page < accepted[j].Block.Page
		}
		return accepted[i].ord < accepted[j].ord
	})
	return accepted
}

// adaptiveThreshold derives the score cutoff from the distribution itself:
// with enough candidates it takes the approx. 75th-percentile score bounded
// to [ThresholdMin, ThresholdMax], otherwise a fraction of the top score.
func adaptiveThreshold(sortedDesc []ScoredCandidate, cfg *Config) float64 {
	if len(sortedDesc) >= 6 {
		t := sortedDesc[len(sortedDesc)/4].Score
		if t < cfg.ThresholdMin {
			t = cfg.ThresholdMin
		}
		if t > cfg.ThresholdMax {
			t = cfg.ThresholdMax
		}
		return t
	}
	t := sortedDesc[0].Score * 0.6
	if t < cfg.CandidateFloor {
		t = cfg.CandidateFloor
	}
	return t
}

// isHeaderFooter classifies running headers, footers and page numbers.
func isHeaderFooter(b TextBlock, pageHeight float64) bool {
	text := b.Text
	key := normalizeKey(text)

	if boilerplatePhrases[key] {
		return true
	}
	if len(text) < 3 {
		return true
	}
	if isNumeric(text) {
		return true
	}
	// "Page 3", "Page 3 of 12" and similar.
	if pageNumberRE.MatchString(key) {
		return true
	}

	words := wordCount(text)
	if inMarginBand(b.BBox, pageHeight) && words <= 3 {
		return true
	}
	if words <= 2 && !isNumberedItem(text) {
		return true
	}
	return false
}

// inMarginBand reports whether the block sits in the top or bottom margin
// band of the page.
func inMarginBand(box BBox, pageHeight float64) bool {
	if pageHeight <= 0 {
		pageHeight = defaultPageHeight
	}
	if box.Y1 == 0 && box.Y0 == 0 {
		// No usable position information.
		return false
	}
	return box.Y0 < headerBandPt || box.Y1 > pageHeight-footerBandPt
}
