// Copyright © 2026, Docsift Authors.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package outline

import (
	"regexp"
	"strings"
)

// Weights holds the per-feature weights of the heading scorer. The defaults
// are empirically tuned policy, not derived values; change them through the
// Config rather than here.
type Weights struct {
	Size      float64 `yaml:"size" validate:"min=0,max=1"`
	Bold      float64 `yaml:"bold" validate:"min=0,max=1"`
	Layout    float64 `yaml:"layout" validate:"min=0,max=1"`
	Length    float64 `yaml:"length" validate:"min=0,max=1"`
	Numbering float64 `yaml:"numbering" validate:"min=0,max=1"`
	Caps      float64 `yaml:"caps" validate:"min=0,max=1"`
}

// Sum returns the total weight mass. Scores are clamped to 1.0, so a sum
// much above that makes the individual features meaningless.
func (w Weights) Sum() float64 {
	return w.Size + w.Bold + w.Layout + w.Length + w.Numbering + w.Caps
}

// DefaultWeights returns the tuned scorer weights.
func DefaultWeights() Weights {
	return Weights{
		Size:      0.25,
		Bold:      0.20,
		Layout:    0.20,
		Length:    0.15,
		Numbering: 0.12,
		Caps:      0.08,
	}
}

// Fixed penalties of the scorer, applied after the weighted terms.
const (
	longTextPenalty = 0.20 // text longer than 100 chars
	sentencePenalty = 0.10 // ends with "." and more than 5 words
	longLinePenalty = 0.10 // more than 20 words
)

// numberingPatterns maps section-numbering shapes to a specificity weight.
// First match wins.
var numberingPatterns = []struct {
	re     *regexp.Regexp
	weight float64
}{
	{regexp.MustCompile(`^\d+\.\s`), 1.0},
	{regexp.MustCompile(`(?i)^chapter\s+\d+`), 0.9},
	{regexp.MustCompile(`^\d+\.\d+\s`), 0.8},
	{regexp.MustCompile(`(?i)^section\s+\d+`), 0.8},
	{regexp.MustCompile(`^[A-Z]\.\s`), 0.7},
	{regexp.MustCompile(`^[IVXLCDM]+\.\s`), 0.7},
	{regexp.MustCompile(`^\d+\.\d+\.\d+\s`), 0.6},
}

// numberingWeight returns the specificity weight of the first matching
// numbering pattern, or 0 when the text is not numbered.
func numberingWeight(text string) float64 {
	for _, p := range numberingPatterns {
		if p.re.MatchString(text) {
			return p.weight
		}
	}
	return 0
}

// isNumberedItem reports whether the text starts with any recognized
// section-numbering shape.
func isNumberedItem(text string) bool {
	return numberingWeight(text) > 0
}

// scoreBlock assigns a heading-likelihood score in (-∞, 1] from five weighted
// features plus size and length penalties. Blocks with empty or near-empty
// text score 0 and never become candidates.
func scoreBlock(b TextBlock, stats FontStatistics, w Weights) float64 {
	text := strings.TrimSpace(b.Text)
	if len(text) < 2 {
		return 0
	}

	score := 0.0

	// Size: reward text noticeably larger than the document baseline.
	sizeRatio := 1.0
	if stats.AvgSize > 0 {
		size := b.FontSize
		if size <= 0 {
			size = stats.AvgSize
		}
		sizeRatio = size / stats.AvgSize
	}
	if sizeRatio > 1.3 {
		contribution := sizeRatio / 2
		if contribution > 1.0 {
			contribution = 1.0
		}
		score += w.Size * contribution
	}

	if b.Bold {
		score += w.Bold
	}

	score += w.Layout * layoutScore(b.BBox)

	words := wordCount(text)
	switch {
	case words >= 1 && words <= 10:
		score += w.Length
	case words > 20:
		score -= longLinePenalty
	}

	if pw := numberingWeight(text); pw > 0 {
		score += w.Numbering * pw
	}

	switch {
	case isAllCaps(text) && len(text) > 3:
		score += w.Caps
	case isTitleCase(text):
		score += w.Caps / 2
	}

	if len(text) > 100 {
		score -= longTextPenalty
	}
	if strings.HasSuffix(text, ".") && words > 5 {
		score -= sentencePenalty
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// layoutScore rates the block geometry in [0,1]: heading-shaped lines are
// short, start near the left margin and sit high on the page.
func layoutScore(box BBox) float64 {
	score := 0.0
	width := box.Width()

	if width > 0 && width < 200 {
		score += 0.3
	}
	if width > 400 {
		score -= 0.2
	}
	if width > 500 {
		score -= 0.3
	}
	if box.X0 < 100 {
		score += 0.25
	}
	if box.Y0 < 200 {
		score += 0.1
	}

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
