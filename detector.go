// Copyright © 2026, Docsift Authors.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package outline

import (
	"fmt"

	"github.com/docsift/outline/logger"
)

// DetectorStrategy derives a titled outline from one document. Different
// strategies handle different input quality (full font metadata vs. plain
// text only).
type DetectorStrategy interface {
	Detect(doc *Document) (Result, error)
}

// FontAwareDetector is the primary strategy: statistical scoring over the
// font and layout metadata of every line, adaptive thresholding, level
// classification and reconciliation with the embedded outline when one is
// present.
type FontAwareDetector struct {
	cfg *Config
}

// NewFontAwareDetector creates the font-and-layout based detector.
func NewFontAwareDetector(cfg *Config) *FontAwareDetector {
	return &FontAwareDetector{cfg: cfg}
}

func (d *FontAwareDetector) Detect(doc *Document) (Result, error) {
	blocks := NormalizeBlocks(doc.Blocks)
	logger.Debug(fmt.Sprintf("Font-aware detection started: doc=%s blocks=%d", doc.Name, len(blocks)), true)

	stats := CollectFontStatistics(blocks)

	cands := make([]ScoredCandidate, 0, len(blocks))
	for i, b := range blocks {
		score := scoreBlock(b, stats, d.cfg.Weights)
		if score <= 0 {
			continue
		}
		cands = append(cands, ScoredCandidate{Block: b, Score: score, ord: i})
	}

	accepted := filterCandidates(cands, doc.PageHeight, d.cfg)
	logger.Debug(fmt.Sprintf("Candidates filtered: doc=%s scored=%d accepted=%d", doc.Name, len(cands), len(accepted)), true)

	headings := make([]Heading, 0, len(accepted))
	for _, c := range accepted {
		headings = append(headings, Heading{
			Level: classifyLevel(c.Block.Text, c.Block.FontSize, c.Block.Bold),
			Text:  trimHeadingText(c.Block.Text),
			Page:  c.Block.Page,
		})
	}
	headings = dedupeHeadings(headings)
	headings = repairHierarchy(headings)

	if len(doc.ExternalOutline) > 0 {
		headings = reconcileOutline(doc.ExternalOutline, headings, doc)
		headings = repairHierarchy(headings)
	}

	title := extractTitle(doc.lines(), doc.Name, d.cfg.TitleScanLines)

	logger.Debug(fmt.Sprintf("Font-aware detection completed: doc=%s headings=%d title=%q", doc.Name, len(headings), title), true)
	return Result{Title: title, Outline: emptyAsSlice(headings)}, nil
}

// detectorFor selects the strategy for a document according to the
// configured detection mode. Auto mode falls back to the plain-text detector
// when no block carries usable font metadata.
func detectorFor(doc *Document, cfg *Config) DetectorStrategy {
	switch cfg.DetectionMode {
	case FontAware:
		return NewFontAwareDetector(cfg)
	case PlainText:
		return NewPlainTextDetector(cfg)
	}
	for _, b := range doc.Blocks {
		if b.FontSize > 0 {
			return NewFontAwareDetector(cfg)
		}
	}
	logger.Debug(fmt.Sprintf("No font metadata available, using plain-text detection: doc=%s", doc.Name), true)
	return NewPlainTextDetector(cfg)
}

// emptyAsSlice keeps the output contract's outline an array, never null.
func emptyAsSlice(h []Heading) []Heading {
	if h == nil {
		return []Heading{}
	}
	return h
}
