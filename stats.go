// Copyright © 2026, Docsift Authors.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package outline

import (
	"fmt"
	"math"
	"sort"

	"github.com/docsift/outline/logger"
)

// defaultFontSize is substituted when a document carries no usable font
// metadata. At 12pt the size ratio of every block is ≈1, which keeps the
// size term of the scorer neutral.
const defaultFontSize = 12.0

// CollectFontStatistics computes the document-wide font-size distribution in
// a single pass. Blocks with a missing or zero size are excluded from the
// distribution but still counted in TotalBlocks.
func CollectFontStatistics(blocks []TextBlock) FontStatistics {
	stats := FontStatistics{TotalBlocks: len(blocks)}

	var sizes []float64
	fontCounts := make(map[string]int)
	for _, b := range blocks {
		if b.FontSize > 0 {
			sizes = append(sizes, b.FontSize)
		}
		if b.FontName != "" {
			fontCounts[b.FontName]++
		}
	}

	if len(sizes) == 0 {
		stats.AvgSize = defaultFontSize
		stats.MaxSize = defaultFontSize
		stats.MinSize = defaultFontSize
		logger.Debug(fmt.Sprintf("No positive font sizes found, using neutral default: size=%v total_blocks=%d",
			defaultFontSize, stats.TotalBlocks), true)
		return stats
	}

	sum := 0.0
	stats.MinSize = sizes[0]
	stats.MaxSize = sizes[0]
	for _, s := range sizes {
		sum += s
		if s < stats.MinSize {
			stats.MinSize = s
		}
		if s > stats.MaxSize {
			stats.MaxSize = s
		}
	}
	stats.AvgSize = sum / float64(len(sizes))

	variance := 0.0
	for _, s := range sizes {
		d := s - stats.AvgSize
		variance += d * d
	}
	stats.SizeStdDev = math.Sqrt(variance / float64(len(sizes)))

	stats.CommonFonts = rankFonts(fontCounts)

	logger.Debug(fmt.Sprintf("Font statistics collected: avg=%.2f min=%.2f max=%.2f std=%.2f fonts=%d",
		stats.AvgSize, stats.MinSize, stats.MaxSize, stats.SizeStdDev, len(stats.CommonFonts)), true)
	return stats
}

// rankFonts orders font names by frequency, most frequent first. Ties break
// by name so the ordering is deterministic.
func rankFonts(counts map[string]int) []string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}
