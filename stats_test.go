// Copyright © 2026, Docsift Authors.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectFontStatistics(t *testing.T) {
	blocks := []TextBlock{
		{Text: "a", FontSize: 10, FontName: "Helvetica"},
		{Text: "b", FontSize: 12, FontName: "Helvetica"},
		{Text: "c", FontSize: 14, FontName: "Times-Bold"},
	}

	stats := CollectFontStatistics(blocks)

	assert.InDelta(t, 12.0, stats.AvgSize, 1e-9)
	assert.InDelta(t, 10.0, stats.MinSize, 1e-9)
	assert.InDelta(t, 14.0, stats.MaxSize, 1e-9)
	assert.InDelta(t, 1.63299, stats.SizeStdDev, 1e-4)
	assert.Equal(t, []string{"Helvetica", "Times-Bold"}, stats.CommonFonts)
	assert.Equal(t, 3, stats.TotalBlocks)
}

func TestCollectFontStatistics_NoSizes(t *testing.T) {
	blocks := []TextBlock{
		{Text: "no metadata"},
		{Text: "at all", FontSize: 0},
	}

	stats := CollectFontStatistics(blocks)

	assert.Equal(t, defaultFontSize, stats.AvgSize)
	assert.Equal(t, defaultFontSize, stats.MinSize)
	assert.Equal(t, defaultFontSize, stats.MaxSize)
	assert.Zero(t, stats.SizeStdDev)
	assert.Empty(t, stats.CommonFonts)
	assert.Equal(t, 2, stats.TotalBlocks)
}

// The conservative default must keep the size term neutral: a sizeless block
// scored against it gets no size contribution.
func TestDefaultStatistics_NeutralSizeTerm(t *testing.T) {
	stats := CollectFontStatistics(nil)
	w := DefaultWeights()

	with := scoreBlock(TextBlock{Text: "Some Heading Text"}, stats, w)
	without := scoreBlock(TextBlock{Text: "Some Heading Text", FontSize: defaultFontSize}, stats, w)

	assert.Equal(t, without, with)
}

func TestCollectFontStatistics_ZeroSizesExcluded(t *testing.T) {
	blocks := []TextBlock{
		{Text: "a", FontSize: 0},
		{Text: "b", FontSize: 20},
	}

	stats := CollectFontStatistics(blocks)

	assert.InDelta(t, 20.0, stats.AvgSize, 1e-9)
	assert.InDelta(t, 20.0, stats.MinSize, 1e-9)
	assert.Equal(t, 2, stats.TotalBlocks)
}
