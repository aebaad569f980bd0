package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func published(bv int) *int { return &bv }

func TestUnitResultDiff(t *testing.T) {
	r := UnitResult{CalculatedBV: 950, PublishedBV: published(1000)}
	d, ok := r.Diff()
	assert.True(t, ok)
	assert.Equal(t, -50, d)
	assert.InDelta(t, 5.0, r.PctDiff(), 1e-9)

	_, ok = UnitResult{CalculatedBV: 10}.Diff()
	assert.False(t, ok)
	assert.Zero(t, UnitResult{CalculatedBV: 10, PublishedBV: published(0)}.PctDiff())
}

func TestSummarize(t *testing.T) {
	results := []UnitResult{
		{CalculatedBV: 1000, PublishedBV: published(1000)},
		{CalculatedBV: 1001, PublishedBV: published(1000)},
		{CalculatedBV: 1004, PublishedBV: published(1000)},
		{CalculatedBV: 1030, PublishedBV: published(1000)},
		{CalculatedBV: 1200, PublishedBV: published(1000)},
		{CalculatedBV: 500},
		{Error: "missing chassis field"},
	}
	s := Summarize(results)

	assert.Equal(t, Summary{
		Total:       7,
		Compared:    5,
		Failed:      1,
		Exact:       1,
		Within1:     2,
		Within5:     3,
		Within10:    3,
		Within50:    4,
		Over50:      1,
		Within1Pct:  3,
		Within5Pct:  4,
		Within10Pct: 4,
	}, s)
}
