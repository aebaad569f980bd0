package models

import (
	"math"
	"time"
)

// Variant is one published unit record: the MUL-style name and the
// Battle Value printed for it.
type Variant struct {
	ID          int    `json:"id"`
	Chassis     string `json:"chassis"`
	ModelCode   string `json:"model_code"`
	Name        string `json:"name"`
	MulID       *int   `json:"mul_id,omitempty"`
	Tonnage     int    `json:"tonnage"`
	TechBase    string `json:"tech_base"`
	Era         string `json:"era,omitempty"`
	BattleValue int    `json:"battle_value"`
}

// UnitResult is the outcome of calculating one unit.
type UnitResult struct {
	RunID          string   `json:"run_id"`
	UnitID         string   `json:"unit_id"`
	Name           string   `json:"name"`
	Kind           string   `json:"kind"`
	TechBase       string   `json:"tech_base,omitempty"`
	Era            string   `json:"era,omitempty"`
	Tonnage        float64  `json:"tonnage"`
	SourcePath     string   `json:"source_path,omitempty"`
	PublishedBV    *int     `json:"published_bv,omitempty"`
	CalculatedBV   int      `json:"calculated_bv"`
	BaseBV         int      `json:"base_bv"`
	DefensiveValue float64  `json:"defensive_value"`
	OffensiveValue float64  `json:"offensive_value"`
	Unknown        []string `json:"unknown_equipment,omitempty"`
	Error          string   `json:"error,omitempty"`
}

// Diff is calculated minus published BV; ok is false without a published value.
func (r UnitResult) Diff() (diff int, ok bool) {
	if r.PublishedBV == nil {
		return 0, false
	}
	return r.CalculatedBV - *r.PublishedBV, true
}

// PctDiff is the absolute difference as a percentage of the published BV.
func (r UnitResult) PctDiff() float64 {
	d, ok := r.Diff()
	if !ok || *r.PublishedBV == 0 {
		return 0
	}
	return math.Abs(float64(d)) / float64(*r.PublishedBV) * 100
}

// Run describes one verification pass.
type Run struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Root       string    `json:"root"`
	Summary    Summary   `json:"summary"`
}

// Summary buckets results by how far the calculated BV is from the
// published one. Absolute buckets are cumulative.
type Summary struct {
	Total       int `json:"total"`
	Compared    int `json:"compared"`
	Failed      int `json:"failed"`
	Exact       int `json:"exact"`
	Within1     int `json:"within_1"`
	Within5     int `json:"within_5"`
	Within10    int `json:"within_10"`
	Within50    int `json:"within_50"`
	Over50      int `json:"over_50"`
	Within1Pct  int `json:"within_1_pct"`
	Within5Pct  int `json:"within_5_pct"`
	Within10Pct int `json:"within_10_pct"`
}

// Summarize buckets results.
func Summarize(results []UnitResult) Summary {
	var s Summary
	for _, r := range results {
		s.Total++
		if r.Error != "" {
			s.Failed++
			continue
		}
		d, ok := r.Diff()
		if !ok {
			continue
		}
		s.Compared++
		abs := d
		if abs < 0 {
			abs = -abs
		}
		switch {
		case abs == 0:
			s.Exact++
			fallthrough
		case abs <= 1:
			s.Within1++
			fallthrough
		case abs <= 5:
			s.Within5++
			fallthrough
		case abs <= 10:
			s.Within10++
			fallthrough
		case abs <= 50:
			s.Within50++
		default:
			s.Over50++
		}
		pct := r.PctDiff()
		if pct <= 1 {
			s.Within1Pct++
		}
		if pct <= 5 {
			s.Within5Pct++
		}
		if pct <= 10 {
			s.Within10Pct++
		}
	}
	return s
}
