// Package bvcalc computes the Battle Value of a unit.
//
// A calculation runs a fixed pipeline of phases (defensive rating,
// offensive rating, summary, force bonuses, skill). Each unit kind
// supplies its own phase table; the order never changes. Every step that
// changes a running total is written to a report.Sink first, so the
// result can be explained line by line.
package bvcalc

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/JustinWhittecar/bvengine/internal/report"
)

// Result holds the calculated BV breakdown
type Result struct {
	BV     int
	BaseBV int

	DefensiveValue   float64
	OffensiveValue   float64
	ArmorBV          float64
	StructureBV      float64
	DefEquipBV       float64
	ExplosivePenalty float64
	DefensiveFactor  float64
	WeaponBV         float64
	AmmoBV           float64
	MiscBV           float64
	WeightBV         float64
	SpeedFactor      float64
	HeatEfficiency   float64
	ExternalBV       float64
	// TrooperBV is the single-trooper value battle armor is scaled from.
	TrooperBV float64

	TagBonus        float64
	C3Bonus         float64
	SkillMultiplier float64

	RearSwapped bool
	Arcs        *ArcPlan
}

// Calculator scores one unit. It keeps no state between calls.
type Calculator struct {
	unit  *Unit
	rules *rules
	game  Game
	log   zerolog.Logger
}

type Option func(*Calculator)

// WithGame supplies the session the force bonuses look at.
func WithGame(g Game) Option {
	return func(c *Calculator) { c.game = g }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Calculator) { c.log = l }
}

// New returns a Calculator for u using the phase table of u.Kind.
func New(u *Unit, opts ...Option) *Calculator {
	c := &Calculator{unit: u, rules: rulesFor(u.Kind), log: zerolog.Nop()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BattleValue is a shortcut for New(u).Calculate.
func BattleValue(u *Unit, ignoreForceBonuses, ignoreSkill bool) int {
	return New(u).Calculate(ignoreForceBonuses, ignoreSkill).BV
}

// Calculate runs the pipeline without keeping a report.
func (c *Calculator) Calculate(ignoreForceBonuses, ignoreSkill bool) Result {
	return c.CalculateReport(ignoreForceBonuses, ignoreSkill, report.Discard)
}

// CalculateReport runs the pipeline and writes the trace to sink.
func (c *Calculator) CalculateReport(ignoreForceBonuses, ignoreSkill bool, sink report.Sink) Result {
	if sink == nil {
		sink = report.Discard
	}
	u := c.unit
	sink.Header(fmt.Sprintf("%s (%s)", u.Name, u.Kind))

	if u.Destroyed {
		sink.Line("Destroyed", "unit is destroyed", 0)
		c.log.Debug().Str("unit", u.Name).Msg("destroyed unit scored 0")
		return Result{DefensiveFactor: 1, SpeedFactor: 1, SkillMultiplier: 1}
	}

	s := newState(c, sink)
	for _, sec := range pipeline {
		if sec.title != "" {
			sink.Blank()
			sink.SubHeader(sec.title)
		}
		for _, st := range sec.steps {
			if p := c.rules.phases[st]; p != nil {
				p(s)
			}
		}
	}

	total := float64(s.res.BaseBV)
	if ignoreForceBonuses || c.game == nil {
		sink.Info("Force Bonuses", "not applied")
	} else {
		total = s.forceBonuses(total)
	}

	if ignoreSkill || (u.crewless() && u.Kind != KindInfantry) {
		sink.Info("Skill Multiplier", "not applied")
	} else {
		g, p := skillsFor(u)
		mult := SkillMultiplier(g, p)
		s.res.SkillMultiplier = mult
		sink.Line("Skill Multiplier", fmt.Sprintf("%s x %s (gunnery %d, piloting %d)", num(total), num(mult), g, p), total*mult)
		total *= mult
	}

	bv := roundHalfUp(total)
	if bv < 0 {
		bv = 0
	}
	sink.Blank()
	sink.Line("Battle Value", "", bv)
	s.res.BV = int(bv)
	s.res.DefensiveValue = s.defensive
	s.res.OffensiveValue = s.offensive

	c.log.Debug().
		Str("unit", u.Name).
		Stringer("kind", u.Kind).
		Int("bv", s.res.BV).
		Int("base_bv", s.res.BaseBV).
		Msg("battle value calculated")
	return s.res
}
