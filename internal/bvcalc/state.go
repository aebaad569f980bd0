package bvcalc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/JustinWhittecar/bvengine/internal/report"
)

// state is everything one Calculate call accumulates. It is created per
// call and never shared, so a Calculator can be reused and nothing leaks
// from one run into the next.
type state struct {
	unit  *Unit
	rules *rules
	game  Game
	sink  report.Sink
	log   zerolog.Logger

	runMP, jumpMP, umuMP int

	defensive float64
	offensive float64
	res       Result

	hasTC       bool
	rearSwapped bool
	heatSum     float64
	overHeat    bool

	// ammo and ammoCeiling are keyed by ammo key, or by arc and ammo key
	// for large craft.
	ammo        map[ammoSlot]float64
	ammoCeiling map[ammoSlot]float64

	plan      *ArcPlan
	arcFactor map[Arc]float64
}

type ammoSlot struct {
	arc Arc
	key string
}

func newState(c *Calculator, sink report.Sink) *state {
	return &state{
		unit:        c.unit,
		rules:       c.rules,
		game:        c.game,
		sink:        sink,
		log:         c.log,
		ammo:        map[ammoSlot]float64{},
		ammoCeiling: map[ammoSlot]float64{},
		arcFactor:   map[Arc]float64{},
		res:         Result{DefensiveFactor: 1, SpeedFactor: 1, SkillMultiplier: 1},
	}
}

// Every change to a running total goes through these helpers so the report
// line is written before the total moves.

func (s *state) addDefensive(label, formula string, v float64) {
	total := s.defensive + v
	s.sink.Line(label, formula, total)
	s.defensive = total
}

func (s *state) scaleDefensive(label, formula string, f float64) {
	total := s.defensive * f
	s.sink.Line(label, formula, total)
	s.defensive = total
}

func (s *state) setDefensive(label, formula string, v float64) {
	s.sink.Line(label, formula, v)
	s.defensive = v
}

func (s *state) addOffensive(label, formula string, v float64) {
	total := s.offensive + v
	s.sink.Line(label, formula, total)
	s.offensive = total
}

func (s *state) scaleOffensive(label, formula string, f float64) {
	total := s.offensive * f
	s.sink.Line(label, formula, total)
	s.offensive = total
}

// section opens a tentative block and returns a func that keeps it only if
// something was counted.
func (s *state) section(title string) func(keep bool) {
	s.sink.BeginTentative()
	s.sink.SubHeader(title)
	return s.sink.EndTentative
}

func num(v float64) string {
	return report.FormatNumber(v)
}

// product renders "a x b x c".
func product(vs ...float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = num(v)
	}
	return strings.Join(parts, " x ")
}

func plus(v float64) string {
	if v < 0 {
		return "- " + num(-v)
	}
	return "+ " + num(v)
}

// mountLabel names a mount for the report, with its location.
func (s *state) mountLabel(m *Mount) string {
	name := m.Type.Name
	if l := s.unit.location(m.Location); l != nil && l.Name != "" {
		name = fmt.Sprintf("%s (%s)", name, l.Name)
	}
	if m.Rear {
		name += " (R)"
	}
	return name
}

func (s *state) sortedSlots(m map[ammoSlot]float64) []ammoSlot {
	slots := make([]ammoSlot, 0, len(m))
	for k := range m {
		slots = append(slots, k)
	}
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].arc != slots[j].arc {
			return slots[i].arc < slots[j].arc
		}
		return slots[i].key < slots[j].key
	})
	return slots
}
