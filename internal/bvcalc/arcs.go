package bvcalc

import (
	"fmt"
	"sort"
)

// Arc is a firing arc of a large spacecraft. The numeric order is the
// tie-break order used when picking nominal arcs.
type Arc int

const (
	ArcNose Arc = iota
	ArcLeftFront
	ArcRightFront
	ArcLeftBroadside
	ArcRightBroadside
	ArcLeftAft
	ArcRightAft
	ArcAft
)

var arcNames = [...]string{"Nose", "Left Front", "Right Front", "Left Broadside", "Right Broadside", "Left Aft", "Right Aft", "Aft"}

func (a Arc) String() string {
	if a < 0 || int(a) >= len(arcNames) {
		return fmt.Sprintf("Arc(%d)", int(a))
	}
	return arcNames[a]
}

// arcLayout is the ring of arcs around a hull, clockwise from the nose.
type arcLayout struct {
	ring []Arc
}

var (
	sixArcs   = &arcLayout{ring: []Arc{ArcNose, ArcRightFront, ArcRightAft, ArcAft, ArcLeftAft, ArcLeftFront}}
	eightArcs = &arcLayout{ring: []Arc{ArcNose, ArcRightFront, ArcRightBroadside, ArcRightAft, ArcAft, ArcLeftAft, ArcLeftBroadside, ArcLeftFront}}
)

func (l *arcLayout) index(a Arc) int {
	for i, r := range l.ring {
		if r == a {
			return i
		}
	}
	return -1
}

func (l *arcLayout) adjacent(a Arc) (Arc, Arc) {
	n := len(l.ring)
	i := l.index(a)
	return l.ring[(i+n-1)%n], l.ring[(i+1)%n]
}

func (l *arcLayout) opposite(a Arc) Arc {
	n := len(l.ring)
	return l.ring[(l.index(a)+n/2)%n]
}

// sorted returns the layout's arcs in tie-break order.
func (l *arcLayout) sorted() []Arc {
	out := append([]Arc(nil), l.ring...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// FiringArcs returns the arcs a kind scores weapons in, in tie-break order.
// It is nil for kinds without firing arcs.
func (k Kind) FiringArcs() []Arc {
	if l := rulesFor(k).arcs; l != nil {
		return l.sorted()
	}
	return nil
}

// ArcPlan is the nominal arc assignment and the order arcs are scored in.
type ArcPlan struct {
	Nose  Arc
	Left  Arc
	Right Arc
	// Weak is the weaker arc adjacent to the nose when Right is the
	// opposite arc (broadside layouts only).
	Weak    Arc
	HasWeak bool
	Order   []Arc
}

func (p *ArcPlan) rank(a Arc) int {
	switch a {
	case p.Nose:
		return 0
	case p.Left:
		return 1
	case p.Right:
		return 2
	}
	return 3
}

// arcRankFactors weights arcs scored after the heat budget is exceeded.
var arcRankFactors = [...]float64{1, 1, 0.5, 0.25}

// NominalArcs picks the nose (highest BV, lowest arc on ties), the left
// arc (stronger neighbour of the nose, lowest arc on ties) and the right
// arc. With broadside set the layout has eight arcs and the right arc is
// the one opposite the nose; otherwise it is the nose's other neighbour.
func NominalArcs(bv map[Arc]float64, broadside bool) ArcPlan {
	layout := sixArcs
	if broadside {
		layout = eightArcs
	}
	return layout.plan(bv)
}

func (l *arcLayout) plan(bv map[Arc]float64) ArcPlan {
	arcs := l.sorted()
	nose := arcs[0]
	for _, a := range arcs[1:] {
		if bv[a] > bv[nose] {
			nose = a
		}
	}

	a, b := l.adjacent(nose)
	if b < a {
		a, b = b, a
	}
	left, other := a, b
	if bv[b] > bv[a] {
		left, other = b, a
	}

	p := ArcPlan{Nose: nose, Left: left, Right: other}
	if len(l.ring) == 8 {
		p.Right = l.opposite(nose)
		p.Weak = other
		p.HasWeak = true
	}

	p.Order = []Arc{p.Nose, p.Left, p.Right}
	if p.HasWeak {
		p.Order = append(p.Order, p.Weak)
	}
	seen := map[Arc]bool{}
	for _, o := range p.Order {
		seen[o] = true
	}
	for _, a := range arcs {
		if !seen[a] {
			p.Order = append(p.Order, a)
		}
	}
	return p
}

func (s *state) factorFor(a Arc) float64 {
	if f, ok := s.arcFactor[a]; ok {
		return f
	}
	return 1
}

// arcSelectionPhase takes the place of the front/rear decision for large
// craft.
func arcSelectionPhase(s *state) {
	bv := map[Arc]float64{}
	for _, m := range s.unit.Mounts {
		if s.isOffensiveWeapon(m) {
			b, _ := s.weaponBase(m)
			bv[m.Arc] += b
		}
	}
	p := s.rules.arcs.plan(bv)
	s.plan = &p
	s.res.Arcs = &p
	info := fmt.Sprintf("nose %s, left %s, right %s", p.Nose, p.Left, p.Right)
	if p.HasWeak {
		info += fmt.Sprintf(", then %s", p.Weak)
	}
	s.sink.Info("Nominal Arcs", info)
}

// arcWeaponsPhase scores arcs in plan order. Heat is charged per arc; once
// the running total passes the budget, every later arc is weighted by its
// rank relative to the nominal arcs. The arc that passes the budget keeps
// its full weight, unlike the per-weapon rule in weaponsPhase, which halves
// the crossing weapon.
func arcWeaponsPhase(s *state) {
	budget, why := s.rules.heatBudget(s)
	s.res.HeatEfficiency = budget
	s.sink.Info("Heat Efficiency", why)

	byArc := map[Arc][]*weaponEntry{}
	for _, w := range s.collectWeapons() {
		byArc[w.mount.Arc] = append(byArc[w.mount.Arc], w)
	}

	for _, arc := range s.plan.Order {
		factor := 1.0
		if s.overHeat {
			factor = arcRankFactors[s.plan.rank(arc)]
		}
		s.arcFactor[arc] = factor
		ws := byArc[arc]
		if len(ws) == 0 {
			continue
		}
		s.sink.Info("Arc", fmt.Sprintf("%s x %s", arc, num(factor)))
		var heat float64
		for _, w := range ws {
			s.countWeapon(w, factor, "arc")
			heat += w.heat
		}
		s.heatSum += heat
		if s.heatSum > budget {
			s.overHeat = true
		}
	}
}
