package bvcalc

import (
	"fmt"
	"strings"
)

type weaponEntry struct {
	mount   *Mount
	label   string
	base    float64
	bv      float64
	heat    float64
	formula string
}

func (s *state) isOffensiveWeapon(m *Mount) bool {
	t := m.Type
	return m.Working() && t.Category == CategoryWeapon && !t.Has(FlagDefensive|FlagAMS|FlagScreen|FlagBomb)
}

// weaponMembers expands a bay or array into its working members.
func weaponMembers(m *Mount) []*Mount {
	if len(m.Group) == 0 {
		return []*Mount{m}
	}
	out := make([]*Mount, 0, len(m.Group))
	for _, g := range m.Group {
		if g.Working() {
			out = append(out, g)
		}
	}
	return out
}

func linkHeat(m *Mount) float64 {
	if m.Linked.Working() {
		return m.Linked.Type.LinkHeat
	}
	return 0
}

// weaponBase is the unmodified value and BV heat of a weapon mount. Grouped
// weapons sum their members and apply the group's derating factor.
func (s *state) weaponBase(m *Mount) (bv, heat float64) {
	if len(m.Group) == 0 {
		return m.Type.BaseBV(s.unit, m), m.Type.bvHeat() + linkHeat(m)
	}
	for _, g := range weaponMembers(m) {
		bv += g.Type.BaseBV(s.unit, g)
		heat += g.Type.bvHeat() + linkHeat(g)
	}
	if f := m.Type.GroupFactor; f > 0 {
		bv *= f
	}
	return bv, heat
}

// firesRear reports whether the weapon is halved as rear-facing. Turret
// weapons never are.
func (s *state) firesRear(m *Mount) bool {
	if m.Turret {
		return false
	}
	return m.Rear != s.rearSwapped
}

// collectWeapons returns every offensive weapon with its modifiers applied,
// in mount order.
func (s *state) collectWeapons() []*weaponEntry {
	var out []*weaponEntry
	for _, m := range s.unit.Mounts {
		if !s.isOffensiveWeapon(m) {
			continue
		}
		w := &weaponEntry{mount: m, label: s.mountLabel(m)}
		w.base, w.heat = s.weaponBase(m)
		s.modifyWeapon(w)
		out = append(out, w)
	}
	return out
}

func (s *state) modifyWeapon(w *weaponEntry) {
	m, u := w.mount, s.unit
	bv := w.base
	f := []string{num(bv)}
	if l := m.Linked; l.Working() {
		if lf := l.Type.LinkFactor; lf != 0 {
			bv *= lf
			f = append(f, fmt.Sprintf("x %s (%s)", num(lf), l.Type.Name))
		}
		if lb := l.Type.LinkBonus; lb != 0 {
			bv += lb
			f = append(f, fmt.Sprintf("+ %s (%s)", num(lb), l.Type.Name))
		}
	}
	if s.hasTC && m.Type.Has(FlagDirectFire) {
		bv *= 1.25
		f = append(f, "x 1.25 (targeting computer)")
	}
	switch u.FireControl {
	case FireControlBasic:
		bv *= 0.9
		f = append(f, "x 0.9 (basic fire control)")
	case FireControlNone:
		bv *= 0.8
		f = append(f, "x 0.8 (no fire control)")
	}
	if s.rules.rearHalving && s.firesRear(m) {
		bv *= 0.5
		f = append(f, "x 0.5 (rear)")
	}
	w.bv = bv
	w.formula = strings.Join(f, " ")
}

func (s *state) countWeapon(w *weaponEntry, factor float64, why string) {
	v := w.bv * factor
	formula := w.formula
	if factor != 1 {
		formula += fmt.Sprintf(" x %s (%s)", num(factor), why)
	}
	s.res.WeaponBV += v
	s.addOffensive(w.label, formula, v)
}

// frontRearPhase swaps the arcs when the rear-mounted weapons are worth
// more than the forward ones, so the weaker set is the one halved.
func frontRearPhase(s *state) {
	var front, rear float64
	for _, m := range s.unit.Mounts {
		if !s.isOffensiveWeapon(m) || m.Turret {
			continue
		}
		bv, _ := s.weaponBase(m)
		if m.Rear {
			rear += bv
		} else {
			front += bv
		}
	}
	if rear > front {
		s.rearSwapped = true
		s.res.RearSwapped = true
		s.sink.Info("Rear Arc", fmt.Sprintf("rear weapons %s outweigh front %s, front weapons halved", num(rear), num(front)))
	}
}

func weaponsPhase(s *state) {
	ws := s.collectWeapons()
	if s.rules.heatBudget == nil {
		for _, w := range ws {
			s.countWeapon(w, 1, "")
		}
		return
	}

	budget, why := s.rules.heatBudget(s)
	s.res.HeatEfficiency = budget
	s.sink.Info("Heat Efficiency", why)
	sortForHeat(ws)
	// A weapon landing exactly on the budget is full value; the one that
	// passes it is halved along with everything after it. Arc scoring in
	// arcWeaponsPhase crosses differently: the arc that passes the budget
	// still counts in full.
	for _, w := range ws {
		factor := 1.0
		if w.heat > 0 {
			if !s.overHeat {
				s.heatSum += w.heat
				s.overHeat = s.heatSum > budget
			}
			if s.overHeat {
				factor = 0.5
			}
		}
		s.countWeapon(w, factor, "heat")
	}
}

// ammoPhase counts aggregated ammunition, never more than the value of the
// weapons that fire it.
func ammoPhase(s *state) {
	end := s.section("Ammunition")
	counted := false
	for _, slot := range s.sortedSlots(s.ammo) {
		ammo, ceiling := s.ammo[slot], s.ammoCeiling[slot]
		v := min(ammo, ceiling)
		label := slot.key + " ammo"
		formula := fmt.Sprintf("min(%s, %s)", num(ammo), num(ceiling))
		if s.plan != nil {
			f := s.factorFor(slot.arc)
			v *= f
			label = fmt.Sprintf("%s %s", slot.arc, label)
			if f != 1 {
				formula += " x " + num(f)
			}
		}
		s.res.AmmoBV += v
		s.addOffensive(label, formula, v)
		counted = true
	}
	end(counted)
}

func offensiveEquipmentPhase(s *state) {
	u := s.unit
	end := s.section("Offensive Equipment")
	counted := false
	for _, m := range u.Mounts {
		if !m.Working() || m.Type.Category != CategoryMisc || !m.Type.Has(FlagOffensive) {
			continue
		}
		bv := m.Type.BaseBV(u, m)
		if bv == 0 {
			continue
		}
		s.res.MiscBV += bv
		s.addOffensive(s.mountLabel(m), plus(bv), bv)
		counted = true
	}
	end(counted)
}

func speedFactorPhase(s *state) {
	mp := s.rules.speedMP(s)
	f := SpeedFactor(mp)
	s.res.SpeedFactor = f
	s.scaleOffensive("Speed Factor", fmt.Sprintf("%s x %s (MP %d)", num(s.offensive), num(f), mp), f)
}

func summarizePhase(s *state) {
	base := roundHalfUp(s.defensive + s.offensive)
	s.sink.Line("Base Battle Value", fmt.Sprintf("%s + %s", num(s.defensive), num(s.offensive)), base)
	if f, name := cockpitModifier(s.unit); f != 1 {
		adjusted := roundHalfUp(base * f)
		s.sink.Line(name, product(base, f), adjusted)
		base = adjusted
	}
	s.res.BaseBV = int(base)
}

func cockpitModifier(u *Unit) (float64, string) {
	switch u.Cockpit {
	case CockpitSmall, CockpitSmallCommandConsole:
		return 0.95, "Small Cockpit"
	}
	return 1, ""
}
