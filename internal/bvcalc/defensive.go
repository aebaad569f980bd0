package bvcalc

import "fmt"

// prepare resolves movement and aggregates ammunition before any value is
// counted.
func prepare(s *state) {
	u := s.unit
	s.runMP, s.jumpMP, s.umuMP = s.rules.movement(u)
	s.hasTC = u.hasWorking(FlagTargetingComputer)
	s.sink.Info("Movement", fmt.Sprintf("run %d, jump %d, underwater %d", s.runMP, s.jumpMP, s.umuMP))

	for _, m := range u.Mounts {
		if !m.Working() {
			continue
		}
		t := m.Type
		switch t.Category {
		case CategoryAmmo:
			if !ammoUsable(m) || t.Has(FlagAMS|FlagScreen|FlagBomb) {
				continue
			}
			s.ammo[s.slotFor(m, t.AmmoKey())] += ammoValue(u, m)
		case CategoryWeapon:
			if !s.isOffensiveWeapon(m) {
				continue
			}
			for _, w := range weaponMembers(m) {
				if key := w.Type.AmmoKey(); key != "" {
					s.ammoCeiling[s.slotFor(m, key)] += w.Type.BaseBV(u, w)
				}
			}
		}
	}
}

func (s *state) slotFor(m *Mount, key string) ammoSlot {
	if s.rules.arcs == nil {
		return ammoSlot{key: key}
	}
	return ammoSlot{arc: m.Arc, key: key}
}

// locationArmor is the armor a location contributes, counting modular
// armor and a torso-mounted cockpit.
func (s *state) locationArmor(i int) int {
	u := s.unit
	l := u.Locations[i]
	pts := l.Armor + l.RearArmor
	if u.Cockpit == CockpitTorsoMounted && l.Role == RoleCenterTorso {
		pts *= 2
	}
	for _, m := range u.Mounts {
		if m.Location == i && m.Working() && m.Type.Has(FlagModularArmor) {
			pts += 10
		}
	}
	return pts
}

func (s *state) patchwork() bool {
	u := s.unit
	for _, l := range u.Locations {
		if l.ArmorType != "" && l.ArmorType != u.ArmorType {
			return true
		}
		if l.BAR != 0 && l.BAR != u.BAR {
			return true
		}
	}
	return false
}

func armorPhase(s *state) {
	u := s.unit
	factor := s.rules.armorFactor

	if !s.patchwork() {
		total := 0
		for i := range u.Locations {
			total += s.locationArmor(i)
		}
		mult := ArmorMultiplier(u.ArmorType) * BARFactor(u.BAR)
		v := float64(total) * factor * mult
		s.res.ArmorBV = v
		s.addDefensive("Armor", product(float64(total), factor, mult), v)
		return
	}

	for i, l := range u.Locations {
		pts := s.locationArmor(i)
		if pts == 0 {
			continue
		}
		at, bar := l.ArmorType, l.BAR
		if at == "" {
			at = u.ArmorType
		}
		if bar == 0 {
			bar = u.BAR
		}
		mult := ArmorMultiplier(at) * BARFactor(bar)
		v := float64(pts) * factor * mult
		s.res.ArmorBV += v
		s.addDefensive("Armor ("+l.Name+")", product(float64(pts), factor, mult), v)
	}
}

func structurePhase(s *state) {
	u := s.unit
	is := u.InternalStructure()
	mult := StructureMultiplier(u.StructureType)
	v := float64(is) * 1.5 * mult
	s.res.StructureBV = v
	s.addDefensive("Structure", product(float64(is), 1.5, mult), v)
}

// siStructurePhase scores structural integrity instead of internal structure.
func siStructurePhase(factor float64) phase {
	return func(s *state) {
		si := s.unit.StructuralIntegrity
		v := float64(si) * factor
		s.res.StructureBV = v
		s.addDefensive("Structural Integrity", product(float64(si), factor), v)
	}
}

// defensiveEquipmentPhase counts AMS, ECM and the like, then the ammunition
// for AMS and screen launchers capped at the launchers' own value.
func defensiveEquipmentPhase(s *state) {
	u := s.unit
	end := s.section("Defensive Equipment")
	counted := false

	var amsBV, amsAmmo, screenBV, screenAmmo float64
	for _, m := range u.Mounts {
		if !m.Working() {
			continue
		}
		t := m.Type
		if t.Category == CategoryAmmo {
			if !ammoUsable(m) {
				continue
			}
			switch {
			case t.Has(FlagAMS):
				amsAmmo += ammoValue(u, m)
			case t.Has(FlagScreen):
				screenAmmo += ammoValue(u, m)
			}
			continue
		}
		if !t.Has(FlagDefensive | FlagAMS | FlagScreen) {
			continue
		}
		bv := t.BaseBV(u, m)
		switch {
		case t.Has(FlagAMS):
			amsBV += bv
		case t.Has(FlagScreen):
			screenBV += bv
		}
		if bv == 0 {
			continue
		}
		s.res.DefEquipBV += bv
		s.addDefensive(s.mountLabel(m), plus(bv), bv)
		counted = true
	}

	for _, a := range []struct {
		label        string
		ammo, weapon float64
	}{
		{"AMS Ammo", amsAmmo, amsBV},
		{"Screen Launcher Ammo", screenAmmo, screenBV},
	} {
		v := min(a.ammo, a.weapon)
		if v <= 0 {
			continue
		}
		s.res.DefEquipBV += v
		s.addDefensive(a.label, fmt.Sprintf("+ min(%s, %s)", num(a.ammo), num(a.weapon)), v)
		counted = true
	}
	end(counted)
}

// explosivePhase charges 15 per slot of explosive ammunition and 1 per slot
// of other explosive equipment wherever penalized says the location is
// unprotected.
func (s *state) explosivePhase(penalized func(u *Unit, loc int) bool) {
	u := s.unit
	end := s.section("Explosive Equipment")
	var total float64
	for _, m := range u.Mounts {
		t := m.Type
		if !m.Working() || !t.Has(FlagExplosive) {
			continue
		}
		if t.Category == CategoryAmmo && !ammoUsable(m) {
			continue
		}
		if !penalized(u, m.Location) {
			continue
		}
		per := 1.0
		if t.Category == CategoryAmmo {
			per = 15
		}
		p := per * float64(m.slotCount())
		total += p
		s.addDefensive(s.mountLabel(m), fmt.Sprintf("- %s x %d", num(per), m.slotCount()), -p)
	}
	s.res.ExplosivePenalty = total
	end(total > 0)
}

// unprotectedLocation is the rule for vehicles and fighters: CASE of either
// kind in the location removes the penalty.
func unprotectedLocation(u *Unit, loc int) bool {
	l := u.location(loc)
	return l != nil && !l.CASE && !l.CASEII
}

func unitExplosivePhase(s *state) {
	s.explosivePhase(unprotectedLocation)
}

func defensiveFactorPhase(s *state) {
	if s.rules.heatBudget != nil && s.defensive < 1 {
		s.setDefensive("Minimum Defensive Value", num(s.defensive)+" raised to 1", 1)
	}
	tmm := s.targetModifier()
	f := DefensiveFactor(tmm)
	s.res.DefensiveFactor = f
	s.scaleDefensive("Defensive Factor", fmt.Sprintf("%s x %s (TMM %d)", num(s.defensive), num(f), tmm), f)

	if s.rules.typeModifier == nil {
		return
	}
	if m, name := s.rules.typeModifier(s); m != 1 {
		s.scaleDefensive(name, product(s.defensive, m), m)
	}
}

// fixedDefensiveFactor replaces the movement-based factor.
func fixedDefensiveFactor(f float64) phase {
	return func(s *state) {
		s.res.DefensiveFactor = f
		s.scaleDefensive("Defensive Factor", product(s.defensive, f)+" (fixed)", f)
	}
}

// targetModifier is the best TMM over running, jumping and underwater
// movement, plus signature equipment.
func (s *state) targetModifier() int {
	tmm := TMM(s.runMP)
	if s.jumpMP > 0 {
		if j := TMM(s.jumpMP) + 1; j > tmm {
			tmm = j
		}
	}
	if w := TMM(s.umuMP); w > tmm {
		tmm = w
	}
	switch s.unit.MovementMode {
	case MoveVTOL, MoveWiGE:
		tmm++
	}
	return signatureModifier(s.unit, tmm)
}

func signatureModifier(u *Unit, tmm int) int {
	if IsStealthArmor(u.ArmorType) || u.hasWorking(FlagStealth) {
		tmm += 2
	}
	if u.hasWorking(FlagNullSig) {
		tmm += 2
	}
	if u.hasWorking(FlagChameleon) {
		tmm += 2
	}
	if u.hasWorking(FlagVoidSig) {
		if tmm < 3 {
			tmm = 3
		} else {
			tmm++
		}
	}
	return tmm
}
