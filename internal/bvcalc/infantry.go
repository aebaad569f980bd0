package bvcalc

import "fmt"

func infantryRules() *rules {
	r := baseRules()
	r.movement = footMovement
	r.typeModifier = specializationModifier
	r.phases[stepArmor] = nil
	r.phases[stepStructure] = troopersPhase
	r.phases[stepDefensiveEquipment] = nil
	r.phases[stepWeapons] = infantryWeaponsPhase
	r.phases[stepOffensiveEquipment] = nil
	return r
}

func troopersPhase(s *state) {
	u := s.unit
	div := u.DamageDivisor
	if div <= 0 {
		div = 1
	}
	v := float64(u.Troopers) * 1.5 * div
	s.res.StructureBV = v
	s.addDefensive("Troopers", product(float64(u.Troopers), 1.5, div), v)
}

// specializations that make a platoon harder to pin down in its terrain
var defensiveSpecializations = []Specialization{
	SpecCombatEngineer, SpecMarine, SpecMountainTroops, SpecParatrooper, SpecScuba, SpecXCT,
}

// specializationModifier adds 5% per defensive specialization.
func specializationModifier(s *state) (float64, string) {
	n := 0
	for _, sp := range defensiveSpecializations {
		if s.unit.Specializations&sp != 0 {
			n++
		}
	}
	if n == 0 {
		return 1, ""
	}
	return 1 + 0.05*float64(n), fmt.Sprintf("Specializations (%d)", n)
}

// infantryWeaponsPhase values the platoon's personal weapons as the squad
// average per trooper, scaled by how many troopers are left. Field guns are
// ordinary weapon mounts and count in full.
func infantryWeaponsPhase(s *state) {
	u := s.unit
	if u.PrimaryWeapon != nil && u.Troopers > 0 {
		orig := u.OriginalTroopers
		if orig <= 0 {
			orig = u.Troopers
		}
		squad := u.SquadSize
		if squad <= 0 {
			squad = orig
		}
		sec := min(max(u.SecondaryPerSquad, 0), squad)
		primary := u.PrimaryWeapon.BaseBV(u, nil)
		secondary := 0.0
		if u.SecondaryWeapon != nil {
			secondary = u.SecondaryWeapon.BaseBV(u, nil)
		} else {
			sec = 0
		}
		perTrooper := (primary*float64(squad-sec) + secondary*float64(sec)) / float64(squad)
		ratio := float64(u.Troopers) / float64(orig)
		v := perTrooper * float64(orig) * ratio
		s.res.WeaponBV += v
		s.addOffensive("Infantry Weapons",
			fmt.Sprintf("%s per trooper x %d x %s surviving", num(perTrooper), orig, num(ratio)), v)
	}
	for _, w := range s.collectWeapons() {
		s.countWeapon(w, 1, "")
	}
}
