package bvcalc

import "fmt"

// squadFactors is indexed by surviving troopers.
var squadFactors = [...]float64{0, 1, 2.2, 3.6, 5.2, 7, 9}

// SquadBV scales a single trooper's value to the squad. Squads larger than
// six use the six-trooper factor.
func SquadBV(trooper float64, troopers int) float64 {
	if troopers <= 0 {
		return 0
	}
	if troopers >= len(squadFactors) {
		troopers = len(squadFactors) - 1
	}
	return trooper * squadFactors[troopers]
}

// battleArmorRules scores one representative trooper through the normal
// pipeline and multiplies at the end. Each location is a trooper and the
// mounts are one trooper's kit.
func battleArmorRules() *rules {
	r := baseRules()
	r.movement = footMovement
	r.phases[stepArmor] = trooperArmorPhase
	r.phases[stepStructure] = trooperStructurePhase
	r.phases[stepSummarize] = squadSummarizePhase
	return r
}

func survivors(u *Unit) []Location {
	var out []Location
	for _, l := range u.Locations {
		if !l.Destroyed {
			out = append(out, l)
		}
	}
	return out
}

func trooperArmorPhase(s *state) {
	u := s.unit
	alive := survivors(u)
	if len(alive) == 0 {
		return
	}
	total := 0
	for _, l := range alive {
		total += l.Armor
	}
	avg := float64(total) / float64(len(alive))
	mult := ArmorMultiplier(u.ArmorType)
	v := avg * s.rules.armorFactor * mult
	s.res.ArmorBV = v
	s.addDefensive("Armor (per trooper)", product(avg, s.rules.armorFactor, mult), v)
}

func trooperStructurePhase(s *state) {
	alive := survivors(s.unit)
	if len(alive) == 0 {
		return
	}
	total := 0
	for _, l := range alive {
		total += l.Structure
	}
	avg := float64(total) / float64(len(alive))
	v := avg * 1.5
	s.res.StructureBV = v
	s.addDefensive("Structure (per trooper)", product(avg, 1.5), v)
}

func squadSummarizePhase(s *state) {
	trooper := s.defensive + s.offensive
	n := len(survivors(s.unit))
	s.res.TrooperBV = trooper
	s.sink.Line("Trooper Battle Value", fmt.Sprintf("%s + %s", num(s.defensive), num(s.offensive)), trooper)
	squad := roundHalfUp(SquadBV(trooper, n))
	s.sink.Line("Squad Battle Value", fmt.Sprintf("%s x squad factor for %d", num(trooper), n), squad)
	s.res.BaseBV = int(squad)
}
