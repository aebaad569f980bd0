package bvcalc

import "fmt"

func mekRules() *rules {
	r := baseRules()
	r.movement = mekMovement
	r.heatBudget = mekHeatBudget
	r.rearHalving = true
	r.phases[stepStructure] = mekStructurePhase
	r.phases[stepExplosive] = mekExplosivePhase
	r.phases[stepWeight] = mekWeightPhase
	return r
}

// mekMovement applies TSM (+1 walk) and then MASC or a supercharger
// (double walk), or both (two and a half times walk).
func mekMovement(u *Unit) (run, jump, umu int) {
	walk := u.WalkMP
	if u.Myomer == MyomerTSM {
		walk++
	}
	masc, super := u.hasWorking(FlagMASC), u.hasWorking(FlagSupercharger)
	switch {
	case masc && super:
		run = (walk*5 + 1) / 2
	case masc || super:
		run = walk * 2
	default:
		run = runMP(walk)
	}
	return run, u.JumpMP, u.UMUMP
}

// mekStructurePhase scales structure by the engine and adds the gyro.
func mekStructurePhase(s *state) {
	u := s.unit
	is := u.InternalStructure()
	mult := StructureMultiplier(u.StructureType)
	eng := EngineModifier(u.Engine, u.Clan)
	v := float64(is) * 1.5 * mult * eng
	s.res.StructureBV = v
	s.addDefensive("Structure", product(float64(is), 1.5, mult, eng), v)

	gyro := u.Tonnage * GyroModifier(u.Gyro)
	s.res.StructureBV += gyro
	s.addDefensive("Gyro", product(u.Tonnage, GyroModifier(u.Gyro)), gyro)
}

// mekPenalized reports whether explosive equipment in loc costs BV.
// CASE II always protects. Head, center torso and legs are otherwise never
// protected. Side torsos and arms are protected by CASE (arms also by CASE
// in the torso they transfer to, Clan meks by default) unless losing the
// side torso would take an Inner Sphere XL or XXL engine with it.
func mekPenalized(u *Unit, loc int) bool {
	l := u.location(loc)
	if l == nil || l.CASEII {
		return false
	}
	switch l.Role {
	case RoleHead, RoleCenterTorso, RoleLeg:
		return true
	}
	protected := l.CASE || u.Clan
	if !protected && l.Role == RoleArm {
		if t := u.locationByName(l.TransferTo); t != nil && (t.CASE || t.CASEII) {
			protected = true
		}
	}
	if !protected {
		return true
	}
	return !u.Clan && (u.Engine == EngineXL || u.Engine == EngineXXL)
}

func mekExplosivePhase(s *state) {
	s.explosivePhase(mekPenalized)
}

func mekWeightPhase(s *state) {
	u := s.unit
	f := 1.0
	switch u.Myomer {
	case MyomerTSM:
		f = 1.5
	case MyomerIndustrialTSM:
		f = 1.15
	}
	v := u.Tonnage * f
	s.res.WeightBV = v
	label := "Weight"
	if f != 1 {
		label = fmt.Sprintf("Weight (TSM x %s)", num(f))
	}
	s.addOffensive(label, product(u.Tonnage, f), v)
}
