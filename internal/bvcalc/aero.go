package bvcalc

func aeroRules() *rules {
	r := baseRules()
	r.movement = thrustMovement
	r.speedMP = runOnlySpeedMP
	r.heatBudget = aeroHeatBudget
	r.rearHalving = true
	r.phases[stepStructure] = siStructurePhase(2)
	r.phases[stepExplosive] = unitExplosivePhase
	r.phases[stepSummarize] = aeroSummarizePhase
	return r
}

// thrustMovement treats walk as safe thrust; aerospace units do not jump.
func thrustMovement(u *Unit) (run, jump, umu int) {
	return runMP(u.WalkMP), 0, 0
}

// aeroSummarizePhase adds external stores after the base value is rounded.
func aeroSummarizePhase(s *state) {
	summarizePhase(s)
	u := s.unit
	end := s.section("External Stores")
	var ext float64
	for _, m := range u.Mounts {
		if !m.Working() || !m.Type.Has(FlagBomb) {
			continue
		}
		bv := m.Type.BaseBV(u, m)
		ext += bv
		s.sink.Line(s.mountLabel(m), plus(bv), float64(s.res.BaseBV)+ext)
	}
	end(ext > 0)
	if ext > 0 {
		s.res.ExternalBV = ext
		s.res.BaseBV = int(roundHalfUp(float64(s.res.BaseBV) + ext))
	}
}
