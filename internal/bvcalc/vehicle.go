package bvcalc

func vehicleRules() *rules {
	r := baseRules()
	r.rearHalving = true
	r.typeModifier = vehicleTypeModifier
	r.phases[stepExplosive] = unitExplosivePhase
	r.phases[stepWeight] = vehicleWeightPhase
	return r
}

func vehicleTypeModifier(s *state) (float64, string) {
	switch s.unit.MovementMode {
	case MoveTracked:
		return 0.9, "Tracked"
	case MoveWheeled:
		return 0.8, "Wheeled"
	case MoveHover:
		return 0.7, "Hover"
	case MoveVTOL:
		return 0.7, "VTOL"
	case MoveWiGE:
		return 0.7, "WiGE"
	case MoveNaval, MoveHydrofoil, MoveSubmarine:
		return 0.6, "Naval"
	}
	return 1, ""
}

func vehicleWeightPhase(s *state) {
	v := s.unit.Tonnage * 0.5
	s.res.WeightBV = v
	s.addOffensive("Weight", product(s.unit.Tonnage, 0.5), v)
}
