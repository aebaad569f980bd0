package bvcalc

// Gun emplacements have no structure and never move; their defensive
// factor is fixed and the speed factor is taken at 0 MP.
func emplacementRules() *rules {
	r := baseRules()
	r.movement = noMovement
	r.phases[stepStructure] = nil
	r.phases[stepDefensiveFactor] = fixedDefensiveFactor(0.5)
	return r
}

// Handheld weapons count their armor, weapons and ammunition and nothing
// else.
func handheldRules() *rules {
	r := baseRules()
	r.movement = noMovement
	r.phases[stepStructure] = nil
	r.phases[stepDefensiveEquipment] = nil
	r.phases[stepDefensiveFactor] = nil
	r.phases[stepOffensiveEquipment] = nil
	r.phases[stepSpeedFactor] = nil
	return r
}
