package bvcalc

// spacecraftRules covers DropShips, JumpShips, WarShips and space
// stations. Capital-scale hulls carry ten times the armor factor.
func spacecraftRules(k Kind) *rules {
	r := baseRules()
	r.movement = thrustMovement
	r.speedMP = runOnlySpeedMP
	r.heatBudget = spacecraftHeatBudget
	r.arcs = sixArcs
	if k == KindWarship {
		r.arcs = eightArcs
	}
	if k != KindDropship {
		r.armorFactor = 25
	}
	r.phases[stepStructure] = siStructurePhase(20)
	r.phases[stepFrontRear] = arcSelectionPhase
	r.phases[stepWeapons] = arcWeaponsPhase
	return r
}
