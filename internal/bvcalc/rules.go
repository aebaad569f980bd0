package bvcalc

// step names one slot of the calculation pipeline.
type step int

const (
	stepPrepare step = iota
	stepArmor
	stepStructure
	stepDefensiveEquipment
	stepExplosive
	stepDefensiveFactor
	stepFrontRear
	stepWeapons
	stepAmmo
	stepOffensiveEquipment
	stepWeight
	stepSpeedFactor
	stepSummarize
	numSteps
)

type phase func(s *state)

// pipeline is the fixed phase order. A kind changes behavior by replacing
// or clearing entries in its phase table, never by reordering.
var pipeline = []struct {
	title string
	steps []step
}{
	{"", []step{stepPrepare}},
	{"Defensive Battle Rating", []step{stepArmor, stepStructure, stepDefensiveEquipment, stepExplosive, stepDefensiveFactor}},
	{"Offensive Battle Rating", []step{stepFrontRear, stepWeapons, stepAmmo, stepOffensiveEquipment, stepWeight, stepSpeedFactor}},
	{"Battle Value", []step{stepSummarize}},
}

// rules is the per-kind table. It is built fresh for each Calculator and
// holds no per-call data.
type rules struct {
	phases [numSteps]phase

	armorFactor float64
	movement    func(u *Unit) (run, jump, umu int)
	speedMP     func(s *state) int
	// heatBudget is nil for kinds that do not track heat.
	heatBudget func(s *state) (float64, string)
	// arcs is set for large craft, which score weapons per firing arc.
	arcs        *arcLayout
	rearHalving bool
	// typeModifier is applied after the defensive factor.
	typeModifier func(s *state) (float64, string)
}

// baseRules is the generic table every kind starts from.
func baseRules() *rules {
	r := &rules{
		armorFactor: 2.5,
		movement:    defaultMovement,
		speedMP:     defaultSpeedMP,
	}
	r.phases = [numSteps]phase{
		stepPrepare:            prepare,
		stepArmor:              armorPhase,
		stepStructure:          structurePhase,
		stepDefensiveEquipment: defensiveEquipmentPhase,
		stepDefensiveFactor:    defensiveFactorPhase,
		stepWeapons:            weaponsPhase,
		stepAmmo:               ammoPhase,
		stepOffensiveEquipment: offensiveEquipmentPhase,
		stepSpeedFactor:        speedFactorPhase,
		stepSummarize:          summarizePhase,
	}
	return r
}

// rulesFor installs the front/rear check on every table that halves rear
// weapons.
func rulesFor(k Kind) *rules {
	r := kindRules(k)
	if r.rearHalving && r.phases[stepFrontRear] == nil {
		r.phases[stepFrontRear] = frontRearPhase
	}
	return r
}

func kindRules(k Kind) *rules {
	switch k {
	case KindMek:
		return mekRules()
	case KindVehicle:
		return vehicleRules()
	case KindAero:
		return aeroRules()
	case KindDropship, KindJumpship, KindWarship, KindSpaceStation:
		return spacecraftRules(k)
	case KindInfantry:
		return infantryRules()
	case KindBattleArmor:
		return battleArmorRules()
	case KindGunEmplacement:
		return emplacementRules()
	case KindHandheldWeapon:
		return handheldRules()
	}
	return baseRules()
}

// defaultMovement runs at one and a half times walking speed.
func defaultMovement(u *Unit) (run, jump, umu int) {
	return runMP(u.WalkMP), u.JumpMP, u.UMUMP
}

// footMovement is for units whose run equals their walk.
func footMovement(u *Unit) (run, jump, umu int) {
	return u.WalkMP, u.JumpMP, u.UMUMP
}

func noMovement(*Unit) (run, jump, umu int) {
	return 0, 0, 0
}

func runMP(walk int) int {
	return (walk*3 + 1) / 2
}

// defaultSpeedMP adds half the better of jump and underwater movement,
// rounded up, to running movement.
func defaultSpeedMP(s *state) int {
	extra := s.jumpMP
	if s.umuMP > extra {
		extra = s.umuMP
	}
	return s.runMP + (extra+1)/2
}

func runOnlySpeedMP(s *state) int {
	return s.runMP
}
