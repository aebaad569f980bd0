package bvcalc

import (
	"fmt"
	"sort"
)

// sortForHeat orders weapons for heat accounting: heat-free weapons first,
// then by BV descending and heat ascending. Equal weapons keep mount order.
func sortForHeat(ws []*weaponEntry) {
	sort.SliceStable(ws, func(i, j int) bool {
		a, b := ws[i], ws[j]
		if (a.heat == 0) != (b.heat == 0) {
			return a.heat == 0
		}
		if a.bv != b.bv {
			return a.bv > b.bv
		}
		return a.heat < b.heat
	})
}

func signatureHeat(u *Unit) int {
	heat := 0
	if IsStealthArmor(u.ArmorType) || u.hasWorking(FlagStealth) {
		heat += 10
	}
	if u.hasWorking(FlagNullSig) {
		heat += 10
	}
	if u.hasWorking(FlagVoidSig) {
		heat += 10
	}
	if u.hasWorking(FlagChameleon) {
		heat += 6
	}
	return heat
}

func mekHeatBudget(s *state) (float64, string) {
	u := s.unit
	move := MovementHeat(s.runMP, s.jumpMP, u.Engine.Fusion(), u.ImprovedJumpJets)
	sig := signatureHeat(u)
	eff := 6 + u.HeatDissipation - move - sig
	why := fmt.Sprintf("6 + %d dissipation - %d movement", u.HeatDissipation, move)
	if sig > 0 {
		why += fmt.Sprintf(" - %d signature", sig)
	}
	return float64(eff), fmt.Sprintf("%s = %d", why, eff)
}

func aeroHeatBudget(s *state) (float64, string) {
	d := s.unit.HeatDissipation
	return float64(6 + d), fmt.Sprintf("6 + %d dissipation = %d", d, 6+d)
}

func spacecraftHeatBudget(s *state) (float64, string) {
	d := s.unit.HeatDissipation
	return float64(d), fmt.Sprintf("%d dissipation", d)
}
