package bvcalc

import (
	"math"
	"strings"
)

// Armor type modifiers for defensive BV, keyed by normalized name.
var ArmorTypeModifier = map[string]float64{
	"standard":                  1.0,
	"ferro-fibrous":             1.0,
	"light ferro-fibrous":       1.0,
	"heavy ferro-fibrous":       1.0,
	"stealth":                   1.0,
	"industrial":                1.0,
	"heavy industrial":          1.0,
	"primitive":                 1.0,
	"reactive":                  1.5,
	"reflective":                1.5,
	"ballistic-reinforced":      1.5,
	"impact-resistant":          1.5,
	"anti-penetrative ablation": 1.5,
	"heat-dissipating":          1.1,
	"ferro-lamellor":            1.2,
	"hardened":                  2.0,
	"commercial":                0.5,
}

// Structure type modifiers for defensive BV, keyed by normalized name.
var StructureTypeModifier = map[string]float64{
	"standard":       1.0,
	"endo steel":     1.0,
	"endo-steel":     1.0,
	"endo-composite": 1.0,
	"composite":      0.5,
	"industrial":     0.5,
	"reinforced":     2.0,
}

// normalizeType lower-cases a catalog type name and strips tech-base
// decoration like "IS ", "Clan " and "(Inner Sphere)".
func normalizeType(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	if i := strings.Index(s, "("); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	for _, p := range []string{"is ", "clan ", "inner sphere "} {
		s = strings.TrimPrefix(s, p)
	}
	if strings.HasPrefix(s, "stealth") {
		return "stealth"
	}
	return s
}

// ArmorMultiplier returns the type modifier for an armor name. Unknown
// names count as standard armor.
func ArmorMultiplier(name string) float64 {
	if name == "" {
		return 1.0
	}
	if m, ok := ArmorTypeModifier[normalizeType(name)]; ok {
		return m
	}
	return 1.0
}

// StructureMultiplier returns the type modifier for a structure name.
func StructureMultiplier(name string) float64 {
	if name == "" {
		return 1.0
	}
	if m, ok := StructureTypeModifier[normalizeType(name)]; ok {
		return m
	}
	return 1.0
}

// IsStealthArmor reports whether name is one of the stealth armor types.
func IsStealthArmor(name string) bool {
	return normalizeType(name) == "stealth"
}

// EngineModifier returns the structure multiplier for an engine.
func EngineModifier(e Engine, clan bool) float64 {
	switch e {
	case EngineXL:
		if clan {
			return 0.75
		}
		return 0.5
	case EngineXXL:
		if clan {
			return 0.5
		}
		return 0.25
	case EngineLight:
		return 0.75
	default: // Standard, Compact, ICE, Fuel Cell, Fission
		return 1.0
	}
}

// GyroModifier returns the BV modifier for gyro type
func GyroModifier(g Gyro) float64 {
	switch g {
	case GyroHeavyDuty:
		return 1.0
	case GyroNone:
		return 0
	default: // Standard, Compact, XL
		return 0.5
	}
}

// BARFactor scales armor with a barrier armor rating below 10.
func BARFactor(bar int) float64 {
	if bar <= 0 || bar >= 10 {
		return 1.0
	}
	return float64(bar) / 10.0
}

// TMM calculates Target Movement Modifier from MP
func TMM(mp int) int {
	switch {
	case mp <= 2:
		return 0
	case mp <= 4:
		return 1
	case mp <= 6:
		return 2
	case mp <= 9:
		return 3
	case mp <= 17:
		return 4
	case mp <= 24:
		return 5
	default:
		return 6
	}
}

// DefensiveFactor returns 1 + TMM/10
func DefensiveFactor(tmm int) float64 {
	return 1.0 + float64(tmm)/10.0
}

// SpeedFactor calculates the speed factor for OBR from the effective MP.
func SpeedFactor(mp int) float64 {
	base := 1.0 + float64(mp-5)/10.0
	if base < 0.1 {
		base = 0.1
	}
	return round2(math.Pow(base, 1.2))
}

// MovementHeat returns the movement heat for BV calculation
func MovementHeat(runMP, jumpMP int, fusion, improvedJump bool) int {
	runHeat := 0
	if fusion && runMP > 0 {
		runHeat = 2
	}
	jumpHeat := 0
	if jumpMP > 0 {
		jumpHeat = jumpMP
		if improvedJump {
			jumpHeat = int(math.Ceil(float64(jumpMP) / 2.0))
		}
		if jumpHeat < 3 {
			jumpHeat = 3
		}
	}
	if jumpHeat > runHeat {
		return jumpHeat
	}
	return runHeat
}

// roundHalfUp rounds to the nearest integer, halves away from zero for
// the positive values BV deals in.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

func round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
