package bvcalc

import (
	"math"
	"strconv"
)

type Category int

const (
	CategoryWeapon Category = iota
	CategoryAmmo
	CategoryMisc
)

// Flag is a capability bit on an equipment type.
type Flag uint64

const (
	FlagAMS Flag = 1 << iota
	FlagScreen
	FlagDefensive
	FlagOffensive
	FlagExplosive
	FlagDirectFire
	FlagTargetingComputer
	FlagTAG
	FlagSemiGuided
	FlagC3
	FlagStealth
	FlagNullSig
	FlagVoidSig
	FlagChameleon
	FlagMASC
	FlagSupercharger
	FlagUltra
	FlagRotary
	FlagStreak
	FlagOneShot
	FlagModularArmor
	FlagBomb
)

// EquipmentType is shared catalog data. Types are never modified by the
// engine and may be shared between units.
type EquipmentType struct {
	Name         string
	InternalName string
	Category     Category
	// BV is the static base value. Value, when set, resolves it against
	// the owning unit instead (hatchets, infantry weapons, ...).
	BV       float64
	Value    func(u *Unit, m *Mount) float64
	Heat     float64
	RackSize int
	// AmmoType groups weapons with the ammunition they fire.
	AmmoType string
	// Shots per ton, ammunition only.
	Shots   int
	Tonnage float64
	Flags   Flag
	// Applied to the weapon this type is linked to.
	LinkFactor float64
	LinkBonus  float64
	LinkHeat   float64
	// GroupFactor derates the summed value of a grouped weapon; 0 means 1.
	GroupFactor float64
}

// Has reports whether f is set.
func (t *EquipmentType) Has(f Flag) bool {
	return t != nil && t.Flags&f != 0
}

// BaseBV resolves the type's value for mount m on unit u.
func (t *EquipmentType) BaseBV(u *Unit, m *Mount) float64 {
	if t.Value != nil {
		return t.Value(u, m)
	}
	return t.BV
}

// AmmoKey is the aggregation key shared by a weapon and its ammunition.
// Empty when the type uses no ammunition.
func (t *EquipmentType) AmmoKey() string {
	if t.AmmoType == "" {
		return ""
	}
	return t.AmmoType + ":" + strconv.Itoa(t.RackSize)
}

// bvHeat is the heat a weapon is charged with for BV purposes.
func (t *EquipmentType) bvHeat() float64 {
	h := t.Heat
	switch {
	case t.Has(FlagUltra):
		h *= 2
	case t.Has(FlagRotary):
		h *= 6
	case t.Has(FlagStreak):
		h = math.Ceil(h * 0.5)
	}
	if t.Has(FlagOneShot) {
		h = math.Ceil(h * 0.25)
	}
	return h
}

// ammoValue is the BV of a bin scaled by the shots left in it. A type with
// no shots-per-ton figure counts as a full bin.
func ammoValue(u *Unit, m *Mount) float64 {
	bv := m.Type.BaseBV(u, m)
	if m.Type.Shots <= 0 {
		return bv
	}
	return bv * float64(m.Shots) / float64(m.Type.Shots)
}

// ammoUsable is true for a working bin with shots left, or a bin of a type
// that has no shot count.
func ammoUsable(m *Mount) bool {
	if !m.Working() || m.Type.Category != CategoryAmmo {
		return false
	}
	return m.Type.Shots <= 0 || m.Shots > 0
}
