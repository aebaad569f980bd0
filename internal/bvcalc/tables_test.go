package bvcalc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpeedFactor(t *testing.T) {
	tests := []struct {
		mp   int
		want float64
	}{
		{6, 1.12}, // Archer
		{5, 1.0},  // Walk 3/Run 5
		{8, 1.37}, // Walk 5/Run 8
		{9, 1.50}, // Run 6 + Jump 6
		{4, 0.88}, // Slow mech
		{0, 0.44}, // Emplacement
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SpeedFactor(tt.mp), "SpeedFactor(%d)", tt.mp)
	}
}

func TestTMM(t *testing.T) {
	tests := []struct {
		mp   int
		want int
	}{
		{0, 0}, {2, 0}, {3, 1}, {4, 1}, {5, 2}, {6, 2}, {7, 3}, {9, 3},
		{10, 4}, {17, 4}, {18, 5}, {24, 5}, {25, 6}, {40, 6},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TMM(tt.mp), "TMM(%d)", tt.mp)
	}
}

func TestMovementHeat(t *testing.T) {
	tests := []struct {
		name          string
		runMP, jumpMP int
		fusion, ijj   bool
		want          int
	}{
		{"running only", 6, 0, true, false, 2},
		{"jump beats run", 6, 4, true, false, 4},
		{"jump minimum", 6, 2, true, false, 3},
		{"ice engine", 6, 0, false, false, 0},
		{"improved jump jets", 6, 8, true, true, 4},
		{"improved jump jets minimum", 6, 4, true, true, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MovementHeat(tt.runMP, tt.jumpMP, tt.fusion, tt.ijj))
		})
	}
}

func TestSkillMultiplier(t *testing.T) {
	assert.Equal(t, 1.0, SkillMultiplier(4, 5))
	assert.Equal(t, 2.42, SkillMultiplier(0, 0))
	assert.Equal(t, 0.64, SkillMultiplier(8, 8))
	assert.Equal(t, 1.44, SkillMultiplier(3, 3))
	// clamped
	assert.Equal(t, SkillMultiplier(0, 8), SkillMultiplier(-2, 12))
	assert.Equal(t, SkillMultiplier(8, 0), SkillMultiplier(9, -1))
}

func TestArmorMultiplier(t *testing.T) {
	tests := []struct {
		name string
		want float64
	}{
		{"Standard(Inner Sphere)", 1.0},
		{"Ferro-Fibrous(Clan)", 1.0},
		{"IS Hardened", 2.0},
		{"Reactive(Clan)", 1.5},
		{"Ferro-Lamellor", 1.2},
		{"Commercial", 0.5},
		{"Stealth Armor Type II", 1.0},
		{"", 1.0},
		{"Mystery Plate", 1.0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ArmorMultiplier(tt.name), tt.name)
	}
	assert.True(t, IsStealthArmor("Stealth(Inner Sphere)"))
	assert.False(t, IsStealthArmor("Standard"))
}

func TestEngineModifier(t *testing.T) {
	assert.Equal(t, 0.5, EngineModifier(EngineXL, false))
	assert.Equal(t, 0.75, EngineModifier(EngineXL, true))
	assert.Equal(t, 0.25, EngineModifier(EngineXXL, false))
	assert.Equal(t, 0.75, EngineModifier(EngineLight, false))
	assert.Equal(t, 1.0, EngineModifier(EngineCompact, false))
}

func TestStructureMultiplier(t *testing.T) {
	assert.Equal(t, 1.0, StructureMultiplier("IS Endo Steel"))
	assert.Equal(t, 0.5, StructureMultiplier("Composite"))
	assert.Equal(t, 2.0, StructureMultiplier("IS Reinforced"))
	assert.Equal(t, 0.5, StructureMultiplier("Industrial"))
}

func TestWeaponHeat(t *testing.T) {
	assert.Equal(t, 2.0, (&EquipmentType{Heat: 1, Flags: FlagUltra}).bvHeat())
	assert.Equal(t, 6.0, (&EquipmentType{Heat: 1, Flags: FlagRotary}).bvHeat())
	assert.Equal(t, 2.0, (&EquipmentType{Heat: 3, Flags: FlagStreak}).bvHeat())
	assert.Equal(t, 1.0, (&EquipmentType{Heat: 3, Flags: FlagOneShot}).bvHeat())
	assert.Equal(t, 5.0, (&EquipmentType{Heat: 5}).bvHeat())
}
