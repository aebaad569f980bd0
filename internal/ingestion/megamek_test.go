package ingestion

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JustinWhittecar/bvengine/internal/bvcalc"
	"github.com/JustinWhittecar/bvengine/internal/catalog"
)

const locustMTF = `Version:1.0
chassis:Locust
model:LCT-1V
mul id:1926

Config:Biped
techbase:Inner Sphere
era:2499
source:TRO 3039 - Age of War
rules level:1

Mass:20
Engine:160 Fusion Engine(IS)
Structure:IS Standard
Myomer:Standard
Cockpit:Standard Cockpit
Gyro:Standard Gyro

Heat Sinks:10 Single
Walk MP:8
Jump MP:0

Armor:Standard(Inner Sphere)
LA armor:4
RA armor:4
LT armor:8
RT armor:8
CT armor:10
HD armor:8
LL armor:8
RL armor:8
RTL armor:2
RTR armor:2
RTC armor:2

Weapons:3
Medium Laser, Center Torso
Machine Gun, Left Arm
Machine Gun, Right Arm

Left Arm:
Shoulder
Upper Arm Actuator
Machine Gun
-Empty-

Right Arm:
Shoulder
Upper Arm Actuator
Machine Gun
-Empty-

Left Torso:
Heat Sink
-Empty-

Right Torso:
Heat Sink
-Empty-

Center Torso:
Fusion Engine
Fusion Engine
Fusion Engine
Gyro
Gyro
Gyro
Gyro
Fusion Engine
Fusion Engine
Fusion Engine
Medium Laser
IS Ammo MG - Full

Head:
Life Support
Sensors
Cockpit
-Empty-
Sensors
Life Support

Left Leg:
Hip
Upper Leg Actuator
Lower Leg Actuator
Foot Actuator
Heat Sink

Right Leg:
Hip
Upper Leg Actuator
Lower Leg Actuator
Foot Actuator
Heat Sink

overview:The Locust is fast, with commas, in its lore.
`

func parse(t *testing.T, text string) *MTFData {
	t.Helper()
	d, err := ReadMTF(strings.NewReader(text))
	require.NoError(t, err)
	return d
}

func TestReadMTF(t *testing.T) {
	d := parse(t, locustMTF)

	assert.Equal(t, "Locust", d.Chassis)
	assert.Equal(t, "LCT-1V", d.Model)
	assert.Equal(t, "Locust LCT-1V", d.FullName())
	assert.Equal(t, 1926, d.MulID)
	assert.Equal(t, 20, d.Mass)
	assert.Equal(t, 160, d.EngineRating)
	assert.Equal(t, "Fusion Engine(IS)", d.EngineType)
	assert.Equal(t, 10, d.HeatSinkCount)
	assert.Equal(t, "Single", d.HeatSinkType)
	assert.Equal(t, 8, d.WalkMP)
	assert.Equal(t, 10, d.ArmorValues["CT"])
	assert.Equal(t, 2, d.RearArmor["CT"])
	assert.Equal(t, 64, d.TotalArmor())
	assert.False(t, d.IsClan())

	require.Len(t, d.Weapons, 3)
	assert.Equal(t, WeaponEntry{Name: "Machine Gun", Location: "Left Arm"}, d.Weapons[1])
	assert.Len(t, d.LocationEquipment["Center Torso"], 12)
	// lore after the last location block is not equipment
	assert.Len(t, d.LocationEquipment["Right Leg"], 5)
}

func TestParseMTFFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Locust LCT-1V.mtf")
	require.NoError(t, os.WriteFile(path, []byte(locustMTF), 0o644))

	d, err := ParseMTF(path)
	require.NoError(t, err)
	assert.Equal(t, "Locust", d.Chassis)

	_, err = ParseMTF(filepath.Join(t.TempDir(), "missing.mtf"))
	assert.Error(t, err)
}

func TestReadMTFMissingChassis(t *testing.T) {
	_, err := ReadMTF(strings.NewReader("model:LCT-1V\nMass:20\n"))
	assert.ErrorIs(t, err, ErrMissingChassis)
}

func TestParseWeaponEntry(t *testing.T) {
	tests := []struct {
		line string
		want WeaponEntry
		ok   bool
	}{
		{"Medium Laser, Center Torso (R)", WeaponEntry{"Medium Laser", "Center Torso", true}, true},
		{"1 ISERLargeLaser, Right Arm", WeaponEntry{"ISERLargeLaser", "Right Arm", false}, true},
		{"LRM 20, Left Torso, Ammo:12", WeaponEntry{"LRM 20", "Left Torso", false}, true},
		{"no comma here", WeaponEntry{}, false},
	}
	for _, tt := range tests {
		got, ok := parseWeaponEntry(tt.line)
		assert.Equal(t, tt.ok, ok, tt.line)
		assert.Equal(t, tt.want, got, tt.line)
	}
}

func TestPatchworkArmor(t *testing.T) {
	d := parse(t, "chassis:Test\nArmor:Patchwork\nLA armor:Reactive(Inner Sphere):12\nRA armor:10\n")
	assert.Equal(t, 12, d.ArmorValues["LA"])
	assert.Equal(t, "Reactive(Inner Sphere)", d.PatchworkArmor["LA"])
	assert.Empty(t, d.PatchworkArmor["RA"])
}

func TestIsClan(t *testing.T) {
	for tb, want := range map[string]bool{
		"Inner Sphere":         false,
		"Clan":                 true,
		"Mixed (IS Chassis)":   false,
		"Mixed (Clan Chassis)": true,
	} {
		assert.Equal(t, want, (&MTFData{TechBase: tb}).IsClan(), tb)
	}
}

func TestBuildUnitLocust(t *testing.T) {
	u, err := BuildUnit(parse(t, locustMTF), catalog.Builtin())
	require.NoError(t, err)

	assert.Equal(t, "mul-1926", u.ID)
	assert.Equal(t, bvcalc.KindMek, u.Kind)
	assert.Equal(t, 10, u.HeatDissipation)
	require.Len(t, u.Locations, 8)
	assert.Equal(t, "Head", u.Locations[0].Name)
	assert.Equal(t, 33, u.InternalStructure())
	assert.Equal(t, 64, u.TotalArmor())
	assert.Len(t, u.Mounts, 4)

	var ammo *bvcalc.Mount
	for _, m := range u.Mounts {
		if m.Type.Category == bvcalc.CategoryAmmo {
			ammo = m
		}
	}
	require.NotNil(t, ammo)
	assert.Equal(t, 200, ammo.Shots)
	assert.Equal(t, "Center Torso", u.Locations[ammo.Location].Name)

	assert.Equal(t, 432, bvcalc.BattleValue(u, true, false))
}

func TestBuildUnitLocationOrder(t *testing.T) {
	d := &MTFData{
		Chassis: "Odd",
		Model:   "OD-1",
		Mass:    20,
		LocationEquipment: map[string][]string{
			"Pod B": nil, "Center Torso": nil, "Pod A": nil, "Head": nil,
		},
	}
	for i := 0; i < 20; i++ {
		u, err := BuildUnit(d, catalog.Builtin())
		require.NoError(t, err)
		names := make([]string, 0, len(u.Locations))
		for _, l := range u.Locations {
			names = append(names, l.Name)
		}
		require.Equal(t, []string{"Head", "Center Torso", "Pod A", "Pod B"}, names)
	}
}

const upgradeMTF = `chassis:Testbed
model:TB-1
techbase:Inner Sphere
Mass:55
Engine:275 XL Engine(IS)
Structure:Industrial
Cockpit:Industrial Cockpit
Gyro:Heavy Duty Gyro
Myomer:Triple-Strength
Heat Sinks:12 IS Double
Walk MP:5
Jump MP:5
Armor:Standard(Inner Sphere)
LT armor:10
RT armor:10
RA armor:10
CT armor:10
HD armor:9

Weapons:4
LRM 10, Left Torso
PPC, Right Arm
Medium Laser, Center Torso (R)
Large Laser, Right Torso

Left Torso:
LRM 10
LRM 10
ISArtemisIV
IS Ammo LRM-10 Artemis-capable
ISCASE
ISImprovedJump Jet

Right Torso:
Large Laser
Large Laser
Guardian ECM Suite
Guardian ECM Suite
Hatchet
Hatchet
Hatchet

Right Arm:
PPC
PPC
PPC
ISPPCCapacitor

Center Torso:
Medium Laser (R)
Quantum Flux Regulator
`

func TestBuildUnitEquipment(t *testing.T) {
	u, err := BuildUnit(parse(t, upgradeMTF), catalog.Builtin())
	require.ErrorIs(t, err, ErrUnknownEquipment)
	assert.Contains(t, err.Error(), "Quantum Flux Regulator")
	require.NotNil(t, u)

	assert.Equal(t, bvcalc.EngineXL, u.Engine)
	assert.Equal(t, bvcalc.GyroHeavyDuty, u.Gyro)
	assert.Equal(t, bvcalc.MyomerTSM, u.Myomer)
	assert.Equal(t, bvcalc.CockpitIndustrial, u.Cockpit)
	assert.True(t, u.Industrial)
	assert.Equal(t, bvcalc.FireControlBasic, u.FireControl)
	assert.True(t, u.ImprovedJumpJets)
	assert.Equal(t, 24, u.HeatDissipation)

	byName := map[string]*bvcalc.Mount{}
	for _, m := range u.Mounts {
		byName[m.Type.Name] = m
	}

	lt := u.Locations[byName["LRM 10"].Location]
	assert.Equal(t, "Left Torso", lt.Name)
	assert.True(t, lt.CASE)

	require.NotNil(t, byName["LRM 10"].Linked)
	assert.Equal(t, "Artemis IV", byName["LRM 10"].Linked.Type.Name)
	require.NotNil(t, byName["PPC"].Linked)
	assert.Equal(t, "PPC Capacitor", byName["PPC"].Linked.Type.Name)
	assert.Nil(t, byName["Large Laser"].Linked)

	assert.Equal(t, 2, byName["LRM 10"].Slots)
	assert.Equal(t, 3, byName["PPC"].Slots)
	assert.Equal(t, 2, byName["Guardian ECM Suite"].Slots)
	assert.Equal(t, 3, byName["Hatchet"].Slots)
	assert.True(t, byName["Medium Laser"].Rear)
	assert.Equal(t, 12, byName["LRM-10 Ammo"].Shots)
}

func TestAdvancedFireControl(t *testing.T) {
	text := strings.Replace(upgradeMTF, "ISCASE\n", "Advanced Fire Control\n", 1)
	u, _ := BuildUnit(parse(t, text), catalog.Builtin())
	assert.Equal(t, bvcalc.FireControlAdvanced, u.FireControl)
}

func TestLocationStructure(t *testing.T) {
	tests := []struct {
		tons int
		loc  string
		want int
	}{
		{20, "Center Torso", 6},
		{20, "Head", 3},
		{55, "Left Arm", 9},
		{57, "Left Arm", 9},
		{100, "Right Leg", 21},
		{5, "Right Torso", 3},
		{120, "Center Torso", 31},
		{60, "Front Left Leg", 14},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, locationStructure(tt.tons, mekLocations[tt.loc]), "%d %s", tt.tons, tt.loc)
	}
}

func TestSlotKey(t *testing.T) {
	tests := map[string]string{
		"ISDoubleHeatSink":  "doubleheatsink",
		"Clan Endo Steel":   "endosteel",
		"-Empty-":           "empty",
		"CLCASE":            "case",
		"ISCASEII":          "caseii",
		"ISImprovedJump Jet": "improvedjumpjet",
		"Medium Laser":      "mediumlaser",
	}
	for in, want := range tests {
		assert.Equal(t, want, slotKey(in), in)
	}
}

func TestUnknownEquipmentError(t *testing.T) {
	_, err := BuildUnit(parse(t, upgradeMTF), catalog.Builtin())

	var unknown *UnknownEquipmentError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Testbed TB-1", unknown.Unit)
	assert.Equal(t, []string{"Quantum Flux Regulator"}, unknown.Names)
}
