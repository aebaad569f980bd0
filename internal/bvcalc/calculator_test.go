package bvcalc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JustinWhittecar/bvengine/internal/report"
)

func weaponType(name string, bv, heat float64, flags Flag) *EquipmentType {
	return &EquipmentType{Name: name, Category: CategoryWeapon, BV: bv, Heat: heat, Flags: flags}
}

func ammoType(name, ammo string, rack int, bv float64, shots int, flags Flag) *EquipmentType {
	return &EquipmentType{Name: name, Category: CategoryAmmo, AmmoType: ammo, RackSize: rack, BV: bv, Shots: shots, Flags: flags | FlagExplosive}
}

func at(t *EquipmentType, loc int) *Mount {
	return &Mount{Type: t, Location: loc}
}

// simpleMek is a 20 ton mek with one location and one medium laser:
// defensive (25 + 15 + 10) x 1.3 = 65, offensive (46 + 20) x 1.5 = 99.
func simpleMek() *Unit {
	return &Unit{
		Name:    "Test Mek",
		Kind:    KindMek,
		Tonnage: 20,
		Locations: []Location{
			{Name: "CT", Role: RoleCenterTorso, Armor: 10, Structure: 10},
		},
		WalkMP:          6,
		HeatDissipation: 10,
		Mounts:          []*Mount{at(weaponType("Medium Laser", 46, 3, FlagDirectFire), 0)},
		Crew:            &Crew{Gunnery: 4, Piloting: 5, Size: 1},
	}
}

func TestSimpleMek(t *testing.T) {
	res := New(simpleMek()).Calculate(false, false)

	assert.Equal(t, 25.0, res.ArmorBV)
	assert.Equal(t, 25.0, res.StructureBV) // 15 structure + 10 gyro
	assert.Equal(t, 1.3, res.DefensiveFactor)
	assert.InDelta(t, 65.0, res.DefensiveValue, 1e-9)
	assert.Equal(t, 46.0, res.WeaponBV)
	assert.Equal(t, 20.0, res.WeightBV)
	assert.Equal(t, 1.5, res.SpeedFactor)
	assert.Equal(t, 14.0, res.HeatEfficiency)
	assert.InDelta(t, 99.0, res.OffensiveValue, 1e-9)
	assert.Equal(t, 164, res.BaseBV)
	assert.Equal(t, 1.0, res.SkillMultiplier)
	assert.Equal(t, 164, res.BV)
}

func TestArmorContribution(t *testing.T) {
	u := &Unit{
		Kind:      KindVehicle,
		Locations: []Location{{Name: "Front", Armor: 10}},
	}
	res := New(u).Calculate(true, true)
	assert.Equal(t, 25.0, res.ArmorBV)
}

func TestPatchworkMatchesUniform(t *testing.T) {
	uniform := &Unit{
		Kind:      KindMek,
		Tonnage:   50,
		ArmorType: "Standard",
		Locations: []Location{
			{Name: "CT", Role: RoleCenterTorso, Armor: 20, RearArmor: 8, Structure: 16},
			{Name: "LT", Role: RoleSideTorso, Armor: 15, RearArmor: 5, Structure: 12},
		},
		WalkMP: 4,
	}
	patch := *uniform
	patch.Locations = append([]Location(nil), uniform.Locations...)
	patch.Locations[1].ArmorType = "Ferro-Fibrous"

	a := New(uniform).Calculate(true, true)
	b := New(&patch).Calculate(true, true)
	assert.Equal(t, a.ArmorBV, b.ArmorBV)
	assert.Equal(t, 120.0, a.ArmorBV)
	assert.Equal(t, a.BV, b.BV)
}

func TestHeatEfficiency(t *testing.T) {
	u := &Unit{
		Kind:            KindMek,
		Locations:       []Location{{Name: "CT", Role: RoleCenterTorso}},
		HeatDissipation: 4, // 6 + 4 - 0 movement = 10
	}
	for i := 0; i < 3; i++ {
		u.Mounts = append(u.Mounts, at(weaponType("Laser", 10, 4, 0), 0))
	}
	res := New(u).Calculate(true, true)
	assert.Equal(t, 10.0, res.HeatEfficiency)
	assert.Equal(t, 25.0, res.WeaponBV)
}

func TestHeatFreeWeaponsNeverHalved(t *testing.T) {
	u := &Unit{
		Kind:      KindMek,
		Locations: []Location{{Name: "CT", Role: RoleCenterTorso}},
		Mounts: []*Mount{
			at(weaponType("PPC", 176, 10, 0), 0),
			at(weaponType("AC/5", 70, 1, 0), 0),
			at(weaponType("Machine Gun", 5, 0, 0), 0),
		},
	}
	// budget 6: the PPC overflows and is halved, then everything with heat after it
	res := New(u).Calculate(true, true)
	assert.Equal(t, 5.0+88+35, res.WeaponBV)
}

func TestWeaponHeatOrdering(t *testing.T) {
	ws := []*weaponEntry{
		{label: "a", bv: 10, heat: 4},
		{label: "b", bv: 20, heat: 8},
		{label: "c", bv: 20, heat: 3},
		{label: "d", bv: 1, heat: 0},
		{label: "e", bv: 10, heat: 4},
	}
	sortForHeat(ws)
	var got []string
	for _, w := range ws {
		got = append(got, w.label)
	}
	assert.Equal(t, []string{"d", "c", "b", "a", "e"}, got)
}

func TestSkillNeutral(t *testing.T) {
	u := simpleMek()
	with := New(u).Calculate(true, false)
	without := New(u).Calculate(true, true)
	assert.Equal(t, without.BV, with.BV)
}

func TestSkillApplied(t *testing.T) {
	u := simpleMek()
	u.Crew = &Crew{Gunnery: 3, Piloting: 5, Size: 1}
	res := New(u).Calculate(true, false)
	assert.Equal(t, 1.20, res.SkillMultiplier)
	assert.Equal(t, 197, res.BV) // 164 x 1.2 = 196.8
}

func TestZeroCrew(t *testing.T) {
	u := simpleMek()
	u.Crew = &Crew{Gunnery: 0, Piloting: 0, Size: 0}
	res := New(u).Calculate(true, false)
	assert.Equal(t, 1.0, res.SkillMultiplier)
	assert.Equal(t, 164, res.BV)

	u.Crew = nil
	assert.Equal(t, 164, BattleValue(u, true, false))
}

func TestDestroyed(t *testing.T) {
	u := simpleMek()
	u.Destroyed = true
	r := report.New()
	res := New(u).CalculateReport(false, false, r)
	assert.Equal(t, 0, res.BV)
	lines := r.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "Destroyed", lines[0].Label)
}

func TestExcessiveAmmo(t *testing.T) {
	lrm := &EquipmentType{Name: "LRM 20", Category: CategoryWeapon, BV: 27, Heat: 6, AmmoType: "LRM", RackSize: 20}
	ammo := ammoType("LRM 20 Ammo", "LRM", 20, 23, 6, 0)
	u := &Unit{
		Kind:      KindVehicle,
		Locations: []Location{{Name: "Body", CASE: true}},
		Mounts:    []*Mount{at(lrm, 0), NewAmmoMount(ammo, 0), NewAmmoMount(ammo, 0)},
	}
	res := New(u).Calculate(true, true)
	assert.Equal(t, 27.0, res.AmmoBV) // min(46, 27)

	// ammo with nothing to fire it counts for nothing
	u.Mounts = u.Mounts[1:]
	res = New(u).Calculate(true, true)
	assert.Equal(t, 0.0, res.AmmoBV)
}

func TestPartialAmmoBin(t *testing.T) {
	ac := &EquipmentType{Name: "AC/20", Category: CategoryWeapon, BV: 178, Heat: 7, AmmoType: "AC", RackSize: 20}
	ammo := ammoType("AC/20 Ammo", "AC", 20, 22, 5, 0)
	bin := NewAmmoMount(ammo, 0)
	bin.Shots = 2
	u := &Unit{
		Kind:      KindVehicle,
		Locations: []Location{{Name: "Body", CASE: true}},
		Mounts:    []*Mount{at(ac, 0), bin},
	}
	res := New(u).Calculate(true, true)
	assert.InDelta(t, 8.8, res.AmmoBV, 1e-9)
}

func TestZeroShotsPerTon(t *testing.T) {
	odd := &EquipmentType{Name: "Odd Ammo", Category: CategoryAmmo, AmmoType: "ODD", BV: 12}
	gun := &EquipmentType{Name: "Odd Gun", Category: CategoryWeapon, BV: 50, AmmoType: "ODD"}
	u := &Unit{
		Kind:      KindVehicle,
		Locations: []Location{{Name: "Body", CASE: true}},
		Mounts:    []*Mount{at(gun, 0), at(odd, 0)},
	}
	res := New(u).Calculate(true, true)
	assert.Equal(t, 12.0, res.AmmoBV)
}

func TestAMSAmmoCapped(t *testing.T) {
	ams := weaponType("AMS", 32, 1, FlagAMS|FlagDefensive)
	amsAmmo := &EquipmentType{Name: "AMS Ammo", Category: CategoryAmmo, BV: 11, Shots: 12, Flags: FlagAMS}
	u := &Unit{
		Kind:      KindVehicle,
		Locations: []Location{{Name: "Body"}},
		Mounts:    []*Mount{at(ams, 0), NewAmmoMount(amsAmmo, 0), NewAmmoMount(amsAmmo, 0), NewAmmoMount(amsAmmo, 0), NewAmmoMount(amsAmmo, 0)},
	}
	res := New(u).Calculate(true, true)
	assert.Equal(t, 64.0, res.DefEquipBV) // 32 + min(44, 32)
	assert.Equal(t, 0.0, res.WeaponBV)
	assert.Equal(t, 0.0, res.AmmoBV)
}

func TestFrontRearSwap(t *testing.T) {
	u := &Unit{
		Kind:      KindVehicle,
		Locations: []Location{{Name: "Body"}},
		Mounts: []*Mount{
			at(weaponType("Small Laser", 10, 1, 0), 0),
			{Type: weaponType("Large Laser", 30, 8, 0), Location: 0, Rear: true},
		},
	}
	res := New(u).Calculate(true, true)
	assert.True(t, res.RearSwapped)
	assert.Equal(t, 35.0, res.WeaponBV)

	u.Mounts[1].Rear = false
	res = New(u).Calculate(true, true)
	assert.False(t, res.RearSwapped)
	assert.Equal(t, 40.0, res.WeaponBV)
}

func TestTurretNeverHalved(t *testing.T) {
	u := &Unit{
		Kind:      KindVehicle,
		Locations: []Location{{Name: "Turret"}},
		Mounts:    []*Mount{{Type: weaponType("PPC", 176, 10, 0), Location: 0, Rear: true, Turret: true}},
	}
	res := New(u).Calculate(true, true)
	assert.Equal(t, 176.0, res.WeaponBV)
}

func TestLinkedAndTargetingComputer(t *testing.T) {
	artemis := &EquipmentType{Name: "Artemis IV", Category: CategoryMisc, LinkFactor: 1.2}
	tc := &EquipmentType{Name: "Targeting Computer", Category: CategoryMisc, Flags: FlagTargetingComputer}
	lrm := weaponType("LRM 10", 90, 4, 0)
	laser := weaponType("Large Laser", 123, 8, FlagDirectFire)
	link := at(artemis, 0)
	u := &Unit{
		Kind:      KindVehicle,
		Locations: []Location{{Name: "Body"}},
		Mounts:    []*Mount{{Type: lrm, Location: 0, Linked: link}, link, at(laser, 0), at(tc, 0)},
	}
	res := New(u).Calculate(true, true)
	assert.InDelta(t, 90*1.2+123*1.25, res.WeaponBV, 1e-9)

	link.Destroyed = true
	res = New(u).Calculate(true, true)
	assert.InDelta(t, 90+123*1.25, res.WeaponBV, 1e-9)
}

func TestMekExplosivePenalty(t *testing.T) {
	locs := func() []Location {
		return []Location{
			{Name: "CT", Role: RoleCenterTorso},
			{Name: "LT", Role: RoleSideTorso},
			{Name: "LA", Role: RoleArm, TransferTo: "LT"},
		}
	}
	tests := []struct {
		name   string
		clan   bool
		engine Engine
		loc    int
		setup  func(ls []Location)
		want   bool
	}{
		{"center torso", false, EngineFusion, 0, nil, true},
		{"center torso case ii", false, EngineFusion, 0, func(ls []Location) { ls[0].CASEII = true }, false},
		{"side torso no case", false, EngineFusion, 1, nil, true},
		{"side torso case", false, EngineFusion, 1, func(ls []Location) { ls[1].CASE = true }, false},
		{"side torso case xl", false, EngineXL, 1, func(ls []Location) { ls[1].CASE = true }, true},
		{"side torso clan", true, EngineXL, 1, nil, false},
		{"arm protected by torso case", false, EngineFusion, 2, func(ls []Location) { ls[1].CASE = true }, false},
		{"arm unprotected", false, EngineFusion, 2, nil, true},
		{"unallocated", false, EngineFusion, -1, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ls := locs()
			if tt.setup != nil {
				tt.setup(ls)
			}
			u := &Unit{Kind: KindMek, Clan: tt.clan, Engine: tt.engine, Locations: ls}
			assert.Equal(t, tt.want, mekPenalized(u, tt.loc))
		})
	}
}

func TestExplosivePenaltyAndFloor(t *testing.T) {
	ammo := ammoType("SRM 6 Ammo", "SRM", 6, 7, 15, 0)
	gauss := &EquipmentType{Name: "Gauss Rifle", Category: CategoryWeapon, BV: 320, Heat: 1, AmmoType: "GAUSS", Flags: FlagExplosive}
	u := &Unit{
		Kind:      KindMek,
		Tonnage:   20,
		Gyro:      GyroNone,
		Locations: []Location{{Name: "CT", Role: RoleCenterTorso, Armor: 4}},
		Mounts:    []*Mount{NewAmmoMount(ammo, 0), {Type: gauss, Location: 0, Slots: 7}},
	}
	r := report.New()
	res := New(u).CalculateReport(true, true, r)
	assert.Equal(t, 22.0, res.ExplosivePenalty)
	// 10 armor - 22 is floored at 1 before the defensive factor
	assert.Equal(t, 1.0, res.DefensiveValue)

	var floored bool
	for _, l := range r.Lines() {
		if l.Label == "Minimum Defensive Value" {
			floored = true
		}
	}
	assert.True(t, floored)
}

func TestDeterministic(t *testing.T) {
	u := simpleMek()
	c := New(u)
	r1, r2 := report.New(), report.New()
	a := c.CalculateReport(false, false, r1)
	b := c.CalculateReport(false, false, r2)
	assert.Equal(t, a, b)
	assert.Equal(t, r1.Entries(), r2.Entries())
}

func TestUnitNotModified(t *testing.T) {
	u := simpleMek()
	before := *u
	beforeLocs := append([]Location(nil), u.Locations...)
	New(u).Calculate(false, false)
	assert.Equal(t, before, *u)
	assert.Equal(t, beforeLocs, u.Locations)
}

func TestReportTotalsMatchResult(t *testing.T) {
	r := report.New()
	res := New(simpleMek()).CalculateReport(true, false, r)
	lines := r.Lines()
	require.NotEmpty(t, lines)
	last := lines[len(lines)-1]
	assert.Equal(t, "Battle Value", last.Label)
	assert.Equal(t, float64(res.BV), last.Total)

	byLabel := map[string]float64{}
	for _, l := range lines {
		byLabel[l.Label] = l.Total
	}
	assert.Equal(t, 25.0, byLabel["Armor"])
	assert.Equal(t, 164.0, byLabel["Base Battle Value"])
}

func TestSmallCockpit(t *testing.T) {
	u := simpleMek()
	u.Cockpit = CockpitSmall
	res := New(u).Calculate(true, true)
	assert.Equal(t, 156, res.BaseBV) // 164 x 0.95 = 155.8
}

func TestTorsoCockpitAndModularArmor(t *testing.T) {
	u := simpleMek()
	u.Cockpit = CockpitTorsoMounted
	u.Mounts = append(u.Mounts, at(&EquipmentType{Name: "Modular Armor", Category: CategoryMisc, Flags: FlagModularArmor}, 0))
	res := New(u).Calculate(true, true)
	assert.Equal(t, 75.0, res.ArmorBV) // (10 x 2 + 10) x 2.5
}

func TestMoreArmorNeverLowersBV(t *testing.T) {
	laser := func() *Mount { return at(weaponType("Large Laser", 123, 8, FlagDirectFire), 0) }
	tests := []struct {
		name string
		unit func() *Unit
	}{
		{"mek", simpleMek},
		{"vehicle", func() *Unit {
			return &Unit{Kind: KindVehicle, Tonnage: 40, MovementMode: MoveTracked, WalkMP: 4,
				Locations: []Location{{Name: "Front", Armor: 10, Structure: 4}, {Name: "Rear", Armor: 5, Structure: 4}},
				Mounts:    []*Mount{laser()}}
		}},
		{"aero", func() *Unit {
			return &Unit{Kind: KindAero, WalkMP: 5, StructuralIntegrity: 8, HeatDissipation: 10,
				Locations: []Location{{Name: "Nose", Armor: 10}, {Name: "Aft", Armor: 5}},
				Mounts:    []*Mount{laser()}}
		}},
		{"dropship", func() *Unit {
			return &Unit{Kind: KindDropship, WalkMP: 3, StructuralIntegrity: 10, HeatDissipation: 20,
				Locations: []Location{{Name: "Nose", Armor: 10}, {Name: "Aft", Armor: 5}},
				Mounts:    []*Mount{{Type: weaponType("Laser Bay", 200, 10, 0), Location: -1, Arc: ArcNose}}}
		}},
		{"battle armor", func() *Unit {
			u := &Unit{Kind: KindBattleArmor, WalkMP: 1, JumpMP: 3,
				Mounts: []*Mount{at(weaponType("Small Laser", 20, 0, 0), -1)}}
			for i := 0; i < 4; i++ {
				u.Locations = append(u.Locations, Location{Name: "Trooper", Armor: 2, Structure: 1})
			}
			return u
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := tt.unit()
			prev := New(u).Calculate(true, true).BV
			for step := 0; step < 12; step++ {
				u.Locations[0].Armor++
				bv := New(u).Calculate(true, true).BV
				assert.GreaterOrEqual(t, bv, prev, "armor %d", u.Locations[0].Armor)
				prev = bv
			}
		})
	}
}
