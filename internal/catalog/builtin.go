package catalog

import (
	"math"

	"github.com/JustinWhittecar/bvengine/internal/bvcalc"
)

type weaponRow struct {
	name     string
	internal string
	bv       float64
	heat     float64
	ammo     string
	rack     int
	tons     float64
	flags    bvcalc.Flag
}

const df = bvcalc.FlagDirectFire

var isWeapons = []weaponRow{
	// Energy
	{"Small Laser", "ISSmallLaser", 9, 1, "", 0, 0.5, df},
	{"Medium Laser", "ISMediumLaser", 46, 3, "", 0, 1, df},
	{"Large Laser", "ISLargeLaser", 123, 8, "", 0, 5, df},
	{"ER Small Laser", "ISERSmallLaser", 17, 2, "", 0, 0.5, df},
	{"ER Medium Laser", "ISERMediumLaser", 62, 5, "", 0, 1, df},
	{"ER Large Laser", "ISERLargeLaser", 163, 12, "", 0, 5, df},
	{"Small Pulse Laser", "ISSmallPulseLaser", 12, 2, "", 0, 1, df},
	{"Medium Pulse Laser", "ISMediumPulseLaser", 48, 4, "", 0, 2, df},
	{"Large Pulse Laser", "ISLargePulseLaser", 119, 10, "", 0, 7, df},
	{"PPC", "ISPPC", 176, 10, "", 0, 7, df},
	{"ER PPC", "ISERPPC", 229, 15, "", 0, 7, df},
	{"Light PPC", "ISLightPPC", 88, 5, "", 0, 3, df},
	{"Heavy PPC", "ISHeavyPPC", 317, 15, "", 0, 10, df},
	{"Snub-Nose PPC", "ISSNPPC", 165, 10, "", 0, 6, df},
	{"Flamer", "ISFlamer", 6, 3, "", 0, 1, df},
	{"ER Flamer", "ISERFlamer", 16, 4, "", 0, 1, df},
	{"Plasma Rifle", "ISPlasmaRifle", 210, 10, "PLASMA", 0, 6, df},
	// Ballistic
	{"Machine Gun", "ISMG", 5, 0, "MG", 0, 0.5, df},
	{"Light Machine Gun", "ISLightMG", 5, 0, "LMG", 0, 0.5, df},
	{"Heavy Machine Gun", "ISHeavyMG", 6, 0, "HMG", 0, 1, df},
	{"AC/2", "ISAC2", 37, 1, "AC", 2, 6, df},
	{"AC/5", "ISAC5", 70, 1, "AC", 5, 8, df},
	{"AC/10", "ISAC10", 123, 3, "AC", 10, 12, df},
	{"AC/20", "ISAC20", 178, 7, "AC", 20, 14, df},
	{"Light AC/2", "ISLAC2", 30, 1, "LAC", 2, 4, df},
	{"Light AC/5", "ISLAC5", 62, 1, "LAC", 5, 5, df},
	{"LB 2-X AC", "ISLBXAC2", 42, 1, "LBX", 2, 6, df},
	{"LB 5-X AC", "ISLBXAC5", 83, 1, "LBX", 5, 8, df},
	{"LB 10-X AC", "ISLBXAC10", 148, 2, "LBX", 10, 11, df},
	{"LB 20-X AC", "ISLBXAC20", 237, 6, "LBX", 20, 14, df},
	{"Ultra AC/2", "ISUltraAC2", 56, 1, "UAC", 2, 7, df | bvcalc.FlagUltra},
	{"Ultra AC/5", "ISUltraAC5", 112, 1, "UAC", 5, 9, df | bvcalc.FlagUltra},
	{"Ultra AC/10", "ISUltraAC10", 210, 4, "UAC", 10, 13, df | bvcalc.FlagUltra},
	{"Ultra AC/20", "ISUltraAC20", 281, 8, "UAC", 20, 15, df | bvcalc.FlagUltra},
	{"Rotary AC/2", "ISRotaryAC2", 118, 1, "RAC", 2, 8, df | bvcalc.FlagRotary},
	{"Rotary AC/5", "ISRotaryAC5", 247, 1, "RAC", 5, 10, df | bvcalc.FlagRotary},
	{"Gauss Rifle", "ISGaussRifle", 320, 1, "GAUSS", 0, 15, df | bvcalc.FlagExplosive},
	{"Light Gauss Rifle", "ISLightGaussRifle", 159, 1, "LGAUSS", 0, 12, df | bvcalc.FlagExplosive},
	{"Heavy Gauss Rifle", "ISHeavyGaussRifle", 346, 2, "HGAUSS", 0, 18, df | bvcalc.FlagExplosive},
	// Missile
	{"LRM 5", "ISLRM5", 45, 2, "LRM", 5, 2, 0},
	{"LRM 10", "ISLRM10", 90, 4, "LRM", 10, 5, 0},
	{"LRM 15", "ISLRM15", 136, 5, "LRM", 15, 7, 0},
	{"LRM 20", "ISLRM20", 181, 6, "LRM", 20, 10, 0},
	{"SRM 2", "ISSRM2", 21, 2, "SRM", 2, 1, 0},
	{"SRM 4", "ISSRM4", 39, 3, "SRM", 4, 2, 0},
	{"SRM 6", "ISSRM6", 59, 4, "SRM", 6, 3, 0},
	{"Streak SRM 2", "ISStreakSRM2", 30, 2, "STREAK", 2, 1.5, bvcalc.FlagStreak},
	{"Streak SRM 4", "ISStreakSRM4", 59, 3, "STREAK", 4, 3, bvcalc.FlagStreak},
	{"Streak SRM 6", "ISStreakSRM6", 89, 4, "STREAK", 6, 4.5, bvcalc.FlagStreak},
	{"MRM 10", "ISMRM10", 56, 4, "MRM", 10, 3, 0},
	{"MRM 20", "ISMRM20", 112, 6, "MRM", 20, 7, 0},
	{"MRM 30", "ISMRM30", 168, 10, "MRM", 30, 10, 0},
	{"MRM 40", "ISMRM40", 224, 12, "MRM", 40, 12, 0},
	{"MML 3", "ISMML3", 29, 2, "MML", 3, 1.5, 0},
	{"MML 5", "ISMML5", 45, 3, "MML", 5, 3, 0},
	{"MML 7", "ISMML7", 67, 4, "MML", 7, 4.5, 0},
	{"MML 9", "ISMML9", 86, 5, "MML", 9, 6, 0},
	{"Rocket Launcher 10", "RL10", 18, 3, "", 0, 0.5, bvcalc.FlagOneShot},
	{"Rocket Launcher 15", "RL15", 23, 4, "", 0, 1, bvcalc.FlagOneShot},
	{"Rocket Launcher 20", "RL20", 24, 5, "", 0, 1.5, bvcalc.FlagOneShot},
	{"Arrow IV", "ISArrowIV", 240, 10, "ARROW", 0, 15, 0},
	{"Narc Missile Beacon", "ISNarc", 30, 0, "NARC", 0, 3, 0},
}

var clanWeapons = []weaponRow{
	{"ER Micro Laser", "CLERMicroLaser", 7, 1, "", 0, 0.25, df},
	{"ER Small Laser", "CLERSmallLaser", 31, 2, "", 0, 0.5, df},
	{"ER Medium Laser", "CLERMediumLaser", 108, 5, "", 0, 1, df},
	{"ER Large Laser", "CLERLargeLaser", 248, 12, "", 0, 4, df},
	{"Micro Pulse Laser", "CLMicroPulseLaser", 12, 1, "", 0, 0.5, df},
	{"Small Pulse Laser", "CLSmallPulseLaser", 24, 2, "", 0, 1, df},
	{"Medium Pulse Laser", "CLMediumPulseLaser", 111, 4, "", 0, 2, df},
	{"Large Pulse Laser", "CLLargePulseLaser", 265, 10, "", 0, 6, df},
	{"Heavy Small Laser", "CLHeavySmallLaser", 15, 3, "", 0, 0.5, df},
	{"Heavy Medium Laser", "CLHeavyMediumLaser", 76, 7, "", 0, 1, df},
	{"Heavy Large Laser", "CLHeavyLargeLaser", 244, 18, "", 0, 4, df},
	{"ER PPC", "CLERPPC", 412, 15, "", 0, 6, df},
	{"Flamer", "CLFlamer", 6, 3, "", 0, 0.5, df},
	{"ER Flamer", "CLERFlamer", 16, 4, "", 0, 1, df},
	{"Plasma Cannon", "CLPlasmaCannon", 170, 7, "PLASMAC", 0, 3, df},
	{"Machine Gun", "CLMG", 5, 0, "MG", 0, 0.25, df},
	{"Light Machine Gun", "CLLightMG", 5, 0, "LMG", 0, 0.25, df},
	{"Heavy Machine Gun", "CLHeavyMG", 6, 0, "HMG", 0, 0.5, df},
	{"LB 2-X AC", "CLLBXAC2", 47, 1, "LBX", 2, 5, df},
	{"LB 5-X AC", "CLLBXAC5", 93, 1, "LBX", 5, 7, df},
	{"LB 10-X AC", "CLLBXAC10", 148, 2, "LBX", 10, 10, df},
	{"LB 20-X AC", "CLLBXAC20", 237, 6, "LBX", 20, 12, df},
	{"Ultra AC/2", "CLUltraAC2", 62, 1, "UAC", 2, 5, df | bvcalc.FlagUltra},
	{"Ultra AC/5", "CLUltraAC5", 122, 1, "UAC", 5, 7, df | bvcalc.FlagUltra},
	{"Ultra AC/10", "CLUltraAC10", 210, 3, "UAC", 10, 10, df | bvcalc.FlagUltra},
	{"Ultra AC/20", "CLUltraAC20", 335, 7, "UAC", 20, 12, df | bvcalc.FlagUltra},
	{"Gauss Rifle", "CLGaussRifle", 320, 1, "GAUSS", 0, 12, df | bvcalc.FlagExplosive},
	{"AP Gauss Rifle", "CLAPGaussRifle", 21, 1, "APGAUSS", 0, 0.5, df | bvcalc.FlagExplosive},
	{"Hyper-Assault Gauss 20", "CLHAG20", 267, 4, "HAG", 20, 10, df | bvcalc.FlagExplosive},
	{"Hyper-Assault Gauss 30", "CLHAG30", 401, 6, "HAG", 30, 13, df | bvcalc.FlagExplosive},
	{"Hyper-Assault Gauss 40", "CLHAG40", 535, 8, "HAG", 40, 16, df | bvcalc.FlagExplosive},
	{"LRM 5", "CLLRM5", 55, 2, "LRM", 5, 1, 0},
	{"LRM 10", "CLLRM10", 109, 4, "LRM", 10, 2.5, 0},
	{"LRM 15", "CLLRM15", 164, 5, "LRM", 15, 3.5, 0},
	{"LRM 20", "CLLRM20", 220, 6, "LRM", 20, 5, 0},
	{"SRM 2", "CLSRM2", 21, 2, "SRM", 2, 0.5, 0},
	{"SRM 4", "CLSRM4", 39, 3, "SRM", 4, 1, 0},
	{"SRM 6", "CLSRM6", 59, 4, "SRM", 6, 1.5, 0},
	{"Streak SRM 2", "CLStreakSRM2", 40, 2, "STREAK", 2, 1, bvcalc.FlagStreak},
	{"Streak SRM 4", "CLStreakSRM4", 79, 3, "STREAK", 4, 2, bvcalc.FlagStreak},
	{"Streak SRM 6", "CLStreakSRM6", 118, 4, "STREAK", 6, 3, bvcalc.FlagStreak},
	{"ATM 3", "CLATM3", 53, 2, "ATM", 3, 1.5, 0},
	{"ATM 6", "CLATM6", 105, 4, "ATM", 6, 3.5, 0},
	{"ATM 9", "CLATM9", 147, 6, "ATM", 9, 5, 0},
	{"ATM 12", "CLATM12", 212, 8, "ATM", 12, 7, 0},
	{"Improved ATM 3", "CLIATM3", 83, 2, "IATM", 3, 1.5, 0},
	{"Improved ATM 6", "CLIATM6", 165, 4, "IATM", 6, 3.5, 0},
	{"Improved ATM 9", "CLIATM9", 208, 6, "IATM", 9, 5, 0},
	{"Improved ATM 12", "CLIATM12", 286, 8, "IATM", 12, 7, 0},
	{"Arrow IV", "CLArrowIV", 240, 10, "ARROW", 0, 12, 0},
	{"Narc Missile Beacon", "CLNarc", 30, 0, "NARC", 0, 2, 0},
}

type miscRow struct {
	name       string
	internal   string
	category   bvcalc.Category
	bv         float64
	heat       float64
	ammo       string
	flags      bvcalc.Flag
	linkFactor float64
	linkHeat   float64
}

var miscEquipment = []miscRow{
	// Defensive
	{"AMS", "ISAntiMissileSystem", bvcalc.CategoryWeapon, 32, 1, "AMS", bvcalc.FlagAMS | bvcalc.FlagDefensive, 0, 0},
	{"AMS", "CLAntiMissileSystem", bvcalc.CategoryWeapon, 32, 1, "AMS", bvcalc.FlagAMS | bvcalc.FlagDefensive, 0, 0},
	{"Laser AMS", "ISLaserAntiMissileSystem", bvcalc.CategoryWeapon, 45, 5, "", bvcalc.FlagAMS | bvcalc.FlagDefensive, 0, 0},
	{"Laser AMS", "CLLaserAntiMissileSystem", bvcalc.CategoryWeapon, 45, 5, "", bvcalc.FlagAMS | bvcalc.FlagDefensive, 0, 0},
	{"Guardian ECM Suite", "ISGuardianECMSuite", bvcalc.CategoryMisc, 61, 0, "", bvcalc.FlagDefensive, 0, 0},
	{"ECM Suite", "CLECMSuite", bvcalc.CategoryMisc, 61, 0, "", bvcalc.FlagDefensive, 0, 0},
	{"Angel ECM Suite", "ISAngelECMSuite", bvcalc.CategoryMisc, 100, 0, "", bvcalc.FlagDefensive, 0, 0},
	{"Angel ECM Suite", "CLAngelECMSuite", bvcalc.CategoryMisc, 100, 0, "", bvcalc.FlagDefensive, 0, 0},
	{"Beagle Active Probe", "BeagleActiveProbe", bvcalc.CategoryMisc, 10, 0, "", bvcalc.FlagDefensive, 0, 0},
	{"Active Probe", "CLActiveProbe", bvcalc.CategoryMisc, 12, 0, "", bvcalc.FlagDefensive, 0, 0},
	{"Light Active Probe", "CLLightActiveProbe", bvcalc.CategoryMisc, 7, 0, "", bvcalc.FlagDefensive, 0, 0},
	{"Bloodhound Active Probe", "BloodhoundActiveProbe", bvcalc.CategoryMisc, 25, 0, "", bvcalc.FlagDefensive, 0, 0},
	{"A-Pod", "ISAntiPersonnelPod", bvcalc.CategoryMisc, 1, 0, "", bvcalc.FlagDefensive, 0, 0},
	{"A-Pod", "CLAntiPersonnelPod", bvcalc.CategoryMisc, 1, 0, "", bvcalc.FlagDefensive, 0, 0},
	{"B-Pod", "ISBPod", bvcalc.CategoryMisc, 2, 0, "", bvcalc.FlagDefensive, 0, 0},
	{"B-Pod", "CLBPod", bvcalc.CategoryMisc, 2, 0, "", bvcalc.FlagDefensive, 0, 0},
	// Targeting and fire control
	{"Targeting Computer", "ISTargetingComputer", bvcalc.CategoryMisc, 0, 0, "", bvcalc.FlagTargetingComputer, 0, 0},
	{"Targeting Computer", "CLTargetingComputer", bvcalc.CategoryMisc, 0, 0, "", bvcalc.FlagTargetingComputer, 0, 0},
	{"Artemis IV", "ISArtemisIV", bvcalc.CategoryMisc, 0, 0, "", 0, 1.2, 0},
	{"Artemis IV", "CLArtemisIV", bvcalc.CategoryMisc, 0, 0, "", 0, 1.2, 0},
	{"Artemis V", "CLArtemisV", bvcalc.CategoryMisc, 0, 0, "", 0, 1.3, 0},
	{"Apollo FCS", "ISApollo", bvcalc.CategoryMisc, 0, 0, "", 0, 1.15, 0},
	{"PPC Capacitor", "ISPPCCapacitor", bvcalc.CategoryMisc, 0, 0, "", 0, 0, 5},
	{"TAG", "ISTAG", bvcalc.CategoryWeapon, 0, 0, "", bvcalc.FlagTAG, 0, 0},
	{"TAG", "CLTAG", bvcalc.CategoryWeapon, 0, 0, "", bvcalc.FlagTAG, 0, 0},
	{"Light TAG", "CLLightTAG", bvcalc.CategoryWeapon, 0, 0, "", bvcalc.FlagTAG, 0, 0},
	{"C3 Master", "ISC3MasterUnit", bvcalc.CategoryMisc, 0, 0, "", bvcalc.FlagC3 | bvcalc.FlagTAG, 0, 0},
	{"C3 Slave", "ISC3Slave", bvcalc.CategoryMisc, 0, 0, "", bvcalc.FlagC3, 0, 0},
	{"Improved C3 Computer", "ISImprovedC3CPU", bvcalc.CategoryMisc, 0, 0, "", bvcalc.FlagC3, 0, 0},
	// Movement
	{"MASC", "ISMASC", bvcalc.CategoryMisc, 0, 0, "", bvcalc.FlagMASC, 0, 0},
	{"MASC", "CLMASC", bvcalc.CategoryMisc, 0, 0, "", bvcalc.FlagMASC, 0, 0},
	{"Supercharger", "Supercharger", bvcalc.CategoryMisc, 0, 0, "", bvcalc.FlagSupercharger, 0, 0},
	// Signature
	{"Null-Signature System", "ISNullSignatureSystem", bvcalc.CategoryMisc, 0, 0, "", bvcalc.FlagNullSig, 0, 0},
	{"Void-Signature System", "ISVoidSignatureSystem", bvcalc.CategoryMisc, 0, 0, "", bvcalc.FlagVoidSig, 0, 0},
	{"Chameleon LPS", "ISChameleonLightPolarizationShield", bvcalc.CategoryMisc, 0, 0, "", bvcalc.FlagChameleon, 0, 0},
	{"Modular Armor", "ISModularArmor", bvcalc.CategoryMisc, 0, 0, "", bvcalc.FlagModularArmor, 0, 0},
	{"Modular Armor", "CLModularArmor", bvcalc.CategoryMisc, 0, 0, "", bvcalc.FlagModularArmor, 0, 0},
}

// Builtin returns a catalog of the common Inner Sphere and Clan equipment,
// its ammunition and the physical weapons.
func Builtin() *Catalog {
	c := New()
	for _, w := range isWeapons {
		c.Add(weaponType(w), "IS "+w.name)
	}
	for _, w := range clanWeapons {
		c.Add(weaponType(w), "Clan "+w.name, "CL"+w.name)
	}
	for _, m := range miscEquipment {
		c.Add(&bvcalc.EquipmentType{
			Name:         m.name,
			InternalName: m.internal,
			Category:     m.category,
			BV:           m.bv,
			Heat:         m.heat,
			AmmoType:     m.ammo,
			Flags:        m.flags,
			LinkFactor:   m.linkFactor,
			LinkHeat:     m.linkHeat,
		})
	}
	for _, p := range physicalWeapons {
		c.Add(p)
	}
	for _, a := range ammoTable {
		a.register(c)
	}
	return c
}

func weaponType(w weaponRow) *bvcalc.EquipmentType {
	return &bvcalc.EquipmentType{
		Name:         w.name,
		InternalName: w.internal,
		Category:     bvcalc.CategoryWeapon,
		BV:           w.bv,
		Heat:         w.heat,
		AmmoType:     w.ammo,
		RackSize:     w.rack,
		Tonnage:      w.tons,
		Flags:        w.flags,
	}
}

// physicalWeapons scale with the tonnage of the unit carrying them.
var physicalWeapons = []*bvcalc.EquipmentType{
	{Name: "Hatchet", InternalName: "Hatchet", Category: bvcalc.CategoryWeapon, Value: hatchetBV},
	{Name: "Sword", InternalName: "Sword", Category: bvcalc.CategoryWeapon, Value: swordBV},
	{Name: "Mace", InternalName: "Mace", Category: bvcalc.CategoryWeapon, Value: maceBV},
}

// valueResolvers re-attaches tonnage-based values to types loaded from SQL.
var valueResolvers = map[string]func(*bvcalc.Unit, *bvcalc.Mount) float64{
	"Hatchet": hatchetBV,
	"Sword":   swordBV,
	"Mace":    maceBV,
}

func hatchetBV(u *bvcalc.Unit, _ *bvcalc.Mount) float64 {
	return math.Ceil(u.Tonnage/5) * 1.5
}

func swordBV(u *bvcalc.Unit, _ *bvcalc.Mount) float64 {
	return (math.Ceil(u.Tonnage/10) + 1) * 1.725
}

func maceBV(u *bvcalc.Unit, _ *bvcalc.Mount) float64 {
	return math.Ceil(u.Tonnage/4) * 1.0
}
