package ingestion

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/JustinWhittecar/bvengine/internal/bvcalc"
	"github.com/JustinWhittecar/bvengine/internal/catalog"
)

// ErrUnknownEquipment matches the *UnknownEquipmentError returned when slot or weapon names do
// not resolve. The unit is still returned without those items.
var ErrUnknownEquipment = errors.New("unknown equipment")

// UnknownEquipmentError lists the names a unit file used that the
// catalog could not resolve.
type UnknownEquipmentError struct {
	Unit  string
	Names []string
}

func (e *UnknownEquipmentError) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Unit, ErrUnknownEquipment, strings.Join(e.Names, ", "))
}

func (e *UnknownEquipmentError) Is(target error) bool { return target == ErrUnknownEquipment }

// Resolver finds equipment types by unit-file name. *catalog.Catalog
// implements it.
type Resolver interface {
	Lookup(name string, clan bool) (*bvcalc.EquipmentType, error)
}

var _ Resolver = (*catalog.Catalog)(nil)

const (
	colCT = iota
	colST
	colArm
	colLeg
)

type locationSpec struct {
	abbr     string
	role     bvcalc.LocationRole
	transfer string
	column   int
	order    int
}

var mekLocations = map[string]locationSpec{
	"Head":         {"HD", bvcalc.RoleHead, "", -1, 0},
	"Center Torso": {"CT", bvcalc.RoleCenterTorso, "", colCT, 1},
	"Right Torso":  {"RT", bvcalc.RoleSideTorso, "Center Torso", colST, 2},
	"Left Torso":   {"LT", bvcalc.RoleSideTorso, "Center Torso", colST, 3},
	"Right Arm":    {"RA", bvcalc.RoleArm, "Right Torso", colArm, 4},
	"Left Arm":     {"LA", bvcalc.RoleArm, "Left Torso", colArm, 5},
	"Right Leg":    {"RL", bvcalc.RoleLeg, "Right Torso", colLeg, 6},
	"Left Leg":     {"LL", bvcalc.RoleLeg, "Left Torso", colLeg, 7},
	// Quad mech locations
	"Front Right Leg": {"FRL", bvcalc.RoleLeg, "Right Torso", colLeg, 4},
	"Front Left Leg":  {"FLL", bvcalc.RoleLeg, "Left Torso", colLeg, 5},
	"Rear Right Leg":  {"RRL", bvcalc.RoleLeg, "Right Torso", colLeg, 6},
	"Rear Left Leg":   {"RLL", bvcalc.RoleLeg, "Left Torso", colLeg, 7},
	// Tripod
	"Center Leg": {"CL", bvcalc.RoleLeg, "Center Torso", colLeg, 8},
}

// Standard internal structure points by tonnage: center torso, side torso,
// arm, leg. The head always has 3.
var structureTable = map[int][4]int{
	10: {4, 3, 1, 2}, 15: {5, 4, 2, 3}, 20: {6, 5, 3, 4}, 25: {8, 6, 4, 6},
	30: {10, 7, 5, 7}, 35: {11, 8, 6, 8}, 40: {12, 10, 6, 10}, 45: {14, 11, 7, 11},
	50: {16, 12, 8, 12}, 55: {18, 13, 9, 13}, 60: {20, 14, 10, 14}, 65: {21, 15, 10, 15},
	70: {22, 15, 11, 15}, 75: {23, 16, 12, 16}, 80: {25, 17, 13, 17}, 85: {27, 18, 14, 18},
	90: {29, 19, 15, 19}, 95: {30, 20, 16, 20}, 100: {31, 21, 17, 21},
}

const headStructure = 3

// locationStructure returns the structure points of a location for a mek
// of the given tonnage, rounding tonnage down to the table's steps.
func locationStructure(tonnage int, spec locationSpec) int {
	if spec.role == bvcalc.RoleHead {
		return headStructure
	}
	t := tonnage - tonnage%5
	if t < 10 {
		t = 10
	}
	if t > 100 {
		t = 100
	}
	return structureTable[t][spec.column]
}

// BuildUnit converts parsed mek data into an engine unit. Names that do not
// resolve are skipped and reported in an error wrapping ErrUnknownEquipment
// alongside the unit.
func BuildUnit(d *MTFData, r Resolver) (*bvcalc.Unit, error) {
	clan := d.IsClan()
	u := &bvcalc.Unit{
		ID:            unitID(d),
		Name:          d.FullName(),
		Kind:          bvcalc.KindMek,
		Tonnage:       float64(d.Mass),
		Clan:          clan,
		ArmorType:     d.ArmorType,
		BAR:           10,
		StructureType: d.Structure,
		Engine:        parseEngineType(d.EngineType),
		Gyro:          parseGyro(d.Gyro),
		Cockpit:       parseCockpit(d.Cockpit),
		Myomer:        parseMyomer(d.Myomer),
		WalkMP:        d.WalkMP,
		JumpMP:        d.JumpMP,
		Crew:          &bvcalc.Crew{Gunnery: 4, Piloting: 5, Size: 1},
	}
	u.HeatDissipation = d.HeatSinkCount
	if hs := strings.ToLower(d.HeatSinkType); strings.Contains(hs, "double") || strings.Contains(hs, "laser") {
		u.HeatDissipation *= 2
	}
	u.Industrial = u.Cockpit == bvcalc.CockpitIndustrial || strings.Contains(strings.ToLower(d.Structure), "industrial")

	b := &builder{data: d, unit: u, resolver: r, clan: clan, index: map[string]int{}}
	b.buildLocations()
	b.scanSlots()
	b.addWeapons()
	b.linkModifiers()

	if u.Industrial && !b.advancedFireControl && !strings.Contains(strings.ToLower(d.Cockpit), "adv") {
		u.FireControl = bvcalc.FireControlBasic
	}

	if len(b.unknown) > 0 {
		return u, &UnknownEquipmentError{Unit: u.Name, Names: b.unknown}
	}
	return u, nil
}

func unitID(d *MTFData) string {
	if d.MulID > 0 {
		return "mul-" + strconv.Itoa(d.MulID)
	}
	return d.FullName()
}

type slotCount struct {
	loc int
	t   *bvcalc.EquipmentType
}

type builder struct {
	data     *MTFData
	unit     *bvcalc.Unit
	resolver Resolver
	clan     bool
	index    map[string]int
	// weapon crit slots seen per location, for slot counts
	weaponSlots         map[slotCount]int
	weaponSlotOrder     []slotCount
	advancedFireControl bool
	unknown             []string
}

func (b *builder) buildLocations() {
	names := map[string]bool{}
	for name := range b.data.LocationEquipment {
		names[name] = true
	}
	for name, spec := range mekLocations {
		if _, ok := b.data.ArmorValues[spec.abbr]; ok {
			names[name] = true
		}
	}
	ordered := make([]string, 0, len(names))
	for name := range names {
		ordered = append(ordered, name)
	}
	// unrecognised locations go last, by name
	sort.Slice(ordered, func(i, j int) bool {
		li, iok := mekLocations[ordered[i]]
		lj, jok := mekLocations[ordered[j]]
		if iok != jok {
			return iok
		}
		if li.order != lj.order {
			return li.order < lj.order
		}
		return ordered[i] < ordered[j]
	})

	for _, name := range ordered {
		spec := mekLocations[name]
		b.index[name] = len(b.unit.Locations)
		b.unit.Locations = append(b.unit.Locations, bvcalc.Location{
			Name:       name,
			Role:       spec.role,
			Armor:      b.data.ArmorValues[spec.abbr],
			RearArmor:  b.data.RearArmor[spec.abbr],
			Structure:  locationStructure(b.data.Mass, spec),
			ArmorType:  b.data.PatchworkArmor[spec.abbr],
			TransferTo: spec.transfer,
		})
	}
}

// structural slots never become mounts
var structural = map[string]bool{
	"empty": true, "shoulder": true, "upperarmactuator": true, "lowerarmactuator": true,
	"handactuator": true, "hip": true, "upperlegactuator": true, "lowerlegactuator": true,
	"footactuator": true, "lifesupport": true, "sensors": true, "cockpit": true, "gyro": true,
	"engine": true, "fusionengine": true, "endosteel": true, "endocomposite": true,
	"ferrofibrous": true, "lightferrofibrous": true, "heavyferrofibrous": true,
	"ferrolamellor": true, "heatsink": true, "doubleheatsink": true, "laserheatsink": true,
	"compactheatsink": true, "jumpjet": true, "tsm": true, "triplestrengthmyomer": true,
	"industrialtriplestrengthmyomer": true, "reactivearmor": true, "reflectivearmor": true,
	"stealtharmor": true, "stealth": true, "hardenedarmor": true, "reinforced": true,
	"composite": true, "industrialstructure": true,
}

var squasher = strings.NewReplacer(" ", "", "-", "", "_", "", "(", "", ")", "", "/", "")

// slotKey squashes a slot name and strips tech-base prefixes so
// "ISDoubleHeatSink", "Clan Endo Steel" and "Endo Steel" compare equal.
func slotKey(name string) string {
	k := squasher.Replace(strings.ToLower(name))
	for _, prefix := range []string{"clan", "is", "cl"} {
		if rest, ok := strings.CutPrefix(k, prefix); ok {
			switch {
			case structural[rest], rest == "case", rest == "caseii",
				rest == "improvedjumpjet", rest == "advancedfirecontrol":
				return rest
			}
		}
	}
	return k
}

// cleanSlot strips placement markers from a crit slot name.
func cleanSlot(raw string) (name string, rear, turret bool) {
	name = strings.TrimSpace(raw)
	for {
		lower := strings.ToLower(name)
		switch {
		case strings.HasSuffix(lower, "(omnipod)"):
			name = strings.TrimSpace(name[:len(name)-len("(omnipod)")])
		case strings.HasSuffix(lower, "(r)"):
			name, rear = strings.TrimSpace(name[:len(name)-3]), true
		case strings.HasSuffix(lower, "(t)"):
			name, turret = strings.TrimSpace(name[:len(name)-3]), true
		default:
			return name, rear, turret
		}
	}
}

func (b *builder) scanSlots() {
	b.weaponSlots = map[slotCount]int{}
	for _, loc := range b.unit.Locations {
		li := b.index[loc.Name]
		var last *bvcalc.Mount
		for _, raw := range b.data.LocationEquipment[loc.Name] {
			name, rear, turret := cleanSlot(raw)
			half := false
			if cut, ok := strings.CutSuffix(name, " - Half"); ok {
				name, half = cut, true
			}

			switch k := slotKey(name); {
			case structural[k]:
				last = nil
				continue
			case k == "case":
				b.unit.Locations[li].CASE = true
				last = nil
				continue
			case k == "caseii":
				b.unit.Locations[li].CASEII = true
				last = nil
				continue
			case k == "improvedjumpjet":
				b.unit.ImprovedJumpJets = true
				last = nil
				continue
			case k == "advancedfirecontrol":
				b.advancedFireControl = true
				last = nil
				continue
			}

			t, err := b.resolver.Lookup(name, b.clan)
			if err != nil {
				b.unknown = append(b.unknown, name)
				last = nil
				continue
			}

			switch {
			case t.Category == bvcalc.CategoryAmmo:
				m := bvcalc.NewAmmoMount(t, li)
				if half {
					m.Shots = t.Shots / 2
				}
				b.unit.Mounts = append(b.unit.Mounts, m)
				last = nil
			case t.Category == bvcalc.CategoryWeapon && len(b.data.Weapons) > 0:
				key := slotCount{li, t}
				if b.weaponSlots[key] == 0 {
					b.weaponSlotOrder = append(b.weaponSlotOrder, key)
				}
				b.weaponSlots[key]++
				last = nil
			case last != nil && last.Type == t && !isLinker(t):
				// multi-slot equipment spans consecutive crits
				last.Slots++
			default:
				m := &bvcalc.Mount{Type: t, Location: li, Rear: rear, Turret: turret, Slots: 1}
				b.unit.Mounts = append(b.unit.Mounts, m)
				last = m
			}
		}
	}
}

// addWeapons creates one mount per entry in the weapons summary, spreading
// the weapon's crit slots in that location evenly between copies.
func (b *builder) addWeapons() {
	type placed struct {
		m   *bvcalc.Mount
		key slotCount
	}
	var mounts []placed
	copies := map[slotCount]int{}
	for _, w := range b.data.Weapons {
		t, err := b.resolver.Lookup(w.Name, b.clan)
		if err != nil {
			b.unknown = append(b.unknown, w.Name)
			continue
		}
		li, ok := b.index[w.Location]
		if !ok {
			li = -1
		}
		key := slotCount{li, t}
		copies[key]++
		m := &bvcalc.Mount{Type: t, Location: li, Rear: w.Rear}
		mounts = append(mounts, placed{m, key})
		b.unit.Mounts = append(b.unit.Mounts, m)
	}
	for _, p := range mounts {
		if n := copies[p.key]; n > 0 {
			p.m.Slots = b.weaponSlots[p.key] / n
		}
	}
	// physical weapons only appear in the crit slots
	for _, key := range b.weaponSlotOrder {
		if copies[key] == 0 {
			b.unit.Mounts = append(b.unit.Mounts, &bvcalc.Mount{Type: key.t, Location: key.loc, Slots: b.weaponSlots[key]})
		}
	}
}

// linkTargets says which weapons a linked modifier can ride on.
var linkTargets = map[string]func(*bvcalc.EquipmentType) bool{
	"Artemis IV":    ammoTypes("LRM", "SRM", "MML"),
	"Artemis V":     ammoTypes("LRM", "SRM"),
	"Apollo FCS":    ammoTypes("MRM"),
	"PPC Capacitor": func(t *bvcalc.EquipmentType) bool { return strings.Contains(t.Name, "PPC") },
}

func ammoTypes(types ...string) func(*bvcalc.EquipmentType) bool {
	return func(t *bvcalc.EquipmentType) bool {
		for _, a := range types {
			if t.AmmoType == a {
				return true
			}
		}
		return false
	}
}

func isLinker(t *bvcalc.EquipmentType) bool {
	return t.LinkFactor != 0 || t.LinkBonus != 0 || t.LinkHeat != 0
}

// linkModifiers attaches each linked modifier to the first eligible
// unlinked weapon in its location.
func (b *builder) linkModifiers() {
	for _, l := range b.unit.Mounts {
		if !isLinker(l.Type) {
			continue
		}
		eligible := linkTargets[l.Type.Name]
		for _, w := range b.unit.Mounts {
			if w.Type.Category != bvcalc.CategoryWeapon || w.Linked != nil || w.Location != l.Location {
				continue
			}
			if eligible != nil && !eligible(w.Type) {
				continue
			}
			w.Linked = l
			break
		}
	}
}

func parseEngineType(s string) bvcalc.Engine {
	l := strings.ToLower(s)
	switch {
	case strings.Contains(l, "xxl"):
		return bvcalc.EngineXXL
	case strings.Contains(l, "xl"):
		return bvcalc.EngineXL
	case strings.Contains(l, "light"):
		return bvcalc.EngineLight
	case strings.Contains(l, "compact"):
		return bvcalc.EngineCompact
	case strings.Contains(l, "fuel cell") || strings.Contains(l, "fuel-cell"):
		return bvcalc.EngineFuelCell
	case strings.Contains(l, "fission"):
		return bvcalc.EngineFission
	case strings.Contains(l, "ice") || strings.Contains(l, "i.c.e"):
		return bvcalc.EngineICE
	}
	return bvcalc.EngineFusion
}

func parseGyro(s string) bvcalc.Gyro {
	l := strings.ToLower(s)
	switch {
	case strings.Contains(l, "heavy"):
		return bvcalc.GyroHeavyDuty
	case strings.Contains(l, "compact"):
		return bvcalc.GyroCompact
	case strings.Contains(l, "xl"):
		return bvcalc.GyroXL
	case strings.Contains(l, "none"):
		return bvcalc.GyroNone
	}
	return bvcalc.GyroStandard
}

func parseCockpit(s string) bvcalc.Cockpit {
	l := strings.ToLower(s)
	switch {
	case strings.Contains(l, "small command"):
		return bvcalc.CockpitSmallCommandConsole
	case strings.Contains(l, "small"):
		return bvcalc.CockpitSmall
	case strings.Contains(l, "torso"):
		return bvcalc.CockpitTorsoMounted
	case strings.Contains(l, "command console"):
		return bvcalc.CockpitCommandConsole
	case strings.Contains(l, "industrial"):
		return bvcalc.CockpitIndustrial
	}
	return bvcalc.CockpitStandard
}

func parseMyomer(s string) bvcalc.Myomer {
	l := strings.ToLower(s)
	switch {
	case strings.Contains(l, "industrial"):
		return bvcalc.MyomerIndustrialTSM
	case strings.Contains(l, "triple") || strings.Contains(l, "tsm"):
		return bvcalc.MyomerTSM
	}
	return bvcalc.MyomerStandard
}
