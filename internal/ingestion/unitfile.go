package ingestion

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/JustinWhittecar/bvengine/internal/bvcalc"
)

// UnitFile is a JSON unit description. It covers every unit kind, including
// the ones MegaMek does not store as .mtf (vehicles, aerospace, infantry).
type UnitFile struct {
	ID                  string         `json:"id,omitempty"`
	Name                string         `json:"name"`
	Kind                string         `json:"kind"`
	Tonnage             float64        `json:"tonnage"`
	Clan                bool           `json:"clan,omitempty"`
	Team                int            `json:"team,omitempty"`
	C3Network           string         `json:"c3_network,omitempty"`
	ArmorType           string         `json:"armor_type,omitempty"`
	BAR                 int            `json:"bar,omitempty"`
	StructureType       string         `json:"structure_type,omitempty"`
	StructuralIntegrity int            `json:"structural_integrity,omitempty"`
	Engine              string         `json:"engine,omitempty"`
	Gyro                string         `json:"gyro,omitempty"`
	Cockpit             string         `json:"cockpit,omitempty"`
	Myomer              string         `json:"myomer,omitempty"`
	Industrial          bool           `json:"industrial,omitempty"`
	FireControl         string         `json:"fire_control,omitempty"`
	MovementMode        string         `json:"movement_mode,omitempty"`
	WalkMP              int            `json:"walk_mp"`
	JumpMP              int            `json:"jump_mp,omitempty"`
	UMUMP               int            `json:"umu_mp,omitempty"`
	ImprovedJumpJets    bool           `json:"improved_jump_jets,omitempty"`
	HeatDissipation     int            `json:"heat_dissipation,omitempty"`
	Locations           []LocationFile `json:"locations"`
	Equipment           []MountFile    `json:"equipment"`
	Crew                *CrewFile      `json:"crew,omitempty"`

	// Conventional infantry
	Troopers          int       `json:"troopers,omitempty"`
	OriginalTroopers  int       `json:"original_troopers,omitempty"`
	SquadSize         int       `json:"squad_size,omitempty"`
	SecondaryPerSquad int       `json:"secondary_per_squad,omitempty"`
	PrimaryWeapon     *TypeFile `json:"primary_weapon,omitempty"`
	SecondaryWeapon   *TypeFile `json:"secondary_weapon,omitempty"`
	Specializations   []string  `json:"specializations,omitempty"`
	DamageDivisor     float64   `json:"damage_divisor,omitempty"`
	AntiMek           bool      `json:"anti_mek,omitempty"`
}

type LocationFile struct {
	Name       string `json:"name"`
	Role       string `json:"role,omitempty"`
	Armor      int    `json:"armor"`
	RearArmor  int    `json:"rear_armor,omitempty"`
	Structure  int    `json:"structure,omitempty"`
	ArmorType  string `json:"armor_type,omitempty"`
	BAR        int    `json:"bar,omitempty"`
	CASE       bool   `json:"case,omitempty"`
	CASEII     bool   `json:"case_ii,omitempty"`
	TransferTo string `json:"transfer_to,omitempty"`
	Destroyed  bool   `json:"destroyed,omitempty"`
}

// MountFile places one piece of equipment. Equipment names resolve through
// the catalog unless Type defines the equipment inline. Modifier is the
// list index of the Artemis or capacitor riding on this weapon.
type MountFile struct {
	Name      string      `json:"name"`
	Type      *TypeFile   `json:"type,omitempty"`
	Location  string      `json:"location,omitempty"`
	Rear      bool        `json:"rear,omitempty"`
	Turret    bool        `json:"turret,omitempty"`
	Arc       string      `json:"arc,omitempty"`
	Shots     *int        `json:"shots,omitempty"`
	Slots     int         `json:"slots,omitempty"`
	Destroyed bool        `json:"destroyed,omitempty"`
	Modifier  *int        `json:"modifier,omitempty"`
	Group     []MountFile `json:"group,omitempty"`
}

// TypeFile defines an equipment type that is not in the catalog.
type TypeFile struct {
	Name         string   `json:"name"`
	InternalName string   `json:"internal_name,omitempty"`
	Category     string   `json:"category,omitempty"`
	BV           float64  `json:"bv"`
	Heat         float64  `json:"heat,omitempty"`
	AmmoType     string   `json:"ammo_type,omitempty"`
	RackSize     int      `json:"rack_size,omitempty"`
	Shots        int      `json:"shots,omitempty"`
	Tonnage      float64  `json:"tonnage,omitempty"`
	Flags        []string `json:"flags,omitempty"`
	LinkFactor   float64  `json:"link_factor,omitempty"`
	LinkBonus    float64  `json:"link_bonus,omitempty"`
	LinkHeat     float64  `json:"link_heat,omitempty"`
	GroupFactor  float64  `json:"group_factor,omitempty"`
}

// CrewFile is a unit's crew. A missing size means a single crew member;
// an explicit zero marks the unit as uncrewed.
type CrewFile struct {
	Gunnery  int  `json:"gunnery"`
	Piloting int  `json:"piloting"`
	Size     *int `json:"size,omitempty"`
}

// ReadUnitFile decodes a JSON unit description and resolves it into a unit.
func ReadUnitFile(r io.Reader, res Resolver) (*bvcalc.Unit, error) {
	var f UnitFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode unit: %w", err)
	}
	return f.Unit(res)
}

// LoadUnitFile reads a JSON unit description from path.
func LoadUnitFile(path string, res Resolver) (*bvcalc.Unit, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open unit: %w", err)
	}
	defer fh.Close()
	return ReadUnitFile(fh, res)
}

// LoadUnit reads a .mtf or .json unit file from path. Unknown equipment
// still returns the unit along with an error wrapping ErrUnknownEquipment.
func LoadUnit(path string, res Resolver) (*bvcalc.Unit, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mtf":
		d, err := ParseMTF(path)
		if err != nil {
			return nil, err
		}
		return BuildUnit(d, res)
	case ".json":
		return LoadUnitFile(path, res)
	}
	return nil, fmt.Errorf("%s: unsupported unit file type", path)
}

var kindNames = map[string]bvcalc.Kind{
	"mek": bvcalc.KindMek, "mech": bvcalc.KindMek,
	"vehicle": bvcalc.KindVehicle, "tank": bvcalc.KindVehicle,
	"aero": bvcalc.KindAero, "fighter": bvcalc.KindAero,
	"dropship": bvcalc.KindDropship, "jumpship": bvcalc.KindJumpship,
	"warship": bvcalc.KindWarship, "space station": bvcalc.KindSpaceStation,
	"infantry": bvcalc.KindInfantry, "battle armor": bvcalc.KindBattleArmor,
	"gun emplacement": bvcalc.KindGunEmplacement, "handheld weapon": bvcalc.KindHandheldWeapon,
}

var roleNames = map[string]bvcalc.LocationRole{
	"": bvcalc.RoleBody, "body": bvcalc.RoleBody, "head": bvcalc.RoleHead,
	"center torso": bvcalc.RoleCenterTorso, "side torso": bvcalc.RoleSideTorso,
	"arm": bvcalc.RoleArm, "leg": bvcalc.RoleLeg,
}

var fireControlNames = map[string]bvcalc.FireControl{
	"": bvcalc.FireControlAdvanced, "advanced": bvcalc.FireControlAdvanced,
	"basic": bvcalc.FireControlBasic, "none": bvcalc.FireControlNone,
}

var movementModeNames = map[string]bvcalc.MovementMode{
	"": bvcalc.MoveDefault, "tracked": bvcalc.MoveTracked, "wheeled": bvcalc.MoveWheeled,
	"hover": bvcalc.MoveHover, "vtol": bvcalc.MoveVTOL, "wige": bvcalc.MoveWiGE,
	"naval": bvcalc.MoveNaval, "hydrofoil": bvcalc.MoveHydrofoil, "submarine": bvcalc.MoveSubmarine,
}

var specializationNames = map[string]bvcalc.Specialization{
	"combat engineer": bvcalc.SpecCombatEngineer, "marine": bvcalc.SpecMarine,
	"mountain troops": bvcalc.SpecMountainTroops, "paramedic": bvcalc.SpecParamedic,
	"paratrooper": bvcalc.SpecParatrooper, "scuba": bvcalc.SpecScuba,
	"tag troops": bvcalc.SpecTAGTroops, "xct": bvcalc.SpecXCT,
}

var categoryNames = map[string]bvcalc.Category{
	"": bvcalc.CategoryWeapon, "weapon": bvcalc.CategoryWeapon,
	"ammo": bvcalc.CategoryAmmo, "misc": bvcalc.CategoryMisc,
}

var flagNames = map[string]bvcalc.Flag{
	"ams": bvcalc.FlagAMS, "screen": bvcalc.FlagScreen, "defensive": bvcalc.FlagDefensive,
	"offensive": bvcalc.FlagOffensive, "explosive": bvcalc.FlagExplosive,
	"direct fire": bvcalc.FlagDirectFire, "targeting computer": bvcalc.FlagTargetingComputer,
	"tag": bvcalc.FlagTAG, "semi-guided": bvcalc.FlagSemiGuided, "c3": bvcalc.FlagC3,
	"stealth": bvcalc.FlagStealth, "null signature": bvcalc.FlagNullSig,
	"void signature": bvcalc.FlagVoidSig, "chameleon": bvcalc.FlagChameleon,
	"masc": bvcalc.FlagMASC, "supercharger": bvcalc.FlagSupercharger,
	"ultra": bvcalc.FlagUltra, "rotary": bvcalc.FlagRotary, "streak": bvcalc.FlagStreak,
	"one-shot": bvcalc.FlagOneShot, "modular armor": bvcalc.FlagModularArmor, "bomb": bvcalc.FlagBomb,
}

func lookupName[T any](table map[string]T, what, name string) (T, error) {
	v, ok := table[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return v, fmt.Errorf("unknown %s %q", what, name)
	}
	return v, nil
}

func arcByName(name string) (bvcalc.Arc, error) {
	if name == "" {
		return bvcalc.ArcNose, nil
	}
	for a := bvcalc.ArcNose; a <= bvcalc.ArcAft; a++ {
		if strings.EqualFold(a.String(), name) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown arc %q", name)
}

// Unit resolves the description. Unknown equipment names are collected
// into an error wrapping ErrUnknownEquipment; any other invalid field
// fails the whole unit.
func (f *UnitFile) Unit(res Resolver) (*bvcalc.Unit, error) {
	kind, err := lookupName(kindNames, "kind", f.Kind)
	if err != nil {
		return nil, err
	}
	fc, err := lookupName(fireControlNames, "fire control", f.FireControl)
	if err != nil {
		return nil, err
	}
	mode, err := lookupName(movementModeNames, "movement mode", f.MovementMode)
	if err != nil {
		return nil, err
	}

	u := &bvcalc.Unit{
		ID:                  f.ID,
		Name:                f.Name,
		Kind:                kind,
		Tonnage:             f.Tonnage,
		Clan:                f.Clan,
		Team:                f.Team,
		C3Network:           f.C3Network,
		ArmorType:           f.ArmorType,
		BAR:                 f.BAR,
		StructureType:       f.StructureType,
		StructuralIntegrity: f.StructuralIntegrity,
		Engine:              parseEngineType(f.Engine),
		Gyro:                parseGyro(f.Gyro),
		Cockpit:             parseCockpit(f.Cockpit),
		Myomer:              parseMyomer(f.Myomer),
		Industrial:          f.Industrial,
		FireControl:         fc,
		MovementMode:        mode,
		WalkMP:              f.WalkMP,
		JumpMP:              f.JumpMP,
		UMUMP:               f.UMUMP,
		ImprovedJumpJets:    f.ImprovedJumpJets,
		HeatDissipation:     f.HeatDissipation,
		Troopers:            f.Troopers,
		OriginalTroopers:    f.OriginalTroopers,
		SquadSize:           f.SquadSize,
		SecondaryPerSquad:   f.SecondaryPerSquad,
		DamageDivisor:       f.DamageDivisor,
		AntiMek:             f.AntiMek,
	}
	if u.ID == "" {
		u.ID = f.Name
	}
	if f.Crew != nil {
		u.Crew = &bvcalc.Crew{Gunnery: f.Crew.Gunnery, Piloting: f.Crew.Piloting, Size: 1}
		if f.Crew.Size != nil {
			u.Crew.Size = *f.Crew.Size
		}
	}
	for _, s := range f.Specializations {
		spec, err := lookupName(specializationNames, "specialization", s)
		if err != nil {
			return nil, err
		}
		u.Specializations |= spec
	}
	if u.PrimaryWeapon, err = f.PrimaryWeapon.EquipmentType(); err != nil {
		return nil, err
	}
	if u.SecondaryWeapon, err = f.SecondaryWeapon.EquipmentType(); err != nil {
		return nil, err
	}

	index := map[string]int{}
	for i, l := range f.Locations {
		role, err := lookupName(roleNames, "role", l.Role)
		if err != nil {
			return nil, err
		}
		index[l.Name] = i
		u.Locations = append(u.Locations, bvcalc.Location{
			Name: l.Name, Role: role, Armor: l.Armor, RearArmor: l.RearArmor,
			Structure: l.Structure, ArmorType: l.ArmorType, BAR: l.BAR,
			CASE: l.CASE, CASEII: l.CASEII, TransferTo: l.TransferTo, Destroyed: l.Destroyed,
		})
	}

	var unknown []string
	placed := make([]*bvcalc.Mount, len(f.Equipment))
	for i, mf := range f.Equipment {
		m, err := mf.mount(res, f.Clan, index, &unknown)
		if err != nil {
			return nil, err
		}
		if m != nil {
			placed[i] = m
			u.Mounts = append(u.Mounts, m)
		}
	}
	if arcs := kind.FiringArcs(); arcs != nil {
		for i, m := range placed {
			if m != nil && !slices.Contains(arcs, m.Arc) {
				return nil, fmt.Errorf("equipment %q: no %s arc on a %s", f.Equipment[i].Name, m.Arc, kind)
			}
		}
	}
	// modifiers refer to positions in the equipment list
	for i, mf := range f.Equipment {
		if mf.Modifier == nil || placed[i] == nil {
			continue
		}
		j := *mf.Modifier
		if j < 0 || j >= len(placed) || j == i || placed[j] == nil {
			return nil, fmt.Errorf("equipment %q: bad link target %d", mf.Name, j)
		}
		placed[i].Linked = placed[j]
	}

	if len(unknown) > 0 {
		return u, &UnknownEquipmentError{Unit: u.Name, Names: unknown}
	}
	return u, nil
}

// mount returns nil for an unknown catalog name, recording it in unknown.
func (mf MountFile) mount(res Resolver, clan bool, index map[string]int, unknown *[]string) (*bvcalc.Mount, error) {
	t, err := mf.Type.EquipmentType()
	if err != nil {
		return nil, err
	}
	if t == nil {
		if t, err = res.Lookup(mf.Name, clan); err != nil {
			*unknown = append(*unknown, mf.Name)
			return nil, nil
		}
	}
	arc, err := arcByName(mf.Arc)
	if err != nil {
		return nil, err
	}
	loc := -1
	if mf.Location != "" {
		i, ok := index[mf.Location]
		if !ok {
			return nil, fmt.Errorf("equipment %q: unknown location %q", mf.Name, mf.Location)
		}
		loc = i
	}

	m := &bvcalc.Mount{
		Type: t, Location: loc, Rear: mf.Rear, Turret: mf.Turret, Arc: arc,
		Slots: mf.Slots, Destroyed: mf.Destroyed,
	}
	if t.Category == bvcalc.CategoryAmmo {
		m.Shots = t.Shots
	}
	if mf.Shots != nil {
		m.Shots = *mf.Shots
	}
	for _, g := range mf.Group {
		member, err := g.mount(res, clan, index, unknown)
		if err != nil {
			return nil, err
		}
		if member != nil {
			member.Arc = arc
			m.Group = append(m.Group, member)
		}
	}
	return m, nil
}

// EquipmentType converts the definition; a nil definition gives nil.
func (tf *TypeFile) EquipmentType() (*bvcalc.EquipmentType, error) {
	if tf == nil {
		return nil, nil
	}
	cat, err := lookupName(categoryNames, "category", tf.Category)
	if err != nil {
		return nil, err
	}
	t := &bvcalc.EquipmentType{
		Name:         tf.Name,
		InternalName: tf.InternalName,
		Category:     cat,
		BV:           tf.BV,
		Heat:         tf.Heat,
		AmmoType:     tf.AmmoType,
		RackSize:     tf.RackSize,
		Shots:        tf.Shots,
		Tonnage:      tf.Tonnage,
		LinkFactor:   tf.LinkFactor,
		LinkBonus:    tf.LinkBonus,
		LinkHeat:     tf.LinkHeat,
		GroupFactor:  tf.GroupFactor,
	}
	if t.InternalName == "" {
		t.InternalName = tf.Name
	}
	for _, fl := range tf.Flags {
		f, err := lookupName(flagNames, "flag", fl)
		if err != nil {
			return nil, err
		}
		t.Flags |= f
	}
	return t, nil
}
