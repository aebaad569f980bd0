package bvcalc

// Kind selects the phase table used for a unit.
type Kind int

const (
	KindMek Kind = iota
	KindVehicle
	KindAero
	KindDropship
	KindJumpship
	KindWarship
	KindSpaceStation
	KindInfantry
	KindBattleArmor
	KindGunEmplacement
	KindHandheldWeapon
	numKinds
)

var kindNames = [numKinds]string{
	"Mek", "Vehicle", "Aerospace Fighter", "DropShip", "JumpShip", "WarShip",
	"Space Station", "Infantry", "Battle Armor", "Gun Emplacement", "Handheld Weapon",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "Unknown"
	}
	return kindNames[k]
}

// LocationRole tells the explosive-equipment rules how losing a location
// affects the unit.
type LocationRole int

const (
	RoleBody LocationRole = iota
	RoleHead
	RoleCenterTorso
	RoleSideTorso
	RoleArm
	RoleLeg
)

// Location is one armor-bearing location. For battle armor each location is
// a trooper; for large spacecraft each location is a firing arc.
type Location struct {
	Name      string
	Role      LocationRole
	Armor     int
	RearArmor int
	Structure int
	// ArmorType and BAR override the unit values for patchwork armor.
	ArmorType string
	BAR       int
	CASE      bool
	CASEII    bool
	// TransferTo names the location damage transfers to (arms into side torsos).
	TransferTo string
	Destroyed  bool
}

type Engine int

const (
	EngineFusion Engine = iota
	EngineXL
	EngineXXL
	EngineLight
	EngineCompact
	EngineICE
	EngineFuelCell
	EngineFission
)

// Fusion reports whether running generates heat.
func (e Engine) Fusion() bool {
	switch e {
	case EngineICE, EngineFuelCell:
		return false
	}
	return true
}

type Gyro int

const (
	GyroStandard Gyro = iota
	GyroCompact
	GyroHeavyDuty
	GyroXL
	GyroNone
)

type Cockpit int

const (
	CockpitStandard Cockpit = iota
	CockpitSmall
	CockpitTorsoMounted
	CockpitCommandConsole
	CockpitIndustrial
	CockpitSmallCommandConsole
)

type Myomer int

const (
	MyomerStandard Myomer = iota
	MyomerTSM
	MyomerIndustrialTSM
)

type FireControl int

const (
	FireControlAdvanced FireControl = iota
	FireControlBasic
	FireControlNone
)

type MovementMode int

const (
	MoveDefault MovementMode = iota
	MoveTracked
	MoveWheeled
	MoveHover
	MoveVTOL
	MoveWiGE
	MoveNaval
	MoveHydrofoil
	MoveSubmarine
)

// Specialization is a bit set of conventional infantry specializations.
type Specialization uint16

const (
	SpecCombatEngineer Specialization = 1 << iota
	SpecMarine
	SpecMountainTroops
	SpecParamedic
	SpecParatrooper
	SpecScuba
	SpecTAGTroops
	SpecXCT
)

// Crew holds the two skill ratings used by the skill multiplier.
type Crew struct {
	Gunnery  int
	Piloting int
	Size     int
}

// Mount is one piece of equipment attached to a unit.
type Mount struct {
	Type *EquipmentType
	// Location indexes Unit.Locations; -1 means not allocated to a location.
	Location  int
	Rear      bool
	Turret    bool
	Arc       Arc
	Destroyed bool
	Hit       bool
	Missing   bool
	// Linked is the modifier riding on this weapon (Artemis, capacitor, ...).
	Linked *Mount
	// Shots remaining, ammunition only.
	Shots int
	// Slots is the number of critical slots; 0 counts as one.
	Slots int
	// Group holds the members of a bay or array weapon.
	Group []*Mount
}

// Working is false once the mount is destroyed, hit or missing.
func (m *Mount) Working() bool {
	return m != nil && m.Type != nil && !m.Destroyed && !m.Hit && !m.Missing
}

func (m *Mount) slotCount() int {
	if m.Slots <= 0 {
		return 1
	}
	return m.Slots
}

// NewAmmoMount returns a full bin of t at loc.
func NewAmmoMount(t *EquipmentType, loc int) *Mount {
	return &Mount{Type: t, Location: loc, Shots: t.Shots}
}

// Unit is the read-only input to a calculation. The engine never writes to it.
type Unit struct {
	ID        string
	Name      string
	Kind      Kind
	Tonnage   float64
	Clan      bool
	Destroyed bool
	Team      int
	C3Network string

	Locations     []Location
	ArmorType     string
	BAR           int
	StructureType string
	// StructuralIntegrity replaces internal structure for aerospace units.
	StructuralIntegrity int

	Engine       Engine
	Gyro         Gyro
	Cockpit      Cockpit
	Myomer       Myomer
	Industrial   bool
	FireControl  FireControl
	MovementMode MovementMode

	// Movement points after damage and permanent modifications. For
	// aerospace units WalkMP is safe thrust.
	WalkMP           int
	JumpMP           int
	UMUMP            int
	ImprovedJumpJets bool

	HeatDissipation int

	Mounts []*Mount
	Crew   *Crew

	// Conventional infantry.
	Troopers          int
	OriginalTroopers  int
	SquadSize         int
	SecondaryPerSquad int
	PrimaryWeapon     *EquipmentType
	SecondaryWeapon   *EquipmentType
	Specializations   Specialization
	DamageDivisor     float64
	AntiMek           bool
}

// Game is the slice of session state the force bonuses need. Units returns
// a snapshot; the engine tolerates it changing between calls.
type Game interface {
	Units() []*Unit
}

// InternalStructure sums structure over all locations.
func (u *Unit) InternalStructure() int {
	total := 0
	for _, l := range u.Locations {
		total += l.Structure
	}
	return total
}

// TotalArmor sums front and rear armor over all locations.
func (u *Unit) TotalArmor() int {
	total := 0
	for _, l := range u.Locations {
		total += l.Armor + l.RearArmor
	}
	return total
}

func (u *Unit) location(i int) *Location {
	if i < 0 || i >= len(u.Locations) {
		return nil
	}
	return &u.Locations[i]
}

func (u *Unit) locationByName(name string) *Location {
	if name == "" {
		return nil
	}
	for i := range u.Locations {
		if u.Locations[i].Name == name {
			return &u.Locations[i]
		}
	}
	return nil
}

// hasWorking reports whether any working mount carries f.
func (u *Unit) hasWorking(f Flag) bool {
	for _, m := range u.Mounts {
		if m.Working() && m.Type.Has(f) {
			return true
		}
	}
	return false
}

// crewless units take no skill multiplier, except conventional infantry,
// which fall back to a default rating.
func (u *Unit) crewless() bool {
	return u.Crew == nil || u.Crew.Size <= 0
}
