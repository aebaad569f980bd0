package catalog

import (
	"strconv"
	"strings"

	"github.com/JustinWhittecar/bvengine/internal/bvcalc"
)

// ammoEntry describes one ton of ammunition. keys are the normalized names
// it is found under in unit files.
type ammoEntry struct {
	name  string
	keys  []string
	ammo  string
	rack  int
	bv    float64
	shots int
	// semiGuided adds a semi-guided variant of the bin.
	semiGuided bool
}

// register adds the bin, and its semi-guided variant, to c.
func (a ammoEntry) register(c *Catalog) {
	c.Add(a.equipmentType("", 0), a.lookupNames("")...)
	if a.semiGuided {
		c.Add(a.equipmentType(" Semi-Guided", bvcalc.FlagSemiGuided), a.lookupNames(" semi-guided")...)
	}
}

func (a ammoEntry) lookupNames(suffix string) []string {
	names := make([]string, 0, len(a.keys))
	for _, k := range a.keys {
		names = append(names, ammoLookupName(k+suffix))
	}
	return names
}

func (a ammoEntry) equipmentType(suffix string, extra bvcalc.Flag) *bvcalc.EquipmentType {
	flags := extra
	if ammoExplosive(a.ammo) {
		flags |= bvcalc.FlagExplosive
	}
	if a.ammo == "AMS" {
		flags |= bvcalc.FlagAMS
	}
	return &bvcalc.EquipmentType{
		Name:         a.name + suffix + " Ammo",
		InternalName: "Ammo" + strings.NewReplacer(" ", "", "/", "", "-", "").Replace(a.name+suffix),
		Category:     bvcalc.CategoryAmmo,
		BV:           a.bv,
		AmmoType:     a.ammo,
		RackSize:     a.rack,
		Shots:        a.shots,
		Tonnage:      1,
		Flags:        flags,
	}
}

// ammoExplosive is true for every ammunition except gauss and plasma.
func ammoExplosive(ammoType string) bool {
	if strings.Contains(ammoType, "GAUSS") {
		return false
	}
	switch ammoType {
	case "HAG", "PLASMA", "PLASMAC":
		return false
	}
	return true
}

// ammoLookupName is the catalog name an ammo key is registered under.
func ammoLookupName(key string) string {
	return "ammo " + key
}

// normalizeAmmo reduces an ammo name from a unit file to a table key.
// Names follow MegaMek conventions like "IS Ammo LRM-20", "Clan Ammo SRM-6", etc.
func normalizeAmmo(ammoName string) string {
	n := strings.ToLower(strings.TrimSpace(ammoName))

	// Strip common prefixes
	n = strings.TrimPrefix(n, "is ")
	n = strings.TrimPrefix(n, "clan ")
	n = strings.TrimPrefix(n, "cl ")

	// Normalize - strip "ammo" prefix or suffix
	n = strings.TrimPrefix(n, "ammo ")
	n = strings.TrimSuffix(n, " ammo")
	n = strings.TrimSuffix(n, " - full")
	n = strings.TrimSuffix(n, " (omnipod)")

	// Artemis, Narc and torpedo variants share their base type's value
	n = strings.Replace(n, " artemis-capable", "", 1)
	n = strings.Replace(n, " artemis v-capable", "", 1)
	n = strings.Replace(n, " narc-capable", "", 1)
	n = strings.Replace(n, " torpedo", "", 1)
	return n
}

// lookupAmmo resolves an ammunition bin name. Exact keys win, then the
// longest key contained in the name.
func (c *Catalog) lookupAmmo(name string) *bvcalc.EquipmentType {
	n := normalizeAmmo(name)
	if ts := c.byName[ammoLookupName(n)]; len(ts) > 0 {
		return ts[0]
	}
	var best *bvcalc.EquipmentType
	bestLen := 0
	for key, ts := range c.byName {
		pattern, ok := strings.CutPrefix(key, "ammo ")
		if !ok || len(pattern) <= bestLen || !strings.Contains(n, pattern) {
			continue
		}
		if ts[0].Category != bvcalc.CategoryAmmo {
			continue
		}
		best, bestLen = ts[0], len(pattern)
	}
	return best
}

func rackKeys(prefix string, rack int) []string {
	r := strconv.Itoa(rack)
	return []string{prefix + "-" + r, prefix + " " + r}
}

func rackAmmo(name, prefix, ammo string, rack int, bv float64, shots int) ammoEntry {
	return ammoEntry{name: name, keys: rackKeys(prefix, rack), ammo: ammo, rack: rack, bv: bv, shots: shots}
}

// ammoTable holds BV and shots per ton
var ammoTable = []ammoEntry{
	// Standard AC
	{name: "AC/2", keys: []string{"ac/2"}, ammo: "AC", rack: 2, bv: 5, shots: 45},
	{name: "AC/5", keys: []string{"ac/5"}, ammo: "AC", rack: 5, bv: 9, shots: 20},
	{name: "AC/10", keys: []string{"ac/10"}, ammo: "AC", rack: 10, bv: 15, shots: 10},
	{name: "AC/20", keys: []string{"ac/20"}, ammo: "AC", rack: 20, bv: 22, shots: 5},

	// LB-X AC (same as standard AC)
	{name: "LB 2-X AC", keys: []string{"lb 2-x ac", "lb 2-x", "lb2-x ac", "lbx ac 2"}, ammo: "LBX", rack: 2, bv: 5, shots: 45},
	{name: "LB 5-X AC", keys: []string{"lb 5-x ac", "lb 5-x", "lb5-x ac", "lbx ac 5"}, ammo: "LBX", rack: 5, bv: 9, shots: 20},
	{name: "LB 10-X AC", keys: []string{"lb 10-x ac", "lb 10-x", "lb10-x ac", "lbx ac 10"}, ammo: "LBX", rack: 10, bv: 15, shots: 10},
	{name: "LB 20-X AC", keys: []string{"lb 20-x ac", "lb 20-x", "lb20-x ac", "lbx ac 20"}, ammo: "LBX", rack: 20, bv: 22, shots: 5},

	// Ultra AC
	{name: "Ultra AC/2", keys: []string{"ultra ac/2"}, ammo: "UAC", rack: 2, bv: 7, shots: 45},
	{name: "Ultra AC/5", keys: []string{"ultra ac/5"}, ammo: "UAC", rack: 5, bv: 14, shots: 20},
	{name: "Ultra AC/10", keys: []string{"ultra ac/10"}, ammo: "UAC", rack: 10, bv: 26, shots: 10},
	{name: "Ultra AC/20", keys: []string{"ultra ac/20"}, ammo: "UAC", rack: 20, bv: 35, shots: 5},

	// Rotary AC
	{name: "Rotary AC/2", keys: []string{"rotary ac/2"}, ammo: "RAC", rack: 2, bv: 15, shots: 45},
	{name: "Rotary AC/5", keys: []string{"rotary ac/5"}, ammo: "RAC", rack: 5, bv: 31, shots: 20},

	// Light AC
	{name: "Light AC/2", keys: []string{"light ac/2"}, ammo: "LAC", rack: 2, bv: 4, shots: 45},
	{name: "Light AC/5", keys: []string{"light ac/5"}, ammo: "LAC", rack: 5, bv: 8, shots: 20},

	// LRM
	withSemiGuided(rackAmmo("LRM-5", "lrm", "LRM", 5, 6, 24)),
	withSemiGuided(rackAmmo("LRM-10", "lrm", "LRM", 10, 11, 12)),
	withSemiGuided(rackAmmo("LRM-15", "lrm", "LRM", 15, 17, 8)),
	withSemiGuided(rackAmmo("LRM-20", "lrm", "LRM", 20, 23, 6)),

	// SRM
	rackAmmo("SRM-2", "srm", "SRM", 2, 3, 50),
	rackAmmo("SRM-4", "srm", "SRM", 4, 5, 25),
	rackAmmo("SRM-6", "srm", "SRM", 6, 7, 15),

	// Streak SRM
	rackAmmo("Streak SRM-2", "streak srm", "STREAK", 2, 4, 50),
	rackAmmo("Streak SRM-4", "streak srm", "STREAK", 4, 7, 25),
	rackAmmo("Streak SRM-6", "streak srm", "STREAK", 6, 11, 15),

	// MRM
	rackAmmo("MRM-10", "mrm", "MRM", 10, 7, 24),
	rackAmmo("MRM-20", "mrm", "MRM", 20, 14, 12),
	rackAmmo("MRM-30", "mrm", "MRM", 30, 21, 8),
	rackAmmo("MRM-40", "mrm", "MRM", 40, 28, 6),

	// MML
	{name: "MML-3 LRM", keys: []string{"mml-3 lrm", "mml 3 lrm"}, ammo: "MML", rack: 3, bv: 4, shots: 40},
	{name: "MML-3 SRM", keys: []string{"mml-3 srm", "mml 3 srm"}, ammo: "MML", rack: 3, bv: 2, shots: 33},
	{name: "MML-5 LRM", keys: []string{"mml-5 lrm", "mml 5 lrm"}, ammo: "MML", rack: 5, bv: 6, shots: 24},
	{name: "MML-5 SRM", keys: []string{"mml-5 srm", "mml 5 srm"}, ammo: "MML", rack: 5, bv: 3, shots: 20},
	{name: "MML-7 LRM", keys: []string{"mml-7 lrm", "mml 7 lrm"}, ammo: "MML", rack: 7, bv: 8, shots: 17},
	{name: "MML-7 SRM", keys: []string{"mml-7 srm", "mml 7 srm"}, ammo: "MML", rack: 7, bv: 5, shots: 14},
	{name: "MML-9 LRM", keys: []string{"mml-9 lrm", "mml 9 lrm"}, ammo: "MML", rack: 9, bv: 11, shots: 13},
	{name: "MML-9 SRM", keys: []string{"mml-9 srm", "mml 9 srm"}, ammo: "MML", rack: 9, bv: 7, shots: 11},

	// ATM
	rackAmmo("ATM-3", "atm", "ATM", 3, 14, 20),
	rackAmmo("ATM-6", "atm", "ATM", 6, 26, 10),
	rackAmmo("ATM-9", "atm", "ATM", 9, 36, 7),
	rackAmmo("ATM-12", "atm", "ATM", 12, 52, 5),
	{name: "iATM 3", keys: []string{"iatm 3", "iatm-3"}, ammo: "IATM", rack: 3, bv: 21, shots: 20},
	{name: "iATM 6", keys: []string{"iatm 6", "iatm-6"}, ammo: "IATM", rack: 6, bv: 39, shots: 10},
	{name: "iATM 9", keys: []string{"iatm 9", "iatm-9"}, ammo: "IATM", rack: 9, bv: 54, shots: 7},
	{name: "iATM 12", keys: []string{"iatm 12", "iatm-12"}, ammo: "IATM", rack: 12, bv: 78, shots: 5},

	// Gauss
	{name: "Gauss", keys: []string{"gauss", "gauss rifle"}, ammo: "GAUSS", bv: 40, shots: 8},
	{name: "Heavy Gauss", keys: []string{"heavy gauss rifle", "heavy gauss"}, ammo: "HGAUSS", bv: 43, shots: 4},
	{name: "Light Gauss", keys: []string{"light gauss rifle", "light gauss"}, ammo: "LGAUSS", bv: 20, shots: 16},
	{name: "AP Gauss", keys: []string{"ap gauss rifle", "ap gauss"}, ammo: "APGAUSS", bv: 3, shots: 40},
	{name: "HAG/20", keys: []string{"hyper-assault gauss rifle/20", "hag/20", "hag-20"}, ammo: "HAG", rack: 20, bv: 30, shots: 6},
	{name: "HAG/30", keys: []string{"hyper-assault gauss rifle/30", "hag/30", "hag-30"}, ammo: "HAG", rack: 30, bv: 30, shots: 4},
	{name: "HAG/40", keys: []string{"hyper-assault gauss rifle/40", "hag/40", "hag-40"}, ammo: "HAG", rack: 40, bv: 30, shots: 3},

	// Machine Guns
	{name: "MG", keys: []string{"machine gun", "mg"}, ammo: "MG", bv: 1, shots: 200},
	{name: "Light MG", keys: []string{"light machine gun", "light mg"}, ammo: "LMG", bv: 1, shots: 200},
	{name: "Heavy MG", keys: []string{"heavy machine gun", "heavy mg"}, ammo: "HMG", bv: 1, shots: 100},

	// AMS
	{name: "AMS", keys: []string{"ams", "anti-missile system"}, ammo: "AMS", bv: 11, shots: 12},

	// Narc
	{name: "Narc", keys: []string{"narc", "narc beacon"}, ammo: "NARC", bv: 0, shots: 6},

	// Arrow IV
	{name: "Arrow IV", keys: []string{"arrow iv"}, ammo: "ARROW", bv: 10, shots: 5},

	// Plasma
	{name: "Plasma Rifle", keys: []string{"plasma rifle"}, ammo: "PLASMA", bv: 26, shots: 10},
	{name: "Plasma Cannon", keys: []string{"plasma cannon"}, ammo: "PLASMAC", bv: 21, shots: 10},
}

func withSemiGuided(a ammoEntry) ammoEntry {
	a.semiGuided = true
	return a
}
