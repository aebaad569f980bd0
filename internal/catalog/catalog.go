// Package catalog is the equipment database the unit builders resolve
// critical-slot names against.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/JustinWhittecar/bvengine/internal/bvcalc"
)

// ErrNotFound is returned when no equipment type matches a name.
var ErrNotFound = errors.New("equipment not found")

// Catalog indexes equipment types by internal name and by lookup name.
type Catalog struct {
	// Map from internal_name -> equipment type
	byInternal map[string]*bvcalc.EquipmentType
	// Map from lower-cased display/lookup name -> types (IS and Clan share names)
	byName map[string][]*bvcalc.EquipmentType
}

func New() *Catalog {
	return &Catalog{
		byInternal: map[string]*bvcalc.EquipmentType{},
		byName:     map[string][]*bvcalc.EquipmentType{},
	}
}

// Add registers t under its internal name, its display name and any extra
// lookup names. A later type with the same internal name replaces the
// earlier one.
func (c *Catalog) Add(t *bvcalc.EquipmentType, lookupNames ...string) {
	names := append([]string{t.Name}, lookupNames...)
	// a replaced type hands its names over
	if old, ok := c.byInternal[t.InternalName]; ok && old != t {
		for _, types := range c.byName {
			for i, existing := range types {
				if existing == old {
					types[i] = t
				}
			}
		}
	}
	c.byInternal[t.InternalName] = t
	for _, n := range names {
		c.addName(n, t)
	}
}

func (c *Catalog) addName(name string, t *bvcalc.EquipmentType) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return
	}
	for _, existing := range c.byName[key] {
		if existing == t {
			return
		}
	}
	c.byName[key] = append(c.byName[key], t)
}

// Len is the number of distinct types.
func (c *Catalog) Len() int { return len(c.byInternal) }

// All returns every type ordered by internal name.
func (c *Catalog) All() []*bvcalc.EquipmentType {
	out := make([]*bvcalc.EquipmentType, 0, len(c.byInternal))
	for _, t := range c.byInternal {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InternalName < out[j].InternalName })
	return out
}

// lookupNames returns every name t is reachable under, sorted.
func (c *Catalog) lookupNames(t *bvcalc.EquipmentType) []string {
	var out []string
	for name, ts := range c.byName {
		for _, x := range ts {
			if x == t {
				out = append(out, name)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Lookup resolves an equipment name as it appears in unit files. Internal
// names win, then display names (preferring the unit's tech base), then
// known aliases.
func (c *Catalog) Lookup(name string, clan bool) (*bvcalc.EquipmentType, error) {
	name = strings.TrimSpace(name)
	if t, ok := c.byInternal[name]; ok {
		return t, nil
	}
	if t := c.lookupByName(name, clan); t != nil {
		return t, nil
	}
	if alias, ok := nameAliases[name]; ok {
		if t, ok := c.byInternal[alias]; ok {
			return t, nil
		}
		if t := c.lookupByName(alias, clan); t != nil {
			return t, nil
		}
	}

	lower := strings.ToLower(name)
	if strings.Contains(lower, "ammo") {
		if t := c.lookupAmmo(name); t != nil {
			return t, nil
		}
	}

	// Try stripping decorations
	switch {
	case strings.HasSuffix(lower, " (omnipod)"):
		return c.Lookup(name[:len(name)-len(" (omnipod)")], clan)
	case strings.HasPrefix(lower, "is "):
		return c.Lookup(name[len("is "):], false)
	case strings.HasPrefix(lower, "clan "):
		return c.Lookup(name[len("clan "):], true)
	case strings.HasPrefix(lower, "cl "):
		return c.Lookup(name[len("cl "):], true)
	}
	return nil, fmt.Errorf("lookup %q: %w", name, ErrNotFound)
}

func (c *Catalog) lookupByName(name string, clan bool) *bvcalc.EquipmentType {
	ts := c.byName[strings.ToLower(name)]
	if len(ts) == 0 {
		return nil
	}
	for _, t := range ts {
		if isClanType(t) == clan {
			return t
		}
	}
	return ts[0]
}

func isClanType(t *bvcalc.EquipmentType) bool {
	return strings.HasPrefix(strings.ToLower(t.InternalName), "cl")
}

// nameAliases maps names seen in unit files to catalog names
var nameAliases = map[string]string{
	// iATM
	"iATM 3": "Improved ATM 3", "iATM 6": "Improved ATM 6",
	"iATM 9": "Improved ATM 9", "iATM 12": "Improved ATM 12",
	"Particle Cannon": "PPC",
	"LAC/5":           "Light AC/5", "LAC/2": "Light AC/2",
	"Autocannon/2": "AC/2", "Autocannon/5": "AC/5", "Autocannon/10": "AC/10", "Autocannon/20": "AC/20",
	"Anti-Missile System": "AMS",
	"ISMachine Gun":       "ISMG", "CLMachine Gun": "CLMG",
	"ISAMS": "ISAntiMissileSystem", "CLAMS": "CLAntiMissileSystem",
	"ISGuardianECM": "ISGuardianECMSuite", "ECM Suite": "Guardian ECM Suite",
	"C3 Master Computer": "C3 Master", "C3 Slave Unit": "C3 Slave", "ISC3SlaveUnit": "ISC3Slave",
	"ISTargeting Computer": "ISTargetingComputer", "CLTargeting Computer": "CLTargetingComputer",
	"Artemis IV FCS": "Artemis IV", "ISArtemisIV": "ISArtemisIV", "CLArtemisIV": "CLArtemisIV",
	"Null Signature System": "Null-Signature System",
	"Chameleon Light Polarization Shield": "Chameleon LPS",
}
