package ingestion

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrMissingChassis is returned for files without a chassis line.
var ErrMissingChassis = errors.New("missing chassis field")

// parseArmorValue handles both standard "26" and patchwork "Reactive(Inner Sphere):26" formats
func parseArmorValue(val string) (int, string) {
	// Try direct parse first
	if n, err := strconv.Atoi(val); err == nil {
		return n, ""
	}
	// Patchwork format: "ArmorType:value"
	if idx := strings.LastIndex(val, ":"); idx >= 0 {
		if n, err := strconv.Atoi(val[idx+1:]); err == nil {
			return n, strings.TrimSpace(val[:idx])
		}
	}
	return 0, ""
}

// MTFData holds the parsed contents of a MegaMek .mtf file.
type MTFData struct {
	// Header
	Chassis    string
	Model      string
	MulID      int
	Config     string
	TechBase   string
	Era        int
	Source     string
	RulesLevel int

	// Core
	Mass         int
	EngineRating int
	EngineType   string
	Structure    string
	Myomer       string
	Cockpit      string
	Gyro         string

	// Heat sinks
	HeatSinkCount int
	HeatSinkType  string

	// Movement
	WalkMP int
	JumpMP int

	// Armor, keyed by location abbreviation (LA, CT, ...)
	ArmorType   string
	ArmorValues map[string]int
	RearArmor   map[string]int
	// PatchworkArmor holds per-location armor types
	PatchworkArmor map[string]string

	// Weapons summary
	Weapons []WeaponEntry

	// Per-location critical slots, keyed by full location name
	LocationEquipment map[string][]string
}

// WeaponEntry is a weapon from the Weapons:N summary block.
type WeaponEntry struct {
	Name     string
	Location string
	Rear     bool
}

// ParseMTF reads a MegaMek .mtf file and returns structured data.
func ParseMTF(path string) (*MTFData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mtf: %w", err)
	}
	defer f.Close()
	return ReadMTF(f)
}

// ReadMTF parses .mtf text from r.
func ReadMTF(r io.Reader) (*MTFData, error) {
	data := &MTFData{
		ArmorValues:       make(map[string]int),
		RearArmor:         make(map[string]int),
		PatchworkArmor:    make(map[string]string),
		LocationEquipment: make(map[string][]string),
	}

	scanner := bufio.NewScanner(r)
	// Increase buffer for files with long lore lines
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var currentLocation string
	var weaponsLeft int

	for scanner.Scan() {
		trimmed := strings.TrimSpace(scanner.Text())

		// Blank lines close location and weapon blocks
		if trimmed == "" {
			currentLocation, weaponsLeft = "", 0
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			continue
		}

		lower := strings.ToLower(trimmed)

		// Check if we're entering a location block
		if loc := matchLocationHeader(trimmed); loc != "" {
			currentLocation = loc
			weaponsLeft = 0
			continue
		}

		// Check for weapons section
		if n, ok := strings.CutPrefix(lower, "weapons:"); ok {
			weaponsLeft, _ = strconv.Atoi(strings.TrimSpace(n))
			currentLocation = ""
			continue
		}

		// If in a location block, collect equipment
		if currentLocation != "" {
			data.LocationEquipment[currentLocation] = append(data.LocationEquipment[currentLocation], trimmed)
			continue
		}

		// If in weapons section, parse weapon entries
		if weaponsLeft > 0 {
			weaponsLeft--
			if w, ok := parseWeaponEntry(trimmed); ok {
				data.Weapons = append(data.Weapons, w)
			}
			continue
		}

		// Parse key:value fields
		idx := strings.Index(trimmed, ":")
		if idx < 0 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(trimmed[:idx]))
		val := strings.TrimSpace(trimmed[idx+1:])

		if loc, rear, ok := armorKey(key); ok {
			n, patch := parseArmorValue(val)
			if rear {
				data.RearArmor[loc] = n
			} else {
				data.ArmorValues[loc] = n
			}
			if patch != "" {
				data.PatchworkArmor[loc] = patch
			}
			continue
		}

		switch key {
		case "chassis":
			data.Chassis = val
		case "model":
			data.Model = val
		case "mul id":
			data.MulID, _ = strconv.Atoi(val)
		case "config":
			data.Config = val
		case "techbase":
			data.TechBase = val
		case "era":
			data.Era, _ = strconv.Atoi(val)
		case "source":
			data.Source = val
		case "rules level":
			data.RulesLevel, _ = strconv.Atoi(val)
		case "mass":
			data.Mass, _ = strconv.Atoi(val)
		case "engine":
			data.EngineRating, data.EngineType = parseEngine(val)
		case "structure":
			data.Structure = val
		case "myomer":
			data.Myomer = val
		case "cockpit":
			data.Cockpit = val
		case "gyro":
			data.Gyro = val
		case "heat sinks":
			data.HeatSinkCount, data.HeatSinkType = parseHeatSinks(val)
		case "walk mp":
			data.WalkMP, _ = strconv.Atoi(val)
		case "jump mp":
			data.JumpMP, _ = strconv.Atoi(val)
		case "armor":
			data.ArmorType = val
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan mtf: %w", err)
	}

	// Validate minimum required fields
	if data.Chassis == "" {
		return nil, ErrMissingChassis
	}

	return data, nil
}

// armorKey maps "la armor" style keys to a location abbreviation. Rear
// torso keys are "rtl", "rtr" and "rtc".
func armorKey(key string) (loc string, rear bool, ok bool) {
	abbr, found := strings.CutSuffix(key, " armor")
	if !found {
		return "", false, false
	}
	switch abbr {
	case "la", "ra", "lt", "rt", "ct", "hd", "ll", "rl", "cl",
		// Quad leg locations
		"fll", "frl", "rll", "rrl":
		return strings.ToUpper(abbr), false, true
	case "rtl":
		return "LT", true, true
	case "rtr":
		return "RT", true, true
	case "rtc":
		return "CT", true, true
	}
	return "", false, false
}

// parseWeaponEntry parses "Medium Laser, Center Torso (R)" or
// "LRM 20, Left Torso, Ammo:12". Lines without a comma are not entries.
func parseWeaponEntry(line string) (WeaponEntry, bool) {
	parts := strings.Split(line, ",")
	if len(parts) < 2 {
		return WeaponEntry{}, false
	}
	name := strings.TrimSpace(parts[0])
	// "1 ISMediumLaser" count prefixes
	if sp := strings.IndexByte(name, ' '); sp > 0 {
		if _, err := strconv.Atoi(name[:sp]); err == nil {
			name = strings.TrimSpace(name[sp+1:])
		}
	}
	loc := strings.TrimSpace(parts[1])
	rear := false
	if cut, ok := strings.CutSuffix(loc, "(R)"); ok {
		loc, rear = strings.TrimSpace(cut), true
	}
	return WeaponEntry{Name: name, Location: loc, Rear: rear}, true
}

// matchLocationHeader checks if a line is a location header like "Left Arm:" or "Front Left Leg:"
func matchLocationHeader(line string) string {
	name, ok := strings.CutSuffix(line, ":")
	if !ok {
		return ""
	}
	if _, known := mekLocations[name]; known {
		return name
	}
	return ""
}

// parseEngine parses "300 Fusion Engine(IS)" -> (300, "Fusion Engine(IS)")
func parseEngine(val string) (int, string) {
	parts := strings.SplitN(val, " ", 2)
	if len(parts) < 2 {
		rating, _ := strconv.Atoi(val)
		return rating, ""
	}
	rating, _ := strconv.Atoi(parts[0])
	return rating, parts[1]
}

// parseHeatSinks parses "14 IS Double" -> (14, "IS Double")
func parseHeatSinks(val string) (int, string) {
	parts := strings.SplitN(val, " ", 2)
	if len(parts) < 2 {
		count, _ := strconv.Atoi(val)
		return count, "Single"
	}
	count, _ := strconv.Atoi(parts[0])
	return count, parts[1]
}

// TotalArmor returns the sum of all front and rear armor values.
func (d *MTFData) TotalArmor() int {
	total := 0
	for _, v := range d.ArmorValues {
		total += v
	}
	for _, v := range d.RearArmor {
		total += v
	}
	return total
}

// FullName returns "Chassis Model" or just "Chassis" if model is empty.
func (d *MTFData) FullName() string {
	if d.Model == "" {
		return d.Chassis
	}
	return d.Chassis + " " + d.Model
}

// IsClan reports a Clan or Clan-chassis mixed tech base.
func (d *MTFData) IsClan() bool {
	lower := strings.ToLower(d.TechBase)
	if strings.Contains(lower, "mixed") {
		return strings.Contains(lower, "clan chassis")
	}
	return strings.Contains(lower, "clan")
}
