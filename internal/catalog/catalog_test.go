package catalog

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/JustinWhittecar/bvengine/internal/bvcalc"
)

func TestAmmoBV(t *testing.T) {
	c := Builtin()
	tests := []struct {
		name  string
		want  float64
		shots int
	}{
		{"IS Ammo LRM-20", 23, 6},
		{"IS Ammo LRM-5", 6, 24},
		{"Clan Ammo SRM-6", 7, 15},
		{"IS Ammo AC/20", 22, 5},
		{"IS Ammo AC/2", 5, 45},
		{"IS Gauss Ammo", 40, 8},
		{"Clan Streak SRM-6 Ammo", 11, 15},
		{"IS Ammo MRM-40", 28, 6},
		{"Clan Ultra AC/5 Ammo", 14, 20},
		{"IS LB 10-X AC Ammo", 15, 10},
		{"IS LB 10-X Cluster Ammo", 15, 10},
		{"IS Ammo MG - Full", 1, 200},
		{"IS Ammo LRM-15 Artemis-capable", 17, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Lookup(tt.name, false)
			require.NoError(t, err)
			assert.Equal(t, bvcalc.CategoryAmmo, got.Category)
			assert.Equal(t, tt.want, got.BV)
			assert.Equal(t, tt.shots, got.Shots)
		})
	}
}

func TestAmmoFlags(t *testing.T) {
	c := Builtin()

	gauss, err := c.Lookup("IS Gauss Ammo", false)
	require.NoError(t, err)
	assert.False(t, gauss.Has(bvcalc.FlagExplosive))

	lrm, err := c.Lookup("IS Ammo LRM-20", false)
	require.NoError(t, err)
	assert.True(t, lrm.Has(bvcalc.FlagExplosive))
	assert.False(t, lrm.Has(bvcalc.FlagSemiGuided))

	semi, err := c.Lookup("IS Ammo LRM-20 Semi-Guided", false)
	require.NoError(t, err)
	assert.True(t, semi.Has(bvcalc.FlagSemiGuided))
	assert.Equal(t, lrm.AmmoKey(), semi.AmmoKey())

	ams, err := c.Lookup("IS Ammo AMS", false)
	require.NoError(t, err)
	assert.True(t, ams.Has(bvcalc.FlagAMS))
}

func TestLookupTechBase(t *testing.T) {
	c := Builtin()
	tests := []struct {
		name     string
		clan     bool
		internal string
	}{
		{"Medium Laser", false, "ISMediumLaser"},
		{"ER Medium Laser", false, "ISERMediumLaser"},
		{"ER Medium Laser", true, "CLERMediumLaser"},
		{"CLERMediumLaser", false, "CLERMediumLaser"},
		{"Clan ER Medium Laser", false, "CLERMediumLaser"},
		{"IS ER Medium Laser", true, "ISERMediumLaser"},
		{"Medium Laser (omnipod)", false, "ISMediumLaser"},
		{"ER Micro Laser", false, "CLERMicroLaser"},
		{"iATM 6", true, "CLIATM6"},
		{"ISAMS", false, "ISAntiMissileSystem"},
		{"Anti-Missile System", true, "CLAntiMissileSystem"},
		{"Artemis IV FCS", false, "ISArtemisIV"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Lookup(tt.name, tt.clan)
			require.NoError(t, err)
			assert.Equal(t, tt.internal, got.InternalName)
		})
	}
}

func TestLookupNotFound(t *testing.T) {
	_, err := Builtin().Lookup("Quantum Flux Capacitor", false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddReplaces(t *testing.T) {
	c := Builtin()
	before := c.Len()

	tuned := &bvcalc.EquipmentType{Name: "Medium Laser", InternalName: "ISMediumLaser", Category: bvcalc.CategoryWeapon, BV: 50, Heat: 3}
	c.Add(tuned, "Tuned Laser")

	assert.Equal(t, before, c.Len())
	for _, name := range []string{"ISMediumLaser", "IS Medium Laser", "Tuned Laser"} {
		got, err := c.Lookup(name, false)
		require.NoError(t, err, name)
		assert.Same(t, tuned, got, name)
	}
}

func TestWeaponsHaveAmmo(t *testing.T) {
	c := Builtin()
	keys := map[string]bool{}
	for _, eq := range c.All() {
		if eq.Category == bvcalc.CategoryAmmo {
			keys[eq.AmmoKey()] = true
		}
	}
	for _, eq := range c.All() {
		if eq.Category == bvcalc.CategoryWeapon && eq.AmmoType != "" {
			assert.True(t, keys[eq.AmmoKey()], "%s has no ammunition %s", eq.InternalName, eq.AmmoKey())
		}
	}
}

func TestPhysicalWeapons(t *testing.T) {
	c := Builtin()
	u := &bvcalc.Unit{Tonnage: 50}

	hatchet, err := c.Lookup("Hatchet", false)
	require.NoError(t, err)
	assert.Equal(t, 15.0, hatchet.BaseBV(u, nil))

	sword, err := c.Lookup("Sword", false)
	require.NoError(t, err)
	assert.InDelta(t, 10.35, sword.BaseBV(u, nil), 1e-9)
}

func TestSeedAndLoad(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	defer db.Close()

	builtin := Builtin()
	require.NoError(t, Seed(ctx, db, builtin))
	// seeding twice replaces the rows
	require.NoError(t, Seed(ctx, db, builtin))

	loaded, err := LoadSQL(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, builtin.Len(), loaded.Len())

	for _, name := range []string{"ER PPC", "IS Ammo LRM-20 Semi-Guided", "iATM 9", "Guardian ECM Suite"} {
		want, err := builtin.Lookup(name, true)
		require.NoError(t, err)
		got, err := loaded.Lookup(name, true)
		require.NoError(t, err, name)
		assert.Equal(t, want.InternalName, got.InternalName, name)
		assert.Equal(t, want.BV, got.BV, name)
		assert.Equal(t, want.Flags, got.Flags, name)
		assert.Equal(t, want.Category, got.Category, name)
	}

	hatchet, err := loaded.Lookup("Hatchet", false)
	require.NoError(t, err)
	require.NotNil(t, hatchet.Value)
	assert.Equal(t, 30.0, hatchet.BaseBV(&bvcalc.Unit{Tonnage: 100}, nil))
}
