package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/JustinWhittecar/bvengine/internal/bvcalc"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS equipment (
		internal_name TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		bv REAL NOT NULL DEFAULT 0,
		heat REAL NOT NULL DEFAULT 0,
		rack_size INTEGER NOT NULL DEFAULT 0,
		ammo_type TEXT NOT NULL DEFAULT '',
		shots INTEGER NOT NULL DEFAULT 0,
		tonnage REAL NOT NULL DEFAULT 0,
		flags INTEGER NOT NULL DEFAULT 0,
		link_factor REAL NOT NULL DEFAULT 0,
		link_bonus REAL NOT NULL DEFAULT 0,
		link_heat REAL NOT NULL DEFAULT 0,
		group_factor REAL NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS equipment_lookup (
		lookup_name TEXT NOT NULL,
		internal_name TEXT NOT NULL REFERENCES equipment(internal_name) ON DELETE CASCADE,
		PRIMARY KEY (lookup_name, internal_name)
	)`,
}

var categoryNames = map[bvcalc.Category]string{
	bvcalc.CategoryWeapon: "weapon",
	bvcalc.CategoryAmmo:   "ammo",
	bvcalc.CategoryMisc:   "misc",
}

func parseCategory(s string) (bvcalc.Category, error) {
	for c, name := range categoryNames {
		if name == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

// Seed replaces the equipment tables in db with the contents of c.
func Seed(ctx context.Context, db *sql.DB, c *Catalog) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	for _, stmt := range []string{"DELETE FROM equipment_lookup", "DELETE FROM equipment"} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear equipment: %w", err)
		}
	}

	for _, t := range c.All() {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO equipment (internal_name, name, category, bv, heat, rack_size, ammo_type,
				shots, tonnage, flags, link_factor, link_bonus, link_heat, group_factor)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.InternalName, t.Name, categoryNames[t.Category], t.BV, t.Heat, t.RackSize, t.AmmoType,
			t.Shots, t.Tonnage, int64(t.Flags), t.LinkFactor, t.LinkBonus, t.LinkHeat, t.GroupFactor)
		if err != nil {
			return fmt.Errorf("insert %s: %w", t.InternalName, err)
		}
		for _, n := range c.lookupNames(t) {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO equipment_lookup (lookup_name, internal_name) VALUES (?, ?)`,
				n, t.InternalName); err != nil {
				return fmt.Errorf("insert lookup %s: %w", n, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// LoadSQL reads a catalog previously written by Seed. Tonnage-scaled
// physical weapons get their value resolvers back by internal name.
func LoadSQL(ctx context.Context, db *sql.DB) (*Catalog, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT internal_name, name, category, bv, heat, rack_size, ammo_type, shots, tonnage,
			flags, link_factor, link_bonus, link_heat, group_factor
		FROM equipment ORDER BY internal_name`)
	if err != nil {
		return nil, fmt.Errorf("query equipment: %w", err)
	}
	defer rows.Close()

	c := New()
	for rows.Next() {
		var (
			t        bvcalc.EquipmentType
			category string
			flags    int64
		)
		if err := rows.Scan(&t.InternalName, &t.Name, &category, &t.BV, &t.Heat, &t.RackSize,
			&t.AmmoType, &t.Shots, &t.Tonnage, &flags, &t.LinkFactor, &t.LinkBonus, &t.LinkHeat,
			&t.GroupFactor); err != nil {
			return nil, fmt.Errorf("scan equipment: %w", err)
		}
		if t.Category, err = parseCategory(category); err != nil {
			return nil, fmt.Errorf("equipment %s: %w", t.InternalName, err)
		}
		t.Flags = bvcalc.Flag(flags)
		t.Value = valueResolvers[t.InternalName]
		c.Add(&t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read equipment: %w", err)
	}

	lookups, err := db.QueryContext(ctx, `SELECT lookup_name, internal_name FROM equipment_lookup ORDER BY lookup_name, internal_name`)
	if err != nil {
		return nil, fmt.Errorf("query lookups: %w", err)
	}
	defer lookups.Close()
	for lookups.Next() {
		var name, internal string
		if err := lookups.Scan(&name, &internal); err != nil {
			return nil, fmt.Errorf("scan lookup: %w", err)
		}
		if t, ok := c.byInternal[internal]; ok {
			c.addName(name, t)
		}
	}
	if err := lookups.Err(); err != nil {
		return nil, fmt.Errorf("read lookups: %w", err)
	}
	return c, nil
}
