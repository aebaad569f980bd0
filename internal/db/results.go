package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JustinWhittecar/bvengine/internal/models"
)

// ResultsDB keeps published Battle Values and calculated results in sqlite.
type ResultsDB struct {
	DB *sql.DB
}

var resultsSchema = []string{
	`CREATE TABLE IF NOT EXISTS variants (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		chassis TEXT NOT NULL,
		model_code TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL UNIQUE COLLATE NOCASE,
		mul_id INTEGER,
		tonnage INTEGER NOT NULL DEFAULT 0,
		tech_base TEXT NOT NULL DEFAULT '',
		era TEXT NOT NULL DEFAULT '',
		battle_value INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at DATETIME NOT NULL,
		finished_at DATETIME NOT NULL,
		root TEXT NOT NULL DEFAULT '',
		total INTEGER NOT NULL DEFAULT 0,
		compared INTEGER NOT NULL DEFAULT 0,
		failed INTEGER NOT NULL DEFAULT 0,
		exact INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS results (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		unit_id TEXT NOT NULL,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		tech_base TEXT NOT NULL DEFAULT '',
		era TEXT NOT NULL DEFAULT '',
		tonnage REAL NOT NULL DEFAULT 0,
		source_path TEXT NOT NULL DEFAULT '',
		published_bv INTEGER,
		calculated_bv INTEGER NOT NULL,
		base_bv INTEGER NOT NULL,
		defensive_value REAL NOT NULL,
		offensive_value REAL NOT NULL,
		unknown_equipment TEXT NOT NULL DEFAULT '',
		error TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (run_id, unit_id)
	)`,
}

// NewResultsDB creates the result tables in db if needed.
func NewResultsDB(ctx context.Context, db *sql.DB) (*ResultsDB, error) {
	for _, ddl := range resultsSchema {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return nil, fmt.Errorf("create table: %w", err)
		}
	}
	return &ResultsDB{DB: db}, nil
}

// UpsertVariant stores a published record, replacing one with the same name.
func (r *ResultsDB) UpsertVariant(ctx context.Context, v models.Variant) error {
	if v.TechBase != "" {
		v.TechBase = NormalizeTechBase(v.TechBase)
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO variants (chassis, model_code, name, mul_id, tonnage, tech_base, era, battle_value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			chassis = excluded.chassis, model_code = excluded.model_code, mul_id = excluded.mul_id,
			tonnage = excluded.tonnage, tech_base = excluded.tech_base, era = excluded.era,
			battle_value = excluded.battle_value`,
		v.Chassis, v.ModelCode, v.Name, v.MulID, v.Tonnage, v.TechBase, v.Era, v.BattleValue)
	if err != nil {
		return fmt.Errorf("upsert variant %q: %w", v.Name, err)
	}
	return nil
}

// Variants returns every published record with a Battle Value, by name.
func (r *ResultsDB) Variants(ctx context.Context) ([]models.Variant, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, chassis, model_code, name, mul_id, tonnage, tech_base, era, battle_value
		FROM variants
		WHERE battle_value > 0
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query variants: %w", err)
	}
	defer rows.Close()

	var variants []models.Variant
	for rows.Next() {
		var (
			v     models.Variant
			mulID sql.NullInt64
		)
		if err := rows.Scan(&v.ID, &v.Chassis, &v.ModelCode, &v.Name, &mulID, &v.Tonnage, &v.TechBase, &v.Era, &v.BattleValue); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		if mulID.Valid {
			id := int(mulID.Int64)
			v.MulID = &id
		}
		variants = append(variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read variants: %w", err)
	}
	return variants, nil
}

// PublishedBV looks up the published value for a unit name, ignoring case.
func (r *ResultsDB) PublishedBV(ctx context.Context, name string) (int, bool, error) {
	var bv int
	err := r.DB.QueryRowContext(ctx,
		`SELECT battle_value FROM variants WHERE name = ? AND battle_value > 0`, name).Scan(&bv)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("published bv %q: %w", name, err)
	}
	return bv, true, nil
}

// SaveRun writes a run and its results in one transaction.
func (r *ResultsDB) SaveRun(ctx context.Context, run models.Run, results []models.UnitResult) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, finished_at, root, total, compared, failed, exact)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC(), run.FinishedAt.UTC(), run.Root,
		run.Summary.Total, run.Summary.Compared, run.Summary.Failed, run.Summary.Exact)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO results (run_id, unit_id, name, kind, tech_base, era, tonnage, source_path,
			published_bv, calculated_bv, base_bv, defensive_value, offensive_value, unknown_equipment, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, res := range results {
		if _, err := stmt.ExecContext(ctx, run.ID, res.UnitID, res.Name, res.Kind, res.TechBase, res.Era,
			res.Tonnage, res.SourcePath, res.PublishedBV, res.CalculatedBV, res.BaseBV,
			res.DefensiveValue, res.OffensiveValue, strings.Join(res.Unknown, "; "), res.Error); err != nil {
			return fmt.Errorf("insert result %q: %w", res.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// RunResults reads back the results of one run in name order.
func (r *ResultsDB) RunResults(ctx context.Context, runID string) ([]models.UnitResult, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT unit_id, name, kind, tech_base, era, tonnage, source_path, published_bv,
			calculated_bv, base_bv, defensive_value, offensive_value, unknown_equipment, error
		FROM results WHERE run_id = ? ORDER BY name, unit_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []models.UnitResult
	for rows.Next() {
		var (
			res       = models.UnitResult{RunID: runID}
			published sql.NullInt64
			unknown   string
		)
		if err := rows.Scan(&res.UnitID, &res.Name, &res.Kind, &res.TechBase, &res.Era, &res.Tonnage,
			&res.SourcePath, &published, &res.CalculatedBV, &res.BaseBV, &res.DefensiveValue,
			&res.OffensiveValue, &unknown, &res.Error); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		if published.Valid {
			bv := int(published.Int64)
			res.PublishedBV = &bv
		}
		if unknown != "" {
			res.Unknown = strings.Split(unknown, "; ")
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}
	return out, nil
}

// LastRun returns the most recent run's ID and start time.
func (r *ResultsDB) LastRun(ctx context.Context) (string, time.Time, error) {
	var (
		id      string
		started time.Time
	)
	err := r.DB.QueryRowContext(ctx, `SELECT id, started_at FROM runs ORDER BY started_at DESC LIMIT 1`).Scan(&id, &started)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("last run: %w", err)
	}
	return id, started, nil
}

// NormalizeTechBase folds MegaMek tech base strings to Inner Sphere, Clan or Mixed.
func NormalizeTechBase(tb string) string {
	lower := strings.ToLower(tb)
	if strings.Contains(lower, "mixed") {
		return "Mixed"
	}
	if strings.Contains(lower, "clan") {
		return "Clan"
	}
	return "Inner Sphere"
}

// EraFromYear names the BattleTech era an introduction year falls in.
func EraFromYear(year int) string {
	if year <= 0 {
		return ""
	}
	switch {
	case year <= 2570:
		return "Age of War"
	case year <= 2780:
		return "Star League"
	case year <= 2900:
		return "Early Succession Wars"
	case year <= 3049:
		return "Late Succession Wars"
	case year <= 3061:
		return "Clan Invasion"
	case year <= 3067:
		return "Civil War"
	case year <= 3081:
		return "Jihad"
	case year <= 3150:
		return "Dark Age"
	default:
		return "ilClan"
	}
}
