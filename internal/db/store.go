package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JustinWhittecar/bvengine/internal/models"
)

// Store exports verification runs to Postgres.
type Store struct {
	Pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{Pool: pool}
}

// ConnectPostgres opens a pool for dsn and checks it.
func ConnectPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS bv_runs (
		id UUID PRIMARY KEY,
		started_at TIMESTAMPTZ NOT NULL,
		finished_at TIMESTAMPTZ NOT NULL,
		root TEXT NOT NULL DEFAULT '',
		total INTEGER NOT NULL DEFAULT 0,
		compared INTEGER NOT NULL DEFAULT 0,
		failed INTEGER NOT NULL DEFAULT 0,
		exact INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS bv_results (
		run_id UUID NOT NULL REFERENCES bv_runs(id) ON DELETE CASCADE,
		unit_id TEXT NOT NULL,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		tech_base TEXT NOT NULL DEFAULT '',
		era TEXT NOT NULL DEFAULT '',
		published_bv INTEGER,
		calculated_bv INTEGER NOT NULL,
		base_bv INTEGER NOT NULL,
		defensive_value DOUBLE PRECISION NOT NULL,
		offensive_value DOUBLE PRECISION NOT NULL,
		error TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (run_id, unit_id)
	)`,
}

// EnsureSchema creates the export tables.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, ddl := range postgresSchema {
		if _, err := s.Pool.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

func (s *Store) insertRun(ctx context.Context, tx pgx.Tx, run models.Run) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO bv_runs (id, started_at, finished_at, root, total, compared, failed, exact)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE SET finished_at = EXCLUDED.finished_at,
		   total = EXCLUDED.total, compared = EXCLUDED.compared,
		   failed = EXCLUDED.failed, exact = EXCLUDED.exact`,
		run.ID, run.StartedAt, run.FinishedAt, run.Root,
		run.Summary.Total, run.Summary.Compared, run.Summary.Failed, run.Summary.Exact)
	return err
}

const resultColumns = 11

// resultBatchSize keeps each insert under the Postgres bind parameter limit.
const resultBatchSize = 500

// buildResultInsert returns one multi-row INSERT for results.
func buildResultInsert(runID string, results []models.UnitResult) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`INSERT INTO bv_results (run_id, unit_id, name, kind, tech_base, era, published_bv,
		calculated_bv, base_bv, defensive_value, offensive_value, error) VALUES `)
	args := make([]any, 0, len(results)*(resultColumns+1))
	for i, r := range results {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("($1")
		for c := 0; c < resultColumns; c++ {
			fmt.Fprintf(&sb, ", $%d", 2+i*resultColumns+c)
		}
		sb.WriteString(")")
		args = append(args, r.UnitID, r.Name, r.Kind, r.TechBase, r.Era, r.PublishedBV,
			r.CalculatedBV, r.BaseBV, r.DefensiveValue, r.OffensiveValue, r.Error)
	}
	sb.WriteString(` ON CONFLICT (run_id, unit_id) DO UPDATE SET calculated_bv = EXCLUDED.calculated_bv,
		base_bv = EXCLUDED.base_bv, defensive_value = EXCLUDED.defensive_value,
		offensive_value = EXCLUDED.offensive_value, error = EXCLUDED.error`)
	return sb.String(), append([]any{runID}, args...)
}

// SaveRun exports a run and its results in one transaction.
func (s *Store) SaveRun(ctx context.Context, run models.Run, results []models.UnitResult) error {
	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.insertRun(ctx, tx, run); err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}

	for start := 0; start < len(results); start += resultBatchSize {
		end := min(start+resultBatchSize, len(results))
		query, args := buildResultInsert(run.ID, results[start:end])
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("insert results %d-%d: %w", start, end, err)
		}
	}

	return tx.Commit(ctx)
}
