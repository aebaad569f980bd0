package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/JustinWhittecar/bvengine/internal/bvcalc"
	"github.com/JustinWhittecar/bvengine/internal/catalog"
	"github.com/JustinWhittecar/bvengine/internal/config"
	"github.com/JustinWhittecar/bvengine/internal/db"
	"github.com/JustinWhittecar/bvengine/internal/ingestion"
	"github.com/JustinWhittecar/bvengine/internal/logging"
	"github.com/JustinWhittecar/bvengine/internal/models"
)

func main() {
	fs := pflag.NewFlagSet("verify-bv", pflag.ExitOnError)
	config.Flags(fs)
	published := fs.String("published", "", "CSV of published values to import first (name,bv[,mul_id])")
	out := fs.String("out", "bv-verification.csv", "CSV output file")
	fs.Parse(os.Args[1:])

	cfgPath, _ := fs.GetString("config")
	if err := config.Load(cfgPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := config.BindFlags(fs); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, err := config.Get()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel, os.Stderr)
	ctx := context.Background()

	conn, err := db.ConnectSQLite(cfg.DB.Path, false)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer conn.Close()

	results, err := db.NewResultsDB(ctx, conn)
	if err != nil {
		log.Fatal().Err(err).Msg("prepare result tables")
	}

	if *published != "" {
		n, err := importPublished(ctx, results, *published)
		if err != nil {
			log.Fatal().Err(err).Msg("import published values")
		}
		log.Info().Int("variants", n).Msg("published values imported")
	}

	c, err := catalog.LoadSQL(ctx, conn)
	if err != nil || c.Len() == 0 {
		log.Info().Msg("using built-in catalog")
		c = catalog.Builtin()
	}
	log.Info().Int("equipment", c.Len()).Msg("catalog ready")

	mtfIndex := buildMTFIndex(cfg.MTF.Root)
	log.Info().Int("files", len(mtfIndex)).Str("root", cfg.MTF.Root).Msg("indexed MTF files")

	variants, err := results.Variants(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("load variants")
	}
	log.Info().Int("variants", len(variants)).Msg("loaded variants")

	run := models.Run{ID: uuid.NewString(), StartedAt: time.Now(), Root: cfg.MTF.Root}
	rows, noMTF := verify(ctx, variants, mtfIndex, c, cfg.Workers, run.ID, log)
	run.FinishedAt = time.Now()
	run.Summary = models.Summarize(rows)

	printSummary(os.Stdout, len(variants), noMTF, run.Summary)

	sort.Slice(rows, func(i, j int) bool {
		if di, dj := absDiff(rows[i]), absDiff(rows[j]); di != dj {
			return di > dj
		}
		return rows[i].Name < rows[j].Name
	})
	if err := writeCSVFile(*out, rows); err != nil {
		log.Fatal().Err(err).Msg("write csv")
	}
	fmt.Printf("\nCSV written to %s\n", *out)
	printOutliers(os.Stdout, rows, 20)

	if err := results.SaveRun(ctx, run, rows); err != nil {
		log.Fatal().Err(err).Msg("save run")
	}
	log.Info().Str("run", run.ID).Int("results", len(rows)).Msg("run saved")

	if cfg.PG.Enabled {
		pool, err := db.ConnectPostgres(ctx, cfg.PG.DSN)
		if err != nil {
			log.Fatal().Err(err).Msg("connect postgres")
		}
		defer pool.Close()
		store := db.NewStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("postgres schema")
		}
		if err := store.SaveRun(ctx, run, rows); err != nil {
			log.Fatal().Err(err).Msg("export run")
		}
		log.Info().Str("run", run.ID).Msg("run exported to postgres")
	}
}

// verify calculates every variant that has an .mtf file. It returns the
// results and the number of variants without a file.
func verify(ctx context.Context, variants []models.Variant, index map[string]string, c *catalog.Catalog,
	workers int, runID string, log zerolog.Logger) ([]models.UnitResult, int) {
	var (
		mu    sync.Mutex
		rows  []models.UnitResult
		noMTF int
	)
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for _, v := range variants {
		path := findMTF(v.Chassis, v.ModelCode, index)
		if path == "" {
			noMTF++
			continue
		}
		v, path := v, path
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			row := verifyOne(v, path, c, runID)
			if row.Error != "" {
				log.Debug().Str("unit", v.Name).Str("error", row.Error).Msg("calculation failed")
			}
			mu.Lock()
			rows = append(rows, row)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("verification interrupted")
	}
	return rows, noMTF
}

func verifyOne(v models.Variant, path string, c *catalog.Catalog, runID string) models.UnitResult {
	pub := v.BattleValue
	// variant names are unique; unit IDs are not when variants share a file
	row := models.UnitResult{
		RunID:       runID,
		UnitID:      v.Name,
		Name:        v.Name,
		Kind:        bvcalc.KindMek.String(),
		TechBase:    v.TechBase,
		Era:         v.Era,
		SourcePath:  path,
		PublishedBV: &pub,
	}

	mtf, err := ingestion.ParseMTF(path)
	if err != nil {
		row.Error = err.Error()
		return row
	}
	u, err := ingestion.BuildUnit(mtf, c)
	var unknown *ingestion.UnknownEquipmentError
	if errors.As(err, &unknown) {
		row.Unknown = unknown.Names
	} else if err != nil {
		row.Error = err.Error()
		return row
	}

	// published values assume a 4/5 pilot and no force
	res := bvcalc.New(u).Calculate(true, false)
	row.Tonnage = u.Tonnage
	if row.TechBase == "" {
		row.TechBase = db.NormalizeTechBase(mtf.TechBase)
	}
	if row.Era == "" {
		row.Era = db.EraFromYear(mtf.Era)
	}
	row.CalculatedBV = res.BV
	row.BaseBV = res.BaseBV
	row.DefensiveValue = res.DefensiveValue
	row.OffensiveValue = res.OffensiveValue
	return row
}

func absDiff(r models.UnitResult) int {
	d, _ := r.Diff()
	if d < 0 {
		return -d
	}
	return d
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

func printSummary(w io.Writer, variants, noMTF int, s models.Summary) {
	fmt.Fprintf(w, "\n=== BV Verification Results ===\n")
	fmt.Fprintf(w, "Total variants: %d\n", variants)
	fmt.Fprintf(w, "MTF matched: %d\n", s.Total)
	fmt.Fprintf(w, "No MTF found: %d\n", noMTF)
	fmt.Fprintf(w, "Failed: %d\n", s.Failed)
	fmt.Fprintln(w)

	total := s.Compared
	fmt.Fprintf(w, "Exact match:  %d (%.1f%%)\n", s.Exact, pct(s.Exact, total))
	fmt.Fprintf(w, "Within ±1:    %d (%.1f%%)\n", s.Within1, pct(s.Within1, total))
	fmt.Fprintf(w, "Within ±5:    %d (%.1f%%)\n", s.Within5, pct(s.Within5, total))
	fmt.Fprintf(w, "Within ±10:   %d (%.1f%%)\n", s.Within10, pct(s.Within10, total))
	fmt.Fprintf(w, "Within ±50:   %d (%.1f%%)\n", s.Within50, pct(s.Within50, total))
	fmt.Fprintf(w, "Over ±50:     %d (%.1f%%)\n", s.Over50, pct(s.Over50, total))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Within 1%%:    %d (%.1f%%)\n", s.Within1Pct, pct(s.Within1Pct, total))
	fmt.Fprintf(w, "Within 5%%:    %d (%.1f%%)\n", s.Within5Pct, pct(s.Within5Pct, total))
	fmt.Fprintf(w, "Within 10%%:   %d (%.1f%%)\n", s.Within10Pct, pct(s.Within10Pct, total))
}

func printOutliers(w io.Writer, rows []models.UnitResult, n int) {
	fmt.Fprintf(w, "\n=== Top %d Outliers (by absolute diff) ===\n", n)
	for i, r := range rows {
		if i >= n {
			break
		}
		d, _ := r.Diff()
		pub := 0
		if r.PublishedBV != nil {
			pub = *r.PublishedBV
		}
		fmt.Fprintf(w, "%-40s pub=%4d calc=%4d diff=%+5d (%.1f%%) def=%.0f off=%.0f\n",
			r.Name, pub, r.CalculatedBV, d, r.PctDiff(), r.DefensiveValue, r.OffensiveValue)
	}
}

func writeCSVFile(path string, rows []models.UnitResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	if err := writeCSV(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeCSV(w io.Writer, rows []models.UnitResult) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"Name", "Published BV", "Calculated BV", "Diff", "Abs Diff", "Pct Diff",
		"Defensive BR", "Offensive BR", "MTF Path", "Unknown Equipment", "Error"})
	for _, r := range rows {
		d, _ := r.Diff()
		pub := ""
		if r.PublishedBV != nil {
			pub = strconv.Itoa(*r.PublishedBV)
		}
		cw.Write([]string{
			r.Name,
			pub,
			strconv.Itoa(r.CalculatedBV),
			strconv.Itoa(d),
			strconv.Itoa(absDiff(r)),
			fmt.Sprintf("%.1f", r.PctDiff()),
			fmt.Sprintf("%.1f", r.DefensiveValue),
			fmt.Sprintf("%.1f", r.OffensiveValue),
			r.SourcePath,
			strings.Join(r.Unknown, "; "),
			r.Error,
		})
	}
	cw.Flush()
	return cw.Error()
}

// importPublished loads name,bv[,mul_id] rows. A header row is skipped.
func importPublished(ctx context.Context, results *db.ResultsDB, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	records, err := readPublished(f)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	for _, v := range records {
		if err := results.UpsertVariant(ctx, v); err != nil {
			return 0, err
		}
	}
	return len(records), nil
}

func readPublished(r io.Reader) ([]models.Variant, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	var out []models.Variant
	for i, rec := range records {
		if len(rec) < 2 {
			continue
		}
		bv, err := strconv.Atoi(strings.TrimSpace(rec[1]))
		if err != nil {
			if i == 0 {
				continue
			}
			return nil, fmt.Errorf("line %d: bad bv %q", i+1, rec[1])
		}
		v := models.Variant{Name: strings.TrimSpace(rec[0]), BattleValue: bv}
		v.Chassis, v.ModelCode = splitName(v.Name)
		if len(rec) > 2 {
			if id, err := strconv.Atoi(strings.TrimSpace(rec[2])); err == nil {
				v.MulID = &id
			}
		}
		out = append(out, v)
	}
	return out, nil
}

// splitName splits "Atlas AS7-D" at the last space; model codes have none.
func splitName(name string) (chassis, model string) {
	if i := strings.LastIndex(name, " "); i > 0 {
		return name[:i], name[i+1:]
	}
	return name, ""
}

func buildMTFIndex(root string) map[string]string {
	index := make(map[string]string)
	filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(path), ".mtf") {
			return nil
		}
		key := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
		// first found wins
		if _, exists := index[key]; !exists {
			index[key] = path
		}
		return nil
	})
	return index
}

func findMTF(chassis, model string, index map[string]string) string {
	name := strings.TrimSpace(chassis + " " + model)
	if path, ok := index[strings.ToLower(name)]; ok {
		return path
	}
	if path, ok := index[strings.ToLower(strings.ReplaceAll(name, "'", ""))]; ok {
		return path
	}
	return ""
}
