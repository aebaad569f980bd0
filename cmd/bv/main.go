package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/JustinWhittecar/bvengine/internal/bvcalc"
	"github.com/JustinWhittecar/bvengine/internal/catalog"
	"github.com/JustinWhittecar/bvengine/internal/config"
	"github.com/JustinWhittecar/bvengine/internal/db"
	"github.com/JustinWhittecar/bvengine/internal/force"
	"github.com/JustinWhittecar/bvengine/internal/ingestion"
	"github.com/JustinWhittecar/bvengine/internal/logging"
	"github.com/JustinWhittecar/bvengine/internal/report"
)

func usage(fs *pflag.FlagSet) func() {
	return func() {
		fmt.Fprintf(os.Stderr, "Usage: bv [flags] <unit.mtf|unit.json>...\n\n")
		fmt.Fprintf(os.Stderr, "Units given together form one force, so TAG and C3 bonuses apply between them.\n\n")
		fs.PrintDefaults()
	}
}

// openCatalog prefers a seeded sqlite catalog and falls back to the
// built-in equipment.
func openCatalog(ctx context.Context, path string, log zerolog.Logger) *catalog.Catalog {
	if _, err := os.Stat(path); err != nil {
		return catalog.Builtin()
	}
	conn, err := db.ConnectSQLite(path, true)
	if err != nil {
		log.Warn().Err(err).Msg("using built-in catalog")
		return catalog.Builtin()
	}
	defer conn.Close()

	c, err := catalog.LoadSQL(ctx, conn)
	if err != nil || c.Len() == 0 {
		log.Warn().Err(err).Str("db", path).Msg("using built-in catalog")
		return catalog.Builtin()
	}
	log.Debug().Int("equipment", c.Len()).Str("db", path).Msg("catalog loaded")
	return c
}

func render(w io.Writer, format string, r *report.Report) error {
	switch format {
	case "tsv":
		return report.WriteTSV(w, r)
	case "text", "":
		return report.WriteText(w, r)
	}
	return fmt.Errorf("unknown report format %q", format)
}

func main() {
	fs := pflag.NewFlagSet("bv", pflag.ExitOnError)
	config.Flags(fs)
	ignoreSkill := fs.Bool("ignore-skill", false, "leave the skill multiplier out")
	ignoreForce := fs.Bool("ignore-force-bonuses", false, "skip TAG and C3 bonuses")
	fs.Usage = usage(fs)
	fs.Parse(os.Args[1:])

	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(2)
	}

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

	c := openCatalog(ctx, cfg.DB.Path, log)

	session := force.NewSession()
	for _, path := range fs.Args() {
		u, err := ingestion.LoadUnit(path, c)
		if errors.Is(err, ingestion.ErrUnknownEquipment) {
			log.Warn().Err(err).Str("file", path).Msg("unknown equipment ignored")
		} else if err != nil {
			log.Fatal().Err(err).Str("file", path).Msg("load unit")
		}
		// .mtf files carry no pilot
		if u.Crew != nil && strings.EqualFold(filepath.Ext(path), ".mtf") {
			u.Crew.Gunnery, u.Crew.Piloting = cfg.Skill.Gunnery, cfg.Skill.Piloting
		}
		session.Add(u)
	}

	for i, u := range session.Units() {
		r := report.New()
		bvcalc.New(u, bvcalc.WithGame(session), bvcalc.WithLogger(log)).
			CalculateReport(*ignoreForce, *ignoreSkill, r)
		if i > 0 {
			fmt.Println()
		}
		if err := render(os.Stdout, cfg.Report.Format, r); err != nil {
			log.Fatal().Err(err).Msg("write report")
		}
	}

	if session.Len() > 1 {
		var opts []force.Option
		if *ignoreForce {
			opts = append(opts, force.WithoutForceBonuses())
		}
		if *ignoreSkill {
			opts = append(opts, force.WithoutSkill())
		}
		scorer, err := force.NewScorer(append(opts, force.WithWorkers(cfg.Workers), force.WithLogger(log))...)
		if err != nil {
			log.Fatal().Err(err).Msg("create scorer")
		}
		scores, err := scorer.Score(ctx, session)
		if err != nil {
			log.Fatal().Err(err).Msg("score force")
		}
		fmt.Printf("\nForce total: %d BV (%d units)\n", force.Total(scores), len(scores))
	}
}
