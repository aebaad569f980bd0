package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/JustinWhittecar/bvengine/internal/catalog"
	"github.com/JustinWhittecar/bvengine/internal/config"
	"github.com/JustinWhittecar/bvengine/internal/db"
	"github.com/JustinWhittecar/bvengine/internal/ingestion"
	"github.com/JustinWhittecar/bvengine/internal/logging"
)

// Equipment is one entry of the --input file. Entries replace built-in
// equipment with the same internal name.
type Equipment struct {
	ingestion.TypeFile
	LookupNames []string `json:"lookup_names"`
}

func readEquipment(path string) ([]Equipment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var items []Equipment
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return items, nil
}

func main() {
	fs := pflag.NewFlagSet("seed-catalog", pflag.ExitOnError)
	config.Flags(fs)
	input := fs.String("input", "", "extra equipment JSON file")
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

	c := catalog.Builtin()
	if *input != "" {
		items, err := readEquipment(*input)
		if err != nil {
			log.Fatal().Err(err).Msg("load equipment")
		}
		for _, it := range items {
			t, err := it.EquipmentType()
			if err != nil {
				log.Error().Err(err).Str("name", it.Name).Msg("skip equipment")
				continue
			}
			c.Add(t, it.LookupNames...)
		}
		log.Info().Int("entries", len(items)).Str("input", *input).Msg("loaded extra equipment")
	}

	conn, err := db.ConnectSQLite(cfg.DB.Path, false)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer conn.Close()

	if err := catalog.Seed(context.Background(), conn, c); err != nil {
		log.Fatal().Err(err).Msg("seed catalog")
	}
	log.Info().Int("equipment", c.Len()).Str("db", cfg.DB.Path).Msg("catalog seeded")
}
