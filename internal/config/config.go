// Package config loads settings from defaults, an optional config file,
// BV_ environment variables and command-line flags, in rising priority.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the resolved configuration shared by the command-line tools.
type Config struct {
	LogLevel string `mapstructure:"logLevel"`
	Workers  int    `mapstructure:"workers"`

	DB struct {
		Path     string `mapstructure:"path"`
		ReadOnly bool   `mapstructure:"readOnly"`
	} `mapstructure:"db"`

	MTF struct {
		Root string `mapstructure:"root"`
	} `mapstructure:"mtf"`

	PG struct {
		DSN     string `mapstructure:"dsn"`
		Enabled bool   `mapstructure:"enabled"`
	} `mapstructure:"pg"`

	Skill struct {
		Gunnery  int `mapstructure:"gunnery"`
		Piloting int `mapstructure:"piloting"`
	} `mapstructure:"skill"`

	Report struct {
		Format string `mapstructure:"format"`
	} `mapstructure:"report"`
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("workers", 0)

	viper.SetDefault("db.path", "bv.db")
	viper.SetDefault("db.readOnly", false)

	viper.SetDefault("mtf.root", "data/megamek-data/data/mekfiles/meks")

	viper.SetDefault("pg.dsn", "")
	viper.SetDefault("pg.enabled", false)

	viper.SetDefault("skill.gunnery", 4)
	viper.SetDefault("skill.piloting", 5)

	viper.SetDefault("report.format", "text")
}

// Load sets defaults, environment overrides and, when path is not empty,
// reads the config file at path. A named file that cannot be read is an
// error.
func Load(path string) error {
	setDefaults()

	viper.SetEnvPrefix("BV")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if path == "" {
		return nil
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// Flags declares the shared flags on fs. Flag names match config keys.
func Flags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (json or yaml)")
	fs.String("logLevel", "info", "log level (debug, info, warn, error)")
	fs.Int("workers", 0, "concurrent calculations (0 = GOMAXPROCS)")
	fs.String("db.path", "bv.db", "sqlite database")
	fs.String("mtf.root", "data/megamek-data/data/mekfiles/meks", "directory of .mtf files")
	fs.String("pg.dsn", "", "postgres connection string")
	fs.Bool("pg.enabled", false, "export results to postgres")
	fs.Int("skill.gunnery", 4, "default gunnery skill")
	fs.Int("skill.piloting", 5, "default piloting skill")
	fs.String("report.format", "text", "report format (text, tsv)")
}

// BindFlags makes flags the user set on fs override every other source.
func BindFlags(fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Name == "config" {
			return
		}
		if !f.Changed {
			return
		}
		if bindErr := viper.BindPFlag(f.Name, f); bindErr != nil {
			err = fmt.Errorf("bind flag %s: %w", f.Name, bindErr)
		}
	})
	return err
}

// Get decodes the current settings.
func Get() (Config, error) {
	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}
