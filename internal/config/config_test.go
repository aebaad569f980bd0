package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(""))

	c, err := Get()
	require.NoError(t, err)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 0, c.Workers)
	assert.Equal(t, "bv.db", c.DB.Path)
	assert.False(t, c.DB.ReadOnly)
	assert.Equal(t, "data/megamek-data/data/mekfiles/meks", c.MTF.Root)
	assert.False(t, c.PG.Enabled)
	assert.Equal(t, 4, c.Skill.Gunnery)
	assert.Equal(t, 5, c.Skill.Piloting)
	assert.Equal(t, "text", c.Report.Format)
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "bv.json")
	cfg := `{
		"logLevel": "debug",
		"db": { "path": "/data/bv.db", "readOnly": true },
		"skill": { "gunnery": 3 }
	}`
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0644))
	require.NoError(t, Load(path))

	c, err := Get()
	require.NoError(t, err)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, "/data/bv.db", c.DB.Path)
	assert.True(t, c.DB.ReadOnly)
	assert.Equal(t, 3, c.Skill.Gunnery)
	assert.Equal(t, 5, c.Skill.Piloting)
}

func TestLoad_YAML(t *testing.T) {
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "bv.yaml")
	require.NoError(t, os.WriteFile(path, []byte("report:\n  format: tsv\nworkers: 6\n"), 0644))
	require.NoError(t, Load(path))

	c, err := Get()
	require.NoError(t, err)
	assert.Equal(t, "tsv", c.Report.Format)
	assert.Equal(t, 6, c.Workers)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load("/nonexistent/bv.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("BV_DB_PATH", "/env/bv.db")
	t.Setenv("BV_PG_ENABLED", "true")

	require.NoError(t, Load(""))

	c, err := Get()
	require.NoError(t, err)
	assert.Equal(t, "/env/bv.db", c.DB.Path)
	assert.True(t, c.PG.Enabled)
}

func TestBindFlags(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("BV_SKILL_GUNNERY", "2")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	Flags(fs)
	require.NoError(t, fs.Parse([]string{"--skill.gunnery=1", "--report.format=tsv"}))

	require.NoError(t, Load(""))
	require.NoError(t, BindFlags(fs))

	c, err := Get()
	require.NoError(t, err)
	assert.Equal(t, 1, c.Skill.Gunnery, "flag beats env")
	assert.Equal(t, "tsv", c.Report.Format)
	assert.Equal(t, 5, c.Skill.Piloting)
}
