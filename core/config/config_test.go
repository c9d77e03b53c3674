package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Pipeline.Workers)
	assert.Equal(t, 500, cfg.Pipeline.LimitTotal)
	assert.Equal(t, []string{"2v2", "3v3"}, cfg.Pipeline.BracketList())
	assert.Equal(t, []string{"3v3", "2v2"}, cfg.Pipeline.PriorityList())
	assert.Equal(t, "us", cfg.API.Region)
	assert.Equal(t, 10, cfg.API.TimeoutSeconds)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "redshift", cfg.Warehouse.Dialect)
	assert.Equal(t, "landing", cfg.Storage.LandingPrefix)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PIPELINE_WORKERS", "3")
	t.Setenv("PIPELINE_BRACKET_PRIORITY", " 2v2 , 3v3 ,")
	t.Setenv("API_REGION", "eu")
	t.Setenv("API_ACCESS_TOKEN", "static-token")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Pipeline.Workers)
	assert.Equal(t, []string{"2v2", "3v3"}, cfg.Pipeline.PriorityList())
	assert.Equal(t, "eu", cfg.API.Region)
	assert.Equal(t, "static-token", cfg.API.AccessToken)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a"}, splitList(" a ,,"))
}
