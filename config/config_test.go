package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, OrderVerticalFirst, cfg.Order)
	assert.Equal(t, "sobel", cfg.Energy)
	assert.Equal(t, RecomputeLocal, cfg.Recompute)
	assert.Equal(t, 95, cfg.JPEGQuality)
	assert.NoError(t, cfg.Validate())
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ConfigFileName)

	cfg := Default()
	cfg.Order = OrderAlternate
	cfg.Workers = 2
	cfg.ProgressInterval = time.Second
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"energy": "gradient"}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gradient", cfg.Energy)
	assert.Equal(t, OrderVerticalFirst, cfg.Order)
	assert.Equal(t, 4, cfg.Workers)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.True(t, os.IsNotExist(err))

	corrupt := filepath.Join(dir, "corrupt.json")
	require.NoError(t, os.WriteFile(corrupt, []byte("{not json"), 0644))
	_, err = Load(corrupt)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"order": "diagonal"}`), 0644))
	_, err = Load(invalid)
	assert.ErrorContains(t, err, "unknown order")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad recompute", func(c *Config) { c.Recompute = "sometimes" }},
		{"empty energy", func(c *Config) { c.Energy = "" }},
		{"quality too high", func(c *Config) { c.JPEGQuality = 101 }},
		{"no workers", func(c *Config) { c.Workers = 0 }},
		{"faces without cascade", func(c *Config) { c.FaceProtect = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
