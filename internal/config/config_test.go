package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})

	assert.Equal(t, "scans", cfg.ScansDir)
	assert.Equal(t, filepath.Join("scans", "uploads"), cfg.UploadDir)
	assert.Equal(t, filepath.Join("scans", "previews"), cfg.PreviewDir)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 640, cfg.RenderSize)
	assert.Equal(t, 2, cfg.Supersample)
	assert.Equal(t, 256, cfg.PreviewSize)
	assert.Equal(t, 30, cfg.FrameRate)
	assert.Greater(t, cfg.Workers, 0)
	assert.Equal(t, 30, cfg.Analysis.TimeoutSec)
	assert.Equal(t, 4<<20, cfg.Analysis.MaxImageBytes)
}

func TestResolveFlagsOverrideFile(t *testing.T) {
	cfg := Config{ScansDir: "/from/file", ListenAddr: ":9000", RenderSize: 512}
	cfg.Resolve(Flags{ScansDir: "/from/flag", RenderSize: 320})

	assert.Equal(t, "/from/flag", cfg.ScansDir)
	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, 320, cfg.RenderSize)
	// Derived paths follow the overridden scans dir.
	assert.Equal(t, filepath.Join("/from/flag", "uploads"), cfg.UploadDir)
}

func TestResolveEnvKeyWinsOverFile(t *testing.T) {
	t.Setenv("ROOMSCAN_ANALYSIS_KEY", "env-secret")
	cfg := Config{Analysis: AnalysisConfig{APIKey: "file-secret"}}
	cfg.Resolve(Flags{})
	assert.Equal(t, "env-secret", cfg.Analysis.APIKey)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"scans_dir": "/data/scans",
		"render_size": 800,
		"analysis": {"endpoint": "https://vision.example", "model": "v1"}
	}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/scans", cfg.ScansDir)
	assert.Equal(t, 800, cfg.RenderSize)
	assert.Equal(t, "https://vision.example", cfg.Analysis.Endpoint)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
