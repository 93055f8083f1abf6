package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Config holds all configurable paths, render settings, and the analysis
// service coordinates.
type Config struct {
	// Paths
	ScansDir   string `json:"scans_dir"`
	UploadDir  string `json:"upload_dir"`
	PreviewDir string `json:"preview_dir"`

	// Server
	ListenAddr string `json:"listen_addr"`

	// Render settings
	RenderSize  int `json:"render_size"`
	Supersample int `json:"supersample"`
	PreviewSize int `json:"preview_size"`
	FrameRate   int `json:"frame_rate"`
	Workers     int `json:"workers"`

	// Analysis service
	Analysis AnalysisConfig `json:"analysis"`
}

// AnalysisConfig configures the external vision service. The API key may
// also come from the ROOMSCAN_ANALYSIS_KEY environment variable, which
// wins over the file so keys stay out of checked-in configs.
type AnalysisConfig struct {
	Endpoint      string `json:"endpoint"`
	APIKey        string `json:"api_key"`
	Model         string `json:"model"`
	TimeoutSec    int    `json:"timeout_sec"`
	MaxImageBytes int    `json:"max_image_bytes"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	ScansDir   string
	ListenAddr string
	RenderSize int
	Workers    int
}

// Resolve fills in any empty fields with defaults. CLI flags take
// priority when non-zero/non-empty; the env API key wins over the file.
func (c *Config) Resolve(flags Flags) {
	if flags.ScansDir != "" {
		c.ScansDir = flags.ScansDir
	}
	if flags.ListenAddr != "" {
		c.ListenAddr = flags.ListenAddr
	}
	if flags.RenderSize > 0 {
		c.RenderSize = flags.RenderSize
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.ScansDir == "" {
		c.ScansDir = "scans"
	}
	if c.UploadDir == "" {
		c.UploadDir = filepath.Join(c.ScansDir, "uploads")
	}
	if c.PreviewDir == "" {
		c.PreviewDir = filepath.Join(c.ScansDir, "previews")
	}
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.RenderSize <= 0 {
		c.RenderSize = 640
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.PreviewSize <= 0 {
		c.PreviewSize = 256
	}
	if c.FrameRate <= 0 {
		c.FrameRate = 30
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Analysis.TimeoutSec <= 0 {
		c.Analysis.TimeoutSec = 30
	}
	if c.Analysis.MaxImageBytes <= 0 {
		c.Analysis.MaxImageBytes = 4 << 20
	}
	if key := os.Getenv("ROOMSCAN_ANALYSIS_KEY"); key != "" {
		c.Analysis.APIKey = key
	}
}
