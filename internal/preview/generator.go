// Package preview pregenerates WebP thumbnails for the scan browser,
// one per discovered scan, using a worker pool so a large scan library
// doesn't stall server startup.
package preview

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"roomscan-viewer/internal/scanlib"
	"roomscan-viewer/internal/texture"
	"roomscan-viewer/internal/viewer"
)

// Config holds shared resources for a generation run.
type Config struct {
	OutputDir   string
	PreviewSize int
	Supersample int
	Workers     int
}

// Result holds the outcome of generating one preview.
type Result struct {
	ID      string
	Path    string
	Success bool
	Error   string
}

// Run generates previews for all scans using a worker pool. Existing
// up-to-date previews are skipped.
func Run(cfg Config, scans []scanlib.Descriptor) []Result {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return []Result{{Error: fmt.Sprintf("create %s: %v", cfg.OutputDir, err)}}
	}

	total := len(scans)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					fmt.Printf("  previews [%d/%d] %.1f/sec\n", p, total, float64(p)/elapsed)
				}
			}
		}
	}()

	// Worker pool
	scanChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range scanChan {
				results[idx] = generateOne(cfg, scans[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range scans {
		scanChan <- i
	}
	close(scanChan)

	wg.Wait()
	close(done)

	return results
}

// generateOne renders a single scan's preview: a dedicated headless
// viewer plays the entrance fly-in to completion, then the settled view
// is encoded.
func generateOne(cfg Config, desc scanlib.Descriptor) Result {
	outPath := filepath.Join(cfg.OutputDir, desc.ID+".webp")

	// Skip previews newer than the model file.
	if mi, err := os.Stat(desc.ModelPath); err == nil {
		if pi, err := os.Stat(outPath); err == nil && pi.ModTime().After(mi.ModTime()) {
			return Result{ID: desc.ID, Path: outPath, Success: true}
		}
	}

	v := viewer.New(texture.NewCache(), cfg.PreviewSize, cfg.Supersample)
	defer v.Dispose()

	now := time.Now()
	if err := v.LoadModel(desc, now); err != nil {
		return Result{ID: desc.ID, Error: err.Error()}
	}
	v.Step(now.Add(time.Hour)) // jump straight to the settled pose

	webp, err := v.Screenshot()
	if err != nil {
		return Result{ID: desc.ID, Error: err.Error()}
	}
	if err := os.WriteFile(outPath, webp, 0644); err != nil {
		return Result{ID: desc.ID, Error: err.Error()}
	}
	return Result{ID: desc.ID, Path: outPath, Success: true}
}
