package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"roomscan-viewer/internal/analysis"
	"roomscan-viewer/internal/config"
	"roomscan-viewer/internal/preview"
	"roomscan-viewer/internal/scanlib"
	"roomscan-viewer/internal/server"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	listenAddr := flag.String("listen", "", "Listen address (default: :8080)")
	scansDir := flag.String("scans", "", "Scans directory (default: scans/)")
	workers := flag.Int("workers", 0, "Preview worker goroutines (default: NumCPU)")
	noPreviews := flag.Bool("no-previews", false, "Skip preview generation at startup")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		ScansDir:   *scansDir,
		ListenAddr: *listenAddr,
		Workers:    *workers,
	})

	if err := os.MkdirAll(cfg.ScansDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating scans dir: %v\n", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating upload dir: %v\n", err)
		os.Exit(1)
	}

	// Discover scans
	library := scanlib.NewLibrary(cfg.ScansDir)
	if err := library.Refresh(); err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning %s: %v\n", cfg.ScansDir, err)
		os.Exit(1)
	}
	scans := library.List()

	fmt.Printf("Room Scan Viewer\n")
	fmt.Printf("Scans: %d, Listen: %s\n", len(scans), cfg.ListenAddr)
	fmt.Println("------------------------------------------------------------")

	// Keep the catalog in sync with the directory.
	ctx := context.Background()
	go func() {
		if err := library.Watch(ctx); err != nil && ctx.Err() == nil {
			fmt.Fprintf(os.Stderr, "Warning: scan watcher stopped: %v\n", err)
		}
	}()

	// Pregenerate previews in the background so startup stays fast.
	if !*noPreviews && len(scans) > 0 {
		go func() {
			start := time.Now()
			results := preview.Run(preview.Config{
				OutputDir:   cfg.PreviewDir,
				PreviewSize: cfg.PreviewSize,
				Supersample: cfg.Supersample,
				Workers:     cfg.Workers,
			}, scans)

			success, failed := 0, 0
			for _, r := range results {
				if r.Success {
					success++
				} else {
					failed++
					fmt.Fprintf(os.Stderr, "Warning: preview %s: %s\n", r.ID, r.Error)
				}
			}
			fmt.Printf("Previews: %d/%d in %.1fs\n", success, len(results), time.Since(start).Seconds())

			manifestPath := filepath.Join(cfg.PreviewDir, "manifest.json")
			if err := preview.WriteManifest(manifestPath, results); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
			}
		}()
	}

	client := analysis.NewClient(analysis.Config{
		Endpoint:      cfg.Analysis.Endpoint,
		APIKey:        cfg.Analysis.APIKey,
		Model:         cfg.Analysis.Model,
		Timeout:       time.Duration(cfg.Analysis.TimeoutSec) * time.Second,
		MaxImageBytes: cfg.Analysis.MaxImageBytes,
	})

	srv := server.New(cfg, library, client)
	if err := srv.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
