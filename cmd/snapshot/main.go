// Headless one-shot renderer: load a scan, play the entrance fly-in to
// its settled pose, and write a WebP. Useful for thumbnails and for
// checking a model without running the server.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"roomscan-viewer/internal/scanlib"
	"roomscan-viewer/internal/texture"
	"roomscan-viewer/internal/viewer"
)

func main() {
	output := flag.String("o", "", "Output path (default: <model>.webp)")
	size := flag.Int("size", 640, "Output image size in pixels")
	supersample := flag.Int("ss", 2, "Supersampling factor")
	format := flag.String("format", "", "Force model format: obj, gltf, glb")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: snapshot [flags] <model-file>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	modelPath := flag.Arg(0)

	stem := strings.TrimSuffix(filepath.Base(modelPath), filepath.Ext(modelPath))
	outPath := *output
	if outPath == "" {
		outPath = stem + ".webp"
	}

	desc := scanlib.Descriptor{
		ID:           stem,
		DisplayName:  stem,
		ModelPath:    modelPath,
		Format:       *format,
		HasMaterials: true,
	}

	v := viewer.New(texture.NewCache(), *size, *supersample)
	defer v.Dispose()

	now := time.Now()
	if err := v.LoadModel(desc, now); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", modelPath, err)
		os.Exit(1)
	}
	v.Step(now.Add(time.Hour)) // jump past the fly-in

	webp, err := v.Screenshot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(outPath, webp, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}

	m := v.Current()
	fmt.Printf("%s: %s, %d mesh(es), max dimension %.2f → %s (%d bytes)\n",
		stem, m.SizeClass, len(m.Meshes), m.OriginalMax, outPath, len(webp))
}
