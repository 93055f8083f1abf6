// Inspect prints the load-time facts about a model file: format,
// geometry counts, bounds, size class, and the rescale it would get in
// the viewer.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"roomscan-viewer/internal/model"
)

func main() {
	format := flag.String("format", "", "Force model format: obj, gltf, glb")
	noMaterials := flag.Bool("no-materials", false, "Skip material and texture resolution")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: inspect [flags] <model-file>...")
		flag.PrintDefaults()
		os.Exit(1)
	}

	failed := 0
	for _, path := range flag.Args() {
		if err := inspect(path, *format, !*noMaterials); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func inspect(path, format string, withMaterials bool) error {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	m, err := model.Load(path, name, format, withMaterials)
	if err != nil {
		return err
	}

	verts, tris := 0, 0
	for _, msh := range m.Meshes {
		verts += len(msh.Verts)
		tris += len(msh.Tris)
	}

	fmt.Printf("%s\n", path)
	fmt.Printf("  meshes:    %d (%d verts, %d tris)\n", len(m.Meshes), verts, tris)
	fmt.Printf("  textures:  %d\n", len(m.Textures))
	fmt.Printf("  original:  max dimension %.3f\n", m.OriginalMax)
	fmt.Printf("  class:     %s\n", m.SizeClass)
	if m.RescaleFactor != 1 {
		fmt.Printf("  rescaled:  x%.2f → max dimension %.3f\n", m.RescaleFactor, m.Bounds.MaxDimension)
	}
	fmt.Printf("  size:      %.3f x %.3f x %.3f\n", m.Bounds.Size[0], m.Bounds.Size[1], m.Bounds.Size[2])
	return nil
}
