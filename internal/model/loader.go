package model

import (
	"fmt"

	"roomscan-viewer/internal/mesh"
)

// Model is a loaded, centered, visibility-rescaled scan ready to attach
// to a scene. OriginalMax is the max bounding-box dimension measured
// before rescaling; it is the value handed to the camera's
// SetReferenceSize and is never re-derived from scaled bounds.
type Model struct {
	Name   string
	Meshes []mesh.Mesh

	Bounds        mesh.Bounds // post-centering, post-rescale
	OriginalMax   float64
	SizeClass     SizeClass
	RescaleFactor float64

	// Textures lists each referenced texture path exactly once,
	// for release on scene teardown.
	Textures []string
}

// IsSmall reports whether the entrance animation should use the
// near-ground pose pair.
func (m *Model) IsSmall() bool { return m.SizeClass == SizeSmall }

// Load reads, validates, and normalizes the model at path.
//
// Pipeline: resolve format → parse geometry (+materials, best-effort) →
// compute original bounds (terminal InvalidGeometryError on failure) →
// center at the origin → classify size from the original max dimension →
// rescale small models into the visible range.
func Load(path, name, declaredFormat string, withMaterials bool) (*Model, error) {
	format, err := ResolveFormat(path, declaredFormat)
	if err != nil {
		return nil, err
	}

	var meshes []mesh.Mesh
	switch format {
	case FormatOBJ:
		meshes, err = loadOBJ(path, withMaterials)
	case FormatGLTF, FormatGLB:
		meshes, err = loadGLTF(path)
	default:
		return nil, &UnsupportedFormatError{Path: path}
	}
	if err != nil {
		return nil, err
	}

	bounds, err := mesh.ComputeBounds(meshes)
	if err != nil {
		return nil, &InvalidGeometryError{Path: path, Reason: err}
	}

	mesh.Translate(meshes, bounds.Center.Scale(-1))

	originalMax := bounds.MaxDimension
	class := ClassifySize(originalMax)
	factor := RescaleFactor(originalMax)
	if factor != 1 {
		mesh.Rescale(meshes, factor)
	}

	final, err := mesh.ComputeBounds(meshes)
	if err != nil {
		// Centering and uniform scaling cannot degenerate valid bounds.
		return nil, &InvalidGeometryError{Path: path, Reason: fmt.Errorf("post-normalize: %w", err)}
	}

	return &Model{
		Name:          name,
		Meshes:        meshes,
		Bounds:        final,
		OriginalMax:   originalMax,
		SizeClass:     class,
		RescaleFactor: factor,
		Textures:      collectTextures(meshes),
	}, nil
}

func collectTextures(meshes []mesh.Mesh) []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range meshes {
		if m.TexPath != "" && !seen[m.TexPath] {
			seen[m.TexPath] = true
			out = append(out, m.TexPath)
		}
	}
	return out
}
