package mesh

// Triangle holds index triples into the vertex/normal/texcoord arrays of its Mesh.
type Triangle struct {
	VI [3]int
	NI [3]int
	TI [3]int
}

// Mesh holds geometry for one renderable sub-mesh of a loaded model.
// Verts are mutable: centering and visibility rescaling rewrite them in place.
type Mesh struct {
	Verts   [][3]float32
	Normals [][3]float32
	UVs     [][2]float32
	Tris    []Triangle

	// TexPath is the resolved filesystem path of the diffuse texture,
	// or "" for untextured meshes.
	TexPath string

	// Diffuse is the material base color used when no texture is present,
	// linear RGB in [0,1].
	Diffuse [3]float64
}
