package model

import (
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"

	"roomscan-viewer/internal/mesh"
)

// loadGLTF parses a glTF or GLB file into one mesh per primitive.
// Both formats share the same document model; gltf.Open resolves
// external buffers for .gltf and the embedded chunk for .glb.
func loadGLTF(path string) ([]mesh.Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("model: open %s: %w", path, err)
	}

	var out []mesh.Mesh
	for _, gm := range doc.Meshes {
		for _, prim := range gm.Primitives {
			m, err := primitiveMesh(doc, prim, filepath.Dir(path))
			if err != nil {
				return nil, fmt.Errorf("model: %s: %w", path, err)
			}
			if len(m.Tris) > 0 {
				out = append(out, m)
			}
		}
	}
	return out, nil
}

func primitiveMesh(doc *gltf.Document, prim *gltf.Primitive, dir string) (mesh.Mesh, error) {
	m := mesh.Mesh{Diffuse: [3]float64{0.63, 0.63, 0.67}}

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return m, fmt.Errorf("primitive has no POSITION attribute")
	}
	pos, err := readVec3Accessor(doc, int(posIdx))
	if err != nil {
		return m, err
	}
	m.Verts = pos

	if normIdx, ok := prim.Attributes["NORMAL"]; ok {
		if norms, err := readVec3Accessor(doc, int(normIdx)); err == nil {
			m.Normals = norms
		}
	}
	if uvIdx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		if uvs, err := readVec2Accessor(doc, int(uvIdx)); err == nil {
			m.UVs = uvs
		}
	}

	indices, err := readIndices(doc, prim, len(pos))
	if err != nil {
		return m, err
	}
	for i := 0; i+2 < len(indices); i += 3 {
		tri := mesh.Triangle{}
		for j := 0; j < 3; j++ {
			idx := int(indices[i+j])
			tri.VI[j] = idx
			if len(m.UVs) > 0 {
				tri.TI[j] = idx
			} else {
				tri.TI[j] = -1
			}
			if len(m.Normals) > 0 {
				tri.NI[j] = idx
			} else {
				tri.NI[j] = -1
			}
		}
		m.Tris = append(m.Tris, tri)
	}

	applyMaterial(doc, prim, dir, &m)
	return m, nil
}

// applyMaterial copies the base color factor and, for external image URIs,
// the base color texture path. Embedded (bufferView) textures are skipped;
// the mesh then renders with its base color.
func applyMaterial(doc *gltf.Document, prim *gltf.Primitive, dir string, m *mesh.Mesh) {
	if prim.Material == nil || int(*prim.Material) >= len(doc.Materials) {
		return
	}
	mat := doc.Materials[*prim.Material]
	pbr := mat.PBRMetallicRoughness
	if pbr == nil {
		return
	}
	if pbr.BaseColorFactor != nil {
		f := *pbr.BaseColorFactor
		m.Diffuse = [3]float64{float64(f[0]), float64(f[1]), float64(f[2])}
	}
	if pbr.BaseColorTexture == nil {
		return
	}
	texIdx := int(pbr.BaseColorTexture.Index)
	if texIdx >= len(doc.Textures) || doc.Textures[texIdx].Source == nil {
		return
	}
	imgIdx := int(*doc.Textures[texIdx].Source)
	if imgIdx >= len(doc.Images) {
		return
	}
	uri := doc.Images[imgIdx].URI
	if uri == "" || strings.HasPrefix(uri, "data:") {
		return
	}
	m.TexPath = filepath.Join(dir, filepath.FromSlash(uri))
}

// accessorBytes returns the raw byte window and stride for an accessor.
func accessorBytes(doc *gltf.Document, idx int, elemSize int) ([]byte, int, int, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, 0, 0, fmt.Errorf("accessor %d out of range", idx)
	}
	acc := doc.Accessors[idx]
	if acc.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor %d has no buffer view", idx)
	}
	bv := doc.BufferViews[*acc.BufferView]
	buf := doc.Buffers[bv.Buffer]

	stride := int(bv.ByteStride)
	if stride == 0 {
		stride = elemSize
	}
	start := int(bv.ByteOffset) + int(acc.ByteOffset)
	end := int(bv.ByteOffset) + int(bv.ByteLength)
	if start > len(buf.Data) || end > len(buf.Data) {
		return nil, 0, 0, fmt.Errorf("accessor %d exceeds buffer", idx)
	}
	return buf.Data[start:end], stride, int(acc.Count), nil
}

func readVec3Accessor(doc *gltf.Document, idx int) ([][3]float32, error) {
	data, stride, count, err := accessorBytes(doc, idx, 12)
	if err != nil {
		return nil, err
	}
	out := make([][3]float32, 0, count)
	for i := 0; i < count; i++ {
		off := i * stride
		if off+12 > len(data) {
			break
		}
		out = append(out, [3]float32{
			math.Float32frombits(binary.LittleEndian.Uint32(data[off:])),
			math.Float32frombits(binary.LittleEndian.Uint32(data[off+4:])),
			math.Float32frombits(binary.LittleEndian.Uint32(data[off+8:])),
		})
	}
	return out, nil
}

func readVec2Accessor(doc *gltf.Document, idx int) ([][2]float32, error) {
	data, stride, count, err := accessorBytes(doc, idx, 8)
	if err != nil {
		return nil, err
	}
	out := make([][2]float32, 0, count)
	for i := 0; i < count; i++ {
		off := i * stride
		if off+8 > len(data) {
			break
		}
		out = append(out, [2]float32{
			math.Float32frombits(binary.LittleEndian.Uint32(data[off:])),
			math.Float32frombits(binary.LittleEndian.Uint32(data[off+4:])),
		})
	}
	return out, nil
}

// readIndices returns the primitive's index list, synthesizing a sequential
// one for non-indexed geometry.
func readIndices(doc *gltf.Document, prim *gltf.Primitive, vertCount int) ([]uint32, error) {
	if prim.Indices == nil {
		out := make([]uint32, vertCount)
		for i := range out {
			out[i] = uint32(i)
		}
		return out, nil
	}

	idx := int(*prim.Indices)
	acc := doc.Accessors[idx]

	var elemSize int
	switch acc.ComponentType {
	case gltf.ComponentUbyte:
		elemSize = 1
	case gltf.ComponentUshort:
		elemSize = 2
	case gltf.ComponentUint:
		elemSize = 4
	default:
		return nil, fmt.Errorf("unsupported index component type %v", acc.ComponentType)
	}

	data, stride, count, err := accessorBytes(doc, idx, elemSize)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, 0, count)
	for i := 0; i < count; i++ {
		off := i * stride
		if off+elemSize > len(data) {
			break
		}
		switch elemSize {
		case 1:
			out = append(out, uint32(data[off]))
		case 2:
			out = append(out, uint32(binary.LittleEndian.Uint16(data[off:])))
		case 4:
			out = append(out, binary.LittleEndian.Uint32(data[off:]))
		}
	}
	return out, nil
}
