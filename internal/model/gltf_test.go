package model

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTriangleGLTF emits a minimal non-indexed glTF: one triangle with a
// data-URI buffer, spanning a unit extent on every axis.
func writeTriangleGLTF(t *testing.T) string {
	t.Helper()

	verts := [][3]float32{{0, 0, 0}, {1, 0, 0.5}, {0.5, 1, 1}}
	buf := make([]byte, 0, len(verts)*12)
	for _, v := range verts {
		for _, c := range v {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(c))
		}
	}

	doc := fmt.Sprintf(`{
  "asset": {"version": "2.0"},
  "buffers": [{"byteLength": %d, "uri": "data:application/octet-stream;base64,%s"}],
  "bufferViews": [{"buffer": 0, "byteOffset": 0, "byteLength": %d}],
  "accessors": [{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3",
    "min": [0, 0, 0], "max": [1, 1, 1]}],
  "meshes": [{"primitives": [{"attributes": {"POSITION": 0}}]}],
  "materials": [{"pbrMetallicRoughness": {"baseColorFactor": [0.2, 0.8, 0.3, 1.0]}}]
}`, len(buf), base64.StdEncoding.EncodeToString(buf), len(buf))

	path := filepath.Join(t.TempDir(), "tri.gltf")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
	return path
}

func TestLoadGLTFTriangle(t *testing.T) {
	m, err := Load(writeTriangleGLTF(t), "tri", "", false)
	require.NoError(t, err)

	require.Len(t, m.Meshes, 1)
	assert.Len(t, m.Meshes[0].Verts, 3)
	// Non-indexed geometry gets a synthesized sequential index list.
	require.Len(t, m.Meshes[0].Tris, 1)
	assert.Equal(t, [3]int{0, 1, 2}, m.Meshes[0].Tris[0].VI)

	assert.InDelta(t, 1.0, m.OriginalMax, 1e-5)
	assert.Equal(t, SizeSmall, m.SizeClass)
}

func TestLoadGLTFMissingPosition(t *testing.T) {
	doc := `{
  "asset": {"version": "2.0"},
  "meshes": [{"primitives": [{"attributes": {}}]}]
}`
	path := filepath.Join(t.TempDir(), "bad.gltf")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	_, err := Load(path, "bad", "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POSITION")
}
