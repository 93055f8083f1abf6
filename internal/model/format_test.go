package model

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestResolveFormatDeclaredWins(t *testing.T) {
	// Declared format overrides a contradicting extension.
	f, err := ResolveFormat("model.obj", "glb")
	require.NoError(t, err)
	assert.Equal(t, FormatGLB, f)

	f, err = ResolveFormat("whatever.bin", ".gltf")
	require.NoError(t, err)
	assert.Equal(t, FormatGLTF, f)
}

func TestResolveFormatByExtension(t *testing.T) {
	for ext, want := range map[string]Format{
		".obj":  FormatOBJ,
		".OBJ":  FormatOBJ,
		".gltf": FormatGLTF,
		".glb":  FormatGLB,
	} {
		f, err := ResolveFormat("scan"+ext, "")
		require.NoError(t, err)
		assert.Equal(t, want, f, ext)
	}
}

func TestResolveFormatSniff(t *testing.T) {
	glb := writeFile(t, "scan.bin", []byte("glTF\x02\x00\x00\x00rest"))
	f, err := ResolveFormat(glb, "")
	require.NoError(t, err)
	assert.Equal(t, FormatGLB, f)

	gltf := writeFile(t, "scan.model", []byte(`{"asset":{"version":"2.0"}}`))
	f, err = ResolveFormat(gltf, "")
	require.NoError(t, err)
	assert.Equal(t, FormatGLTF, f)

	obj := writeFile(t, "scan.dat", []byte("# comment\nv 0 0 0\nv 1 0 0\n"))
	f, err = ResolveFormat(obj, "")
	require.NoError(t, err)
	assert.Equal(t, FormatOBJ, f)
}

func TestResolveFormatUnsupported(t *testing.T) {
	junk := writeFile(t, "scan.xyz", []byte("PK\x03\x04 not a model"))
	_, err := ResolveFormat(junk, "")
	require.Error(t, err)

	var ufe *UnsupportedFormatError
	assert.True(t, errors.As(err, &ufe))
	assert.Equal(t, junk, ufe.Path)
}
