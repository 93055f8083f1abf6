package scanlib

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngMagic is enough for the sniffer to recognize a PNG.
var pngMagic = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func TestSaveUploadRejectsRecognizedFileTypes(t *testing.T) {
	l := NewLibrary(t.TempDir())

	_, err := l.SaveUpload(t.TempDir(), "sneaky.obj", bytes.NewReader(pngMagic))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a 3D model")
}

func TestSaveUploadRejectsEmpty(t *testing.T) {
	l := NewLibrary(t.TempDir())
	_, err := l.SaveUpload(t.TempDir(), "empty.obj", strings.NewReader(""))
	assert.Error(t, err)
}

func TestSaveUploadRejectsUnknownExtension(t *testing.T) {
	l := NewLibrary(t.TempDir())
	_, err := l.SaveUpload(t.TempDir(), "scan.stl", strings.NewReader("solid cube\n"))
	assert.Error(t, err)
}

func TestSaveUploadGLBMagicFallback(t *testing.T) {
	l := NewLibrary(t.TempDir())

	glb := append([]byte("glTF"), 2, 0, 0, 0, 16, 0, 0, 0)
	d, err := l.SaveUpload(t.TempDir(), "exported-scan", bytes.NewReader(glb))
	require.NoError(t, err)
	assert.Equal(t, "glb", d.Format)
	assert.True(t, strings.HasSuffix(d.ModelPath, ".glb"))
}

func TestSaveUploadAssignsUniqueIDs(t *testing.T) {
	l := NewLibrary(t.TempDir())
	dir := t.TempDir()

	a, err := l.SaveUpload(dir, "room.obj", strings.NewReader("v 0 0 0\n"))
	require.NoError(t, err)
	b, err := l.SaveUpload(dir, "room.obj", strings.NewReader("v 0 0 0\n"))
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEqual(t, a.ModelPath, b.ModelPath)
	assert.Len(t, l.List(), 2)
}
