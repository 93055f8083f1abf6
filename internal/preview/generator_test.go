package preview

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomscan-viewer/internal/scanlib"
)

const boxOBJ = `v -0.5 -0.5 -0.5
v 0.5 -0.5 -0.5
v 0.5 0.5 -0.5
v -0.5 0.5 -0.5
v -0.5 -0.5 0.5
v 0.5 0.5 0.5
f 1 2 3 4
f 1 5 6 3
`

func seedScan(t *testing.T, id string) scanlib.Descriptor {
	t.Helper()
	path := filepath.Join(t.TempDir(), id+".obj")
	require.NoError(t, os.WriteFile(path, []byte(boxOBJ), 0644))
	return scanlib.Descriptor{ID: id, DisplayName: id, ModelPath: path, Format: "obj"}
}

func TestRunGeneratesPreviews(t *testing.T) {
	outDir := t.TempDir()
	scans := []scanlib.Descriptor{seedScan(t, "alpha"), seedScan(t, "beta")}

	results := Run(Config{OutputDir: outDir, PreviewSize: 32, Supersample: 1, Workers: 2}, scans)
	require.Len(t, results, 2)

	for _, r := range results {
		assert.True(t, r.Success, r.Error)
		data, err := os.ReadFile(filepath.Join(outDir, r.ID+".webp"))
		require.NoError(t, err)
		assert.Equal(t, "RIFF", string(data[0:4]))
	}
}

func TestRunSkipsUpToDatePreviews(t *testing.T) {
	outDir := t.TempDir()
	scan := seedScan(t, "alpha")
	// Age the model file so the generated preview is unambiguously newer.
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(scan.ModelPath, old, old))

	results := Run(Config{OutputDir: outDir, PreviewSize: 32, Workers: 1}, []scanlib.Descriptor{scan})
	require.True(t, results[0].Success)

	outPath := filepath.Join(outDir, "alpha.webp")
	info, err := os.Stat(outPath)
	require.NoError(t, err)

	// Second run must not rewrite the file.
	results = Run(Config{OutputDir: outDir, PreviewSize: 32, Workers: 1}, []scanlib.Descriptor{scan})
	require.True(t, results[0].Success)
	info2, err := os.Stat(outPath)
	require.NoError(t, err)
	assert.Equal(t, info.ModTime(), info2.ModTime())
}

func TestRunReportsBrokenScans(t *testing.T) {
	outDir := t.TempDir()
	bad := scanlib.Descriptor{ID: "bad", ModelPath: filepath.Join(t.TempDir(), "missing.obj"), Format: "obj"}

	results := Run(Config{OutputDir: outDir, PreviewSize: 32, Workers: 1}, []scanlib.Descriptor{bad})
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.NotEmpty(t, results[0].Error)
}

func TestWriteManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, WriteManifest(path, []Result{
		{ID: "a", Success: true},
		{ID: "b", Success: false, Error: "boom"},
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"a.webp"`)
	assert.NotContains(t, string(data), `"b.webp"`)
}
