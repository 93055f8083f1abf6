// Package scanlib maintains the catalog of browsable room scans: models
// discovered in the scans directory plus user uploads.
package scanlib

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Descriptor identifies one loadable scan.
type Descriptor struct {
	ID           string `json:"id"`
	DisplayName  string `json:"displayName"`
	ModelPath    string `json:"-"`
	Format       string `json:"format"`
	HasMaterials bool   `json:"hasMaterials"`
	Uploaded     bool   `json:"uploaded"`
}

// Library is the concurrency-safe scan catalog. Refresh rescans the
// watched directory; uploads are added directly and survive refreshes.
type Library struct {
	mu       sync.RWMutex
	scansDir string
	scans    map[string]Descriptor
	uploads  map[string]Descriptor
}

var modelExts = map[string]string{
	".obj":  "obj",
	".gltf": "gltf",
	".glb":  "glb",
}

// NewLibrary creates a library over scansDir. Call Refresh to populate it.
func NewLibrary(scansDir string) *Library {
	return &Library{
		scansDir: scansDir,
		scans:    make(map[string]Descriptor),
		uploads:  make(map[string]Descriptor),
	}
}

// Refresh walks the scans directory and rebuilds the discovered set.
func (l *Library) Refresh() error {
	found := make(map[string]Descriptor)

	err := filepath.WalkDir(l.scansDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		format, ok := modelExts[strings.ToLower(filepath.Ext(path))]
		if !ok {
			return nil
		}
		rel, err := filepath.Rel(l.scansDir, path)
		if err != nil {
			rel = filepath.Base(path)
		}
		id := slugify(rel)
		found[id] = Descriptor{
			ID:           id,
			DisplayName:  displayName(path),
			ModelPath:    path,
			Format:       format,
			HasMaterials: hasSiblingMTL(path, format),
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scanlib: walk %s: %w", l.scansDir, err)
	}

	l.mu.Lock()
	l.scans = found
	l.mu.Unlock()
	return nil
}

// List returns all known scans, discovered first, each group sorted by
// display name.
func (l *Library) List() []Descriptor {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Descriptor, 0, len(l.scans)+len(l.uploads))
	for _, d := range l.scans {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })

	ups := make([]Descriptor, 0, len(l.uploads))
	for _, d := range l.uploads {
		ups = append(ups, d)
	}
	sort.Slice(ups, func(i, j int) bool { return ups[i].DisplayName < ups[j].DisplayName })

	return append(out, ups...)
}

// Get looks up a scan by ID.
func (l *Library) Get(id string) (Descriptor, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if d, ok := l.scans[id]; ok {
		return d, true
	}
	d, ok := l.uploads[id]
	return d, ok
}

func (l *Library) addUpload(d Descriptor) {
	l.mu.Lock()
	l.uploads[d.ID] = d
	l.mu.Unlock()
}

// hasSiblingMTL reports whether an OBJ has a same-stem material file
// next to it.
func hasSiblingMTL(path, format string) bool {
	if format != "obj" {
		return false
	}
	mtl := strings.TrimSuffix(path, filepath.Ext(path)) + ".mtl"
	_, err := os.Stat(mtl)
	return err == nil
}

// displayName derives a human-readable name from the file stem.
func displayName(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	stem = strings.NewReplacer("_", " ", "-", " ").Replace(stem)
	return strings.TrimSpace(stem)
}

// slugify turns a relative path into a stable URL-safe ID.
func slugify(rel string) string {
	s := strings.ToLower(filepath.ToSlash(rel))
	s = strings.TrimSuffix(s, filepath.Ext(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
