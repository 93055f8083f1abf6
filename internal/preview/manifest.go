package preview

import (
	"encoding/json"
	"os"
)

// ManifestEntry records one generated preview.
type ManifestEntry struct {
	ID    string `json:"id"`
	Image string `json:"image"`
}

// WriteManifest writes manifest.json next to the generated previews so
// the scan browser can map scans to thumbnails without listing the dir.
func WriteManifest(path string, results []Result) error {
	var entries []ManifestEntry
	for _, r := range results {
		if r.Success {
			entries = append(entries, ManifestEntry{ID: r.ID, Image: r.ID + ".webp"})
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
