package scanlib

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/h2non/filetype"
)

// maxUploadBytes caps a single uploaded model file.
const maxUploadBytes = 200 << 20

// SaveUpload stores an uploaded model file under uploadDir and registers
// it in the library. The content is sniffed first: files that are
// recognizably something else (images, archives, media) are rejected
// before any bytes hit disk.
func (l *Library) SaveUpload(uploadDir, filename string, r io.Reader) (Descriptor, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxUploadBytes+1))
	if err != nil {
		return Descriptor{}, fmt.Errorf("scanlib: read upload: %w", err)
	}
	if len(data) > maxUploadBytes {
		return Descriptor{}, fmt.Errorf("scanlib: upload exceeds %d bytes", maxUploadBytes)
	}
	if len(data) == 0 {
		return Descriptor{}, fmt.Errorf("scanlib: empty upload")
	}

	if kind, _ := filetype.Match(data); kind != filetype.Unknown {
		// Model formats are unknown to the sniffer; anything it does
		// recognize (png, zip, mp4, ...) is not a scan.
		return Descriptor{}, fmt.Errorf("scanlib: %q is a %s file, not a 3D model", filename, kind.Extension)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	format, ok := modelExts[ext]
	if !ok {
		// Fall back to the GLB container magic for extensionless uploads.
		if len(data) >= 4 && string(data[:4]) == "glTF" {
			format, ext = "glb", ".glb"
		} else {
			return Descriptor{}, fmt.Errorf("scanlib: unsupported upload type %q", filename)
		}
	}

	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return Descriptor{}, fmt.Errorf("scanlib: create upload dir: %w", err)
	}

	id := "upload-" + uuid.NewString()
	path := filepath.Join(uploadDir, id+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return Descriptor{}, fmt.Errorf("scanlib: write upload: %w", err)
	}

	d := Descriptor{
		ID:          id,
		DisplayName: displayName(filename),
		ModelPath:   path,
		Format:      format,
		Uploaded:    true,
	}
	l.addUpload(d)
	return d, nil
}
