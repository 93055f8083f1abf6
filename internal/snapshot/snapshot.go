// Package snapshot encodes rendered frames as WebP stills for streaming
// to the browser and for handing to the vision analysis service.
package snapshot

import (
	"bytes"
	"fmt"
	"image"

	"github.com/HugoSmits86/nativewebp"
)

// EncodeWebP compresses a rendered frame to WebP.
func EncodeWebP(img *image.NRGBA) ([]byte, error) {
	var buf bytes.Buffer
	if err := nativewebp.Encode(&buf, img, nil); err != nil {
		return nil, fmt.Errorf("snapshot: webp encode: %w", err)
	}
	return buf.Bytes(), nil
}
