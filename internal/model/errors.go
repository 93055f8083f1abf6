package model

import "fmt"

// UnsupportedFormatError means the model format could not be resolved from
// the descriptor, the file extension, or the file contents. Terminal for
// that load attempt; never retried.
type UnsupportedFormatError struct {
	Path string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("model: unsupported format: %s", e.Path)
}

// InvalidGeometryError means the loaded geometry produced unusable bounds
// (non-finite coordinates or a non-positive extent). The model is never
// attached to the scene.
type InvalidGeometryError struct {
	Path   string
	Reason error
}

func (e *InvalidGeometryError) Error() string {
	return fmt.Sprintf("model: invalid geometry in %s: %v", e.Path, e.Reason)
}

func (e *InvalidGeometryError) Unwrap() error { return e.Reason }
