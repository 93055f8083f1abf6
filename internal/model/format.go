package model

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies a supported model file format.
type Format string

const (
	FormatOBJ  Format = "obj"
	FormatGLTF Format = "gltf"
	FormatGLB  Format = "glb"
)

// glbMagic is the first four bytes of every binary glTF container.
var glbMagic = []byte("glTF")

// ResolveFormat determines the format of the model at path.
// Resolution order: explicit declared format, file extension, content sniff.
// Returns an UnsupportedFormatError when none of the three resolves.
func ResolveFormat(path, declared string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(declared, ".")) {
	case "obj":
		return FormatOBJ, nil
	case "gltf":
		return FormatGLTF, nil
	case "glb":
		return FormatGLB, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return FormatOBJ, nil
	case ".gltf":
		return FormatGLTF, nil
	case ".glb":
		return FormatGLB, nil
	}

	if f, ok := SniffFormat(path); ok {
		return f, nil
	}
	return "", &UnsupportedFormatError{Path: path}
}

// SniffFormat inspects the file's leading bytes: GLB containers carry a
// fixed magic, glTF is a JSON document with an asset key, and OBJ is a
// line-oriented text format.
func SniffFormat(path string) (Format, bool) {
	head := make([]byte, 512)
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()
	n, _ := f.Read(head)
	head = head[:n]

	if bytes.HasPrefix(head, glbMagic) {
		return FormatGLB, true
	}
	trimmed := bytes.TrimLeft(head, " \t\r\n")
	if bytes.HasPrefix(trimmed, []byte("{")) && bytes.Contains(head, []byte(`"asset"`)) {
		return FormatGLTF, true
	}
	for _, line := range bytes.Split(head, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.HasPrefix(line, []byte("v ")) || bytes.HasPrefix(line, []byte("o ")) ||
			bytes.HasPrefix(line, []byte("mtllib ")) || bytes.HasPrefix(line, []byte("g ")) {
			return FormatOBJ, true
		}
		break
	}
	return "", false
}
