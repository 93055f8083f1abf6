package scene

import (
	"roomscan-viewer/internal/model"
	"roomscan-viewer/internal/texture"
)

// NodeKind distinguishes the persistent grid node from model content.
type NodeKind int

const (
	NodeModel NodeKind = iota
	NodeGrid
)

// Node is one entry in the scene graph. Model nodes own their geometry;
// the grid node is procedural and persists across model switches.
type Node struct {
	Name  string
	Kind  NodeKind
	Model *model.Model // nil for the grid node
}

// Scene holds the node list, the fixed light rig, and the shared texture
// cache. One Scene per viewer instance.
type Scene struct {
	Nodes       []*Node
	Lights      []*Light
	Preset      Preset
	GridVisible bool

	Textures *texture.Cache
}

// New builds a scene containing only the persistent grid node and the
// default light rig under the normal preset.
func New(cache *texture.Cache) *Scene {
	return &Scene{
		Nodes:       []*Node{{Name: "grid", Kind: NodeGrid}},
		Lights:      defaultLights(),
		Preset:      PresetNormal,
		GridVisible: true,
		Textures:    cache,
	}
}

// ApplyPreset sets every light's intensity to the preset's fixed value
// for that light's role. Pure function of (preset, role); idempotent.
func (s *Scene) ApplyPreset(p Preset) {
	for _, l := range s.Lights {
		l.Intensity = PresetIntensity(p, l.Role)
	}
	s.Preset = p
}

// AttachModel adds a loaded model to the scene graph.
func (s *Scene) AttachModel(m *model.Model) *Node {
	n := &Node{Name: m.Name, Kind: NodeModel, Model: m}
	s.Nodes = append(s.Nodes, n)
	return n
}

// ModelNode returns the current model node, or nil if none is attached.
func (s *Scene) ModelNode() *Node {
	for _, n := range s.Nodes {
		if n.Kind == NodeModel {
			return n
		}
	}
	return nil
}
