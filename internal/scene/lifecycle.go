package scene

// Clear tears down everything except the persistent grid and lights
// before a new model is attached. For each removed model node it drops
// the geometry buffers and releases every referenced texture exactly
// once, then sweeps any stray node a loader may have introduced, and
// finally purges the texture cache so nothing is reused across unrelated
// models. Skipping any of these is a leak, not a style choice.
func (s *Scene) Clear() {
	kept := s.Nodes[:0]
	for _, n := range s.Nodes {
		if n.Kind == NodeGrid {
			kept = append(kept, n)
			continue
		}
		if n.Model != nil {
			for _, tex := range n.Model.Textures {
				s.Textures.Release(tex)
			}
			n.Model.Meshes = nil
			n.Model = nil
		}
	}
	s.Nodes = kept
	s.Textures.Purge()
}
