package mindlayout

// ViewModel is the engine's output snapshot: an ordered list of visible
// nodes, an ordered list of badges, the reference edges whose endpoints
// are both visible, the revision that produced it, and the current
// dynamic zoom ceiling. A ViewModel is a value; mutating a copy never
// affects engine state.
type ViewModel struct {
	Nodes    []VisibleNode
	Badges   []Badge
	Edges    []Edge
	Revision uint64
	MaxZoom  float64
}

// buildViewModel runs LOD filtering against the current forest and
// viewport state and assembles the outward-facing snapshot. refEdges is
// the document's reference-edge list (hierarchy edges are not separately
// emitted — they are implied by each VisibleNode's ParentID).
func buildViewModel(s *nodeStore, settings LayoutSettings, sp spacing, zoom float64, selected map[string]bool, refEdges []Edge, revision uint64) *ViewModel {
	nodes, badges := lodFilter(s, settings, sp, zoom, selected)

	visibleSet := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		visibleSet[n.ID] = true
	}

	var edges []Edge
	for _, e := range refEdges {
		if visibleSet[e.FromID] && visibleSet[e.ToID] {
			edges = append(edges, e)
		}
	}

	maxDepth := s.maxDepth()
	thresholds := extendThresholdsForDepth(settings.LodThresholds, maxDepth+1, DefaultLodStep)

	return &ViewModel{
		Nodes:    nodes,
		Badges:   badges,
		Edges:    edges,
		Revision: revision,
		MaxZoom:  maxZoomFor(thresholds, DefaultLodStep),
	}
}
