package mindlayout

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// forestGraph adapts the node store's parent->child edges to
// gonum.org/v1/gonum/graph, used only by validateForest as a defense-in-
// depth acyclicity check distinct from the O(depth) walk move() performs.
type forestGraph struct {
	idOf    map[string]int64 // node id -> gonum node id
	byGonum map[int64]string // gonum node id -> node id
}

// buildForestGraph returns an *InvariantViolation instead of handing a
// self-edge to simple.DirectedGraph.SetEdge, which panics on F==T. A
// self-parent (id == cid) is itself a degenerate cycle, invariant-2's "no
// node is its own ancestor" violated in one step.
func buildForestGraph(s *nodeStore) (*simple.DirectedGraph, *forestGraph, error) {
	g := simple.NewDirectedGraph()
	fg := &forestGraph{
		idOf:    make(map[string]int64, len(s.nodes)),
		byGonum: make(map[int64]string, len(s.nodes)),
	}

	var seq int64
	for id := range s.nodes {
		fg.idOf[id] = seq
		fg.byGonum[seq] = id
		g.AddNode(simple.Node(seq))
		seq++
	}
	for id, n := range s.nodes {
		for _, cid := range n.children {
			if cid == id {
				return nil, nil, &InvariantViolation{Invariant: "no-cycle", NodeIDs: []string{id}, Detail: "node is its own parent"}
			}
			g.SetEdge(simple.Edge{F: simple.Node(fg.idOf[id]), T: simple.Node(fg.idOf[cid])})
		}
	}
	return g, fg, nil
}

// validateForest runs a topological sort over the store's parent->child
// edges and reports a cycle as an *InvariantViolation if the graph is not
// a DAG. This augments, and does not replace, the O(depth) cycle check
// move() performs on every mutation.
func validateForest(s *nodeStore) error {
	g, fg, err := buildForestGraph(s)
	if err != nil {
		return err
	}
	if _, err := topo.Sort(g); err != nil {
		if uo, ok := err.(topo.Unorderable); ok {
			var offending []string
			for _, cycle := range uo {
				for _, gn := range cycle {
					offending = append(offending, fg.byGonum[gn.ID()])
				}
			}
			return &InvariantViolation{Invariant: "no-cycle", NodeIDs: offending, Detail: "cycle detected in parent/child edges"}
		}
		return &InvariantViolation{Invariant: "no-cycle", Detail: err.Error()}
	}
	return nil
}
