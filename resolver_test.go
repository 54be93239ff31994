package mindlayout

import (
	"testing"

	"go.uber.org/zap"
)

// TestStackVerticalResolvesOverlap is scenario S5: five equal-size children
// stacked with a 10-unit vertical overlap each. After resolve they are
// exactly adjacent.
func TestStackVerticalResolvesOverlap(t *testing.T) {
	s := newNodeStore()
	parent, _ := s.insert("", NodeAttrs{})
	pn, _ := s.get(parent)
	pn.width, pn.height = 10, 10

	const childH = 40.0
	var ids []string
	for i := 0; i < 5; i++ {
		id, _ := s.insert(parent, NodeAttrs{})
		n, _ := s.get(id)
		n.width, n.height = 50, childH
		n.x = 0
		n.y = float64(i) * (childH - 10) // each overlaps the previous by 10
		ids = append(ids, id)
	}

	sp := spacing{}
	for i := 0; i < maxResolverIterations; i++ {
		if !resolveSubtree(s, sp, parent) {
			break
		}
	}

	for i := 1; i < len(ids); i++ {
		prev, _ := s.get(ids[i-1])
		cur, _ := s.get(ids[i])
		gap := cur.y - (prev.y + prev.height)
		if gap < -1e-9 {
			t.Fatalf("children %d and %d overlap: gap=%v", i-1, i, gap)
		}
	}
	first, _ := s.get(ids[0])
	last, _ := s.get(ids[len(ids)-1])
	totalHeight := (last.y + last.height) - first.y
	if totalHeight < 5*childH-1e-9 {
		t.Errorf("total height = %v, want >= %v", totalHeight, 5*childH)
	}

	bbox := boundingRectOf(s, sp, parent)
	if bbox.Height < 5*childH {
		t.Errorf("parent bbox height = %v, want >= %v", bbox.Height, 5*childH)
	}
}

func TestEnforceSideInvariantClampsChildren(t *testing.T) {
	s := newNodeStore()
	root, _ := s.insert("", NodeAttrs{})
	rn, _ := s.get(root)
	rn.x, rn.width = 0, 100 // spans [0, 100)

	left, _ := s.insert(root, NodeAttrs{Side: SideLeft})
	ln, _ := s.get(left)
	ln.x, ln.width = 50, 20 // overlaps into the root's span; must clamp left

	resolveChildrenOverlap(s, spacing{}, root)

	ln2, _ := s.get(left)
	if ln2.x+ln2.width > rn.x+1e-9 {
		t.Errorf("left child right edge = %v, want <= root.x (%v)", ln2.x+ln2.width, rn.x)
	}
}

func TestResolveRootsReportsUnconverged(t *testing.T) {
	s := newNodeStore()
	parent, _ := s.insert("", NodeAttrs{})
	pn, _ := s.get(parent)
	pn.width, pn.height = 10, 10

	// A single overlapping pair resolves in one pass; this just exercises
	// the convergence bookkeeping end-to-end without forcing a synthetic
	// non-convergent case.
	a, _ := s.insert(parent, NodeAttrs{})
	an, _ := s.get(a)
	an.width, an.height = 50, 50

	logger := zap.NewNop()
	unconverged := resolveRoots(s, spacing{}, []string{parent}, logger)
	if len(unconverged) != 0 {
		t.Errorf("expected convergence, got unconverged roots %v", unconverged)
	}
}
