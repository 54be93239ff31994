package mindlayout

import "testing"

func TestBoundingRectOfLeaf(t *testing.T) {
	s := newNodeStore()
	root, _ := s.insert("", NodeAttrs{})
	n, _ := s.get(root)
	n.width, n.height = 50, 20

	r := boundingRectOf(s, spacing{}, root)
	want := Rect{X: 0, Y: 0, Width: 50, Height: 20}
	if r != want {
		t.Errorf("boundingRectOf leaf = %+v, want %+v", r, want)
	}
}

func TestBoundingRectOfUnionsChildren(t *testing.T) {
	s := newNodeStore()
	root, _ := s.insert("", NodeAttrs{})
	child, _ := s.insert(root, NodeAttrs{})

	rn, _ := s.get(root)
	rn.width, rn.height = 10, 10
	cn, _ := s.get(child)
	cn.x, cn.y, cn.width, cn.height = 100, 100, 10, 10

	r := boundingRectOf(s, spacing{}, root)
	want := Rect{X: 0, Y: 0, Width: 110, Height: 110}
	if r != want {
		t.Errorf("boundingRectOf = %+v, want %+v", r, want)
	}
}

func TestBoundingRectOfCollapsedExcludesChildren(t *testing.T) {
	s := newNodeStore()
	root, _ := s.insert("", NodeAttrs{})
	child, _ := s.insert(root, NodeAttrs{})

	rn, _ := s.get(root)
	rn.width, rn.height = 10, 10
	rn.collapsed = true
	cn, _ := s.get(child)
	cn.x, cn.y, cn.width, cn.height = 100, 100, 10, 10

	r := boundingRectOf(s, spacing{}, root)
	want := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	if r != want {
		t.Errorf("collapsed boundingRectOf = %+v, want %+v", r, want)
	}
}

func TestBoundingRectOfRootSideCollapse(t *testing.T) {
	s := newNodeStore()
	root, _ := s.insert("", NodeAttrs{})
	rn, _ := s.get(root)
	rn.width, rn.height = 10, 10
	rn.collapsedLeft = true

	left, _ := s.insert(root, NodeAttrs{Side: SideLeft})
	ln, _ := s.get(left)
	ln.x, ln.y, ln.width, ln.height = -500, -500, 10, 10

	right, _ := s.insert(root, NodeAttrs{Side: SideRight})
	rg, _ := s.get(right)
	rg.x, rg.y, rg.width, rg.height = 100, 100, 10, 10

	r := boundingRectOf(s, spacing{}, root)
	if r.Contains(-495, -495) {
		t.Error("collapsed-left child should not contribute to the bounding rect")
	}
	if !r.ContainsRect(Rect{X: 100, Y: 100, Width: 10, Height: 10}) {
		t.Error("non-collapsed right child should still contribute")
	}
}

func TestBoundingRectOfCachesResult(t *testing.T) {
	s := newNodeStore()
	root, _ := s.insert("", NodeAttrs{})
	rn, _ := s.get(root)
	rn.width, rn.height = 10, 10

	_ = boundingRectOf(s, spacing{}, root)
	if !rn.bboxCacheValid {
		t.Fatal("expected cache to be populated")
	}
	rn.x = 9999 // mutate without invalidating
	r := boundingRectOf(s, spacing{}, root)
	if r.X == 9999 {
		t.Error("expected stale cache to be served, not recomputed")
	}
}

func TestInflateSpacingAppliesToLeaf(t *testing.T) {
	s := newNodeStore()
	root, _ := s.insert("", NodeAttrs{})
	rn, _ := s.get(root)
	rn.width, rn.height = 10, 10

	r := boundingRectOf(s, spacing{horizontal: 5, vertical: 2}, root)
	want := Rect{X: -5, Y: -2, Width: 20, Height: 14}
	if r != want {
		t.Errorf("inflated boundingRectOf = %+v, want %+v", r, want)
	}
}
