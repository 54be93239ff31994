package mindlayout

import (
	"math"
	"sort"

	"go.uber.org/zap"
)

// maxResolverIterations bounds the overlap resolver's work per root
// sub-tree.
const maxResolverIterations = 10

// resolveRoots runs the global pass restricted to the
// given set of root identifiers, used both for a full-forest resolve
// (global pass) and for the incremental pass (restricted to the roots of
// the dirty node set). Returns the subset of roots that hit the iteration
// cap without converging, for which the caller should emit
// convergence-warning events.
func resolveRoots(s *nodeStore, sp spacing, roots []string, log *zap.Logger) []string {
	var unconverged []string
	for _, rootID := range roots {
		if _, ok := s.nodes[rootID]; !ok {
			continue
		}
		converged := false
		iter := 0
		for ; iter < maxResolverIterations; iter++ {
			if !resolveSubtree(s, sp, rootID) {
				converged = true
				break
			}
		}
		if !converged {
			unconverged = append(unconverged, rootID)
			log.Warn("overlap resolver hit iteration cap",
				zap.String("root", rootID), zap.Int("max_iterations", maxResolverIterations))
		}
	}
	return unconverged
}

// resolveSubtree recursively resolves id's descendants bottom-up (so a
// parent's sibling-placement step always sees already-settled child
// bounding rectangles), then resolves overlaps among id's own children.
// Returns whether anything moved.
func resolveSubtree(s *nodeStore, sp spacing, id string) bool {
	n, ok := s.nodes[id]
	if !ok {
		return false
	}
	changed := false
	for _, cid := range n.children {
		if resolveSubtree(s, sp, cid) {
			changed = true
		}
	}
	if resolveChildrenOverlap(s, sp, id) {
		changed = true
	}
	return changed
}

// resolveChildrenOverlap arranges id's direct children so no two sibling
// sub-trees overlap (invariant (5)) and, for a root's depth-1 children,
// so the side invariant (invariant (6)) holds. Returns whether any child
// moved.
func resolveChildrenOverlap(s *nodeStore, sp spacing, parentID string) bool {
	n := s.nodes[parentID]
	if n.collapsed || len(n.children) == 0 {
		return false
	}
	changed := false
	if n.parentID == "" {
		left, right := splitBySide(s, n.children)
		if enforceSideInvariant(s, n, left, true) {
			changed = true
		}
		if enforceSideInvariant(s, n, right, false) {
			changed = true
		}
		if stackVertical(s, sp, left) {
			changed = true
		}
		if stackVertical(s, sp, right) {
			changed = true
		}
	} else {
		ordered := orderedCopy(s, n.children)
		if stackVertical(s, sp, ordered) {
			changed = true
		}
	}
	if changed {
		n.bboxCacheValid = false
	}
	return changed
}

// splitBySide partitions a root's direct children into its left and right
// groups, each ordered by `order`. A child with Side unset is treated as
// right (an Open Question decision — see DESIGN.md).
func splitBySide(s *nodeStore, ids []string) (left, right []string) {
	for _, id := range ids {
		n := s.nodes[id]
		if n.side == SideLeft {
			left = append(left, id)
		} else {
			right = append(right, id)
		}
	}
	sortByOrder(s, left)
	sortByOrder(s, right)
	return left, right
}

func orderedCopy(s *nodeStore, ids []string) []string {
	out := append([]string(nil), ids...)
	sortByOrder(s, out)
	return out
}

func sortByOrder(s *nodeStore, ids []string) {
	sort.SliceStable(ids, func(i, j int) bool { return s.nodes[ids[i]].order < s.nodes[ids[j]].order })
}

// enforceSideInvariant clamps each child in group so its NODE rectangle
// (not its inflated sub-tree bbox) satisfies invariant (6): left children
// end at or before the root's left edge, right children start at or after
// the root's right edge. The whole sub-tree is translated rigidly so
// descendants keep their relative arrangement.
func enforceSideInvariant(s *nodeStore, root *node, group []string, isLeft bool) bool {
	changed := false
	for _, id := range group {
		cn := s.nodes[id]
		var dx float64
		if isLeft {
			limit := root.x
			right := cn.x + cn.width
			if right > limit {
				dx = limit - right
			}
		} else {
			limit := root.x + root.width
			if cn.x < limit {
				dx = limit - cn.x
			}
		}
		if dx != 0 {
			shiftSubtreeRigid(s, id, dx, 0)
			changed = true
		}
	}
	return changed
}

// stackVertical lays out ids (already order-sorted, already placed in the
// correct horizontal half) top-to-bottom with no overlap: each id's
// bounding rectangle is compared against the union of previously placed
// rectangles, and shifted by the minimum vertical displacement that clears
// the overlap. Ties between shifting up and down favor down.
func stackVertical(s *nodeStore, sp spacing, ids []string) bool {
	if len(ids) == 0 {
		return false
	}
	changed := false
	placed := make([]Rect, 0, len(ids))
	for i, id := range ids {
		r := boundingRectOf(s, sp, id)
		if i > 0 {
			union := unionAll(placed)
			if r.Intersects(union) {
				dy := verticalClearShift(r, union)
				shiftSubtreeRigid(s, id, 0, dy)
				r = r.translate(0, dy)
				changed = true
			}
		}
		placed = append(placed, r)
	}
	return changed
}

// verticalClearShift returns the signed vertical displacement that moves
// candidate just clear of union, preferring the smaller-magnitude move and
// breaking ties downward.
func verticalClearShift(candidate, union Rect) float64 {
	down := union.Bottom() - candidate.Y
	up := -(candidate.Bottom() - union.Y)
	if math.Abs(down) <= math.Abs(up) {
		return down
	}
	return up
}

// shiftSubtreeRigid translates id and every descendant by (dx, dy),
// preserving the sub-tree's internal arrangement. A rigid translation
// translates every cached bounding rectangle in the sub-tree by the same
// delta, so valid caches are updated in place rather than invalidated —
// translating a rectangle is cheaper than, and yields the identical result
// to, recomputing its union from scratch.
func shiftSubtreeRigid(s *nodeStore, id string, dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	n, ok := s.nodes[id]
	if !ok {
		return
	}
	n.x += dx
	n.y += dy
	if n.bboxCacheValid {
		n.bboxCache = n.bboxCache.translate(dx, dy)
	}
	for _, cid := range n.children {
		shiftSubtreeRigid(s, cid, dx, dy)
	}
}

// restrictedStackVertical is the "smart affected-side detection" narrowing
// heuristic used after drag-end: overlap is still
// checked against the full sibling set, but only siblings whose id is in
// movable are allowed to shift. This narrows the *sweep*, not the
// correctness check — any sibling outside movable that would still
// overlap is left for the caller to fall back to a full resolveRoots pass.
func restrictedStackVertical(s *nodeStore, sp spacing, ids []string, movable map[string]bool) (changed bool, fullyResolved bool) {
	if len(ids) == 0 {
		return false, true
	}
	placed := make([]Rect, 0, len(ids))
	fullyResolved = true
	for i, id := range ids {
		r := boundingRectOf(s, sp, id)
		if i > 0 {
			union := unionAll(placed)
			if r.Intersects(union) {
				if !movable[id] {
					fullyResolved = false
					placed = append(placed, r)
					continue
				}
				dy := verticalClearShift(r, union)
				shiftSubtreeRigid(s, id, 0, dy)
				r = r.translate(0, dy)
				changed = true
			}
		}
		placed = append(placed, r)
	}
	return changed, fullyResolved
}
