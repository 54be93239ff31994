package mindlayout

// AddNode inserts a new node under parentID ("" for a new root) and
// returns its generated identifier. Emits node-created.
func (e *Engine) AddNode(parentID string, attrs NodeAttrs) (string, error) {
	id, err := e.store.insert(parentID, attrs)
	if err != nil {
		return "", err
	}
	e.settle(EventNodeCreated, []string{id}, "")
	return id, nil
}

// UpdateNode applies patch to id's attributes. Emits node-updated; emits
// node-side-changed in addition, before view-model-updated, when patch.Side
// changes a depth-1 child's side.
func (e *Engine) UpdateNode(id string, patch NodePatch) error {
	n, ok := e.store.get(id)
	if !ok {
		return errNodeNotFound(id)
	}
	oldSide := n.side
	if err := e.store.update(id, patch); err != nil {
		return err
	}
	var extra []Event
	if patch.Side != nil && *patch.Side != oldSide {
		extra = append(extra, Event{Kind: EventNodeSideChanged, NodeIDs: []string{id}, OldSide: oldSide, NewSide: *patch.Side})
	}
	e.settle(EventNodeUpdated, []string{id}, "", extra...)
	return nil
}

// MoveNode reparents id to newParentID ("" for a root; id's current parent
// to renumber only) and, when newOrder is non-nil, places it at that index
// within its sibling group. Fails with
// a cycle error, leaving the forest unchanged, if newParentID is id or a
// descendant of id.
func (e *Engine) MoveNode(id, newParentID string, newOrder *int) error {
	n, ok := e.store.get(id)
	if !ok {
		return errNodeNotFound(id)
	}
	reparented := n.parentID != newParentID
	if err := e.store.move(id, newParentID, newOrder); err != nil {
		return err
	}
	kind := EventNodeMoved
	if reparented {
		kind = EventNodeReparented
	}
	e.settle(kind, []string{id}, "")
	return nil
}

// DeleteNode removes id. If cascade, id's whole sub-tree is removed;
// otherwise id's children are reparented to id's former parent in place.
func (e *Engine) DeleteNode(id string, cascade bool) error {
	if err := e.store.delete(id, cascade); err != nil {
		return err
	}
	delete(e.selected, id)
	e.settle(EventNodeDeleted, []string{id}, "")
	return nil
}

// ReorderSiblings atomically reassigns order within the sibling group
// named by parentID. mapping must cover every sibling with a contiguous
// 0..k-1 permutation.
func (e *Engine) ReorderSiblings(parentID string, mapping map[string]int) error {
	if err := e.store.reorderSiblings(parentID, mapping); err != nil {
		return err
	}
	ids := make([]string, 0, len(mapping))
	for id := range mapping {
		ids = append(ids, id)
	}
	e.settle(EventSiblingsReordered, ids, "")
	return nil
}

// Select replaces the selection set and emits node-selected (single id)
// or nodes-selected (multiple), without mutating the forest.
func (e *Engine) Select(ids []string) {
	e.selected = make(map[string]bool, len(ids))
	for _, id := range ids {
		e.selected[id] = true
	}
	kind := EventNodesSelected
	if len(ids) == 1 {
		kind = EventNodeSelected
	}
	rev := e.nextRevision()
	e.bus.emit(Event{Kind: kind, Revision: rev, Source: "engine", NodeIDs: append([]string(nil), ids...)})
	vm := e.currentViewModel()
	vm.Revision = rev
	e.bus.emit(Event{Kind: EventViewModelUpdated, Revision: rev, Source: "engine", ViewModel: vm})
}

// SetActiveView switches the document's active view and emits
// view-changed. The engine does not interpret view names beyond carrying
// them through.
func (e *Engine) SetActiveView(name string) {
	e.settings.ActiveView = name
	rev := e.nextRevision()
	e.bus.emit(Event{Kind: EventViewChanged, Revision: rev, Source: "engine", ViewName: name})
}

// OrientationMode returns the document's current orientation metadata.
func (e *Engine) OrientationMode() OrientationMode {
	return e.settings.OrientationMode
}

// SetOrientationMode updates the document's orientation metadata. It never
// touches node geometry: orientation is kept on the layout settings (and
// exported with them) for a renderer's own canvas rotation, is not part of
// the ViewModel, and is not interpreted by the resolver.
func (e *Engine) SetOrientationMode(mode OrientationMode) {
	e.settings.OrientationMode = mode
}

// SetLodEnabled toggles LOD filtering. Disabling it makes every node
// visible regardless of zoom; no resolver pass runs since LOD never
// changes node geometry.
func (e *Engine) SetLodEnabled(enabled bool) {
	e.settings.LodEnabled = enabled
}

// SetLodThresholds replaces the zoom threshold sequence used by LOD filtering.
func (e *Engine) SetLodThresholds(thresholds []float64) {
	e.settings.LodThresholds = append([]float64(nil), thresholds...)
}

// AddLodLevel appends one more threshold at t_1 + n*step, extending the
// configured depth of detail by one level.
func (e *Engine) AddLodLevel() {
	e.settings.LodThresholds = extendThresholdsForDepth(
		e.settings.LodThresholds, len(e.settings.LodThresholds)+1, DefaultLodStep)
}

// ResetLodLevels restores the default threshold sequence.
func (e *Engine) ResetLodLevels() {
	e.settings.LodThresholds = append([]float64(nil), DefaultLodThresholds...)
}

// SetLayoutSpacing updates the horizontal/vertical padding applied to
// every bounding rectangle and invalidates every cached rectangle, since
// padding affects all of them.
func (e *Engine) SetLayoutSpacing(h, v float64) {
	e.settings.HorizontalSpacing = h
	e.settings.VerticalSpacing = v
	e.spacing = spacing{horizontal: h, vertical: v}
	invalidateAllBBoxCaches(e.store)
	for _, id := range e.store.roots() {
		e.store.markDirty(id)
	}
	e.settleViewOnly("")
}

// GetViewModel is the explicit public spelling of the get_view_model
// operation; equivalent to ViewModel().
func (e *Engine) GetViewModel() *ViewModel {
	return e.ViewModel()
}
