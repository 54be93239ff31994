package mindlayout

import "go.uber.org/zap"

// Engine is the single entry point to the layout engine: it owns the node
// store, the viewport, the event bus, and selection state, and exposes the
// public operation API. The node store is exclusively owned by the
// engine; external code reaches it only through Engine's methods.
type Engine struct {
	store    *nodeStore
	settings LayoutSettings
	spacing  spacing
	meta     DocumentMeta
	refEdges []Edge

	viewport *Viewport
	bus      *eventBus
	selected map[string]bool
	revision uint64
	logger   *zap.Logger

	drag *dragState
}

// New creates an empty Engine ready to accept operations.
func New(opts ...EngineOption) *Engine {
	e := &Engine{
		store:    newNodeStore(),
		settings: DefaultLayoutSettings(),
		selected: make(map[string]bool),
		logger:   zap.NewNop(),
	}
	e.viewport = newViewport(e)
	e.bus = newEventBus()
	for _, opt := range opts {
		opt(e)
	}
	e.spacing = spacing{horizontal: e.settings.HorizontalSpacing, vertical: e.settings.VerticalSpacing}
	return e
}

// Viewport returns the engine's viewport controller.
func (e *Engine) Viewport() *Viewport { return e.viewport }

// On registers an observer for a single event kind.
func (e *Engine) On(kind EventKind, fn func(Event)) EventHandle {
	return e.bus.On(kind, fn)
}

// ViewModel returns the current view-model snapshot without settling any
// pending operation; equivalent to the public get_view_model() operation.
func (e *Engine) ViewModel() *ViewModel {
	return e.currentViewModel()
}

func (e *Engine) currentViewModel() *ViewModel {
	// The viewport zoom is a factor (1.0 = 100%); LOD thresholds are percent.
	return buildViewModel(e.store, e.settings, e.spacing, e.viewport.zoom*100, e.selected, e.refEdges, e.revision)
}

func (e *Engine) nextRevision() uint64 {
	e.revision++
	return e.revision
}

// resolveDirtyRoots drains the dirty set and resolves overlaps among the
// affected roots, returning any roots that hit the iteration cap.
func (e *Engine) resolveDirtyRoots() []string {
	dirty := e.store.takeDirty()
	rootSet := make(map[string]bool, len(dirty))
	for id := range dirty {
		rootSet[e.store.rootOf(id)] = true
	}
	roots := make([]string, 0, len(rootSet))
	for r := range rootSet {
		roots = append(roots, r)
	}
	return resolveRoots(e.store, e.spacing, roots, e.logger)
}

// settle resolves overlaps among the currently dirty roots, bumps the
// revision, and emits kind, then any extra events (stamped with the same
// revision), then any convergence-warning, and finally view-model-updated
// — so every other event for this revision is observable before the
// view-model snapshot that reflects it.
func (e *Engine) settle(kind EventKind, nodeIDs []string, source string, extra ...Event) *ViewModel {
	if source == "" {
		source = "engine"
	}
	unconverged := e.resolveDirtyRoots()

	rev := e.nextRevision()
	e.bus.emit(Event{Kind: kind, Revision: rev, Source: source, NodeIDs: nodeIDs})
	for _, ev := range extra {
		ev.Revision = rev
		if ev.Source == "" {
			ev.Source = source
		}
		e.bus.emit(ev)
	}
	if len(unconverged) > 0 {
		e.bus.emit(Event{Kind: EventConvergenceWarning, Revision: rev, Source: source, ConvergenceRoots: unconverged})
	}
	vm := e.currentViewModel()
	vm.Revision = rev
	e.bus.emit(Event{Kind: EventViewModelUpdated, Revision: rev, Source: source, ViewModel: vm})
	return vm
}

// settleViewOnly is like settle but does not emit a distinguished "kind"
// event first — used by pathways (zoom-end commit) whose only observable
// change is the view model itself.
func (e *Engine) settleViewOnly(source string) *ViewModel {
	if source == "" {
		source = "engine"
	}
	unconverged := e.resolveDirtyRoots()
	rev := e.nextRevision()
	if len(unconverged) > 0 {
		e.bus.emit(Event{Kind: EventConvergenceWarning, Revision: rev, Source: source, ConvergenceRoots: unconverged})
	}
	vm := e.currentViewModel()
	vm.Revision = rev
	e.bus.emit(Event{Kind: EventViewModelUpdated, Revision: rev, Source: source, ViewModel: vm})
	return vm
}

// recomputeAfterZoom implements the zoom-end commit pathway: every node
// visible at the new zoom whose last_calculated_zoom differs from it is
// stamped with the new zoom and marked dirty, the incremental resolver runs
// over their roots, and a view-model-updated event is emitted. zoom is a
// viewport factor; it is compared with the percent thresholds as zoom*100.
func (e *Engine) recomputeAfterZoom(zoom float64) *ViewModel {
	d := infiniteDepth
	if e.settings.LodEnabled {
		d = visibilityDepth(zoom*100, e.settings.LodThresholds)
	}
	var touched []string
	for id, n := range e.store.nodes {
		visible := e.store.depth(id) <= d
		if visible && n.lastCalculatedZoom != zoom {
			n.lastCalculatedZoom = zoom
			e.store.markDirty(id)
			touched = append(touched, id)
		}
	}
	if len(touched) == 0 {
		return e.currentViewModel()
	}
	return e.settleViewOnly("engine")
}

// LoadDocument replaces the engine's forest with doc's contents. The
// document is validated (ParentNotFound / InvariantViolation) before any
// node is installed, so a rejected load leaves the prior state untouched.
func (e *Engine) LoadDocument(doc Document) error {
	byID := make(map[string]DocumentNode, len(doc.Nodes))
	for _, dn := range doc.Nodes {
		byID[dn.ID] = dn
	}
	for _, dn := range doc.Nodes {
		if dn.ParentID != "" {
			if _, ok := byID[dn.ParentID]; !ok {
				return errParentNotFound(dn.ParentID)
			}
			if dn.ParentID == dn.ID {
				return &InvariantViolation{Invariant: "no-cycle", NodeIDs: []string{dn.ID}, Detail: "node is its own parent"}
			}
		}
	}
	for _, edge := range doc.Edges {
		if _, ok := byID[edge.FromID]; !ok {
			return errNodeNotFound(edge.FromID)
		}
		if _, ok := byID[edge.ToID]; !ok {
			return errNodeNotFound(edge.ToID)
		}
	}

	store := newNodeStore()
	for _, dn := range doc.Nodes {
		store.nodes[dn.ID] = &node{
			id: dn.ID, parentID: dn.ParentID, order: dn.Order,
			title: dn.Title, content: dn.Content,
			width: dn.Width, height: dn.Height,
			x: dn.X, y: dn.Y,
			collapsed: dn.Collapsed, collapsedLeft: dn.CollapsedLeft, collapsedRight: dn.CollapsedRight,
			side: dn.Side, views: dn.Views,
		}
	}
	for _, dn := range doc.Nodes {
		if dn.ParentID != "" {
			p := store.nodes[dn.ParentID]
			p.children = append(p.children, dn.ID)
		}
	}
	for _, key := range append([]string{rootKey}, nodeIDs(store)...) {
		store.renormalize(key)
	}
	var maxSeq uint64
	for _, dn := range doc.Nodes {
		if seq, ok := parseNodeSeq(dn.ID); ok && seq > maxSeq {
			maxSeq = seq
		}
	}
	store.nextSeq = maxSeq

	if err := validateForest(store); err != nil {
		return err
	}

	e.store = store
	e.meta = doc.Meta
	e.settings = doc.Settings
	e.spacing = spacing{horizontal: doc.Settings.HorizontalSpacing, vertical: doc.Settings.VerticalSpacing}
	e.refEdges = append([]Edge(nil), doc.Edges...)
	e.selected = make(map[string]bool)
	e.revision = 0
	invalidateAllBBoxCaches(e.store)
	return nil
}

func nodeIDs(s *nodeStore) []string {
	ids := make([]string, 0, len(s.nodes))
	for id := range s.nodes {
		ids = append(ids, id)
	}
	return ids
}

// parseNodeSeq recovers the sequence number from an engine-generated
// "n<seq36>" identifier, used by LoadDocument to resume ID allocation
// after a round trip. Foreign (host-supplied) identifiers that don't match
// the scheme are ignored; they never collide with future generated IDs
// since those always start with "n" followed only by base-36 digits
// derived from an incrementing counter.
func parseNodeSeq(id string) (uint64, bool) {
	if len(id) < 2 || id[0] != 'n' {
		return 0, false
	}
	var seq uint64
	for _, c := range id[1:] {
		var v uint64
		switch {
		case c >= '0' && c <= '9':
			v = uint64(c - '0')
		case c >= 'a' && c <= 'z':
			v = uint64(c-'a') + 10
		default:
			return 0, false
		}
		seq = seq*36 + v
	}
	return seq, true
}

// ExportDocument snapshots the engine's forest, settings, and reference
// edges into a serialization-neutral Document value. Meta.NodeCount and
// Meta.EdgeCount are stamped from the live forest, not carried over from
// whatever was loaded.
func (e *Engine) ExportDocument() Document {
	nodes := make([]DocumentNode, 0, len(e.store.nodes))
	for _, id := range e.store.roots() {
		e.appendSubtreeDocs(&nodes, id)
	}
	meta := e.meta
	meta.NodeCount = e.NodeCount()
	meta.EdgeCount = e.EdgeCount()
	return Document{
		Meta:     meta,
		Nodes:    nodes,
		Edges:    append([]Edge(nil), e.refEdges...),
		Settings: e.settings,
	}
}

// NodeCount returns the number of nodes currently in the forest. Go's map
// length is already O(1), so no separate incremental counter is needed to
// avoid an O(n) walk.
func (e *Engine) NodeCount() int { return len(e.store.nodes) }

// EdgeCount returns the number of reference edges currently loaded.
func (e *Engine) EdgeCount() int { return len(e.refEdges) }

func (e *Engine) appendSubtreeDocs(out *[]DocumentNode, id string) {
	n, ok := e.store.nodes[id]
	if !ok {
		return
	}
	*out = append(*out, DocumentNode{
		ID: n.id, ParentID: n.parentID, Order: n.order,
		Title: n.title, Content: n.content,
		Width: n.width, Height: n.height,
		X: n.x, Y: n.y,
		Collapsed: n.collapsed, CollapsedLeft: n.collapsedLeft, CollapsedRight: n.collapsedRight,
		Side: n.side, Views: n.views,
	})
	for _, cid := range n.children {
		e.appendSubtreeDocs(out, cid)
	}
}
