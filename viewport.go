package mindlayout

import "math"

// zoomEpsilon is the minimum zoom delta a commit must cross before the
// engine re-runs LOD filtering.
const zoomEpsilon = 0.01

// CommitKind selects which gesture boundary a Viewport.Commit call settles.
type CommitKind uint8

const (
	CommitZoomEnd CommitKind = iota
	CommitPanEnd
	CommitDragEnd
)

// Viewport holds the camera-like (zoom, pan_x, pan_y) state the host
// mutates continuously during a gesture: position/zoom fields updated in
// constant time, settled explicitly via Commit rather than on every
// mutation, since the engine has no render loop of its own to drive a
// per-frame update.
type Viewport struct {
	zoom, panX, panY float64
	width, height    float64 // screen-space viewport size for culling

	lastCommitZoom float64

	eng *Engine
}

func newViewport(eng *Engine) *Viewport {
	return &Viewport{zoom: 1.0, lastCommitZoom: 1.0, eng: eng}
}

// Zoom returns the viewport's current (possibly mid-gesture) zoom factor.
func (v *Viewport) Zoom() float64 { return v.zoom }

// Pan returns the viewport's current (possibly mid-gesture) pan offset.
func (v *Viewport) Pan() (x, y float64) { return v.panX, v.panY }

// SetZoom updates the zoom mid-gesture. Constant time; never triggers
// layout recomputation on its own.
func (v *Viewport) SetZoom(z float64) { v.zoom = z }

// SetPan updates the pan offset mid-gesture.
func (v *Viewport) SetPan(x, y float64) { v.panX, v.panY = x, y }

// SetSize sets the screen-space viewport dimensions used by VisibleBounds.
func (v *Viewport) SetSize(w, h float64) { v.width, v.height = w, h }

// VisibleBounds returns the world-space rectangle the viewport currently
// shows, used by hosts that want to cull independently of the view model.
func (v *Viewport) VisibleBounds() Rect {
	return Rect{X: v.panX, Y: v.panY, Width: v.width, Height: v.height}
}

// Commit settles the gesture named by kind and
// returns the resulting view model. Commits are processed synchronously in
// the order received; there is no queueing to coalesce, since the engine
// never observes a commit before the previous one has returned.
func (v *Viewport) Commit(kind CommitKind) *ViewModel {
	switch kind {
	case CommitZoomEnd:
		return v.commitZoomEnd()
	case CommitPanEnd:
		return v.commitPanEnd()
	case CommitDragEnd:
		return v.eng.EndDrag()
	default:
		return v.eng.currentViewModel()
	}
}

// commitZoomEnd re-runs LOD filtering only when the zoom moved past
// zoomEpsilon since the last commit. Every node visible at the new zoom
// whose last_calculated_zoom differs from it is stamped and marked dirty,
// and the incremental
// resolver is run over the affected roots; since the overlap resolver
// never consults LOD visibility when placing nodes, this pass typically
// converges immediately and exists for protocol conformance rather than
// to correct geometry.
func (v *Viewport) commitZoomEnd() *ViewModel {
	if math.Abs(v.zoom-v.lastCommitZoom) <= zoomEpsilon {
		return v.eng.currentViewModel()
	}
	v.lastCommitZoom = v.zoom
	return v.eng.recomputeAfterZoom(v.zoom)
}

// commitPanEnd never re-runs layout. VisibleBounds does not gate which
// nodes appear in the view model — the engine reports the full
// visible-by-LOD set and leaves screen-space culling to the host — so a
// pan-end commit is a cheap no-op that returns the current snapshot.
func (v *Viewport) commitPanEnd() *ViewModel {
	return v.eng.currentViewModel()
}
