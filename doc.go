// Package mindlayout is the layout engine for a graphical mindmapping
// application: given a forest of nodes arranged in a parent/child hierarchy,
// it computes and maintains positions such that every parent's bounding
// rectangle strictly contains its descendants, no two sibling sub-trees
// overlap, and — at interactive zoom levels — only a bounded subset of nodes
// is surfaced via a level-of-detail (LOD) scheme that collapses deep
// sub-trees into aggregate badge placeholders.
//
// The engine owns no I/O, no persistence, and no rendering. It accepts a
// [Document], exposes mutating [Engine] operations (insert, move, delete,
// drag, zoom, pan), and emits typed [Event] values to registered observers
// after each settled operation.
//
// # Quick start
//
//	eng := mindlayout.New()
//	root, _ := eng.AddNode("", mindlayout.NodeAttrs{Title: "root"})
//	child, _ := eng.AddNode(root, mindlayout.NodeAttrs{Title: "child"})
//	eng.Viewport().Commit(mindlayout.CommitZoomEnd)
//	vm := eng.ViewModel()
//
// # Concurrency
//
// The engine is strictly single-threaded cooperative: all operations run to
// completion on the calling goroutine and none suspend. A host embedding the
// engine from multiple goroutines must serialize calls with an external
// lock.
//
// # Scope
//
// The engine does not persist documents, render anything, perform network
// I/O, support concurrent multi-user editing, or measure text — callers
// supply node width/height and are responsible for serialization, transport,
// and collaboration.
package mindlayout
