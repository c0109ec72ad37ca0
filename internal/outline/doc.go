// Package outline implements an in-memory outline document engine.
//
// A document is a flat, ordered list of lines. Each line carries an indent
// depth and the tree is implied by those depths: the parent of a line is the
// nearest preceding line with a smaller indent, and the block owned by a line
// runs until the next line whose indent is not greater than its own. No
// parent or child pointers are stored, so inserting, deleting and moving
// lines never needs re-linking.
//
// # Editing
//
// Every mutating operation goes through the Engine. Each one records an undo
// snapshot, mutates the lines, then bumps the document version returned by
// Version. Out-of-range line and char indices are clamped, never rejected.
// Structural operations that would change nothing (outdenting a line at
// indent 0, collapsing a leaf, moving past a boundary) are silent no-ops and
// neither record history nor bump the version.
//
// # History
//
// Undo and redo are snapshot based. The undo stack is bounded and evicts its
// oldest entry first. Recording a new entry clears the redo stack.
//
// # Snapshots
//
// ToSnapshot and ApplySnapshot exchange plain serialisable state with a
// transport or collaboration layer. ApplySnapshot reconciles lines by ID so
// that line objects which survive keep their identity.
//
// # Concurrency
//
// An Engine is not safe for concurrent use. Callers that share one across
// goroutines must serialise access themselves.
package outline
