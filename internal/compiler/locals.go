package compiler

import "rox/internal/token"

// maxLocals bounds the locals table per call frame (spec §5,
// LOCALS_COUNT >= 256). The language has no functions, so in practice this
// bounds the locals live within nested blocks of a single top-level chunk.
const maxLocals = 256

// local is one entry in the locals table: a declared name at a lexical
// depth, with depth = -1 marking "declared but not yet initialized" (it
// guards against `var x = x;` reading itself in its own initializer).
type local struct {
	name  token.Token
	depth int
}

const uninitialized = -1

// localsTable is the fixed-capacity, ordered sequence of locals live in
// the compiler's current scope stack.
type localsTable struct {
	entries []local
}

func (lt *localsTable) size() int { return len(lt.entries) }

// add appends a new, uninitialized local. The caller must have already
// checked capacity and doubled-declaration via isDoublyDeclared.
func (lt *localsTable) add(name token.Token) {
	lt.entries = append(lt.entries, local{name: name, depth: uninitialized})
}

// initialize marks the most recently added local as live at depth.
func (lt *localsTable) initialize(depth int) {
	lt.entries[len(lt.entries)-1].depth = depth
}

// resolve scans top-down (most recently declared first) for name,
// returning the slot index and whether the match is initialized. A
// negative slot means "not found" (treat as global).
func (lt *localsTable) resolve(name string) (slot int, initialized bool) {
	for i := len(lt.entries) - 1; i >= 0; i-- {
		if lt.entries[i].name.Lexeme == name {
			return i, lt.entries[i].depth != uninitialized
		}
	}
	return -1, false
}

// isDoublyDeclared reports whether name is already declared at exactly
// currentDepth. It scans high-to-low and stops as soon as it reaches an
// entry shallower than currentDepth, since locals are appended in
// non-decreasing depth order within a scope.
func (lt *localsTable) isDoublyDeclared(name string, currentDepth int) bool {
	for i := len(lt.entries) - 1; i >= 0; i-- {
		e := lt.entries[i]
		if e.depth != uninitialized && e.depth < currentDepth {
			break
		}
		if e.name.Lexeme == name {
			return true
		}
	}
	return false
}

// removeAbove drops every local whose depth exceeds scopeDepth and
// reports how many were removed, so the caller can emit one Pop per
// popped local.
func (lt *localsTable) removeAbove(scopeDepth int) int {
	n := 0
	for len(lt.entries) > 0 && lt.entries[len(lt.entries)-1].depth > scopeDepth {
		lt.entries = lt.entries[:len(lt.entries)-1]
		n++
	}
	return n
}
