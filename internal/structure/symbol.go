// Package structure implements the hidden-class ("structure")
// transition system: the property map, transition tree, prototype
// link, and deleted-slot free list that back fast property access on
// plain JS objects, in the style of V8/SpiderMonkey shapes.
package structure

import "sync"

// Symbol is a totally ordered, hashable handle to an interned
// property name. It is deliberately a small value type, not a managed
// heap reference — symbols carry no managed references from this
// layer's point of view.
type Symbol uint32

// DummySymbol is the sentinel used in Structure.Added to mean "no
// delta" — the root of a transition tree, or a structure whose chain
// has been flattened into a standalone table.
const DummySymbol Symbol = 0

// SymbolTable interns strings into Symbols, in the manager-plus-mutex
// style this runtime uses for its other pooled managed resources (see
// internal/types.CoreTypeManager's stringPool).
type SymbolTable struct {
	mu      sync.RWMutex
	byName  map[string]Symbol
	byIndex []string
}

// NewSymbolTable creates an empty interning table. Symbol 0 is
// reserved for DummySymbol, so the first interned name is always
// Symbol(1).
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		byName:  make(map[string]Symbol),
		byIndex: []string{""}, // index 0 unused, reserved for DummySymbol
	}
}

// Intern returns the Symbol for name, assigning a fresh one on first
// use.
func (t *SymbolTable) Intern(name string) Symbol {
	t.mu.RLock()
	if s, ok := t.byName[name]; ok {
		t.mu.RUnlock()

		return s
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()

	if s, ok := t.byName[name]; ok {
		return s
	}

	s := Symbol(len(t.byIndex))
	t.byIndex = append(t.byIndex, name)
	t.byName[name] = s

	return s
}

// Name returns the interned string for s, or "" for DummySymbol or an
// unknown Symbol.
func (t *SymbolTable) Name(s Symbol) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if int(s) <= 0 || int(s) >= len(t.byIndex) {
		return ""
	}

	return t.byIndex[s]
}
