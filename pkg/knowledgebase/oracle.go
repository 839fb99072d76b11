package knowledgebase

import (
	"sync"

	"github.com/jwoudenberg/elm-pair/pkg/names"
)

// Cursor is the export oracle interface (C4, spec.md §4.4):
// exports_cursor(buffer, module_name) -> Cursor, cursor.iter() ->
// iterator<&ExportedName>, resettable and safe to iterate more than
// once within a single refactor's lifetime.
type Cursor struct {
	names []names.ExportedName
}

// Iter returns the cursor's exported names. Calling Iter again (or
// concurrently) on the same Cursor yields an identical sequence, since
// a Cursor never mutates the slice it was built from.
func (c Cursor) Iter() []names.ExportedName { return c.names }

// KnowledgeBase is the in-memory export oracle: a project's own
// modules plus whatever interface data its package dependencies
// publish (pkg/knowledgebase/idat.go), keyed by module name. It
// implements pkg/elmrefactor/lib.ExportOracle's Exports method
// directly (structural typing; no import of elmrefactor needed here).
type KnowledgeBase struct {
	mu      sync.RWMutex
	exports map[string][]names.ExportedName
}

// New returns an empty KnowledgeBase; callers populate it via Update
// as buffers are parsed and as interface data loads.
func New() *KnowledgeBase {
	return &KnowledgeBase{exports: map[string][]names.ExportedName{}}
}

// Update replaces the recorded export list for moduleName. Called
// whenever a buffer's own module declaration changes, or when a
// dependency's docs.json/interface file is (re)loaded.
func (kb *KnowledgeBase) Update(moduleName string, exported []names.ExportedName) {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	kb.exports[moduleName] = exported
}

// Forget drops any recorded exports for moduleName.
func (kb *KnowledgeBase) Forget(moduleName string) {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	delete(kb.exports, moduleName)
}

// Exports answers C4's contract: ok=false (treated by refactors as
// "nothing to do", never an error) when moduleName is unknown.
func (kb *KnowledgeBase) Exports(moduleName string) ([]names.ExportedName, bool) {
	kb.mu.RLock()
	defer kb.mu.RUnlock()
	e, ok := kb.exports[moduleName]
	return e, ok
}

// ExportsCursor returns a Cursor over moduleName's current exports.
// The buffer argument is accepted (matching spec.md §4.4's
// exports_cursor(buffer, module_name) signature) but unused by this
// in-memory implementation: every buffer in a project shares one
// KnowledgeBase, so there is nothing buffer-specific to key on.
func (kb *KnowledgeBase) ExportsCursor(buffer any, moduleName string) Cursor {
	e, _ := kb.Exports(moduleName)
	return Cursor{names: e}
}
