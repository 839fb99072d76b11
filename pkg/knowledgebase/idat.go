package knowledgebase

import "github.com/jwoudenberg/elm-pair/pkg/names"

// InterfaceCache answers "what does this installed package module
// export" from Elm's own compiled artifacts (the `.elm-home`
// package cache's interface files, `i.dat` in the original
// implementation's terms) rather than from source, since dependency
// packages are typically only ever available pre-built. Different
// elm compiler versions use incompatible on-disk formats for these
// caches. This package has no decoder for any of those formats;
// NullInterfaceCache is its only implementation.
type InterfaceCache interface {
	// Load returns moduleName's exports as recorded in the interface
	// cache for dependency package pkg at version, or ok=false if
	// nothing is cached yet (the dispatcher then treats this exactly
	// like an unknown module: do nothing, per spec.md §4.4).
	Load(pkg, version, moduleName string) (exported []names.ExportedName, ok bool)
}

// NullInterfaceCache is an InterfaceCache that knows nothing, useful
// as the default before a project's dependencies have been scanned
// and for tests that only care about project-local modules.
type NullInterfaceCache struct{}

func (NullInterfaceCache) Load(pkg, version, moduleName string) ([]names.ExportedName, bool) {
	return nil, false
}
