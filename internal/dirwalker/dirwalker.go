// Package dirwalker implements a best-effort recursive file walk
// (grounded on the original implementation's support/dir_walker.rs: a
// stack of directory listings, logging and skipping any entry it
// can't read rather than aborting the whole walk) plus the project
// discovery it supports: walking up from a changed file to find the
// nearest ancestor elm.json, and watching the tree for new/removed
// elm.json files as the user opens or creates projects.
package dirwalker

import (
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Walk visits every regular file under root, logging and continuing
// past any directory or entry it fails to read instead of aborting,
// matching DirWalker's "find as many files as it can" contract.
func Walk(fsys afero.Fs, root string, logger *zap.Logger, visit func(path string)) {
	stack := []string{root}
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := afero.ReadDir(fsys, dir)
		if err != nil {
			logger.Warn("reading directory", zap.String("dir", dir), zap.Error(err))
			continue
		}
		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			if entry.IsDir() {
				stack = append(stack, path)
				continue
			}
			visit(path)
		}
	}
}

// FindProjectRoot walks up from startDir looking for the nearest
// ancestor directory containing an elm.json file, the boundary every
// Elm project declares itself with. It returns ok=false if it reaches
// the filesystem root without finding one.
func FindProjectRoot(fsys afero.Fs, startDir string) (root string, ok bool) {
	dir := filepath.Clean(startDir)
	for {
		if exists, _ := afero.Exists(fsys, filepath.Join(dir, "elm.json")); exists {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// IsElmFile reports whether path names a .elm source file, the only
// extension Walk's caller (project indexing) cares about.
func IsElmFile(path string) bool {
	return filepath.Ext(path) == ".elm"
}
