// Package knowledgebase implements the export oracle (C4, spec.md
// §4.4) and the project/compiler collaborators spec.md §3 and §6
// assume but don't fully spell out: elm.json discovery and parsing,
// an elm-make subprocess wrapper, and the interface-cache contract a
// real implementation needs to answer "what does module M export"
// without re-parsing every dependency on every keystroke.
//
// Parse here plays the role pkg/yangentry.Parse plays for goyang: a
// small, high-level entry point that takes a filesystem location,
// reads whatever declares the unit of work (elm.json here, a list of
// .yang files there), and returns a ready-to-query in-memory model
// plus any errors encountered loading it.
package knowledgebase

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// ElmJSON is the subset of elm.json this tool needs: enough to locate
// source directories and enumerate dependencies, not a full validating
// model of every field the real file format allows.
type ElmJSON struct {
	Type            string              `json:"type"`
	SourceDirs      []string            `json:"source-directories"`
	ElmVersion      string              `json:"elm-version"`
	Dependencies    json.RawMessage     `json:"dependencies"`
	TestDependencies json.RawMessage    `json:"test-dependencies"`
}

// Project is one Elm project: its root directory, parsed elm.json,
// and the absolute paths Elm itself would search for source files.
type Project struct {
	Root        string
	Manifest    ElmJSON
	SourceDirs  []string // absolute
}

// Parse reads and validates the elm.json at root, resolving its
// source-directories entries (which elm.json always stores relative
// to the project root) to absolute paths.
func Parse(fs afero.Fs, root string) (*Project, error) {
	manifestPath := filepath.Join(root, "elm.json")
	f, err := fs.Open(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("knowledgebase: opening %s: %w", manifestPath, err)
	}
	defer f.Close()

	var manifest ElmJSON
	if err := json.NewDecoder(f).Decode(&manifest); err != nil {
		return nil, fmt.Errorf("knowledgebase: parsing %s: %w", manifestPath, err)
	}
	if len(manifest.SourceDirs) == 0 {
		manifest.SourceDirs = []string{"src"}
	}

	dirs := make([]string, len(manifest.SourceDirs))
	for i, d := range manifest.SourceDirs {
		if filepath.IsAbs(d) {
			dirs[i] = filepath.Clean(d)
		} else {
			dirs[i] = filepath.Clean(filepath.Join(root, d))
		}
	}

	return &Project{Root: root, Manifest: manifest, SourceDirs: dirs}, nil
}

// ContainsSourceFile reports whether absPath falls under one of
// project's source directories, i.e. is it a file Elm compiles as
// part of this project versus, say, a generated or vendored file.
func (p *Project) ContainsSourceFile(absPath string) bool {
	for _, dir := range p.SourceDirs {
		rel, err := filepath.Rel(dir, absPath)
		if err == nil && rel != ".." && !hasDotDotPrefix(rel) {
			return true
		}
	}
	return false
}

func hasDotDotPrefix(rel string) bool {
	return len(rel) >= 2 && rel[0] == '.' && rel[1] == '.'
}

// ModulePathToName converts a source-relative file path
// ("Json/Decode/Extra.elm") to its Elm module name
// ("Json.Decode.Extra").
func ModulePathToName(relPath string) string {
	trimmed := relPath
	if ext := filepath.Ext(trimmed); ext == ".elm" {
		trimmed = trimmed[:len(trimmed)-len(ext)]
	}
	return moduleNameFromSlashPath(trimmed)
}

func moduleNameFromSlashPath(p string) string {
	out := make([]byte, 0, len(p))
	for i := 0; i < len(p); i++ {
		c := p[i]
		if c == filepath.Separator || c == '/' {
			out = append(out, '.')
		} else {
			out = append(out, c)
		}
	}
	return string(out)
}
