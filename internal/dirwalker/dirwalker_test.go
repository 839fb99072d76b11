package dirwalker

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/jwoudenberg/elm-pair/internal/elmlog"
)

func TestWalkVisitsFilesRecursively(t *testing.T) {
	fsys := afero.NewMemMapFs()
	afero.WriteFile(fsys, "/proj/src/Main.elm", []byte("module Main exposing (main)\n"), 0o644)
	afero.WriteFile(fsys, "/proj/src/nested/Other.elm", []byte("module Other exposing (x)\n"), 0o644)
	afero.WriteFile(fsys, "/proj/README.md", []byte("hi\n"), 0o644)

	var visited []string
	Walk(fsys, "/proj", elmlog.Nop(), func(path string) {
		visited = append(visited, path)
	})

	want := map[string]bool{
		"/proj/src/Main.elm":        true,
		"/proj/src/nested/Other.elm": true,
		"/proj/README.md":           true,
	}
	if len(visited) != len(want) {
		t.Fatalf("visited %v, want keys of %v", visited, want)
	}
	for _, path := range visited {
		if !want[path] {
			t.Errorf("unexpected path visited: %s", path)
		}
	}
}

func TestFindProjectRootWalksUpToNearestAncestor(t *testing.T) {
	fsys := afero.NewMemMapFs()
	afero.WriteFile(fsys, "/proj/elm.json", []byte("{}"), 0o644)
	afero.WriteFile(fsys, "/proj/src/Main.elm", []byte(""), 0o644)

	root, ok := FindProjectRoot(fsys, "/proj/src")
	if !ok || root != "/proj" {
		t.Fatalf("FindProjectRoot = %q, %v, want /proj, true", root, ok)
	}
}

func TestFindProjectRootMissing(t *testing.T) {
	fsys := afero.NewMemMapFs()
	afero.WriteFile(fsys, "/proj/src/Main.elm", []byte(""), 0o644)

	_, ok := FindProjectRoot(fsys, "/proj/src")
	if ok {
		t.Fatal("expected ok=false when no elm.json exists above startDir")
	}
}

func TestIsElmFile(t *testing.T) {
	cases := map[string]bool{
		"Main.elm":    true,
		"elm.json":    false,
		"Main.elm.bk": false,
	}
	for path, want := range cases {
		if got := IsElmFile(path); got != want {
			t.Errorf("IsElmFile(%q) = %v, want %v", path, got, want)
		}
	}
}
