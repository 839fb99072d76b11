package simulate

import (
	"path/filepath"
	"testing"
)

// TestScenarios runs every golden scenario under testdata/, the Go
// analogue of simulation_test!'s per-file test registration in
// refactors/simulations.rs. Each file already carries its recorded
// golden section, so a passing run here never touches disk; Check
// only writes back on a genuinely missing separator, which none of
// these files have.
func TestScenarios(t *testing.T) {
	paths, err := filepath.Glob("testdata/*.elm")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(paths) == 0 {
		t.Fatal("no scenarios found under testdata/")
	}
	for _, path := range paths {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			scenario, err := LoadScenario(path)
			if err != nil {
				t.Fatalf("LoadScenario: %v", err)
			}
			if scenario.Bootstrap {
				t.Fatalf("%s has no recorded golden section; run once locally to bootstrap it", path)
			}
			if err := Check(scenario); err != nil {
				t.Error(err)
			}
		})
	}
}
