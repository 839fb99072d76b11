package simulate

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/jwoudenberg/elm-pair/pkg/indent"
)

// LoadScenario reads and parses the scenario file at path.
func LoadScenario(path string) (*Scenario, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "simulate: reading %s", path)
	}
	return ParseScenario(path, string(contents))
}

// CheckAll loads and checks every scenario file in paths, continuing
// past a failing one rather than stopping at the first so a single
// run reports every scenario that needs attention. A nil return means
// every scenario passed (or, for a scenario missing its golden
// section, bootstrapped cleanly).
func CheckAll(paths []string) error {
	var result *multierror.Error
	for _, path := range paths {
		scenario, err := LoadScenario(path)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		if err := Check(scenario); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// Check runs s and compares the outcome to its golden section,
// matching included_answer_test.rs's two behaviors: a missing golden
// section bootstraps one (the file is rewritten with the actual output
// appended, and Check reports success so a first run never fails a
// fresh scenario), while a present section must match exactly.
func Check(s *Scenario) error {
	result, err := RunScenario(s)
	if err != nil {
		return err
	}

	if s.Bootstrap {
		s.Expected = result.Text
		rendered := s.Render()
		if err := os.WriteFile(s.Path, []byte(rendered), 0o644); err != nil {
			return errors.Wrapf(err, "simulate: bootstrapping %s", s.Path)
		}
		return nil
	}

	if result.Text != s.Expected {
		return &ErrMismatch{Path: s.Path, Want: s.Expected, Got: result.Text}
	}
	return nil
}

// ErrMismatch reports a scenario whose actual output didn't match its
// recorded golden section.
type ErrMismatch struct {
	Path      string
	Want, Got string
}

func (e *ErrMismatch) Error() string {
	return fmt.Sprintf(
		"simulate: %s: mismatch\nexpected:\n%sgot:\n%s",
		e.Path,
		indent.String("| ", e.Want),
		indent.String("| ", e.Got),
	)
}
