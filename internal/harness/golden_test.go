package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// runWithGolden executes a scenario, reports failed expectations and compares
// the trace against testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func runWithGolden(t *testing.T, scenario *Scenario) *Result {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		t.Fatalf("scenario %s: %v", scenario.Name, err)
	}
	for _, msg := range result.Errors {
		t.Errorf("scenario %s: %s", scenario.Name, msg)
	}

	snapshot, err := MarshalSnapshot(scenario.Name, result)
	if err != nil {
		t.Fatalf("scenario %s: marshal trace: %v", scenario.Name, err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, snapshot)
	return result
}
