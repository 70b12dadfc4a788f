package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// AssertGolden compares rendered SQL text against the golden file
// testdata/golden/<name>.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func AssertGolden(t *testing.T, name string, sql string) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(sql))
}

// RunWithGolden builds a scenario and compares its SQL against the
// golden file named after the scenario.
func RunWithGolden(t *testing.T, s Scenario) {
	t.Helper()
	q, err := Build(s)
	if err != nil {
		t.Fatalf("scenario %s: %v", s.Name, err)
	}
	AssertGolden(t, s.Name, q.SQL)
}
