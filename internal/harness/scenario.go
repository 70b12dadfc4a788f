package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
)

// Scenario is one declarative query description decoded from CUE.
type Scenario struct {
	// Name is the scenario label inside the CUE file.
	Name string `json:"-"`

	// Kind selects the statement: "select", "insert", "update", "delete".
	Kind string `json:"kind"`

	// Table is the target table.
	Table string `json:"table"`

	// Columns lists SELECT columns, or the column list for inserts.
	Columns []string `json:"columns,omitempty"`

	// Where lists filter conditions, AND-combined in order.
	Where []Condition `json:"where,omitempty"`

	// PreWhere lists conditions for the PREWHERE clause.
	PreWhere []Condition `json:"prewhere,omitempty"`

	// GroupBy lists grouping columns.
	GroupBy []string `json:"groupBy,omitempty"`

	// OrderBy lists sort terms.
	OrderBy []OrderTerm `json:"orderBy,omitempty"`

	Limit    *int `json:"limit,omitempty"`
	Offset   *int `json:"offset,omitempty"`
	Distinct bool `json:"distinct,omitempty"`
	Final    bool `json:"final,omitempty"`

	// Settings holds query settings appended as a SETTINGS clause.
	Settings map[string]any `json:"settings,omitempty"`

	// Format is the output format tag. Not part of the SQL text.
	Format string `json:"format,omitempty"`

	// Set holds UPDATE assignments.
	Set map[string]any `json:"set,omitempty"`

	// Rows holds inline INSERT rows.
	Rows [][]any `json:"rows,omitempty"`
}

// Condition is one filter entry: a column, an operator name, and an
// operand. Operator names mirror the builder constructors in lowercase:
// eq, ne, gt, gte, lt, lte, in, notIn, between, like, ilike, isNull,
// isNotNull, hasAny, hasAll, inTuple.
type Condition struct {
	Column string `json:"column"`
	Op     string `json:"op"`
	Value  any    `json:"value,omitempty"`
}

// OrderTerm is one ORDER BY entry.
type OrderTerm struct {
	Column string `json:"column"`
	Desc   bool   `json:"desc,omitempty"`
}

// LoadScenarios loads every scenario declared by the CUE package in dir,
// sorted by name so suites iterate deterministically.
func LoadScenarios(dir string) ([]Scenario, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("scenario directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	files, err := findCUEFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no CUE files found in %s", dir)
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, fmt.Errorf("no CUE instances loaded from %s", dir)
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, fmt.Errorf("loading CUE files: %w", inst.Err)
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("building CUE value: %w", err)
	}

	scenariosVal := value.LookupPath(cue.ParsePath("scenario"))
	if !scenariosVal.Exists() {
		return nil, fmt.Errorf("no scenario struct found in %s", dir)
	}

	iter, err := scenariosVal.Fields()
	if err != nil {
		return nil, fmt.Errorf("iterating scenarios: %w", err)
	}

	var scenarios []Scenario
	for iter.Next() {
		var s Scenario
		if err := iter.Value().Decode(&s); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", iter.Label(), err)
		}
		s.Name = iter.Label()
		scenarios = append(scenarios, s)
	}
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("scenario struct in %s is empty", dir)
	}

	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	return scenarios, nil
}

func findCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
