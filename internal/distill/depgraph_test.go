package distill

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for Dependency Graph:
// - Relative imports resolve by file stem ("./user" matches src/user.ts)
// - Extensions on import sources are stripped before matching
// - Dotted module paths resolve their last segment ("pkg.user" matches user.py)
// - Unresolvable imports produce no edge
// - Self-imports produce no edge
// - Duplicate imports collapse to one edge
// - Edges come back sorted by (from, to)

func TestBuildDependencyGraph_StemResolution(t *testing.T) {
	// Test: relative and extension-qualified imports resolve to files
	deps := map[string]Dependency{
		"src/main.ts":  {Imports: []string{"./user", "./format.ts", "lodash"}},
		"src/user.ts":  {Imports: []string{}},
		"src/format.ts": {Imports: []string{}},
	}

	edges := buildDependencyGraph(deps)
	assert.Equal(t, []Edge{
		{From: "src/main.ts", To: "src/format.ts"},
		{From: "src/main.ts", To: "src/user.ts"},
	}, edges)
}

func TestBuildDependencyGraph_DottedModules(t *testing.T) {
	// Test: python-style dotted imports match their last segment
	deps := map[string]Dependency{
		"app/main.py":  {Imports: []string{"app.model"}},
		"app/model.py": {Imports: []string{}},
	}

	edges := buildDependencyGraph(deps)
	assert.Equal(t, []Edge{{From: "app/main.py", To: "app/model.py"}}, edges)
}

func TestBuildDependencyGraph_NoFalseEdges(t *testing.T) {
	// Test: external imports and self-references stay out of the graph
	deps := map[string]Dependency{
		"a.go": {Imports: []string{"fmt", "net/http", "a"}},
		"b.go": {Imports: []string{"github.com/spf13/cobra"}},
	}

	assert.Empty(t, buildDependencyGraph(deps))
}

func TestBuildDependencyGraph_DuplicatesCollapse(t *testing.T) {
	// Test: importing the same file twice yields one edge
	deps := map[string]Dependency{
		"x.js": {Imports: []string{"./y", "./y.js"}},
		"y.js": {Imports: []string{}},
	}

	edges := buildDependencyGraph(deps)
	assert.Equal(t, []Edge{{From: "x.js", To: "y.js"}}, edges)
}

func TestImportStem(t *testing.T) {
	// Test: stem reduction across source styles
	assert.Equal(t, "user", importStem("./user"))
	assert.Equal(t, "user", importStem("../models/user.ts"))
	assert.Equal(t, "user", importStem("pkg.user"))
	assert.Equal(t, "user", importStem("user.js"))
	assert.Equal(t, "http", importStem("net/http"))
	// An unknown extension is treated as a dotted segment.
	assert.Equal(t, "css", importStem("styles.css"))
}
