package distill

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/dominikbraun/graph"
)

// buildDependencyGraph resolves import sources against the processed
// file set and returns the file-to-file edges, sorted. Resolution is by
// file stem: "./user" or "pkg/user" matches user.ts, user.py and so on.
// Unresolvable imports (stdlib, third-party) simply produce no edge.
func buildDependencyGraph(deps map[string]Dependency) []Edge {
	g := graph.New(graph.StringHash, graph.Directed())

	byStem := make(map[string]string)
	for path := range deps {
		base := filepath.Base(path)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		byStem[stem] = path
		_ = g.AddVertex(path)
	}

	for path, dep := range deps {
		for _, imp := range dep.Imports {
			target, ok := byStem[importStem(imp)]
			if !ok || target == path {
				continue
			}
			// Duplicate edges are fine to ignore.
			_ = g.AddEdge(path, target)
		}
	}

	adjacency, err := g.AdjacencyMap()
	if err != nil {
		return nil
	}

	var edges []Edge
	for from, targets := range adjacency {
		for to := range targets {
			edges = append(edges, Edge{From: from, To: to})
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	return edges
}

// sourceExts are the file extensions stripped from import sources before
// stem comparison.
var sourceExts = map[string]bool{
	".c": true, ".cjs": true, ".go": true, ".h": true, ".java": true,
	".js": true, ".jsx": true, ".mjs": true, ".php": true, ".py": true,
	".rb": true, ".rs": true, ".ts": true, ".tsx": true,
}

// importStem reduces an import source to a comparable file stem: the last
// path segment without extension. Handles "./user", "pkg/user.js", and
// dotted module paths like "pkg.user".
func importStem(source string) string {
	s := source
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		s = s[i+1:]
	}
	if ext := filepath.Ext(s); sourceExts[ext] {
		return strings.TrimSuffix(s, ext)
	}
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		s = s[i+1:]
	}
	return s
}
