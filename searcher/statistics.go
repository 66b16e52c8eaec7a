package searcher

import "fmt"

// TreeStatistics describes the shape of a tree for diagnostics.
type TreeStatistics struct {
	Nodes    int
	MinDepth int
	MaxDepth int
}

func (s TreeStatistics) String() string {
	return fmt.Sprintf("nodes=%d depth=%d..%d", s.Nodes, s.MinDepth, s.MaxDepth)
}

// mergeStatistics puts a common parent above the given subtrees.
func mergeStatistics(children []TreeStatistics) TreeStatistics {
	merged := combineStatistics(children)
	return TreeStatistics{
		Nodes:    merged.Nodes + 1,
		MinDepth: merged.MinDepth + 1,
		MaxDepth: merged.MaxDepth + 1,
	}
}

// combineStatistics pools trees side by side without a common parent.
func combineStatistics(trees []TreeStatistics) TreeStatistics {
	if len(trees) == 0 {
		return TreeStatistics{}
	}
	combined := trees[0]
	for _, s := range trees[1:] {
		combined.Nodes += s.Nodes
		combined.MinDepth = min(combined.MinDepth, s.MinDepth)
		combined.MaxDepth = max(combined.MaxDepth, s.MaxDepth)
	}
	return combined
}
