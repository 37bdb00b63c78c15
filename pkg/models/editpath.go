package models

// EditPath is an ordered sequence of graph snapshots connecting a source
// graph to its target by single elementary edits. Snapshots[0] is the source
// graph; each transition Snapshots[i] -> Snapshots[i+1] corresponds to
// Operations[i]. Derived artifact: always regenerable from a MappingResult
// plus the dataset.
type EditPath struct {
	Pair       PairKey         `json:"pair"`
	Snapshots  []Graph         `json:"snapshots"`
	Operations []EditOperation `json:"operations"`
}

// Length returns the number of edit operations in the path
func (p *EditPath) Length() int { return len(p.Operations) }

// CategoryCounts returns the number of operations per category
func (p *EditPath) CategoryCounts() [NumCategories]int {
	var counts [NumCategories]int
	for _, op := range p.Operations {
		counts[op.Category()]++
	}
	return counts
}
