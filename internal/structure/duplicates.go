package structure

// Duplicates returns the qualified names defined more than once, each group
// in first-occurrence order. The result is computed once per inventory;
// a reload rebuilds the inventory, so memoization never goes stale.
func (inv *Inventory) Duplicates() []DuplicateGroup {
	inv.dupOnce.Do(func() {
		inv.dups = findDuplicates(inv.Elements)
	})
	return inv.dups
}

// findDuplicates groups elements by qualified name in a single pass. A slice
// plus an index map keeps groups ordered by first occurrence.
func findDuplicates(elements []Element) []DuplicateGroup {
	var groups []DuplicateGroup
	index := make(map[string]int)

	for i, el := range elements {
		name := el.QualifiedName()
		gi, seen := index[name]
		if !seen {
			gi = len(groups)
			index[name] = gi
			groups = append(groups, DuplicateGroup{QualifiedName: name})
		}
		groups[gi].Occurrences = append(groups[gi].Occurrences, i)
	}

	dups := []DuplicateGroup{}
	for _, g := range groups {
		if g.Count() >= 2 {
			dups = append(dups, g)
		}
	}
	return dups
}
