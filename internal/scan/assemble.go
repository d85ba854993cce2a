package scan

// assembleFlat returns the globally sorted entry sequence for flat output.
func assembleFlat(entries []SizedEntry, cfg *Config) []SizedEntry {
	sortEntries(entries, cfg.Sort, cfg.Reverse)
	return entries
}

// rootGroup is the reserved parent key for the scan root and for entries
// whose parent was filtered out of the result set.
const rootGroup = ""

// assembleTree groups entries by parent path, sorts each sibling group
// independently, and emits a depth-first pre-order sequence. An entry whose
// parent is absent from the set is reparented to the root group rather than
// silently dropped. Emission uses an explicit stack so pathological depths
// cannot exhaust the call stack.
func assembleTree(entries []SizedEntry, cfg *Config) []SizedEntry {
	present := make(map[string]bool, len(entries))
	for _, e := range entries {
		present[e.Path] = true
	}

	children := make(map[string][]SizedEntry)
	for _, e := range entries {
		group := rootGroup
		if e.Path != cfg.Root {
			if parent := parentPath(e.Path); present[parent] {
				group = parent
			}
		}
		children[group] = append(children[group], e)
	}

	for group := range children {
		sortEntries(children[group], cfg.Sort, cfg.Reverse)
	}

	out := make([]SizedEntry, 0, len(entries))
	stack := make([]SizedEntry, 0, len(children[rootGroup]))

	// Seed in reverse so popping yields the sorted order.
	roots := children[rootGroup]
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, roots[i])
	}

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, node)

		kids := children[node.Path]
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
	return out
}
