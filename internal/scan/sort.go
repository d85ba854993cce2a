package scan

import "sort"

// sortEntries orders entries in place by the configured key. Size sorts
// ascending by default with ties broken by path ascending; name sorts
// lexicographically by full path. reverse flips the primary comparison but
// never the tie-break, so output stays deterministic either way.
func sortEntries(entries []SizedEntry, key SortKey, reverse bool) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch key {
		case SortByName:
			if reverse {
				return a.Path > b.Path
			}
			return a.Path < b.Path
		default:
			if a.Size != b.Size {
				if reverse {
					return a.Size > b.Size
				}
				return a.Size < b.Size
			}
			return a.Path < b.Path
		}
	})
}
