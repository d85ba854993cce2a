package scan

// applyMinSize drops entries whose measured size is below cfg.MinSize. The
// prune is disabled entirely by cfg.All, and exempt paths are always kept.
// Dropping an entry never drops its descendants; each entry is judged on its
// own size.
func applyMinSize(entries []SizedEntry, cfg *Config, res *Resolver) []SizedEntry {
	if cfg.All || cfg.MinSize == 0 {
		return entries
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.Size >= cfg.MinSize || res.Exempt(e.Path) {
			kept = append(kept, e)
		}
	}
	return kept
}

// applyCut drops entries below the cut threshold from the final result set.
// Unlike the min-size prune, the cut is applied unconditionally: All only
// disables pruning, never the cut. Exempt paths survive.
func applyCut(entries []SizedEntry, cfg *Config, res *Resolver) []SizedEntry {
	if cfg.Cut == 0 {
		return entries
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.Size >= cfg.Cut || res.Exempt(e.Path) {
			kept = append(kept, e)
		}
	}
	return kept
}
