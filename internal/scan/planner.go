package scan

import (
	"os"
)

// Planner produces the candidate path set for a run: the depth-bounded
// enumeration unioned with any whitelisted paths beyond the bound plus the
// ancestor chain connecting them back to the bounded frontier.
type Planner struct {
	enum Enumerator

	// stat probes a whitelisted path for existence before the extension
	// pass adds it. Overridable in tests.
	stat func(path string) error
}

// NewPlanner builds a planner over the given enumerator.
func NewPlanner(enum Enumerator) *Planner {
	return &Planner{
		enum: enum,
		stat: func(path string) error {
			_, err := os.Lstat(path)
			return err
		},
	}
}

// Plan runs both traversal sub-passes and returns the deduplicated candidate
// list in encounter order: bounded-pass candidates first, then
// whitelist-extension candidates ancestor-first. The visited set guarding
// symlink loops lives for this call only.
func (p *Planner) Plan(cfg *Config, warn func(path, message string)) ([]Candidate, error) {
	seen := make(map[string]bool)
	var candidates []Candidate

	add := func(path string, depth int) {
		if seen[path] {
			return
		}
		seen[path] = true
		candidates = append(candidates, Candidate{Path: path, Depth: depth})
	}

	opts := EnumerateOptions{
		FollowSymlinks: cfg.FollowSymlinks,
		OneFilesystem:  cfg.OneFilesystem,
		Warn:           warn,
	}
	if cfg.FollowSymlinks {
		opts.Visited = NewVisitedSet()
	}

	err := p.enum.Enumerate(cfg.Root, cfg.MaxDepth, opts, func(e Entry) error {
		add(e.Path, e.Depth)
		return nil
	})
	if err != nil {
		return nil, &TargetError{Path: cfg.Root, Err: err}
	}

	p.extendWhitelist(cfg, add, warn)

	return candidates, nil
}

// extendWhitelist adds every active whitelist path that lies beyond the
// depth bound, together with the intermediate ancestors between the bounded
// frontier and the deep entry, so the final tree or list stays connected.
func (p *Planner) extendWhitelist(cfg *Config, add func(path string, depth int), warn func(path, message string)) {
	if cfg.MaxDepth == UnboundedDepth {
		return
	}

	for _, wp := range cfg.WhitelistPaths {
		depth := pathDepth(cfg.Root, wp)
		if depth <= cfg.MaxDepth {
			continue // the bounded pass already covered it
		}

		if err := p.stat(wp); err != nil {
			warn(wp, "whitelisted path cannot be read: "+err.Error())
			continue
		}

		// Ancestor chain from just below the frontier down to the
		// whitelisted path itself.
		chain := ancestorChain(cfg.Root, wp)
		for i, anc := range chain {
			ancDepth := i + 1
			if ancDepth <= cfg.MaxDepth {
				continue
			}
			add(anc, ancDepth)
		}
	}
}

// ancestorChain lists the paths from the first component below root down to
// path itself, shallowest first. ancestorChain("/r", "/r/a/b") returns
// ["/r/a", "/r/a/b"].
func ancestorChain(root, path string) []string {
	if !isUnder(root, path) || path == root {
		return nil
	}
	base := root
	if base != "/" {
		base += "/"
	}
	rel := path[len(base):]

	var chain []string
	start := 0
	for i := 0; i <= len(rel); i++ {
		if i == len(rel) || rel[i] == '/' {
			if i > start {
				chain = append(chain, base+rel[:i])
			}
			start = i + 1
		}
	}
	return chain
}
