package scan

// Resolver combines the configured whitelist patterns, whitelist paths, and
// blacklist patterns into one include/exclude decision per path. It holds no
// mutable state; all methods are pure with respect to the Config.
type Resolver struct {
	cfg *Config
}

// NewResolver builds a resolver over an already-validated Config.
func NewResolver(cfg *Config) *Resolver {
	return &Resolver{cfg: cfg}
}

// hasWhitelist reports whether any whitelist rule is configured.
func (r *Resolver) hasWhitelist() bool {
	return !r.cfg.Whitelist.Empty() || len(r.cfg.WhitelistPaths) > 0
}

// ShouldInclude decides whether path participates in the result set.
//
// Precedence, in order:
//  1. Any whitelist rule present: included iff the path equals or descends
//     from a whitelist path, is an ancestor of one (kept so the deep entry
//     stays connected to the bounded frontier), or matches a whitelist
//     pattern. The blacklist is never consulted, even for a blacklisted
//     child of a whitelisted parent.
//  2. Otherwise, a blacklist excludes whatever it matches.
//  3. Otherwise, included.
func (r *Resolver) ShouldInclude(path string) bool {
	if r.hasWhitelist() {
		if r.cfg.Whitelist.MatchesAny(path) {
			return true
		}
		for _, wp := range r.cfg.WhitelistPaths {
			if isUnder(wp, path) || isUnder(path, wp) {
				return true
			}
		}
		return false
	}

	if !r.cfg.Blacklist.Empty() {
		return !r.cfg.Blacklist.MatchesAny(path)
	}

	return true
}

// Exempt reports whether path is immune to the min-size prune and the cut
// filter: it matches a whitelist pattern, or equals or descends from an
// explicit whitelist path. Ancestors added only for connectivity are not
// exempt.
func (r *Resolver) Exempt(path string) bool {
	if r.cfg.Whitelist.MatchesAny(path) {
		return true
	}
	for _, wp := range r.cfg.WhitelistPaths {
		if isUnder(wp, path) {
			return true
		}
	}
	return false
}
