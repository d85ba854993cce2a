package pattern

// Set is an ordered collection of patterns with first-seen-wins deduplication.
// Merge order is significant: command-line patterns are added first, then the
// local pattern file, then the home-directory pattern file, so an entry seen
// in an earlier source shadows repeats from later ones.
type Set struct {
	patterns []Pattern
	seen     map[string]bool
}

// NewSet returns an empty pattern set.
func NewSet() *Set {
	return &Set{seen: make(map[string]bool)}
}

// Add compiles raw and appends it unless an identical pattern string was
// already added. Empty strings are rejected by Compile.
func (s *Set) Add(raw string) error {
	if s.seen[raw] {
		return nil
	}
	p, err := Compile(raw)
	if err != nil {
		return err
	}
	s.seen[raw] = true
	s.patterns = append(s.patterns, p)
	return nil
}

// AddAll adds each raw pattern in order, stopping at the first compile error.
func (s *Set) AddAll(raws []string) error {
	for _, raw := range raws {
		if err := s.Add(raw); err != nil {
			return err
		}
	}
	return nil
}

// Patterns returns the patterns in insertion order. The returned slice is
// shared; callers must not mutate it.
func (s *Set) Patterns() []Pattern {
	if s == nil {
		return nil
	}
	return s.patterns
}

// Empty reports whether the set contains no patterns.
func (s *Set) Empty() bool {
	return s == nil || len(s.patterns) == 0
}

// MatchesAny reports whether any pattern in the set matches path.
func (s *Set) MatchesAny(path string) bool {
	if s == nil {
		return false
	}
	for _, p := range s.patterns {
		if p.Matches(path) {
			return true
		}
	}
	return false
}
