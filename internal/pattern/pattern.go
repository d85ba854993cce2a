// Package pattern implements path pattern classification and matching for
// whitelist/blacklist filtering.
//
// Two pattern kinds are supported: shell-style globs and regular expressions.
// Regex patterns are written with an explicit "regex:" prefix and are matched
// with search semantics (found anywhere in the path). Glob patterns come in
// three shapes with distinct semantics:
//
//   - Absolute (leading separator): matches a path that equals the pattern or
//     descends from a directory matching it.
//   - Relative with separator: matches when the pattern's components appear as
//     a consecutive run of the path's components.
//   - Bare (no separator): matches when any single path component glob-matches
//     the pattern exactly. Substring containment is deliberately not enough.
package pattern

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// RegexPrefix marks a pattern string as a regular expression.
const RegexPrefix = "regex:"

// Kind identifies how a pattern's text is interpreted.
type Kind int

const (
	// Glob patterns use shell-style wildcard matching.
	Glob Kind = iota
	// Regex patterns use regular expression search.
	Regex
)

func (k Kind) String() string {
	switch k {
	case Glob:
		return "glob"
	case Regex:
		return "regex"
	default:
		return "unknown"
	}
}

// Pattern is a compiled path-selection rule.
type Pattern struct {
	// Kind is Glob or Regex.
	Kind Kind

	// Text is the pattern body. For Regex patterns the "regex:" prefix has
	// been stripped.
	Text string

	re *regexp.Regexp
}

// Compile parses a raw pattern string into a Pattern. Strings starting with
// "regex:" are compiled as regular expressions; everything else is a glob.
// An empty pattern (or an empty regex body) is an error, never a match-all.
func Compile(raw string) (Pattern, error) {
	if raw == "" {
		return Pattern{}, fmt.Errorf("empty pattern")
	}

	if strings.HasPrefix(raw, RegexPrefix) {
		body := strings.TrimPrefix(raw, RegexPrefix)
		if body == "" {
			return Pattern{}, fmt.Errorf("empty regex pattern")
		}
		re, err := regexp.Compile(body)
		if err != nil {
			return Pattern{}, fmt.Errorf("invalid regex pattern %q: %w", body, err)
		}
		return Pattern{Kind: Regex, Text: body, re: re}, nil
	}

	// Validate glob syntax up front so a bad pattern is a config-time error,
	// not a silent never-match at scan time.
	if _, err := filepath.Match(raw, "probe"); err != nil {
		return Pattern{}, fmt.Errorf("invalid glob pattern %q: %w", raw, err)
	}

	return Pattern{Kind: Glob, Text: raw}, nil
}

// MustCompile is Compile for patterns known to be valid. It panics on error
// and exists for tests and fixed defaults.
func MustCompile(raw string) Pattern {
	p, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// Matches reports whether path satisfies the pattern. The path is expected to
// be absolute and cleaned (no trailing separator). The function is pure.
func (p Pattern) Matches(path string) bool {
	if p.Text == "" {
		return false
	}

	if p.Kind == Regex {
		return p.re.FindStringIndex(path) != nil
	}

	if strings.HasPrefix(p.Text, "/") {
		return matchAbsolute(p.Text, path)
	}

	comps := splitComponents(path)
	if strings.Contains(p.Text, "/") {
		return matchComponentRun(splitComponents(p.Text), comps)
	}
	return matchAnyComponent(p.Text, comps)
}

// matchAbsolute reports whether path equals the absolute glob or descends
// from a directory matching it. Prefix comparison is separator-bounded: the
// pattern /data never matches /database.
func matchAbsolute(pat, path string) bool {
	if ok, _ := filepath.Match(pat, path); ok {
		return true
	}
	for i := 1; i < len(path); i++ {
		if path[i] != '/' {
			continue
		}
		if ok, _ := filepath.Match(pat, path[:i]); ok {
			return true
		}
	}
	return false
}

// matchComponentRun reports whether the pattern components appear as a
// consecutive run among the path components.
func matchComponentRun(pat, comps []string) bool {
	if len(pat) == 0 || len(pat) > len(comps) {
		return false
	}
	for start := 0; start+len(pat) <= len(comps); start++ {
		all := true
		for i, pc := range pat {
			if ok, _ := filepath.Match(pc, comps[start+i]); !ok {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

// matchAnyComponent reports whether any single path component glob-matches
// the pattern exactly.
func matchAnyComponent(pat string, comps []string) bool {
	for _, c := range comps {
		if ok, _ := filepath.Match(pat, c); ok {
			return true
		}
	}
	return false
}

// splitComponents breaks a slash-separated path into its non-empty components.
func splitComponents(path string) []string {
	parts := strings.Split(path, "/")
	comps := parts[:0]
	for _, p := range parts {
		if p != "" {
			comps = append(comps, p)
		}
	}
	return comps
}
