package scan

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rcastner/duscan/internal/pattern"
)

// SortKey selects the ordering applied to results.
type SortKey int

const (
	// SortBySize orders entries by byte size, ascending by default.
	SortBySize SortKey = iota
	// SortByName orders entries lexicographically by full path.
	SortByName
)

func (k SortKey) String() string {
	if k == SortByName {
		return "name"
	}
	return "size"
}

// ParseSortKey parses a sort key name. Valid values are "size" and "name".
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "size":
		return SortBySize, nil
	case "name":
		return SortByName, nil
	default:
		return SortBySize, fmt.Errorf("invalid sort key %q, must be size or name", s)
	}
}

// UnboundedDepth is the MaxDepth sentinel that disables the depth bound.
const UnboundedDepth = -1

// Config is the immutable configuration for a single run. Build it once,
// validate it, then hand it to Run; nothing mutates it afterwards.
type Config struct {
	// Root is the absolute scan root.
	Root string

	// MaxDepth bounds the traversal: 0 lists the root only, UnboundedDepth
	// removes the bound.
	MaxDepth int

	// MinSize drops entries smaller than this many bytes at traversal
	// time, unless All is set or the path is exempt.
	MinSize uint64

	// Cut drops entries smaller than this many bytes after sorting, unless
	// the path is exempt. Zero disables it. All never disables Cut.
	Cut uint64

	// All disables the min-size prune.
	All bool

	// Sort and Reverse control result ordering.
	Sort    SortKey
	Reverse bool

	// Tree switches output assembly from a flat list to a parent-grouped
	// tree.
	Tree bool

	// FollowSymlinks traverses through symbolic links. When false, links
	// are listed as leaves and never expanded.
	FollowSymlinks bool

	// OneFilesystem prevents crossing device boundaries. When both this
	// and FollowSymlinks are set and a link target sits on another device,
	// OneFilesystem wins.
	OneFilesystem bool

	// Whitelist and Blacklist are the pattern sets. A non-empty whitelist
	// fully overrides the blacklist.
	Whitelist *pattern.Set
	Blacklist *pattern.Set

	// WhitelistPaths are explicit absolute paths (not globs) that are
	// always included and exempt from size filtering, even beyond
	// MaxDepth. Populate via ValidateWhitelistPaths.
	WhitelistPaths []string

	// Workers bounds the size-measurement pool. Zero or negative selects
	// a runtime default.
	Workers int
}

// Validate checks the configuration values that do not require filesystem
// access. Filesystem validation of Root happens at the start of Run.
func (c *Config) Validate() error {
	if c.Root == "" {
		return &ConfigError{Reason: "scan root must not be empty"}
	}
	if !filepath.IsAbs(c.Root) {
		return &ConfigError{Reason: fmt.Sprintf("scan root %q must be absolute", c.Root)}
	}
	if c.MaxDepth < UnboundedDepth {
		return &ConfigError{Reason: fmt.Sprintf("max depth must be >= 0 or the unbounded sentinel, got %d", c.MaxDepth)}
	}
	if c.Sort != SortBySize && c.Sort != SortByName {
		return &ConfigError{Reason: fmt.Sprintf("unknown sort key %d", c.Sort)}
	}
	return nil
}

// ValidateWhitelistPaths normalizes and validates explicit whitelist paths
// against the scan root. Paths outside the root are dropped with a warning
// naming both the path and the root; they never participate in matching.
// Called once at configuration time, not per path.
func ValidateWhitelistPaths(root string, paths []string) (active []string, warnings []Warning) {
	for _, p := range paths {
		cleaned := filepath.Clean(p)
		if cleaned != "/" {
			cleaned = strings.TrimSuffix(cleaned, "/")
		}
		if !isUnder(root, cleaned) {
			warnings = append(warnings, Warning{
				Path:    cleaned,
				Message: fmt.Sprintf("whitelist path is outside the scan root %s; entry ignored", root),
			})
			continue
		}
		active = append(active, cleaned)
	}
	return active, warnings
}
