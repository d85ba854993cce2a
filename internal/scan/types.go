// Package scan implements the disk usage analysis pipeline: traversal
// planning, inclusion resolution, size measurement, filtering, sorting, and
// result assembly.
//
// A run is a single pass over an immutable Config. The only mutable state a
// run carries is its symlink-visited set and its ordered warning list, both
// scoped to the run and never shared.
package scan

import (
	"fmt"
	"os"
	"strings"
)

// Kind classifies a filesystem entry yielded by an Enumerator.
type Kind uint8

const (
	KindFile Kind = iota
	KindDir
	KindSymlink
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	case KindSymlink:
		return "symlink"
	default:
		return "other"
	}
}

// KindFromMode derives the Kind from an os.FileMode.
func KindFromMode(mode os.FileMode) Kind {
	switch {
	case mode&os.ModeSymlink != 0:
		return KindSymlink
	case mode.IsDir():
		return KindDir
	case mode.IsRegular():
		return KindFile
	default:
		return KindOther
	}
}

// Entry is a single filesystem entry produced by an Enumerator.
type Entry struct {
	// Path is absolute and cleaned.
	Path string

	// Kind is the entry type as seen by lstat (a symlink is KindSymlink
	// even when the enumerator later follows it).
	Kind Kind

	// Depth is the number of path separators between the scan root and
	// Path. The root itself has depth 0.
	Depth int

	// Dev and Inode identify the entry for loop and mount detection.
	Dev   uint64
	Inode uint64
}

// Candidate is a path selected by the traversal planner for measurement.
type Candidate struct {
	Path  string
	Depth int
}

// SizedEntry is a candidate that survived inclusion filtering and received a
// measured size.
type SizedEntry struct {
	Path  string
	Size  uint64
	Depth int
}

// Warning is a non-fatal problem encountered during a run. Warnings are
// accumulated in order and flushed to the diagnostic stream after the
// primary output.
type Warning struct {
	Path    string
	Message string
}

func (w Warning) String() string {
	if w.Path == "" {
		return w.Message
	}
	return fmt.Sprintf("%s: %s", w.Path, w.Message)
}

// DevIno is a device+inode pair used to detect symlink loops and already
// visited directories.
type DevIno struct {
	Dev uint64
	Ino uint64
}

// VisitedSet tracks device+inode pairs seen while following symlinks. It is
// created per run and must not be shared across concurrent runs.
type VisitedSet struct {
	seen map[DevIno]bool
}

// NewVisitedSet returns an empty visited set.
func NewVisitedSet() *VisitedSet {
	return &VisitedSet{seen: make(map[DevIno]bool)}
}

// Visit records the pair and reports whether it had been seen before.
func (v *VisitedSet) Visit(di DevIno) (seen bool) {
	if v.seen[di] {
		return true
	}
	v.seen[di] = true
	return false
}

// pathDepth returns the number of separators between root and path. The root
// itself is depth 0. path must equal root or descend from it.
func pathDepth(root, path string) int {
	if path == root {
		return 0
	}
	rel := strings.TrimPrefix(path, strings.TrimSuffix(root, "/")+"/")
	return strings.Count(rel, "/") + 1
}

// isUnder reports whether path equals root or is a descendant of it. The
// comparison is separator-aware: /data2/foo is not under /data.
func isUnder(root, path string) bool {
	if path == root {
		return true
	}
	prefix := strings.TrimSuffix(root, "/") + "/"
	return strings.HasPrefix(path, prefix)
}

// parentPath returns the parent directory of an absolute path, keeping "/"
// as its own parent.
func parentPath(path string) string {
	if path == "/" {
		return "/"
	}
	i := strings.LastIndexByte(path, '/')
	if i <= 0 {
		return "/"
	}
	return path[:i]
}
