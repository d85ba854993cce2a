package scan

import (
	"os"
	"path/filepath"
	"sort"
)

// EnumerateOptions carries the traversal flags and the run-scoped state the
// enumerator needs. The visited set and warning sink are owned by the caller
// (the planner) so the enumerator itself stays stateless.
type EnumerateOptions struct {
	// FollowSymlinks traverses through symbolic links to directories.
	FollowSymlinks bool

	// OneFilesystem stops the walk at device boundaries.
	OneFilesystem bool

	// Visited is the symlink-loop guard. Required when FollowSymlinks is
	// set; ignored otherwise.
	Visited *VisitedSet

	// Warn receives non-fatal traversal problems in encounter order. May
	// be nil.
	Warn func(path, message string)
}

func (o EnumerateOptions) warn(path, message string) {
	if o.Warn != nil {
		o.Warn(path, message)
	}
}

// Enumerator yields the entries of a directory subtree down to a depth
// bound. Implementations call visit once per entry, root first; a non-nil
// error from visit aborts the walk.
type Enumerator interface {
	Enumerate(root string, maxDepth int, opts EnumerateOptions, visit func(Entry) error) error
}

// OSEnumerator walks the real filesystem. Directory entries are visited in
// name order so two runs over an unchanged tree produce identical output.
type OSEnumerator struct{}

// Enumerate walks root down to maxDepth (0 = root only, UnboundedDepth = no
// bound). Unreadable subpaths become warnings, never errors; only an
// unreadable root fails the walk.
func (OSEnumerator) Enumerate(root string, maxDepth int, opts EnumerateOptions, visit func(Entry) error) error {
	info, err := os.Lstat(root)
	if err != nil {
		return err
	}

	st, err := statIdentity(root, info)
	if err != nil {
		return err
	}

	rootEntry := Entry{
		Path:  root,
		Kind:  KindFromMode(info.Mode()),
		Depth: 0,
		Dev:   st.Dev,
		Inode: st.Ino,
	}
	if err := visit(rootEntry); err != nil {
		return err
	}

	if !info.IsDir() {
		return nil
	}

	w := &walker{
		rootDev: st.Dev,
		opts:    opts,
		visit:   visit,
	}
	if opts.FollowSymlinks && opts.Visited != nil && (st.Dev != 0 || st.Ino != 0) {
		opts.Visited.Visit(DevIno{Dev: st.Dev, Ino: st.Ino})
	}
	return w.descend(root, 0, maxDepth)
}

type walker struct {
	rootDev uint64
	opts    EnumerateOptions
	visit   func(Entry) error
}

// descend lists the children of dir (which sits at depth) and recurses while
// the depth bound allows.
func (w *walker) descend(dir string, depth, maxDepth int) error {
	if maxDepth != UnboundedDepth && depth >= maxDepth {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		w.opts.warn(dir, "cannot read directory: "+err.Error())
		return nil
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, de := range entries {
		child := filepath.Join(dir, de.Name())
		info, err := os.Lstat(child)
		if err != nil {
			w.opts.warn(child, "cannot stat: "+err.Error())
			continue
		}

		st, err := statIdentity(child, info)
		if err != nil {
			w.opts.warn(child, "cannot stat: "+err.Error())
			continue
		}

		kind := KindFromMode(info.Mode())

		// Mount boundary: entries on another device are skipped
		// entirely, descendants included.
		if w.opts.OneFilesystem && st.Dev != w.rootDev {
			continue
		}

		e := Entry{
			Path:  child,
			Kind:  kind,
			Depth: depth + 1,
			Dev:   st.Dev,
			Inode: st.Ino,
		}
		if err := w.visit(e); err != nil {
			return err
		}

		switch kind {
		case KindDir:
			if w.opts.FollowSymlinks && w.opts.Visited != nil && (st.Dev != 0 || st.Ino != 0) {
				// A directory already reached through a link earlier in
				// the walk is not listed a second time.
				if seen := w.opts.Visited.Visit(DevIno{Dev: st.Dev, Ino: st.Ino}); seen {
					continue
				}
			}
			if err := w.descend(child, depth+1, maxDepth); err != nil {
				return err
			}
		case KindSymlink:
			if !w.opts.FollowSymlinks {
				continue
			}
			if err := w.descendLink(child, depth+1, maxDepth); err != nil {
				return err
			}
		}
	}
	return nil
}

// descendLink resolves a symlink and descends into its target when the
// target is a directory, the device boundary allows it, and the target has
// not been visited before.
func (w *walker) descendLink(link string, depth, maxDepth int) error {
	info, err := os.Stat(link)
	if err != nil {
		w.opts.warn(link, "broken symlink: "+err.Error())
		return nil
	}
	if !info.IsDir() {
		return nil
	}

	st, err := statIdentity(link, info)
	if err != nil {
		w.opts.warn(link, "cannot stat symlink target: "+err.Error())
		return nil
	}

	// One-filesystem wins over follow-symlinks for cross-device targets.
	if w.opts.OneFilesystem && st.Dev != w.rootDev {
		return nil
	}

	// Zero identities (platforms without inode data) cannot participate in
	// loop detection; the depth bound is the only guard there.
	if w.opts.Visited != nil && (st.Dev != 0 || st.Ino != 0) {
		if seen := w.opts.Visited.Visit(DevIno{Dev: st.Dev, Ino: st.Ino}); seen {
			w.opts.warn(link, "symlink loop detected; not descending")
			return nil
		}
	}

	return w.descend(link, depth, maxDepth)
}
