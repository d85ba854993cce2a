package scan

import (
	"errors"
	"strings"
	"sync"
)

// fakeEnumerator replays a fixed entry list, honoring the depth bound the
// way a real enumerator would.
type fakeEnumerator struct {
	entries []Entry
}

func (f *fakeEnumerator) Enumerate(root string, maxDepth int, opts EnumerateOptions, visit func(Entry) error) error {
	for _, e := range f.entries {
		if maxDepth != UnboundedDepth && e.Depth > maxDepth {
			continue
		}
		if err := visit(e); err != nil {
			return err
		}
	}
	return nil
}

// fakeTree builds a fakeEnumerator from absolute paths, deriving depths
// from the root.
func fakeTree(root string, paths ...string) *fakeEnumerator {
	f := &fakeEnumerator{}
	f.entries = append(f.entries, Entry{Path: root, Kind: KindDir, Depth: 0})
	for _, p := range paths {
		kind := KindFile
		if strings.HasSuffix(p, "/") {
			kind = KindDir
			p = strings.TrimSuffix(p, "/")
		}
		f.entries = append(f.entries, Entry{Path: p, Kind: kind, Depth: pathDepth(root, p)})
	}
	return f
}

// fakeSizer serves sizes from a map and fails paths listed in fail.
type fakeSizer struct {
	mu    sync.Mutex
	sizes map[string]uint64
	fail  map[string]bool
	calls map[string]int
}

func newFakeSizer(sizes map[string]uint64) *fakeSizer {
	return &fakeSizer{
		sizes: sizes,
		fail:  make(map[string]bool),
		calls: make(map[string]int),
	}
}

func (f *fakeSizer) Size(path string, opts SizeOptions) (uint64, error) {
	f.mu.Lock()
	f.calls[path]++
	f.mu.Unlock()

	if f.fail[path] {
		return 0, errors.New("simulated I/O failure")
	}
	return f.sizes[path], nil
}
