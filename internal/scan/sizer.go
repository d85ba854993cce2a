package scan

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// SizeOptions carries the flags a size measurement honors.
type SizeOptions struct {
	// FollowSymlinks measures through symbolic links instead of counting
	// the link object itself.
	FollowSymlinks bool

	// OneFilesystem excludes content on other devices from directory
	// totals.
	OneFilesystem bool
}

// Sizer measures the disk usage of a single path. A failure means the size
// is unknown; the pipeline records a warning and drops the path instead of
// aborting the run.
type Sizer interface {
	Size(path string, opts SizeOptions) (uint64, error)
}

// DiskSizer measures allocated disk usage the way du does: 512-byte blocks,
// directories summed recursively. Unreadable descendants are skipped so one
// bad subtree cannot fail the measurement of its parent.
type DiskSizer struct{}

// Size returns the disk usage of path in bytes.
func (DiskSizer) Size(path string, opts SizeOptions) (uint64, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return 0, err
	}

	var rootDev uint64
	if opts.OneFilesystem {
		if st, err := statIdentity(path, info); err == nil {
			rootDev = st.Dev
		}
	}

	visited := NewVisitedSet()
	return sizeOf(path, info, opts, rootDev, visited), nil
}

// sizeOf computes the usage of one entry, recursing into directories. The
// visited set only matters when following symlinks, where a loop would
// otherwise recurse forever.
func sizeOf(path string, info os.FileInfo, opts SizeOptions, rootDev uint64, visited *VisitedSet) uint64 {
	isLink := info.Mode()&os.ModeSymlink != 0

	if isLink {
		if !opts.FollowSymlinks {
			return diskUsageBytes(info)
		}
		target, err := os.Stat(path)
		if err != nil {
			return diskUsageBytes(info)
		}
		info = target
	}

	if !info.IsDir() {
		return diskUsageBytes(info)
	}

	if st, err := statIdentity(path, info); err == nil {
		if opts.OneFilesystem && rootDev != 0 && st.Dev != rootDev {
			return 0
		}
		if opts.FollowSymlinks && (st.Dev != 0 || st.Ino != 0) {
			if seen := visited.Visit(DevIno{Dev: st.Dev, Ino: st.Ino}); seen && isLink {
				return 0
			}
		}
	}

	total := diskUsageBytes(info)
	entries, err := os.ReadDir(path)
	if err != nil {
		return total
	}
	for _, de := range entries {
		child := filepath.Join(path, de.Name())
		ci, err := os.Lstat(child)
		if err != nil {
			continue
		}
		total += sizeOf(child, ci, opts, rootDev, visited)
	}
	return total
}

// measureAll runs size lookups for every candidate through a bounded worker
// pool and fans the results into one map. Each path is queried by exactly
// one worker, and the function returns only after every outstanding lookup
// has completed. Failed lookups call fail and leave no map entry. progress,
// when non-nil, is called once per completed lookup from the fan-in side.
func measureAll(candidates []Candidate, sizer Sizer, opts SizeOptions, workers int, fail func(path, message string), progress func(done, total int)) map[string]uint64 {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(candidates) {
		workers = len(candidates)
	}
	if workers < 1 {
		workers = 1
	}

	type result struct {
		path string
		size uint64
		err  error
	}

	jobs := make(chan Candidate)
	results := make(chan result)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range jobs {
				size, err := sizer.Size(c.Path, opts)
				results <- result{path: c.Path, size: size, err: err}
			}
		}()
	}

	go func() {
		for _, c := range candidates {
			jobs <- c
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	sizes := make(map[string]uint64, len(candidates))
	type failure struct {
		path    string
		message string
	}
	var failures []failure
	done := 0
	for r := range results {
		done++
		if progress != nil {
			progress(done, len(candidates))
		}
		if r.err != nil {
			failures = append(failures, failure{path: r.path, message: "cannot measure size: " + r.err.Error()})
			continue
		}
		sizes[r.path] = r.size
	}

	// Report failures in candidate order so warnings stay deterministic
	// regardless of worker scheduling.
	if len(failures) > 0 && fail != nil {
		failed := make(map[string]string, len(failures))
		for _, f := range failures {
			failed[f.path] = f.message
		}
		for _, c := range candidates {
			if msg, ok := failed[c.Path]; ok {
				fail(c.Path, msg)
			}
		}
	}

	return sizes
}
