package scan

import (
	"fmt"
	"os"
	"time"

	"github.com/rcastner/duscan/internal/logger"
)

// Result is the output of one run: the ordered entries (flat or pre-order
// tree, both depth-tagged) and the warnings accumulated along the way.
type Result struct {
	// Entries is the final ordered sequence. In tree mode the order is a
	// depth-first pre-order walk with siblings sorted per the config.
	Entries []SizedEntry

	// Tree records which assembly produced Entries.
	Tree bool

	// Warnings holds every non-fatal problem in encounter order. Flush
	// them to the diagnostic stream after the primary output.
	Warnings []Warning

	// Candidates is the number of paths the planner produced, before
	// inclusion and size filtering.
	Candidates int

	// Duration is the wall time of the run.
	Duration time.Duration
}

// Runner executes scans. The zero value is not usable; construct with
// NewRunner so the OS-backed collaborators are wired in, or inject fakes for
// tests.
type Runner struct {
	Enumerator Enumerator
	Sizer      Sizer
	Log        *logger.Logger

	// Progress, when non-nil, receives (done, total) after each completed
	// size measurement. Calls arrive from a single goroutine.
	Progress func(done, total int)
}

// NewRunner returns a Runner using the real filesystem enumerator and the
// du-style sizer.
func NewRunner(log *logger.Logger) *Runner {
	return &Runner{
		Enumerator: OSEnumerator{},
		Sizer:      DiskSizer{},
		Log:        log,
	}
}

// Run executes the full pipeline over cfg. Fatal problems return a
// ConfigError, TargetError, or AllFailedError; everything else degrades to
// warnings in the Result.
func (r *Runner) Run(cfg *Config, preWarnings []Warning) (*Result, error) {
	start := time.Now()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := checkTarget(cfg.Root); err != nil {
		return nil, err
	}

	res := &Result{Tree: cfg.Tree}
	res.Warnings = append(res.Warnings, preWarnings...)
	warn := func(path, message string) {
		res.Warnings = append(res.Warnings, Warning{Path: path, Message: message})
	}

	resolver := NewResolver(cfg)

	candidates, err := NewPlanner(r.Enumerator).Plan(cfg, warn)
	if err != nil {
		return nil, err
	}
	res.Candidates = len(candidates)
	r.logf("planner produced %d candidate(s) under %s", len(candidates), cfg.Root)

	// Inclusion resolution before any size is measured: excluded paths
	// never reach the sizer.
	included := candidates[:0]
	for _, c := range candidates {
		if resolver.ShouldInclude(c.Path) {
			included = append(included, c)
		}
	}
	r.logf("%d candidate(s) included after whitelist/blacklist resolution", len(included))

	opts := SizeOptions{
		FollowSymlinks: cfg.FollowSymlinks,
		OneFilesystem:  cfg.OneFilesystem,
	}
	sizes := measureAll(included, r.Sizer, opts, cfg.Workers, warn, r.Progress)

	entries := make([]SizedEntry, 0, len(sizes))
	for _, c := range included {
		size, ok := sizes[c.Path]
		if !ok {
			continue // measurement failed, warning already recorded
		}
		entries = append(entries, SizedEntry{Path: c.Path, Size: size, Depth: c.Depth})
	}

	if len(entries) == 0 && len(included) > 0 {
		return nil, &AllFailedError{Root: cfg.Root, Warnings: len(res.Warnings)}
	}

	entries = applyMinSize(entries, cfg, resolver)
	r.logf("%d entries survived the min-size prune", len(entries))

	if cfg.Tree {
		entries = applyCut(entries, cfg, resolver)
		res.Entries = assembleTree(entries, cfg)
	} else {
		entries = assembleFlat(entries, cfg)
		res.Entries = applyCut(entries, cfg, resolver)
	}

	res.Duration = time.Since(start)
	return res, nil
}

func (r *Runner) logf(format string, args ...interface{}) {
	if r.Log != nil {
		r.Log.Debugf(format, args...)
	}
}

// checkTarget verifies that the scan root exists, is a directory, and is
// readable.
func checkTarget(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return &TargetError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return &TargetError{Path: root, Err: fmt.Errorf("not a directory")}
	}
	f, err := os.Open(root)
	if err != nil {
		return &TargetError{Path: root, Err: err}
	}
	f.Close()
	return nil
}
