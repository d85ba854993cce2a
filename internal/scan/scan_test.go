//go:build !windows

package scan

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rcastner/duscan/internal/pattern"
)

// runnerConfig builds a validated-shape Config over root that tests mutate
// before calling Run.
func runnerConfig(root string) *Config {
	return &Config{
		Root:      root,
		MaxDepth:  UnboundedDepth,
		Sort:      SortBySize,
		Whitelist: pattern.NewSet(),
		Blacklist: pattern.NewSet(),
		Workers:   2,
	}
}

// fakeRunner wires a fake tree and sizer into a Runner for pure pipeline
// tests; root must still exist on disk because Run probes it.
func fakeRunner(enum *fakeEnumerator, sizer *fakeSizer) *Runner {
	return &Runner{Enumerator: enum, Sizer: sizer}
}

func TestRunMinSizePrune(t *testing.T) {
	root := t.TempDir()
	enum := fakeTree(root,
		root+"/big/",
		root+"/small",
	)
	sizer := newFakeSizer(map[string]uint64{
		root:            3 << 20,
		root + "/big":   2 << 20,
		root + "/small": 512 << 10,
	})

	cfg := runnerConfig(root)
	cfg.MinSize = 1 << 20

	res, err := fakeRunner(enum, sizer).Run(cfg, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []string{root + "/big", root}
	if got := entryPaths(res.Entries); !reflect.DeepEqual(got, want) {
		t.Errorf("entries = %v, want %v", got, want)
	}
}

func TestRunAllDisablesPruneNotCut(t *testing.T) {
	root := t.TempDir()
	enum := fakeTree(root, root+"/tiny", root+"/huge")
	sizer := newFakeSizer(map[string]uint64{
		root:           6 << 20,
		root + "/tiny": 4 << 10,
		root + "/huge": 5 << 20,
	})

	cfg := runnerConfig(root)
	cfg.All = true
	cfg.MinSize = 1 << 20
	cfg.Cut = 1 << 20

	res, err := fakeRunner(enum, sizer).Run(cfg, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []string{root + "/huge", root}
	if got := entryPaths(res.Entries); !reflect.DeepEqual(got, want) {
		t.Errorf("entries = %v, want %v", got, want)
	}
}

func TestRunDeepWhitelistKeepsAncestorChain(t *testing.T) {
	root := t.TempDir()
	deep := filepath.Join(root, "x", "y", "deep")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatal(err)
	}
	enum := fakeTree(root,
		root+"/x/",
		root+"/x/y/",
		root+"/x/y/deep/",
		root+"/other/",
	)
	sizer := newFakeSizer(map[string]uint64{
		root:               100,
		root + "/x":        80,
		root + "/x/y":      60,
		root + "/x/y/deep": 40,
	})

	cfg := runnerConfig(root)
	cfg.MaxDepth = 1
	cfg.WhitelistPaths = []string{deep}

	res, err := fakeRunner(enum, sizer).Run(cfg, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// Depth bound 1 plus the whitelist extension: the deep path and its
	// ancestors appear; /other is excluded by whitelist precedence.
	want := []string{root + "/x/y/deep", root + "/x/y", root + "/x", root}
	if got := entryPaths(res.Entries); !reflect.DeepEqual(got, want) {
		t.Errorf("entries = %v, want %v", got, want)
	}
}

func TestRunTreeParentBeforeChild(t *testing.T) {
	root := t.TempDir()
	enum := fakeTree(root,
		root+"/a/",
		root+"/a/inner/",
		root+"/b",
	)
	sizer := newFakeSizer(map[string]uint64{
		root:              100,
		root + "/a":       60,
		root + "/a/inner": 50,
		root + "/b":       40,
	})

	cfg := runnerConfig(root)
	cfg.Tree = true

	res, err := fakeRunner(enum, sizer).Run(cfg, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Tree {
		t.Error("result not marked as tree")
	}
	pos := make(map[string]int, len(res.Entries))
	for i, e := range res.Entries {
		pos[e.Path] = i
	}
	for _, e := range res.Entries {
		if e.Path == root {
			continue
		}
		parent := parentPath(e.Path)
		if pi, ok := pos[parent]; ok && pi > pos[e.Path] {
			t.Errorf("parent %s emitted after child %s", parent, e.Path)
		}
	}
}

func TestRunIdempotent(t *testing.T) {
	root := t.TempDir()
	sizes := map[string]uint64{
		root:        300,
		root + "/a": 200,
		root + "/b": 100,
	}
	cfg := runnerConfig(root)

	var first []string
	for i := 0; i < 3; i++ {
		enum := fakeTree(root, root+"/a", root+"/b")
		res, err := fakeRunner(enum, newFakeSizer(sizes)).Run(cfg, nil)
		if err != nil {
			t.Fatalf("Run #%d: %v", i, err)
		}
		got := entryPaths(res.Entries)
		if i == 0 {
			first = got
			continue
		}
		if !reflect.DeepEqual(got, first) {
			t.Errorf("run #%d = %v, differs from first %v", i, got, first)
		}
	}
}

func TestRunAllMeasurementsFailed(t *testing.T) {
	root := t.TempDir()
	enum := fakeTree(root, root+"/a")
	sizer := newFakeSizer(nil)
	sizer.fail[root] = true
	sizer.fail[root+"/a"] = true

	cfg := runnerConfig(root)
	_, err := fakeRunner(enum, sizer).Run(cfg, nil)

	var allFailed *AllFailedError
	if !errors.As(err, &allFailed) {
		t.Fatalf("err = %v, want *AllFailedError", err)
	}
	if allFailed.Root != root {
		t.Errorf("Root = %s, want %s", allFailed.Root, root)
	}
	if allFailed.Warnings != 2 {
		t.Errorf("Warnings = %d, want 2", allFailed.Warnings)
	}
}

func TestRunPartialFailureDegrades(t *testing.T) {
	root := t.TempDir()
	enum := fakeTree(root, root+"/ok", root+"/bad")
	sizer := newFakeSizer(map[string]uint64{root: 10, root + "/ok": 5})
	sizer.fail[root+"/bad"] = true

	cfg := runnerConfig(root)
	res, err := fakeRunner(enum, sizer).Run(cfg, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []string{root + "/ok", root}
	if got := entryPaths(res.Entries); !reflect.DeepEqual(got, want) {
		t.Errorf("entries = %v, want %v", got, want)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Path != root+"/bad" {
		t.Errorf("warnings = %v, want one for %s/bad", res.Warnings, root)
	}
}

func TestRunMissingTarget(t *testing.T) {
	cfg := runnerConfig(filepath.Join(t.TempDir(), "absent"))
	_, err := fakeRunner(fakeTree(cfg.Root), newFakeSizer(nil)).Run(cfg, nil)

	var target *TargetError
	if !errors.As(err, &target) {
		t.Fatalf("err = %v, want *TargetError", err)
	}
}

func TestRunTargetIsFile(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "plain")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := runnerConfig(file)
	_, err := fakeRunner(fakeTree(file), newFakeSizer(nil)).Run(cfg, nil)

	var target *TargetError
	if !errors.As(err, &target) {
		t.Fatalf("err = %v, want *TargetError", err)
	}
}

func TestRunInvalidConfig(t *testing.T) {
	cfg := runnerConfig("relative/root")
	_, err := fakeRunner(fakeTree(cfg.Root), newFakeSizer(nil)).Run(cfg, nil)

	var conf *ConfigError
	if !errors.As(err, &conf) {
		t.Fatalf("err = %v, want *ConfigError", err)
	}
}

func TestRunPreWarningsPrepended(t *testing.T) {
	root := t.TempDir()
	enum := fakeTree(root)
	sizer := newFakeSizer(map[string]uint64{root: 1})

	pre := []Warning{{Path: "/elsewhere", Message: "whitelisted path is outside the target"}}
	res, err := fakeRunner(enum, sizer).Run(runnerConfig(root), pre)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Path != "/elsewhere" {
		t.Errorf("warnings = %v, want the pre-warning first", res.Warnings)
	}
}

func TestRunExcludedPathsNeverSized(t *testing.T) {
	root := t.TempDir()
	enum := fakeTree(root, root+"/keep", root+"/skip")
	sizer := newFakeSizer(map[string]uint64{root: 10, root + "/keep": 5, root + "/skip": 5})

	cfg := runnerConfig(root)
	if err := cfg.Blacklist.Add("skip"); err != nil {
		t.Fatal(err)
	}

	if _, err := fakeRunner(enum, sizer).Run(cfg, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sizer.calls[root+"/skip"] != 0 {
		t.Errorf("excluded path was measured %d times", sizer.calls[root+"/skip"])
	}
}

// End-to-end over the real filesystem.
func TestRunRealFilesystem(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "docs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "docs", "report"), make([]byte, 128<<10), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "note"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := runnerConfig(root)
	cfg.MaxDepth = 1

	res, err := NewRunner(nil).Run(cfg, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []string{filepath.Join(root, "note"), filepath.Join(root, "docs"), root}
	if got := entryPaths(res.Entries); !reflect.DeepEqual(got, want) {
		t.Errorf("entries = %v, want %v", got, want)
	}
	// The root sorts last: its total includes everything beneath it even
	// though the walk stopped at depth 1.
	rootEntry := res.Entries[len(res.Entries)-1]
	if rootEntry.Size < 128<<10 {
		t.Errorf("root size = %d, want >= %d", rootEntry.Size, 128<<10)
	}
	if res.Candidates != 3 {
		t.Errorf("candidates = %d, want 3", res.Candidates)
	}
}
