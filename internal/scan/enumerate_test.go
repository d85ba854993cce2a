//go:build !windows

package scan

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// buildTestTree creates the given relative paths under a fresh temp dir.
// A trailing slash marks a directory; everything else becomes a small file.
func buildTestTree(t *testing.T, paths ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, p := range paths {
		full := filepath.Join(root, strings.TrimSuffix(p, "/"))
		if strings.HasSuffix(p, "/") {
			if err := os.MkdirAll(full, 0o755); err != nil {
				t.Fatal(err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func enumeratePaths(t *testing.T, root string, maxDepth int, opts EnumerateOptions) []string {
	t.Helper()
	var got []string
	err := OSEnumerator{}.Enumerate(root, maxDepth, opts, func(e Entry) error {
		rel, err := filepath.Rel(root, e.Path)
		if err != nil {
			return err
		}
		got = append(got, rel)
		return nil
	})
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	return got
}

func TestEnumerateDepthBound(t *testing.T) {
	root := buildTestTree(t,
		"a/",
		"a/deep/",
		"a/deep/leaf",
		"b.txt",
	)

	got := enumeratePaths(t, root, 1, EnumerateOptions{})
	want := []string{".", "a", "b.txt"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("depth 1 = %v, want %v", got, want)
	}

	got = enumeratePaths(t, root, UnboundedDepth, EnumerateOptions{})
	want = []string{".", "a", "a/deep", "a/deep/leaf", "b.txt"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unbounded = %v, want %v", got, want)
	}
}

func TestEnumerateDepthZeroRootOnly(t *testing.T) {
	root := buildTestTree(t, "a/", "a/leaf")
	got := enumeratePaths(t, root, 0, EnumerateOptions{})
	if !reflect.DeepEqual(got, []string{"."}) {
		t.Errorf("depth 0 = %v, want root only", got)
	}
}

func TestEnumerateNameOrderDeterministic(t *testing.T) {
	root := buildTestTree(t, "zeta", "alpha", "mid")
	got := enumeratePaths(t, root, 1, EnumerateOptions{})
	want := []string{".", "alpha", "mid", "zeta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestEnumerateSymlinkIsLeafByDefault(t *testing.T) {
	root := buildTestTree(t, "real/", "real/inside")
	link := filepath.Join(root, "link")
	if err := os.Symlink(filepath.Join(root, "real"), link); err != nil {
		t.Fatal(err)
	}

	got := enumeratePaths(t, root, UnboundedDepth, EnumerateOptions{})
	for _, p := range got {
		if p == "link/inside" {
			t.Fatalf("descended through symlink without dereference: %v", got)
		}
	}
	found := false
	for _, p := range got {
		if p == "link" {
			found = true
		}
	}
	if !found {
		t.Errorf("symlink itself missing from %v", got)
	}
}

func TestEnumerateFollowSymlinks(t *testing.T) {
	root := buildTestTree(t, "real/", "real/inside")
	if err := os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "link")); err != nil {
		t.Fatal(err)
	}

	opts := EnumerateOptions{FollowSymlinks: true, Visited: NewVisitedSet()}
	got := enumeratePaths(t, root, UnboundedDepth, opts)

	// Both the link and the real directory appear as entries, but the
	// shared contents are listed exactly once, whichever parent reaches
	// the target first.
	inside := 0
	for _, p := range got {
		if filepath.Base(p) == "inside" {
			inside++
		}
	}
	if inside != 1 {
		t.Errorf("target contents listed %d times in %v, want once", inside, got)
	}
	for _, want := range []string{"link", "real"} {
		found := false
		for _, p := range got {
			if p == want {
				found = true
			}
		}
		if !found {
			t.Errorf("entry %q missing from %v", want, got)
		}
	}
}

func TestEnumerateSymlinkLoopWarnsOnce(t *testing.T) {
	root := buildTestTree(t, "d/")
	if err := os.Symlink(filepath.Join(root, "d"), filepath.Join(root, "d", "loop")); err != nil {
		t.Fatal(err)
	}

	var warnings []Warning
	opts := EnumerateOptions{
		FollowSymlinks: true,
		Visited:        NewVisitedSet(),
		Warn: func(path, message string) {
			warnings = append(warnings, Warning{Path: path, Message: message})
		},
	}

	err := OSEnumerator{}.Enumerate(root, UnboundedDepth, opts, func(Entry) error { return nil })
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}

	loopWarnings := 0
	for _, w := range warnings {
		if strings.Contains(w.Message, "symlink loop") {
			loopWarnings++
		}
	}
	if loopWarnings != 1 {
		t.Errorf("loop warnings = %d, want exactly 1 (%v)", loopWarnings, warnings)
	}
}

func TestEnumerateBrokenSymlinkWarns(t *testing.T) {
	root := buildTestTree(t)
	if err := os.Symlink(filepath.Join(root, "gone"), filepath.Join(root, "dangling")); err != nil {
		t.Fatal(err)
	}

	var warnings []Warning
	opts := EnumerateOptions{
		FollowSymlinks: true,
		Visited:        NewVisitedSet(),
		Warn: func(path, message string) {
			warnings = append(warnings, Warning{Path: path, Message: message})
		},
	}
	if err := (OSEnumerator{}).Enumerate(root, UnboundedDepth, opts, func(Entry) error { return nil }); err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "broken symlink") {
		t.Errorf("warnings = %v, want one broken-symlink warning", warnings)
	}
}

func TestEnumerateUnreadableRootFails(t *testing.T) {
	root := filepath.Join(t.TempDir(), "missing")
	err := OSEnumerator{}.Enumerate(root, 1, EnumerateOptions{}, func(Entry) error { return nil })
	if err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestEnumerateUnreadableChildWarns(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	root := buildTestTree(t, "locked/", "locked/secret", "ok.txt")
	locked := filepath.Join(root, "locked")
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	var warnings []Warning
	opts := EnumerateOptions{Warn: func(path, message string) {
		warnings = append(warnings, Warning{Path: path, Message: message})
	}}
	got := enumeratePaths(t, root, UnboundedDepth, opts)

	want := []string{".", "locked", "ok.txt"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("entries = %v, want %v", got, want)
	}
	if len(warnings) != 1 || warnings[0].Path != locked {
		t.Errorf("warnings = %v, want one for %s", warnings, locked)
	}
}
