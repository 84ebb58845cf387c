package resolve

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/promptpack/promptpack/pkg/errors"
	"github.com/promptpack/promptpack/pkg/observability"
)

func newTestResolver() *Resolver {
	return New(observability.NewNopLogger())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestDirSortedOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.txt"), "b")
	writeFile(t, filepath.Join(dir, "a.txt"), "a")
	writeFile(t, filepath.Join(dir, "sub", "c.txt"), "c")

	r := newTestResolver()

	first, err := r.Dir(dir, nil)
	if err != nil {
		t.Fatalf("Dir() error = %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.txt"),
		filepath.Join(dir, "sub", "c.txt"),
	}
	var got []string
	for _, e := range first {
		got = append(got, e.Path)
		if e.Path != e.Display {
			t.Errorf("directory entry Display = %s, want %s", e.Display, e.Path)
		}
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Dir() order = %v, want %v", got, want)
	}

	// Deterministic across repeated runs on an unchanged tree.
	second, err := r.Dir(dir, nil)
	if err != nil {
		t.Fatalf("Dir() second run error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("Dir() is not stable across runs")
	}
}

func TestDirSkipsGitAndIgnored(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".gitignore"), "*.log\nbuild/\n")
	writeFile(t, filepath.Join(dir, "keep.go"), "package keep")
	writeFile(t, filepath.Join(dir, "noise.log"), "noise")
	writeFile(t, filepath.Join(dir, "build", "out.txt"), "out")
	writeFile(t, filepath.Join(dir, ".git", "HEAD"), "ref: refs/heads/main")

	entries, err := newTestResolver().Dir(dir, nil)
	if err != nil {
		t.Fatalf("Dir() error = %v", err)
	}

	for _, e := range entries {
		switch filepath.Base(e.Path) {
		case "noise.log":
			t.Error("ignored file noise.log should be excluded")
		case "out.txt":
			t.Error("file under ignored dir build/ should be excluded")
		case "HEAD":
			t.Error("file under .git should be excluded")
		}
	}

	found := false
	for _, e := range entries {
		if filepath.Base(e.Path) == "keep.go" {
			found = true
		}
	}
	if !found {
		t.Error("keep.go should be included")
	}
}

func TestDirSuffixFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.go"), "package main")
	writeFile(t, filepath.Join(dir, "notes.md"), "# notes")
	writeFile(t, filepath.Join(dir, "data.csv"), "a,b")

	entries, err := newTestResolver().Dir(dir, []string{".go", ".md"})
	if err != nil {
		t.Fatalf("Dir() error = %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Dir() returned %d entries, want 2", len(entries))
	}
	if filepath.Base(entries[0].Path) != "main.go" || filepath.Base(entries[1].Path) != "notes.md" {
		t.Errorf("unexpected filtered entries: %v", entries)
	}
}

func TestManifestTargetIndirection(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "paths.txt")
	writeFile(t, manifest, `TARGET: /root/a
x.txt
TARGET: /root/b
y.txt
`)

	entries, err := newTestResolver().Manifest(manifest)
	if err != nil {
		t.Fatalf("Manifest() error = %v", err)
	}

	want := []Entry{
		{Path: filepath.Join("/root/a", "x.txt"), Display: "x.txt"},
		{Path: filepath.Join("/root/b", "y.txt"), Display: "y.txt"},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("Manifest() = %v, want %v", entries, want)
	}
}

func TestManifestBeforeTarget(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "paths.txt")
	writeFile(t, manifest, "plain.txt\nTARGET: /base\n/sub/other.txt\n")

	entries, err := newTestResolver().Manifest(manifest)
	if err != nil {
		t.Fatalf("Manifest() error = %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	// Before any TARGET, resolved equals display.
	if entries[0].Path != "plain.txt" || entries[0].Display != "plain.txt" {
		t.Errorf("entry before TARGET = %+v, want identical path and display", entries[0])
	}

	// A single leading separator is stripped before joining.
	if entries[1].Path != filepath.Join("/base", "sub/other.txt") {
		t.Errorf("joined path = %s", entries[1].Path)
	}
	if entries[1].Display != "/sub/other.txt" {
		t.Errorf("display = %s, want the path as written", entries[1].Display)
	}
}

func TestManifestSkipsCommentsAndBlanks(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "paths.txt")
	writeFile(t, manifest, "# heading\n\n  \na.txt\n# trailing comment\nb.txt\n")

	entries, err := newTestResolver().Manifest(manifest)
	if err != nil {
		t.Fatalf("Manifest() error = %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2: %v", len(entries), entries)
	}
}

func TestManifestEmptyTargetSkipped(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "paths.txt")
	writeFile(t, manifest, "TARGET:\na.txt\n")

	entries, err := newTestResolver().Manifest(manifest)
	if err != nil {
		t.Fatalf("Manifest() error = %v", err)
	}

	// The malformed directive is skipped, not fatal; the path keeps no root.
	if len(entries) != 1 || entries[0].Path != "a.txt" {
		t.Errorf("entries = %v, want single unrooted a.txt", entries)
	}
}

func TestResolveMissingInput(t *testing.T) {
	_, err := newTestResolver().Resolve(filepath.Join(t.TempDir(), "missing"), nil)
	if err == nil {
		t.Fatal("Resolve() should fail for a missing input path")
	}
	if !errors.IsType(err, errors.ErrInput) {
		t.Errorf("error type = %v, want ErrInput", err)
	}
}

func TestResolveDispatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "src", "a.txt"), "a")
	writeFile(t, filepath.Join(dir, "list.txt"), filepath.Join(dir, "src", "a.txt")+"\n")

	r := newTestResolver()

	fromDir, err := r.Resolve(filepath.Join(dir, "src"), nil)
	if err != nil {
		t.Fatalf("Resolve(dir) error = %v", err)
	}
	if len(fromDir) != 1 {
		t.Fatalf("Resolve(dir) entries = %d, want 1", len(fromDir))
	}

	fromManifest, err := r.Resolve(filepath.Join(dir, "list.txt"), nil)
	if err != nil {
		t.Fatalf("Resolve(manifest) error = %v", err)
	}
	if len(fromManifest) != 1 {
		t.Fatalf("Resolve(manifest) entries = %d, want 1", len(fromManifest))
	}
	if fromManifest[0].Path != filepath.Join(dir, "src", "a.txt") {
		t.Errorf("manifest entry path = %s", fromManifest[0].Path)
	}
}
