package tree

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "b.txt"), "b")
	mustWrite(t, filepath.Join(dir, "a.txt"), "a")
	mustWrite(t, filepath.Join(dir, "sub", "c.txt"), "c")

	got, err := Generate(dir, false)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	want := dir + "\n" +
		"├── a.txt\n" +
		"├── b.txt\n" +
		"└── sub/\n" +
		"    └── c.txt\n"
	if got != want {
		t.Errorf("tree:\ngot\n%s\nwant\n%s", got, want)
	}
}

func TestGenerateHonorsIgnore(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, ".gitignore"), "*.log\n")
	mustWrite(t, filepath.Join(dir, "keep.txt"), "k")
	mustWrite(t, filepath.Join(dir, "noise.log"), "n")
	mustWrite(t, filepath.Join(dir, ".git", "HEAD"), "ref")

	got, err := Generate(dir, false)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if strings.Contains(got, "noise.log") {
		t.Errorf("ignored file rendered:\n%s", got)
	}
	if strings.Contains(got, "HEAD") {
		t.Errorf(".git contents rendered:\n%s", got)
	}

	all, err := Generate(dir, true)
	if err != nil {
		t.Fatalf("Generate all: %v", err)
	}
	if !strings.Contains(all, "noise.log") {
		t.Errorf("includeAll should render ignored files:\n%s", all)
	}
}

func TestGenerateMissingDir(t *testing.T) {
	if _, err := Generate(filepath.Join(t.TempDir(), "missing"), false); err == nil {
		t.Error("Generate should fail for a missing directory")
	}
}

func TestGenerateNestedConnectors(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "a", "x.txt"), "x")
	mustWrite(t, filepath.Join(dir, "b", "y.txt"), "y")

	got, err := Generate(dir, false)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	want := dir + "\n" +
		"├── a/\n" +
		"│   └── x.txt\n" +
		"└── b/\n" +
		"    └── y.txt\n"
	if got != want {
		t.Errorf("tree:\ngot\n%s\nwant\n%s", got, want)
	}
}
