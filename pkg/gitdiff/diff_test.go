package gitdiff

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/promptpack/promptpack/pkg/observability"
)

func TestSanitizeGitRef(t *testing.T) {
	valid := []string{"", "main", "feature/branch", "v1.2.3", "HEAD", "abc123def"}
	for _, ref := range valid {
		if err := sanitizeGitRef(ref); err != nil {
			t.Errorf("sanitizeGitRef(%q) = %v, want nil", ref, err)
		}
	}

	invalid := []string{"main; rm -rf /", "a..b", "ref`cmd`", "a|b", "a$(x)", "back\\slash"}
	for _, ref := range invalid {
		if err := sanitizeGitRef(ref); err == nil {
			t.Errorf("sanitizeGitRef(%q) should fail", ref)
		}
	}
}

func TestSanitizePath(t *testing.T) {
	valid := []string{"", "src/main.go", "a/b/c.txt"}
	for _, p := range valid {
		if err := sanitizePath(p); err != nil {
			t.Errorf("sanitizePath(%q) = %v, want nil", p, err)
		}
	}

	invalid := []string{"../etc/passwd", "/abs/path", "a;b", "a|b"}
	for _, p := range invalid {
		if err := sanitizePath(p); err == nil {
			t.Errorf("sanitizePath(%q) should fail", p)
		}
	}
}

// initRepo creates a git repository with one committed and one modified file.
func initRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir := t.TempDir()
	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@test",
			"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@test")
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}

	run("init")
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("one\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	run("add", "a.txt")
	run("commit", "-m", "initial")
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("one\ntwo\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestExtract(t *testing.T) {
	repo := initRepo(t)
	out := filepath.Join(t.TempDir(), "diff_output")

	e, err := New(repo, "", observability.NewNopLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !e.IsGitRepo() {
		t.Fatal("IsGitRepo() = false for a fresh repository")
	}

	written, err := e.Extract(context.Background(), out)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if len(written) != 2 {
		t.Fatalf("written = %v, want summary plus one diff", written)
	}

	summary, err := os.ReadFile(filepath.Join(out, "summary_of_changes.txt"))
	if err != nil {
		t.Fatalf("reading summary: %v", err)
	}
	if !strings.Contains(string(summary), "a.txt") {
		t.Errorf("summary missing changed file:\n%s", summary)
	}

	diff, err := os.ReadFile(filepath.Join(out, "a.txt.diff"))
	if err != nil {
		t.Fatalf("reading diff: %v", err)
	}
	if !strings.Contains(string(diff), "+two") {
		t.Errorf("diff missing added line:\n%s", diff)
	}
}

func TestNewRejectsBadRef(t *testing.T) {
	if _, err := New(t.TempDir(), "main; rm -rf /", observability.NewNopLogger()); err == nil {
		t.Fatal("New should reject a ref with shell metacharacters")
	}
}

func TestChangedFilesAgainstRef(t *testing.T) {
	repo := initRepo(t)
	e, err := New(repo, "HEAD", observability.NewNopLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	changes, err := e.ChangedFiles(context.Background())
	if err != nil {
		t.Fatalf("ChangedFiles: %v", err)
	}
	if len(changes) != 1 || changes[0].Path != "a.txt" {
		t.Errorf("changes = %v, want the modified a.txt", changes)
	}
}

func TestChangedFilesCleanTree(t *testing.T) {
	repo := initRepo(t)
	e, err := New(repo, "", observability.NewNopLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Reset the modification so the tree is clean.
	cmd := exec.Command("git", "checkout", "--", "a.txt")
	cmd.Dir = repo
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git checkout: %v\n%s", err, out)
	}

	changes, err := e.ChangedFiles(context.Background())
	if err != nil {
		t.Fatalf("ChangedFiles: %v", err)
	}
	if len(changes) != 0 {
		t.Errorf("clean tree should report no changes, got %v", changes)
	}
}
