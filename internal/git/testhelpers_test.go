package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed, skipping test")
	}
}

func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=Test User", "GIT_AUTHOR_EMAIL=test@test.com",
		"GIT_COMMITTER_NAME=Test User", "GIT_COMMITTER_EMAIL=test@test.com",
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, output)
	}
	return strings.TrimSpace(string(output))
}

func commitFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	runGit(t, dir, "add", name)
	runGit(t, dir, "commit", "-q", "-m", "add "+name)
	return runGit(t, dir, "rev-parse", "HEAD")
}

// upstream is a repository laid out like a forge: a main branch, a feature
// branch exposed as pull request 1, and a tag.
type upstream struct {
	dir     string
	initial string // main before the feature branched off, tagged v1.0
	feature string // tip of feature, also refs/pull/1/head
	main    string // tip of main
}

func setupUpstream(t *testing.T) *upstream {
	t.Helper()
	dir := t.TempDir()

	runGit(t, dir, "init", "-q")
	runGit(t, dir, "symbolic-ref", "HEAD", "refs/heads/main")
	u := &upstream{dir: dir}
	u.initial = commitFile(t, dir, "README.md", "# Test\n")
	runGit(t, dir, "tag", "v1.0")

	runGit(t, dir, "checkout", "-q", "-b", "feature")
	u.feature = commitFile(t, dir, "feature.txt", "feature\n")
	runGit(t, dir, "update-ref", "refs/pull/1/head", u.feature)

	runGit(t, dir, "checkout", "-q", "main")
	u.main = commitFile(t, dir, "main.txt", "main\n")
	return u
}
