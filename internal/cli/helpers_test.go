package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/jokarl/branchsource/internal/api"
	"github.com/jokarl/branchsource/internal/config"
)

const (
	mainSHA    = "1111111111111111111111111111111111111111"
	tagSHA     = "3333333333333333333333333333333333333333"
	featureSHA = "4444444444444444444444444444444444444444"
	forkSHA    = "5555555555555555555555555555555555555555"
)

// newAPIServer serves a repository with one branch, one tag, an origin pull
// request and a fork pull request.
func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()

	branches := []api.Branch{{Name: "main", Commit: &api.Commit{ID: mainSHA}}}
	tags := []api.Tag{{Name: "v1.0", Commit: &api.Commit{SHA: tagSHA}}}
	pulls := []api.PullRequest{
		{
			ID: 10, Number: 1, Title: "origin change",
			HeadBranch: "feature", HeadCommit: &api.Commit{ID: featureSHA},
			BaseBranch: "main", BaseCommit: &api.Commit{ID: mainSHA},
			SameOrigin: true,
		},
		{
			ID: 11, Number: 2, Title: "fork change",
			HeadBranch: "patch", HeadCommit: &api.Commit{ID: forkSHA},
			HeadRepo:   &api.Repository{FullName: "mallory/repo"},
			BaseBranch: "main", BaseCommit: &api.Commit{ID: mainSHA},
		},
	}

	write := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(v); err != nil {
			t.Errorf("encode: %v", err)
		}
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/repos/owner/repo/branches", func(w http.ResponseWriter, r *http.Request) { write(w, branches) })
	mux.HandleFunc("/api/v1/repos/owner/repo/branches/{name}", func(w http.ResponseWriter, r *http.Request) {
		for _, b := range branches {
			if b.Name == r.PathValue("name") {
				write(w, b)
				return
			}
		}
		http.NotFound(w, r)
	})
	mux.HandleFunc("/api/v1/repos/owner/repo/pulls/{number}", func(w http.ResponseWriter, r *http.Request) {
		for _, pr := range pulls {
			if strconv.FormatInt(pr.Number, 10) == r.PathValue("number") {
				write(w, pr)
				return
			}
		}
		http.NotFound(w, r)
	})
	mux.HandleFunc("/api/v1/repos/owner/repo/tags", func(w http.ResponseWriter, r *http.Request) { write(w, tags) })
	mux.HandleFunc("/api/v1/repos/owner/repo/pulls", func(w http.ResponseWriter, r *http.Request) { write(w, pulls) })

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// executeCommand runs the root command with args from an empty working
// directory and returns what it wrote to stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	return runCommand(t, args...)
}

// runCommand runs the root command with args from the current directory.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	configFlag, repoFlag, formatFlag, colorFlag = "", "", "", ""
	verboseFlag, forceFlag = false, false
	remoteFlag, kindFlag = "", ""
	namesFlag, limitFlag = false, 0

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), err
}

// writeConfig writes a configuration for srv with the given discover blocks
// and returns its path.
func writeConfig(t *testing.T, srv *httptest.Server, discover string) string {
	t.Helper()
	content := `version = 1
source {
  repository_url = "` + srv.URL + `/owner/repo"
}
` + discover
	path := filepath.Join(t.TempDir(), config.FileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// writeForkConfig writes a configuration discovering every head kind of srv,
// fork pull requests included, and returns its path.
func writeForkConfig(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	return writeConfig(t, srv, `discover "branches" {}
discover "tags" {}
discover "origin_pull_requests" {}
discover "fork_pull_requests" {}
`)
}
