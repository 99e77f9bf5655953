package cli

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jokarl/branchsource/internal/config"
	"github.com/jokarl/branchsource/internal/source"
)

func TestDiscoverCmd(t *testing.T) {
	srv := newAPIServer(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "default rules skip forks",
			args: []string{"--repo", srv.URL + "/owner/repo"},
			want: "branch main " + mainSHA + "\n" +
				"tag v1.0 " + tagSHA + "\n" +
				"pull_request PR-1-MERGE " + mainSHA + "+" + featureSHA + "\n",
		},
		{
			name: "fork discovery",
			args: []string{"--config", writeForkConfig(t, srv)},
			want: "branch main " + mainSHA + "\n" +
				"tag v1.0 " + tagSHA + "\n" +
				"pull_request PR-1-MERGE " + mainSHA + "+" + featureSHA + "\n" +
				"pull_request PR-2-MERGE " + mainSHA + "+" + forkSHA + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"discover", "--format", "compact"}, tt.args...)
			out, err := executeCommand(t, args...)
			if err != nil {
				t.Fatalf("discover error = %v", err)
			}
			if out != tt.want {
				t.Errorf("discover output =\n%s\nwant:\n%s", out, tt.want)
			}
		})
	}
}

func TestDiscoverCmd_JSONTrust(t *testing.T) {
	srv := newAPIServer(t)

	out, err := executeCommand(t, "discover", "--config", writeForkConfig(t, srv), "--format", "json")
	if err != nil {
		t.Fatalf("discover error = %v", err)
	}

	var got struct {
		Result struct {
			Heads []struct {
				Name    string `json:"name"`
				Trusted bool   `json:"trusted"`
			} `json:"heads"`
		} `json:"result"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}

	want := map[string]bool{"main": true, "v1.0": true, "PR-1-MERGE": true, "PR-2-MERGE": false}
	if len(got.Result.Heads) != len(want) {
		t.Fatalf("expected %d heads, got %d", len(want), len(got.Result.Heads))
	}
	for _, h := range got.Result.Heads {
		if h.Trusted != want[h.Name] {
			t.Errorf("%s trusted = %v, want %v", h.Name, h.Trusted, want[h.Name])
		}
	}
}

func TestDiscoverCmd_ConfigFile(t *testing.T) {
	srv := newAPIServer(t)
	dir := t.TempDir()
	path := filepath.Join(dir, config.FileName)
	content := `version = 1
source {
  repository_url = "` + srv.URL + `/owner/repo"
}
discover "tags" {}
discover "fork_pull_requests" {
  build_on_pull_head = true
}
output {
  format = "compact"
}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := executeCommand(t, "discover", "--config", path)
	if err != nil {
		t.Fatalf("discover error = %v", err)
	}

	want := "tag v1.0 " + tagSHA + "\n" +
		"pull_request PR-2-HEAD " + forkSHA + "\n"
	if out != want {
		t.Errorf("discover output =\n%s\nwant:\n%s", out, want)
	}
}

func TestRetrieveCmd(t *testing.T) {
	srv := newAPIServer(t)

	tests := []struct {
		name string
		want string
	}{
		{"main", "branch main " + mainSHA + "\n"},
		{"v1.0", "tag v1.0 " + tagSHA + "\n"},
		{"PR-2-MERGE", "pull_request PR-2-MERGE " + mainSHA + "+" + forkSHA + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, "retrieve", tt.name, "--config", writeForkConfig(t, srv), "--format", "compact")
			if err != nil {
				t.Fatalf("retrieve error = %v", err)
			}
			if out != tt.want {
				t.Errorf("retrieve output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestRetrieveCmd_NotFound(t *testing.T) {
	srv := newAPIServer(t)

	_, err := executeCommand(t, "retrieve", "missing", "--repo", srv.URL+"/owner/repo")
	if !errors.Is(err, source.ErrHeadNotFound) {
		t.Errorf("retrieve error = %v, want ErrHeadNotFound", err)
	}
}

func TestRetrieveCmd_Kind(t *testing.T) {
	srv := newAPIServer(t)

	tests := []struct {
		name string
		kind string
		want string
	}{
		{"main", "branch", "branch main " + mainSHA + "\n"},
		{"PR-2-MERGE", "pull_request", "pull_request PR-2-MERGE " + mainSHA + "+" + forkSHA + "\n"},
		// fork pull requests are fetched even though the default rules skip them
		{"PR-2-HEAD", "pull_request", "pull_request PR-2-HEAD " + forkSHA + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.kind+"/"+tt.name, func(t *testing.T) {
			out, err := executeCommand(t, "retrieve", tt.name, "--kind", tt.kind, "--repo", srv.URL+"/owner/repo", "--format", "compact")
			if err != nil {
				t.Fatalf("retrieve error = %v", err)
			}
			if out != tt.want {
				t.Errorf("retrieve output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestRetrieveCmd_KindErrors(t *testing.T) {
	srv := newAPIServer(t)

	tests := []struct {
		name     string
		args     []string
		notFound bool
		wantErr  string
	}{
		{
			name:     "unknown branch",
			args:     []string{"gone", "--kind", "branch"},
			notFound: true,
		},
		{
			name:     "unknown pull request",
			args:     []string{"PR-9-MERGE", "--kind", "pull_request"},
			notFound: true,
		},
		{
			name:    "invalid kind",
			args:    []string{"main", "--kind", "commit"},
			wantErr: "invalid --kind value",
		},
		{
			name:    "invalid pull request name",
			args:    []string{"main", "--kind", "pull_request"},
			wantErr: "not a pull request name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"retrieve", "--repo", srv.URL + "/owner/repo"}, tt.args...)
			_, err := executeCommand(t, args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.notFound {
				if !errors.Is(err, source.ErrHeadNotFound) {
					t.Errorf("retrieve error = %v, want ErrHeadNotFound", err)
				}
				if strings.Contains(err.Error(), "repository was not found") {
					t.Errorf("missing head reported as missing repository: %v", err)
				}
				return
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("retrieve error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestDiscoverCmd_Names(t *testing.T) {
	srv := newAPIServer(t)

	out, err := executeCommand(t, "discover", "--names", "--config", writeForkConfig(t, srv))
	if err != nil {
		t.Fatalf("discover error = %v", err)
	}

	want := "PR-1-MERGE\nPR-2-MERGE\nmain\nv1.0\n"
	if out != want {
		t.Errorf("discover --names output =\n%s\nwant:\n%s", out, want)
	}
}

func TestDiscoverCmd_Limit(t *testing.T) {
	srv := newAPIServer(t)

	tests := []struct {
		limit string
		want  string
	}{
		{"1", "branch main " + mainSHA + "\n"},
		{"2", "branch main " + mainSHA + "\n" + "tag v1.0 " + tagSHA + "\n"},
		{"0", "branch main " + mainSHA + "\n" +
			"tag v1.0 " + tagSHA + "\n" +
			"pull_request PR-1-MERGE " + mainSHA + "+" + featureSHA + "\n"},
	}

	for _, tt := range tests {
		t.Run("limit "+tt.limit, func(t *testing.T) {
			out, err := executeCommand(t, "discover", "--limit", tt.limit, "--repo", srv.URL+"/owner/repo", "--format", "compact")
			if err != nil {
				t.Fatalf("discover error = %v", err)
			}
			if out != tt.want {
				t.Errorf("discover output =\n%s\nwant:\n%s", out, tt.want)
			}
		})
	}
}

func TestDiscoverCmd_NegativeLimit(t *testing.T) {
	_, err := executeCommand(t, "discover", "--limit=-1", "--repo", "https://example.com/owner/repo")
	if err == nil || !strings.Contains(err.Error(), "invalid --limit value") {
		t.Errorf("discover error = %v, want invalid --limit value", err)
	}
}

func TestCommands_ErrorHints(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    string
	}{
		{
			name: "unauthorized",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			want: "source.token",
		},
		{
			name: "forbidden",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			},
			want: "source.token",
		},
		{
			name:    "missing repository",
			handler: http.NotFound,
			want:    "The repository was not found",
		},
		{
			name: "incomplete record",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`[{"name":"main"}]`))
			},
			want: "incomplete record",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			t.Cleanup(srv.Close)

			_, err := executeCommand(t, "discover", "--repo", srv.URL+"/owner/repo")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("discover error =\n%v\nwant hint containing %q", err, tt.want)
			}
		})
	}
}

func TestPlanCmd(t *testing.T) {
	srv := newAPIServer(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "branch",
			args: []string{"plan", "main"},
			want: "fetch +refs/heads/main:refs/remotes/origin/main\n",
		},
		{
			name: "remote flag",
			args: []string{"plan", "main", "--remote", "upstream"},
			want: "fetch +refs/heads/main:refs/remotes/upstream/main\n",
		},
		{
			name: "tag",
			args: []string{"plan", "v1.0"},
			want: "fetch +refs/tags/v1.0:refs/tags/v1.0\n",
		},
		{
			name: "merge build",
			args: []string{"plan", "PR-2-MERGE"},
			want: "fetch +refs/pull/2/head:refs/remotes/origin/PR-2-MERGE\n" +
				"fetch +refs/heads/main:refs/remotes/origin/main\n" +
				"merge main " + mainSHA + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(tt.args, "--config", writeForkConfig(t, srv), "--format", "compact")
			out, err := executeCommand(t, args...)
			if err != nil {
				t.Fatalf("plan error = %v", err)
			}
			if out != tt.want {
				t.Errorf("plan output =\n%s\nwant:\n%s", out, tt.want)
			}
		})
	}
}

func TestTrustCmd(t *testing.T) {
	srv := newAPIServer(t)

	tests := []struct {
		name string
		want string
	}{
		{"main", "main " + mainSHA + "\n"},
		{"PR-1-MERGE", "PR-1-MERGE " + mainSHA + "+" + featureSHA + "\n"},
		{"PR-2-MERGE", "main " + mainSHA + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, "trust", tt.name, "--config", writeForkConfig(t, srv), "--format", "compact")
			if err != nil {
				t.Fatalf("trust error = %v", err)
			}
			if out != tt.want {
				t.Errorf("trust output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestTrustCmd_Text(t *testing.T) {
	srv := newAPIServer(t)

	out, err := executeCommand(t, "trust", "PR-2-MERGE", "--config", writeForkConfig(t, srv), "--color", "never")
	if err != nil {
		t.Fatalf("trust error = %v", err)
	}
	if !strings.Contains(out, "(pull request not trusted)") {
		t.Errorf("expected untrusted note, got:\n%s", out)
	}
}

func TestTrustCmd_UntrustedTrustedRevision(t *testing.T) {
	srv := newAPIServer(t)
	path := writeConfig(t, srv, `discover "fork_pull_requests" {}
`)

	out, err := executeCommand(t, "trust", "PR-2-MERGE", "--config", path, "--format", "json")
	if err != nil {
		t.Fatalf("trust error = %v", err)
	}

	var got struct {
		Result struct {
			Head struct {
				Name    string `json:"name"`
				Trusted bool   `json:"trusted"`
			} `json:"head"`
			TrustedRevision struct {
				Name    string `json:"name"`
				Trusted bool   `json:"trusted"`
			} `json:"trusted_revision"`
			Replaced bool `json:"replaced"`
		} `json:"result"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}

	if got.Result.Head.Trusted {
		t.Error("fork pull request reported as trusted")
	}
	if !got.Result.Replaced {
		t.Error("replaced = false, want true")
	}
	if got.Result.TrustedRevision.Name != "main" {
		t.Errorf("trusted revision = %q, want main", got.Result.TrustedRevision.Name)
	}
	// no branch authority is registered, yet the trusted revision is trusted
	if !got.Result.TrustedRevision.Trusted {
		t.Error("trusted revision reported as untrusted")
	}
}

func TestCommands_ConfigErrors(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		errSubstr string
	}{
		{
			name:      "no repository",
			args:      []string{"discover"},
			errSubstr: "no repository configured",
		},
		{
			name:      "invalid repository",
			args:      []string{"discover", "--repo", "https://example.com/owner"},
			errSubstr: "invalid repository_url",
		},
		{
			name:      "invalid format",
			args:      []string{"discover", "--repo", "https://example.com/owner/repo", "--format", "xml"},
			errSubstr: "invalid output format",
		},
		{
			name:      "missing config file",
			args:      []string{"discover", "--config", "does-not-exist.hcl"},
			errSubstr: "config file not found",
		},
		{
			name:      "invalid color",
			args:      []string{"discover", "--repo", "https://example.com/owner/repo", "--color", "sometimes"},
			errSubstr: "invalid color",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.errSubstr) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.errSubstr)
			}
		})
	}
}

func TestCommands_Args(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"retrieve without name", []string{"retrieve"}},
		{"plan with two names", []string{"plan", "a", "b"}},
		{"checkout without dir", []string{"checkout", "main"}},
		{"discover with argument", []string{"discover", "main"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := executeCommand(t, tt.args...); err == nil {
				t.Errorf("expected argument error for %v", tt.args)
			}
		})
	}
}

func TestCheckoutRemote(t *testing.T) {
	tests := []struct {
		configured string
		flag       string
		want       string
	}{
		{"origin", "", "origin"},
		{"origin", "upstream", "upstream"},
		{"", "upstream", "upstream"},
	}

	for _, tt := range tests {
		if got := checkoutRemote(tt.configured, tt.flag); got != tt.want {
			t.Errorf("checkoutRemote(%q, %q) = %q, want %q", tt.configured, tt.flag, got, tt.want)
		}
	}
}

func TestInitCmd(t *testing.T) {
	out, err := executeCommand(t, "init")
	if err != nil {
		t.Fatalf("init error = %v", err)
	}
	if !strings.Contains(out, "Created") {
		t.Errorf("unexpected output: %q", out)
	}

	content, err := os.ReadFile(config.FileName)
	if err != nil {
		t.Fatalf("expected config file: %v", err)
	}
	if string(content) != config.DefaultConfigHCL() {
		t.Error("config file content does not match DefaultConfigHCL()")
	}
}

func TestInitCmd_Exists(t *testing.T) {
	if _, err := executeCommand(t, "init"); err != nil {
		t.Fatalf("first init error = %v", err)
	}

	_, err := runCommand(t, "init")
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("second init error = %v, want 'already exists'", err)
	}

	if _, err := runCommand(t, "init", "--force"); err != nil {
		t.Errorf("init --force error = %v", err)
	}
}
