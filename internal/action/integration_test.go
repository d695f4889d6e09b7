package action_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-github/v59/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coalesc/vercel-action/internal/action"
	"github.com/coalesc/vercel-action/internal/config"
	"github.com/coalesc/vercel-action/internal/event"
	"github.com/coalesc/vercel-action/internal/outputs"
	"github.com/coalesc/vercel-action/internal/report"
	"github.com/coalesc/vercel-action/internal/vercel"
)

const pushSHA = "0123456789abcdef0123456789abcdef01234567"

// fakeTool installs a stand-in vercel executable on PATH. Deploy prints
// the URL on stdout and the Inspect line on stderr; inspect prints the
// tabular name row on stderr.
func fakeTool(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	dir := t.TempDir()
	script := `#!/bin/sh
case "$1" in
  inspect)
    printf 'Vercel CLI 33.0.1\n' >&2
    printf '      name\t\tdemo\n' >&2
    ;;
  alias)
    ;;
  *)
    printf 'https://x.vercel.app\n'
    printf 'Inspect: https://vercel.com/y/z\n' >&2
    ;;
esac
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vercel"), []byte(script), 0o755))
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

type platformState struct {
	commentBodies []string
	statuses      []struct {
		State  string `json:"state"`
		EnvURL string `json:"environment_url"`
		LogURL string `json:"log_url"`
	}
}

// fakePlatform serves the few API routes one push-event run touches.
func fakePlatform(t *testing.T) (*github.Client, *platformState) {
	t.Helper()
	state := &platformState{}

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/website/commits/"+pushSHA+"/comments", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			fmt.Fprint(w, "[]")
		case http.MethodPost:
			var body struct {
				Body string `json:"body"`
			}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			state.commentBodies = append(state.commentBodies, body.Body)
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"id": 1}`)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/repos/acme/website/deployments", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id": 7}`)
	})
	mux.HandleFunc("/repos/acme/website/deployments/7/statuses", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var status struct {
			State  string `json:"state"`
			EnvURL string `json:"environment_url"`
			LogURL string `json:"log_url"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&status))
		state.statuses = append(state.statuses, status)
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id": 100}`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	gh := github.NewClient(nil)
	base, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	gh.BaseURL = base
	gh.UploadURL = base
	return gh, state
}

func TestRunEndToEnd(t *testing.T) {
	fakeTool(t)
	gh, state := fakePlatform(t)

	cfg := &config.Config{
		VercelToken:      "tok_secret",
		VercelOrgID:      "org_123",
		VercelProjectID:  "prj_123",
		GitHubToken:      "gh_token",
		GitHubComment:    true,
		GitHubDeployment: true,
		Environment:      "Preview",
		ForkDeployPhrase: "/deploy",
	}
	ev := &event.Context{
		EventName:     "push",
		Repo:          event.Repo{Owner: "acme", Name: "website"},
		SHA:           pushSHA,
		Ref:           "refs/heads/main",
		Actor:         "octocat",
		ServerURL:     "https://github.com",
		CommitMessage: "fix: new header",
	}

	dir := t.TempDir()
	outputPath := filepath.Join(dir, "output")
	summaryPath := filepath.Join(dir, "summary")
	logger := log.New(io.Discard)

	deps := action.Dependencies{
		Deployer:  vercel.New(cfg, ev, logger, io.Discard, io.Discard),
		Publisher: report.NewReporter(gh, ev.Repo, cfg.VercelProjectID, logger),
		Outputs:   outputs.NewFileWriter(outputPath, summaryPath),
	}

	outcome, err := action.New(cfg, ev, logger, deps).Run(context.Background())
	require.NoError(t, err)

	assert.False(t, outcome.Skipped)
	assert.Equal(t, "https://x.vercel.app", outcome.URL)
	assert.Equal(t, "https://vercel.com/y/z", outcome.InspectURL)
	assert.Equal(t, "demo", outcome.Name, "name recovered through the real inspect subprocess")

	output, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, "preview-url=https://x.vercel.app\npreview-name=demo\n", string(output))

	require.Len(t, state.commentBodies, 1, "push event gets exactly one commit comment")
	assert.Contains(t, state.commentBodies[0], "<!-- vercel-action:prj_123 -->")
	assert.Contains(t, state.commentBodies[0], "https://x.vercel.app")
	assert.Contains(t, state.commentBodies[0], "demo")

	require.Len(t, state.statuses, 2)
	assert.Equal(t, "pending", state.statuses[0].State)
	assert.Equal(t, "success", state.statuses[1].State)
	assert.Equal(t, "https://x.vercel.app", state.statuses[1].EnvURL)
	assert.Equal(t, "https://vercel.com/y/z", state.statuses[1].LogURL)

	summary, err := os.ReadFile(summaryPath)
	require.NoError(t, err)
	assert.Contains(t, string(summary), "demo")
}
