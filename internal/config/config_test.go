package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReadsActionInputs(t *testing.T) {
	t.Setenv("INPUT_VERCEL-TOKEN", "tok_secret")
	t.Setenv("INPUT_VERCEL-ORG-ID", "org_123")
	t.Setenv("INPUT_VERCEL-PROJECT-ID", "prj_456")
	t.Setenv("INPUT_VERCEL-ARGS", "--prod")
	t.Setenv("INPUT_SCOPE", "acme")
	t.Setenv("INPUT_WORKING-DIRECTORY", "./site")
	t.Setenv("INPUT_ALIAS-DOMAINS", "preview-{{PR}}.acme.dev\n\nstaging.acme.dev\n")
	t.Setenv("INPUT_GITHUB-COMMENT", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "tok_secret", cfg.VercelToken)
	assert.Equal(t, "org_123", cfg.VercelOrgID)
	assert.Equal(t, "prj_456", cfg.VercelProjectID)
	assert.Equal(t, "--prod", cfg.VercelArgs)
	assert.Equal(t, "acme", cfg.Scope)
	assert.Equal(t, "./site", cfg.WorkingDirectory)
	assert.Equal(t, []string{"preview-{{PR}}.acme.dev", "staging.acme.dev"}, cfg.AliasDomains)
	assert.False(t, cfg.GitHubComment)
	assert.NoError(t, cfg.Validate())
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("INPUT_VERCEL-TOKEN", "tok")
	t.Setenv("INPUT_VERCEL-ORG-ID", "org")
	t.Setenv("INPUT_VERCEL-PROJECT-ID", "prj")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.GitHubComment)
	assert.True(t, cfg.GitHubDeployment)
	assert.Equal(t, "Preview", cfg.Environment)
	assert.Equal(t, "/deploy", cfg.ForkDeployPhrase)
	assert.False(t, cfg.DryRun)
	assert.Empty(t, cfg.AliasDomains)
}

func TestLoadTokenFallbacks(t *testing.T) {
	t.Setenv("VERCEL_TOKEN", "tok_env")
	t.Setenv("GITHUB_TOKEN", "gh_env")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "tok_env", cfg.VercelToken)
	assert.Equal(t, "gh_env", cfg.GitHubToken)
	assert.True(t, cfg.Reporting())
}

func TestValidateReportsAllMissingInputs(t *testing.T) {
	cfg := &Config{}

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingInput)
	assert.Contains(t, err.Error(), "vercel-token")
	assert.Contains(t, err.Error(), "vercel-org-id")
	assert.Contains(t, err.Error(), "vercel-project-id")
}

func TestRedactedMasksSecrets(t *testing.T) {
	cfg := &Config{VercelToken: "tok", GitHubToken: "gh", Scope: "acme"}

	red := cfg.Redacted()
	assert.Equal(t, "***", red.VercelToken)
	assert.Equal(t, "***", red.GitHubToken)
	assert.Equal(t, "acme", red.Scope)
	assert.Equal(t, "tok", cfg.VercelToken, "original untouched")
}

func TestToolEnv(t *testing.T) {
	cfg := &Config{VercelOrgID: "org_1", VercelProjectID: "prj_1"}
	assert.Equal(t, []string{"VERCEL_ORG_ID=org_1", "VERCEL_PROJECT_ID=prj_1"}, cfg.ToolEnv())
}
