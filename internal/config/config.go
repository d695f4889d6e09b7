package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ErrMissingInput is returned when a required action input is empty.
var ErrMissingInput = errors.New("missing required input")

const redacted = "***"

// Config holds every input the action recognizes. It is loaded once at
// startup and passed around as an immutable value; nothing reads the
// environment after Load returns.
type Config struct {
	VercelToken      string   `json:"-" yaml:"-"`
	VercelOrgID      string   `json:"vercelOrgId" yaml:"vercelOrgId"`
	VercelProjectID  string   `json:"vercelProjectId" yaml:"vercelProjectId"`
	ProjectName      string   `json:"projectName,omitempty" yaml:"projectName,omitempty"`
	Scope            string   `json:"scope,omitempty" yaml:"scope,omitempty"`
	VercelArgs       string   `json:"vercelArgs,omitempty" yaml:"vercelArgs,omitempty"`
	VercelVersion    string   `json:"vercelVersion,omitempty" yaml:"vercelVersion,omitempty"`
	WorkingDirectory string   `json:"workingDirectory,omitempty" yaml:"workingDirectory,omitempty"`
	GitHubToken      string   `json:"-" yaml:"-"`
	GitHubComment    bool     `json:"githubComment" yaml:"githubComment"`
	GitHubDeployment bool     `json:"githubDeployment" yaml:"githubDeployment"`
	Environment      string   `json:"githubDeploymentEnvironment" yaml:"githubDeploymentEnvironment"`
	AliasDomains     []string `json:"aliasDomains,omitempty" yaml:"aliasDomains,omitempty"`
	ForkDeployPhrase string   `json:"forkDeployPhrase" yaml:"forkDeployPhrase"`
	DryRun           bool     `json:"dryRun" yaml:"dryRun"`
}

// inputs lists the action's input names. The hosted runner exposes each as
// INPUT_<NAME-UPPERCASED>.
var inputs = []string{
	"vercel-token",
	"vercel-org-id",
	"vercel-project-id",
	"vercel-project-name",
	"scope",
	"vercel-args",
	"vercel-version",
	"working-directory",
	"github-token",
	"github-comment",
	"github-deployment",
	"github-deployment-environment",
	"alias-domains",
	"fork-deploy-phrase",
	"dry-run",
}

// Load reads the action inputs from the environment. It does not enforce
// required inputs; call Validate before anything that needs them.
func Load() (*Config, error) {
	v := viper.New()

	for _, name := range inputs {
		if err := v.BindEnv(name, "INPUT_"+strings.ToUpper(name)); err != nil {
			return nil, fmt.Errorf("failed to bind input %s: %w", name, err)
		}
	}
	// Conventional fallbacks for local runs outside the hosted runner.
	if err := v.BindEnv("vercel-token", "INPUT_VERCEL-TOKEN", "VERCEL_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind input vercel-token: %w", err)
	}
	if err := v.BindEnv("github-token", "INPUT_GITHUB-TOKEN", "GITHUB_TOKEN", "GH_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind input github-token: %w", err)
	}

	v.SetDefault("github-comment", true)
	v.SetDefault("github-deployment", true)
	v.SetDefault("github-deployment-environment", "Preview")
	v.SetDefault("fork-deploy-phrase", "/deploy")

	cfg := &Config{
		VercelToken:      v.GetString("vercel-token"),
		VercelOrgID:      v.GetString("vercel-org-id"),
		VercelProjectID:  v.GetString("vercel-project-id"),
		ProjectName:      v.GetString("vercel-project-name"),
		Scope:            v.GetString("scope"),
		VercelArgs:       v.GetString("vercel-args"),
		VercelVersion:    v.GetString("vercel-version"),
		WorkingDirectory: v.GetString("working-directory"),
		GitHubToken:      v.GetString("github-token"),
		GitHubComment:    v.GetBool("github-comment"),
		GitHubDeployment: v.GetBool("github-deployment"),
		Environment:      v.GetString("github-deployment-environment"),
		AliasDomains:     splitLines(v.GetString("alias-domains")),
		ForkDeployPhrase: v.GetString("fork-deploy-phrase"),
		DryRun:           v.GetBool("dry-run"),
	}

	return cfg, nil
}

// Validate enforces the required inputs. It reports every missing input at
// once rather than the first one found.
func (c *Config) Validate() error {
	var missing []string
	if c.VercelToken == "" {
		missing = append(missing, "vercel-token")
	}
	if c.VercelOrgID == "" {
		missing = append(missing, "vercel-org-id")
	}
	if c.VercelProjectID == "" {
		missing = append(missing, "vercel-project-id")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingInput, strings.Join(missing, ", "))
	}
	return nil
}

// Reporting is true when a platform token is available; without one every
// comment/status step is skipped.
func (c *Config) Reporting() bool {
	return c.GitHubToken != ""
}

// ToolEnv returns the environment entries exported to every tool
// subprocess so the CLI links the right org and project.
func (c *Config) ToolEnv() []string {
	return []string{
		"VERCEL_ORG_ID=" + c.VercelOrgID,
		"VERCEL_PROJECT_ID=" + c.VercelProjectID,
	}
}

// Redacted returns a copy safe for logging and debug dumps: secrets are
// masked, never echoed.
func (c *Config) Redacted() Config {
	out := *c
	if out.VercelToken != "" {
		out.VercelToken = redacted
	}
	if out.GitHubToken != "" {
		out.GitHubToken = redacted
	}
	return out
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
