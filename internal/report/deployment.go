package report

import (
	"context"
	"fmt"

	"github.com/google/go-github/v59/github"

	"github.com/coalesc/vercel-action/internal/model"
)

// CreateDeployment opens a deployment record for ref in the given
// environment and returns its id. Required contexts are cleared so the
// record never blocks on other checks, and auto-merge is off because the
// runner already checked out the exact commit.
func (r *Reporter) CreateDeployment(ctx context.Context, ref, environment string) (int64, error) {
	dep, _, err := r.gh.Repositories.CreateDeployment(ctx, r.repo.Owner, r.repo.Name, &github.DeploymentRequest{
		Ref:                  github.String(ref),
		Environment:          github.String(environment),
		AutoMerge:            github.Bool(false),
		RequiredContexts:     &[]string{},
		TransientEnvironment: github.Bool(true),
		Description:          github.String("Vercel preview deployment"),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create deployment for %s: %w", ref, err)
	}
	r.logger.Debug("created deployment record", "id", dep.GetID(), "ref", ref, "environment", environment)
	return dep.GetID(), nil
}

// SetDeploymentStatus moves a deployment record through its lifecycle.
// envURL and logURL may be empty; the platform tolerates both.
func (r *Reporter) SetDeploymentStatus(ctx context.Context, deploymentID int64, state model.DeploymentState, envURL, logURL string) error {
	req := &github.DeploymentStatusRequest{
		State: github.String(string(state)),
	}
	if envURL != "" {
		req.EnvironmentURL = github.String(envURL)
	}
	if logURL != "" {
		req.LogURL = github.String(logURL)
	}

	_, _, err := r.gh.Repositories.CreateDeploymentStatus(ctx, r.repo.Owner, r.repo.Name, deploymentID, req)
	if err != nil {
		return fmt.Errorf("failed to set deployment %d to %s: %w", deploymentID, state, err)
	}
	r.logger.Debug("deployment status set", "id", deploymentID, "state", state)
	return nil
}
