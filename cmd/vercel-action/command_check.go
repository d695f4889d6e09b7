package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coalesc/vercel-action/internal/report"
	"github.com/coalesc/vercel-action/internal/schema"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate inputs, event context, and the project file",
	Long:  "Validate the action inputs and event context without deploying. Reports whether this event is eligible to deploy and any project file findings.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd.Context())
	},
}

func registerCheckCommand(root *cobra.Command) {
	root.AddCommand(checkCmd)
}

func runCheck(ctx context.Context) error {
	fmt.Println("□ Validating inputs...")
	cfg, ev, err := loadRun()
	if err != nil {
		return err
	}
	fmt.Println("✓ Inputs valid")

	fmt.Println("□ Checking eligibility...")
	if ev.IsPullRequest() && ev.IsFork() {
		if !cfg.Reporting() {
			fmt.Println("✗ Fork pull request and no github-token to check for approval; deploy would be skipped")
			return nil
		}
		gh := report.NewClient(ctx, cfg.GitHubToken)
		reporter := report.NewReporter(gh, ev.Repo, cfg.VercelProjectID, logger)
		approved, err := reporter.HasForkOptIn(ctx, ev.PRNumber(), cfg.ForkDeployPhrase)
		if err != nil {
			return fmt.Errorf("failed to check fork approval: %w", err)
		}
		if approved {
			fmt.Println("✓ Fork pull request approved by collaborator")
		} else {
			fmt.Printf("✗ Fork pull request without approval; a collaborator must comment %q\n", cfg.ForkDeployPhrase)
		}
	} else {
		fmt.Println("✓ Event is eligible to deploy")
	}

	fmt.Println("□ Checking project file...")
	validator, err := schema.NewValidator()
	if err != nil {
		return err
	}
	file, findings, err := validator.CheckProjectFile(cfg.WorkingDirectory)
	if err != nil {
		return err
	}
	switch {
	case file == "":
		fmt.Println("✓ No project file (the tool will use its defaults)")
	case len(findings) == 0:
		fmt.Printf("✓ %s is valid\n", file)
	default:
		for _, finding := range findings {
			fmt.Printf("  ! %s: %s\n", file, finding)
		}
		fmt.Printf("✗ %s has %d finding(s); the deploy would still run\n", file, len(findings))
	}

	return nil
}
