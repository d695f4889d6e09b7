package report

import (
	"context"

	"github.com/google/go-github/v59/github"
	"golang.org/x/oauth2"
)

// NewClient builds an authenticated platform client from a static token.
// The token is held by the HTTP transport and never logged.
func NewClient(ctx context.Context, token string) *github.Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return github.NewClient(oauth2.NewClient(ctx, ts))
}
