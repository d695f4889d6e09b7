package event

import (
	"encoding/json"
	"fmt"
	"os"
)

// payload mirrors the webhook-event fields this action reads. Everything
// else in the document is ignored.
type payload struct {
	Number      int          `json:"number"`
	PullRequest *prPayload   `json:"pull_request"`
	HeadCommit  *headCommit  `json:"head_commit"`
	Repository  *repoPayload `json:"repository"`
}

type prPayload struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Head   prSide `json:"head"`
	Base   prSide `json:"base"`
}

type prSide struct {
	Ref  string       `json:"ref"`
	SHA  string       `json:"sha"`
	Repo *repoPayload `json:"repo"`
}

type repoPayload struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Owner    struct {
		Login string `json:"login"`
	} `json:"owner"`
}

type headCommit struct {
	Message string `json:"message"`
	Author  struct {
		Name     string `json:"name"`
		Username string `json:"username"`
	} `json:"author"`
}

func (r *repoPayload) toRepo() Repo {
	if r == nil {
		return Repo{}
	}
	return Repo{Owner: r.Owner.Login, Name: r.Name}
}

// applyPayload folds the event document at path into the context. A
// missing file is an error: the runner always materializes the payload
// when GITHUB_EVENT_PATH is set.
func (c *Context) applyPayload(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read event payload %s: %w", path, err)
	}

	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("failed to parse event payload %s: %w", path, err)
	}

	if p.HeadCommit != nil {
		c.CommitMessage = p.HeadCommit.Message
		c.CommitAuthor = p.HeadCommit.Author.Name
	}

	if p.PullRequest != nil {
		pr := &PullRequest{
			Number:   p.PullRequest.Number,
			Title:    p.PullRequest.Title,
			HeadRef:  p.PullRequest.Head.Ref,
			HeadSHA:  p.PullRequest.Head.SHA,
			HeadRepo: p.PullRequest.Head.Repo.toRepo(),
			BaseRef:  p.PullRequest.Base.Ref,
			BaseRepo: p.PullRequest.Base.Repo.toRepo(),
		}
		if pr.Number == 0 {
			pr.Number = p.Number
		}
		c.PullRequest = pr
	}

	return nil
}
