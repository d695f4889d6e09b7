package model

// DeploymentResult is the outcome of one deploy invocation. URL may be
// empty when the tool produced no stdout; consumers must tolerate that.
type DeploymentResult struct {
	// URL is the live deployment address, taken verbatim from the tool's
	// standard output. No shape validation is performed here.
	URL string `json:"url" yaml:"url"`
	// InspectURL points at the tool's dashboard view of the deployment,
	// recovered from the "Inspect:" stderr line. May be empty.
	InspectURL string `json:"inspectUrl" yaml:"inspectUrl"`
}

// CommentContext carries everything the reporter needs to render a status
// comment. CommitSHA is always set; the rest degrade to placeholders.
type CommentContext struct {
	CommitSHA     string `json:"commitSha" yaml:"commitSha"`
	Name          string `json:"name,omitempty" yaml:"name,omitempty"`
	DeploymentURL string `json:"deploymentUrl,omitempty" yaml:"deploymentUrl,omitempty"`
	InspectURL    string `json:"inspectUrl,omitempty" yaml:"inspectUrl,omitempty"`
	// Body, when set, replaces the templated comment body verbatim.
	Body string `json:"body,omitempty" yaml:"body,omitempty"`
}

// DeploymentState is the lifecycle state reported to the platform's
// deployment-status API.
type DeploymentState string

const (
	DeploymentPending DeploymentState = "pending"
	DeploymentSuccess DeploymentState = "success"
	DeploymentFailure DeploymentState = "failure"
)
