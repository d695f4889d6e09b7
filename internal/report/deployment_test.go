package report

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coalesc/vercel-action/internal/model"
)

func TestCreateDeployment(t *testing.T) {
	var captured map[string]any

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/website/deployments", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id": 99}`)
	})

	r := testReporter(t, mux)
	id, err := r.CreateDeployment(context.Background(), "refs/pull/17/merge", "Preview")
	require.NoError(t, err)
	assert.Equal(t, int64(99), id)

	assert.Equal(t, "refs/pull/17/merge", captured["ref"])
	assert.Equal(t, "Preview", captured["environment"])
	assert.Equal(t, false, captured["auto_merge"])
	assert.Equal(t, []any{}, captured["required_contexts"], "record must not block on other checks")
	assert.Equal(t, true, captured["transient_environment"])
}

func TestCreateDeploymentError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/website/deployments", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message": "ref not found"}`, http.StatusUnprocessableEntity)
	})

	r := testReporter(t, mux)
	_, err := r.CreateDeployment(context.Background(), "refs/heads/gone", "Preview")
	assert.ErrorContains(t, err, "failed to create deployment")
}

func TestSetDeploymentStatus(t *testing.T) {
	var captured map[string]any

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/website/deployments/99/statuses", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id": 1, "state": "success"}`)
	})

	r := testReporter(t, mux)
	err := r.SetDeploymentStatus(context.Background(), 99, model.DeploymentSuccess,
		"https://x.vercel.app", "https://vercel.com/acme/x/123")
	require.NoError(t, err)

	assert.Equal(t, "success", captured["state"])
	assert.Equal(t, "https://x.vercel.app", captured["environment_url"])
	assert.Equal(t, "https://vercel.com/acme/x/123", captured["log_url"])
}

func TestSetDeploymentStatusOmitsEmptyURLs(t *testing.T) {
	var captured map[string]any

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/website/deployments/7/statuses", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id": 2, "state": "pending"}`)
	})

	r := testReporter(t, mux)
	require.NoError(t, r.SetDeploymentStatus(context.Background(), 7, model.DeploymentPending, "", ""))

	assert.Equal(t, "pending", captured["state"])
	assert.NotContains(t, captured, "environment_url")
	assert.NotContains(t, captured, "log_url")
}
