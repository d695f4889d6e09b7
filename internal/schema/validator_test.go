package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProject(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestCheckProjectFile(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	t.Run("absent file is a no-op", func(t *testing.T) {
		file, findings, err := v.CheckProjectFile(t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, file)
		assert.Empty(t, findings)
	})

	t.Run("valid file", func(t *testing.T) {
		dir := t.TempDir()
		writeProject(t, dir, "vercel.json", `{
			"name": "demo",
			"regions": ["sfo1"],
			"github": {"enabled": true, "silent": true},
			"rewrites": [{"source": "/(.*)", "destination": "/index.html"}]
		}`)

		file, findings, err := v.CheckProjectFile(dir)
		require.NoError(t, err)
		assert.Equal(t, "vercel.json", file)
		assert.Empty(t, findings)
	})

	t.Run("violations become findings", func(t *testing.T) {
		dir := t.TempDir()
		writeProject(t, dir, "vercel.json", `{"name": 123, "regionz": ["sfo1"]}`)

		file, findings, err := v.CheckProjectFile(dir)
		require.NoError(t, err)
		assert.Equal(t, "vercel.json", file)
		require.NotEmpty(t, findings)

		joined := ""
		for _, f := range findings {
			joined += f + "\n"
		}
		assert.Contains(t, joined, "/name", "type mismatch located")
		assert.Contains(t, joined, "regionz", "unknown key reported")
	})

	t.Run("legacy now.json honored", func(t *testing.T) {
		dir := t.TempDir()
		writeProject(t, dir, "now.json", `{"name": "legacy"}`)

		file, findings, err := v.CheckProjectFile(dir)
		require.NoError(t, err)
		assert.Equal(t, "now.json", file)
		assert.Empty(t, findings)
	})

	t.Run("vercel.json preferred over now.json", func(t *testing.T) {
		dir := t.TempDir()
		writeProject(t, dir, "vercel.json", `{"name": "current"}`)
		writeProject(t, dir, "now.json", `{"name": 1}`)

		file, findings, err := v.CheckProjectFile(dir)
		require.NoError(t, err)
		assert.Equal(t, "vercel.json", file)
		assert.Empty(t, findings)
	})

	t.Run("unparseable file is an error", func(t *testing.T) {
		dir := t.TempDir()
		writeProject(t, dir, "vercel.json", `{"name": "x"`)

		_, _, err := v.CheckProjectFile(dir)
		assert.Error(t, err)
	})
}
