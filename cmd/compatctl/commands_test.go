package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/karthiknish/aroosi-swift-sub004/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = `
version: "cli-test"
categories:
  - id: values
    weight: 0.5
    questions:
      - id: qa
        type: yes_no
        options:
          - {id: "yes", value: 1}
          - {id: "no", value: 0}
  - id: habits
    weight: 0.6
    questions:
      - id: qb
        type: scale
        options:
          - {id: low, value: 0}
          - {id: high, value: 1}
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCatalogValidateEmbedded(t *testing.T) {
	out, err := execute(t, "catalog", "validate")
	require.NoError(t, err)

	assert.Contains(t, out, "religion")
	assert.NotContains(t, out, "warning")
}

func TestCatalogValidateWarnsOnWeights(t *testing.T) {
	path := writeFile(t, t.TempDir(), "catalog.yaml", testCatalog)

	out, err := execute(t, "--catalog", path, "catalog", "validate")
	require.NoError(t, err)

	assert.Contains(t, out, "catalog cli-test: 2 categories, 2 questions")
	assert.Contains(t, out, "warning: category weights sum to 1.1000")
}

func TestCatalogValidateRejectsBadFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "catalog.yaml", "version: [")

	_, err := execute(t, "--catalog", path, "catalog", "validate")
	assert.Error(t, err)
}

func TestScore(t *testing.T) {
	dir := t.TempDir()
	catalogPath := writeFile(t, dir, "catalog.yaml", testCatalog)
	a := writeFile(t, dir, "a.json",
		`{"user_id":"a","responses":{"qa":{"kind":"single","option_id":"yes"},"qb":{"kind":"single","option_id":"high"}}}`)
	b := writeFile(t, dir, "b.json",
		`{"user_id":"b","responses":{"qa":{"kind":"single","option_id":"yes"},"qb":{"kind":"single","option_id":"low"}}}`)

	out, err := execute(t, "--catalog", catalogPath, "score", a, b)
	require.NoError(t, err)

	var score domain.CompatibilityScore
	require.NoError(t, json.Unmarshal([]byte(out), &score))
	assert.Equal(t, "a", score.UserID1)
	assert.Equal(t, "b", score.UserID2)
	assert.InDelta(t, 1.0, score.CategoryScores["values"], 1e-9)
	assert.InDelta(t, 0.0, score.CategoryScores["habits"], 1e-9)
	assert.InDelta(t, 50.0, score.OverallScore, 1e-9)
}

func TestScoreErrors(t *testing.T) {
	dir := t.TempDir()
	valid := writeFile(t, dir, "valid.json", `{"user_id":"a","responses":{}}`)
	noUser := writeFile(t, dir, "nouser.json", `{"responses":{}}`)
	broken := writeFile(t, dir, "broken.json", `{"user_id":`)

	tests := []struct {
		name string
		args []string
	}{
		{name: "one file", args: []string{"score", valid}},
		{name: "missing file", args: []string{"score", valid, filepath.Join(dir, "nope.json")}},
		{name: "malformed json", args: []string{"score", valid, broken}},
		{name: "missing user", args: []string{"score", valid, noUser}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, tc.args...)
			assert.Error(t, err)
		})
	}
}
