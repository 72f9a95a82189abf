package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agri-updates/internal/models"
)

const message = "Hiring: Farm Manager\nCompany: Green Acres Farms\nLocation: Nashik\nContact: 9876543210"

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Reader = strings.NewReader(stdin)
	app.Writer = &stdout
	app.ErrWriter = &stderr
	err := app.Run(append([]string{"agrigen"}, args...))
	return stdout.String(), stderr.String(), err
}

func TestGenerate_Stdin(t *testing.T) {
	out, stderr, err := run(t, message, "generate", "--trace")
	require.NoError(t, err)

	var post models.GeneratedPost
	require.NoError(t, json.Unmarshal([]byte(out), &post))
	assert.Equal(t, "Farm Manager at Green Acres Farms", post.Title)
	assert.Equal(t, models.CategoryJobs, post.Category)
	require.NotNil(t, post.JobDetails)
	assert.Equal(t, "Nashik", post.JobDetails.Location)
	assert.Contains(t, stderr, "source=original")
	assert.Contains(t, stderr, "SKIP_POLISH")
}

func TestGenerate_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "msg.txt")
	require.NoError(t, os.WriteFile(path, []byte(message), 0644))

	out, _, err := run(t, "", "generate", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"slug": "farm-manager-at-green-acres-farms"`)
}

func TestGenerate_EmptyInput(t *testing.T) {
	_, _, err := run(t, "   \n", "generate")
	assert.ErrorContains(t, err, "input is empty")
}
