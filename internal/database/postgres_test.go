package database

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a real server when TEST_DATABASE_URL is set.
func TestRepository_RoundTrip(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	repo, err := ConnectDB(ctx, url)
	require.NoError(t, err)
	defer repo.Close()
	require.NoError(t, repo.Migrate(ctx))

	saved, err := repo.SaveDraft(ctx, jobDraft("test-"+uuid.NewString()))
	require.NoError(t, err)

	got, err := repo.GetDraft(ctx, saved.Post.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.Post.Slug, got.Post.Slug)
	require.NotNil(t, got.Job)
	assert.Equal(t, []string{"Agri", "Sales"}, got.Job.Tags)

	_, err = repo.GetDraft(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}
