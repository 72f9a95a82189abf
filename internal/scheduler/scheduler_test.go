package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agri-updates/internal/models"
)

type fakeDrafts struct {
	count  int
	posts  []models.Post
	err    error
	listed int
}

func (f *fakeDrafts) CountDrafts(context.Context) (int, error) {
	return f.count, f.err
}

func (f *fakeDrafts) ListDrafts(_ context.Context, limit int) ([]models.Post, error) {
	f.listed = limit
	return f.posts, nil
}

type fakeNotifier struct {
	calls   int
	pending int
	recent  []models.Post
	errs    []error
}

func (f *fakeNotifier) SendDigest(pending int, recent []models.Post) error {
	f.calls++
	f.pending, f.recent = pending, recent
	return nil
}

func (f *fakeNotifier) SendError(err error) error {
	f.errs = append(f.errs, err)
	return nil
}

func TestRunDigest(t *testing.T) {
	drafts := &fakeDrafts{count: 2, posts: []models.Post{{Title: "A"}, {Title: "B"}}}
	notifier := &fakeNotifier{}

	require.NoError(t, New(drafts, notifier, "@daily").RunDigest(context.Background()))

	assert.Equal(t, 1, notifier.calls)
	assert.Equal(t, 2, notifier.pending)
	assert.Len(t, notifier.recent, 2)
	assert.Equal(t, digestSize, drafts.listed)
}

func TestRunDigest_NothingPending(t *testing.T) {
	drafts := &fakeDrafts{}
	notifier := &fakeNotifier{}

	require.NoError(t, New(drafts, notifier, "@daily").RunDigest(context.Background()))

	assert.Equal(t, 1, notifier.calls)
	assert.Zero(t, drafts.listed)
}

func TestRunDigest_StoreError(t *testing.T) {
	notifier := &fakeNotifier{}
	err := New(&fakeDrafts{err: errors.New("db down")}, notifier, "@daily").RunDigest(context.Background())

	assert.ErrorContains(t, err, "db down")
	assert.Zero(t, notifier.calls)
}

func TestRunScheduled_ReportsFailure(t *testing.T) {
	notifier := &fakeNotifier{}
	New(&fakeDrafts{err: errors.New("db down")}, notifier, "@daily").runScheduled(context.Background())

	require.Len(t, notifier.errs, 1)
	assert.ErrorContains(t, notifier.errs[0], "daily digest: count drafts: db down")
	assert.Zero(t, notifier.calls)
}

func TestRunScheduled_Success(t *testing.T) {
	notifier := &fakeNotifier{}
	New(&fakeDrafts{}, notifier, "@daily").runScheduled(context.Background())

	assert.Empty(t, notifier.errs)
	assert.Equal(t, 1, notifier.calls)
}

func TestStart_InvalidSpec(t *testing.T) {
	s := New(&fakeDrafts{}, &fakeNotifier{}, "not a cron spec")
	assert.Error(t, s.Start(context.Background()))
}

func TestStartStop(t *testing.T) {
	s := New(&fakeDrafts{}, &fakeNotifier{}, "0 9 * * *")
	require.NoError(t, s.Start(context.Background()))
	s.Stop()
}
