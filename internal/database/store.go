// Package database persists generated drafts. PostgreSQL backs production;
// SQLite serves local runs and tests.
package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"agri-updates/internal/models"
)

var ErrNotFound = errors.New("not found")

// Store is the storage sink for drafts.
type Store interface {
	// SaveDraft inserts the post and its job row in one transaction and fills
	// in IDs and timestamps.
	SaveDraft(ctx context.Context, d *models.Draft) (*models.Draft, error)
	GetDraft(ctx context.Context, postID string) (*models.Draft, error)
	CountDrafts(ctx context.Context) (int, error)
	// ListDrafts returns the newest drafts first.
	ListDrafts(ctx context.Context, limit int) ([]models.Post, error)
	Ping(ctx context.Context) error
	Close()
}

// Open connects to the store selected by driver, "postgres" or "sqlite", and
// creates missing tables.
func Open(ctx context.Context, driver, url string) (Store, error) {
	switch strings.ToLower(driver) {
	case "postgres", "postgresql", "pgx":
		repo, err := ConnectDB(ctx, url)
		if err != nil {
			return nil, err
		}
		if err := repo.Migrate(ctx); err != nil {
			repo.Close()
			return nil, err
		}
		return repo, nil
	case "sqlite", "sqlite3":
		return OpenSQLite(ctx, url)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// prepare assigns IDs, status and timestamps before insert.
func prepare(d *models.Draft, now time.Time) {
	if d.Post.ID == "" {
		d.Post.ID = uuid.NewString()
	}
	if d.Post.Status == "" {
		d.Post.Status = models.StatusDraft
	}
	d.Post.CreatedAt, d.Post.UpdatedAt = now, now
	if d.Job != nil {
		if d.Job.ID == "" {
			d.Job.ID = uuid.NewString()
		}
		d.Job.PostID = d.Post.ID
		d.Job.CreatedAt = now
		if d.Job.Tags == nil {
			d.Job.Tags = []string{}
		}
	}
}
