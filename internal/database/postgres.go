package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"agri-updates/internal/models"
)

// Repository is the PostgreSQL Store.
type Repository struct {
	db *pgxpool.Pool
}

func ConnectDB(ctx context.Context, connString string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	// PgBouncer in transaction mode cannot keep prepared statements.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &Repository{db: pool}, nil
}

// Migrate creates the tables when they do not exist.
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *Repository) Close() {
	if r.db != nil {
		r.db.Close()
	}
}

// ---------------- DRAFT OPERATIONS ----------------

// SaveDraft inserts the post and, for job-like categories, its job row
func (r *Repository) SaveDraft(ctx context.Context, d *models.Draft) (*models.Draft, error) {
	prepare(d, time.Now().UTC())

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	p := &d.Post
	query := `
		INSERT INTO posts (id, title, slug, excerpt, content, category, language, status, source, sender, fingerprint, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	if _, err := tx.Exec(ctx, query, p.ID, p.Title, p.Slug, p.Excerpt, p.Content, p.Category, p.Language,
		p.Status, p.Source, p.Sender, p.Fingerprint, p.CreatedAt, p.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to save post: %w", err)
	}

	if j := d.Job; j != nil {
		query = `
			INSERT INTO jobs (id, post_id, company, location, job_type, salary_range, application_link, tags, deadline, contact, expires_at, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
		if _, err := tx.Exec(ctx, query, j.ID, j.PostID, j.Company, j.Location, j.JobType, j.SalaryRange,
			j.ApplicationLink, j.Tags, j.Deadline, j.Contact, j.ExpiresAt, j.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to save job: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit draft: %w", err)
	}
	return d, nil
}

// GetDraft retrieves a post and its job row by post ID
func (r *Repository) GetDraft(ctx context.Context, postID string) (*models.Draft, error) {
	var d models.Draft
	p := &d.Post
	query := `SELECT id, title, slug, excerpt, content, category, language, status, source, sender, fingerprint, created_at, updated_at
		FROM posts WHERE id = $1`
	err := r.db.QueryRow(ctx, query, postID).
		Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.Category, &p.Language, &p.Status,
			&p.Source, &p.Sender, &p.Fingerprint, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("post %s: %w", postID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	var j models.Job
	query = `SELECT id, post_id, company, location, job_type, salary_range, application_link, tags, deadline, contact, expires_at, created_at
		FROM jobs WHERE post_id = $1`
	err = r.db.QueryRow(ctx, query, postID).
		Scan(&j.ID, &j.PostID, &j.Company, &j.Location, &j.JobType, &j.SalaryRange, &j.ApplicationLink,
			&j.Tags, &j.Deadline, &j.Contact, &j.ExpiresAt, &j.CreatedAt)
	switch {
	case err == nil:
		d.Job = &j
	case !errors.Is(err, pgx.ErrNoRows):
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &d, nil
}

func (r *Repository) CountDrafts(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM posts WHERE status = $1", models.StatusDraft).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count drafts: %w", err)
	}
	return n, nil
}

func (r *Repository) ListDrafts(ctx context.Context, limit int) ([]models.Post, error) {
	rows, err := r.db.Query(ctx, `SELECT id, title, slug, category, status, created_at
		FROM posts WHERE status = $1 ORDER BY created_at DESC LIMIT $2`, models.StatusDraft, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Category, &p.Status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan draft: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
