package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"agri-updates/internal/models"
)

// SQLite is the file-backed Store for local runs.
type SQLite struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens or creates the database at path and ensures the schema.
// ":memory:" gives a private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	path = strings.TrimPrefix(path, "sqlite://")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one connection keeps :memory: databases shared and serializes writers
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &SQLite{db: db, path: path}, nil
}

// Path returns the database file path
func (s *SQLite) Path() string {
	return s.path
}

func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLite) Close() {
	_ = s.db.Close()
}

func (s *SQLite) SaveDraft(ctx context.Context, d *models.Draft) (*models.Draft, error) {
	prepare(d, time.Now().UTC())

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	p := &d.Post
	_, err = tx.ExecContext(ctx, `
		INSERT INTO posts (id, title, slug, excerpt, content, category, language, status, source, sender, fingerprint, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Slug, p.Excerpt, p.Content, string(p.Category), p.Language, string(p.Status),
		p.Source, p.Sender, p.Fingerprint, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save post: %w", err)
	}

	if j := d.Job; j != nil {
		tags, err := json.Marshal(j.Tags)
		if err != nil {
			return nil, fmt.Errorf("failed to encode tags: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO jobs (id, post_id, company, location, job_type, salary_range, application_link, tags, deadline, contact, expires_at, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			j.ID, j.PostID, j.Company, j.Location, j.JobType, j.SalaryRange, j.ApplicationLink,
			string(tags), j.Deadline, j.Contact, j.ExpiresAt, j.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to save job: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit draft: %w", err)
	}
	return d, nil
}

func (s *SQLite) GetDraft(ctx context.Context, postID string) (*models.Draft, error) {
	var (
		d                models.Draft
		category, status string
	)
	p := &d.Post
	err := s.db.QueryRowContext(ctx, `SELECT id, title, slug, excerpt, content, category, language, status, source, sender, fingerprint, created_at, updated_at
		FROM posts WHERE id = ?`, postID).
		Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &category, &p.Language, &status,
			&p.Source, &p.Sender, &p.Fingerprint, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post %s: %w", postID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	p.Category, p.Status = models.Category(category), models.PostStatus(status)

	var (
		j         models.Job
		tags      string
		expiresAt sql.NullTime
	)
	err = s.db.QueryRowContext(ctx, `SELECT id, post_id, company, location, job_type, salary_range, application_link, tags, deadline, contact, expires_at, created_at
		FROM jobs WHERE post_id = ?`, postID).
		Scan(&j.ID, &j.PostID, &j.Company, &j.Location, &j.JobType, &j.SalaryRange, &j.ApplicationLink,
			&tags, &j.Deadline, &j.Contact, &expiresAt, &j.CreatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return &d, nil
	case err != nil:
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if err := json.Unmarshal([]byte(tags), &j.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		j.ExpiresAt = &t
	}
	d.Job = &j
	return &d, nil
}

func (s *SQLite) CountDrafts(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts WHERE status = ?", string(models.StatusDraft)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count drafts: %w", err)
	}
	return n, nil
}

func (s *SQLite) ListDrafts(ctx context.Context, limit int) ([]models.Post, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, slug, category, status, created_at
		FROM posts WHERE status = ? ORDER BY created_at DESC LIMIT ?`, string(models.StatusDraft), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var (
			p                models.Post
			category, status string
		)
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &category, &status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan draft: %w", err)
		}
		p.Category, p.Status = models.Category(category), models.PostStatus(status)
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
