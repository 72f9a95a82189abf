package models

import (
	"time"
)

type PostStatus string

const (
	StatusDraft     PostStatus = "DRAFT"
	StatusPublished PostStatus = "PUBLISHED"
	StatusRejected  PostStatus = "REJECTED"
)

// Post is a persisted draft built from a GeneratedPost.
type Post struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content"`
	Category    Category   `json:"category"`
	Language    string     `json:"language,omitempty"`
	Status      PostStatus `json:"status"`
	Source      string     `json:"source"`
	Sender      string     `json:"sender,omitempty"`
	Fingerprint string     `json:"fingerprint,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Job is the jobs-table row attached to a job-like post.
type Job struct {
	ID              string     `json:"id"`
	PostID          string     `json:"post_id"`
	Company         string     `json:"company"`
	Location        string     `json:"location"`
	JobType         string     `json:"job_type,omitempty"`
	SalaryRange     string     `json:"salary_range,omitempty"`
	ApplicationLink string     `json:"application_link,omitempty"`
	Tags            []string   `json:"tags"`
	Deadline        string     `json:"deadline,omitempty"`
	Contact         string     `json:"contact,omitempty"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"` // parsed from Deadline
	CreatedAt       time.Time  `json:"created_at"`
}

// Draft bundles the rows written for one generated post.
type Draft struct {
	Post Post `json:"post"`
	Job  *Job `json:"job,omitempty"`
}
