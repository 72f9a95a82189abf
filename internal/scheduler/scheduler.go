// Package scheduler runs the periodic digest of drafts waiting for review.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"agri-updates/internal/models"
)

// digestSize is how many recent drafts the digest lists by title.
const digestSize = 10

// DraftSource is the part of the store the digest reads.
type DraftSource interface {
	CountDrafts(ctx context.Context) (int, error)
	ListDrafts(ctx context.Context, limit int) ([]models.Post, error)
}

type Notifier interface {
	SendDigest(pending int, recent []models.Post) error
	SendError(err error) error
}

// Scheduler wraps robfig/cron and fires the digest.
type Scheduler struct {
	cron     *cron.Cron
	drafts   DraftSource
	notifier Notifier
	spec     string // cron spec, e.g. "0 9 * * *"
}

func New(drafts DraftSource, notifier Notifier, spec string) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLogger(cron.DefaultLogger)),
		drafts:   drafts,
		notifier: notifier,
		spec:     spec,
	}
}

// Start registers the digest job and starts the scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runScheduled(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] Cron started, spec: %s", s.spec)
	return nil
}

// Stop waits for a running digest to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Println("[scheduler] Cron stopped")
}

// runScheduled is the cron job body; a failed digest is reported to the
// editors instead of being lost in the server log.
func (s *Scheduler) runScheduled(ctx context.Context) {
	err := s.RunDigest(ctx)
	if err == nil {
		return
	}
	log.Printf("[scheduler] Digest error: %v", err)
	if sendErr := s.notifier.SendError(fmt.Errorf("daily digest: %w", err)); sendErr != nil {
		log.Printf("[scheduler] Failed to report digest error: %v", sendErr)
	}
}

// RunDigest counts pending drafts and sends the summary.
func (s *Scheduler) RunDigest(ctx context.Context) error {
	pending, err := s.drafts.CountDrafts(ctx)
	if err != nil {
		return fmt.Errorf("count drafts: %w", err)
	}

	var recent []models.Post
	if pending > 0 {
		recent, err = s.drafts.ListDrafts(ctx, digestSize)
		if err != nil {
			return fmt.Errorf("list drafts: %w", err)
		}
	}

	log.Printf("[scheduler] Sending digest for %d pending draft(s)", pending)
	return s.notifier.SendDigest(pending, recent)
}
