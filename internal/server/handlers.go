package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"agri-updates/internal/database"
	"agri-updates/internal/dedup"
	"agri-updates/internal/extract"
	"agri-updates/internal/generator"
	"agri-updates/internal/models"
	"agri-updates/internal/sanitize"
)

var errMissingText = errors.New("rawText is required")

type ingestRequest struct {
	RawText string `json:"rawText"`
	Sender  string `json:"sender"`
}

type generateRequest struct {
	RawText string `json:"rawText"`
}

// ingest turns a forwarded message into a stored draft. A repeat delivery of
// the same text returns the draft created the first time.
func (s *Server) ingest(c *gin.Context) {
	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidRequest, err)
		return
	}
	if strings.TrimSpace(req.RawText) == "" {
		respondError(c, http.StatusBadRequest, codeInvalidRequest, errMissingText)
		return
	}
	ctx := c.Request.Context()
	log := s.deps.Log

	fp := dedup.Fingerprint(req.RawText)
	if existing := s.lookupDuplicate(c, fp); existing != nil {
		log.Info("duplicate message, returning existing draft", "post_id", existing.Post.ID, "sender", req.Sender)
		c.JSON(http.StatusOK, ingestResponse{Success: true, Post: s.ref(existing), Duplicate: true})
		return
	}

	res := s.deps.Engine.Run(ctx, req.RawText)
	draft := s.buildDraft(res, req.Sender, fp)

	saved, err := s.deps.Store.SaveDraft(ctx, draft)
	if err != nil {
		log.Error("save draft failed", "error", err, "slug", draft.Post.Slug)
		respondError(c, http.StatusInternalServerError, codePersistenceFailed, err)
		return
	}
	log.Info("draft saved",
		"post_id", saved.Post.ID,
		"category", saved.Post.Category,
		"source", saved.Post.Source,
		"retried", res.Retried,
		"sender", req.Sender,
	)

	if s.deps.Cache != nil {
		if err := s.deps.Cache.Remember(ctx, fp, saved.Post.ID); err != nil {
			log.Warn("remember fingerprint failed", "error", err)
		}
	}
	s.notify(saved)

	c.JSON(http.StatusCreated, ingestResponse{Success: true, Post: s.ref(saved)})
}

// generate runs the engine without storing anything.
func (s *Server) generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidRequest, err)
		return
	}
	if strings.TrimSpace(req.RawText) == "" {
		respondError(c, http.StatusBadRequest, codeInvalidRequest, errMissingText)
		return
	}

	res := s.deps.Engine.Run(c.Request.Context(), req.RawText)
	post := res.Post
	post.Content = s.clean(post.Content)
	c.JSON(http.StatusOK, generateResponse{Success: true, Data: post})
}

func (s *Server) lookupDuplicate(c *gin.Context, fp string) *models.Draft {
	if s.deps.Cache == nil {
		return nil
	}
	ctx := c.Request.Context()
	postID, ok, err := s.deps.Cache.Lookup(ctx, fp)
	if err != nil {
		s.deps.Log.Warn("fingerprint lookup failed", "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	d, err := s.deps.Store.GetDraft(ctx, postID)
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			s.deps.Log.Warn("load duplicate draft failed", "post_id", postID, "error", err)
		}
		return nil
	}
	return d
}

func (s *Server) buildDraft(res generator.Result, sender, fp string) *models.Draft {
	post := res.Post
	d := &models.Draft{
		Post: models.Post{
			Title:       post.Title,
			Slug:        generator.UniqueSlug(post.Slug, s.deps.Now()),
			Excerpt:     post.Excerpt,
			Content:     s.clean(post.Content),
			Category:    post.Category,
			Language:    post.Language,
			Status:      models.StatusDraft,
			Source:      string(res.Source),
			Sender:      sender,
			Fingerprint: fp,
		},
	}
	if jd := post.JobDetails; jd != nil {
		d.Job = &models.Job{
			Company:         jd.Company,
			Location:        jd.Location,
			JobType:         jd.JobType,
			SalaryRange:     jd.SalaryRange,
			ApplicationLink: jd.ApplicationLink,
			Tags:            jd.Tags,
			Deadline:        jd.Deadline,
			Contact:         jd.Contact,
		}
		if t, ok := extract.ParseDeadline(jd.Deadline); ok {
			d.Job.ExpiresAt = &t
		}
	}
	return d
}

// clean enforces the output allow-list; generated bodies already conform, so
// a parse failure keeps the original.
func (s *Server) clean(content string) string {
	if v, err := sanitize.Violations(content); err == nil && len(v) > 0 {
		s.deps.Log.Warn("body outside the allow-list, cleaning", "violations", v)
	}
	out, err := sanitize.Clean(content)
	if err != nil {
		s.deps.Log.Warn("sanitize failed, keeping generated body", "error", err)
		return content
	}
	return out
}

func (s *Server) notify(d *models.Draft) {
	if s.deps.Notifier == nil {
		return
	}
	url := s.deps.PostURL(d.Post.Slug)
	go func() {
		if err := s.deps.Notifier.SendDraft(d, url); err != nil {
			s.deps.Log.Warn("telegram notification failed", "post_id", d.Post.ID, "error", err)
		}
	}()
}

func (s *Server) ref(d *models.Draft) PostRef {
	return PostRef{
		ID:    d.Post.ID,
		Title: d.Post.Title,
		Slug:  d.Post.Slug,
		URL:   s.deps.PostURL(d.Post.Slug),
	}
}
