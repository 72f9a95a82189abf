// Package server exposes the ingestion webhook and manual generation over
// HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"agri-updates/internal/dedup"
	"agri-updates/internal/generator"
	"agri-updates/internal/logger"
	"agri-updates/internal/models"
)

// Engine runs one message through the generation pipeline.
type Engine interface {
	Run(ctx context.Context, raw string) generator.Result
}

// DraftStore is the subset of database.Store the handlers need.
type DraftStore interface {
	SaveDraft(ctx context.Context, d *models.Draft) (*models.Draft, error)
	GetDraft(ctx context.Context, postID string) (*models.Draft, error)
	Ping(ctx context.Context) error
}

type Notifier interface {
	SendDraft(d *models.Draft, url string) error
}

type Deps struct {
	Engine Engine
	Store  DraftStore
	// Cache and Notifier are optional.
	Cache    dedup.Cache
	Notifier Notifier
	Log      *logger.Logger

	Secret         string
	AllowedOrigins []string
	// PostURL maps a slug to the post's public address.
	PostURL func(slug string) string
	Now     func() time.Time
}

type Server struct {
	deps Deps
}

func New(deps Deps) *Server {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.PostURL == nil {
		deps.PostURL = func(slug string) string { return "/posts/" + slug }
	}
	return &Server{deps: deps}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(s.deps.Log), CORS(s.deps.AllowedOrigins))

	r.GET("/health", s.health)

	api := r.Group("/api", RequireSecret(s.deps.Secret))
	api.POST("/webhook/ingest", s.ingest)
	api.POST("/generate", s.generate)
	return r
}

func (s *Server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.deps.Store.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "database": "ok"})
}
