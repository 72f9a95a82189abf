package server

import (
	"github.com/gin-gonic/gin"
)

const (
	codeUnauthorized      = "unauthorized"
	codeInvalidRequest    = "invalid_request"
	codePersistenceFailed = "persistence_failed"
)

type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

func respondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, errorEnvelope{Error: msg, Code: code})
}

// PostRef identifies a stored draft in ingestion responses.
type PostRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
	URL   string `json:"url"`
}

type ingestResponse struct {
	Success   bool    `json:"success"`
	Post      PostRef `json:"post"`
	Duplicate bool    `json:"duplicate,omitempty"`
}

type generateResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}
