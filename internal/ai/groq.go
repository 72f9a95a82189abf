package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

const (
	groqURL          = "https://api.groq.com/openai/v1/chat/completions"
	defaultGroqModel = "llama-3.3-70b-versatile"
	defaultTimeout   = 30 * time.Second
)

type groqClient struct {
	apiKey     string
	model      string
	url        string
	httpClient *http.Client
}

// NewGroqClient creates a Groq chat completions client over plain HTTP
func NewGroqClient(s Settings) Polisher {
	c := &groqClient{
		apiKey:     s.APIKey,
		model:      s.Model,
		url:        s.BaseURL,
		httpClient: &http.Client{Timeout: s.Timeout},
	}
	if c.model == "" {
		c.model = defaultGroqModel
	}
	if c.url == "" {
		c.url = groqURL
	}
	if c.httpClient.Timeout == 0 {
		c.httpClient.Timeout = defaultTimeout
	}
	return c
}

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqRequest struct {
	Model       string        `json:"model"`
	Messages    []groqMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// Polish sends the raw message to Groq and returns the rewritten HTML
func (c *groqClient) Polish(ctx context.Context, text string) (string, error) {
	reqBody := groqRequest{
		Model: c.model,
		Messages: []groqMessage{
			{Role: "system", Content: buildSystemPrompt()},
			{Role: "user", Content: buildUserPrompt(text)},
		},
		Temperature: 0.2, // low temperature keeps facts intact
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal groq request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if msg := gjson.GetBytes(bodyBytes, "error.message"); msg.Exists() {
		return "", fmt.Errorf("groq API error (status %d): %s", resp.StatusCode, msg.String())
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("groq API returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	content := gjson.GetBytes(bodyBytes, "choices.0.message.content")
	if !content.Exists() {
		return "", fmt.Errorf("no choices returned from groq API: %w", ErrEmptyResponse)
	}
	return finishOutput(content.String())
}
