package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotConfigured means no provider or API key was set; callers skip polishing.
	ErrNotConfigured = errors.New("llm provider not configured")
	// ErrEmptyResponse is returned when the provider answers with no content.
	ErrEmptyResponse = errors.New("llm returned empty content")
)

// Polisher rewrites a raw announcement into tidy HTML that ends with a
// structured data block. Implementations make a single request and never retry.
type Polisher interface {
	Polish(ctx context.Context, text string) (string, error)
}

// Settings selects and configures a provider.
type Settings struct {
	Provider string // "groq", "openai" or "" for none
	Model    string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
}

// New returns the Polisher for the configured provider.
func New(s Settings) (Polisher, error) {
	if s.Provider == "" || s.APIKey == "" {
		return nil, ErrNotConfigured
	}
	switch strings.ToLower(s.Provider) {
	case "groq":
		return NewGroqClient(s), nil
	case "openai":
		return NewOpenAIClient(s), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", s.Provider)
	}
}

// buildSystemPrompt creates the system instruction for the rewrite model
func buildSystemPrompt() string {
	return `You are an editor for Agri Updates, a site that republishes agriculture job, scholarship, fellowship and grant announcements.
I will give you a raw message forwarded from WhatsApp or Telegram.

Task:
1. Rewrite it as a short, clean article in Markdown: one overview paragraph, then bullet lists for eligibility and how to apply. Remove emoji, chat artifacts and repeated lines.
2. NEVER change facts. Copy every name, number, salary, date, phone number, email and link EXACTLY as written in the message. Do not invent anything that is not in the message.
3. After the article, append this block, with one line per label, values copied verbatim from the message:
---BEGIN STRUCTURED DATA---
POSITION: <job title or programme name>
COMPANY: <organisation>
LOCATION: <place>
SALARY: <salary, stipend or amount>
EXPERIENCE: <experience required>
QUALIFICATION: <qualification required>
DEADLINE: <last date>
CONTACT: <phone or email>
---END STRUCTURED DATA---
4. Each line holds exactly one label. Never put two labels on one line. Write N/A when the message does not say.
5. Return only the article and the block. Do NOT wrap the output in code fences.`
}

// buildUserPrompt wraps the raw message
func buildUserPrompt(text string) string {
	return fmt.Sprintf("Raw message:\n%s\n\nRewrite it and append the structured data block.", text)
}

// finishOutput strips code fences the model may add anyway and renders
// Markdown answers to HTML.
func finishOutput(content string) (string, error) {
	content = cleanMarkdownFence(content)
	if content == "" {
		return "", ErrEmptyResponse
	}
	if looksLikeHTML(content) {
		return content, nil
	}
	return MarkdownToHTML(content)
}

// cleanMarkdownFence removes backticks and a language tag if the model tries to be helpful
func cleanMarkdownFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```")
	if i := strings.IndexByte(content, '\n'); i >= 0 && !strings.ContainsAny(content[:i], " :") {
		content = content[i+1:]
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}

func looksLikeHTML(s string) bool {
	s = strings.ToLower(s)
	for _, tag := range []string{"<p>", "<p ", "<h1", "<h2", "<h3", "<ul", "<ol", "<div", "<br"} {
		if strings.Contains(s, tag) {
			return true
		}
	}
	return false
}
