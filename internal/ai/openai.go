package ai

import (
	"context"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultOpenAIModel = "gpt-4o-mini"

// openAIClient talks to OpenAI or any compatible endpoint through the official SDK.
type openAIClient struct {
	client openai.Client
	model  string
}

func NewOpenAIClient(s Settings) Polisher {
	timeout := s.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	opts := []option.RequestOption{
		option.WithAPIKey(s.APIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(timeout),
	}
	if s.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(s.BaseURL))
	}
	model := s.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	return &openAIClient{client: openai.NewClient(opts...), model: model}
}

func (o *openAIClient) Polish(ctx context.Context, text string) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(buildSystemPrompt()),
			openai.UserMessage(buildUserPrompt(text)),
		},
		Temperature: openai.Float(0.2),
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: empty choices: %w", ErrEmptyResponse)
	}
	return finishOutput(resp.Choices[0].Message.Content)
}
