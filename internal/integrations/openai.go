package integrations

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const reportSystemPrompt = "You help engineering professionals document their project experience for professional registration. Write in plain, factual British English."

// OpenAIClient drafts report text with the OpenAI chat completions API
type OpenAIClient struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAIClient creates a new OpenAI-backed writer
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	return newOpenAIClient(openai.DefaultConfig(apiKey), model)
}

// NewOpenAIClientWithBaseURL targets an OpenAI-compatible endpoint
func NewOpenAIClientWithBaseURL(apiKey, model, baseURL string) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return newOpenAIClient(cfg, model)
}

func newOpenAIClient(cfg openai.ClientConfig, model string) *OpenAIClient {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIClient{
		client:    openai.NewClientWithConfig(cfg),
		model:     model,
		maxTokens: 1200,
	}
}

// Draft implements report.Writer
func (c *OpenAIClient) Draft(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: reportSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
