package llm

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"
)

var ErrUnauthed = errors.New("no API key configured for completion endpoint")

const hintSystemPrompt = `You are a helpful coding tutor. The user is stuck on a coding problem and has failed multiple attempts.
Provide a HINT to guide them in the right direction, but DO NOT give the complete solution.
Focus on:
1. Identifying potential issues in their approach
2. Suggesting algorithmic concepts they might need
3. Pointing out edge cases they might have missed
Keep the hint concise (2-4 sentences).`

// OpenAIClient produces short natural-language hints via the chat completion API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient builds a hint backend. With an empty key the client stays
// unconfigured and every generation returns ErrUnauthed, which callers treat
// as a fallback-hint condition.
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	c := &OpenAIClient{model: model}
	if apiKey != "" {
		c.client = openai.NewClient(apiKey)
	}
	return c
}

func (c *OpenAIClient) GenerateHint(ctx context.Context, prompt string) (string, error) {
	if c.client == nil {
		return "", ErrUnauthed
	}
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: hintSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
