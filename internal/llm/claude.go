package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	anthropic "github.com/liushuangls/go-anthropic/v2"
)

const defaultClaudeModel = "claude-sonnet-4-5"

type claudeResponder struct {
	client *anthropic.Client
	model  string
}

func NewClaude(apiKey, model string) Responder {
	if model == "" {
		model = defaultClaudeModel
	}
	return &claudeResponder{
		client: anthropic.NewClient(apiKey),
		model:  model,
	}
}

func (c *claudeResponder) Name() string { return ProviderClaude }

func (c *claudeResponder) Respond(ctx context.Context, prompt Prompt) (string, error) {
	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model: anthropic.Model(c.model),
		Messages: []anthropic.Message{
			{
				Role:    anthropic.RoleUser,
				Content: []anthropic.MessageContent{anthropic.NewTextMessageContent(prompt.Message)},
			},
		},
		MaxTokens: defaultMaxTokens,
		System:    prompt.System,
	})
	if err != nil {
		return "", fmt.Errorf("claude respond: %w", err)
	}

	var reply strings.Builder
	for _, content := range resp.Content {
		reply.WriteString(content.GetText())
	}
	if reply.Len() == 0 {
		return "", errors.New("claude respond: empty reply")
	}
	return strings.TrimSpace(reply.String()), nil
}
