package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = "gpt-4o-mini"

type openaiResponder struct {
	client *openai.Client
	model  string
}

func NewOpenAI(apiKey, model string) Responder {
	if model == "" {
		model = defaultOpenAIModel
	}
	return &openaiResponder{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (o *openaiResponder) Name() string { return ProviderOpenAI }

func (o *openaiResponder) Respond(ctx context.Context, prompt Prompt) (string, error) {
	var messages []openai.ChatCompletionMessage
	if prompt.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: prompt.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt.Message,
	})

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.model,
		Messages:  messages,
		MaxTokens: defaultMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("openai respond: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", errors.New("openai respond: empty reply")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
