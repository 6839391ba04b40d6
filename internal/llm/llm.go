// Package llm generates chat companion replies, either from a hosted model
// or from a fixed keyword script.
package llm

import (
	"context"
	"fmt"
)

// Provider names accepted by New.
const (
	ProviderClaude = "claude"
	ProviderOpenAI = "openai"
	ProviderNone   = "none"
)

const defaultMaxTokens = 512

// Prompt is one chat turn.
type Prompt struct {
	// System steers the reply with the user's recent records.
	System  string
	Message string
	Topics  []string
}

type Responder interface {
	Respond(ctx context.Context, prompt Prompt) (string, error)
	// Name identifies the responder in stored conversations.
	Name() string
}

// New constructs the responder for provider. An empty model selects the
// provider default; ProviderNone and "" return the script.
func New(provider, model, apiKey string) (Responder, error) {
	switch provider {
	case ProviderClaude:
		if apiKey == "" {
			return nil, fmt.Errorf("llm: %s requires an API key", provider)
		}
		return NewClaude(apiKey, model), nil
	case ProviderOpenAI:
		if apiKey == "" {
			return nil, fmt.Errorf("llm: %s requires an API key", provider)
		}
		return NewOpenAI(apiKey, model), nil
	case ProviderNone, "":
		return NewScript(), nil
	default:
		return nil, fmt.Errorf("llm: unknown provider %q; valid providers: claude, openai, none", provider)
	}
}
