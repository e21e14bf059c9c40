package chat

import (
	"context"
	"strings"
)

// Provider names accepted by the chat endpoint.
const (
	ProviderGemini   = "gemini"
	ProviderDeepSeek = "deepseek"
	ProviderVenice   = "venice"
)

// Generation settings shared by every provider.
const (
	Temperature = 0.7
	MaxTokens   = 150
)

// SystemPrompt frames every conversation.
const SystemPrompt = "You are a helpful travel assistant for a trip planning website called Travel Craft. " +
	"Answer questions in a friendly and helpful manner."

// Completer answers a single user message.
type Completer interface {
	Complete(ctx context.Context, message string) (string, error)
}

// Registry maps provider names to completers.
type Registry map[string]Completer

// Get returns the completer for name. An empty name selects Gemini.
func (r Registry) Get(name string) (Completer, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = ProviderGemini
	}
	c, ok := r[name]
	if !ok {
		return nil, ErrUnknownProvider
	}
	if c == nil {
		return nil, ErrProviderDisabled
	}
	return c, nil
}
