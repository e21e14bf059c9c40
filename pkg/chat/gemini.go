package chat

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// GeminiFlash is the default Gemini model.
const GeminiFlash = "gemini-1.5-flash"

// Gemini answers through the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// GeminiOption configures a Gemini provider.
type GeminiOption func(*geminiOptions)

type geminiOptions struct {
	model   string
	baseURL string
}

// WithGeminiModel overrides the model name.
func WithGeminiModel(model string) GeminiOption {
	return func(o *geminiOptions) {
		if model != "" {
			o.model = model
		}
	}
}

// WithGeminiBaseURL points the client at another endpoint, e.g. a proxy.
func WithGeminiBaseURL(url string) GeminiOption {
	return func(o *geminiOptions) {
		o.baseURL = url
	}
}

// NewGemini creates a Gemini provider for apiKey.
func NewGemini(ctx context.Context, apiKey string, opts ...GeminiOption) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrInvalidAPIKey
	}

	o := geminiOptions{model: GeminiFlash}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if o.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: o.baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Gemini{client: client, model: o.model}, nil
}

// Complete answers message with the travel assistant prompt.
func (g *Gemini) Complete(ctx context.Context, message string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(message), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr[float32](Temperature),
		MaxOutputTokens:   MaxTokens,
	})
	if err != nil {
		return "", errors.Join(ErrCompletionFailed, fmt.Errorf("gemini: %w", err))
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini: %w", ErrEmptyResponse)
	}
	return text, nil
}
