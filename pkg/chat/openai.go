package chat

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAI-compatible endpoints and their models.
const (
	DeepSeekBaseURL = "https://api.deepseek.com/v1"
	DeepSeekChat    = "deepseek-chat"
	VeniceBaseURL   = "https://api.venice.ai/api/v1"
	VeniceLlama     = "llama-3.3-70b"
)

// OpenAICompatible talks to any chat-completions API speaking the OpenAI
// protocol. DeepSeek and Venice are both served through it.
type OpenAICompatible struct {
	client openai.Client
	model  string
	name   string
}

// OpenAIOption configures an OpenAI-compatible provider.
type OpenAIOption func(*[]option.RequestOption)

// WithOpenAIHTTPClient overrides the HTTP client.
func WithOpenAIHTTPClient(c *http.Client) OpenAIOption {
	return func(opts *[]option.RequestOption) {
		if c != nil {
			*opts = append(*opts, option.WithHTTPClient(c))
		}
	}
}

// WithOpenAIBaseURL overrides the provider endpoint.
func WithOpenAIBaseURL(url string) OpenAIOption {
	return func(opts *[]option.RequestOption) {
		if url != "" {
			*opts = append(*opts, option.WithBaseURL(url))
		}
	}
}

// NewOpenAICompatible creates a client for model at baseURL. name is used in errors.
func NewOpenAICompatible(name, apiKey, baseURL, model string, opts ...OpenAIOption) (*OpenAICompatible, error) {
	if apiKey == "" {
		return nil, ErrInvalidAPIKey
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(1),
	}
	for _, opt := range opts {
		opt(&reqOpts)
	}

	return &OpenAICompatible{
		client: openai.NewClient(reqOpts...),
		model:  model,
		name:   name,
	}, nil
}

// NewDeepSeek creates a provider for the DeepSeek API.
func NewDeepSeek(apiKey string, opts ...OpenAIOption) (*OpenAICompatible, error) {
	return NewOpenAICompatible(ProviderDeepSeek, apiKey, DeepSeekBaseURL, DeepSeekChat, opts...)
}

// NewVenice creates a provider for the Venice API.
func NewVenice(apiKey string, opts ...OpenAIOption) (*OpenAICompatible, error) {
	return NewOpenAICompatible(ProviderVenice, apiKey, VeniceBaseURL, VeniceLlama, opts...)
}

// Complete answers message with the travel assistant prompt.
func (o *OpenAICompatible) Complete(ctx context.Context, message string) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemPrompt),
			openai.UserMessage(message),
		},
		MaxTokens:   openai.Int(MaxTokens),
		Temperature: openai.Float(Temperature),
	})
	if err != nil {
		return "", errors.Join(ErrCompletionFailed, fmt.Errorf("%s: %w", o.name, err))
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%s: %w", o.name, ErrEmptyResponse)
	}
	return resp.Choices[0].Message.Content, nil
}
