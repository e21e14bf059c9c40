package chat

import "context"

// Config holds provider API keys. A provider without a key is disabled.
type Config struct {
	GeminiAPIKey   string `env:"GEMINI_API_KEY"`
	DeepSeekAPIKey string `env:"DEEPSEEK_API_KEY"`
	VeniceAPIKey   string `env:"VENICE_API_KEY"`
}

// NewRegistry builds a Registry from cfg. All three provider names are
// present; unconfigured ones map to nil and report ErrProviderDisabled.
func NewRegistry(ctx context.Context, cfg Config) (Registry, error) {
	reg := Registry{ProviderGemini: nil, ProviderDeepSeek: nil, ProviderVenice: nil}

	if cfg.GeminiAPIKey != "" {
		g, err := NewGemini(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return nil, err
		}
		reg[ProviderGemini] = g
	}
	if cfg.DeepSeekAPIKey != "" {
		d, err := NewDeepSeek(cfg.DeepSeekAPIKey)
		if err != nil {
			return nil, err
		}
		reg[ProviderDeepSeek] = d
	}
	if cfg.VeniceAPIKey != "" {
		v, err := NewVenice(cfg.VeniceAPIKey)
		if err != nil {
			return nil, err
		}
		reg[ProviderVenice] = v
	}
	return reg, nil
}
