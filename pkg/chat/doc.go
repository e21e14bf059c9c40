// Package chat answers travel questions through one of three hosted language
// models: Gemini (google.golang.org/genai) and the OpenAI-compatible DeepSeek
// and Venice APIs (github.com/openai/openai-go). Every provider uses the same
// system prompt, temperature and token limit.
//
//	reg, err := chat.NewRegistry(ctx, cfg)
//	c, err := reg.Get("deepseek")
//	answer, err := c.Complete(ctx, "What should I pack for Lisbon in May?")
package chat
