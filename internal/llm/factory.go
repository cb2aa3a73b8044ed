package llm

import (
	"fmt"
	"strings"
)

const (
	ProviderOllama   = "ollama"
	ProviderLMStudio = "lmstudio"
	ProviderGroq     = "groq"
	ProviderCopilot  = "copilot"
)

// Providers lists the supported provider names.
func Providers() []string {
	return []string{ProviderOllama, ProviderLMStudio, ProviderGroq, ProviderCopilot}
}

// NewClient creates an LLM client based on provider configuration. An
// empty model or base URL uses the provider's default.
func NewClient(provider, model, baseURL string) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", ProviderOllama:
		return NewOllamaClient(model, baseURL)
	case ProviderLMStudio, "lm-studio":
		return NewLMStudioClient(model, baseURL)
	case ProviderGroq:
		return NewGroqClient(model, baseURL)
	case ProviderCopilot:
		return NewCopilotClient(model)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}
