package llm

import (
	"errors"
	"os"
	"strings"

	"github.com/openai/openai-go/option"
)

const (
	defaultGroqBaseURL = "https://api.groq.com/openai/v1"
	defaultGroqModel   = "llama-3.1-8b-instant"
)

// GroqClient implements the Client interface using Groq's OpenAI-compatible
// API. The key is read from GROQ_API_KEY.
type GroqClient struct {
	*openAIClient
}

// NewGroqClient creates a new Groq client.
func NewGroqClient(model, baseURL string) (*GroqClient, error) {
	apiKey := os.Getenv("GROQ_API_KEY")
	if apiKey == "" {
		return nil, errors.New("groq needs GROQ_API_KEY")
	}
	if strings.TrimSpace(model) == "" {
		model = defaultGroqModel
	}
	if baseURL == "" {
		baseURL = defaultGroqBaseURL
	}

	return &GroqClient{
		openAIClient: newOpenAIClient("groq", model, baseURL, option.WithAPIKey(apiKey)),
	}, nil
}
