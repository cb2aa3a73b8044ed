package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Sampling settings shared by every provider. Answers are short and
// should stick to the supplied data.
const (
	answerTemperature = 0.2
	answerMaxTokens   = 500
)

// openAIClient talks to any OpenAI-compatible chat completions API.
type openAIClient struct {
	client  openai.Client
	name    string // provider name for error messages
	model   string
	baseURL string
}

func newOpenAIClient(name, model, baseURL string, opts ...option.RequestOption) *openAIClient {
	opts = append([]option.RequestOption{option.WithBaseURL(baseURL)}, opts...)
	return &openAIClient{
		client:  openai.NewClient(opts...),
		name:    name,
		model:   model,
		baseURL: baseURL,
	}
}

// Chat sends messages to the LLM and returns the response.
func (c *openAIClient) Chat(ctx context.Context, messages []Message) (string, error) {
	openaiMessages := make([]openai.ChatCompletionMessageParamUnion, len(messages))
	for i, msg := range messages {
		switch msg.Role {
		case RoleSystem:
			openaiMessages[i] = openai.SystemMessage(msg.Content)
		case RoleAssistant:
			openaiMessages[i] = openai.AssistantMessage(msg.Content)
		default:
			openaiMessages[i] = openai.UserMessage(msg.Content)
		}
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       c.model,
		Messages:    openaiMessages,
		Temperature: openai.Float(answerTemperature),
		MaxTokens:   openai.Int(answerMaxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("%s chat completion: %w", c.name, err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no response choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}
