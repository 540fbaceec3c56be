package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/avila-law/intake-platform/pkg/logging"
)

// Message roles accepted by GenerateCompletion.
const (
	RoleSystem    = openai.ChatMessageRoleSystem
	RoleUser      = openai.ChatMessageRoleUser
	RoleAssistant = openai.ChatMessageRoleAssistant
)

// Message is one turn of conversation context.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatAPI interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client generates chat completions through the OpenAI API.
type Client struct {
	api    chatAPI
	model  string
	logger *logging.Logger
}

// NewClient creates an OpenAI-backed completion client.
func NewClient(apiKey, model string, logger *logging.Logger) *Client {
	if strings.TrimSpace(apiKey) == "" {
		panic("llm: api key is required")
	}
	return newClientWithAPI(openai.NewClient(apiKey), model, logger)
}

func newClientWithAPI(api chatAPI, model string, logger *logging.Logger) *Client {
	if api == nil {
		panic("llm: chat api cannot be nil")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{api: api, model: model, logger: logger}
}

// GenerateCompletion sends the conversation context to the model and returns
// the trimmed assistant reply.
func (c *Client) GenerateCompletion(ctx context.Context, messages []Message) (string, error) {
	if len(messages) == 0 {
		return "", errors.New("llm: messages required")
	}

	wire := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		wire = append(wire, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	callCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: wire,
	})
	if err != nil {
		return "", fmt.Errorf("llm: completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("llm: model returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
