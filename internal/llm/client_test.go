package llm

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChatAPI struct {
	response openai.ChatCompletionResponse
	err      error
	lastReq  openai.ChatCompletionRequest
}

func (s *stubChatAPI) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	s.lastReq = req
	return s.response, s.err
}

func TestGenerateCompletion(t *testing.T) {
	api := &stubChatAPI{
		response: openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "  We can help with that.  "}},
			},
		},
	}
	client := newClientWithAPI(api, "gpt-4o-mini", nil)

	reply, err := client.GenerateCompletion(context.Background(), []Message{
		{Role: RoleSystem, Content: "system prompt"},
		{Role: RoleUser, Content: "Do you handle green card cases?"},
	})
	require.NoError(t, err)
	assert.Equal(t, "We can help with that.", reply)
	assert.Equal(t, "gpt-4o-mini", api.lastReq.Model)
	require.Len(t, api.lastReq.Messages, 2)
	assert.Equal(t, RoleUser, api.lastReq.Messages[1].Role)
}

func TestGenerateCompletionErrors(t *testing.T) {
	client := newClientWithAPI(&stubChatAPI{err: errors.New("rate limited")}, "", nil)
	_, err := client.GenerateCompletion(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "completion failed")
}

func TestGenerateCompletionNoChoices(t *testing.T) {
	client := newClientWithAPI(&stubChatAPI{}, "", nil)
	_, err := client.GenerateCompletion(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	require.Error(t, err)
}

func TestGenerateCompletionRequiresMessages(t *testing.T) {
	client := newClientWithAPI(&stubChatAPI{}, "", nil)
	_, err := client.GenerateCompletion(context.Background(), nil)
	require.Error(t, err)
}
