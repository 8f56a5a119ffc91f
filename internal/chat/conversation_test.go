package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padwan-ai/padwan-cli/llmtypes"
)

// fakeClient replays canned responses and records the messages it was
// called with
type fakeClient struct {
	modelID  string
	response *llmtypes.ChatResponse
	err      error
	calls    [][]llmtypes.Message
}

func (f *fakeClient) GetModelID() string {
	return f.modelID
}

func (f *fakeClient) CompleteChat(ctx context.Context, messages []llmtypes.Message, options ...llmtypes.CallOption) (*llmtypes.ChatResponse, error) {
	snapshot := make([]llmtypes.Message, len(messages))
	copy(snapshot, messages)
	f.calls = append(f.calls, snapshot)

	if f.err != nil {
		return nil, f.err
	}

	opts := &llmtypes.CallOptions{}
	for _, opt := range options {
		opt(opts)
	}
	if opts.StreamChan != nil {
		opts.StreamChan <- llmtypes.StreamChunk{Content: f.response.Content}
		close(opts.StreamChan)
	}
	return f.response, nil
}

func TestConversationSend(t *testing.T) {
	client := &fakeClient{
		modelID: "gpt-4o-mini",
		response: &llmtypes.ChatResponse{
			Content: "hi there",
			Usage:   &llmtypes.Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15},
		},
	}
	conv := NewConversation(client, "be brief")

	reply, err := conv.Send(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi there", reply)

	// system + user + assistant
	messages := conv.Messages()
	require.Len(t, messages, 3)
	assert.Equal(t, llmtypes.ChatMessageTypeSystem, messages[0].Role)
	assert.Equal(t, "hello", messages[1].Content)
	assert.Equal(t, llmtypes.ChatMessageTypeAI, messages[2].Role)

	assert.Equal(t, 15, conv.LastUsage.TotalTokens)
	assert.Equal(t, 15, conv.TotalUsage.TotalTokens)

	// Second exchange accumulates usage
	_, err = conv.Send(context.Background(), "again")
	require.NoError(t, err)
	assert.Equal(t, 30, conv.TotalUsage.TotalTokens)
}

func TestConversationSendErrorDropsUserMessage(t *testing.T) {
	client := &fakeClient{modelID: "gpt-4o-mini", err: errors.New("boom")}
	conv := NewConversation(client, "")

	_, err := conv.Send(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gpt-4o-mini")

	// Failed input must not pollute the history
	assert.Equal(t, 0, conv.Len())
}

func TestConversationStream(t *testing.T) {
	client := &fakeClient{
		modelID:  "gemini-2.0-flash",
		response: &llmtypes.ChatResponse{Content: "streamed"},
	}
	conv := NewConversation(client, "")

	ch := make(chan llmtypes.StreamChunk, 100)
	reply, err := conv.Stream(context.Background(), "hello", ch)
	require.NoError(t, err)
	assert.Equal(t, "streamed", reply)

	var chunks []string
	for chunk := range ch {
		chunks = append(chunks, chunk.Content)
	}
	assert.Equal(t, []string{"streamed"}, chunks)
	assert.Equal(t, 2, conv.Len())
}

func TestConversationClear(t *testing.T) {
	client := &fakeClient{
		modelID: "gpt-4o-mini",
		response: &llmtypes.ChatResponse{
			Content: "ok",
			Usage:   &llmtypes.Usage{TotalTokens: 9},
		},
	}
	conv := NewConversation(client, "be brief")

	_, err := conv.Send(context.Background(), "hello")
	require.NoError(t, err)

	conv.Clear()
	assert.Equal(t, 1, conv.Len()) // system prompt survives
	assert.Equal(t, llmtypes.Usage{}, conv.TotalUsage)
	assert.Equal(t, llmtypes.Usage{}, conv.LastUsage)
}

func TestConversationSetSystemKeepsHistory(t *testing.T) {
	client := &fakeClient{
		modelID:  "gpt-4o-mini",
		response: &llmtypes.ChatResponse{Content: "ok"},
	}
	conv := NewConversation(client, "old prompt")

	_, err := conv.Send(context.Background(), "hello")
	require.NoError(t, err)

	conv.SetSystem("new prompt")
	messages := conv.Messages()
	require.Len(t, messages, 3)
	assert.Equal(t, llmtypes.ChatMessageTypeSystem, messages[0].Role)
	assert.Equal(t, "new prompt", messages[0].Content)
	assert.Equal(t, "hello", messages[1].Content)

	// Same prompt again is a no-op
	conv.SetSystem("new prompt")
	assert.Len(t, conv.Messages(), 3)
}

func TestConversationSetSystemRemoved(t *testing.T) {
	client := &fakeClient{
		modelID:  "gpt-4o-mini",
		response: &llmtypes.ChatResponse{Content: "ok"},
	}
	conv := NewConversation(client, "old prompt")

	conv.SetSystem("")
	assert.Equal(t, 0, conv.Len())
}
