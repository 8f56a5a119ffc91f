package chat

import (
	"context"
	"fmt"

	"github.com/padwan-ai/padwan-cli/llmtypes"
)

// Conversation tracks message history and token usage for a single model.
// It is not safe for concurrent use; Sessions serializes access.
type Conversation struct {
	client   llmtypes.Client
	system   string
	messages []llmtypes.Message

	// LastUsage holds the usage of the most recent exchange,
	// TotalUsage the accumulated usage of the whole conversation.
	LastUsage  llmtypes.Usage
	TotalUsage llmtypes.Usage
}

// NewConversation creates a conversation backed by the given client.
// The system prompt may be empty.
func NewConversation(client llmtypes.Client, system string) *Conversation {
	c := &Conversation{client: client}
	c.reset(system)
	return c
}

func (c *Conversation) reset(system string) {
	c.system = system
	c.messages = c.messages[:0]
	if system != "" {
		c.messages = append(c.messages, llmtypes.TextMessage(llmtypes.ChatMessageTypeSystem, system))
	}
}

// Client returns the client backing this conversation
func (c *Conversation) Client() llmtypes.Client {
	return c.client
}

// System returns the current system prompt
func (c *Conversation) System() string {
	return c.system
}

// Messages returns a copy of the conversation history
func (c *Conversation) Messages() []llmtypes.Message {
	out := make([]llmtypes.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages in the history, including the
// system message if present.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// SetSystem replaces the system prompt. The rest of the history is
// preserved so an in-flight conversation keeps its context.
func (c *Conversation) SetSystem(system string) {
	if system == c.system {
		return
	}
	kept := make([]llmtypes.Message, 0, len(c.messages))
	for _, msg := range c.messages {
		if msg.Role != llmtypes.ChatMessageTypeSystem {
			kept = append(kept, msg)
		}
	}
	c.messages = c.messages[:0]
	c.system = system
	if system != "" {
		c.messages = append(c.messages, llmtypes.TextMessage(llmtypes.ChatMessageTypeSystem, system))
	}
	c.messages = append(c.messages, kept...)
}

// Clear drops the history, keeping only the system prompt, and resets
// the usage counters.
func (c *Conversation) Clear() {
	c.reset(c.system)
	c.LastUsage = llmtypes.Usage{}
	c.TotalUsage = llmtypes.Usage{}
}

// Send appends the user input, completes the chat and appends the
// assistant reply. On error the user input is removed from the history.
func (c *Conversation) Send(ctx context.Context, input string, options ...llmtypes.CallOption) (string, error) {
	return c.exchange(ctx, input, options)
}

// Stream behaves like Send but delivers the reply incrementally on ch.
// The adapter closes ch when the stream ends.
func (c *Conversation) Stream(ctx context.Context, input string, ch chan llmtypes.StreamChunk, options ...llmtypes.CallOption) (string, error) {
	options = append(options, llmtypes.WithStreamingChan(ch))
	return c.exchange(ctx, input, options)
}

func (c *Conversation) exchange(ctx context.Context, input string, options []llmtypes.CallOption) (string, error) {
	c.messages = append(c.messages, llmtypes.TextMessage(llmtypes.ChatMessageTypeHuman, input))

	response, err := c.client.CompleteChat(ctx, c.messages, options...)
	if err != nil {
		c.messages = c.messages[:len(c.messages)-1]
		return "", fmt.Errorf("chat with %s: %w", c.client.GetModelID(), err)
	}

	c.messages = append(c.messages, llmtypes.TextMessage(llmtypes.ChatMessageTypeAI, response.Content))
	if response.Usage != nil {
		c.LastUsage = *response.Usage
		c.TotalUsage.Add(*response.Usage)
	} else {
		c.LastUsage = llmtypes.Usage{}
	}
	return response.Content, nil
}
