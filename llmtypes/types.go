package llmtypes

import "context"

// Client is the core interface for chat-capable LLM clients.
// Streaming is requested by passing WithStreamingChan; the adapter closes
// the channel when the stream ends.
type Client interface {
	CompleteChat(ctx context.Context, messages []Message, options ...CallOption) (*ChatResponse, error)
	// GetModelID returns the model ID for this client instance
	GetModelID() string
}

// ChatMessageType represents the role of a chat message
type ChatMessageType string

const (
	ChatMessageTypeSystem ChatMessageType = "system"
	ChatMessageTypeHuman  ChatMessageType = "human"
	ChatMessageTypeAI     ChatMessageType = "ai"
)

// Message represents a single message in a conversation
type Message struct {
	Role    ChatMessageType
	Content string
}

// TextMessage creates a message with the given role and content
func TextMessage(role ChatMessageType, text string) Message {
	return Message{Role: role, Content: text}
}

// StreamChunk represents a single content chunk in a streaming response
type StreamChunk struct {
	Content string
}

// Usage represents token usage information
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
	CachedTokens int
}

// Add accumulates another usage record into u
func (u *Usage) Add(other Usage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.TotalTokens += other.TotalTokens
	u.CachedTokens += other.CachedTokens
}

// ChatResponse represents the response from a chat completion
type ChatResponse struct {
	Content string
	Usage   *Usage
}

// CallOptions holds all call options for chat completion
type CallOptions struct {
	Model       string
	Temperature float64
	MaxTokens   int
	StreamChan  chan<- StreamChunk
}

// CallOption is a function type for setting call options
type CallOption func(*CallOptions)
