package chat

import (
	"sort"
	"sync"

	"github.com/padwan-ai/padwan-cli/llmtypes"
)

// ClientFactory creates a chat client for a model ID
type ClientFactory func(model string) (llmtypes.Client, error)

// Sessions is an in-memory cache of conversations keyed by model name.
// Clients are created lazily and reused for the lifetime of the process;
// nothing is persisted across restarts.
type Sessions struct {
	mu            sync.Mutex
	factory       ClientFactory
	conversations map[string]*Conversation
}

// NewSessions creates a session cache using factory to build clients
func NewSessions(factory ClientFactory) *Sessions {
	return &Sessions{
		factory:       factory,
		conversations: make(map[string]*Conversation),
	}
}

// GetOrCreate returns the conversation for model, creating the client
// on first use. A changed system prompt is applied to an existing
// conversation without dropping its history.
func (s *Sessions) GetOrCreate(model, system string) (*Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if conv, ok := s.conversations[model]; ok {
		conv.SetSystem(system)
		return conv, nil
	}

	client, err := s.factory(model)
	if err != nil {
		return nil, err
	}
	conv := NewConversation(client, system)
	s.conversations[model] = conv
	return conv, nil
}

// Clear drops the history of the given model's conversation.
// Returns false if no conversation exists for the model.
func (s *Sessions) Clear(model string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[model]
	if !ok {
		return false
	}
	conv.Clear()
	return true
}

// ClearAll drops the history of every cached conversation and returns
// the number of conversations cleared.
func (s *Sessions) ClearAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, conv := range s.conversations {
		conv.Clear()
	}
	return len(s.conversations)
}

// Models returns the sorted model names with a cached conversation
func (s *Sessions) Models() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	models := make([]string, 0, len(s.conversations))
	for model := range s.conversations {
		models = append(models, model)
	}
	sort.Strings(models)
	return models
}
