package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/padwan-ai/padwan-cli/interfaces"
	"github.com/padwan-ai/padwan-cli/llmtypes"
)

// GeminiAdapter implements the llmtypes.Client and llmtypes.BatchClient
// interfaces using the Google GenAI SDK directly
type GeminiAdapter struct {
	client  *genai.Client
	modelID string
	logger  interfaces.Logger
}

// NewGeminiAdapter creates a new adapter instance
func NewGeminiAdapter(client *genai.Client, modelID string, logger interfaces.Logger) *GeminiAdapter {
	return &GeminiAdapter{
		client:  client,
		modelID: modelID,
		logger:  logger,
	}
}

// GetModelID implements the llmtypes.Client interface
func (g *GeminiAdapter) GetModelID() string {
	return g.modelID
}

// CompleteChat implements the llmtypes.Client interface
func (g *GeminiAdapter) CompleteChat(ctx context.Context, messages []llmtypes.Message, options ...llmtypes.CallOption) (*llmtypes.ChatResponse, error) {
	// Parse call options
	opts := &llmtypes.CallOptions{}
	for _, opt := range options {
		opt(opts)
	}

	// Determine model ID (from option or default)
	modelID := g.modelID
	if opts.Model != "" {
		modelID = opts.Model
	}

	contents, config := convertMessages(messages)

	// Set temperature
	if opts.Temperature > 0 {
		temp := float32(opts.Temperature)
		config.Temperature = &temp
	}

	// Set max output tokens
	if opts.MaxTokens > 0 {
		config.MaxOutputTokens = int32(opts.MaxTokens)
	}

	if g.logger != nil {
		g.logger.Debugf("Gemini CompleteChat INPUT - model: %s, messages: %d, stream: %v", modelID, len(messages), opts.StreamChan != nil)
	}

	if opts.StreamChan != nil {
		return g.completeChatStreaming(ctx, modelID, contents, config, opts)
	}

	result, err := g.client.Models.GenerateContent(ctx, modelID, contents, config)
	if err != nil {
		if g.logger != nil {
			g.logger.Errorf("Gemini CompleteChat ERROR - model: %s, error: %v", modelID, err)
		}
		return nil, fmt.Errorf("gemini complete chat: %w", err)
	}

	return &llmtypes.ChatResponse{
		Content: extractText(result),
		Usage:   convertUsage(result.UsageMetadata),
	}, nil
}

// completeChatStreaming handles streaming responses from the GenAI API
func (g *GeminiAdapter) completeChatStreaming(ctx context.Context, modelID string, contents []*genai.Content, config *genai.GenerateContentConfig, opts *llmtypes.CallOptions) (*llmtypes.ChatResponse, error) {
	// Ensure channel is closed when done
	defer func() {
		if opts.StreamChan != nil {
			close(opts.StreamChan)
		}
	}()

	var accumulatedContent strings.Builder
	var usage *genai.GenerateContentResponseUsageMetadata

	stream := g.client.Models.GenerateContentStream(ctx, modelID, contents, config)
	for response, err := range stream {
		if err != nil {
			if g.logger != nil {
				g.logger.Errorf("Gemini streaming ERROR - model: %s, error: %v", modelID, err)
			}
			return nil, fmt.Errorf("gemini streaming error: %w", err)
		}

		// Usage metadata arrives incrementally, keep the latest
		if response.UsageMetadata != nil {
			usage = response.UsageMetadata
		}

		deltaText := extractText(response)
		if deltaText == "" {
			continue
		}
		accumulatedContent.WriteString(deltaText)

		// Stream content chunks immediately
		select {
		case opts.StreamChan <- llmtypes.StreamChunk{Content: deltaText}:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return &llmtypes.ChatResponse{
		Content: accumulatedContent.String(),
		Usage:   convertUsage(usage),
	}, nil
}

// convertMessages converts llmtypes messages to GenAI contents.
// System messages are mapped to the request's SystemInstruction.
func convertMessages(messages []llmtypes.Message) ([]*genai.Content, *genai.GenerateContentConfig) {
	config := &genai.GenerateContentConfig{}
	contents := make([]*genai.Content, 0, len(messages))

	for _, msg := range messages {
		switch msg.Role {
		case llmtypes.ChatMessageTypeSystem:
			config.SystemInstruction = &genai.Content{
				Parts: []*genai.Part{genai.NewPartFromText(msg.Content)},
			}
		case llmtypes.ChatMessageTypeAI:
			contents = append(contents, &genai.Content{
				Role:  "model",
				Parts: []*genai.Part{genai.NewPartFromText(msg.Content)},
			})
		default:
			contents = append(contents, &genai.Content{
				Role:  "user",
				Parts: []*genai.Part{genai.NewPartFromText(msg.Content)},
			})
		}
	}

	return contents, config
}

// extractText flattens all candidate text parts into a single string
func extractText(response *genai.GenerateContentResponse) string {
	if response == nil {
		return ""
	}
	var sb strings.Builder
	for _, candidate := range response.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				sb.WriteString(part.Text)
			}
		}
	}
	return sb.String()
}

// convertUsage converts GenAI usage metadata to the llmtypes format
func convertUsage(metadata *genai.GenerateContentResponseUsageMetadata) *llmtypes.Usage {
	if metadata == nil {
		return nil
	}
	return &llmtypes.Usage{
		InputTokens:  int(metadata.PromptTokenCount),
		OutputTokens: int(metadata.CandidatesTokenCount),
		TotalTokens:  int(metadata.TotalTokenCount),
		CachedTokens: int(metadata.CachedContentTokenCount),
	}
}
