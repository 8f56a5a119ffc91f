package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/padwan-ai/padwan-cli/interfaces"
	"github.com/padwan-ai/padwan-cli/llmtypes"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/packages/param"
	"github.com/openai/openai-go/v3/shared"
)

// OpenAIAdapter implements the llmtypes.Client interface using the
// OpenAI Go SDK directly. It also serves OpenAI-compatible providers
// (Mistral, Grok) when the client is configured with their base URL.
type OpenAIAdapter struct {
	client  *openai.Client
	modelID string
	logger  interfaces.Logger
}

// NewOpenAIAdapter creates a new adapter instance
func NewOpenAIAdapter(client *openai.Client, modelID string, logger interfaces.Logger) *OpenAIAdapter {
	return &OpenAIAdapter{
		client:  client,
		modelID: modelID,
		logger:  logger,
	}
}

// GetModelID implements the llmtypes.Client interface
func (o *OpenAIAdapter) GetModelID() string {
	return o.modelID
}

// CompleteChat implements the llmtypes.Client interface
func (o *OpenAIAdapter) CompleteChat(ctx context.Context, messages []llmtypes.Message, options ...llmtypes.CallOption) (*llmtypes.ChatResponse, error) {
	// Parse call options
	opts := &llmtypes.CallOptions{}
	for _, opt := range options {
		opt(opts)
	}

	// Determine model ID (from option or default)
	modelID := o.modelID
	if opts.Model != "" {
		modelID = opts.Model
	}

	// Build ChatCompletionNewParams from options
	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(modelID),
		Messages: convertMessages(messages),
	}

	// Set temperature - reasoning models (o1, o3, o4) only support the default (1.0)
	if opts.Temperature > 0 && !hasTemperatureRestrictions(modelID) {
		params.Temperature = param.NewOpt(opts.Temperature)
	} else if opts.Temperature > 0 && o.logger != nil {
		o.logger.Debugf("Model %s only supports default temperature (1.0), omitting temperature parameter", modelID)
	}

	if opts.MaxTokens > 0 {
		params.MaxCompletionTokens = param.NewOpt(int64(opts.MaxTokens))
	}

	if o.logger != nil {
		o.logger.Debugf("OpenAI CompleteChat INPUT - model: %s, messages: %d, stream: %v", modelID, len(messages), opts.StreamChan != nil)
	}

	// Check if streaming is requested
	if opts.StreamChan != nil {
		// Enable usage in streaming responses
		params.StreamOptions = openai.ChatCompletionStreamOptionsParam{
			IncludeUsage: param.NewOpt(true),
		}
		return o.completeChatStreaming(ctx, modelID, params, opts)
	}

	// Call OpenAI API (non-streaming)
	result, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		if o.logger != nil {
			o.logger.Errorf("OpenAI CompleteChat ERROR - model: %s, error: %v", modelID, err)
		}
		return nil, fmt.Errorf("openai complete chat: %w", err)
	}

	return convertResponse(result), nil
}

// completeChatStreaming handles streaming responses from the OpenAI API
func (o *OpenAIAdapter) completeChatStreaming(ctx context.Context, modelID string, params openai.ChatCompletionNewParams, opts *llmtypes.CallOptions) (*llmtypes.ChatResponse, error) {
	stream := o.client.Chat.Completions.NewStreaming(ctx, params)
	defer stream.Close()

	// Ensure channel is closed when done
	defer func() {
		if opts.StreamChan != nil {
			close(opts.StreamChan)
		}
	}()

	var accumulatedContent strings.Builder
	var usage *openai.CompletionUsage

	// Process streaming chunks
	for stream.Next() {
		chunk := stream.Current()

		// Extract usage from chunk if available (only in last chunk when include_usage is true)
		if chunk.Usage.PromptTokens > 0 || chunk.Usage.CompletionTokens > 0 {
			usage = &chunk.Usage
		}

		for _, choice := range chunk.Choices {
			if choice.Delta.Content == "" {
				continue
			}
			deltaText := choice.Delta.Content
			accumulatedContent.WriteString(deltaText)

			// Stream content chunks immediately
			select {
			case opts.StreamChan <- llmtypes.StreamChunk{Content: deltaText}:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	// Check for stream errors
	if err := stream.Err(); err != nil {
		if o.logger != nil {
			o.logger.Errorf("OpenAI streaming ERROR - model: %s, error: %v", modelID, err)
		}
		return nil, fmt.Errorf("openai streaming error: %w", err)
	}

	response := &llmtypes.ChatResponse{
		Content: accumulatedContent.String(),
	}
	if usage != nil {
		response.Usage = convertUsage(*usage)
	}
	return response, nil
}

// hasTemperatureRestrictions checks if a model only supports default temperature (1.0)
func hasTemperatureRestrictions(modelID string) bool {
	modelIDLower := strings.ToLower(modelID)
	restrictedModels := []string{
		"o1",
		"o1-mini",
		"o3",
		"o3-mini",
		"o4-mini",
	}

	for _, restricted := range restrictedModels {
		if strings.HasPrefix(modelIDLower, restricted) {
			return true
		}
	}
	return false
}

// convertMessages converts llmtypes messages to OpenAI message format
func convertMessages(messages []llmtypes.Message) []openai.ChatCompletionMessageParamUnion {
	openaiMessages := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))

	for _, msg := range messages {
		switch msg.Role {
		case llmtypes.ChatMessageTypeSystem:
			openaiMessages = append(openaiMessages, openai.SystemMessage(msg.Content))
		case llmtypes.ChatMessageTypeAI:
			openaiMessages = append(openaiMessages, openai.AssistantMessage(msg.Content))
		default:
			openaiMessages = append(openaiMessages, openai.UserMessage(msg.Content))
		}
	}

	return openaiMessages
}

// convertResponse converts an OpenAI completion to a llmtypes ChatResponse
func convertResponse(result *openai.ChatCompletion) *llmtypes.ChatResponse {
	if result == nil {
		return &llmtypes.ChatResponse{}
	}

	response := &llmtypes.ChatResponse{
		Usage: convertUsage(result.Usage),
	}
	if len(result.Choices) > 0 {
		response.Content = result.Choices[0].Message.Content
	}
	return response
}

// convertUsage converts SDK usage counters to the llmtypes format.
// Cached tokens come from PromptTokensDetails on providers that report them.
func convertUsage(usage openai.CompletionUsage) *llmtypes.Usage {
	return &llmtypes.Usage{
		InputTokens:  int(usage.PromptTokens),
		OutputTokens: int(usage.CompletionTokens),
		TotalTokens:  int(usage.TotalTokens),
		CachedTokens: int(usage.PromptTokensDetails.CachedTokens),
	}
}
