package padwan

import (
	"github.com/padwan-ai/padwan-cli/llmtypes"
)

// Re-export common types so callers can depend on the root package alone

type Client = llmtypes.Client
type BatchClient = llmtypes.BatchClient
type Message = llmtypes.Message
type ChatResponse = llmtypes.ChatResponse
type StreamChunk = llmtypes.StreamChunk
type Usage = llmtypes.Usage
type BatchJob = llmtypes.BatchJob
type BatchRequest = llmtypes.BatchRequest
type BatchResult = llmtypes.BatchResult
type JobState = llmtypes.JobState

// Re-export message type constants
const (
	ChatMessageTypeSystem = llmtypes.ChatMessageTypeSystem
	ChatMessageTypeHuman  = llmtypes.ChatMessageTypeHuman
	ChatMessageTypeAI     = llmtypes.ChatMessageTypeAI
)

// Re-export call options
var (
	WithModel         = llmtypes.WithModel
	WithTemperature   = llmtypes.WithTemperature
	WithMaxTokens     = llmtypes.WithMaxTokens
	WithStreamingChan = llmtypes.WithStreamingChan
)
