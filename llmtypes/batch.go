package llmtypes

import (
	"context"
	"strings"
	"time"
)

// JobState represents the lifecycle state of a batch job.
// The values mirror the wire-level state names so they can be displayed
// and compared directly.
type JobState string

const (
	JobStatePending   JobState = "JOB_STATE_PENDING"
	JobStateQueued    JobState = "JOB_STATE_QUEUED"
	JobStateRunning   JobState = "JOB_STATE_RUNNING"
	JobStateSucceeded JobState = "JOB_STATE_SUCCEEDED"
	JobStateFailed    JobState = "JOB_STATE_FAILED"
	JobStateCancelled JobState = "JOB_STATE_CANCELLED"
	JobStateExpired   JobState = "JOB_STATE_EXPIRED"
)

// IsTerminal reports whether the job can no longer change state
func (s JobState) IsTerminal() bool {
	switch s {
	case JobStateSucceeded, JobStateFailed, JobStateCancelled, JobStateExpired:
		return true
	}
	return false
}

// Succeeded reports whether the job finished successfully
func (s JobState) Succeeded() bool {
	return s == JobStateSucceeded
}

// Short returns the state name without the JOB_STATE_ prefix
func (s JobState) Short() string {
	return strings.TrimPrefix(string(s), "JOB_STATE_")
}

// BatchRequest is a single prompt submitted as part of a batch
type BatchRequest struct {
	Key    string
	Prompt string
}

// BatchStats summarizes request counts for a batch job
type BatchStats struct {
	RequestCount   int
	SucceededCount int
	FailedCount    int
}

// BatchJob represents a batch job as reported by the provider
type BatchJob struct {
	Name        string
	DisplayName string
	Model       string
	State       JobState
	CreateTime  time.Time
	UpdateTime  time.Time
	Stats       *BatchStats
	Error       string
	// Results holds per-request results, populated once the provider
	// returns inlined responses (typically after the job succeeds).
	Results []BatchResult
}

// BatchResult is the outcome of a single request within a batch
type BatchResult struct {
	Key          string
	Content      string
	InputTokens  int
	OutputTokens int
	TotalTokens  int
	Error        string
}

// Failed reports whether this request produced an error instead of content
func (r BatchResult) Failed() bool {
	return r.Error != ""
}

// BatchClient is implemented by providers that support batch job submission.
// All methods are thin pass-throughs to the provider API.
type BatchClient interface {
	CreateBatch(ctx context.Context, requests []BatchRequest, displayName string) (*BatchJob, error)
	GetBatch(ctx context.Context, name string) (*BatchJob, error)
	ListBatches(ctx context.Context, pageSize int) ([]*BatchJob, string, error)
	CancelBatch(ctx context.Context, name string) error
}
