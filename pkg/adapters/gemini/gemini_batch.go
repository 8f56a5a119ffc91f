package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/padwan-ai/padwan-cli/llmtypes"
)

// CreateBatch implements the llmtypes.BatchClient interface.
// Requests are submitted inlined; results come back inlined as well
// once the job succeeds.
func (g *GeminiAdapter) CreateBatch(ctx context.Context, requests []llmtypes.BatchRequest, displayName string) (*llmtypes.BatchJob, error) {
	if len(requests) == 0 {
		return nil, fmt.Errorf("batch must contain at least one request")
	}

	inlined := make([]*genai.InlinedRequest, 0, len(requests))
	for _, req := range requests {
		inlined = append(inlined, &genai.InlinedRequest{
			Contents: []*genai.Content{
				{
					Role:  "user",
					Parts: []*genai.Part{genai.NewPartFromText(req.Prompt)},
				},
			},
		})
	}

	if g.logger != nil {
		g.logger.Debugf("Gemini CreateBatch INPUT - model: %s, requests: %d, display_name: %s", g.modelID, len(inlined), displayName)
	}

	job, err := g.client.Batches.Create(ctx,
		g.modelID,
		&genai.BatchJobSource{InlinedRequests: inlined},
		&genai.CreateBatchJobConfig{DisplayName: displayName},
	)
	if err != nil {
		if g.logger != nil {
			g.logger.Errorf("Gemini CreateBatch ERROR - model: %s, error: %v", g.modelID, err)
		}
		return nil, fmt.Errorf("gemini create batch: %w", err)
	}

	return convertBatchJob(job), nil
}

// GetBatch implements the llmtypes.BatchClient interface
func (g *GeminiAdapter) GetBatch(ctx context.Context, name string) (*llmtypes.BatchJob, error) {
	job, err := g.client.Batches.Get(ctx, name, nil)
	if err != nil {
		if g.logger != nil {
			g.logger.Errorf("Gemini GetBatch ERROR - name: %s, error: %v", name, err)
		}
		return nil, fmt.Errorf("gemini get batch: %w", err)
	}
	return convertBatchJob(job), nil
}

// ListBatches implements the llmtypes.BatchClient interface.
// Returns one page of jobs plus the next page token, if any.
func (g *GeminiAdapter) ListBatches(ctx context.Context, pageSize int) ([]*llmtypes.BatchJob, string, error) {
	config := &genai.ListBatchJobsConfig{}
	if pageSize > 0 {
		config.PageSize = int32(pageSize)
	}

	page, err := g.client.Batches.List(ctx, config)
	if err != nil {
		if g.logger != nil {
			g.logger.Errorf("Gemini ListBatches ERROR - error: %v", err)
		}
		return nil, "", fmt.Errorf("gemini list batches: %w", err)
	}

	jobs := make([]*llmtypes.BatchJob, 0, len(page.Items))
	for _, item := range page.Items {
		jobs = append(jobs, convertBatchJob(item))
	}
	return jobs, page.NextPageToken, nil
}

// CancelBatch implements the llmtypes.BatchClient interface
func (g *GeminiAdapter) CancelBatch(ctx context.Context, name string) error {
	if err := g.client.Batches.Cancel(ctx, name, nil); err != nil {
		if g.logger != nil {
			g.logger.Errorf("Gemini CancelBatch ERROR - name: %s, error: %v", name, err)
		}
		return fmt.Errorf("gemini cancel batch: %w", err)
	}
	return nil
}

// convertBatchJob converts a GenAI batch job to the llmtypes format.
// Result keys are positional (prompt-<i>) matching submission order.
func convertBatchJob(job *genai.BatchJob) *llmtypes.BatchJob {
	if job == nil {
		return nil
	}

	converted := &llmtypes.BatchJob{
		Name:        job.Name,
		DisplayName: job.DisplayName,
		Model:       job.Model,
		State:       llmtypes.JobState(job.State),
		CreateTime:  job.CreateTime,
		UpdateTime:  job.UpdateTime,
	}
	if job.Error != nil {
		converted.Error = job.Error.Message
	}

	if job.Dest == nil || len(job.Dest.InlinedResponses) == 0 {
		return converted
	}

	stats := &llmtypes.BatchStats{RequestCount: len(job.Dest.InlinedResponses)}
	results := make([]llmtypes.BatchResult, 0, len(job.Dest.InlinedResponses))
	for i, inlined := range job.Dest.InlinedResponses {
		result := llmtypes.BatchResult{Key: fmt.Sprintf("prompt-%d", i)}
		if inlined.Error != nil {
			result.Error = inlined.Error.Message
			stats.FailedCount++
		} else if inlined.Response != nil {
			result.Content = extractText(inlined.Response)
			if inlined.Response.UsageMetadata != nil {
				result.InputTokens = int(inlined.Response.UsageMetadata.PromptTokenCount)
				result.OutputTokens = int(inlined.Response.UsageMetadata.CandidatesTokenCount)
				result.TotalTokens = int(inlined.Response.UsageMetadata.TotalTokenCount)
			}
			stats.SucceededCount++
		}
		results = append(results, result)
	}
	converted.Stats = stats
	converted.Results = results
	return converted
}
