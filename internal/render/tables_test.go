package render

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/padwan-ai/padwan-cli/llmtypes"
)

func testRenderer() *Renderer {
	return NewRenderer(DarkTheme)
}

func TestModelTableGroupsProviderOnce(t *testing.T) {
	out := testRenderer().ModelTable(map[string][]string{
		"openai": {"gpt-4o", "gpt-4o-mini"},
		"grok":   {"grok-4"},
	}, []string{"openai", "grok"})

	assert.Equal(t, 1, strings.Count(out, "openai"))
	assert.Contains(t, out, "gpt-4o")
	assert.Contains(t, out, "gpt-4o-mini")
	assert.Contains(t, out, "grok-4")
}

func TestInfoTableHasTotalRow(t *testing.T) {
	out := testRenderer().InfoTable(map[string][]string{
		"openai": {"gpt-4o", "gpt-4o-mini"},
		"gemini": {"gemini-2.0-flash"},
	}, []string{"openai", "gemini"})

	assert.Contains(t, out, "Total")
	assert.Contains(t, out, "3")
}

func TestJobTableShowsShortNames(t *testing.T) {
	jobs := []*llmtypes.BatchJob{
		{
			Name:       "batches/abc123",
			Model:      "gemini-2.0-flash",
			State:      llmtypes.JobStateRunning,
			CreateTime: time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC),
		},
	}
	out := testRenderer().JobTable(jobs)

	assert.Contains(t, out, "abc123")
	assert.NotContains(t, out, "batches/abc123")
	assert.Contains(t, out, "RUNNING")
	assert.Contains(t, out, "2026-08-20 09:30")
}

func TestJobDetail(t *testing.T) {
	out := testRenderer().Job(&llmtypes.BatchJob{
		Name:  "batches/abc123",
		Model: "gemini-2.0-flash",
		State: llmtypes.JobStateSucceeded,
		Stats: &llmtypes.BatchStats{RequestCount: 4, SucceededCount: 3, FailedCount: 1},
		Error: "",
	})

	assert.Contains(t, out, "batches/abc123")
	assert.Contains(t, out, "SUCCEEDED")
	assert.Contains(t, out, "4 (3 succeeded, 1 failed)")
}

func TestResultsPreview(t *testing.T) {
	out := testRenderer().Results([]llmtypes.BatchResult{
		{Key: "prompt-0", Content: "line one\nline two", TotalTokens: 12, InputTokens: 8, OutputTokens: 4},
		{Key: "prompt-1", Error: "quota exceeded"},
	})

	assert.Contains(t, out, "prompt-0")
	assert.Contains(t, out, "line one line two")
	assert.Contains(t, out, "in: 8 out: 4 total: 12")
	assert.Contains(t, out, "ERROR: quota exceeded")
}

func TestPreviewTruncates(t *testing.T) {
	long := strings.Repeat("word ", 100)
	got := Preview(long)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Len(t, []rune(got), resultPreviewLen+3)

	assert.Equal(t, "a b", Preview("a\n\tb"))
}

func TestPreviewTruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("héllo wörld ", 50)
	got := Preview(long)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Len(t, []rune(got), resultPreviewLen+3)
	// No broken multi-byte sequences
	assert.True(t, utf8.ValidString(got))
}

func TestProgressBar(t *testing.T) {
	r := testRenderer()

	out := r.ProgressBar(5, 10, 30)
	assert.Contains(t, out, strings.Repeat("█", 15))
	assert.Contains(t, out, "5/10 (50%)")

	out = r.ProgressBar(0, 0, 30)
	assert.Contains(t, out, strings.Repeat("░", 30))
	assert.Contains(t, out, "0/0 (0%)")

	out = r.ProgressBar(10, 10, 30)
	assert.Contains(t, out, strings.Repeat("█", 30))
	assert.Contains(t, out, "(100%)")
}

func TestTokenUsage(t *testing.T) {
	r := testRenderer()

	out := r.TokenUsage(
		llmtypes.Usage{InputTokens: 10, OutputTokens: 20, CachedTokens: 4},
		llmtypes.Usage{TotalTokens: 99},
	)
	assert.Contains(t, out, "in: 10 out: 20")
	assert.Contains(t, out, "[cached: 4]")
	assert.Contains(t, out, "session: 99")

	out = r.TokenUsage(llmtypes.Usage{InputTokens: 1, OutputTokens: 2}, llmtypes.Usage{TotalTokens: 3})
	assert.NotContains(t, out, "cached")
}

func TestStateColorFallback(t *testing.T) {
	assert.Equal(t, StateColor(llmtypes.JobState("JOB_STATE_UNKNOWN")), StateColor(llmtypes.JobStateCancelled))
}

func TestDetectTheme(t *testing.T) {
	assert.Equal(t, "dark", DetectTheme("dark").Name)
	assert.Equal(t, "light", DetectTheme("light").Name)

	t.Setenv("PADWAN_THEME", "light")
	assert.Equal(t, "light", DetectTheme("").Name)

	t.Setenv("PADWAN_THEME", "")
	t.Setenv("COLORFGBG", "0;15")
	assert.Equal(t, "light", DetectTheme("").Name)
}
