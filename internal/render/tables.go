package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/padwan-ai/padwan-cli/llmtypes"
)

// resultPreviewLen caps how much of a result is shown inline
const resultPreviewLen = 300

// Renderer produces colorized terminal output for the CLI
type Renderer struct {
	styles *StyleSet
}

// NewRenderer creates a renderer using the given theme
func NewRenderer(theme TermTheme) *Renderer {
	return &Renderer{styles: NewStyleSet(theme)}
}

// Styles exposes the underlying style set
func (r *Renderer) Styles() *StyleSet {
	return r.styles
}

func (r *Renderer) newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.styles.TableBorder).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.styles.TableHeader
			}
			return r.styles.TableCell
		}).
		Headers(headers...)
}

// ModelTable renders the model listing grouped by provider. The
// provider name is shown once per group.
func (r *Renderer) ModelTable(groups map[string][]string, order []string) string {
	t := r.newTable("PROVIDER", "MODEL")
	for _, provider := range order {
		for i, model := range groups[provider] {
			name := ""
			if i == 0 {
				name = provider
			}
			t.Row(name, model)
		}
	}
	return t.Render()
}

// InfoTable renders per-provider model counts with a Total row
func (r *Renderer) InfoTable(groups map[string][]string, order []string) string {
	t := r.newTable("PROVIDER", "MODELS")
	total := 0
	for _, provider := range order {
		count := len(groups[provider])
		total += count
		t.Row(provider, strconv.Itoa(count))
	}
	t.Row("Total", strconv.Itoa(total))
	return t.Render()
}

// JobTable renders a batch job listing. Only the tail of the resource
// name is shown; the full name stays available via batch status.
func (r *Renderer) JobTable(jobs []*llmtypes.BatchJob) string {
	t := r.newTable("NAME", "STATE", "MODEL", "CREATED")
	for _, job := range jobs {
		created := ""
		if !job.CreateTime.IsZero() {
			created = job.CreateTime.Format("2006-01-02 15:04")
		}
		t.Row(shortName(job.Name), r.stateCell(job.State), job.Model, created)
	}
	return t.Render()
}

// Job renders the detail view for a single batch job
func (r *Renderer) Job(job *llmtypes.BatchJob) string {
	var sb strings.Builder
	writeField := func(label, value string) {
		if value == "" {
			return
		}
		sb.WriteString(r.styles.SecondaryTxt.Render(fmt.Sprintf("%-14s", label)))
		sb.WriteString(value)
		sb.WriteString("\n")
	}

	writeField("Name:", job.Name)
	writeField("Display name:", job.DisplayName)
	writeField("Model:", job.Model)
	writeField("State:", r.stateCell(job.State))
	if !job.CreateTime.IsZero() {
		writeField("Created:", job.CreateTime.Format("2006-01-02 15:04:05"))
	}
	if !job.UpdateTime.IsZero() {
		writeField("Updated:", job.UpdateTime.Format("2006-01-02 15:04:05"))
	}
	if job.Stats != nil {
		writeField("Requests:", fmt.Sprintf("%d (%d succeeded, %d failed)",
			job.Stats.RequestCount, job.Stats.SucceededCount, job.Stats.FailedCount))
	}
	if job.Error != "" {
		writeField("Error:", r.styles.ErrorTxt.Render(job.Error))
	}
	return sb.String()
}

// Results renders a preview of batch results, one block per request.
// Content is flattened to a single line and truncated.
func (r *Renderer) Results(results []llmtypes.BatchResult) string {
	var sb strings.Builder
	for _, result := range results {
		sb.WriteString(r.styles.Title.Render(result.Key))
		sb.WriteString("\n")
		if result.Failed() {
			sb.WriteString(r.styles.ErrorTxt.Render("ERROR: " + result.Error))
		} else {
			sb.WriteString(r.styles.PrimaryTxt.Render(Preview(result.Content)))
			if result.TotalTokens > 0 {
				sb.WriteString("\n")
				sb.WriteString(r.styles.DimTxt.Render(fmt.Sprintf("in: %d out: %d total: %d",
					result.InputTokens, result.OutputTokens, result.TotalTokens)))
			}
		}
		sb.WriteString("\n\n")
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// ProgressBar renders completion progress as a fixed-width bar
func (r *Renderer) ProgressBar(succeeded, total, width int) string {
	if width <= 0 {
		width = 30
	}
	filled := 0
	if total > 0 {
		filled = succeeded * width / total
		if filled > width {
			filled = width
		}
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	percent := 0
	if total > 0 {
		percent = succeeded * 100 / total
	}
	return fmt.Sprintf("%s %d/%d (%d%%)",
		r.styles.SuccessTxt.Render(bar), succeeded, total, percent)
}

// TokenUsage renders the per-exchange usage footer shown after each
// chat reply
func (r *Renderer) TokenUsage(last, session llmtypes.Usage) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("in: %d out: %d", last.InputTokens, last.OutputTokens))
	if last.CachedTokens > 0 {
		sb.WriteString(fmt.Sprintf(" [cached: %d]", last.CachedTokens))
	}
	sb.WriteString(fmt.Sprintf(" | session: %d", session.TotalTokens))
	return r.styles.DimTxt.Render(sb.String())
}

// User renders a user-attributed chat line
func (r *Renderer) User(text string) string {
	return r.styles.UserTxt.Render("you> ") + text
}

// Assistant renders an assistant-attributed chat prefix
func (r *Renderer) Assistant(model string) string {
	return r.styles.AssistantTxt.Render(model + "> ")
}

func (r *Renderer) stateCell(state llmtypes.JobState) string {
	return r.styles.StateTxt(StateColor(state)).Render(state.Short())
}

// Preview flattens content onto a single line and truncates it for
// inline display. Truncation happens on rune boundaries so multi-byte
// characters are never split.
func Preview(content string) string {
	flattened := strings.Join(strings.Fields(content), " ")
	runes := []rune(flattened)
	if len(runes) <= resultPreviewLen {
		return flattened
	}
	return string(runes[:resultPreviewLen]) + "..."
}

// shortName returns the tail of a resource name (after the last '/')
func shortName(name string) string {
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		return name[idx+1:]
	}
	return name
}
