// Package batchio reads prompt files for batch submission and writes
// batch results to disk in JSON, CSV or plain text form.
package batchio

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/padwan-ai/padwan-cli/llmtypes"
)

// Format names accepted by SaveResults
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatTXT  = "txt"
)

// promptEntry is the object form accepted in JSON prompt files
type promptEntry struct {
	Key    string `json:"key"`
	Prompt string `json:"prompt"`
}

// LoadRequests reads batch requests from a file. A .json file holds an
// array of strings or of {"key", "prompt"} objects; any other file is
// read as one prompt per non-empty line. Missing keys default to
// prompt-<i> matching submission order.
func LoadRequests(path string) ([]llmtypes.BatchRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompts file: %w", err)
	}

	var requests []llmtypes.BatchRequest
	if strings.EqualFold(filepath.Ext(path), ".json") {
		requests, err = parseJSONRequests(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else {
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			requests = append(requests, llmtypes.BatchRequest{Prompt: line})
		}
	}

	if len(requests) == 0 {
		return nil, fmt.Errorf("no prompts found in %s", path)
	}
	for i := range requests {
		if requests[i].Key == "" {
			requests[i].Key = "prompt-" + strconv.Itoa(i)
		}
	}
	return requests, nil
}

func parseJSONRequests(data []byte) ([]llmtypes.BatchRequest, error) {
	// Try the simple form first: an array of prompt strings
	var prompts []string
	if err := json.Unmarshal(data, &prompts); err == nil {
		requests := make([]llmtypes.BatchRequest, 0, len(prompts))
		for _, prompt := range prompts {
			if strings.TrimSpace(prompt) == "" {
				continue
			}
			requests = append(requests, llmtypes.BatchRequest{Prompt: prompt})
		}
		return requests, nil
	}

	var entries []promptEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("expected a JSON array of strings or {key, prompt} objects: %w", err)
	}
	requests := make([]llmtypes.BatchRequest, 0, len(entries))
	for _, entry := range entries {
		if strings.TrimSpace(entry.Prompt) == "" {
			continue
		}
		requests = append(requests, llmtypes.BatchRequest{Key: entry.Key, Prompt: entry.Prompt})
	}
	return requests, nil
}

// FormatForPath infers the export format from a file extension,
// defaulting to JSON.
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".txt":
		return FormatTXT
	default:
		return FormatJSON
	}
}

// SaveResults writes batch results to path in the given format
func SaveResults(path, format string, results []llmtypes.BatchResult) error {
	var data []byte
	var err error

	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal results: %w", err)
		}
		data = append(data, '\n')
	case FormatCSV:
		data, err = encodeCSV(results)
		if err != nil {
			return err
		}
	case FormatTXT:
		data = encodeTXT(results)
	default:
		return fmt.Errorf("unsupported format: %s (want json, csv or txt)", format)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results file: %w", err)
	}
	return nil
}

func encodeCSV(results []llmtypes.BatchResult) ([]byte, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.Write([]string{"key", "content", "input_tokens", "output_tokens", "total_tokens", "error"}); err != nil {
		return nil, fmt.Errorf("encode results csv: %w", err)
	}
	for _, r := range results {
		record := []string{
			r.Key,
			r.Content,
			strconv.Itoa(r.InputTokens),
			strconv.Itoa(r.OutputTokens),
			strconv.Itoa(r.TotalTokens),
			r.Error,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("encode results csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("encode results csv: %w", err)
	}
	return []byte(sb.String()), nil
}

// encodeTXT writes one [key] block per result, blocks separated by a
// blank line.
func encodeTXT(results []llmtypes.BatchResult) []byte {
	var sb strings.Builder
	for i, r := range results {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("[" + r.Key + "]\n")
		if r.Failed() {
			sb.WriteString("ERROR: " + r.Error + "\n")
			continue
		}
		sb.WriteString(r.Content)
		if !strings.HasSuffix(r.Content, "\n") {
			sb.WriteString("\n")
		}
	}
	return []byte(sb.String())
}
