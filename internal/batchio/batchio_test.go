package batchio

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padwan-ai/padwan-cli/llmtypes"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadRequestsPlainText(t *testing.T) {
	path := writeFile(t, "prompts.txt", "first prompt\n\nsecond prompt\n  third prompt  \n")

	requests, err := LoadRequests(path)
	require.NoError(t, err)
	require.Len(t, requests, 3)
	assert.Equal(t, "prompt-0", requests[0].Key)
	assert.Equal(t, "first prompt", requests[0].Prompt)
	assert.Equal(t, "prompt-2", requests[2].Key)
	assert.Equal(t, "third prompt", requests[2].Prompt)
}

func TestLoadRequestsJSONStrings(t *testing.T) {
	path := writeFile(t, "prompts.json", `["one", "two"]`)

	requests, err := LoadRequests(path)
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, "prompt-0", requests[0].Key)
	assert.Equal(t, "one", requests[0].Prompt)
}

func TestLoadRequestsJSONObjects(t *testing.T) {
	path := writeFile(t, "prompts.json", `[
		{"key": "greeting", "prompt": "say hello"},
		{"prompt": "say goodbye"}
	]`)

	requests, err := LoadRequests(path)
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, "greeting", requests[0].Key)
	// Missing key falls back to positional naming
	assert.Equal(t, "prompt-1", requests[1].Key)
}

func TestLoadRequestsInvalidJSON(t *testing.T) {
	path := writeFile(t, "prompts.json", `{"not": "an array"}`)

	_, err := LoadRequests(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON array")
}

func TestLoadRequestsEmpty(t *testing.T) {
	path := writeFile(t, "prompts.txt", "\n\n")

	_, err := LoadRequests(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no prompts")
}

func TestLoadRequestsMissingFile(t *testing.T) {
	_, err := LoadRequests(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatForPath("out.json"))
	assert.Equal(t, FormatCSV, FormatForPath("out.CSV"))
	assert.Equal(t, FormatTXT, FormatForPath("out.txt"))
	assert.Equal(t, FormatJSON, FormatForPath("out"))
}

func TestSaveResultsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	results := []llmtypes.BatchResult{
		{Key: "prompt-0", Content: "hello", InputTokens: 3, OutputTokens: 2, TotalTokens: 5},
		{Key: "prompt-1", Error: "quota exceeded"},
	}

	require.NoError(t, SaveResults(path, FormatJSON, results))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded []llmtypes.BatchResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, results, decoded)
}

func TestSaveResultsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	results := []llmtypes.BatchResult{
		{Key: "prompt-0", Content: "a, b", TotalTokens: 5},
	}

	require.NoError(t, SaveResults(path, FormatCSV, results))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "key,content,input_tokens,output_tokens,total_tokens,error")
	assert.Contains(t, string(data), `"a, b"`)
}

func TestSaveResultsTXT(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	results := []llmtypes.BatchResult{
		{Key: "prompt-0", Content: "hello"},
		{Key: "prompt-1", Error: "boom"},
	}

	require.NoError(t, SaveResults(path, FormatTXT, results))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// One [key] block per result, blocks separated by a blank line
	assert.Equal(t, "[prompt-0]\nhello\n\n[prompt-1]\nERROR: boom\n", string(data))
}

func TestSaveResultsUnsupportedFormat(t *testing.T) {
	err := SaveResults(filepath.Join(t.TempDir(), "out.xml"), "xml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}
