package padwan

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderForModel(t *testing.T) {
	tests := []struct {
		model    string
		provider Provider
	}{
		{"gpt-4o-mini", ProviderOpenAI},
		{"o3-mini", ProviderOpenAI},
		{"gemini-2.0-flash", ProviderGemini},
		{"gemini-2.5-pro", ProviderGemini},
		{"mistral-large-latest", ProviderMistral},
		{"codestral-latest", ProviderMistral},
		{"grok-4", ProviderGrok},
	}
	for _, tt := range tests {
		provider, err := ProviderForModel(tt.model)
		require.NoError(t, err, "model %s", tt.model)
		assert.Equal(t, tt.provider, provider, "model %s", tt.model)
	}
}

func TestProviderForModelUnknown(t *testing.T) {
	_, err := ProviderForModel("gpt-99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown model")
}

func TestAllModelsSortedUnion(t *testing.T) {
	all := AllModels()
	want := len(OpenAIModels) + len(GeminiModels) + len(MistralModels) + len(GrokModels)
	assert.Len(t, all, want)
	assert.True(t, sort.StringsAreSorted(all))
	assert.Contains(t, all, DefaultModel)
	assert.Contains(t, all, DefaultBatchModel)
}

func TestDefaultModelsResolve(t *testing.T) {
	provider, err := ProviderForModel(DefaultModel)
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, provider)

	provider, err = ProviderForModel(DefaultBatchModel)
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, provider)
}
