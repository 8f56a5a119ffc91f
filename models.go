package padwan

import (
	"fmt"
	"sort"
)

// OpenAIModels lists the OpenAI chat models exposed by the CLI
var OpenAIModels = []string{
	"gpt-4o",
	"gpt-4o-mini",
	"gpt-4.1",
	"gpt-4.1-mini",
	"gpt-4.1-nano",
	"o3-mini",
}

// GeminiModels lists the Gemini chat models exposed by the CLI.
// These are also the only models accepted for batch jobs.
var GeminiModels = []string{
	"gemini-2.0-flash",
	"gemini-2.0-flash-lite",
	"gemini-2.5-flash",
	"gemini-2.5-pro",
	"gemini-1.5-pro",
}

// MistralModels lists the Mistral chat models exposed by the CLI
var MistralModels = []string{
	"mistral-large-latest",
	"mistral-medium-latest",
	"mistral-small-latest",
	"codestral-latest",
	"open-mistral-nemo",
}

// GrokModels lists the xAI Grok chat models exposed by the CLI
var GrokModels = []string{
	"grok-4",
	"grok-4-fast",
	"grok-3",
	"grok-3-mini",
}

// DefaultModel is used when no model is specified on the command line
const DefaultModel = "gpt-4o-mini"

// DefaultBatchModel is used when no model is specified for batch jobs
const DefaultBatchModel = "gemini-2.0-flash"

// Models returns the model set for a provider
func Models(provider Provider) []string {
	switch provider {
	case ProviderOpenAI:
		return OpenAIModels
	case ProviderGemini:
		return GeminiModels
	case ProviderMistral:
		return MistralModels
	case ProviderGrok:
		return GrokModels
	}
	return nil
}

// AllModels returns the sorted union of every provider's model set
func AllModels() []string {
	all := make([]string, 0, len(OpenAIModels)+len(GeminiModels)+len(MistralModels)+len(GrokModels))
	all = append(all, OpenAIModels...)
	all = append(all, GeminiModels...)
	all = append(all, MistralModels...)
	all = append(all, GrokModels...)
	sort.Strings(all)
	return all
}

// ProviderForModel returns the provider that serves the given model ID
func ProviderForModel(model string) (Provider, error) {
	for _, p := range Providers() {
		for _, m := range Models(p) {
			if m == model {
				return p, nil
			}
		}
	}
	return "", fmt.Errorf("unknown model: %s (run 'padwan models' to list available models)", model)
}

// Providers returns all supported providers in display order
func Providers() []Provider {
	return []Provider{ProviderOpenAI, ProviderGemini, ProviderMistral, ProviderGrok}
}
