package padwan

import (
	"context"
	"fmt"
	"os"

	openaisdk "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"google.golang.org/genai"

	"github.com/padwan-ai/padwan-cli/interfaces"
	"github.com/padwan-ai/padwan-cli/llmtypes"
	geminiadapter "github.com/padwan-ai/padwan-cli/pkg/adapters/gemini"
	openaiadapter "github.com/padwan-ai/padwan-cli/pkg/adapters/openai"
)

// Provider identifies an LLM provider
type Provider string

const (
	ProviderOpenAI  Provider = "openai"
	ProviderGemini  Provider = "gemini"
	ProviderMistral Provider = "mistral"
	ProviderGrok    Provider = "grok"
)

// OpenAI-compatible API endpoints for providers served through the
// OpenAI adapter.
const (
	mistralBaseURL = "https://api.mistral.ai/v1"
	grokBaseURL    = "https://api.x.ai/v1"
)

// Config holds the configuration needed to construct a client
type Config struct {
	// Provider selects the backend. When empty it is resolved from ModelID.
	Provider Provider

	// ModelID is the model to use for all calls on this client
	ModelID string

	// APIKey overrides the provider's environment variable when set
	APIKey string

	// Logger receives diagnostic output. Defaults to a no-op logger.
	Logger interfaces.Logger
}

// noopLogger discards all log output
type noopLogger struct{}

func (noopLogger) Infof(format string, v ...any)             {}
func (noopLogger) Errorf(format string, v ...any)            {}
func (noopLogger) Debugf(format string, args ...interface{}) {}

func (c *Config) normalize() error {
	if c.ModelID == "" {
		return fmt.Errorf("model ID is required")
	}
	if c.Provider == "" {
		provider, err := ProviderForModel(c.ModelID)
		if err != nil {
			return err
		}
		c.Provider = provider
	}
	if c.Logger == nil {
		c.Logger = noopLogger{}
	}
	return nil
}

// apiKey returns the configured key, falling back to the provider's
// environment variable(s).
func (c *Config) apiKey() (string, error) {
	if c.APIKey != "" {
		return c.APIKey, nil
	}
	var envVars []string
	switch c.Provider {
	case ProviderOpenAI:
		envVars = []string{"OPENAI_API_KEY"}
	case ProviderGemini:
		envVars = []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}
	case ProviderMistral:
		envVars = []string{"MISTRAL_API_KEY"}
	case ProviderGrok:
		envVars = []string{"XAI_API_KEY"}
	default:
		return "", fmt.Errorf("unsupported provider: %s", c.Provider)
	}
	for _, name := range envVars {
		if key := os.Getenv(name); key != "" {
			return key, nil
		}
	}
	return "", fmt.Errorf("%s environment variable not set", envVars[0])
}

// NewClient creates a chat client for the configured provider.
// Mistral and Grok expose OpenAI-compatible APIs and are served through
// the OpenAI adapter with the provider's base URL.
func NewClient(ctx context.Context, config Config) (llmtypes.Client, error) {
	if err := config.normalize(); err != nil {
		return nil, err
	}
	key, err := config.apiKey()
	if err != nil {
		return nil, err
	}

	switch config.Provider {
	case ProviderOpenAI:
		client := openaisdk.NewClient(option.WithAPIKey(key))
		return openaiadapter.NewOpenAIAdapter(&client, config.ModelID, config.Logger), nil

	case ProviderMistral:
		client := openaisdk.NewClient(option.WithAPIKey(key), option.WithBaseURL(mistralBaseURL))
		return openaiadapter.NewOpenAIAdapter(&client, config.ModelID, config.Logger), nil

	case ProviderGrok:
		client := openaisdk.NewClient(option.WithAPIKey(key), option.WithBaseURL(grokBaseURL))
		return openaiadapter.NewOpenAIAdapter(&client, config.ModelID, config.Logger), nil

	case ProviderGemini:
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return geminiadapter.NewGeminiAdapter(client, config.ModelID, config.Logger), nil

	default:
		return nil, fmt.Errorf("unsupported provider: %s", config.Provider)
	}
}

// NewBatchClient creates a batch client for the configured provider.
// Only Gemini supports batch jobs.
func NewBatchClient(ctx context.Context, config Config) (llmtypes.BatchClient, error) {
	if config.ModelID == "" {
		config.ModelID = DefaultBatchModel
	}
	if err := config.normalize(); err != nil {
		return nil, err
	}
	if config.Provider != ProviderGemini {
		return nil, fmt.Errorf("batch jobs are only supported for Gemini models, got %s model %s", config.Provider, config.ModelID)
	}
	key, err := config.apiKey()
	if err != nil {
		return nil, err
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return geminiadapter.NewGeminiAdapter(client, config.ModelID, config.Logger), nil
}
