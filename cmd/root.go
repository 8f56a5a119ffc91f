// Package cmd implements the padwan CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	padwan "github.com/padwan-ai/padwan-cli"
	"github.com/padwan-ai/padwan-cli/internal/chat"
	"github.com/padwan-ai/padwan-cli/internal/config"
	"github.com/padwan-ai/padwan-cli/internal/logging"
	"github.com/padwan-ai/padwan-cli/internal/render"
	"github.com/padwan-ai/padwan-cli/interfaces"
	"github.com/padwan-ai/padwan-cli/llmtypes"
)

var (
	modelFlag     string
	systemFlag    string
	verbose       bool
	themeOverride string
	streamFlag    bool
	tempFlag      float64

	cfg      *config.Config
	logger   interfaces.Logger
	renderer *render.Renderer
	sessions *chat.Sessions

	appVersion = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "padwan [prompt]",
	Short: "padwan — one CLI for OpenAI, Gemini, Mistral and Grok",
	Long: "padwan talks to OpenAI, Gemini, Mistral and Grok models through one interface.\n" +
		"Run it with a prompt for a one-shot completion, or use the chat and batch\nsubcommands for interactive sessions and Gemini batch jobs.",
	Args:              cobra.ArbitraryArgs,
	PersistentPreRunE: setup,
	RunE:              runOneshot,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "model to use (run 'padwan models' for the list)")
	rootCmd.PersistentFlags().StringVarP(&systemFlag, "system", "s", "", "system prompt")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&themeOverride, "theme", "", "color theme: dark or light")
	rootCmd.PersistentFlags().Float64Var(&tempFlag, "temperature", 0, "sampling temperature (0 uses the provider default)")
	rootCmd.Flags().BoolVar(&streamFlag, "stream", false, "stream the reply as it is generated")

	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(batchCmd)
}

// setup loads configuration and wires the shared CLI state
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(padwan.DefaultModel, padwan.DefaultBatchModel)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger = logging.New(level)

	theme := themeOverride
	if theme == "" {
		theme = cfg.Theme
	}
	renderer = render.NewRenderer(render.DetectTheme(theme))

	sessions = chat.NewSessions(func(model string) (llmtypes.Client, error) {
		return padwan.NewClient(cmd.Context(), padwan.Config{ModelID: model, Logger: logger})
	})
	return nil
}

// currentModel resolves the model from flag then config
func currentModel() string {
	if modelFlag != "" {
		return modelFlag
	}
	return cfg.Model
}

// currentSystem resolves the system prompt from flag then config
func currentSystem() string {
	if systemFlag != "" {
		return systemFlag
	}
	return cfg.System
}

// currentTemperature resolves the temperature from flag then config.
// Zero means "use the provider default".
func currentTemperature() float64 {
	if tempFlag > 0 {
		return tempFlag
	}
	return cfg.Temperature
}

// chatOptions builds the per-call options shared by the one-shot and
// chat paths
func chatOptions() []llmtypes.CallOption {
	var options []llmtypes.CallOption
	if t := currentTemperature(); t > 0 {
		options = append(options, llmtypes.WithTemperature(t))
	}
	return options
}

func runOneshot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	prompt := strings.Join(args, " ")
	model := currentModel()

	client, err := padwan.NewClient(cmd.Context(), padwan.Config{ModelID: model, Logger: logger})
	if err != nil {
		return err
	}

	messages := []llmtypes.Message{}
	if system := currentSystem(); system != "" {
		messages = append(messages, llmtypes.TextMessage(llmtypes.ChatMessageTypeSystem, system))
	}
	messages = append(messages, llmtypes.TextMessage(llmtypes.ChatMessageTypeHuman, prompt))

	if streamFlag {
		return streamOneshot(cmd.Context(), client, messages)
	}

	response, err := client.CompleteChat(cmd.Context(), messages, chatOptions()...)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), response.Content)
	if response.Usage != nil {
		fmt.Fprintln(cmd.OutOrStdout(), renderer.TokenUsage(*response.Usage, *response.Usage))
	}
	return nil
}

func streamOneshot(ctx context.Context, client llmtypes.Client, messages []llmtypes.Message) error {
	ch := make(chan llmtypes.StreamChunk, 100)
	done := make(chan error, 1)
	var response *llmtypes.ChatResponse

	options := append(chatOptions(), llmtypes.WithStreamingChan(ch))
	go func() {
		var err error
		response, err = client.CompleteChat(ctx, messages, options...)
		done <- err
	}()

	for chunk := range ch {
		fmt.Print(chunk.Content)
	}
	fmt.Println()

	if err := <-done; err != nil {
		return err
	}
	if response != nil && response.Usage != nil {
		fmt.Println(renderer.TokenUsage(*response.Usage, *response.Usage))
	}
	return nil
}

// SetVersionInfo sets the version shown by --version
func SetVersionInfo(version, commit string) {
	appVersion = version
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("padwan %s (commit: %s)\n", version, commit))
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
