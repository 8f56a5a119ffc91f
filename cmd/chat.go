package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/padwan-ai/padwan-cli/internal/render"
	"github.com/padwan-ai/padwan-cli/internal/tui"
	"github.com/padwan-ai/padwan-cli/llmtypes"
)

var chatTUIFlag bool

// errExit signals a clean exit from the interactive loop
var errExit = errors.New("exit")

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive chat sessions",
}

var chatSendCmd = &cobra.Command{
	Use:   "send <message>",
	Short: "Send a message and continue chatting with the selected model",
	Long: "Send the given message, then stay in an interactive session. Conversation\n" +
		"history is kept per model for the lifetime of the process. Type /help inside\n" +
		"the session for commands.",
	Args: cobra.MinimumNArgs(1),
	RunE: runChatSend,
}

var chatClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear cached conversations (one model with -m, all otherwise)",
	RunE:  runChatClear,
}

func init() {
	chatSendCmd.Flags().BoolVar(&chatTUIFlag, "tui", false, "use the full-screen terminal UI")

	chatCmd.AddCommand(chatSendCmd)
	chatCmd.AddCommand(chatClearCmd)
}

func runChatSend(cmd *cobra.Command, args []string) error {
	model := currentModel()
	system := currentSystem()
	message := strings.Join(args, " ")

	if chatTUIFlag {
		m := tui.NewChatModel(sessions, model, system, message, renderer.Styles().Theme, chatOptions()...)
		final, err := tea.NewProgram(m).Run()
		if err != nil {
			return err
		}
		return final.(tui.ChatModel).Err()
	}

	return chatLoop(cmd.Context(), os.Stdin, model, system, message)
}

// chatLoop is the plain (non-TUI) interactive session. The initial
// message is sent before the prompt loop starts.
func chatLoop(ctx context.Context, in *os.File, model, system, initial string) error {
	fmt.Println(renderer.Styles().Title.Render("padwan chat") +
		renderer.Styles().DimTxt.Render(" ("+model+") — /help for commands"))

	if initial != "" {
		fmt.Println(renderer.User(initial))
		if err := chatExchange(ctx, model, system, initial); err != nil {
			return err
		}
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Print(renderer.Styles().UserTxt.Render("you> "))
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if err := handleSlashCommand(input, model, system); err != nil {
				if errors.Is(err, errExit) {
					return nil
				}
				return err
			}
			continue
		}

		if err := chatExchange(ctx, model, system, input); err != nil {
			return err
		}
	}
}

// chatExchange streams one exchange and prints the reply with its usage
// footer. Stream errors are printed so the session can continue; only
// client construction errors are returned.
func chatExchange(ctx context.Context, model, system, input string) error {
	conv, err := sessions.GetOrCreate(model, system)
	if err != nil {
		return err
	}

	fmt.Print(renderer.Assistant(model))
	ch := make(chan llmtypes.StreamChunk, 100)
	done := make(chan struct{})
	go func() {
		for chunk := range ch {
			fmt.Print(chunk.Content)
		}
		close(done)
	}()
	_, err = conv.Stream(ctx, input, ch, chatOptions()...)
	<-done
	fmt.Println()
	if err != nil {
		fmt.Println(renderer.Styles().ErrorTxt.Render("error: " + err.Error()))
		return nil
	}
	fmt.Println(renderer.TokenUsage(conv.LastUsage, conv.TotalUsage))
	return nil
}

func handleSlashCommand(input, model, system string) error {
	switch input {
	case "/exit":
		return errExit
	case "/help":
		fmt.Println(renderer.Styles().DimTxt.Render(
			"/help     show this help\n" +
				"/clear    clear the conversation history\n" +
				"/history  show the conversation history\n" +
				"/exit     leave the chat"))
	case "/clear":
		sessions.Clear(model)
		fmt.Println(renderer.Styles().DimTxt.Render("history cleared"))
	case "/history":
		conv, err := sessions.GetOrCreate(model, system)
		if err != nil {
			return err
		}
		messages := conv.Messages()
		if len(messages) == 0 {
			fmt.Println(renderer.Styles().DimTxt.Render("no history"))
			return nil
		}
		for _, msg := range messages {
			fmt.Printf("%-8s %s\n", string(msg.Role)+":", render.Preview(msg.Content))
		}
	default:
		fmt.Println(renderer.Styles().DimTxt.Render("unknown command (try /help)"))
	}
	return nil
}

func runChatClear(cmd *cobra.Command, args []string) error {
	if modelFlag == "" {
		cleared := sessions.ClearAll()
		fmt.Fprintf(cmd.OutOrStdout(), "cleared %d conversation(s)\n", cleared)
		return nil
	}
	if sessions.Clear(modelFlag) {
		fmt.Fprintf(cmd.OutOrStdout(), "cleared conversation for %s\n", modelFlag)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "no cached conversation for %s\n", modelFlag)
	}
	return nil
}
