package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/padwan-ai/padwan-cli/internal/chat"
	"github.com/padwan-ai/padwan-cli/internal/render"
	"github.com/padwan-ai/padwan-cli/llmtypes"
)

const chatHelp = `Commands:
  /help     show this help
  /clear    clear the conversation history
  /history  show the conversation history
  /exit     leave the chat`

// startMsg submits a message that was passed on the command line
type startMsg struct {
	input string
}

// streamChunkMsg carries one streamed content delta
type streamChunkMsg struct {
	content string
}

// streamDoneMsg carries the outcome of a finished exchange
type streamDoneMsg struct {
	err     error
	last    llmtypes.Usage
	session llmtypes.Usage
}

// ChatModel is the bubbletea model for the interactive chat session
type ChatModel struct {
	sessions *chat.Sessions
	model    string
	system   string
	initial  string
	options  []llmtypes.CallOption
	renderer *render.Renderer

	input     textinput.Model
	lines     []string
	reply     string
	streaming bool
	quitting  bool
	err       error
	width     int

	chunks <-chan llmtypes.StreamChunk
	done   <-chan streamDoneMsg
}

// NewChatModel creates the chat TUI bound to a session cache. A
// non-empty initial message is sent as soon as the program starts.
func NewChatModel(sessions *chat.Sessions, model, system, initial string, theme render.TermTheme, options ...llmtypes.CallOption) ChatModel {
	input := textinput.New()
	input.Placeholder = "Type a message (/help for commands)"
	input.Focus()
	input.CharLimit = 0

	return ChatModel{
		sessions: sessions,
		model:    model,
		system:   system,
		initial:  initial,
		options:  options,
		renderer: render.NewRenderer(theme),
		input:    input,
		width:    80,
	}
}

// Err returns the error that ended the session, if any
func (m ChatModel) Err() error {
	return m.err
}

// Init implements tea.Model
func (m ChatModel) Init() tea.Cmd {
	if m.initial != "" {
		initial := m.initial
		return tea.Batch(textinput.Blink, func() tea.Msg { return startMsg{input: initial} })
	}
	return textinput.Blink
}

// Update implements tea.Model
func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			if m.streaming {
				return m, nil
			}
			return m.submit()
		}

	case startMsg:
		m.lines = append(m.lines, m.renderer.User(msg.input))
		m.streaming = true
		return m, m.startExchange(msg.input)

	case streamChunkMsg:
		m.reply += msg.content
		return m, m.waitForChunk()

	case streamDoneMsg:
		m.streaming = false
		if msg.err != nil {
			m.lines = append(m.lines, m.renderer.Styles().ErrorTxt.Render("error: "+msg.err.Error()))
		} else {
			m.lines = append(m.lines,
				m.renderer.Assistant(m.model)+m.reply,
				m.renderer.TokenUsage(msg.last, msg.session))
		}
		m.reply = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m ChatModel) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}
	m.input.Reset()

	switch text {
	case "/exit":
		m.quitting = true
		return m, tea.Quit
	case "/help":
		m.lines = append(m.lines, m.renderer.Styles().DimTxt.Render(chatHelp))
		return m, nil
	case "/clear":
		m.sessions.Clear(m.model)
		m.lines = append(m.lines, m.renderer.Styles().DimTxt.Render("history cleared"))
		return m, nil
	case "/history":
		m.lines = append(m.lines, m.historyView())
		return m, nil
	}

	m.lines = append(m.lines, m.renderer.User(text))
	m.streaming = true
	return m, m.startExchange(text)
}

func (m *ChatModel) historyView() string {
	conv, err := m.sessions.GetOrCreate(m.model, m.system)
	if err != nil {
		return m.renderer.Styles().ErrorTxt.Render("error: " + err.Error())
	}
	messages := conv.Messages()
	if len(messages) == 0 {
		return m.renderer.Styles().DimTxt.Render("no history")
	}
	var sb strings.Builder
	for i, msg := range messages {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%-8s %s", string(msg.Role)+":", render.Preview(msg.Content)))
	}
	return m.renderer.Styles().DimTxt.Render(sb.String())
}

// startExchange runs the streamed exchange in the background and wires
// its chunks into the bubbletea update loop
func (m *ChatModel) startExchange(input string) tea.Cmd {
	chunks := make(chan llmtypes.StreamChunk, 100)
	done := make(chan streamDoneMsg, 1)
	m.chunks = chunks
	m.done = done

	sessions, model, system := m.sessions, m.model, m.system
	options := m.options
	go func() {
		conv, err := sessions.GetOrCreate(model, system)
		if err != nil {
			close(chunks)
			done <- streamDoneMsg{err: err}
			return
		}
		_, err = conv.Stream(context.Background(), input, chunks, options...)
		done <- streamDoneMsg{err: err, last: conv.LastUsage, session: conv.TotalUsage}
	}()

	return m.waitForChunk()
}

// waitForChunk delivers the next chunk, or the final outcome once the
// stream channel is closed
func (m ChatModel) waitForChunk() tea.Cmd {
	chunks, done := m.chunks, m.done
	return func() tea.Msg {
		chunk, ok := <-chunks
		if !ok {
			return <-done
		}
		return streamChunkMsg{content: chunk.Content}
	}
}

// View implements tea.Model
func (m ChatModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.renderer.Styles().Title.Render("padwan chat"))
	sb.WriteString(m.renderer.Styles().DimTxt.Render(" (" + m.model + ")"))
	sb.WriteString("\n\n")

	for _, line := range m.lines {
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	if m.streaming {
		sb.WriteString(m.renderer.Assistant(m.model) + m.reply)
		sb.WriteString("\n")
	}

	if m.quitting {
		return sb.String()
	}

	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	return sb.String()
}
