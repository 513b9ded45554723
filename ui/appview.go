package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"llmchat/character"
	"llmchat/chat"
)

type AppView struct {
	// Conversation controller and its backend
	chat   *chat.Chat
	engine chat.Engine

	// UI Components
	viewport viewport.Model
	textarea textarea.Model

	// Window state
	width  int
	height int
	ready  bool

	// Loading spinner (bubbles/spinner)
	loadingSpinner spinner.Model

	showHelp  bool
	statusMsg string

	// Character picker
	showCharacterPicker bool
	characterList       []character.Character
	selectedCharIdx     int
	charFilterInput     textinput.Model

	// Cached markdown renders, keyed by message index. Entries are
	// invalidated when the raw content at that index changes.
	rendered    map[int]string
	renderedRaw map[int]string
}

func NewAppView(c *chat.Chat, engine chat.Engine) AppView {
	ta := textarea.New()
	ta.Placeholder = "Type your message here..."
	ta.Focus()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.SetWidth(80)
	ta.SetValue(c.Input())

	// Alt+Enter for newline, Enter alone sends (handled separately)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))

	ta.SetPromptFunc(2, func(lineIdx int) string {
		if lineIdx == 0 {
			return "> "
		}
		return "| "
	})

	vp := viewport.New(0, 0)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	charFilterInput := textinput.New()
	charFilterInput.Prompt = "Filter: "
	charFilterInput.CharLimit = 64

	return AppView{
		chat:            c,
		engine:          engine,
		textarea:        ta,
		viewport:        vp,
		loadingSpinner:  sp,
		charFilterInput: charFilterInput,
		rendered:        map[int]string{},
		renderedRaw:     map[int]string{},
	}
}

func (a AppView) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		a.loadingSpinner.Tick,
		a.attachEngineCmd(),
		streamTick(),
	)
}

func (a AppView) View() string {
	if !a.ready {
		return "Loading llmchat..."
	}

	if a.showHelp {
		return renderHelpModal(a.width, a.height)
	}

	if a.showCharacterPicker {
		return a.renderCharacterPicker()
	}

	// Title bar - "llmchat - model - vendor | character"
	title := AssistantStyle.Render("llmchat")
	title += TitleStyle.Render(fmt.Sprintf(" - %s", a.chat.Model()))
	if vendor := a.chat.Vendor(); vendor != "" {
		title += UserStyle.Render(fmt.Sprintf(" - %s", vendor))
	}
	if name := a.chat.SelectedCharacter(); name != "" {
		title += DimStyle.Render(" | " + runewidth.Truncate(name, 30, "..."))
	}
	if a.chat.ToolsEnabled() {
		title += DimStyle.Render(" | tools")
	}

	statusBar := a.statusLine()

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		a.viewport.View(),
		a.textarea.View(),
		statusBar,
	)
}

func (a AppView) statusLine() string {
	if !a.chat.Ready() {
		p := a.chat.LoadProgress()
		text := p.Text
		if text == "" {
			text = "loading model"
		}
		return StatusStyle.Render(fmt.Sprintf("%s %s (%d%%)",
			a.loadingSpinner.View(), text, int(p.Progress*100)))
	}

	if a.statusMsg != "" {
		return StatusStyle.Render(a.statusMsg)
	}

	var parts []string
	if usage := a.chat.Usage(); usage != nil {
		parts = append(parts, fmt.Sprintf("tokens: %d+%d=%d",
			usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens))
	}

	descStyle := lipgloss.NewStyle().Foreground(successColor).Bold(true)
	keys := fmt.Sprintf("Alt+Q %s  Alt+P %s  Alt+T %s  Alt+N %s  Alt+Y %s  Esc %s  Enter %s",
		descStyle.Render("Quit"),
		descStyle.Render("Personas"),
		descStyle.Render("Tools"),
		descStyle.Render("New"),
		descStyle.Render("Copy"),
		descStyle.Render("Stop"),
		descStyle.Render("Send"),
	)
	parts = append(parts, keys)

	return StatusStyle.Render(strings.Join(parts, "  |  "))
}
