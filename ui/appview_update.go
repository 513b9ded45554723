package ui

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"llmchat/config"
)

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		taCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

		headerHeight := 2
		inputHeight := 3
		statusHeight := 1
		a.viewport.Width = msg.Width
		a.viewport.Height = msg.Height - headerHeight - inputHeight - statusHeight
		a.textarea.SetWidth(msg.Width)
		a.ready = true

		// Width changed: cached renders are wrapped for the old width
		a.rendered = map[int]string{}
		a.renderedRaw = map[int]string{}
		a.updateViewportContent(true)
		return a, a.renderPendingMarkdown()

	case streamTickMsg:
		if a.chat.Generating() || !a.chat.Ready() {
			a.updateViewportContent(true)
		}
		return a, streamTick()

	case submitDoneMsg:
		a.updateViewportContent(true)
		return a, a.renderPendingMarkdown()

	case engineReadyMsg:
		if msg.err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[UI] Engine load failed: %v", msg.err)
			}
			a.statusMsg = "engine error: " + msg.err.Error()
		}
		a.updateViewportContent(true)
		return a, a.renderPendingMarkdown()

	case markdownRenderedMsg:
		messages := a.chat.Messages()
		if msg.index < len(messages) && messages[msg.index].Content == a.renderedRaw[msg.index] {
			a.rendered[msg.index] = msg.rendered
			a.updateViewportContent(false)
		}
		return a, nil

	case spinner.TickMsg:
		a.loadingSpinner, taCmd = a.loadingSpinner.Update(msg)
		return a, taCmd

	case tea.KeyMsg:
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		if a.showCharacterPicker {
			return a.updateCharacterPicker(msg)
		}

		switch msg.String() {
		case "enter":
			text := a.textarea.Value()
			if text == "" || a.chat.Generating() || !a.chat.Ready() {
				return a, nil
			}
			a.textarea.Reset()
			a.statusMsg = ""
			return a, tea.Batch(a.submitCmd(text), a.loadingSpinner.Tick)

		case "esc":
			a.chat.Stop()
			return a, nil

		case "alt+q", "ctrl+c":
			// Preserve the draft for the next launch
			a.chat.SetInput(a.textarea.Value())
			return a, tea.Quit

		case "alt+n":
			if a.chat.Generating() {
				return a, nil
			}
			a.chat.Clear()
			a.rendered = map[int]string{}
			a.renderedRaw = map[int]string{}
			a.updateViewportContent(true)
			return a, nil

		case "alt+t":
			a.chat.SetEnableTools(!a.chat.ToolsEnabled())
			return a, nil

		case "alt+p":
			a.openCharacterPicker()
			return a, textarea.Blink

		case "alt+y":
			// Copy last assistant message
			messages := a.chat.Messages()
			for i := len(messages) - 1; i >= 0; i-- {
				if messages[i].Role == "assistant" {
					clipboard.WriteAll(messages[i].Content)
					return a, nil
				}
			}
			return a, nil

		case "alt+h":
			a.showHelp = true
			return a, nil

		case "alt+j", "alt+down":
			a.viewport.HalfPageDown()
			return a, nil

		case "alt+k", "alt+up":
			a.viewport.HalfPageUp()
			return a, nil
		}
	}

	a.textarea, taCmd = a.textarea.Update(msg)
	a.viewport, vpCmd = a.viewport.Update(msg)
	return a, tea.Batch(taCmd, vpCmd)
}
