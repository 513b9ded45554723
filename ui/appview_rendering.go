package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	markdown "github.com/MichaelMure/go-term-markdown"
	tea "github.com/charmbracelet/bubbletea"
	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"

	"llmchat/config"
)

func (a *AppView) updateViewportContent(gotoBottom bool) {
	messages := a.chat.Messages()
	if len(messages) == 0 {
		a.viewport.SetContent("No messages yet. Start chatting!")
		return
	}

	var content strings.Builder

	for i, msg := range messages {
		var roleStyle = DimStyle
		var roleName string
		switch msg.Role {
		case "user":
			roleStyle = UserStyle
			roleName = "You"
		case "assistant":
			roleStyle = AssistantStyle
			roleName = "Assistant"
		case "tool":
			roleStyle = DimStyle
			roleName = "Tool"
		default:
			roleStyle = DimStyle
			roleName = "System"
		}

		role := roleStyle.Render(roleName)

		rendered := msg.Content
		if cached, ok := a.rendered[i]; ok && a.renderedRaw[i] == msg.Content {
			rendered = cached
		}

		// Tool results are raw JSON payloads; keep them dim and compact
		if msg.Role == "tool" {
			rendered = DimStyle.Render(compactJSON(msg.Content))
		}

		streaming := a.chat.Generating() && i == len(messages)-1 && msg.Role == "assistant"
		if streaming {
			if msg.Content == "" {
				rendered = a.loadingSpinner.View()
			} else {
				rendered = msg.Content + "▋"
			}
		}

		if msg.Role == "user" {
			content.WriteString(formatUserMessage(role, rendered))
			continue
		}

		content.WriteString(fmt.Sprintf("%s\n%s\n\n", role, rendered))
	}

	a.viewport.SetContent(content.String())
	if gotoBottom {
		a.viewport.GotoBottom()
	}
}

// formatUserMessage prefixes each line with a green vertical bar.
func formatUserMessage(role, content string) string {
	greenBold := "\x1b[32;1m"
	reset := "\x1b[0m"
	bar := greenBold + "┃" + reset

	var result strings.Builder
	result.WriteString(fmt.Sprintf("%s %s\n", bar, role))

	for _, line := range strings.Split(content, "\n") {
		result.WriteString(fmt.Sprintf("%s %s\n", bar, line))
	}

	result.WriteString("\n")

	return result.String()
}

func compactJSON(s string) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(s)); err != nil {
		return s
	}
	return buf.String()
}

// renderPendingMarkdown schedules async renders for finalized messages
// that have no cached render yet.
func (a *AppView) renderPendingMarkdown() tea.Cmd {
	if a.width == 0 || a.chat.Generating() {
		return nil
	}

	var cmds []tea.Cmd
	for i, msg := range a.chat.Messages() {
		if msg.Role != "assistant" && msg.Role != "user" {
			continue
		}
		if msg.Content == "" || a.renderedRaw[i] == msg.Content {
			continue
		}
		a.renderedRaw[i] = msg.Content
		cmds = append(cmds, a.renderMarkdownAsync(i, msg.Content))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (a AppView) renderMarkdownAsync(messageIndex int, content string) tea.Cmd {
	return func() tea.Msg {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[UI] Rendering markdown for message %d (%d chars)", messageIndex, len(content))
		}

		// Disable autolink so terminal emulators handle URL detection
		defaultExt := markdown.Extensions()
		customExt := defaultExt &^ parser.Autolink
		p := parser.NewWithExtensions(customExt)
		r := markdown.NewRenderer(a.width-4, 0)
		doc := p.Parse([]byte(content))
		rendered := gomarkdown.Render(doc, r)

		return markdownRenderedMsg{
			index:    messageIndex,
			rendered: strings.TrimRight(string(rendered), "\n"),
		}
	}
}
