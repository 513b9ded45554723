package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"llmchat/config"
)

// submitDoneMsg signals that a Submit call finished (streamed, aborted
// or failed). The conversation already holds the final messages.
type submitDoneMsg struct{}

// streamTickMsg drives viewport refreshes while a response streams in.
type streamTickMsg struct{}

// engineReadyMsg signals that the engine finished loading the model.
type engineReadyMsg struct {
	err error
}

// markdownRenderedMsg carries an async markdown render result.
type markdownRenderedMsg struct {
	index    int
	rendered string
}

const streamTickInterval = 100 * time.Millisecond

func streamTick() tea.Cmd {
	return tea.Tick(streamTickInterval, func(time.Time) tea.Msg {
		return streamTickMsg{}
	})
}

// submitCmd runs a blocking Submit in the background. The conversation
// appends chunks as they arrive; the UI polls them via streamTick.
func (a AppView) submitCmd(text string) tea.Cmd {
	return func() tea.Msg {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[UI] Submitting %d chars", len(text))
		}
		a.chat.Submit(context.Background(), text)
		return submitDoneMsg{}
	}
}

// attachEngineCmd loads the model on the engine in the background.
// Progress updates land in the conversation, which streamTick picks up.
func (a AppView) attachEngineCmd() tea.Cmd {
	return func() tea.Msg {
		err := a.chat.AttachEngine(context.Background(), a.engine, nil)
		return engineReadyMsg{err: err}
	}
}
