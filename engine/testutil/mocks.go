package testutil

import (
	"context"

	"llmchat/chat"
)

// MockEngine implements chat.Engine for testing
type MockEngine struct {
	// Configurable responses
	CompleteFunc func(ctx context.Context, req chat.CompletionRequest, fn chat.StreamFunc) error
	LoadFunc     func(ctx context.Context, model string, progress func(chat.Progress)) error

	// Recorded state
	Requests []chat.CompletionRequest
}

// NewMockEngine creates a mock engine with default implementations
func NewMockEngine() *MockEngine {
	mock := &MockEngine{}
	mock.CompleteFunc = mock.defaultComplete
	mock.LoadFunc = mock.defaultLoad
	return mock
}

// NewScriptedEngine creates a mock engine that streams the given chunks
// in order, then reports the usage (if non-nil).
func NewScriptedEngine(chunks []string, usage *chat.Usage) *MockEngine {
	mock := NewMockEngine()
	mock.CompleteFunc = func(ctx context.Context, req chat.CompletionRequest, fn chat.StreamFunc) error {
		for _, c := range chunks {
			if err := fn(chat.CompletionChunk{Content: c}); err != nil {
				return err
			}
		}
		if usage != nil {
			u := *usage
			if err := fn(chat.CompletionChunk{Usage: &u}); err != nil {
				return err
			}
		}
		return nil
	}
	return mock
}

func (m *MockEngine) defaultComplete(ctx context.Context, req chat.CompletionRequest, fn chat.StreamFunc) error {
	return fn(chat.CompletionChunk{Content: "Mock response"})
}

func (m *MockEngine) defaultLoad(ctx context.Context, model string, progress func(chat.Progress)) error {
	if progress != nil {
		progress(chat.Progress{Progress: 1, Text: "ready"})
	}
	return nil
}

func (m *MockEngine) Complete(ctx context.Context, req chat.CompletionRequest, fn chat.StreamFunc) error {
	m.Requests = append(m.Requests, req)
	return m.CompleteFunc(ctx, req, fn)
}

func (m *MockEngine) Load(ctx context.Context, model string, progress func(chat.Progress)) error {
	return m.LoadFunc(ctx, model, progress)
}

func (m *MockEngine) Vendor() string {
	return "Mock"
}
