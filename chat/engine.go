package chat

import (
	"context"

	"llmchat/tools"
)

// CompletionRequest is one streaming chat-completion request. All generation
// parameters are passed through to the engine verbatim.
type CompletionRequest struct {
	Model            string
	Messages         []Message
	Temperature      float64
	MaxTokens        int
	TopP             float64
	FrequencyPenalty float64
	PresencePenalty  float64
	Stop             []string
	Seed             int
	Logprobs         int
	Tools            []tools.Schema
}

// CompletionChunk is one streamed fragment. Either field may be unset; the
// final chunk typically carries only usage.
type CompletionChunk struct {
	Content string
	Usage   *Usage
}

// StreamFunc receives each chunk of a streamed completion. Returning an
// error stops consumption; the engine propagates it back from Complete.
type StreamFunc func(CompletionChunk) error

// Progress reports one-time engine initialization progress.
type Progress struct {
	Progress    float64
	Text        string
	TimeElapsed float64
}

// Engine abstracts the inference backend behind a narrow streaming
// capability interface. Implementations must honor ctx cancellation
// between chunks.
type Engine interface {
	// Complete opens a streaming completion and invokes fn per chunk until
	// the stream is exhausted, fn errors, or ctx is cancelled.
	Complete(ctx context.Context, req CompletionRequest, fn StreamFunc) error

	// Load performs one-time initialization for the given model, reporting
	// progress through the callback.
	Load(ctx context.Context, model string, progress func(Progress)) error

	// Vendor returns a descriptive runtime/GPU vendor string, available
	// after Load succeeds.
	Vendor() string
}

// Store persists the durable session projection. Implementations are
// write-through and best-effort; the chat layer logs and otherwise ignores
// save failures.
type Store interface {
	Save(*Session) error

	// Load returns the persisted session, or (nil, nil) when none exists.
	Load() (*Session, error)
}
