// Package engine provides chat.Engine implementations for the supported
// inference backends: a local Ollama server, OpenAI-compatible servers
// (llamafile, vLLM, LM Studio and similar), and the Anthropic API.
package engine

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ollama/ollama/api"

	"llmchat/chat"
	"llmchat/tools"
)

// OllamaEngine streams completions from a local Ollama server.
type OllamaEngine struct {
	client  *api.Client
	baseURL string
	vendor  string
}

// NewOllamaEngine creates an engine for the given server URL. An empty URL
// defaults to the standard local port.
func NewOllamaEngine(baseURL string) (*OllamaEngine, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama URL: %w", err)
	}

	return &OllamaEngine{
		client:  api.NewClient(parsedURL, http.DefaultClient),
		baseURL: baseURL,
	}, nil
}

// Complete implements chat.Engine. Cancellation is handled by the Ollama
// client between chunks via ctx.
func (e *OllamaEngine) Complete(ctx context.Context, req chat.CompletionRequest, fn chat.StreamFunc) error {
	stream := true
	apiReq := &api.ChatRequest{
		Model:    req.Model,
		Messages: toOllamaMessages(req.Messages),
		Tools:    tools.ToOllamaTools(req.Tools),
		Stream:   &stream,
		Options: map[string]any{
			"temperature":       req.Temperature,
			"num_predict":       req.MaxTokens,
			"top_p":             req.TopP,
			"frequency_penalty": req.FrequencyPenalty,
			"presence_penalty":  req.PresencePenalty,
			"seed":              req.Seed,
		},
	}
	if len(req.Stop) > 0 {
		apiReq.Options["stop"] = req.Stop
	}

	return e.client.Chat(ctx, apiReq, func(resp api.ChatResponse) error {
		chunk := chat.CompletionChunk{Content: resp.Message.Content}
		if resp.Done {
			chunk.Usage = &chat.Usage{
				PromptTokens:     resp.Metrics.PromptEvalCount,
				CompletionTokens: resp.Metrics.EvalCount,
				TotalTokens:      resp.Metrics.PromptEvalCount + resp.Metrics.EvalCount,
			}
		}
		if fn == nil {
			return nil
		}
		return fn(chunk)
	})
}

// Load pulls the model if it is not already present, relaying download
// progress, then resolves the vendor string from the server version.
func (e *OllamaEngine) Load(ctx context.Context, model string, progress func(chat.Progress)) error {
	start := time.Now()

	err := e.client.Pull(ctx, &api.PullRequest{Model: model}, func(p api.ProgressResponse) error {
		if progress == nil {
			return nil
		}
		fraction := 0.0
		if p.Total > 0 {
			fraction = float64(p.Completed) / float64(p.Total)
		}
		progress(chat.Progress{
			Progress:    fraction,
			Text:        p.Status,
			TimeElapsed: time.Since(start).Seconds(),
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to pull model %q: %w", model, err)
	}

	version, err := e.client.Version(ctx)
	if err != nil {
		e.vendor = "Ollama"
	} else {
		e.vendor = "Ollama " + version
	}

	if progress != nil {
		progress(chat.Progress{Progress: 1, Text: "ready", TimeElapsed: time.Since(start).Seconds()})
	}
	return nil
}

// Vendor implements chat.Engine.
func (e *OllamaEngine) Vendor() string {
	return e.vendor
}

// ListModels returns the models available on the server.
func (e *OllamaEngine) ListModels(ctx context.Context) ([]string, error) {
	resp, err := e.client.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	names := make([]string, 0, len(resp.Models))
	for _, m := range resp.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

func toOllamaMessages(messages []chat.Message) []api.Message {
	result := make([]api.Message, len(messages))
	for i, msg := range messages {
		result[i] = api.Message{Role: msg.Role, Content: msg.Content}
	}
	return result
}
