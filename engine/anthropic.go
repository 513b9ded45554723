package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"llmchat/chat"
	"llmchat/tools"
)

// AnthropicEngine streams completions from the Anthropic Messages API
// using the official SDK.
type AnthropicEngine struct {
	client  *anthropic.Client
	baseURL string
	vendor  string
}

// NewAnthropicEngine creates an engine for the Anthropic API. The API key
// is required.
func NewAnthropicEngine(baseURL, apiKey string) (*AnthropicEngine, error) {
	if baseURL == "" {
		baseURL = "https://api.anthropic.com"
	}
	if apiKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}

	client := anthropic.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &AnthropicEngine{client: &client, baseURL: baseURL}, nil
}

// Complete implements chat.Engine.
func (e *AnthropicEngine) Complete(ctx context.Context, req chat.CompletionRequest, fn chat.StreamFunc) error {
	messages, system := toAnthropicMessages(req.Messages)

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(req.Model),
		Messages:    messages,
		MaxTokens:   int64(req.MaxTokens),
		Temperature: anthropic.Float(req.Temperature),
		TopP:        anthropic.Float(req.TopP),
	}
	if len(system) > 0 {
		params.System = system
	}
	if len(req.Stop) > 0 {
		params.StopSequences = req.Stop
	}
	if len(req.Tools) > 0 {
		params.Tools = tools.ToAnthropicTools(req.Tools)
	}

	stream := e.client.Messages.NewStreaming(ctx, params)

	msg := anthropic.Message{}
	for stream.Next() {
		event := stream.Current()

		if err := msg.Accumulate(event); err != nil {
			return fmt.Errorf("error accumulating message: %w", err)
		}

		switch eventVariant := event.AsAny().(type) {
		case anthropic.ContentBlockDeltaEvent:
			switch deltaVariant := eventVariant.Delta.AsAny().(type) {
			case anthropic.TextDelta:
				if fn != nil {
					if err := fn(chat.CompletionChunk{Content: deltaVariant.Text}); err != nil {
						return err
					}
				}
			}
		}
	}

	if err := stream.Err(); err != nil {
		return fmt.Errorf("Anthropic streaming error: %w", err)
	}

	if fn != nil && (msg.Usage.InputTokens > 0 || msg.Usage.OutputTokens > 0) {
		usage := &chat.Usage{
			PromptTokens:     int(msg.Usage.InputTokens),
			CompletionTokens: int(msg.Usage.OutputTokens),
			TotalTokens:      int(msg.Usage.InputTokens + msg.Usage.OutputTokens),
		}
		if err := fn(chat.CompletionChunk{Usage: usage}); err != nil {
			return err
		}
	}

	return nil
}

// Load verifies the API key with a minimal request. Anthropic has no
// health endpoint, so a one-token message stands in for a ping.
func (e *AnthropicEngine) Load(ctx context.Context, model string, progress func(chat.Progress)) error {
	start := time.Now()
	if progress != nil {
		progress(chat.Progress{Progress: 0, Text: "connecting to " + e.baseURL})
	}

	_, err := e.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: 1,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock("ping")),
		},
	})
	if err != nil {
		return fmt.Errorf("Anthropic ping failed: %w", err)
	}

	e.vendor = "Anthropic"
	if progress != nil {
		progress(chat.Progress{Progress: 1, Text: "ready", TimeElapsed: time.Since(start).Seconds()})
	}
	return nil
}

// Vendor implements chat.Engine.
func (e *AnthropicEngine) Vendor() string {
	return e.vendor
}

// ListModels returns a curated list of known Claude models. Anthropic
// has no models list API.
func (e *AnthropicEngine) ListModels(ctx context.Context) ([]string, error) {
	models := []anthropic.Model{
		anthropic.ModelClaudeSonnet4_5_20250929,
		anthropic.ModelClaude3_5Haiku20241022,
		anthropic.ModelClaude_3_Opus_20240229,
		anthropic.ModelClaude_3_Haiku_20240307,
	}

	result := make([]string, 0, len(models))
	for _, m := range models {
		result = append(result, string(m))
	}
	return result, nil
}

// toAnthropicMessages splits out system messages, which Anthropic takes
// as a separate parameter rather than in the messages array.
func toAnthropicMessages(messages []chat.Message) ([]anthropic.MessageParam, []anthropic.TextBlockParam) {
	var systemBlocks []anthropic.TextBlockParam
	anthropicMsgs := make([]anthropic.MessageParam, 0, len(messages))

	for _, msg := range messages {
		switch msg.Role {
		case "system":
			systemBlocks = append(systemBlocks, anthropic.TextBlockParam{
				Text: msg.Content,
			})
		case "assistant":
			anthropicMsgs = append(anthropicMsgs,
				anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)),
			)
		default:
			anthropicMsgs = append(anthropicMsgs,
				anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)),
			)
		}
	}

	return anthropicMsgs, systemBlocks
}
