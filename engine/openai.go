package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"llmchat/chat"
	"llmchat/tools"
)

// OpenAIEngine streams completions from any OpenAI-compatible server.
// Local runtimes like llamafile, vLLM and LM Studio all speak this
// protocol, which makes it the general-purpose local backend.
type OpenAIEngine struct {
	client  openai.Client
	baseURL string
	vendor  string
}

// NewOpenAIEngine creates an engine for the given base URL. The API key
// may be empty for local servers that do not check it.
func NewOpenAIEngine(baseURL, apiKey string) (*OpenAIEngine, error) {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if apiKey == "" {
		// Local OpenAI-compatible servers accept any key.
		apiKey = "none"
	}

	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &OpenAIEngine{client: client, baseURL: baseURL}, nil
}

// Complete implements chat.Engine.
func (e *OpenAIEngine) Complete(ctx context.Context, req chat.CompletionRequest, fn chat.StreamFunc) error {
	params := openai.ChatCompletionNewParams{
		Model:            openai.ChatModel(req.Model),
		Messages:         toOpenAIMessages(req.Messages),
		Temperature:      openai.Float(req.Temperature),
		MaxTokens:        openai.Int(int64(req.MaxTokens)),
		TopP:             openai.Float(req.TopP),
		FrequencyPenalty: openai.Float(req.FrequencyPenalty),
		PresencePenalty:  openai.Float(req.PresencePenalty),
		Seed:             openai.Int(int64(req.Seed)),
		StreamOptions: openai.ChatCompletionStreamOptionsParam{
			IncludeUsage: openai.Bool(true),
		},
	}
	if len(req.Stop) > 0 {
		params.Stop = openai.ChatCompletionNewParamsStopUnion{OfStringArray: req.Stop}
	}
	if req.Logprobs > 0 {
		params.Logprobs = openai.Bool(true)
		params.TopLogprobs = openai.Int(int64(req.Logprobs))
	}
	if len(req.Tools) > 0 {
		params.Tools = tools.ToOpenAITools(req.Tools)
	}

	stream := e.client.Chat.Completions.NewStreaming(ctx, params)
	for stream.Next() {
		current := stream.Current()

		chunk := chat.CompletionChunk{}
		if len(current.Choices) > 0 {
			chunk.Content = current.Choices[0].Delta.Content
		}
		if current.Usage.TotalTokens > 0 {
			chunk.Usage = &chat.Usage{
				PromptTokens:     int(current.Usage.PromptTokens),
				CompletionTokens: int(current.Usage.CompletionTokens),
				TotalTokens:      int(current.Usage.TotalTokens),
			}
		}
		if chunk.Content == "" && chunk.Usage == nil {
			continue
		}
		if fn != nil {
			if err := fn(chunk); err != nil {
				return err
			}
		}
	}

	if err := stream.Err(); err != nil {
		return fmt.Errorf("OpenAI streaming error: %w", err)
	}
	return nil
}

// Load verifies the server is reachable and knows the model. There is no
// pull step for OpenAI-compatible servers, so progress jumps to done.
func (e *OpenAIEngine) Load(ctx context.Context, model string, progress func(chat.Progress)) error {
	start := time.Now()
	if progress != nil {
		progress(chat.Progress{Progress: 0, Text: "connecting to " + e.baseURL})
	}

	if _, err := e.client.Models.List(ctx); err != nil {
		return fmt.Errorf("OpenAI-compatible server unreachable: %w", err)
	}

	e.vendor = fmt.Sprintf("OpenAI-compatible (%s)", e.baseURL)
	if progress != nil {
		progress(chat.Progress{Progress: 1, Text: "ready", TimeElapsed: time.Since(start).Seconds()})
	}
	return nil
}

// Vendor implements chat.Engine.
func (e *OpenAIEngine) Vendor() string {
	return e.vendor
}

// ListModels returns the model ids advertised by the server.
func (e *OpenAIEngine) ListModels(ctx context.Context) ([]string, error) {
	page, err := e.client.Models.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	names := make([]string, 0, len(page.Data))
	for _, m := range page.Data {
		names = append(names, m.ID)
	}
	return names, nil
}

func toOpenAIMessages(messages []chat.Message) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, len(messages))
	for i, msg := range messages {
		switch msg.Role {
		case "system":
			result[i] = openai.SystemMessage(msg.Content)
		case "assistant":
			result[i] = openai.AssistantMessage(msg.Content)
		default:
			result[i] = openai.UserMessage(msg.Content)
		}
	}
	return result
}
