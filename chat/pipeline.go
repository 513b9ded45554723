package chat

import (
	"context"
	"encoding/json"
	"strings"

	"llmchat/tools"
)

// processToolCalls runs the tool pipeline over a completed assistant turn
// and returns the text that should replace the streamed content. When no
// call is detected the input is returned unchanged.
//
// Explicit calls are executed in parse order and their literal markup is
// spliced out of the text; the fallback path appends the formatted result
// since no markup was present. Either way the raw JSON result is recorded
// in a dedicated tool-role message for auditability.
func (c *Chat) processToolCalls(ctx context.Context, content string) string {
	calls := tools.ParseCalls(content)

	if len(calls) == 0 {
		fallback := tools.DetectFallback(content)
		if fallback == nil {
			return content
		}

		call := *fallback
		result := c.runCall(ctx, call)
		return content + "\n\n" + tools.FormatResult(call.Function.Name, result)
	}

	processed := content
	for _, call := range calls {
		result := c.runCall(ctx, call)

		markup := "<function>" + call.Function.Name + "</function>\n" + call.Function.Arguments
		processed = strings.Replace(processed, markup, tools.FormatResult(call.Function.Name, result), 1)
	}
	return processed
}

// runCall executes one call, appending the status and tool-result messages
// around it. Tool failures come back as error payloads, never aborting the
// turn.
func (c *Chat) runCall(ctx context.Context, call tools.Call) map[string]any {
	c.appendMessage(Message{
		Role:      "assistant",
		Content:   "Calling " + call.Function.Name + "...",
		ToolCalls: []tools.Call{call},
	})

	result := c.executor.Execute(ctx, call)

	pretty, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		pretty = []byte(`{"error": "unencodable tool result"}`)
	}
	c.appendMessage(Message{
		Role:       "tool",
		Content:    string(pretty),
		ToolCallID: call.ID,
	})

	return result
}

func (c *Chat) appendMessage(m Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, m)
	c.persist()
}
