package tools

import (
	"context"
	"encoding/json"
	"fmt"
)

// Executor resolves and runs parsed tool calls against a registry.
//
// Every outcome shares one payload shape: a map that either carries the
// tool's domain fields or an "error" field. Nothing is ever panicked or
// returned as a Go error to the caller; tool failures are data, not
// control flow.
type Executor struct {
	registry *Registry
}

// NewExecutor creates an executor bound to the given registry.
func NewExecutor(registry *Registry) *Executor {
	return &Executor{registry: registry}
}

// Execute resolves the call's tool, decodes its arguments and invokes it.
func (e *Executor) Execute(ctx context.Context, call Call) map[string]any {
	tool := e.registry.Find(call.Function.Name)
	if tool == nil {
		return map[string]any{"error": fmt.Sprintf("Tool %s not found", call.Function.Name)}
	}

	args := map[string]any{}
	if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
		return map[string]any{"error": fmt.Sprintf("Invalid arguments: %s", call.Function.Arguments)}
	}

	result, err := tool.Execute(ctx, args)
	if err != nil {
		return map[string]any{"error": fmt.Sprintf("Tool execution failed: %v", err)}
	}
	return result
}

// FormatResult renders a tool result as a natural-language sentence for the
// assistant-visible message body. Raw JSON payloads only ever appear in
// tool-role messages.
func FormatResult(name string, result map[string]any) string {
	switch name {
	case "get_current_time":
		return fmt.Sprintf("The current time is %v.", result["formatted"])

	case "calculate":
		if errMsg, ok := result["error"]; ok {
			return fmt.Sprintf("Calculation error: %v", errMsg)
		}
		return fmt.Sprintf("The result of %v is %v.", result["expression"], result["result"])

	case "get_weather":
		base := fmt.Sprintf("Weather in %v: %v, %v, Humidity: %v.",
			result["location"], result["temperature"], result["condition"], result["humidity"])
		if note, ok := result["note"]; ok {
			return fmt.Sprintf("%s (%v)", base, note)
		}
		return base

	case "search_web":
		if results, ok := result["results"].([]map[string]any); ok && len(results) > 0 {
			return fmt.Sprintf("Search results for %q: %v (%v)",
				result["query"], results[0]["snippet"], result["note"])
		}
		return fmt.Sprintf("Search results for %q: %v", result["query"], result["note"])
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Sprintf("Tool result: %v", result)
	}
	return fmt.Sprintf("Tool result: %s", data)
}
