// Package chat implements the conversation state machine: the message log,
// the in-flight generation lifecycle, tool-call interception on completed
// turns, persona selection and the durable session projection.
//
// The Engine and Store interfaces are defined here rather than in the
// engine and storage packages so implementations can import chat without
// creating a cycle.
package chat

import "llmchat/tools"

// Message is one entry in the conversation log.
type Message struct {
	Role       string       `json:"role"`
	Content    string       `json:"content"`
	ToolCalls  []tools.Call `json:"tool_calls,omitempty"`
	ToolCallID string       `json:"tool_call_id,omitempty"`
}

// Usage holds the token counts reported by the engine for the most recent
// completion. It is not cumulative across turns.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
