package chat_test

import (
	"context"
	"strings"
	"testing"

	"llmchat/character"
	"llmchat/chat"
	"llmchat/engine/testutil"
	"llmchat/tools"
)

func characterFixture(name, prompt string) character.Character {
	return character.Character{
		Icon:         "🤖",
		Name:         name,
		Description:  "test persona",
		SystemPrompt: prompt,
	}
}

func newReadyChat(t *testing.T, engine *testutil.MockEngine) *chat.Chat {
	t.Helper()
	c := chat.New(tools.NewRegistry(), nil)
	if err := c.AttachEngine(context.Background(), engine, nil); err != nil {
		t.Fatalf("AttachEngine failed: %v", err)
	}
	return c
}

func TestSubmitStreamsIntoTrailingAssistant(t *testing.T) {
	engine := testutil.NewScriptedEngine(
		[]string{"Hello", ", ", "world!"},
		&chat.Usage{PromptTokens: 12, CompletionTokens: 3, TotalTokens: 15},
	)
	c := newReadyChat(t, engine)
	c.SetEnableTools(false)

	c.Submit(context.Background(), "Say hello")

	messages := c.Messages()
	if len(messages) != 3 {
		t.Fatalf("got %d messages, want 3 (system, user, assistant)", len(messages))
	}
	if messages[0].Role != "system" {
		t.Errorf("messages[0].Role = %q, want system", messages[0].Role)
	}
	if messages[1].Role != "user" || messages[1].Content != "Say hello" {
		t.Errorf("messages[1] = %+v, want user/Say hello", messages[1])
	}
	if messages[2].Role != "assistant" || messages[2].Content != "Hello, world!" {
		t.Errorf("messages[2] = %+v, want assistant/Hello, world!", messages[2])
	}

	usage := c.Usage()
	if usage == nil || usage.TotalTokens != 15 {
		t.Errorf("usage = %+v, want total 15", usage)
	}
	if c.Generating() {
		t.Error("still generating after Submit returned")
	}
}

func TestSubmitTrimsAndIgnoresBlankInput(t *testing.T) {
	engine := testutil.NewMockEngine()
	c := newReadyChat(t, engine)

	c.Submit(context.Background(), "   \n\t  ")

	if len(engine.Requests) != 0 {
		t.Errorf("engine was called %d times for blank input", len(engine.Requests))
	}
	if len(c.Messages()) != 1 {
		t.Errorf("message log changed on blank input: %d messages", len(c.Messages()))
	}
}

func TestSubmitWithoutEngineIsNoOp(t *testing.T) {
	c := chat.New(tools.NewRegistry(), nil)

	c.Submit(context.Background(), "hello")

	if len(c.Messages()) != 1 {
		t.Errorf("message log changed without an engine: %d messages", len(c.Messages()))
	}
}

func TestSubmitRebuildsHistoryAroundSingleSystemMessage(t *testing.T) {
	engine := testutil.NewScriptedEngine([]string{"First answer"}, nil)
	c := newReadyChat(t, engine)
	c.SetEnableTools(false)

	c.Submit(context.Background(), "first question")
	c.Submit(context.Background(), "second question")

	if len(engine.Requests) != 2 {
		t.Fatalf("got %d requests, want 2", len(engine.Requests))
	}

	// The streaming placeholder is appended after the request snapshot is
	// taken, so it never travels upstream.
	req := engine.Requests[1]
	wantRoles := []string{"system", "user", "assistant", "user"}
	if len(req.Messages) != len(wantRoles) {
		t.Fatalf("request has %d messages, want %d", len(req.Messages), len(wantRoles))
	}
	for i, want := range wantRoles {
		if req.Messages[i].Role != want {
			t.Errorf("request message %d role = %q, want %q", i, req.Messages[i].Role, want)
		}
	}
}

func TestSubmitExcludesToolMessagesFromRequest(t *testing.T) {
	engine := testutil.NewScriptedEngine(
		[]string{"<function>calculate</function>\n{\"expression\": \"6*7\"}"},
		nil,
	)
	c := newReadyChat(t, engine)

	c.Submit(context.Background(), "what is 6*7?")

	// Second turn: the tool-role message and the intermediate system
	// message must not go upstream.
	engine.CompleteFunc = testutil.NewScriptedEngine([]string{"It is 42."}, nil).CompleteFunc
	c.Submit(context.Background(), "thanks")

	req := engine.Requests[len(engine.Requests)-1]
	for i, m := range req.Messages {
		if m.Role == "tool" {
			t.Errorf("request message %d has tool role", i)
		}
		if m.Role == "system" && i != 0 {
			t.Errorf("request message %d is a non-leading system message", i)
		}
	}
}

func TestAbortRemovesStreamingPlaceholder(t *testing.T) {
	engine := testutil.NewMockEngine()
	var c *chat.Chat
	engine.CompleteFunc = func(ctx context.Context, req chat.CompletionRequest, fn chat.StreamFunc) error {
		if err := fn(chat.CompletionChunk{Content: "partial "}); err != nil {
			return err
		}
		c.Stop()
		return fn(chat.CompletionChunk{Content: "never seen"})
	}
	c = newReadyChat(t, engine)
	c.SetEnableTools(false)

	c.Submit(context.Background(), "tell me a long story")

	messages := c.Messages()
	if len(messages) != 2 {
		t.Fatalf("got %d messages, want 2 (system, user)", len(messages))
	}
	if messages[1].Role != "user" {
		t.Errorf("last message role = %q, want user (placeholder removed)", messages[1].Role)
	}
	if c.Generating() {
		t.Error("still generating after abort")
	}
}

func TestClearDuringStreamAbandonsTurn(t *testing.T) {
	engine := testutil.NewMockEngine()
	var c *chat.Chat
	engine.CompleteFunc = func(ctx context.Context, req chat.CompletionRequest, fn chat.StreamFunc) error {
		if err := fn(chat.CompletionChunk{Content: "partial "}); err != nil {
			return err
		}
		// The lock is released between chunks; a reset here must not
		// crash the consumer.
		c.Clear()
		return fn(chat.CompletionChunk{Content: "more"})
	}
	c = newReadyChat(t, engine)
	c.SetEnableTools(false)

	c.Submit(context.Background(), "tell me something")

	messages := c.Messages()
	if len(messages) != 1 || messages[0].Role != "system" {
		t.Fatalf("after mid-stream Clear: %+v, want single system message", messages)
	}
	if c.Generating() {
		t.Error("still generating after mid-stream Clear")
	}
}

func TestEngineErrorKeepsPartialContent(t *testing.T) {
	engine := testutil.NewMockEngine()
	engine.CompleteFunc = func(ctx context.Context, req chat.CompletionRequest, fn chat.StreamFunc) error {
		if err := fn(chat.CompletionChunk{Content: "partial answer"}); err != nil {
			return err
		}
		return context.DeadlineExceeded
	}
	c := newReadyChat(t, engine)
	c.SetEnableTools(false)

	c.Submit(context.Background(), "hello")

	messages := c.Messages()
	last := messages[len(messages)-1]
	if last.Role != "assistant" || last.Content != "partial answer" {
		t.Errorf("last message = %+v, want assistant/partial answer", last)
	}
}

func TestClearResetsToSingleSystemMessage(t *testing.T) {
	engine := testutil.NewScriptedEngine(
		[]string{"answer"},
		&chat.Usage{PromptTokens: 1, CompletionTokens: 1, TotalTokens: 2},
	)
	c := newReadyChat(t, engine)
	c.SetEnableTools(false)
	c.Submit(context.Background(), "question")

	c.Clear()

	messages := c.Messages()
	if len(messages) != 1 || messages[0].Role != "system" {
		t.Fatalf("after Clear: %+v, want single system message", messages)
	}
	if messages[0].Content != chat.DefaultSystemPrompt {
		t.Errorf("system content = %q, want default prompt", messages[0].Content)
	}
	if c.Usage() != nil {
		t.Error("usage survived Clear")
	}
}

func TestClearUsesSelectedCharacterPrompt(t *testing.T) {
	c := chat.New(tools.NewRegistry(), nil)
	c.SelectCharacter("Wise Mentor")

	c.Clear()

	messages := c.Messages()
	if len(messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(messages))
	}
	if messages[0].Content == chat.DefaultSystemPrompt {
		t.Error("system message still carries the default prompt")
	}
	if messages[0].Content != c.CurrentSystemPrompt() {
		t.Error("system message does not match the persona prompt")
	}
}

func TestExplicitToolCallReplacesMarkup(t *testing.T) {
	reply := "Let me check.\n<function>calculate</function>\n{\"expression\": \"6*7\"}\nDone."
	engine := testutil.NewScriptedEngine([]string{reply}, nil)
	c := newReadyChat(t, engine)

	c.Submit(context.Background(), "what is 6*7?")

	messages := c.Messages()
	// system, user, assistant (processed), assistant "Calling ...", tool
	if len(messages) != 5 {
		t.Fatalf("got %d messages, want 5", len(messages))
	}

	processed := messages[2]
	if processed.Role != "assistant" {
		t.Fatalf("messages[2].Role = %q, want assistant", processed.Role)
	}
	if strings.Contains(processed.Content, "<function>") {
		t.Errorf("markup survived processing: %q", processed.Content)
	}
	if !strings.Contains(processed.Content, "The result of 6*7 is 42.") {
		t.Errorf("formatted result missing from %q", processed.Content)
	}
	if !strings.HasPrefix(processed.Content, "Let me check.") || !strings.HasSuffix(processed.Content, "Done.") {
		t.Errorf("surrounding prose lost: %q", processed.Content)
	}

	status := messages[3]
	if status.Role != "assistant" || status.Content != "Calling calculate..." {
		t.Errorf("status message = %+v", status)
	}
	if len(status.ToolCalls) != 1 || status.ToolCalls[0].Function.Name != "calculate" {
		t.Errorf("status tool calls = %+v", status.ToolCalls)
	}

	toolMsg := messages[4]
	if toolMsg.Role != "tool" {
		t.Fatalf("messages[4].Role = %q, want tool", toolMsg.Role)
	}
	if !strings.Contains(toolMsg.Content, `"result": 42`) {
		t.Errorf("tool message lacks raw result JSON: %q", toolMsg.Content)
	}
	if toolMsg.ToolCallID == "" {
		t.Error("tool message has no call id")
	}
}

func TestFallbackToolResultIsAppended(t *testing.T) {
	reply := "I cannot check the weather in Tokyo for you."
	engine := testutil.NewScriptedEngine([]string{reply}, nil)
	c := newReadyChat(t, engine)

	c.Submit(context.Background(), "weather?")

	messages := c.Messages()
	processed := messages[2]
	if !strings.HasPrefix(processed.Content, reply) {
		t.Errorf("original refusal lost: %q", processed.Content)
	}
	if !strings.Contains(processed.Content, "Weather in Tokyo") {
		t.Errorf("appended weather result missing: %q", processed.Content)
	}
}

func TestToolsDisabledLeavesMarkupAlone(t *testing.T) {
	reply := "<function>calculate</function>\n{\"expression\": \"1+1\"}"
	engine := testutil.NewScriptedEngine([]string{reply}, nil)
	c := newReadyChat(t, engine)
	c.SetEnableTools(false)

	c.Submit(context.Background(), "1+1?")

	messages := c.Messages()
	if len(messages) != 3 {
		t.Fatalf("got %d messages, want 3", len(messages))
	}
	if messages[2].Content != reply {
		t.Errorf("content changed with tools disabled: %q", messages[2].Content)
	}
}

func TestParameterClamping(t *testing.T) {
	engine := testutil.NewScriptedEngine([]string{"ok"}, nil)
	c := newReadyChat(t, engine)
	c.SetEnableTools(false)

	c.SetTemperature(5)
	c.SetTopP(-1)
	c.SetFrequencyPenalty(-9)
	c.SetPresencePenalty(9)
	c.SetLogprobs(99)
	c.SetMaxTokens(-10)

	c.Submit(context.Background(), "hi")

	req := engine.Requests[0]
	if req.Temperature != 2 {
		t.Errorf("Temperature = %v, want 2", req.Temperature)
	}
	if req.TopP != 0 {
		t.Errorf("TopP = %v, want 0", req.TopP)
	}
	if req.FrequencyPenalty != -2 {
		t.Errorf("FrequencyPenalty = %v, want -2", req.FrequencyPenalty)
	}
	if req.PresencePenalty != 2 {
		t.Errorf("PresencePenalty = %v, want 2", req.PresencePenalty)
	}
	if req.Logprobs != 5 {
		t.Errorf("Logprobs = %v, want 5", req.Logprobs)
	}
	if req.MaxTokens != 1000 {
		t.Errorf("MaxTokens = %v, want untouched default 1000", req.MaxTokens)
	}
}

func TestToolsEnabledAdvertisesSchemas(t *testing.T) {
	engine := testutil.NewScriptedEngine([]string{"ok"}, nil)
	c := newReadyChat(t, engine)

	c.SetEnableTools(true)
	c.Submit(context.Background(), "hi")
	c.SetEnableTools(false)
	c.Submit(context.Background(), "hi again")

	if len(engine.Requests[0].Tools) != 4 {
		t.Errorf("first request advertises %d tools, want 4", len(engine.Requests[0].Tools))
	}
	if len(engine.Requests[1].Tools) != 0 {
		t.Errorf("second request advertises %d tools, want 0", len(engine.Requests[1].Tools))
	}
}

// memStore is an in-memory chat.Store for rehydration tests.
type memStore struct {
	session *chat.Session
}

func (s *memStore) Save(sess *chat.Session) error { s.session = sess; return nil }
func (s *memStore) Load() (*chat.Session, error)  { return s.session, nil }

func TestRehydrationPreservesToolToggle(t *testing.T) {
	store := &memStore{}

	first := chat.New(tools.NewRegistry(), store)
	if first.Rehydrated() {
		t.Error("fresh chat reports rehydrated")
	}
	first.SetEnableTools(false)

	second := chat.New(tools.NewRegistry(), store)
	if !second.Rehydrated() {
		t.Fatal("chat with a persisted session reports not rehydrated")
	}
	if second.ToolsEnabled() {
		t.Error("persisted tools-off toggle came back enabled")
	}
}

func TestCustomCharacterLifecycle(t *testing.T) {
	c := chat.New(tools.NewRegistry(), nil)

	id := c.AddCustomCharacter(characterFixture("Robot", "Beep boop."))
	if id == "" {
		t.Fatal("AddCustomCharacter returned empty id")
	}

	c.SelectCharacter(id)
	if got := c.CurrentSystemPrompt(); got != "Beep boop." {
		t.Errorf("CurrentSystemPrompt() = %q, want custom prompt", got)
	}

	c.UpdateCustomCharacter(id, characterFixture("Robot", "Beep."))
	if got := c.CurrentSystemPrompt(); got != "Beep." {
		t.Errorf("after update: %q, want %q", got, "Beep.")
	}

	c.DeleteCustomCharacter(id)
	if got := c.CurrentSystemPrompt(); got != chat.DefaultSystemPrompt {
		t.Errorf("after delete: %q, want default prompt", got)
	}
	if len(c.CustomCharacters()) != 0 {
		t.Errorf("custom characters remain after delete: %d", len(c.CustomCharacters()))
	}
}
