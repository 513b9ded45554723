package chat

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"llmchat/character"
	"llmchat/config"
	"llmchat/tools"
)

// DefaultSystemPrompt is the free-text system prompt used when no
// character is selected and the user has not set their own.
const DefaultSystemPrompt = "You are an intelligent AI assistant with access to tools. CRITICAL RULES:\n" +
	"1. NEVER say you can't provide information about time, weather, calculations, or current data\n" +
	"2. ALWAYS use tools when asked about these topics\n" +
	"3. Format tool calls EXACTLY like this:\n" +
	"<function>tool_name</function>\n" +
	"{arguments as JSON}\n\n" +
	"Available tools:\n" +
	"- get_current_time: Get current date/time (no arguments needed)\n" +
	"- calculate: Perform math calculations (use expression parameter)\n" +
	"- search_web: Search for information (use query parameter)\n" +
	"- get_weather: Get weather info (use location parameter)\n\n" +
	"Example: User asks 'What's the weather in Tokyo?' → Use get_weather tool with location 'Tokyo'"

// DefaultModel is used when neither config nor a persisted session names one.
const DefaultModel = "llama3.2:latest"

// Chat owns the conversation state: message log, generation parameters,
// persona selection and the in-flight generation lifecycle. All public
// methods are safe for concurrent use; every mutation is atomic from an
// observer's point of view and is written through to the session store.
type Chat struct {
	mu sync.Mutex

	messages   []Message
	input      string
	generating bool
	ready      bool
	engine     Engine
	cancel     context.CancelFunc

	model            string
	systemPrompt     string
	temperature      float64
	maxTokens        int
	topP             float64
	frequencyPenalty float64
	presencePenalty  float64
	stopSequences    []string
	seed             int
	logprobs         int

	usage    *Usage
	progress Progress
	vendor   string

	enableTools       bool
	selectedCharacter string
	customCharacters  []character.Character

	registry   *tools.Registry
	executor   *tools.Executor
	store      Store
	rehydrated bool
}

// New creates a Chat with default state, then rehydrates from the store if
// a persisted session exists. The engine is attached separately via
// AttachEngine once it is initialized.
func New(registry *tools.Registry, store Store) *Chat {
	c := &Chat{
		messages:     []Message{{Role: "system", Content: DefaultSystemPrompt}},
		model:        DefaultModel,
		systemPrompt: DefaultSystemPrompt,
		temperature:  0.7,
		maxTokens:    1000,
		topP:         1,
		seed:         42,
		enableTools:  true,
		registry:     registry,
		executor:     tools.NewExecutor(registry),
		store:        store,
	}

	if store != nil {
		session, err := store.Load()
		if err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[chat] session load failed: %v", err)
			}
		} else if session != nil {
			c.applySession(session)
			c.rehydrated = true
			if len(c.messages) == 0 {
				c.messages = []Message{{Role: "system", Content: c.effectiveSystemPrompt()}}
			}
		}
	}

	return c
}

// AttachEngine runs the engine's one-time initialization for the current
// model, relaying progress, and attaches it on success.
func (c *Chat) AttachEngine(ctx context.Context, engine Engine, onProgress func(Progress)) error {
	c.mu.Lock()
	model := c.model
	c.mu.Unlock()

	err := engine.Load(ctx, model, func(p Progress) {
		c.mu.Lock()
		c.progress = p
		c.mu.Unlock()
		if onProgress != nil {
			onProgress(p)
		}
	})
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.engine = engine
	c.ready = true
	c.vendor = engine.Vendor()
	c.mu.Unlock()
	return nil
}

// effectiveSystemPrompt resolves the selected character's prompt, falling
// back to the free-text system prompt. Callers must hold c.mu.
func (c *Chat) effectiveSystemPrompt() string {
	if c.selectedCharacter != "" {
		for _, custom := range c.customCharacters {
			if custom.ID == c.selectedCharacter {
				return custom.SystemPrompt
			}
		}
		if builtin := character.FindBuiltin(c.selectedCharacter); builtin != nil {
			return builtin.SystemPrompt
		}
	}
	return c.systemPrompt
}

// CurrentSystemPrompt returns the prompt that will seed the next turn.
func (c *Chat) CurrentSystemPrompt() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.effectiveSystemPrompt()
}

// Submit runs one full conversation turn: it rebuilds the outbound message
// list around the effective system prompt, streams the completion into a
// trailing assistant message, and on normal completion runs the tool
// pipeline over the result. It blocks until the turn settles.
//
// Blank input, an in-flight generation, or a missing engine make it a
// silent no-op; concurrent submissions are dropped, never queued.
func (c *Chat) Submit(ctx context.Context, userText string) {
	userText = strings.TrimSpace(userText)

	c.mu.Lock()
	if userText == "" || c.generating || c.engine == nil {
		c.mu.Unlock()
		return
	}

	// Rebuild history around a single system message: older system
	// messages and tool messages stay visible locally but are never sent
	// upstream.
	rebuilt := []Message{{Role: "system", Content: c.effectiveSystemPrompt()}}
	for _, m := range c.messages {
		if m.Role == "system" || m.Role == "tool" {
			continue
		}
		rebuilt = append(rebuilt, m)
	}
	rebuilt = append(rebuilt, Message{Role: "user", Content: userText})
	c.messages = rebuilt
	c.input = ""
	c.generating = true

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	defer cancel()

	req := c.completionRequest()
	engine := c.engine

	// Placeholder the stream appends into.
	c.messages = append(c.messages, Message{Role: "assistant"})
	placeholder := len(c.messages) - 1
	c.persist()
	c.mu.Unlock()

	err := engine.Complete(ctx, req, func(chunk CompletionChunk) error {
		// Cancellation is polled per chunk; the request itself is not
		// torn down, only local consumption stops.
		if ctx.Err() != nil {
			return context.Canceled
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		// The lock is free between chunks, so Clear can reset the log
		// mid-stream. If the placeholder is gone, abandon the turn.
		if !c.placeholderAt(placeholder) {
			return context.Canceled
		}
		if chunk.Content != "" {
			c.messages[placeholder] = Message{
				Role:    "assistant",
				Content: c.messages[placeholder].Content + chunk.Content,
			}
		}
		if chunk.Usage != nil {
			u := *chunk.Usage
			c.usage = &u
		}
		return nil
	})

	aborted := ctx.Err() != nil || errors.Is(err, context.Canceled)

	switch {
	case aborted:
		// Roll back the placeholder entirely; the user message stays.
		c.mu.Lock()
		if c.placeholderAt(placeholder) {
			c.messages = append(c.messages[:placeholder], c.messages[placeholder+1:]...)
		}
		c.mu.Unlock()

	case err != nil:
		// Transport fault: keep whatever partial content arrived.
		if config.DebugLog != nil {
			config.DebugLog.Printf("[chat] generation failed: %v", err)
		}

	default:
		c.mu.Lock()
		var content string
		var enabled bool
		if c.placeholderAt(placeholder) {
			content = c.messages[placeholder].Content
			enabled = c.enableTools
		}
		c.mu.Unlock()

		if enabled && content != "" {
			processed := c.processToolCalls(ctx, content)
			if processed != content {
				c.mu.Lock()
				if c.placeholderAt(placeholder) {
					c.messages[placeholder] = Message{Role: "assistant", Content: processed}
				}
				c.mu.Unlock()
			}
		}
	}

	c.mu.Lock()
	c.generating = false
	c.cancel = nil
	c.persist()
	c.mu.Unlock()
}

// completionRequest snapshots the wire payload for one request.
// Callers must hold c.mu. Tool-role messages were already excluded by the
// history rebuild in Submit.
func (c *Chat) completionRequest() CompletionRequest {
	messages := make([]Message, len(c.messages))
	copy(messages, c.messages)

	req := CompletionRequest{
		Model:            c.model,
		Messages:         messages,
		Temperature:      c.temperature,
		MaxTokens:        c.maxTokens,
		TopP:             c.topP,
		FrequencyPenalty: c.frequencyPenalty,
		PresencePenalty:  c.presencePenalty,
		Stop:             append([]string(nil), c.stopSequences...),
		Seed:             c.seed,
		Logprobs:         c.logprobs,
	}
	if c.enableTools {
		req.Tools = c.registry.Schemas()
	}
	return req
}

// Stop fires the active cancellation, if any. No effect when idle.
func (c *Chat) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Clear resets the log to a single system message carrying the current
// effective system prompt and empties the usage record. Generation
// parameters, model choice and character selection are untouched.
func (c *Chat) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = []Message{{Role: "system", Content: c.effectiveSystemPrompt()}}
	c.usage = nil
	c.input = ""
	c.persist()
}

// placeholderAt reports whether index i still holds the streaming
// assistant placeholder of the current turn. Callers must hold c.mu.
func (c *Chat) placeholderAt(i int) bool {
	return i < len(c.messages) && c.messages[i].Role == "assistant"
}

// persist writes the session through to the store, best-effort.
// Callers must hold c.mu.
func (c *Chat) persist() {
	if c.store == nil {
		return
	}
	if err := c.store.Save(c.session()); err != nil && config.DebugLog != nil {
		config.DebugLog.Printf("[chat] session save failed: %v", err)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SetInput updates the draft input buffer.
func (c *Chat) SetInput(input string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.input = input
	c.persist()
}

// SetModel changes the model used for subsequent requests. The engine must
// be re-loaded by the caller for engines that initialize per model.
func (c *Chat) SetModel(model string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.model = model
	c.ready = false
	c.persist()
}

// SetSystemPrompt updates the free-text system prompt.
func (c *Chat) SetSystemPrompt(prompt string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.systemPrompt = prompt
	c.persist()
}

// SetTemperature clamps to [0, 2].
func (c *Chat) SetTemperature(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.temperature = clamp(v, 0, 2)
	c.persist()
}

// SetMaxTokens sets the completion budget; non-positive values are ignored.
func (c *Chat) SetMaxTokens(n int) {
	if n <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.maxTokens = n
	c.persist()
}

// SetTopP clamps to [0, 1].
func (c *Chat) SetTopP(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.topP = clamp(v, 0, 1)
	c.persist()
}

// SetFrequencyPenalty clamps to [-2, 2].
func (c *Chat) SetFrequencyPenalty(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frequencyPenalty = clamp(v, -2, 2)
	c.persist()
}

// SetPresencePenalty clamps to [-2, 2].
func (c *Chat) SetPresencePenalty(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.presencePenalty = clamp(v, -2, 2)
	c.persist()
}

// SetStopSequences replaces the stop list.
func (c *Chat) SetStopSequences(stop []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopSequences = append([]string(nil), stop...)
	c.persist()
}

// SetSeed sets the sampling seed.
func (c *Chat) SetSeed(seed int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seed = seed
	c.persist()
}

// SetLogprobs clamps to [0, 5].
func (c *Chat) SetLogprobs(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logprobs = int(clamp(float64(n), 0, 5))
	c.persist()
}

// SetEnableTools toggles the tool pipeline for subsequent turns.
func (c *Chat) SetEnableTools(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enableTools = enabled
	c.persist()
}

// SelectCharacter selects a persona by built-in name or custom id; the
// empty string deselects. Takes effect on the next turn only.
func (c *Chat) SelectCharacter(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectedCharacter = id
	c.persist()
}

// AddCustomCharacter stores a new custom persona and returns its id.
func (c *Chat) AddCustomCharacter(ch character.Character) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch.ID = uuid.New().String()
	c.customCharacters = append(c.customCharacters, ch)
	c.persist()
	return ch.ID
}

// UpdateCustomCharacter replaces the persona with the given id, keeping
// the id itself stable. Unknown ids are ignored.
func (c *Chat) UpdateCustomCharacter(id string, ch character.Character) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.customCharacters {
		if c.customCharacters[i].ID == id {
			ch.ID = id
			c.customCharacters[i] = ch
			c.persist()
			return
		}
	}
}

// DeleteCustomCharacter removes the persona with the given id.
func (c *Chat) DeleteCustomCharacter(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	filtered := c.customCharacters[:0]
	for _, custom := range c.customCharacters {
		if custom.ID != id {
			filtered = append(filtered, custom)
		}
	}
	c.customCharacters = filtered
	c.persist()
}

// Messages returns a copy of the conversation log.
func (c *Chat) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	messages := make([]Message, len(c.messages))
	copy(messages, c.messages)
	return messages
}

// Rehydrated reports whether state was restored from a persisted session.
// Callers use it to avoid stomping restored values with config defaults.
func (c *Chat) Rehydrated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rehydrated
}

// Generating reports whether a turn is in flight.
func (c *Chat) Generating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generating
}

// Ready reports whether an engine is attached and loaded.
func (c *Chat) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ready
}

// Vendor returns the engine's vendor string, empty before load.
func (c *Chat) Vendor() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vendor
}

// LoadProgress returns the last reported engine load progress.
func (c *Chat) LoadProgress() Progress {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.progress
}

// Usage returns the last-seen token usage, nil if none yet.
func (c *Chat) Usage() *Usage {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.usage == nil {
		return nil
	}
	u := *c.usage
	return &u
}

// Input returns the draft input buffer.
func (c *Chat) Input() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input
}

// Model returns the current model identifier.
func (c *Chat) Model() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.model
}

// ToolsEnabled reports whether the tool pipeline runs on completed turns.
func (c *Chat) ToolsEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enableTools
}

// SelectedCharacter returns the selected persona id or name, empty if none.
func (c *Chat) SelectedCharacter() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedCharacter
}

// CustomCharacters returns a copy of the user-defined personas.
func (c *Chat) CustomCharacters() []character.Character {
	c.mu.Lock()
	defer c.mu.Unlock()
	customs := make([]character.Character, len(c.customCharacters))
	copy(customs, c.customCharacters)
	return customs
}
