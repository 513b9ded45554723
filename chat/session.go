package chat

import "llmchat/character"

// Session is the durable projection of conversation and configuration
// state. Engine handle, cancellation state, load progress and usage are
// deliberately excluded; they are re-defaulted on load.
type Session struct {
	Messages          []Message             `json:"messages"`
	Input             string                `json:"input"`
	Model             string                `json:"model"`
	SystemPrompt      string                `json:"systemPrompt"`
	Temperature       float64               `json:"temperature"`
	MaxTokens         int                   `json:"maxTokens"`
	TopP              float64               `json:"topP"`
	FrequencyPenalty  float64               `json:"frequencyPenalty"`
	PresencePenalty   float64               `json:"presencePenalty"`
	StopSequences     []string              `json:"stopSequences"`
	Seed              int                   `json:"seed"`
	Logprobs          int                   `json:"logprobs"`
	EnableTools       bool                  `json:"enableTools"`
	SelectedCharacter string                `json:"selectedCharacter"`
	CustomCharacters  []character.Character `json:"customCharacters"`
}

// session builds the durable projection from current state.
// Callers must hold c.mu.
func (c *Chat) session() *Session {
	messages := make([]Message, len(c.messages))
	copy(messages, c.messages)
	customs := make([]character.Character, len(c.customCharacters))
	copy(customs, c.customCharacters)

	return &Session{
		Messages:          messages,
		Input:             c.input,
		Model:             c.model,
		SystemPrompt:      c.systemPrompt,
		Temperature:       c.temperature,
		MaxTokens:         c.maxTokens,
		TopP:              c.topP,
		FrequencyPenalty:  c.frequencyPenalty,
		PresencePenalty:   c.presencePenalty,
		StopSequences:     append([]string(nil), c.stopSequences...),
		Seed:              c.seed,
		Logprobs:          c.logprobs,
		EnableTools:       c.enableTools,
		SelectedCharacter: c.selectedCharacter,
		CustomCharacters:  customs,
	}
}

// applySession overwrites state from a persisted session.
// Callers must hold c.mu.
func (c *Chat) applySession(s *Session) {
	c.messages = s.Messages
	c.input = s.Input
	c.model = s.Model
	c.systemPrompt = s.SystemPrompt
	c.temperature = s.Temperature
	c.maxTokens = s.MaxTokens
	c.topP = s.TopP
	c.frequencyPenalty = s.FrequencyPenalty
	c.presencePenalty = s.PresencePenalty
	c.stopSequences = s.StopSequences
	c.seed = s.Seed
	c.logprobs = s.Logprobs
	c.enableTools = s.EnableTools
	c.selectedCharacter = s.SelectedCharacter
	c.customCharacters = s.CustomCharacters
}
