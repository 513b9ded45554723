package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"llmchat/chat"
	"llmchat/config"
	"llmchat/engine"
	"llmchat/storage"
	"llmchat/tools"
	"llmchat/ui"
)

const Version = "v0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize debug logging after config is loaded
	config.InitDebugLog(cfg.DataDir())

	kv, err := storage.OpenKV(cfg.DataDir())
	if err != nil {
		fmt.Printf("Failed to open session database: %v\n", err)
		os.Exit(1)
	}
	defer kv.Close()

	registry := tools.NewRegistry()
	conversation := chat.New(registry, storage.NewSessionStore(kv))

	if conversation.Model() == "" || conversation.Model() == chat.DefaultModel {
		if cfg.DefaultModel != "" {
			conversation.SetModel(cfg.DefaultModel)
		}
	}
	if cfg.DefaultSystemPrompt != "" && conversation.CurrentSystemPrompt() == chat.DefaultSystemPrompt {
		conversation.SetSystemPrompt(cfg.DefaultSystemPrompt)
	}
	// A persisted session carries its own tool toggle; the config default
	// only seeds a fresh install.
	if !conversation.Rehydrated() {
		conversation.SetEnableTools(cfg.ToolsEnabled)
	}

	backend, err := newEngine(cfg)
	if err != nil {
		fmt.Printf("Failed to initialize engine: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(
		ui.NewAppView(conversation, backend),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running llmchat: %v\n", err)
		os.Exit(1)
	}
}

func newEngine(cfg *config.Config) (chat.Engine, error) {
	switch cfg.EngineKind {
	case "", "ollama":
		return engine.NewOllamaEngine(cfg.EngineHost)
	case "openai":
		return engine.NewOpenAIEngine(cfg.EngineHost, cfg.EngineAPIKey)
	case "anthropic":
		return engine.NewAnthropicEngine(cfg.EngineHost, cfg.EngineAPIKey)
	default:
		return nil, fmt.Errorf("unknown engine kind %q", cfg.EngineKind)
	}
}
