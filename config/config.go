package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type SystemConfig struct {
	DataDirectory string `toml:"data_directory"`
}

type EngineConfig struct {
	Kind         string `toml:"kind"`
	Host         string `toml:"host"`
	APIKey       string `toml:"api_key,omitempty"`
	DefaultModel string `toml:"default_model"`
}

type UserConfig struct {
	Engine              EngineConfig `toml:"engine"`
	DefaultSystemPrompt string       `toml:"default_system_prompt,omitempty"`
	ToolsEnabled        bool         `toml:"tools_enabled"`
}

type Config struct {
	DataDirectory       string
	EngineKind          string
	EngineHost          string
	EngineAPIKey        string
	DefaultModel        string
	DefaultSystemPrompt string
	ToolsEnabled        bool
}

var Debug = false
var DebugLog *log.Logger

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

func (c *Config) applyEnvOverrides() {
	if kind := os.Getenv("LLMCHAT_ENGINE"); kind != "" {
		c.EngineKind = kind
	}
	if host := os.Getenv("LLMCHAT_HOST"); host != "" {
		c.EngineHost = host
	}
	if key := os.Getenv("LLMCHAT_API_KEY"); key != "" {
		c.EngineAPIKey = key
	}
	if model := os.Getenv("LLMCHAT_MODEL"); model != "" {
		c.DefaultModel = model
	}
	if dataDir := os.Getenv("LLMCHAT_DATA_DIR"); dataDir != "" {
		c.DataDirectory = dataDir
	}
}

func CheckDebug() bool {
	debug := os.Getenv("LLMCHAT_DEBUG")
	return debug == "true" || debug == "1"
}

func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(dataDir, "debug.log")

	// 0600: debug output may contain message content
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (LLMCHAT_DEBUG=%s) ===", os.Getenv("LLMCHAT_DEBUG"))
	DebugLog.Printf("Log path: %s", logPath)
}

func Load() (*Config, error) {
	cfg := &Config{
		DataDirectory: "~/.local/share/llmchat",
		EngineKind:    "ollama",
		EngineHost:    "http://localhost:11434",
		DefaultModel:  "llama3.2:latest",
		ToolsEnabled:  true,
	}

	systemCfg, err := LoadSystemConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load system config: %w", err)
	}
	cfg.DataDirectory = systemCfg.DataDirectory

	dataDir := cfg.DataDir()
	userCfg, err := LoadUserConfig(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	cfg.EngineKind = userCfg.Engine.Kind
	cfg.EngineHost = userCfg.Engine.Host
	cfg.EngineAPIKey = userCfg.Engine.APIKey
	cfg.DefaultModel = userCfg.Engine.DefaultModel
	cfg.DefaultSystemPrompt = userCfg.DefaultSystemPrompt
	cfg.ToolsEnabled = userCfg.ToolsEnabled

	cfg.applyEnvOverrides()

	dataDir = cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	if err := EnsureDataDirPermissions(dataDir); err != nil {
		return nil, fmt.Errorf("failed to set data directory permissions: %w", err)
	}

	return cfg, nil
}
