package config

func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		DataDirectory: "~/.local/share/llmchat",
	}
}

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Engine: EngineConfig{
			Kind:         "ollama",
			Host:         "http://localhost:11434",
			DefaultModel: "llama3.2:latest",
		},
		ToolsEnabled: true,
	}
}

func GenerateSystemConfigTemplate() string {
	return `# llmchat System Configuration
# Location: ~/.config/llmchat/settings.toml
# This file uses TOML format: https://toml.io

# Directory where the session database and user config are stored
data_directory = "~/.local/share/llmchat"
`
}

func GenerateUserConfigTemplate() string {
	return `# llmchat User Configuration
# Location: <data_directory>/config.toml
# This file uses TOML format: https://toml.io

[engine]
# Backend kind: "ollama", "openai" or "anthropic"
kind = "ollama"

# Server URL for the chosen backend
host = "http://localhost:11434"

# API key for hosted backends (leave empty for local servers)
api_key = ""

# Default model to use when starting a new session
default_model = "llama3.2:latest"

# Default system prompt for new sessions (optional)
# Example: "You are a helpful coding assistant."
default_system_prompt = ""

# Enable built-in tool calling (weather, time, calculator, search)
tools_enabled = true
`
}
