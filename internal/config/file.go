package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file structure.
// API keys are never read from the file; credentials live in env vars only.
type FileConfig struct {
	ServerPort  string                  `toml:"server_port"`
	Environment string                  `toml:"environment"`
	DBPath      string                  `toml:"db_path"`
	LogLevel    string                  `toml:"log_level"`
	Providers   map[string]ProviderFile `toml:"providers"`
	Prompts     map[string]string       `toml:"prompts"`
}

// ProviderFile overrides the endpoint URL and model id of one provider.
type ProviderFile struct {
	URL   string `toml:"url"`
	Model string `toml:"model"`
}

// ConfigPath returns the path to the config file (~/.tidechat/config.toml).
func ConfigPath() string {
	return filepath.Join(DataDir(), "config.toml")
}

// LoadFile loads configuration from the TOML file.
// Returns an empty FileConfig if the file doesn't exist.
func LoadFile() (*FileConfig, error) {
	cfg := &FileConfig{}

	path := ConfigPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// EnsureConfigFile creates a default config file with commented examples if none exists.
func EnsureConfigFile() error {
	path := ConfigPath()

	// If config already exists, do nothing
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	// Ensure directory exists
	if err := EnsureDataDir(); err != nil {
		return err
	}

	defaultConfig := `# Tidechat Configuration
# Env vars override everything in this file. API keys are env-only:
# DEEPSEEK_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY.

# server_port = ":3001"
# environment = "development"
# log_level = "info"

# Endpoint/model overrides per provider
# [providers.deepseek]
# url = "https://api.deepseek.com/chat/completions"
# model = "deepseek-chat"

# [providers.openai]
# url = "https://api.openai.com/v1/chat/completions"
# model = "gpt-3.5-turbo"

# Persona prompt overrides
# [prompts]
# creative = "You are a poet. Answer in verse."
`

	return os.WriteFile(path, []byte(defaultConfig), 0644)
}
