package provider

import "os"

// defaultPrompts are the built-in persona system prompts, used when neither
// an env var nor the config file overrides them.
var defaultPrompts = map[string]string{
	"deepseek":  "You are a helpful AI assistant specializing in deep reasoning and analytical thinking.",
	"creative":  "You are a creative writing assistant. Be imaginative, expressive, and engaging.",
	"technical": "You are a technical expert. Provide clear, practical solutions with code examples.",
	"general":   "You are a helpful, friendly AI assistant. Provide balanced, informative responses.",
}

// promptEnvVars maps persona keys to their override env vars.
var promptEnvVars = map[string]string{
	"deepseek":  "DEEPSEEK_PROMPT",
	"creative":  "CREATIVE_PROMPT",
	"technical": "TECHNICAL_PROMPT",
	"general":   "GENERAL_PROMPT",
}

// CurrentPrompts recomputes the persona prompts from the current environment.
// A non-empty env var wins over the config file value wins over the builtin
// default. Deliberately re-read on every call so prompt tweaks take effect
// without a restart; endpoint and credential config stay load-once.
func (r *Registry) CurrentPrompts() map[string]string {
	prompts := make(map[string]string, len(defaultPrompts))
	for key, def := range defaultPrompts {
		prompts[key] = def
		if v := r.filePrompts[key]; v != "" {
			prompts[key] = v
		}
		if v := os.Getenv(promptEnvVars[key]); v != "" {
			prompts[key] = v
		}
	}
	return prompts
}

// SystemPrompt returns the persona prompt for a model key, falling back to
// the general persona for keys without one (openai, anthropic).
func (r *Registry) SystemPrompt(key string) string {
	prompts := r.CurrentPrompts()
	if p, ok := prompts[key]; ok {
		return p
	}
	return prompts["general"]
}
