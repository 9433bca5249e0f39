package provider

import (
	"fmt"
	"os"

	"github.com/tidechat/tidechat/internal/config"
)

// profileKeys is the fixed set of model keys, in listing order.
// general/creative/technical are personas layered over the deepseek upstream.
var profileKeys = []string{"deepseek", "openai", "anthropic", "general", "creative", "technical"}

// builtin default endpoints and model ids per provider.
type providerDefaults struct {
	url    string
	model  string
	envVar string // env var prefix, e.g. "DEEPSEEK"
	family Family
}

var defaults = map[string]providerDefaults{
	"deepseek": {
		url:    "https://api.deepseek.com/chat/completions",
		model:  "deepseek-chat",
		envVar: "DEEPSEEK",
		family: OpenAICompatible{},
	},
	"openai": {
		url:    "https://api.openai.com/v1/chat/completions",
		model:  "gpt-3.5-turbo",
		envVar: "OPENAI",
		family: OpenAICompatible{},
	},
	"anthropic": {
		url:    "https://api.anthropic.com/v1/messages",
		model:  "claude-3-sonnet-20240229",
		envVar: "ANTHROPIC",
		family: Anthropic{},
	},
}

// Registry resolves model keys to immutable profiles and exposes the
// current persona prompts.
type Registry struct {
	profiles    map[string]*Profile
	filePrompts map[string]string
}

// LoadProfiles builds the registry once at startup. Endpoint URL and model
// id resolve env var → config file → builtin default; API keys come from
// env vars only.
func LoadProfiles(cfg *config.Config) *Registry {
	r := &Registry{
		profiles:    make(map[string]*Profile, len(profileKeys)),
		filePrompts: cfg.Prompts,
	}

	build := func(key, upstream string) *Profile {
		def := defaults[upstream]
		var file config.ProviderFile
		if cfg.Providers != nil {
			file = cfg.Providers[upstream]
		}
		return &Profile{
			Key:    key,
			URL:    firstNonEmpty(os.Getenv(def.envVar+"_API_URL"), file.URL, def.url),
			APIKey: os.Getenv(def.envVar + "_API_KEY"),
			Model:  firstNonEmpty(os.Getenv(def.envVar+"_MODEL"), file.Model, def.model),
			Family: def.family,
		}
	}

	for _, key := range profileKeys {
		upstream := key
		if _, ok := defaults[key]; !ok {
			upstream = "deepseek" // persona aliases share the deepseek upstream
		}
		r.profiles[key] = build(key, upstream)
	}
	return r
}

// Resolve returns the profile for a model key or ErrUnknownModel.
func (r *Registry) Resolve(key string) (*Profile, error) {
	if p, ok := r.profiles[key]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownModel, key)
}

// Keys returns all model keys in listing order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(profileKeys))
	copy(keys, profileKeys)
	return keys
}

// Available returns the model keys usable right now. In mock mode every key
// is listed; otherwise only keys whose credential passes validation.
func (r *Registry) Available(mockMode bool) []string {
	if mockMode {
		return r.Keys()
	}
	var keys []string
	for _, key := range profileKeys {
		if r.profiles[key].CheckCredential() == nil {
			keys = append(keys, key)
		}
	}
	if keys == nil {
		keys = []string{}
	}
	return keys
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
