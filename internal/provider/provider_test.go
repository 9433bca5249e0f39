package provider

import (
	"errors"
	"strings"
	"testing"

	"github.com/tidechat/tidechat/internal/config"
)

func TestCheckCredential(t *testing.T) {
	tests := []struct {
		name    string
		apiKey  string
		wantErr bool
	}{
		{"empty key", "", true},
		{"placeholder key", "your_deepseek_api_key_here", true},
		{"generic placeholder", "your_openai_api_key_here", true},
		{"real key", "sk-abc123", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := &Profile{Key: "deepseek", APIKey: tc.apiKey}
			err := p.CheckCredential()
			if tc.wantErr && !errors.Is(err, ErrNotConfigured) {
				t.Errorf("CheckCredential() = %v, want ErrNotConfigured", err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("CheckCredential() = %v, want nil", err)
			}
		})
	}
}

func TestCheckCredential_NeverLeaksKey(t *testing.T) {
	p := &Profile{Key: "openai", APIKey: "your_secret_value_here"}
	err := p.CheckCredential()
	if err == nil {
		t.Fatal("expected error for placeholder key")
	}
	if strings.Contains(err.Error(), "your_secret_value_here") {
		t.Errorf("error message leaks the credential: %q", err)
	}
	if !strings.Contains(err.Error(), "openai") {
		t.Errorf("error message should name the model key: %q", err)
	}
}

func TestComposePrompt(t *testing.T) {
	got := ComposePrompt("You are helpful.", "What is 2+2?")
	want := "You are helpful.\n\nUser: What is 2+2?\n\nAssistant:"
	if got != want {
		t.Errorf("ComposePrompt() = %q, want %q", got, want)
	}
}

func TestRegistry_Resolve(t *testing.T) {
	r := LoadProfiles(&config.Config{})

	for _, key := range []string{"deepseek", "openai", "anthropic", "general", "creative", "technical"} {
		p, err := r.Resolve(key)
		if err != nil {
			t.Errorf("Resolve(%q) error: %v", key, err)
			continue
		}
		if p.Key != key {
			t.Errorf("Resolve(%q).Key = %q", key, p.Key)
		}
	}

	_, err := r.Resolve("gpt-5")
	if !errors.Is(err, ErrUnknownModel) {
		t.Errorf("Resolve(unknown) = %v, want ErrUnknownModel", err)
	}
}

func TestRegistry_PersonasShareDeepSeekUpstream(t *testing.T) {
	r := LoadProfiles(&config.Config{})

	ds, _ := r.Resolve("deepseek")
	for _, key := range []string{"general", "creative", "technical"} {
		p, err := r.Resolve(key)
		if err != nil {
			t.Fatalf("Resolve(%q) error: %v", key, err)
		}
		if p.URL != ds.URL || p.Model != ds.Model {
			t.Errorf("%q upstream = %s/%s, want to match deepseek %s/%s",
				key, p.URL, p.Model, ds.URL, ds.Model)
		}
	}
}

func TestLoadProfiles_EnvOverrides(t *testing.T) {
	t.Setenv("DEEPSEEK_API_URL", "http://localhost:9999/v1/chat")
	t.Setenv("DEEPSEEK_API_KEY", "sk-env")
	t.Setenv("DEEPSEEK_MODEL", "deepseek-reasoner")

	r := LoadProfiles(&config.Config{})
	p, err := r.Resolve("deepseek")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if p.URL != "http://localhost:9999/v1/chat" {
		t.Errorf("URL = %q, want env override", p.URL)
	}
	if p.APIKey != "sk-env" {
		t.Errorf("APIKey = %q, want env value", p.APIKey)
	}
	if p.Model != "deepseek-reasoner" {
		t.Errorf("Model = %q, want env override", p.Model)
	}
}

func TestLoadProfiles_FileOverrides(t *testing.T) {
	cfg := &config.Config{
		Providers: map[string]config.ProviderFile{
			"openai": {URL: "http://file.example/v1", Model: "gpt-4o-mini"},
		},
	}

	r := LoadProfiles(cfg)
	p, err := r.Resolve("openai")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if p.URL != "http://file.example/v1" {
		t.Errorf("URL = %q, want file override", p.URL)
	}
	if p.Model != "gpt-4o-mini" {
		t.Errorf("Model = %q, want file override", p.Model)
	}
}

func TestRegistry_Available(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "sk-real")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	r := LoadProfiles(&config.Config{})

	// Mock mode lists everything regardless of credentials.
	if got := r.Available(true); len(got) != 6 {
		t.Errorf("Available(mock) = %v, want all 6 keys", got)
	}

	// Outside mock mode only configured keys appear. The deepseek credential
	// also unlocks the personas that share its upstream.
	got := r.Available(false)
	want := map[string]bool{"deepseek": true, "general": true, "creative": true, "technical": true}
	for _, key := range got {
		if !want[key] {
			t.Errorf("Available() includes %q without a credential", key)
		}
	}
	if len(got) != len(want) {
		t.Errorf("Available() = %v, want keys %v", got, want)
	}
}

func TestRegistry_AvailableEmptyNotNil(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	r := LoadProfiles(&config.Config{})
	got := r.Available(false)
	if got == nil {
		t.Error("Available() must return an empty slice, not nil")
	}
}
