package llm

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewClient(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk-test")

	tests := []struct {
		name     string
		provider string
		model    string
		baseURL  string
		check    func(t *testing.T, c Client)
	}{
		{
			name: "empty provider uses ollama defaults",
			check: func(t *testing.T, c Client) {
				oc, ok := c.(*OllamaClient)
				if !ok {
					t.Fatalf("expected *OllamaClient, got %T", c)
				}
				if oc.baseURL != defaultOllamaBaseURL || oc.model != defaultOllamaModel {
					t.Errorf("got %s %s", oc.baseURL, oc.model)
				}
			},
		},
		{
			name: "ollama with custom server", provider: "Ollama", model: "qwen2.5", baseURL: "http://gpu:11434",
			check: func(t *testing.T, c Client) {
				oc := c.(*OllamaClient)
				if oc.baseURL != "http://gpu:11434" || oc.model != "qwen2.5" {
					t.Errorf("got %s %s", oc.baseURL, oc.model)
				}
			},
		},
		{
			name: "lm studio alias", provider: "lm-studio", model: "mistral",
			check: func(t *testing.T, c Client) {
				lc, ok := c.(*LMStudioClient)
				if !ok {
					t.Fatalf("expected *LMStudioClient, got %T", c)
				}
				if lc.baseURL != defaultLMStudioBaseURL || lc.model != "mistral" {
					t.Errorf("got %s %s", lc.baseURL, lc.model)
				}
			},
		},
		{
			name: "groq defaults", provider: "groq",
			check: func(t *testing.T, c Client) {
				gc, ok := c.(*GroqClient)
				if !ok {
					t.Fatalf("expected *GroqClient, got %T", c)
				}
				if gc.baseURL != defaultGroqBaseURL || gc.model != defaultGroqModel {
					t.Errorf("got %s %s", gc.baseURL, gc.model)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(tt.provider, tt.model, tt.baseURL)
			if err != nil {
				t.Fatalf("NewClient failed: %v", err)
			}
			tt.check(t, c)
		})
	}
}

func TestNewClient_Errors(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")

	tests := []struct {
		name     string
		provider string
		model    string
		want     string
	}{
		{"unknown provider", "watsonx", "", "unsupported LLM provider"},
		{"lm studio without model", "lmstudio", "", "model is required"},
		{"groq without key", "groq", "", "GROQ_API_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.provider, tt.model, "")
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadGitHubToken(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("GITHUB_TOKEN", "")

	if _, err := LoadGitHubToken(); err == nil {
		t.Fatal("expected an error without any token source")
	}

	path := filepath.Join(dir, "github-copilot", "hosts.json")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`{"github.com":{"user":"avv","oauth_token":"gho_file"}}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if got, err := LoadGitHubToken(); err != nil || got != "gho_file" {
		t.Errorf("from hosts.json: %q, %v", got, err)
	}

	t.Setenv("GITHUB_TOKEN", "gho_env")
	if got, err := LoadGitHubToken(); err != nil || got != "gho_env" {
		t.Errorf("from env: %q, %v", got, err)
	}
}
