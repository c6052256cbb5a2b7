package llmprovider_test

import (
	"testing"

	"habit-streak-bot/config"
	"habit-streak-bot/pkg/llmprovider"
)

func TestInitializeProviders(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *config.LLMConfig
		wantNames []string
		wantSkips int
		wantErr   bool
	}{
		{
			name: "sorted by priority",
			cfg: &config.LLMConfig{Providers: []config.ProviderConfig{
				{Name: "gemini", Enabled: true, Priority: 10, APIKey: "k", Model: "gemini-2.5-flash"},
				{Name: "deepseek", Enabled: true, Priority: 1, APIKey: "k", Model: "deepseek-chat"},
				{Name: "ollama", Enabled: true, Priority: 5, BaseURL: "http://localhost:11434", Model: "llava"},
			}},
			wantNames: []string{"deepseek", "ollama", "gemini"},
		},
		{
			name:    "no providers",
			cfg:     &config.LLMConfig{},
			wantErr: true,
		},
		{
			name: "all providers disabled",
			cfg: &config.LLMConfig{Providers: []config.ProviderConfig{
				{Name: "gemini", Enabled: false, Priority: 1, APIKey: "k", Model: "m"},
			}},
			wantErr: true,
		},
		{
			name: "missing API key only",
			cfg: &config.LLMConfig{Providers: []config.ProviderConfig{
				{Name: "gemini", Enabled: true, Priority: 1, Model: "m"},
			}},
			wantErr: true,
		},
		{
			name: "broken provider skipped",
			cfg: &config.LLMConfig{Providers: []config.ProviderConfig{
				{Name: "unknown", Enabled: true, Priority: 1, APIKey: "k", Model: "m"},
				{Name: "openai", Enabled: true, Priority: 2, APIKey: "k", Model: "gpt-4o-mini"},
				{Name: "qwen", Enabled: true, Priority: 3, APIKey: "k", Model: "qwen-plus"},
			}},
			wantNames: []string{"openai", "qwen"},
			wantSkips: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			providers, skipped, err := llmprovider.InitializeProviders(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("InitializeProviders() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(skipped) != tt.wantSkips {
				t.Errorf("skipped = %d, want %d", len(skipped), tt.wantSkips)
			}
			if len(providers) != len(tt.wantNames) {
				t.Fatalf("got %d providers, want %d", len(providers), len(tt.wantNames))
			}
			for i, p := range providers {
				if p.Name() != tt.wantNames[i] {
					t.Errorf("providers[%d] = %s, want %s", i, p.Name(), tt.wantNames[i])
				}
			}
		})
	}
}
