package config

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	if cfg.Port != "3000" {
		t.Errorf("expected default port 3000, got %q", cfg.Port)
	}
	if cfg.ChatMode != ModeAgentic {
		t.Errorf("expected agentic mode, got %q", cfg.ChatMode)
	}
	if cfg.MaxIterations != 5 {
		t.Errorf("expected 5 iterations, got %d", cfg.MaxIterations)
	}
	if cfg.HistoryWindow != 4 {
		t.Errorf("expected history window 4, got %d", cfg.HistoryWindow)
	}
	if cfg.MaxSessions != 100 {
		t.Errorf("expected 100 sessions, got %d", cfg.MaxSessions)
	}
	if cfg.SearchLimit != 5 || cfg.ContextCharLimit != 2000 || cfg.SourcesPerResult != 3 {
		t.Errorf("unexpected search limits: %+v", cfg)
	}
	if cfg.MeiliIndex != "near-docs" {
		t.Errorf("expected near-docs index, got %q", cfg.MeiliIndex)
	}
}

func TestLoadConfigModeFallback(t *testing.T) {
	t.Setenv("CHAT_MODE", "unsupported")
	if cfg := LoadConfig(); cfg.ChatMode != ModeAgentic {
		t.Errorf("unknown mode should fall back to agentic, got %q", cfg.ChatMode)
	}

	t.Setenv("CHAT_MODE", "RETRIEVAL")
	if cfg := LoadConfig(); cfg.ChatMode != ModeRetrieval {
		t.Errorf("expected retrieval mode, got %q", cfg.ChatMode)
	}
}
