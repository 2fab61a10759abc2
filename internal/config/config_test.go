package config

import (
	"testing"
	"time"
)

// clearEnvVars はテスト対象の環境変数を空にし、ホスト環境の値を持ち込まないようにする。
func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONGRESS_API_BASE_URL", "CONGRESS_API_KEY", "CONGRESS_SESSION",
		"CONGRESS_LIST_TIMEOUT", "CONGRESS_DETAIL_TIMEOUT", "CONGRESS_REQUESTS_PER_HOUR",
		"SUMMARY_PROVIDER", "SUMMARY_TIMEOUT", "HUGGINGFACE_API_KEY", "HUGGINGFACE_API_URL",
		"GEMINI_API_KEY", "GEMINI_MODEL", "PORT", "DEBUG", "CORS_ALLOWED_ORIGIN",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_NoEnvVars_ReturnsDefaults(t *testing.T) {
	clearEnvVars(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.CongressBaseURL != "https://api.congress.gov/v3" {
		t.Errorf("CongressBaseURL = %q, want %q", cfg.CongressBaseURL, "https://api.congress.gov/v3")
	}
	if cfg.CongressSession != 118 {
		t.Errorf("CongressSession = %d, want %d", cfg.CongressSession, 118)
	}
	if cfg.CongressListTimeout != 10*time.Second {
		t.Errorf("CongressListTimeout = %v, want %v", cfg.CongressListTimeout, 10*time.Second)
	}
	if cfg.CongressDetailTimeout != 5*time.Second {
		t.Errorf("CongressDetailTimeout = %v, want %v", cfg.CongressDetailTimeout, 5*time.Second)
	}
	if cfg.CongressRequestsPerHour != 5000 {
		t.Errorf("CongressRequestsPerHour = %d, want %d", cfg.CongressRequestsPerHour, 5000)
	}
	if cfg.SummaryProvider != ProviderHuggingFace {
		t.Errorf("SummaryProvider = %q, want %q", cfg.SummaryProvider, ProviderHuggingFace)
	}
	if cfg.SummaryTimeout != 15*time.Second {
		t.Errorf("SummaryTimeout = %v, want %v", cfg.SummaryTimeout, 15*time.Second)
	}
	if cfg.ServerPort != "5000" {
		t.Errorf("ServerPort = %q, want %q", cfg.ServerPort, "5000")
	}
	if cfg.Debug {
		t.Error("Debug = true, want false")
	}
	if cfg.APIConfigured() {
		t.Error("APIConfigured() = true, want false")
	}
	if cfg.LLMConfigured() {
		t.Error("LLMConfigured() = true, want false")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("CONGRESS_API_BASE_URL", "https://example.test/v3/")
	t.Setenv("CONGRESS_API_KEY", "congress-key")
	t.Setenv("CONGRESS_SESSION", "119")
	t.Setenv("CONGRESS_LIST_TIMEOUT", "3s")
	t.Setenv("HUGGINGFACE_API_KEY", "hf-key")
	t.Setenv("PORT", "8080")
	t.Setenv("DEBUG", "True")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// 末尾のスラッシュは除去される
	if cfg.CongressBaseURL != "https://example.test/v3" {
		t.Errorf("CongressBaseURL = %q, want %q", cfg.CongressBaseURL, "https://example.test/v3")
	}
	if cfg.CongressSession != 119 {
		t.Errorf("CongressSession = %d, want %d", cfg.CongressSession, 119)
	}
	if cfg.CongressListTimeout != 3*time.Second {
		t.Errorf("CongressListTimeout = %v, want %v", cfg.CongressListTimeout, 3*time.Second)
	}
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want %q", cfg.ServerPort, "8080")
	}
	if !cfg.Debug {
		t.Error("Debug = false, want true")
	}
	if !cfg.APIConfigured() {
		t.Error("APIConfigured() = false, want true")
	}
	if !cfg.LLMConfigured() {
		t.Error("LLMConfigured() = false, want true")
	}
}

func TestLoad_InvalidDuration_UsesDefault(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("SUMMARY_TIMEOUT", "not-a-duration")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.SummaryTimeout != 15*time.Second {
		t.Errorf("SummaryTimeout = %v, want %v", cfg.SummaryTimeout, 15*time.Second)
	}
}

func TestLoad_InvalidPort_ReturnsError(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("PORT", "99999")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for out-of-range PORT, got nil")
	}
}

func TestLoad_UnknownProvider_ReturnsError(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("SUMMARY_PROVIDER", "openai")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for unknown SUMMARY_PROVIDER, got nil")
	}
}

func TestLLMConfigured_GeminiProvider_UsesGeminiKey(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("SUMMARY_PROVIDER", "Gemini")
	t.Setenv("HUGGINGFACE_API_KEY", "hf-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.SummaryProvider != ProviderGemini {
		t.Errorf("SummaryProvider = %q, want %q", cfg.SummaryProvider, ProviderGemini)
	}
	// Geminiを選択している場合、HuggingFaceのキーは考慮しない
	if cfg.LLMConfigured() {
		t.Error("LLMConfigured() = true, want false without GEMINI_API_KEY")
	}
}
