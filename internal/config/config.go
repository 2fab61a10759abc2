package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// 要約プロバイダー名。
const (
	ProviderHuggingFace = "huggingface"
	ProviderGemini      = "gemini"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
// ビジネスロジックは環境変数を直接参照せず、必ずこの値を注入して使う。
type Config struct {
	// Congress.gov
	CongressBaseURL         string
	CongressAPIKey          string
	CongressSession         int
	CongressListTimeout     time.Duration
	CongressDetailTimeout   time.Duration
	CongressRequestsPerHour int

	// Summary
	SummaryProvider   string
	SummaryTimeout    time.Duration
	HuggingFaceAPIKey string
	HuggingFaceURL    string
	GeminiAPIKey      string
	GeminiModel       string

	// Server
	ServerPort string
	Debug      bool

	// CORS
	CORSAllowedOrigin string
}

// Load は .env ファイル（存在すれば）と環境変数からConfigを読み込む。
// 既に設定済みの環境変数は .env の値で上書きされない。
func Load() (*Config, error) {
	// .env は任意。存在しない場合のエラーは無視する
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.CongressBaseURL = strings.TrimRight(getEnvString("CONGRESS_API_BASE_URL", "https://api.congress.gov/v3"), "/")
	cfg.CongressAPIKey = os.Getenv("CONGRESS_API_KEY")
	cfg.CongressSession = getEnvInt("CONGRESS_SESSION", 118)
	cfg.CongressListTimeout = getEnvDuration("CONGRESS_LIST_TIMEOUT", 10*time.Second)
	cfg.CongressDetailTimeout = getEnvDuration("CONGRESS_DETAIL_TIMEOUT", 5*time.Second)
	cfg.CongressRequestsPerHour = getEnvInt("CONGRESS_REQUESTS_PER_HOUR", 5000)

	cfg.SummaryProvider = strings.ToLower(getEnvString("SUMMARY_PROVIDER", ProviderHuggingFace))
	cfg.SummaryTimeout = getEnvDuration("SUMMARY_TIMEOUT", 15*time.Second)
	cfg.HuggingFaceAPIKey = os.Getenv("HUGGINGFACE_API_KEY")
	cfg.HuggingFaceURL = getEnvString("HUGGINGFACE_API_URL", "https://api-inference.huggingface.co/models/facebook/bart-large-cnn")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.GeminiModel = getEnvString("GEMINI_MODEL", "gemini-2.0-flash")

	cfg.ServerPort = getEnvString("PORT", "5000")
	cfg.Debug = getEnvBool("DEBUG", false)
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate は読み込んだ値の整合性を検証する。
func (c *Config) validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.ServerPort); err != nil || port <= 0 || port > 65535 {
		problems = append(problems, fmt.Sprintf("PORT=%q", c.ServerPort))
	}
	if c.CongressSession <= 0 {
		problems = append(problems, fmt.Sprintf("CONGRESS_SESSION=%d", c.CongressSession))
	}
	if c.CongressRequestsPerHour <= 0 {
		problems = append(problems, fmt.Sprintf("CONGRESS_REQUESTS_PER_HOUR=%d", c.CongressRequestsPerHour))
	}
	switch c.SummaryProvider {
	case ProviderHuggingFace, ProviderGemini:
	default:
		problems = append(problems, fmt.Sprintf("SUMMARY_PROVIDER=%q", c.SummaryProvider))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %v", problems)
	}
	return nil
}

// APIConfigured はCongress.gov APIキーが設定されているかを返す。
func (c *Config) APIConfigured() bool {
	return c.CongressAPIKey != ""
}

// LLMConfigured は選択中の要約プロバイダーの認証情報が設定されているかを返す。
func (c *Config) LLMConfigured() bool {
	if c.SummaryProvider == ProviderGemini {
		return c.GeminiAPIKey != ""
	}
	return c.HuggingFaceAPIKey != ""
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return strings.EqualFold(v, "true")
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
