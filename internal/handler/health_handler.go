package handler

import (
	"net/http"
	"time"
)

// HealthHandler はヘルスチェックのHTTPハンドラー。
type HealthHandler struct {
	apiConfigured bool
	llmConfigured bool
	now           func() time.Time
}

// NewHealthHandler はHealthHandlerを生成する。
// 設定状態は起動時に確定するため、値として受け取る。
func NewHealthHandler(apiConfigured, llmConfigured bool) *HealthHandler {
	return &HealthHandler{
		apiConfigured: apiConfigured,
		llmConfigured: llmConfigured,
		now:           time.Now,
	}
}

type healthResponse struct {
	Status        string `json:"status"`
	Timestamp     string `json:"timestamp"`
	APIConfigured bool   `json:"api_configured"`
	LLMConfigured bool   `json:"llm_configured"`
}

// Health はサービスの稼働状態と外部連携の設定有無を返す。
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "healthy",
		Timestamp:     h.now().Format(time.RFC3339),
		APIConfigured: h.apiConfigured,
		LLMConfigured: h.llmConfigured,
	})
}
