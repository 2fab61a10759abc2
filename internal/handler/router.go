package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/legiswatch/internal/middleware"
	"github.com/hitoshi/legiswatch/internal/model"
)

// MetricsRecorder はルーターが計測に使うインターフェース。
type MetricsRecorder interface {
	middleware.HTTPRequestRecorder
	ExportRecorder
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	Logger            *slog.Logger
	CORSAllowedOrigin string

	// 計測
	Metrics        MetricsRecorder
	MetricsHandler http.Handler

	// 検索
	Searcher Searcher
	Enricher Enricher

	// ヘルスチェック
	APIConfigured bool
	LLMConfigured bool
}

// NewRouter は全エンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	RequestID → Logging → Metrics → Recovery → SecurityHeaders → CORS
//
// Recovery をLoggingとMetricsの内側に置き、panicによる500も記録されるようにする。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	r.Use(middleware.NewMetricsMiddleware(deps.Metrics))
	r.Use(middleware.NewRecoveryMiddleware(deps.Logger))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

	searchHandler := NewSearchHandler(deps.Searcher, deps.Enricher, deps.Logger)
	exportHandler := NewExportHandler(deps.Metrics, deps.Logger)
	healthHandler := NewHealthHandler(deps.APIConfigured, deps.LLMConfigured)

	r.Get("/", Index)
	r.Get("/health", healthHandler.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/search", searchHandler.Search)
		r.Post("/export", exportHandler.Export)
	})

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, model.NewEndpointNotFoundError())
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, model.NewMethodNotAllowedError())
	})

	return r
}
