package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/hitoshi/legiswatch/internal/config"
	"github.com/hitoshi/legiswatch/internal/congress"
	"github.com/hitoshi/legiswatch/internal/handler"
	"github.com/hitoshi/legiswatch/internal/legislation"
	"github.com/hitoshi/legiswatch/internal/metrics"
	"github.com/hitoshi/legiswatch/internal/security"
	"github.com/hitoshi/legiswatch/internal/summary"
)

// Components は起動モードに共通する依存関係を組み立てた結果。
type Components struct {
	Registry   *prometheus.Registry
	Metrics    *metrics.Collector
	Aggregator *legislation.Aggregator
	Enricher   *summary.Enricher
}

// Build は設定から上流クライアント・検索・要約の各コンポーネントを組み立てる。
// 外部エンドポイントのURLはここで静的に検証し、不正な場合は起動を中止する。
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	if err := security.ValidateEndpoint(cfg.CongressBaseURL); err != nil {
		return nil, fmt.Errorf("invalid CONGRESS_API_BASE_URL: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(reg)

	congressHTTP := security.NewOutboundClient(cfg.CongressListTimeout)
	client := congress.NewClient(congressHTTP, logger, collector, congress.Options{
		BaseURL:         cfg.CongressBaseURL,
		APIKey:          cfg.CongressAPIKey,
		Session:         cfg.CongressSession,
		ListTimeout:     cfg.CongressListTimeout,
		DetailTimeout:   cfg.CongressDetailTimeout,
		RequestsPerHour: cfg.CongressRequestsPerHour,
	})

	formatter := legislation.NewFormatter(client.Session(), security.NewTextCleaner())
	aggregator := legislation.NewAggregator(client, formatter, logger, collector)

	provider, err := newSummaryProvider(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	enricher := summary.NewEnricher(provider, cfg.SummaryProvider, cfg.SummaryTimeout, logger, collector)

	return &Components{
		Registry:   reg,
		Metrics:    collector,
		Aggregator: aggregator,
		Enricher:   enricher,
	}, nil
}

// newSummaryProvider は設定に応じた要約プロバイダーを生成する。
// 認証情報が未設定の場合はnilを返し、Enricherは固定メッセージで応答する。
func newSummaryProvider(ctx context.Context, cfg *config.Config, logger *slog.Logger) (summary.Provider, error) {
	if !cfg.LLMConfigured() {
		return nil, nil
	}

	httpClient := security.NewOutboundClient(cfg.SummaryTimeout)

	switch cfg.SummaryProvider {
	case config.ProviderGemini:
		p, err := summary.NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, httpClient)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini provider: %w", err)
		}
		return p, nil
	default:
		if err := security.ValidateEndpoint(cfg.HuggingFaceURL); err != nil {
			return nil, fmt.Errorf("invalid HUGGINGFACE_API_URL: %w", err)
		}
		return summary.NewHuggingFaceProvider(httpClient, logger, cfg.HuggingFaceAPIKey, cfg.HuggingFaceURL), nil
	}
}

// NewRouter はコンポーネントからHTTPルーターを構成する。
func (c *Components) NewRouter(cfg *config.Config, logger *slog.Logger) http.Handler {
	return handler.NewRouter(&handler.RouterDeps{
		Logger:            logger,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		Metrics:           c.Metrics,
		MetricsHandler:    metrics.Handler(c.Registry),
		Searcher:          c.Aggregator,
		Enricher:          c.Enricher,
		APIConfigured:     cfg.APIConfigured(),
		LLMConfigured:     c.Enricher.Configured(),
	})
}
