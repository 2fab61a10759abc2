package handler

import (
	"context"
	"io"
	"log/slog"

	"github.com/hitoshi/legiswatch/internal/model"
)

// mockSearcher はSearcherのテスト用モック。
type mockSearcher struct {
	searchFn func(ctx context.Context, searchType model.SearchType, query string, limit int) model.SearchResult
}

func (m *mockSearcher) Search(ctx context.Context, searchType model.SearchType, query string, limit int) model.SearchResult {
	if m.searchFn != nil {
		return m.searchFn(ctx, searchType, query, limit)
	}
	return model.SearchResult{Source: model.SourceCongress}
}

// mockEnricher はEnricherのテスト用モック。
type mockEnricher struct {
	enrichAllFn func(ctx context.Context, bills []model.Bill, topic string)
}

func (m *mockEnricher) EnrichAll(ctx context.Context, bills []model.Bill, topic string) {
	if m.enrichAllFn != nil {
		m.enrichAllFn(ctx, bills, topic)
	}
}

// mockMetrics はMetricsRecorderのテスト用モック。
type mockMetrics struct {
	exports  []string
	requests int
}

func (m *mockMetrics) RecordExport(format string) {
	m.exports = append(m.exports, format)
}

func (m *mockMetrics) RecordHTTPRequest(method string, statusCode int) {
	m.requests++
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func sampleBills() []model.Bill {
	return []model.Bill{
		{
			ID:             "HR3421",
			Title:          "Healthcare Access and Affordability Act",
			Summary:        "Expands healthcare access.",
			IntroducedDate: "2024-12-15",
			Sponsor:        "Rep. Sarah Johnson (D-CA)",
			CongressURL:    "https://www.congress.gov/bill/118th-congress/house-bill/3421",
			BillType:       "HR",
			Number:         "3421",
			UpdateDate:     "2024-12-15",
		},
	}
}
