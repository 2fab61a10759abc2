package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/hitoshi/legiswatch/internal/model"
)

// DataSourceHeader は検索結果の取得元（congress または mock）を示すレスポンスヘッダー。
const DataSourceHeader = "X-Data-Source"

// Searcher は検索ハンドラーが必要とする法案検索インターフェース。
type Searcher interface {
	Search(ctx context.Context, searchType model.SearchType, query string, limit int) model.SearchResult
}

// Enricher は検索結果にAI要約を付与するインターフェース。
type Enricher interface {
	EnrichAll(ctx context.Context, bills []model.Bill, topic string)
}

// SearchHandler は法案検索のHTTPハンドラー。
type SearchHandler struct {
	searcher Searcher
	enricher Enricher
	logger   *slog.Logger
}

// NewSearchHandler はSearchHandlerを生成する。
func NewSearchHandler(searcher Searcher, enricher Enricher, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		searcher: searcher,
		enricher: enricher,
		logger:   logger,
	}
}

// searchRequest は検索リクエストのボディ。
type searchRequest struct {
	Query     string `json:"query"`
	Type      string `json:"type"`
	IncludeAI bool   `json:"include_ai"`
}

// searchResponse は検索結果のAPIレスポンス。
type searchResponse struct {
	Success    bool             `json:"success"`
	Bills      []model.Bill     `json:"bills"`
	Count      int              `json:"count"`
	Query      string           `json:"query"`
	SearchType model.SearchType `json:"search_type"`
	Source     model.Source     `json:"source"`
}

// Search は法案検索を処理する。
// POST /api/search
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	defer h.recoverAs(w, r, model.NewSearchFailedError())

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, model.NewInvalidBodyError())
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		writeAPIError(w, model.NewQueryRequiredError())
		return
	}

	searchType := model.ParseSearchType(req.Type)
	result := h.searcher.Search(r.Context(), searchType, query, 0)

	bills := result.Bills
	if bills == nil {
		bills = []model.Bill{}
	}
	if req.IncludeAI {
		h.enricher.EnrichAll(r.Context(), bills, query)
	}

	w.Header().Set(DataSourceHeader, string(result.Source))
	writeJSON(w, http.StatusOK, searchResponse{
		Success:    true,
		Bills:      bills,
		Count:      len(bills),
		Query:      query,
		SearchType: searchType,
		Source:     result.Source,
	})
}

// recoverAs は処理中のpanicを捕捉し、エンドポイント固有の500レスポンスに変換する。
// 詳細はログのみに記録する。
func (h *SearchHandler) recoverAs(w http.ResponseWriter, r *http.Request, apiErr *model.APIError) {
	rec := recover()
	if rec == nil {
		return
	}
	h.logger.Error("search failed",
		slog.String("error", fmt.Sprint(rec)),
		slog.String("path", r.URL.Path),
		slog.String("stack", string(debug.Stack())),
	)
	writeAPIError(w, apiErr)
}
