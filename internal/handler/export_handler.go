package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/hitoshi/legiswatch/internal/export"
	"github.com/hitoshi/legiswatch/internal/model"
)

// ExportRecorder はエクスポート件数の計測先。
type ExportRecorder interface {
	RecordExport(format string)
}

// ExportHandler は検索結果エクスポートのHTTPハンドラー。
type ExportHandler struct {
	recorder ExportRecorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewExportHandler はExportHandlerを生成する。
func NewExportHandler(recorder ExportRecorder, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// exportRequest はエクスポートリクエストのボディ。
type exportRequest struct {
	Bills []model.Bill `json:"bills"`
}

// Export は法案一覧をファイルとして返す。
// POST /api/export?format=csv|xlsx
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	format, ok := export.ParseFormat(r.URL.Query().Get("format"))
	if !ok {
		writeAPIError(w, model.NewInvalidFormatError(r.URL.Query().Get("format")))
		return
	}

	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, model.NewInvalidBodyError())
		return
	}

	data, err := export.Render(format, req.Bills)
	if err != nil {
		if errors.Is(err, export.ErrNoBills) {
			writeAPIError(w, model.NewNoBillsToExportError())
			return
		}
		h.logger.Error("export failed",
			slog.String("format", string(format)),
			slog.String("error", err.Error()),
		)
		writeAPIError(w, model.NewExportFailedError())
		return
	}

	h.recorder.RecordExport(string(format))

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", format.Filename(h.now())))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
