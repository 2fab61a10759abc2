package handler

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hitoshi/legiswatch/internal/middleware"
)

func newTestExportHandler(rec *mockMetrics) *ExportHandler {
	h := NewExportHandler(rec, discardLogger())
	h.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	return h
}

func exportBody(t *testing.T) *bytes.Reader {
	t.Helper()
	data, err := json.Marshal(map[string]any{"bills": sampleBills()})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return bytes.NewReader(data)
}

func TestExport_CSV_ReturnsAttachment(t *testing.T) {
	rec := &mockMetrics{}
	h := newTestExportHandler(rec)

	req := httptest.NewRequest(http.MethodPost, "/api/export", exportBody(t))
	w := httptest.NewRecorder()

	h.Export(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/csv" {
		t.Errorf("Content-Type = %q, want %q", ct, "text/csv")
	}
	wantDisposition := "attachment; filename=legiswatch_results_20250102_030405.csv"
	if got := resp.Header.Get("Content-Disposition"); got != wantDisposition {
		t.Errorf("Content-Disposition = %q, want %q", got, wantDisposition)
	}

	records, err := csv.NewReader(resp.Body).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[1][0] != "HR3421" {
		t.Errorf("first column = %q, want %q", records[1][0], "HR3421")
	}

	if len(rec.exports) != 1 || rec.exports[0] != "csv" {
		t.Errorf("exports = %v, want [csv]", rec.exports)
	}
}

func TestExport_XLSX_ReturnsWorkbook(t *testing.T) {
	h := newTestExportHandler(&mockMetrics{})

	req := httptest.NewRequest(http.MethodPost, "/api/export?format=xlsx", exportBody(t))
	w := httptest.NewRecorder()

	h.Export(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if got := resp.Header.Get("Content-Disposition"); !strings.HasSuffix(got, ".xlsx") {
		t.Errorf("Content-Disposition = %q, want .xlsx filename", got)
	}
	// XLSXはZIPコンテナ
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("PK")) {
		t.Error("body is not a zip container")
	}
}

func TestExport_NoBills_Returns400(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"空配列", `{"bills":[]}`},
		{"billsなし", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &mockMetrics{}
			h := newTestExportHandler(rec)

			req := httptest.NewRequest(http.MethodPost, "/api/export", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			h.Export(w, req)

			resp := w.Result()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
			}
			var body middleware.ErrorResponseBody
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode: %v", err)
			}
			if body.Error != "No bills to export" {
				t.Errorf("error = %q, want %q", body.Error, "No bills to export")
			}
			if len(rec.exports) != 0 {
				t.Errorf("exports = %v, want none", rec.exports)
			}
		})
	}
}

func TestExport_UnknownFormat_Returns400(t *testing.T) {
	h := newTestExportHandler(&mockMetrics{})

	req := httptest.NewRequest(http.MethodPost, "/api/export?format=pdf", exportBody(t))
	w := httptest.NewRecorder()

	h.Export(w, req)

	if w.Result().StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusBadRequest)
	}
}

func TestExport_InvalidJSON_Returns400(t *testing.T) {
	h := newTestExportHandler(&mockMetrics{})

	req := httptest.NewRequest(http.MethodPost, "/api/export", strings.NewReader(`[`))
	w := httptest.NewRecorder()

	h.Export(w, req)

	if w.Result().StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusBadRequest)
	}
}
