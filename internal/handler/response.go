package handler

import (
	"encoding/json"
	"net/http"

	"github.com/hitoshi/legiswatch/internal/middleware"
	"github.com/hitoshi/legiswatch/internal/model"
)

// writeJSON は任意の値をJSONレスポンスとして書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// writeAPIError はAPIErrorのコードに対応するステータスで統一エラーレスポンスを書き込む。
func writeAPIError(w http.ResponseWriter, apiErr *model.APIError) {
	middleware.WriteErrorResponse(w, mapAPIErrorToHTTPStatus(apiErr), apiErr)
}

// mapAPIErrorToHTTPStatus はAPIErrorのコードをHTTPステータスコードに変換する。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeQueryRequired, model.ErrCodeInvalidBody,
		model.ErrCodeNoBillsToExport, model.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case model.ErrCodeEndpointNotFound:
		return http.StatusNotFound
	case model.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}
