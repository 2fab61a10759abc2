// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// JSONレスポンスでは Message が "error" フィールドとして返される。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: validation, routing, system
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeQueryRequired    = "QUERY_REQUIRED"
	ErrCodeInvalidBody      = "INVALID_BODY"
	ErrCodeNoBillsToExport  = "NO_BILLS_TO_EXPORT"
	ErrCodeInvalidFormat    = "INVALID_FORMAT"
	ErrCodeSearchFailed     = "SEARCH_FAILED"
	ErrCodeExportFailed     = "EXPORT_FAILED"
	ErrCodeEndpointNotFound = "ENDPOINT_NOT_FOUND"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeInternal         = "INTERNAL_ERROR"
)

// NewQueryRequiredError は検索クエリが空の場合のエラーを生成する。
func NewQueryRequiredError() *APIError {
	return &APIError{
		Code:     ErrCodeQueryRequired,
		Message:  "Query parameter is required",
		Category: "validation",
	}
}

// NewInvalidBodyError はリクエストボディが解析できない場合のエラーを生成する。
func NewInvalidBodyError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidBody,
		Message:  "Request body must be valid JSON",
		Category: "validation",
	}
}

// NewNoBillsToExportError はエクスポート対象が空の場合のエラーを生成する。
func NewNoBillsToExportError() *APIError {
	return &APIError{
		Code:     ErrCodeNoBillsToExport,
		Message:  "No bills to export",
		Category: "validation",
	}
}

// NewInvalidFormatError は未対応のエクスポート形式が指定された場合のエラーを生成する。
func NewInvalidFormatError(format string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidFormat,
		Message:  fmt.Sprintf("Unsupported export format: %s", format),
		Category: "validation",
	}
}

// NewSearchFailedError は検索処理中の予期しない障害を表すエラーを生成する。
func NewSearchFailedError() *APIError {
	return &APIError{
		Code:     ErrCodeSearchFailed,
		Message:  "An error occurred while searching for bills",
		Category: "system",
	}
}

// NewExportFailedError はエクスポート処理中の予期しない障害を表すエラーを生成する。
func NewExportFailedError() *APIError {
	return &APIError{
		Code:     ErrCodeExportFailed,
		Message:  "An error occurred while exporting data",
		Category: "system",
	}
}

// NewEndpointNotFoundError は未定義ルートへのアクセスを表すエラーを生成する。
func NewEndpointNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeEndpointNotFound,
		Message:  "Endpoint not found",
		Category: "routing",
	}
}

// NewMethodNotAllowedError は許可されていないHTTPメソッドを表すエラーを生成する。
func NewMethodNotAllowedError() *APIError {
	return &APIError{
		Code:     ErrCodeMethodNotAllowed,
		Message:  "Method not allowed",
		Category: "routing",
	}
}

// NewInternalError は汎用の内部エラーを生成する。
func NewInternalError() *APIError {
	return &APIError{
		Code:     ErrCodeInternal,
		Message:  "Internal server error",
		Category: "system",
	}
}
