package congress

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// FailureReason は上流API呼び出しの失敗理由。
// 集約層はこの値をもとにフォールバックを判断し、ログ・メトリクスに記録する。
type FailureReason string

const (
	// ReasonTransport は接続エラーなどの通信失敗。
	ReasonTransport FailureReason = "transport"
	// ReasonTimeout はcontextの期限切れ。
	ReasonTimeout FailureReason = "timeout"
	// ReasonStatus は200以外のHTTPステータス。
	ReasonStatus FailureReason = "status"
	// ReasonRateLimited は上流の429、またはクライアント側の送信レート上限。
	ReasonRateLimited FailureReason = "rate_limited"
	// ReasonDecode はレスポンスJSONのパース失敗。
	ReasonDecode FailureReason = "decode"
)

// FetchError は上流API呼び出しの失敗を表す。
type FetchError struct {
	Endpoint   string
	Reason     FailureReason
	StatusCode int
	Err        error
}

// Error はerrorインターフェースを実装する。
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("congress %s: %s (status %d)", e.Endpoint, e.Reason, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("congress %s: %s: %v", e.Endpoint, e.Reason, e.Err)
	}
	return fmt.Sprintf("congress %s: %s", e.Endpoint, e.Reason)
}

// Unwrap は元のエラーを返す。
func (e *FetchError) Unwrap() error {
	return e.Err
}

// ReasonOf はエラーから失敗理由を取り出す。FetchError以外は通信失敗として扱う。
func ReasonOf(err error) FailureReason {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Reason
	}
	return ReasonTransport
}

// ClassifyHTTPStatus は200以外のHTTPステータスコードを失敗理由に分類する。
func ClassifyHTTPStatus(statusCode int) FailureReason {
	if statusCode == http.StatusTooManyRequests {
		return ReasonRateLimited
	}
	return ReasonStatus
}

// classifyTransportError はhttp.Client.Doのエラーを失敗理由に分類する。
func classifyTransportError(err error) FailureReason {
	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonTimeout
	}
	return ReasonTransport
}
