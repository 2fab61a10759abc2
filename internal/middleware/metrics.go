package middleware

import "net/http"

// HTTPRequestRecorder は受信リクエストの計測先。
type HTTPRequestRecorder interface {
	RecordHTTPRequest(method string, statusCode int)
}

// NewMetricsMiddleware はレスポンスのステータスコードごとにリクエスト数を記録するミドルウェアを返す。
func NewMetricsMiddleware(recorder HTTPRequestRecorder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r)
			recorder.RecordHTTPRequest(r.Method, rec.statusCode)
		})
	}
}
