// Package summary は法案要約テキストからAIによる平易な要約を生成する。
// 要約サービスが使えない場合も、トピック名を含む定型文を返してエラーにはしない。
package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hitoshi/legiswatch/internal/fanout"
	"github.com/hitoshi/legiswatch/internal/metrics"
	"github.com/hitoshi/legiswatch/internal/model"
)

const (
	// maxInputRunes はプロンプトに含める要約本文の最大文字数。
	maxInputRunes = 1000
	// enrichConcurrency は一覧の要約生成の同時実行数。
	enrichConcurrency = 4
	// DefaultTimeout は要約サービス呼び出しのデフォルトのタイムアウト。
	DefaultTimeout = 15 * time.Second
)

// ErrMalformedResponse は要約サービスの応答が想定した形式でない場合のエラー。
var ErrMalformedResponse = errors.New("malformed summarization response")

// StatusError は要約サービスが成功以外のステータスを返した場合のエラー。
type StatusError struct {
	StatusCode int
}

// Error はerrorインターフェースを実装する。
func (e *StatusError) Error() string {
	return fmt.Sprintf("summarization service returned status %d", e.StatusCode)
}

// Provider は要約サービスのインターフェース。
type Provider interface {
	// Name はメトリクス・ログ用のプロバイダー名を返す。
	Name() string
	// Summarize はプロンプトから要約を生成する。
	Summarize(ctx context.Context, prompt string) (string, error)
}

// Enricher は法案にAI要約を付与する。
// providerがnilの場合は認証情報が未設定として扱い、常に定型文を返す。
type Enricher struct {
	provider Provider
	name     string
	timeout  time.Duration
	logger   *slog.Logger
	metrics  metrics.MetricsCollector
}

// NewEnricher はEnricherを生成する。
// nameはproviderがnilの場合にもメトリクスへ記録するプロバイダー名。
func NewEnricher(provider Provider, name string, timeout time.Duration, logger *slog.Logger, collector metrics.MetricsCollector) *Enricher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if collector == nil {
		collector = metrics.Nop{}
	}
	if provider != nil {
		name = provider.Name()
	}
	return &Enricher{
		provider: provider,
		name:     name,
		timeout:  timeout,
		logger:   logger,
		metrics:  collector,
	}
}

// Configured は要約サービスの認証情報が設定されているかを返す。
func (e *Enricher) Configured() bool {
	return e.provider != nil
}

// Enrich は要約本文からコンプライアンス担当者向けの要約を生成する。
// 失敗時はトピック名を含む定型文を返し、空文字列を返すことはない。
func (e *Enricher) Enrich(ctx context.Context, text, topic string) string {
	if e.provider == nil {
		e.metrics.RecordSummary(e.name, "no_credential")
		return NoCredentialMessage(topic)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	out, err := e.provider.Summarize(ctx, BuildPrompt(text, topic))
	if err == nil && out != "" {
		e.metrics.RecordSummary(e.name, "ok")
		return out
	}
	if err == nil {
		err = ErrMalformedResponse
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) || errors.Is(err, ErrMalformedResponse) {
		e.logger.Warn("要約サービスが有効な応答を返しませんでした",
			slog.String("provider", e.name),
			slog.String("error", err.Error()),
		)
		e.metrics.RecordSummary(e.name, "failed")
		return FailedMessage(topic)
	}

	e.logger.Error("要約サービスの呼び出しに失敗しました",
		slog.String("provider", e.name),
		slog.String("error", err.Error()),
	)
	e.metrics.RecordSummary(e.name, "unavailable")
	return UnavailableMessage(topic)
}

// EnrichAll は各法案の要約本文から ai_summary を設定する。
// 入力スライスの要素を直接更新する。
func (e *Enricher) EnrichAll(ctx context.Context, bills []model.Bill, topic string) {
	var g fanout.Group
	g.SetLimit(enrichConcurrency)
	for i := range bills {
		g.Go(func() {
			bills[i].AISummary = e.Enrich(ctx, bills[i].Summary, topic)
		})
	}
	g.Wait()
}

// BuildPrompt は要約サービスへ送るプロンプトを組み立てる。本文は先頭1000文字に切り詰める。
func BuildPrompt(text, topic string) string {
	if r := []rune(text); len(r) > maxInputRunes {
		text = string(r[:maxInputRunes])
	}
	return fmt.Sprintf("Summarize this bill for a compliance officer. Highlight what this means for businesses and %s: %s", topic, text)
}

// NoCredentialMessage は認証情報が未設定の場合の定型文。
func NoCredentialMessage(topic string) string {
	return fmt.Sprintf("AI Summary not available (API key required). This bill relates to %s.", topic)
}

// FailedMessage は要約サービスが成功以外の応答・不正な応答を返した場合の定型文。
func FailedMessage(topic string) string {
	return fmt.Sprintf("This bill addresses %s-related policies and may impact regulatory compliance for businesses.", topic)
}

// UnavailableMessage は通信エラーやタイムアウトの場合の定型文。
func UnavailableMessage(topic string) string {
	return fmt.Sprintf("AI summary unavailable. This bill relates to %s and may have regulatory implications.", topic)
}
