// Package logger はアプリケーション共通の構造化ロガーを構築する。
package logger

import (
	"io"
	"log/slog"
	"os"
)

// serviceName は全ログ行に付与するサービス名。
const serviceName = "legiswatch"

// Setup はJSON構造化ログ出力のslog.Loggerを生成して返す。
// debugがtrueの場合はDebugレベル以上、falseの場合はInfoレベル以上を出力する。
func Setup(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler).With(slog.String("service", serviceName))
}

// SetupDefault はJSON構造化ログ出力をグローバルロガーとして設定し、そのロガーを返す。
// wがnilの場合はos.Stdoutに出力する。
func SetupDefault(w io.Writer, debug bool) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	l := Setup(w, debug)
	slog.SetDefault(l)
	return l
}
