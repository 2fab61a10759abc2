// Package export は検索結果の法案一覧をダウンロード用のファイルに変換する。
package export

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hitoshi/legiswatch/internal/model"
)

// ErrNoBills はエクスポート対象が空の場合のエラー。ヘッダーのみのファイルは生成しない。
var ErrNoBills = errors.New("no bills to export")

// Columns はエクスポートの固定列順。
var Columns = []string{"Bill ID", "Title", "Summary", "Introduced Date", "Sponsor", "Type", "Congress URL"}

// filenamePrefix はダウンロードファイル名の接頭辞。
const filenamePrefix = "legiswatch_results_"

// Format はエクスポート形式。
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat はクエリパラメータの値から形式を解決する。空文字列はCSVとして扱う。
func ParseFormat(s string) (Format, bool) {
	switch Format(strings.ToLower(s)) {
	case "", FormatCSV:
		return FormatCSV, true
	case FormatXLSX:
		return FormatXLSX, true
	default:
		return "", false
	}
}

// ContentType は形式に対応するContent-Typeを返す。
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// Filename は "legiswatch_results_YYYYMMDD_HHMMSS.<ext>" 形式のファイル名を返す。
func (f Format) Filename(now time.Time) string {
	return fmt.Sprintf("%s%s.%s", filenamePrefix, now.Format("20060102_150405"), f)
}

// Render は指定形式でエクスポートする。
func Render(f Format, bills []model.Bill) ([]byte, error) {
	if f == FormatXLSX {
		return ToXLSX(bills)
	}
	return ToCSV(bills)
}

// row は1件の法案を列順に並べる。
func row(b model.Bill) []string {
	return []string{b.ID, b.Title, b.Summary, b.IntroducedDate, b.Sponsor, b.BillType, b.CongressURL}
}
