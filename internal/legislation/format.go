package legislation

import (
	"fmt"
	"strings"
	"time"

	"github.com/hitoshi/legiswatch/internal/congress"
	"github.com/hitoshi/legiswatch/internal/model"
)

// TextCleaner は上流の要約本文をプレーンテキストに変換する。
type TextCleaner interface {
	Clean(raw string) string
}

// isoLayouts は "T" を含む日時文字列の解釈に使うレイアウト。
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// Formatter は上流レコードを正規化済みの model.Bill に変換する。
// model.Bill の ai_summary 以外の全フィールドを必ず埋める。
type Formatter struct {
	session int
	cleaner TextCleaner
}

// NewFormatter はFormatterを生成する。cleanerがnilの場合、要約本文は前後の空白のみ除去する。
func NewFormatter(session int, cleaner TextCleaner) *Formatter {
	return &Formatter{session: session, cleaner: cleaner}
}

// Session は生成するURLの議会会期を返す。
func (f *Formatter) Session() int {
	return f.session
}

// Basic は一覧系エンドポイントのレコードを変換する。
// 提出日は introducedDate、無ければ updateDate を使う。
func (f *Formatter) Basic(r congress.BillRecord) model.Bill {
	introduced := r.IntroducedDate
	if introduced == "" {
		introduced = r.UpdateDate
	}
	return f.build(r, f.summary(r), introduced)
}

// Detailed は詳細エンドポイントのレコードを変換する。
// 候補フィールドに要約が無い場合は summaries.summaries[0].text を使う。
func (f *Formatter) Detailed(r congress.BillRecord) model.Bill {
	summary := f.summary(r)
	if summary == model.PlaceholderSummary {
		if nested, ok := r.NestedSummary(); ok {
			if cleaned := f.clean(nested); cleaned != "" {
				summary = cleaned
			}
		}
	}
	return f.build(r, summary, r.IntroducedDate)
}

func (f *Formatter) build(r congress.BillRecord, summary, introduced string) model.Bill {
	billType := strings.ToUpper(strings.TrimSpace(r.Type))
	number := string(r.Number)

	return model.Bill{
		ID:             billType + orDefault(number, model.PlaceholderNumber),
		Title:          orDefault(strings.TrimSpace(r.Title), model.PlaceholderTitle),
		Summary:        summary,
		IntroducedDate: FormatDate(introduced),
		Sponsor:        FormatSponsor(r.Sponsors),
		CongressURL:    CongressURL(f.session, billType, number),
		BillType:       orDefault(billType, model.PlaceholderUnknown),
		Number:         orDefault(number, model.PlaceholderNumber),
		UpdateDate:     orDefault(r.UpdateDate, model.PlaceholderUnknown),
	}
}

// summary は候補フィールドから最初の空でない要約を返す。
func (f *Formatter) summary(r congress.BillRecord) string {
	for _, candidate := range r.SummaryCandidates() {
		if cleaned := f.clean(candidate); cleaned != "" {
			return cleaned
		}
	}
	return model.PlaceholderSummary
}

func (f *Formatter) clean(s string) string {
	if f.cleaner == nil {
		return strings.TrimSpace(s)
	}
	return f.cleaner.Clean(s)
}

// FormatSponsor は筆頭提出議員を "First Last (P-ST)" 形式に整形する。
// 姓のみの場合は "Last (P-ST)"、議員情報が無い場合は "Unknown" を返す。
func FormatSponsor(sponsors []congress.Sponsor) string {
	if len(sponsors) == 0 {
		return model.PlaceholderUnknown
	}
	s := sponsors[0]
	switch {
	case s.FirstName != "" && s.LastName != "":
		return fmt.Sprintf("%s %s (%s-%s)", s.FirstName, s.LastName, s.Party, s.State)
	case s.LastName != "":
		return fmt.Sprintf("%s (%s-%s)", s.LastName, s.Party, s.State)
	default:
		return model.PlaceholderUnknown
	}
}

// FormatDate は日付文字列を YYYY-MM-DD に整形する。
// 空文字列は "Unknown"、解釈できない文字列はそのまま返す。エラーにはしない。
func FormatDate(s string) string {
	if s == "" {
		return model.PlaceholderUnknown
	}
	if strings.Contains(s, "T") {
		for _, layout := range isoLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.Format(time.DateOnly)
			}
		}
		return s
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t.Format(time.DateOnly)
	}
	return s
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
