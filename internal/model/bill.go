package model

// 欠損データを置き換えるプレースホルダー。
// Bill の ai_summary 以外のフィールドは常にいずれかの値で埋められる。
const (
	PlaceholderTitle   = "No title available"
	PlaceholderSummary = "No summary available"
	PlaceholderNumber  = "N/A"
	PlaceholderUnknown = "Unknown"
)

// Bill は正規化済みの法案レコードを表す。
// リクエスト毎に生成され、永続化もキャッシュもされない。
type Bill struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Summary        string `json:"summary"`
	IntroducedDate string `json:"introduced_date"`
	Sponsor        string `json:"sponsor"`
	CongressURL    string `json:"congress_url"`
	BillType       string `json:"bill_type"`
	Number         string `json:"number"`
	UpdateDate     string `json:"update_date"`
	AISummary      string `json:"ai_summary,omitempty"`
}

// SearchType は検索の種類を表す。
type SearchType string

const (
	// SearchTypeKeyword はタイトルのキーワード検索。
	SearchTypeKeyword SearchType = "keyword"
	// SearchTypeState は提出議員の州による検索。
	SearchTypeState SearchType = "state"
)

// ParseSearchType は文字列から検索種別を解決する。
// "state" 以外はすべてキーワード検索として扱う。
func ParseSearchType(s string) SearchType {
	if SearchType(s) == SearchTypeState {
		return SearchTypeState
	}
	return SearchTypeKeyword
}

// Source は検索結果の出所を表す。
type Source string

const (
	// SourceCongress はCongress.gov APIから取得したデータ。
	SourceCongress Source = "congress"
	// SourceMock は上流障害時に生成した合成データ。
	SourceMock Source = "mock"
)

// SearchResult は検索結果と、そのデータの出所をまとめたもの。
type SearchResult struct {
	Bills  []Bill
	Source Source
	// FallbackReason はモックに切り替えた理由。Source が SourceMock の場合のみ設定される。
	FallbackReason string
}
