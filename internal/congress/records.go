package congress

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FlexString は文字列・数値のどちらで返されても文字列として受け取るJSON値。
// 上流は法案番号を通常は文字列で返すが、数値で返すエンドポイントもある。
type FlexString string

// UnmarshalJSON はjson.Unmarshalerを実装する。
func (f *FlexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}
	// null やオブジェクトは欠損として扱う
	*f = ""
	return nil
}

// Sponsor は法案の提出議員。
type Sponsor struct {
	BioguideID string `json:"bioguideId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Party      string `json:"party"`
	State      string `json:"state"`
}

// BillRecord は一覧・詳細・提出法案の各エンドポイントが返す法案レコード。
// フィールドはエンドポイントごとに有無が異なるため、すべて任意として扱う。
type BillRecord struct {
	Type           string     `json:"type"`
	Number         FlexString `json:"number"`
	Title          string     `json:"title"`
	IntroducedDate string     `json:"introducedDate"`
	UpdateDate     string     `json:"updateDate"`
	Sponsors       []Sponsor  `json:"sponsors"`

	// 要約候補。文字列以外（オブジェクト等）で返される場合があるため生のまま保持する
	Summary       json.RawMessage `json:"summary"`
	LatestSummary json.RawMessage `json:"latestSummary"`
	SummaryShort  json.RawMessage `json:"summary_short"`
	Description   json.RawMessage `json:"description"`

	// 詳細レコードのみ: {"summaries": [{"text": ...}]}
	Summaries json.RawMessage `json:"summaries"`
}

// SummaryCandidates は要約候補フィールドを優先順に返す。
// 文字列でない値、空白のみの値は除外される。
func (r BillRecord) SummaryCandidates() []string {
	var out []string
	for _, raw := range []json.RawMessage{r.Summary, r.LatestSummary, r.SummaryShort, r.Description} {
		if s, ok := rawString(raw); ok {
			out = append(out, s)
		}
	}
	return out
}

// NestedSummary は summaries.summaries[0].text を返す。
// 構造が一致しない場合は ok=false を返す。
func (r BillRecord) NestedSummary() (string, bool) {
	if len(r.Summaries) == 0 {
		return "", false
	}
	var nested struct {
		Summaries []struct {
			Text json.RawMessage `json:"text"`
		} `json:"summaries"`
	}
	if err := json.Unmarshal(r.Summaries, &nested); err != nil || len(nested.Summaries) == 0 {
		return "", false
	}
	return rawString(nested.Summaries[0].Text)
}

// HasIdentity は法案種別と番号の両方を持つかを返す。詳細取得の可否判定に使う。
func (r BillRecord) HasIdentity() bool {
	return r.Type != "" && r.Number != ""
}

func rawString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, true
}

// Member は議員一覧エンドポイントの議員レコード。
type Member struct {
	BioguideID string     `json:"bioguideId"`
	Name       string     `json:"name"`
	State      string     `json:"state"`
	PartyName  string     `json:"partyName"`
	District   FlexString `json:"district"`
}

// Chamber は議院。
type Chamber string

const (
	ChamberHouse  Chamber = "house"
	ChamberSenate Chamber = "senate"
)

type billListResponse struct {
	Bills []BillRecord `json:"bills"`
}

type billDetailResponse struct {
	Bill BillRecord `json:"bill"`
}

type memberListResponse struct {
	Members []Member `json:"members"`
}

type sponsoredLegislationResponse struct {
	SponsoredLegislation []BillRecord `json:"sponsoredLegislation"`
}

// itoa は件数パラメータの文字列化に使う。
func itoa(n int) string {
	return strconv.Itoa(n)
}
