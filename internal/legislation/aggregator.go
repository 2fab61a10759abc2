// Package legislation はCongress.govのデータを検索・正規化し、
// 上流障害時には決定的な合成データへ切り替える集約層を提供する。
package legislation

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/hitoshi/legiswatch/internal/congress"
	"github.com/hitoshi/legiswatch/internal/fanout"
	"github.com/hitoshi/legiswatch/internal/metrics"
	"github.com/hitoshi/legiswatch/internal/model"
)

const (
	// DefaultLimit は検索結果のデフォルト件数。
	DefaultLimit = 20
	// maxStateMembers は州検索で提出法案を取得する議員数の上限。
	maxStateMembers = 10
	// sponsoredConcurrency は議員別の提出法案取得の同時実行数。
	sponsoredConcurrency = 4
	// detailConcurrency は法案詳細取得の同時実行数。
	detailConcurrency = 4
)

// モックへ切り替えた理由のうち、上流エラー以外のもの。
const (
	reasonUnresolvedState = "unresolved_state"
	reasonNoMembers       = "no_members"
)

// LegislationAPI は集約層が利用する上流APIのインターフェース。
// テスタビリティのため congress.Client を抽象化する。
type LegislationAPI interface {
	ListRecentBills(ctx context.Context, limit int) ([]congress.BillRecord, error)
	GetBill(ctx context.Context, billType, number string) (congress.BillRecord, error)
	ListMembers(ctx context.Context, chamber congress.Chamber) ([]congress.Member, error)
	ListSponsoredLegislation(ctx context.Context, bioguideID string) ([]congress.BillRecord, error)
}

// Aggregator はキーワード・州による法案検索を提供する。
// 検索は常に結果を返し、エラーにはならない。上流から取得できない場合は合成データを返し、
// SearchResult.Source でその旨を示す。
type Aggregator struct {
	api       LegislationAPI
	formatter *Formatter
	logger    *slog.Logger
	metrics   metrics.MetricsCollector
}

// NewAggregator はAggregatorの新しいインスタンスを生成する。
func NewAggregator(api LegislationAPI, formatter *Formatter, logger *slog.Logger, collector metrics.MetricsCollector) *Aggregator {
	if collector == nil {
		collector = metrics.Nop{}
	}
	return &Aggregator{
		api:       api,
		formatter: formatter,
		logger:    logger,
		metrics:   collector,
	}
}

// Search は検索種別に応じて SearchByKeyword または SearchByState を呼び出す。
func (a *Aggregator) Search(ctx context.Context, searchType model.SearchType, query string, limit int) model.SearchResult {
	if searchType == model.SearchTypeState {
		return a.SearchByState(ctx, query, limit)
	}
	return a.SearchByKeyword(ctx, query, limit)
}

// SearchByKeyword は現会期の最新更新法案を1ページ取得し、タイトルにキーワードを含むものを返す。
// 絞り込みは取得済みのページに対して行うため、古い法案は一致しても返らない。
// 一覧の取得に失敗した場合はキーワードの合成データを返す。
func (a *Aggregator) SearchByKeyword(ctx context.Context, keyword string, limit int) model.SearchResult {
	if limit <= 0 {
		limit = DefaultLimit
	}

	bills, err := a.keywordBills(ctx, keyword, limit)
	if err != nil {
		return a.fallback(model.SearchTypeKeyword, keyword, string(congress.ReasonOf(err)), a.formatter.KeywordMock(keyword))
	}
	return model.SearchResult{Bills: bills, Source: model.SourceCongress}
}

func (a *Aggregator) keywordBills(ctx context.Context, keyword string, limit int) ([]model.Bill, error) {
	records, err := a.api.ListRecentBills(ctx, limit)
	if err != nil {
		return nil, err
	}

	matched := filterByTitle(records, keyword)
	if len(matched) > limit {
		matched = matched[:limit]
	}

	// 詳細取得の失敗は一覧レコードでの整形にとどめ、検索全体は失敗させない
	bills := make([]model.Bill, len(matched))
	var g fanout.Group
	g.SetLimit(detailConcurrency)
	for i, rec := range matched {
		g.Go(func() {
			bills[i] = a.detailOrBasic(ctx, rec)
		})
	}
	g.Wait()

	return bills, nil
}

func (a *Aggregator) detailOrBasic(ctx context.Context, rec congress.BillRecord) model.Bill {
	if !rec.HasIdentity() {
		return a.formatter.Basic(rec)
	}
	detail, err := a.api.GetBill(ctx, rec.Type, string(rec.Number))
	if err != nil {
		a.logger.Warn("法案詳細の取得に失敗したため一覧の情報で整形します",
			slog.String("bill_type", rec.Type),
			slog.String("number", string(rec.Number)),
			slog.String("reason", string(congress.ReasonOf(err))),
		)
		return a.formatter.Basic(rec)
	}
	return a.formatter.Detailed(detail)
}

// filterByTitle はタイトルにキーワードを含むレコードを返す（大文字・小文字を区別しない）。
func filterByTitle(records []congress.BillRecord, keyword string) []congress.BillRecord {
	kw := strings.ToLower(keyword)
	var out []congress.BillRecord
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Title), kw) {
			out = append(out, r)
		}
	}
	return out
}

// SearchByState は州選出の議員が提出した法案を更新日時の降順で返す。
// 州を解決できない場合、または該当する議員がいない場合は州の合成データを返す。
func (a *Aggregator) SearchByState(ctx context.Context, state string, limit int) model.SearchResult {
	if limit <= 0 {
		limit = DefaultLimit
	}

	code, ok := NormalizeState(state)
	if !ok {
		return a.fallback(model.SearchTypeState, state, reasonUnresolvedState, a.formatter.StateMock(state))
	}

	members, reason := a.membersInState(ctx, code)
	if len(members) == 0 {
		return a.fallback(model.SearchTypeState, state, reason, a.formatter.StateMock(state))
	}
	if len(members) > maxStateMembers {
		members = members[:maxStateMembers]
	}

	bills := a.sponsoredBills(ctx, members)
	sort.SliceStable(bills, func(i, j int) bool {
		return updateSortKey(bills[i]) > updateSortKey(bills[j])
	})
	if len(bills) > limit {
		bills = bills[:limit]
	}
	return model.SearchResult{Bills: bills, Source: model.SourceCongress}
}

// membersInState は下院・上院の議員一覧から州コードが一致する議員を返す。
// 一方の議院の取得に失敗しても他方の結果は使う。
// 該当者がいない場合は、モック切り替えの理由もあわせて返す。
func (a *Aggregator) membersInState(ctx context.Context, code string) ([]congress.Member, string) {
	var (
		members []congress.Member
		lastErr error
	)
	for _, chamber := range []congress.Chamber{congress.ChamberHouse, congress.ChamberSenate} {
		list, err := a.api.ListMembers(ctx, chamber)
		if err != nil {
			lastErr = err
			continue
		}
		for _, m := range list {
			if strings.ToUpper(m.State) == code {
				members = append(members, m)
			}
		}
	}

	if len(members) > 0 {
		return members, ""
	}
	if lastErr != nil {
		return nil, string(congress.ReasonOf(lastErr))
	}
	return nil, reasonNoMembers
}

// sponsoredBills は議員ごとの提出法案を取得し、議員の順序を保って平坦化する。
// 取得に失敗した議員の分は空として扱う。
func (a *Aggregator) sponsoredBills(ctx context.Context, members []congress.Member) []model.Bill {
	perMember := make([][]model.Bill, len(members))

	var g fanout.Group
	g.SetLimit(sponsoredConcurrency)
	for i, m := range members {
		g.Go(func() {
			records, err := a.api.ListSponsoredLegislation(ctx, m.BioguideID)
			if err != nil {
				a.logger.Warn("議員の提出法案の取得に失敗しました",
					slog.String("bioguide_id", m.BioguideID),
					slog.String("reason", string(congress.ReasonOf(err))),
				)
				return
			}
			formatted := make([]model.Bill, 0, len(records))
			for _, r := range records {
				formatted = append(formatted, a.formatter.Basic(r))
			}
			perMember[i] = formatted
		})
	}
	g.Wait()

	var all []model.Bill
	for _, bills := range perMember {
		all = append(all, bills...)
	}
	return all
}

// updateSortKey は並び替えに使う更新日時を返す。欠損値は最も古いものとして扱う。
func updateSortKey(b model.Bill) string {
	if b.UpdateDate == model.PlaceholderUnknown {
		return ""
	}
	return b.UpdateDate
}

// fallback はモックへの切り替えをログ・メトリクスに記録し、合成データの結果を返す。
func (a *Aggregator) fallback(searchType model.SearchType, query, reason string, bills []model.Bill) model.SearchResult {
	a.logger.Warn("上流からデータを取得できないため合成データを返します",
		slog.String("search_type", string(searchType)),
		slog.String("query", query),
		slog.String("reason", reason),
		slog.Int("count", len(bills)),
	)
	a.metrics.RecordFallback(string(searchType), reason)
	return model.SearchResult{Bills: bills, Source: model.SourceMock, FallbackReason: reason}
}
