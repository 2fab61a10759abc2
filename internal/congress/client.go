// Package congress はCongress.gov v3 APIのクライアントを提供する。
// 法案一覧・法案詳細・議院別議員一覧・議員の提出法案一覧の取得を含む。
package congress

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/hitoshi/legiswatch/internal/metrics"
)

const (
	// DefaultBaseURL はCongress.gov APIのベースURL。
	DefaultBaseURL = "https://api.congress.gov/v3"
	// DefaultSession は現在の議会会期（第118議会: 2023-2025）。
	DefaultSession = 118

	// maxBillListLimit は法案一覧の1ページあたりの上限。
	maxBillListLimit = 100
	// memberPageSize は議員一覧の取得件数。
	memberPageSize = 250
	// sponsoredPageSize は議員ごとの提出法案の取得件数。
	sponsoredPageSize = 10
	// maxResponseSize はレスポンスボディの読み取り上限（10MB）。
	maxResponseSize = 10 << 20

	userAgent = "LegisWatch/1.0"
)

// メトリクス・ログで使うエンドポイント名。
const (
	EndpointBillList      = "bill_list"
	EndpointBillDetail    = "bill_detail"
	EndpointMemberList    = "member_list"
	EndpointSponsoredList = "sponsored_legislation"
)

// Options はClientの設定値。
type Options struct {
	BaseURL         string
	APIKey          string
	Session         int
	ListTimeout     time.Duration
	DetailTimeout   time.Duration
	RequestsPerHour int
}

// Client はCongress.gov APIのクライアント。
// 一度生成した後は変更されないため、複数のgoroutineから同時に使用できる。
type Client struct {
	httpClient    *http.Client
	logger        *slog.Logger
	metrics       metrics.MetricsCollector
	limiter       *rate.Limiter
	baseURL       string
	apiKey        string
	session       int
	listTimeout   time.Duration
	detailTimeout time.Duration
}

// NewClient はClientの新しいインスタンスを生成する。
// 未設定のオプションにはデフォルト値を適用する。
func NewClient(httpClient *http.Client, logger *slog.Logger, collector metrics.MetricsCollector, opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Session <= 0 {
		opts.Session = DefaultSession
	}
	if opts.ListTimeout <= 0 {
		opts.ListTimeout = 10 * time.Second
	}
	if opts.DetailTimeout <= 0 {
		opts.DetailTimeout = 5 * time.Second
	}
	if opts.RequestsPerHour <= 0 {
		opts.RequestsPerHour = 5000
	}
	if collector == nil {
		collector = metrics.Nop{}
	}

	return &Client{
		httpClient:    httpClient,
		logger:        logger,
		metrics:       collector,
		limiter:       newQuotaLimiter(opts.RequestsPerHour),
		baseURL:       strings.TrimRight(opts.BaseURL, "/"),
		apiKey:        opts.APIKey,
		session:       opts.Session,
		listTimeout:   opts.ListTimeout,
		detailTimeout: opts.DetailTimeout,
	}
}

// newQuotaLimiter は1時間あたりの上限をそのままバケットの容量とするリミッターを生成する。
// 上限に達するまでは待たずに送信し、使い切った後は1時間で満杯に戻る速度で補充する。
func newQuotaLimiter(requestsPerHour int) *rate.Limiter {
	return rate.NewLimiter(rate.Every(time.Hour/time.Duration(requestsPerHour)), requestsPerHour)
}

// Session は問い合わせ対象の議会会期を返す。
func (c *Client) Session() int {
	return c.session
}

// ListRecentBills は現会期の法案を更新日時の降順で1ページ取得する。
// limitは上流の制約により100件に切り詰められる。
func (c *Client) ListRecentBills(ctx context.Context, limit int) ([]BillRecord, error) {
	if limit <= 0 || limit > maxBillListLimit {
		limit = maxBillListLimit
	}
	q := url.Values{}
	q.Set("limit", itoa(limit))
	q.Set("sort", "updateDate+desc")

	var resp billListResponse
	path := fmt.Sprintf("/bill/%d", c.session)
	if err := c.getJSON(ctx, EndpointBillList, path, q, c.listTimeout, &resp); err != nil {
		return nil, err
	}
	return resp.Bills, nil
}

// GetBill は法案の詳細レコードを取得する。billTypeは大文字・小文字を問わない。
func (c *Client) GetBill(ctx context.Context, billType, number string) (BillRecord, error) {
	var resp billDetailResponse
	path := fmt.Sprintf("/bill/%d/%s/%s", c.session, url.PathEscape(strings.ToLower(billType)), url.PathEscape(number))
	if err := c.getJSON(ctx, EndpointBillDetail, path, nil, c.detailTimeout, &resp); err != nil {
		return BillRecord{}, err
	}
	return resp.Bill, nil
}

// ListMembers は指定した議院の現会期の議員を1ページ（最大250件）取得する。
func (c *Client) ListMembers(ctx context.Context, chamber Chamber) ([]Member, error) {
	q := url.Values{}
	q.Set("limit", itoa(memberPageSize))

	var resp memberListResponse
	path := fmt.Sprintf("/member/%s/%d", chamber, c.session)
	if err := c.getJSON(ctx, EndpointMemberList, path, q, c.listTimeout, &resp); err != nil {
		return nil, err
	}
	return resp.Members, nil
}

// ListSponsoredLegislation は議員が提出した法案を更新日時の降順で最大10件取得する。
func (c *Client) ListSponsoredLegislation(ctx context.Context, bioguideID string) ([]BillRecord, error) {
	if bioguideID == "" {
		return nil, nil
	}
	q := url.Values{}
	q.Set("limit", itoa(sponsoredPageSize))
	q.Set("sort", "updateDate+desc")

	var resp sponsoredLegislationResponse
	path := fmt.Sprintf("/member/%s/sponsored-legislation", url.PathEscape(bioguideID))
	if err := c.getJSON(ctx, EndpointSponsoredList, path, q, c.detailTimeout, &resp); err != nil {
		return nil, err
	}
	return resp.SponsoredLegislation, nil
}

// getJSON はGETリクエストを送信し、200応答のJSONをoutへデコードする。
// 失敗時は常に *FetchError を返す。リトライは行わない。
func (c *Client) getJSON(ctx context.Context, endpoint, path string, query url.Values, timeout time.Duration, out any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err := c.doGetJSON(ctx, endpoint, path, query, out)

	result := "ok"
	if err != nil {
		result = string(ReasonOf(err))
	}
	c.metrics.RecordUpstreamRequest(endpoint, result, time.Since(start))
	return err
}

func (c *Client) doGetJSON(ctx context.Context, endpoint, path string, query url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		reason := ReasonRateLimited
		if ctx.Err() != nil {
			reason = ReasonTimeout
		}
		return &FetchError{Endpoint: endpoint, Reason: reason, Err: err}
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("format", "json")
	reqURL := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &FetchError{Endpoint: endpoint, Reason: ReasonTransport, Err: fmt.Errorf("HTTPリクエストの作成に失敗しました: %w", err)}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		reason := classifyTransportError(err)
		c.logger.Error("Congress.gov APIの呼び出しに失敗しました",
			slog.String("endpoint", endpoint),
			slog.String("reason", string(reason)),
			slog.String("error", err.Error()),
		)
		return &FetchError{Endpoint: endpoint, Reason: reason, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
		reason := ClassifyHTTPStatus(resp.StatusCode)
		c.logger.Error("Congress.gov APIがエラーステータスを返しました",
			slog.String("endpoint", endpoint),
			slog.String("reason", string(reason)),
			slog.Int("http_status", resp.StatusCode),
		)
		return &FetchError{Endpoint: endpoint, Reason: reason, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		reason := classifyTransportError(err)
		c.logger.Error("レスポンスボディの読み取りに失敗しました",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()),
		)
		return &FetchError{Endpoint: endpoint, Reason: reason, Err: err}
	}

	if err := json.Unmarshal(body, out); err != nil {
		c.logger.Error("Congress.gov APIのレスポンスのパースに失敗しました",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()),
		)
		return &FetchError{Endpoint: endpoint, Reason: ReasonDecode, Err: err}
	}

	c.logger.Debug("Congress.gov APIの呼び出しに成功しました",
		slog.String("endpoint", endpoint),
		slog.Int("body_bytes", len(body)),
	)
	return nil
}
