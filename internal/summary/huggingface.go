package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

const (
	// DefaultHuggingFaceURL はHuggingFace Inference APIの要約モデルのエンドポイント。
	DefaultHuggingFaceURL = "https://api-inference.huggingface.co/models/facebook/bart-large-cnn"
	// summaryNotAvailable は応答に summary_text が無い場合の値。
	summaryNotAvailable = "Summary not available"
	// maxHFResponseSize はレスポンスボディの読み取り上限（1MB）。
	maxHFResponseSize = 1 << 20
)

// hfRequest はHuggingFace Inference APIへのリクエストボディ。
type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxLength int  `json:"max_length"`
	MinLength int  `json:"min_length"`
	DoSample  bool `json:"do_sample"`
}

// HuggingFaceProvider はHuggingFace Inference APIを使う要約プロバイダー。
type HuggingFaceProvider struct {
	httpClient *http.Client
	logger     *slog.Logger
	apiKey     string
	endpoint   string
}

// NewHuggingFaceProvider はHuggingFaceProviderを生成する。endpointが空の場合はデフォルトを使う。
func NewHuggingFaceProvider(httpClient *http.Client, logger *slog.Logger, apiKey, endpoint string) *HuggingFaceProvider {
	if endpoint == "" {
		endpoint = DefaultHuggingFaceURL
	}
	return &HuggingFaceProvider{
		httpClient: httpClient,
		logger:     logger,
		apiKey:     apiKey,
		endpoint:   endpoint,
	}
}

// Name はプロバイダー名を返す。
func (p *HuggingFaceProvider) Name() string {
	return "huggingface"
}

// Summarize はプロンプトを送信し、応答配列の先頭要素の summary_text を返す。
func (p *HuggingFaceProvider) Summarize(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(hfRequest{
		Inputs: prompt,
		Parameters: hfParameters{
			MaxLength: 150,
			MinLength: 50,
			DoSample:  false,
		},
	})
	if err != nil {
		return "", fmt.Errorf("リクエストボディの生成に失敗しました: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("HTTPリクエストの作成に失敗しました: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxHFResponseSize))
		return "", &StatusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxHFResponseSize))
	if err != nil {
		return "", fmt.Errorf("レスポンスボディの読み取りに失敗しました: %w", err)
	}

	// 配列でない応答・空配列は「失敗」、JSONとして読めない応答や先頭要素がオブジェクトでない応答は
	// 「利用不可」として扱う
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("応答のJSONを解析できません: %w", err)
	}
	results, ok := decoded.([]any)
	if !ok || len(results) == 0 {
		p.logger.Debug("HuggingFaceの応答が空でない配列ではありません", slog.String("type", fmt.Sprintf("%T", decoded)))
		return "", ErrMalformedResponse
	}
	first, ok := results[0].(map[string]any)
	if !ok {
		return "", fmt.Errorf("応答配列の先頭要素がオブジェクトではありません: %T", results[0])
	}

	text, _ := first["summary_text"].(string)
	if text == "" {
		return summaryNotAvailable, nil
	}
	return text, nil
}
