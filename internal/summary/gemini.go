package summary

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// DefaultGeminiModel はGeminiプロバイダーのデフォルトモデル。
const DefaultGeminiModel = "gemini-2.0-flash"

// geminiMaxOutputTokens は要約の出力トークン上限。
const geminiMaxOutputTokens = 256

// contentGenerator は genai.Models のうちGeminiProviderが使うメソッド。
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiProvider はGemini APIを使う要約プロバイダー。
type GeminiProvider struct {
	models contentGenerator
	model  string
}

// NewGeminiProvider はGemini APIクライアントを生成する。
// httpClientがnilの場合はgenaiのデフォルトクライアントを使う。
func NewGeminiProvider(ctx context.Context, apiKey, model string, httpClient *http.Client) (*GeminiProvider, error) {
	if model == "" {
		model = DefaultGeminiModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("Geminiクライアントの生成に失敗しました: %w", err)
	}
	return &GeminiProvider{models: client.Models, model: model}, nil
}

// Name はプロバイダー名を返す。
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Summarize はプロンプトからGeminiで要約を生成する。
func (p *GeminiProvider) Summarize(ctx context.Context, prompt string) (string, error) {
	resp, err := p.models.GenerateContent(ctx, p.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(0.2)),
		MaxOutputTokens: geminiMaxOutputTokens,
	})
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", &StatusError{StatusCode: apiErr.Code}
		}
		return "", err
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrMalformedResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", ErrMalformedResponse
	}
	return text, nil
}
