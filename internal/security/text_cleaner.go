package security

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// blockElements は除去時に語の区切りとして扱う要素。
// インライン要素（strong, em など）は区切らない。
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "dd": true, "div": true, "dl": true, "dt": true,
	"footer": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "header": true, "hr": true, "li": true,
	"ol": true, "p": true, "pre": true, "section": true, "table": true,
	"td": true, "th": true, "tr": true, "ul": true,
}

// TextCleaner は上流APIの要約フィールドに含まれるHTMLをプレーンテキストへ変換する。
// Congress.govの要約本文は <p> や <strong> を含むHTML断片として返されることがある。
// ゼロ値は使用できないため NewTextCleaner で生成すること。
type TextCleaner struct {
	policy *bluemonday.Policy
}

// NewTextCleaner はすべてのタグを除去するTextCleanerを生成する。
func NewTextCleaner() *TextCleaner {
	return &TextCleaner{policy: bluemonday.StrictPolicy()}
}

// Clean はタグを除去し、HTMLエンティティを復元し、連続する空白を1つにまとめる。
// ブロック要素の境界は空白1つになる。
// 空文字列の入力には空文字列を返す。
func (c *TextCleaner) Clean(raw string) string {
	if raw == "" {
		return ""
	}
	stripped := c.policy.Sanitize(separateBlocks(raw))
	// StrictPolicyは & や引用符をエスケープした状態で返すため元に戻す
	unescaped := html.UnescapeString(stripped)
	return strings.Join(strings.Fields(unescaped), " ")
}

// separateBlocks はブロック要素の開始・終了タグの直後に空白を挿入する。
// それ以外のトークンは元の文字列のまま書き戻す。
func separateBlocks(raw string) string {
	z := html.NewTokenizer(strings.NewReader(raw))
	var b strings.Builder
	b.Grow(len(raw) + 16)

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		// TagName はバッファを書き換えるため、先に Raw を書き出す
		b.Write(z.Raw())
		switch tt {
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if blockElements[string(name)] {
				b.WriteByte(' ')
			}
		}
	}
	return b.String()
}
