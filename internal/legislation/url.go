package legislation

import (
	"fmt"
	"strings"
)

// congressHome は法案種別・番号が不明な場合に返すURL。
const congressHome = "https://www.congress.gov"

// urlSegments は法案種別からcongress.govのパスセグメントへの対応表。
var urlSegments = map[string]string{
	"HR":      "house-bill",
	"S":       "senate-bill",
	"HJRES":   "house-joint-resolution",
	"SJRES":   "senate-joint-resolution",
	"HCONRES": "house-concurrent-resolution",
	"SCONRES": "senate-concurrent-resolution",
	"HRES":    "house-resolution",
	"SRES":    "senate-resolution",
}

// CongressURL は法案の公開ページURLを生成する。
// 種別または番号が空の場合はcongress.govのトップを返す。未知の種別は "bill" セグメントになる。
func CongressURL(session int, billType, number string) string {
	if billType == "" || number == "" {
		return congressHome
	}
	segment, ok := urlSegments[strings.ToUpper(billType)]
	if !ok {
		segment = "bill"
	}
	return fmt.Sprintf("%s/bill/%dth-congress/%s/%s", congressHome, session, segment, number)
}
