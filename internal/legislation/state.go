package legislation

import "strings"

// stateCodes は州名（小文字）から2文字の州コードへの対応表。
var stateCodes = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR",
	"california": "CA", "colorado": "CO", "connecticut": "CT", "delaware": "DE",
	"florida": "FL", "georgia": "GA", "hawaii": "HI", "idaho": "ID",
	"illinois": "IL", "indiana": "IN", "iowa": "IA", "kansas": "KS",
	"kentucky": "KY", "louisiana": "LA", "maine": "ME", "maryland": "MD",
	"massachusetts": "MA", "michigan": "MI", "minnesota": "MN", "mississippi": "MS",
	"missouri": "MO", "montana": "MT", "nebraska": "NE", "nevada": "NV",
	"new hampshire": "NH", "new jersey": "NJ", "new mexico": "NM", "new york": "NY",
	"north carolina": "NC", "north dakota": "ND", "ohio": "OH", "oklahoma": "OK",
	"oregon": "OR", "pennsylvania": "PA", "rhode island": "RI", "south carolina": "SC",
	"south dakota": "SD", "tennessee": "TN", "texas": "TX", "utah": "UT",
	"vermont": "VT", "virginia": "VA", "washington": "WA", "west virginia": "WV",
	"wisconsin": "WI", "wyoming": "WY",
}

// knownCodes は stateCodes に含まれる州コードの集合。
var knownCodes = func() map[string]struct{} {
	m := make(map[string]struct{}, len(stateCodes))
	for _, code := range stateCodes {
		m[code] = struct{}{}
	}
	return m
}()

// NormalizeState は州名または州コードを2文字の大文字コードに正規化する。
//   - 既知の州コード（大文字・小文字を問わない）はそのまま大文字で返す
//   - 州名は前後の空白と大文字・小文字を無視して対応表から引く
//   - 対応表にない2文字の入力は大文字化して返す（推測）
//   - それ以外は解決不能として ok=false を返す
//
// 2文字判定は入力そのものの長さで行い、前後に空白を含む2文字コードは州名として扱う。
func NormalizeState(input string) (code string, ok bool) {
	if len(input) == 2 {
		upper := strings.ToUpper(input)
		if _, known := knownCodes[upper]; known {
			return upper, true
		}
	}

	if code, found := stateCodes[strings.ToLower(strings.TrimSpace(input))]; found {
		return code, true
	}

	if len(input) == 2 {
		return strings.ToUpper(input), true
	}
	return "", false
}
