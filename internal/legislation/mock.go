package legislation

import (
	"fmt"
	"hash/fnv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hitoshi/legiswatch/internal/model"
)

// mockBill は合成データの元になる法案の定義。
type mockBill struct {
	billType   string
	number     string
	title      string
	summary    string
	sponsor    string
	introduced string
}

// mockTopics はトピック別の固定の合成法案。照合は定義順に行う。
var mockTopics = []struct {
	topic string
	bills []mockBill
}{
	{"healthcare", []mockBill{
		{"HR", "3421", "Healthcare Accessibility and Affordability Act of 2024",
			"A bill to improve access to healthcare services and reduce prescription drug costs for Americans. This comprehensive legislation addresses key issues in healthcare delivery and aims to expand coverage while maintaining quality of care.",
			"Rep. Sarah Johnson (D-CA)", "2024-12-15"},
		{"S", "1247", "Medicare Enhancement and Protection Act",
			"To strengthen Medicare benefits and protect seniors from rising healthcare costs. The bill includes provisions for dental and vision coverage under Medicare Part B.",
			"Sen. Michael Thompson (R-TX)", "2024-12-10"},
	}},
	{"climate", []mockBill{
		{"HR", "2156", "Clean Energy Infrastructure Investment Act",
			"Legislation to accelerate the deployment of renewable energy infrastructure and create green jobs across America. Includes tax incentives for solar and wind energy projects.",
			"Rep. Elena Rodriguez (D-NV)", "2024-12-18"},
		{"S", "892", "Climate Resilience and Adaptation Act of 2024",
			"A comprehensive approach to climate adaptation and resilience building in vulnerable communities. Provides federal funding for climate-resilient infrastructure.",
			"Sen. James Wilson (I-VT)", "2024-12-12"},
	}},
	{"education", []mockBill{
		{"HR", "4567", "Student Debt Relief and College Affordability Act",
			"To provide student loan forgiveness and make college more affordable for middle-class families. Includes provisions for community college funding and trade school support.",
			"Rep. David Chen (D-WA)", "2024-12-20"},
	}},
	{"infrastructure", []mockBill{
		{"HR", "1789", "National Infrastructure Modernization Act",
			"A comprehensive infrastructure bill addressing roads, bridges, broadband, and water systems. Aims to create jobs while modernizing America's infrastructure.",
			"Rep. Maria Gonzalez (R-FL)", "2024-12-14"},
	}},
	{"technology", []mockBill{
		{"HR", "2890", "Digital Privacy and Security Act of 2024",
			"Comprehensive legislation to protect consumer data privacy and enhance cybersecurity standards for businesses. Includes requirements for data breach notifications and user consent.",
			"Rep. Jennifer Kim (D-CA)", "2024-12-13"},
	}},
}

// KeywordMock はキーワード検索の合成データを返す。
// トピック名とキーワード（小文字）のどちらかが他方を含む場合、そのトピックの法案を定義順に連結する。
// 一致するトピックが無い場合はキーワードを埋め込んだ汎用の2件を返す。
func (f *Formatter) KeywordMock(keyword string) []model.Bill {
	kw := strings.ToLower(keyword)

	var selected []mockBill
	for _, t := range mockTopics {
		if strings.Contains(kw, t.topic) || strings.Contains(t.topic, kw) {
			selected = append(selected, t.bills...)
		}
	}

	if len(selected) == 0 {
		titled := cases.Title(language.Und).String(keyword)
		selected = []mockBill{
			{"HR", "5001",
				fmt.Sprintf("American Innovation and Competitiveness Act Related to %s", titled),
				fmt.Sprintf("Legislation addressing %s policy and its impact on American competitiveness. This bill aims to strengthen our nation's position in %s-related sectors through targeted investments and regulatory reforms.", keyword, keyword),
				"Rep. Alex Martinez (D-NY)", "2024-12-16"},
			{"S", "2301",
				fmt.Sprintf("Bipartisan %s Reform Act of 2024", titled),
				fmt.Sprintf("A bipartisan approach to %s reform that brings together stakeholders from across the political spectrum. The bill includes provisions for transparency, accountability, and effectiveness in %s policy.", keyword, keyword),
				"Sen. Robert Davis (R-GA)", "2024-12-11"},
		}
	}

	return f.fromMocks(selected)
}

// StateMock は州検索の合成データとして下院・上院の2件を返す。
// 法案番号は州コードのFNV-1a 32bitハッシュから決まるため、同じ州には常に同じ番号を返す。
// 州を解決できない場合は入力を大文字化したものをコードとして使う。
func (f *Formatter) StateMock(state string) []model.Bill {
	code, ok := NormalizeState(state)
	if !ok {
		code = strings.ToUpper(state)
	}

	houseNumber := fnv1a32(code)%9000 + 1000
	senateNumber := fnv1a32(code+"senate")%2000 + 100

	return f.fromMocks([]mockBill{
		{"HR", fmt.Sprint(houseNumber),
			fmt.Sprintf("%s Economic Development and Infrastructure Act", state),
			fmt.Sprintf("A bill to promote economic development and improve infrastructure in the state of %s. Includes funding for transportation, broadband expansion, and job training programs specific to %s's needs.", state, state),
			fmt.Sprintf("Rep. [Representative Name] (D-%s)", code), "2024-12-19"},
		{"S", fmt.Sprint(senateNumber),
			fmt.Sprintf("%s Small Business Support Act of 2024", state),
			fmt.Sprintf("Legislation to support small businesses and entrepreneurs in %s. Provides tax incentives, grants, and loan guarantees for small business development in rural and urban areas of %s.", state, state),
			fmt.Sprintf("Sen. [Senator Name] (R-%s)", code), "2024-12-17"},
	})
}

// fromMocks は合成法案を実データと同じURL生成規則で model.Bill に変換する。
// 更新日は提出日と同じ値にする。
func (f *Formatter) fromMocks(mocks []mockBill) []model.Bill {
	bills := make([]model.Bill, 0, len(mocks))
	for _, m := range mocks {
		bills = append(bills, model.Bill{
			ID:             m.billType + m.number,
			Title:          m.title,
			Summary:        m.summary,
			IntroducedDate: m.introduced,
			Sponsor:        m.sponsor,
			CongressURL:    CongressURL(f.session, m.billType, m.number),
			BillType:       m.billType,
			Number:         m.number,
			UpdateDate:     m.introduced,
		})
	}
	return bills
}

// fnv1a32 はUTF-8バイト列のFNV-1a 32bitハッシュを返す。
func fnv1a32(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}
