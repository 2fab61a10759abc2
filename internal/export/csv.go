package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/hitoshi/legiswatch/internal/model"
)

// ToCSV はヘッダー行と法案ごとの1行からなるCSVを生成する。
// 行は入力順のまま出力し、カンマや引用符を含む値はRFC 4180に従って引用する。
func ToCSV(bills []model.Bill) ([]byte, error) {
	if len(bills) == 0 {
		return nil, ErrNoBills
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(Columns); err != nil {
		return nil, fmt.Errorf("CSVヘッダーの書き込みに失敗しました: %w", err)
	}
	for _, b := range bills {
		if err := w.Write(row(b)); err != nil {
			return nil, fmt.Errorf("CSV行の書き込みに失敗しました (%s): %w", b.ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("CSVの出力に失敗しました: %w", err)
	}
	return buf.Bytes(), nil
}
