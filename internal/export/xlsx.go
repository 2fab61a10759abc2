package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/hitoshi/legiswatch/internal/model"
)

// sheetName はXLSXエクスポートのシート名。
const sheetName = "Bills"

// ToXLSX はCSVと同じ列順のワークブックを生成する。
func ToXLSX(bills []model.Bill) ([]byte, error) {
	if len(bills) == 0 {
		return nil, ErrNoBills
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("シート名の設定に失敗しました: %w", err)
	}

	if err := writeRow(f, 1, Columns); err != nil {
		return nil, err
	}
	for i, b := range bills {
		if err := writeRow(f, i+2, row(b)); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("ワークブックの出力に失敗しました: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, rowNum int, values []string) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return fmt.Errorf("セル座標の変換に失敗しました: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			return fmt.Errorf("セル %s の書き込みに失敗しました: %w", cell, err)
		}
	}
	return nil
}
