package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/constants"
	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/extract"
)

const xlsxSheet = "UPS Shipments"

// BuildXLSX renders records as a styled XLSX workbook and returns its bytes:
// bold white-on-blue header row, thin borders throughout, void rows filled
// light red so they stand out when scanning the sheet.
func BuildXLSX(records []extract.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, err
	}

	border := []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    border,
	})
	if err != nil {
		return nil, err
	}
	cellStyle, err := f.NewStyle(&excelize.Style{Border: border})
	if err != nil {
		return nil, err
	}
	voidStyle, err := f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFC7CE"}},
		Border: border,
	})
	if err != nil {
		return nil, err
	}

	headers := []string{"#", "Package Ref No.1", "Tracking No.", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(xlsxSheet, cell, h); err != nil {
			return nil, err
		}
		_ = f.SetCellStyle(xlsxSheet, cell, cell, headerStyle)
	}

	for i, r := range records {
		row := i + 2
		style := cellStyle
		if r.Status == constants.StatusVoid {
			style = voidStyle
		}
		values := []any{i + 1, r.Reference, r.Tracking, string(r.Status)}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(xlsxSheet, cell, v); err != nil {
				return nil, err
			}
			_ = f.SetCellStyle(xlsxSheet, cell, cell, style)
		}
	}

	_ = f.SetColWidth(xlsxSheet, "A", "A", 6)
	_ = f.SetColWidth(xlsxSheet, "B", "B", 40)
	_ = f.SetColWidth(xlsxSheet, "C", "C", 24)
	_ = f.SetColWidth(xlsxSheet, "D", "D", 10)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
