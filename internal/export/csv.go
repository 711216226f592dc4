// Package export renders extracted record sequences for their consumers:
// CSV and XLSX files for spreadsheet users, an aligned text table for the
// terminal. It reads records only; nothing here feeds back into extraction.
package export

import (
	"encoding/csv"
	"io"

	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/extract"
)

// Column headers match the report's own field labels so the output lines up
// with what shipping staff already key on.
var csvHeader = []string{"Package Ref No.1", "Tracking No.", "Status"}

// WriteCSV renders records as CSV to w.
func WriteCSV(w io.Writer, records []extract.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write([]string{r.Reference, r.Tracking, string(r.Status)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
