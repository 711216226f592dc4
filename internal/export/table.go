package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/constants"
	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/extract"
)

// WriteTable prints an aligned text table of records followed by an
// active/voided summary line. Active rows leave the status column blank;
// only voided rows are marked, which makes them easy to spot.
func WriteTable(w io.Writer, records []extract.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No records found.")
		return
	}

	numW := len(fmt.Sprintf("%d", len(records)))
	refW := len("Package Ref No.1")
	trkW := len("Tracking No.")
	stsW := len("Status")
	for _, r := range records {
		if len(r.Reference) > refW {
			refW = len(r.Reference)
		}
		if len(r.Tracking) > trkW {
			trkW = len(r.Tracking)
		}
		if len(string(r.Status)) > stsW {
			stsW = len(string(r.Status))
		}
	}

	header := fmt.Sprintf("%*s | %-*s | %-*s | %-*s",
		numW, "#", refW, "Package Ref No.1", trkW, "Tracking No.", stsW, "Status")
	sep := strings.Repeat("-", len(header))

	fmt.Fprintln(w, sep)
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, sep)
	voided := 0
	for i, r := range records {
		status := ""
		if r.Status == constants.StatusVoid {
			status = string(r.Status)
			voided++
		}
		fmt.Fprintf(w, "%*d | %-*s | %-*s | %-*s\n",
			numW, i+1, refW, r.Reference, trkW, r.Tracking, stsW, status)
	}
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "Total: %d packages (%d active, %d voided)\n",
		len(records), len(records)-voided, voided)
}
