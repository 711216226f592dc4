// Package extract turns the OCR-degraded text of a UPS Daily Shipment Detail
// Report into a sequence of shipment records. The input is semi-structured:
// reference labels, tracking numbers, and VOID markers appear on separate
// lines, in groupings that vary with pagination, and with character
// substitution errors from the rendering step. A single stateful pass over
// the lines recovers the records.
package extract

import (
	"regexp"
	"strings"

	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/constants"
)

var (
	// Standalone VOID word; "Voided" in summary footers is not a marker.
	reVoidWord = regexp.MustCompile(`\bVOID\b`)

	// "Package Ref No.1" label, tolerant of OCR spacing and case drift on
	// the "No", with capture terminated by the next column label. RE2 has
	// no lookahead, so the terminator is a consumed non-capturing
	// alternation; only the capture is used.
	reRefLabel = regexp.MustCompile(`Package\s*Ref\s*N[Oo]\.?\s*1\s*[.:]\s*(.+?)(?:\s+UPS\s+T|\s+Tracking|\s+Service\s+Type|$)`)

	// Column labels that slip past the terminator when OCR mangles their
	// leading whitespace ("UPS TOtal", "TotaI", etc).
	reRefTrailUPS      = regexp.MustCompile(`(?i)\s+UPS\s+T\S.*$`)
	reRefTrailTracking = regexp.MustCompile(`(?i)\s+Tracking.*$`)

	// "Tracking No." label followed by the raw token. The token's first
	// character is 1 or a confusable for it, the second is Z or a
	// confusable (2, 7), then alphanumerics.
	reTrackingLabel = regexp.MustCompile(`Tracking\s*N[Oo]\.?[.•]?\s*:?\s*([1Il][Z27][A-Z0-9]+)`)
)

// Extractor is the line-by-line extraction state machine. It is stateless
// between calls; all carried state lives inside a single Extract invocation,
// so one Extractor may serve concurrent callers.
type Extractor struct {
	rebuilder *Rebuilder
}

func New(rebuilder *Rebuilder) *Extractor {
	if rebuilder == nil {
		rebuilder = NewRebuilder("", nil)
	}
	return &Extractor{rebuilder: rebuilder}
}

// Extract consumes per-page text in document order and returns the extracted
// records. Empty page text is skipped. Unrecognized lines are ignored; no
// input shape is an error.
func (e *Extractor) Extract(pages []string) []Record {
	var (
		list        RecordList
		currentRef  string
		pendingVoid bool
	)

	for _, page := range pages {
		if page == "" {
			continue
		}
		for _, line := range strings.Split(page, "\n") {
			normalized := NormalizeLine(line)

			// VOID markers are matched on the raw line: normalization
			// only touches digit glyphs, but keeping the raw line here
			// means an artifact inside the marker can never invent one.
			if reVoidWord.MatchString(line) && !strings.Contains(line, "Voided") {
				// A marker printed below its record voids the record
				// already emitted; a marker on a line that itself
				// carries a tracking label (or one seen before any
				// record) belongs to the record about to be emitted.
				if list.Len() > 0 && !strings.Contains(line, "Tracking") {
					list.AmendLastStatus(constants.StatusVoid)
				} else {
					pendingVoid = true
				}
			}

			if m := reRefLabel.FindStringSubmatch(normalized); m != nil {
				ref := strings.TrimSpace(m[1])
				ref = strings.TrimSpace(reRefTrailUPS.ReplaceAllString(ref, ""))
				ref = strings.TrimSpace(reRefTrailTracking.ReplaceAllString(ref, ""))
				currentRef = ref
			}

			if m := reTrackingLabel.FindStringSubmatch(normalized); m != nil {
				tracking := e.rebuilder.Rebuild(strings.TrimSpace(m[1]))
				if len(tracking) < e.rebuilder.CanonicalLength() {
					// Truncated token: the line wrapped mid-number.
					// Not a record; the pending void, if any, still
					// belongs to the next complete match.
					continue
				}
				status := constants.StatusActive
				if pendingVoid {
					status = constants.StatusVoid
				}
				list.Append(Record{
					Reference: currentRef,
					Tracking:  tracking,
					Status:    status,
				})
				pendingVoid = false
			}
		}
	}

	return list.Records()
}
