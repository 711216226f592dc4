package extract

import "github.com/samuelkim085/UPS-dailyShipmentDetailReport/constants"

// Record is one extracted shipment entry from the report.
type Record struct {
	Reference string                 `json:"reference"`
	Tracking  string                 `json:"tracking"`
	Status    constants.RecordStatus `json:"status"`
}

// RecordList is the accumulated output of one extraction pass. Records are
// appended as tracking matches fire; a later void marker may amend the status
// of the most recently appended record, but nothing else is ever mutated.
type RecordList struct {
	recs []Record
}

func (l *RecordList) Append(r Record) {
	l.recs = append(l.recs, r)
}

// AmendLastStatus rewrites the status of the last appended record.
// Returns false when the list is empty.
func (l *RecordList) AmendLastStatus(s constants.RecordStatus) bool {
	if len(l.recs) == 0 {
		return false
	}
	l.recs[len(l.recs)-1].Status = s
	return true
}

func (l *RecordList) Len() int {
	return len(l.recs)
}

// Records returns the underlying slice. A nil list yields an empty,
// non-nil slice so callers can encode it as [] rather than null.
func (l *RecordList) Records() []Record {
	if l.recs == nil {
		return []Record{}
	}
	return l.recs
}

// VoidCount returns how many records carry the Void status.
func (l *RecordList) VoidCount() int {
	n := 0
	for _, r := range l.recs {
		if r.Status == constants.StatusVoid {
			n++
		}
	}
	return n
}

// ActiveCount returns how many records carry the Active status.
func (l *RecordList) ActiveCount() int {
	return len(l.recs) - l.VoidCount()
}
