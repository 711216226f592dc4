package constants

// RecordStatus is the lifecycle status of an extracted shipment record.
type RecordStatus string

// Stable values (these exact strings appear in CSV/XLSX/JSON output).
const (
	StatusActive RecordStatus = "Active" // label printed and shipped
	StatusVoid   RecordStatus = "Void"   // label voided after creation
)

// RunStatus is the canonical status for rows in extract_runs.
type RunStatus string

const (
	RunStatusOK     RunStatus = "OK"     // extraction completed
	RunStatusEmpty  RunStatus = "EMPTY"  // completed, zero records
	RunStatusFailed RunStatus = "FAILED" // terminal failure
)
