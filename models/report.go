package models

import "time"

// Stages at which a single record can fail within a batch
const (
	StageSelect   = "select"
	StageValidate = "validate"
	StageSettle   = "settle"
	StageSave     = "save"
	StageLock     = "lock"
)

// ProcessingReport summarises a single run of a periodic job
type ProcessingReport struct {
	Job       string          `json:"job"`
	RanAt     time.Time       `json:"ran_at"`
	Skipped   bool            `json:"skipped"`
	Selected  int             `json:"selected"`
	Succeeded int             `json:"succeeded"`
	Retried   int             `json:"retried,omitempty"`
	Exhausted int             `json:"exhausted,omitempty"`
	Failed    int             `json:"failed"`
	Failures  []RecordFailure `json:"failures,omitempty"`
}

// RecordFailure describes why one record in a batch could not be processed
type RecordFailure struct {
	RecordID string `json:"record_id,omitempty"`
	Stage    string `json:"stage"`
	Error    string `json:"error"`
}

// AddFailure records a failure against the report.
func (report *ProcessingReport) AddFailure(recordID, stage string, err error) {
	report.Failed++
	report.Failures = append(report.Failures, RecordFailure{
		RecordID: recordID,
		Stage:    stage,
		Error:    err.Error(),
	})
}
