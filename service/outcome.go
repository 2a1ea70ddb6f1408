package service

import "github.com/companieshouse/payments.gateway.ch.gov.uk/models"

// Outcome enumerates what happened to a single record in a batch
type Outcome int

const (
	// Skipped outcome, the record was not eligible when reached
	Skipped Outcome = iota

	// Succeeded outcome
	Succeeded

	// Retried outcome, the record stays open for a later run
	Retried

	// Exhausted outcome, the record reached a terminal failure
	Exhausted

	// Failed outcome, the record could not be processed
	Failed
)

var vals = [...]string{
	"skipped",
	"succeeded",
	"retried",
	"exhausted",
	"failed",
}

// String representation of `Outcome`
func (o Outcome) String() string {
	return vals[o]
}

// record counts the outcome against report. Failed outcomes are counted by
// ProcessingReport.AddFailure along with their cause.
func (o Outcome) record(report *models.ProcessingReport) {
	switch o {
	case Succeeded:
		report.Succeeded++
	case Retried:
		report.Retried++
	case Exhausted:
		report.Exhausted++
	}
}
