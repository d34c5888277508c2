package history

import (
	"time"

	"nimbus/internal/evaluation"
)

// Run is one recorded evaluation.
type Run struct {
	ID                string        `json:"id"`
	Suite             string        `json:"suite"`
	Model             string        `json:"model"`
	StartedAt         time.Time     `json:"started_at"`
	Duration          time.Duration `json:"duration_ns"`
	Total             int           `json:"total"`
	Passed            int           `json:"passed"`
	Errored           int           `json:"errored"`
	Accuracy          float64       `json:"accuracy"`
	AverageConfidence float64       `json:"average_confidence"`
	Outcomes          []Outcome     `json:"outcomes,omitempty"`
}

// Outcome is one case within a recorded run.
type Outcome struct {
	Suite      string  `json:"suite"`
	Text       string  `json:"text"`
	Expected   string  `json:"expected"`
	Got        string  `json:"got"`
	Confidence float64 `json:"confidence"`
	Passed     bool    `json:"passed"`
	Error      string  `json:"error,omitempty"`
}

// NewRun converts an evaluation report into a record ready for RecordRun.
func NewRun(report evaluation.Report, model string) Run {
	run := Run{
		Suite:             report.Suite,
		Model:             model,
		StartedAt:         report.StartedAt,
		Duration:          report.Duration,
		Total:             report.Overall.Total,
		Passed:            report.Overall.Passed,
		Errored:           report.Overall.Errored,
		Accuracy:          report.Overall.Accuracy,
		AverageConfidence: report.Overall.AverageConfidence,
		Outcomes:          make([]Outcome, 0, len(report.Outcomes)),
	}
	for _, o := range report.Outcomes {
		run.Outcomes = append(run.Outcomes, Outcome{
			Suite:      o.Case.Suite,
			Text:       o.Case.Text,
			Expected:   o.Case.Expected.String(),
			Got:        o.Got.String(),
			Confidence: o.Confidence,
			Passed:     o.Passed,
			Error:      o.Err,
		})
	}
	return run
}
