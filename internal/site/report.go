package site

import (
	"time"
)

// Outcome summarizes how a run ended.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomePartial Outcome = "partial" // continue-on-error run with failures
	OutcomeFailed  Outcome = "failed"
)

// Report describes one run.
type Report struct {
	BuildID       string
	Start         time.Time
	End           time.Time
	Files         []string // output paths relative to the output root, in write order
	Failures      []error
	TaskDurations map[string]time.Duration
	Outcome       Outcome
}

func newReport(buildID string) *Report {
	return &Report{
		BuildID:       buildID,
		Start:         time.Now(),
		TaskDurations: map[string]time.Duration{},
	}
}

// Duration is the wall time of the run.
func (r *Report) Duration() time.Duration { return r.End.Sub(r.Start) }

func (r *Report) finish(err error) {
	r.End = time.Now()
	switch {
	case err != nil:
		r.Outcome = OutcomeFailed
	case len(r.Failures) > 0:
		r.Outcome = OutcomePartial
	default:
		r.Outcome = OutcomeSuccess
	}
}
