package domain

import (
	"time"

	"github.com/google/uuid"
)

// Report collects the results of one pass over all checks, in run order.
type Report struct {
	RunID     uuid.UUID `json:"run_id"`
	StartedAt time.Time `json:"started_at"`
	Results   []Result  `json:"results"`
}

// Healthy returns true if every check passed.
func (r *Report) Healthy() bool {
	return r.Failed() == 0
}

// Failed returns the number of failing checks.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.OK {
			n++
		}
	}
	return n
}

// Result returns the result for the named check.
func (r *Report) Result(name CheckName) (Result, bool) {
	for _, res := range r.Results {
		if res.Check == name {
			return res, true
		}
	}
	return Result{}, false
}
