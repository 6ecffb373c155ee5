package domain

import (
	"time"

	"cloud-connectivity-check/pkg/apperror"
)

// CheckName identifies one connectivity check.
type CheckName string

const (
	CheckDatabase    CheckName = "database"
	CheckObjectStore CheckName = "object_store"
	CheckCache       CheckName = "cache"
)

// Outcome is the coarse result of a check, used for metrics and JSON output.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// Result is the outcome of a single check run.
type Result struct {
	Check    CheckName          `json:"check"`
	OK       bool               `json:"ok"`
	Details  []string           `json:"details,omitempty"`
	Err      *apperror.AppError `json:"error,omitempty"`
	Duration time.Duration      `json:"-"`
}

// Success builds a passing result.
func Success(check CheckName, details ...string) Result {
	return Result{Check: check, OK: true, Details: details}
}

// Failure builds a failing result carrying the discriminated error.
func Failure(check CheckName, err *apperror.AppError, details ...string) Result {
	return Result{Check: check, OK: false, Err: err, Details: details}
}

// Outcome returns success or failure.
func (r Result) Outcome() Outcome {
	if r.OK {
		return OutcomeSuccess
	}
	return OutcomeFailure
}

// ErrorKind returns the error kind, or "" for a passing result.
func (r Result) ErrorKind() apperror.Kind {
	if r.Err == nil {
		return ""
	}
	return r.Err.Kind
}
