package ports

import (
	"context"

	"cloud-connectivity-check/internal/core/domain"
)

// Checker probes one external dependency.
type Checker interface {
	// Name returns the check name (e.g., "database", "cache").
	Name() domain.CheckName
	// Check runs the probe once. Failures are returned in the result, never panicked.
	Check(ctx context.Context) domain.Result
}

// ResultRecorder receives every check result (metrics, audit).
type ResultRecorder interface {
	Record(res domain.Result)
}
