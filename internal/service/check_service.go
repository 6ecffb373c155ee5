package service

import (
	"context"
	"fmt"
	"time"

	"cloud-connectivity-check/internal/core/domain"
	"cloud-connectivity-check/internal/core/ports"
	"cloud-connectivity-check/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type checkService struct {
	checkers []ports.Checker
	timeout  time.Duration
	recorder ports.ResultRecorder
	log      zerolog.Logger
}

// NewCheckService creates a service running checkers in the given order.
// timeout bounds each check (0 = client defaults). If recorder is nil,
// results are only logged.
func NewCheckService(checkers []ports.Checker, timeout time.Duration, recorder ports.ResultRecorder, log zerolog.Logger) ports.CheckService {
	return &checkService{
		checkers: checkers,
		timeout:  timeout,
		recorder: recorder,
		log:      log,
	}
}

// Run executes every check sequentially. A failing check never stops the
// ones after it.
func (s *checkService) Run(ctx context.Context) domain.Report {
	report := domain.Report{
		RunID:     uuid.New(),
		StartedAt: time.Now().UTC(),
		Results:   make([]domain.Result, 0, len(s.checkers)),
	}

	log := s.log.With().Str("run_id", report.RunID.String()).Logger()
	for _, checker := range s.checkers {
		report.Results = append(report.Results, s.run(ctx, checker, log))
	}

	log.Info().
		Int("checks", len(report.Results)).
		Int("failed", report.Failed()).
		Msg("connectivity run finished")

	return report
}

// RunOne executes the named check.
func (s *checkService) RunOne(ctx context.Context, name domain.CheckName) (domain.Result, error) {
	for _, checker := range s.checkers {
		if checker.Name() == name {
			return s.run(ctx, checker, s.log), nil
		}
	}
	return domain.Result{}, apperror.ErrUnknownCheck(string(name))
}

func (s *checkService) run(ctx context.Context, checker ports.Checker, log zerolog.Logger) (res domain.Result) {
	name := checker.Name()
	start := time.Now()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("check", string(name)).Msg("check panicked")
			res = domain.Failure(name, apperror.ErrConnection(fmt.Errorf("check panicked: %v", r)))
		}
		res.Check = name
		res.Duration = time.Since(start)

		event := log.Info()
		if !res.OK {
			event = log.Warn().Str("kind", string(res.ErrorKind()))
			if res.Err != nil {
				event = event.Err(res.Err)
			}
		}
		event.
			Str("check", string(name)).
			Dur("duration", res.Duration).
			Msg("check finished")

		if s.recorder != nil {
			s.recorder.Record(res)
		}
	}()

	return checker.Check(ctx)
}
