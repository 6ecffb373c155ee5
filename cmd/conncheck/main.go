package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud-connectivity-check/config"
	"cloud-connectivity-check/internal/adapter/console"
	httpHandler "cloud-connectivity-check/internal/adapter/http/handler"
	"cloud-connectivity-check/internal/adapter/metrics"
	"cloud-connectivity-check/internal/adapter/storage/objectstore"
	pgStorage "cloud-connectivity-check/internal/adapter/storage/postgres"
	redisStorage "cloud-connectivity-check/internal/adapter/storage/redis"
	"cloud-connectivity-check/internal/core/domain"
	"cloud-connectivity-check/internal/core/ports"
	"cloud-connectivity-check/internal/service"
	"cloud-connectivity-check/pkg/logger"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type app struct {
	stdout   io.Writer
	stderr   io.Writer
	envFile  string
	strict   bool
	exitCode int
}

func main() {
	a := &app{stdout: os.Stdout, stderr: os.Stderr}
	if err := newRootCmd(a).Execute(); err != nil {
		os.Exit(1)
	}
	os.Exit(a.exitCode)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "conncheck",
		Short: "Smoke-test connectivity to Neon, R2 and Upstash Redis",
		Long: `Run the database, object store and cache connectivity checks once,
in that order, and print one line per check.

Credentials come from the environment (NEON_DATABASE_URL, R2_*,
UPSTASH_REDIS_REST_*), optionally from a local .env file. The process
environment takes precedence over the file.

The exit status is 0 even when checks fail unless --strict is set.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runChecks(cmd.Context())
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "Optional dotenv file with credentials")
	root.Flags().BoolVar(&a.strict, "strict", false, "Exit with status 1 when any check fails")

	root.AddCommand(newServeCmd(a))
	return root
}

func newServeCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the checks over HTTP (/health, /health/:check, /livez, /metrics)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := a.setup()
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			return serve(cmd.Context(), cfg, log)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (overrides CONNCHECK_SERVER_PORT)")
	return cmd
}

func (a *app) setup() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, logger.New(cfg.Log.Level, cfg.Log.Pretty, a.stderr), nil
}

// runChecks is the one-shot mode: run, print, set the exit code.
func (a *app) runChecks(ctx context.Context) error {
	cfg, log, err := a.setup()
	if err != nil {
		return err
	}

	svc := service.NewCheckService(buildCheckers(cfg, log), cfg.Check.Timeout, nil, log)
	report := svc.Run(ctx)

	console.NewPrinter(a.stdout).PrintReport(report)
	a.exitCode = exitCode(report, a.strict)
	return nil
}

// buildCheckers returns the checks in their fixed run order.
func buildCheckers(cfg *config.Config, log zerolog.Logger) []ports.Checker {
	return []ports.Checker{
		pgStorage.NewHealthCheck(cfg.Database, log),
		objectstore.NewHealthCheck(cfg.ObjectStore, log),
		redisStorage.NewHealthCheck(cfg.Cache, log),
	}
}

// exitCode is 0 unless strict mode is on and a check failed.
func exitCode(report domain.Report, strict bool) int {
	if strict && !report.Healthy() {
		return 1
	}
	return 0
}

func serve(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	recorder := metrics.NewRecorder()
	svc := service.NewCheckService(buildCheckers(cfg, log), cfg.Check.Timeout, recorder, log)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		CheckSvc: svc,
		Metrics:  recorder.Handler(),
		Logger:   log,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return err
	}

	log.Info().Msg("Server exited")
	return nil
}
