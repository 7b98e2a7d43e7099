package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/studybuddy/internal/auth"
	"github.com/alexanderramin/studybuddy/internal/cli"
	"github.com/alexanderramin/studybuddy/internal/config"
	"github.com/alexanderramin/studybuddy/internal/db"
	"github.com/alexanderramin/studybuddy/internal/httpapi"
	"github.com/alexanderramin/studybuddy/internal/llm"
	"github.com/alexanderramin/studybuddy/internal/repository"
	"github.com/alexanderramin/studybuddy/internal/service"
	"github.com/mattn/go-isatty"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	subjectRepo := repository.NewSQLiteSubjectRepo(database)
	assignmentRepo := repository.NewSQLiteAssignmentRepo(database)
	planRepo := repository.NewSQLiteStudyPlanRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewLogUseCaseObserver(logger)

	// A missing credential leaves plan generation unavailable; everything
	// else keeps working.
	var llmObserver llm.Observer = llm.NoopObserver{}
	if cfg.LLM.LogCalls {
		llmObserver = llm.NewLogObserver(logger)
	}
	llmClient, err := llm.NewClient(cfg.LLM, llmObserver)
	if err != nil {
		if !errors.Is(err, llm.ErrNotConfigured) {
			return fmt.Errorf("building llm client: %w", err)
		}
		logger.Warn("study plan generation disabled", "reason", err.Error())
		llmClient = nil
	}

	app := &cli.App{
		Subjects:    service.NewSubjectService(subjectRepo, uow, observer),
		Assignments: service.NewAssignmentService(assignmentRepo, subjectRepo, observer),
		Plans: service.NewStudyPlanService(planRepo, assignmentRepo, uow, llmClient,
			service.StudyPlanOptions{MaxInFlightPerOwner: cfg.MaxInFlight}, observer),
		Import: service.NewImportService(uow, observer),
	}

	if cfg.JWTSecret != "" {
		app.Tokens, err = auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
		if err != nil {
			return err
		}
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	app.Serve = func(ctx context.Context) error {
		if app.Tokens == nil {
			return fmt.Errorf("STUDYBUDDY_JWT_SECRET is required to serve the API")
		}
		if cfg.PlanRetention > 0 {
			sched := service.NewRetentionScheduler(
				service.NewRetentionService(planRepo, cfg.PlanRetention, observer), logger)
			if _, err := sched.Schedule(cfg.RetentionSchedule); err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()
		}

		api := httpapi.NewServer(httpapi.Deps{
			Subjects:    app.Subjects,
			Assignments: app.Assignments,
			Plans:       app.Plans,
			Verifier:    app.Tokens,
			Logger:      logger,
			CORSOrigins: cfg.CORSOrigins,
		})
		return serveHTTP(ctx, cfg.Addr, api.Handler(), logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

// newLogger writes human-readable text on a terminal and JSON otherwise.
func newLogger(level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if isatty.IsTerminal(os.Stderr.Fd()) {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

// serveHTTP runs the server until ctx is cancelled, then drains in-flight
// requests.
func serveHTTP(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
