package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/planner/internal/api"
	"github.com/alexanderramin/planner/internal/cli"
	"github.com/alexanderramin/planner/internal/config"
	"github.com/alexanderramin/planner/internal/db"
	"github.com/alexanderramin/planner/internal/notify"
	"github.com/alexanderramin/planner/internal/repository"
	"github.com/alexanderramin/planner/internal/service"
	"github.com/alexanderramin/planner/internal/worker"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Debug)
	slog.SetDefault(logger)

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	tagRepo := repository.NewSQLiteTagRepo(database)
	planningRepo := repository.NewSQLitePlanningRepo(database)
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	settingRepo := repository.NewSQLiteSettingRepo(database)
	statsRepo := repository.NewSQLiteStatsRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	opts := []service.Option{service.WithLocation(cfg.Location)}
	if cfg.Debug {
		opts = append(opts, service.WithObserver(service.NewSlogUseCaseObserver(logger)))
	}

	settingSvc := service.NewSettingService(settingRepo, opts...)
	app := &cli.App{
		Projects:   service.NewProjectService(projectRepo, uow, opts...),
		Tags:       service.NewTagService(tagRepo, projectRepo, uow, opts...),
		Planning:   service.NewPlanningService(planningRepo, uow, opts...),
		Sessions:   service.NewSessionService(sessionRepo, uow, opts...),
		Settings:   settingSvc,
		Statistics: service.NewStatisticsService(statsRepo, sessionRepo, opts...),
		Location:   cfg.Location,
	}

	// Without a daemon host, notifications only reach the log.
	var notifier notify.Notifier = notify.NewLogNotifier(logger)
	if cfg.NotificationHost != "" {
		notifier = notify.NewSocketNotifier(cfg.NotificationHost, cfg.NotificationPort, cfg.NotificationDir, logger)
	}
	app.Notifier = notifier

	app.Serve = func(ctx context.Context) error {
		srv := api.NewServer(api.Services{
			Projects:   app.Projects,
			Tags:       app.Tags,
			Planning:   app.Planning,
			Sessions:   app.Sessions,
			Settings:   app.Settings,
			Statistics: app.Statistics,
		}, api.Options{
			AllowedOrigins: []string{cfg.FrontendOrigin()},
			Location:       cfg.Location,
			Logger:         logger,
		})
		w := worker.New(planningRepo, sessionRepo, settingSvc, notifier, worker.Config{
			PollInterval:        cfg.PollInterval,
			PlanningLookback:    cfg.PlanningLookback,
			DefaultIntervalMins: cfg.DefaultNotifyMins,
		}, worker.WithLogger(logger))
		return serve(ctx, srv, w, cfg.APIAddr())
	}

	// Detect interactive terminal for the review form and watch view.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

// serve runs the API server and the notification worker until ctx is
// cancelled or either of them fails. A failure stops the other.
func serve(ctx context.Context, srv *api.Server, w *worker.Worker, addr string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errs := make(chan error, 2)
	go func() { errs <- srv.Run(ctx, addr) }()
	go func() { errs <- w.Run(ctx) }()

	var first error
	for range 2 {
		err := <-errs
		if err != nil && !errors.Is(err, context.Canceled) && first == nil {
			first = err
		}
		cancel()
	}
	return first
}

// newLogger logs text to a terminal and JSON otherwise.
func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if isatty.IsTerminal(os.Stderr.Fd()) {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}
