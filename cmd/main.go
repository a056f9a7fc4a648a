package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/fifaclean/internal/adapters/repository"
	app "github.com/okian/fifaclean/internal/app"
	"github.com/okian/fifaclean/internal/config"
	"github.com/okian/fifaclean/internal/domain/impute"
	"github.com/okian/fifaclean/pkg/logger"
	"github.com/okian/fifaclean/pkg/metrics"
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use fmt for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		stop()
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	err = run(ctx, cfg, loggerInstance, os.Stdout)
	stop()
	_ = logger.Sync()
	if err != nil {
		os.Stderr.WriteString("cleaning failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// run wires the stores and imputation policy from cfg and executes one
// clean-then-report run, writing the null report to w.
func run(ctx context.Context, cfg *config.Config, log logger.Logger, w io.Writer) error {
	storeOpts := []repository.Option{
		repository.WithDelimiter(cfg.DelimiterRune()),
		repository.WithNullTokens(cfg.NullTokens),
	}

	svc := app.New(
		repository.NewCSVStore(cfg.InputPath, storeOpts...),
		repository.NewCSVStore(cfg.OutputPath, storeOpts...),
		app.WithLogger(log),
		app.WithMetrics(metrics.Default()),
		app.WithMetricsPath(cfg.MetricsPath),
		app.WithReportWriter(w),
		app.WithImputer(impute.New(
			impute.WithGoalkeeperPrefix(cfg.GoalkeeperPrefix),
			impute.WithGoalkeeperMarker(cfg.GoalkeeperMarker),
			impute.WithWorkRateFallback(cfg.WorkRateFallback),
		)),
	)

	log.Info(ctx, "starting cleaning run",
		logger.String("input", cfg.InputPath),
		logger.String("output", cfg.OutputPath),
	)
	return svc.Run(ctx)
}
