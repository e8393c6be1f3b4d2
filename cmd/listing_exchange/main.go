package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"listing_exchange/internal/app"
	"listing_exchange/internal/config"
	"listing_exchange/internal/lib/logger/handlers/slogpretty"
	"listing_exchange/internal/lib/logger/sl"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	// .env нужен только локально; в контейнере переменные приходят из окружения
	_ = godotenv.Load()

	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)
	log.Info("starting listing_exchange", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to create db pool", sl.Err(err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Error("failed to connect to db", sl.Err(err))
		os.Exit(1)
	}

	application := app.New(log, pool, cfg)

	go application.HTTPServer.MustRun()

	<-ctx.Done()

	application.HTTPServer.Stop()

	stats := application.MatchMetrics.GetStats()
	log.Info("application stopped",
		slog.Int64("hot_sheet_evaluations", stats.HotSheet.EvaluatedTotal),
		slog.Int64("prospecting_evaluations", stats.ReverseProspecting.EvaluatedTotal),
	)
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
