package httpapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"listing_exchange/internal/config"
	"listing_exchange/internal/httpapi/matchhttp"
	"listing_exchange/internal/lib/logger/sl"
)

type App struct {
	log        *slog.Logger
	httpServer *http.Server
	cfg        config.HTTPConfig
}

// New создаёт HTTP-приложение с роутером API сопоставления.
func New(log *slog.Logger, cfg config.HTTPConfig, corsCfg config.CORSConfig, svc matchhttp.Services, opts ...matchhttp.RouterOption) *App {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      matchhttp.NewRouter(log, corsCfg, svc, opts...),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		log:        log,
		httpServer: srv,
		cfg:        cfg,
	}
}

// MustRun запускает сервер и паникует при ошибке.
func (a *App) MustRun() {
	if err := a.Run(); err != nil {
		panic(err)
	}
}

// Run слушает порт и обслуживает запросы до вызова Stop.
func (a *App) Run() error {
	const op = "httpapp.Run"

	l, err := net.Listen("tcp", a.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	a.log.Info("http server started", slog.String("addr", l.Addr().String()))

	if err := a.httpServer.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Stop дожидается завершения активных запросов, но не дольше ShutdownTimeout.
func (a *App) Stop() {
	const op = "httpapp.Stop"

	a.log.With(slog.String("op", op)).
		Info("stopping http server", slog.Int("port", a.cfg.Port))

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("graceful shutdown failed", slog.String("op", op), sl.Err(err))
		_ = a.httpServer.Close()
	}
}
