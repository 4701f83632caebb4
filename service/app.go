package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"blog/app/config"
	"blog/app/logger"
	"blog/app/mail"
	"blog/app/routes"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// serve runs the blog web server until ctx is cancelled.
func serve(ctx context.Context, cfg config.Config) int {
	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	store, err := openStore(cfg, log)
	if err != nil {
		log.Error("failed to open storage", zap.Error(err))
		return 1
	}
	defer store.Close()

	mailer, err := mail.New(cfg.Mail, log)
	if err != nil {
		log.Error("failed to configure mail", zap.Error(err))
		return 1
	}

	router, err := routes.SetupRoutes(routes.Dependencies{
		Config: cfg.App,
		From:   cfg.Mail.From,
		Store:  store,
		Mailer: mailer,
		Log:    log,
	})
	if err != nil {
		log.Error("failed to set up routes", zap.Error(err))
		return 1
	}

	srv := &http.Server{
		Addr:              cfg.App.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	log.Info("starting blog server",
		zap.String("addr", cfg.App.Addr),
		zap.String("storage", cfg.Storage.Driver),
		zap.String("mail", cfg.Mail.Backend))
	if err := runServer(ctx, srv, log); err != nil {
		log.Error("server error", zap.Error(err))
		return 1
	}
	log.Info("server stopped")
	return 0
}

// runServer serves until the listener fails or ctx is done, then shuts
// down gracefully.
func runServer(ctx context.Context, srv *http.Server, log *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
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

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
