package main

import (
	"context"
	"errors"
	"imgopt/internal/adapters/handler"
	"imgopt/internal/adapters/multipart"
	"imgopt/internal/adapters/transformer"
	"imgopt/internal/config"
	"imgopt/internal/core/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	log.Info().Msg("starting imgopt...")

	log.Info().Msg("reading config...")
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}

	if cfg.Log.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	logLevel, err := cfg.Log.ZerologLevel()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level in config")
	}
	zerolog.SetGlobalLevel(logLevel)

	engine, err := transformer.New(cfg.Transform.Engine, cfg.Transform.JPEGQuality, cfg.Transform.MaxPixels)
	if err != nil {
		log.Fatal().Err(err).Str("engine", cfg.Transform.Engine).Msg("failed initializing transform engine")
	}

	uploadService := service.NewUpload(multipart.NewDecoder(cfg.Transform.MaxUploadSize), engine)
	uploadHandler := handler.NewUpload(uploadService, cfg.Transform.MaxUploadSize)

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      handler.NewRouter(log.Logger, uploadHandler),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	grp, gctx := errgroup.WithContext(ctx)

	grp.Go(func() error {
		log.Info().
			Str("address", cfg.Server.Address).
			Str("engine", cfg.Transform.Engine).
			Stringer("maxUploadSize", cfg.Transform.MaxUploadSize).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	grp.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	if err := grp.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}

	log.Info().Msg("server stopped")
}
