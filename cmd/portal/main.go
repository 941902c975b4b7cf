package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/PutuPutra/finance-portal/internal/audit"
	"github.com/PutuPutra/finance-portal/internal/auth"
	"github.com/PutuPutra/finance-portal/internal/config"
	apphttp "github.com/PutuPutra/finance-portal/internal/http"
	"github.com/PutuPutra/finance-portal/internal/log"
	"github.com/PutuPutra/finance-portal/internal/source"
	"github.com/PutuPutra/finance-portal/internal/source/remote"
	"github.com/PutuPutra/finance-portal/internal/source/synthetic"
)

func main() {
	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", log.FieldError, err)
		os.Exit(1)
	}

	var src source.Source
	switch cfg.SourceMode {
	case config.SourceRemote:
		src = remote.NewClient(cfg.RemoteURL, cfg.RemoteUsername, cfg.RemotePassword,
			logger.WithComponent(log.ComponentSource))
	default:
		src = synthetic.New(cfg.SyntheticCount, cfg.SyntheticWindowDays)
	}
	logger.Info("transaction source initialized",
		log.FieldOperation, log.OpStartup,
		log.FieldSourceMode, src.Mode())

	var publisher audit.Publisher = audit.Noop{}
	if cfg.AMQPURL != "" {
		client, err := audit.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue,
			logger.WithComponent(log.ComponentAudit))
		if err != nil {
			logger.Error("failed to connect audit feed", log.FieldError, err)
			os.Exit(1)
		}
		publisher = client
		logger.Info("audit feed connected",
			log.FieldOperation, log.OpStartup,
			"exchange", cfg.AMQPExchange,
			"queue", cfg.AMQPQueue)
	}
	defer publisher.Close()

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Deps{
		Authenticator: auth.NewStatic(cfg.AuthUsername, cfg.AuthPassword, cfg.SessionTTL),
		Tokens:        auth.NewTokenCodec(cfg.SessionSecret),
		Source:        src,
		Publisher:     publisher,
		Logger:        logger,
		CacheTTL:      cfg.CacheTTL,
	})

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting portal server",
			log.FieldOperation, log.OpStartup,
			"port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		logger.Info("shutdown signal received", log.FieldOperation, log.OpShutdown)
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("server stopped gracefully", log.FieldOperation, log.OpShutdown)
}
