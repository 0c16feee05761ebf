package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/digipath/cache"
	"github.com/katalvlaran/digipath/httpapi"
	"github.com/katalvlaran/digipath/internal/metrics"
	"github.com/katalvlaran/digipath/relay"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long:  `Serve loads the dataset once and answers route searches over HTTP until interrupted.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.HTTP.Addr = addr
			}
			return a.runServe()
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (overrides http.addr)")

	return cmd
}

func (a *app) runServe() error {
	ds, err := a.loadDataset()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	poolOpts := []relay.Option{
		relay.WithWorkers(a.cfg.Relay.Workers),
		relay.WithMaxExpansions(a.cfg.Relay.MaxExpansions),
		relay.WithObserver(metrics.New(reg)),
		relay.WithLogger(a.logger),
	}
	if a.cfg.Cache.RedisAddr != "" {
		store := cache.NewRedis(a.cfg.Cache.RedisAddr,
			cache.WithPrefix(a.cfg.Cache.Prefix),
			cache.WithTTL(a.cfg.Cache.TTL),
		)
		defer store.Close()
		if err := store.Ping(context.Background()); err != nil {
			a.logger.Warn("result cache unavailable, continuing without it", "addr", a.cfg.Cache.RedisAddr, "error", err)
		} else {
			poolOpts = append(poolOpts, relay.WithCache(store))
		}
	}

	pool, err := relay.NewPool(ds.Graph, poolOpts...)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr: a.cfg.HTTP.Addr,
		Handler: httpapi.NewHandler(&httpapi.Server{
			Dataset:  ds,
			Pool:     pool,
			Logger:   a.logger,
			Gatherer: reg,
			Timeout:  a.cfg.Relay.Timeout,
		}),
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", "addr", srv.Addr, "dataset", a.cfg.DatasetDir)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt or terminate signals.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		a.logger.Info("shutting down", "signal", sig.String())

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			a.logger.Error("graceful shutdown did not complete", "timeout", a.cfg.HTTP.ShutdownTimeout, "error", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("closing server: %w", err)
			}
		}
		a.logger.Info("server stopped")
	}

	return nil
}
