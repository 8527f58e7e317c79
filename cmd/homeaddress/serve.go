package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"home-address/address"
	"home-address/config"
	"home-address/logging"
	"home-address/phone"
	"home-address/server"
	"home-address/storage"
	"home-address/storage/postgres"
	"home-address/storage/redis"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP API server",
	Long: `Start the home address HTTP API. Store settings come from the environment
(REDIS_HOST, REDIS_PORT, STORE_BACKEND, ...) or the flags below.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	flags := serveCmd.Flags()
	flags.String("listen", ":8000", "Address to listen on")
	flags.String("backend", config.RedisBackend, "Storage backend: redis or postgres")
	flags.String("redis-host", "localhost", "Redis host")
	flags.String("redis-port", "6379", "Redis port")
	_ = settings.BindPFlag("listen_addr", flags.Lookup("listen"))
	_ = settings.BindPFlag("store.backend", flags.Lookup("backend"))
	_ = settings.BindPFlag("redis.host", flags.Lookup("redis-host"))
	_ = settings.BindPFlag("redis.port", flags.Lookup("redis-port"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(settings)
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("could not connect to %s: %w", cfg.Store.Backend, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.WithError(err).Warn("error closing store")
		}
	}()

	svc := address.NewService(store, logger.WithField("component", "address"))
	srv := server.New(cfg.ListenAddr, svc, phone.NewRussianValidator(), store, logger.WithField("component", "http"))

	serverErr := make(chan error, 1)
	go func() {
		logger.WithFields(logrus.Fields{
			"addr":    cfg.ListenAddr,
			"backend": cfg.Store.Backend,
		}).Info("starting home address server")
		serverErr <- srv.Start()
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error during shutdown: %w", err)
	}
	logger.Info("server stopped gracefully")

	return nil
}

// openStore connects the configured storage backend
func openStore(ctx context.Context, cfg *config.Config) (storage.Adapter, error) {
	switch cfg.Store.Backend {
	case config.PostgresBackend:
		opts := []postgres.PgOptionFunc{postgres.WithTableName(cfg.Postgres.Table)}
		if cfg.Postgres.Password != "" {
			opts = append(opts, postgres.WithPassword(cfg.Postgres.Password))
		}
		if cfg.Postgres.SSL {
			opts = append(opts, postgres.WithSslOn())
		}
		adapter, err := postgres.NewAdapter(ctx, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.DB, opts...)
		if err != nil {
			return nil, err
		}
		return adapter, nil
	default:
		adapter, err := redis.NewAdapter(ctx, cfg.Redis.Host, cfg.Redis.Port,
			redis.WithPassword(cfg.Redis.Password), redis.WithDB(cfg.Redis.DB))
		if err != nil {
			return nil, err
		}
		return adapter, nil
	}
}
