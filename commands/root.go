// Package commands holds the realty-portal command line: the HTTP server and
// the operator tasks that run against the same store.
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dcode-github/realty_portal/config"
	"github.com/dcode-github/realty_portal/logger"
	"github.com/dcode-github/realty_portal/store"
)

const serviceName = "realty-portal"

func Execute() {
	rootCmd := &cobra.Command{
		Use:           serviceName,
		Short:         "Real-estate brokerage backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		ServeCmd(),
		CreateAdminCmd(),
		SeedCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env is what every command needs before it can do anything.
type env struct {
	cfg   *config.Config
	log   *zap.Logger
	store store.Store
}

func bootstrap() (*env, error) {
	cfg, err := config.Load(serviceName)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log.Info("Configuration loaded", cfg.LogFields()...)

	st, err := config.OpenStore(cfg.Store, log)
	if err != nil {
		log.Error("Failed to connect to the store", zap.Error(err))
		return nil, err
	}
	return &env{cfg: cfg, log: log, store: st}, nil
}

func (rt *env) close() {
	if err := rt.store.Close(context.Background()); err != nil {
		rt.log.Error("Error closing store", zap.Error(err))
	} else {
		rt.log.Info("Store connection closed")
	}
	rt.log.Sync()
}
