package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/ai-mentorship/internal/config"
	"alfredoptarigan/ai-mentorship/internal/identity"
	"alfredoptarigan/ai-mentorship/internal/logger"
	"alfredoptarigan/ai-mentorship/internal/repositories"
)

const app = "assess"

var (
	flagDebug  bool
	flagJSON   bool
	flagAPIURL string
	flagStore  string

	rootCmd = &cobra.Command{
		Use:          app,
		Short:        "assess runs the AI career assessment from a terminal",
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&flagJSON, "json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "assessment API base URL (default from ASSESS_API_URL)")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "", "local store driver: memory, sqlite, postgres or redis (default from STORE_DRIVER)")

	rootCmd.AddCommand(runCmd, reportCmd, showCmd)
}

// env is what every subcommand needs: config, logger and the local store.
type env struct {
	cfg        *config.Config
	log        *zap.Logger
	store      repositories.LocalStore
	closeStore func() error
}

func setup(ctx context.Context) (*env, error) {
	cfg := config.Load()
	if flagAPIURL != "" {
		cfg.Client.APIURL = flagAPIURL
	}
	if flagStore != "" {
		cfg.Store.Driver = flagStore
	}

	zlog, err := logger.New(flagJSON || cfg.Log.JSON, flagDebug || cfg.Log.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	store, closeStore, err := repositories.Open(ctx, cfg, zlog)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	return &env{cfg: cfg, log: zlog, store: store, closeStore: closeStore}, nil
}

func (e *env) Close() {
	if err := e.closeStore(); err != nil {
		e.log.Warn("failed to close local store", zap.Error(err))
	}
	_ = e.log.Sync()
}

// identityFor prefers the identity token's claims over the plain name and
// email settings.
func identityFor(cfg *config.Config) (identity.Provider, error) {
	if cfg.Client.IDToken != "" {
		return identity.NewTokenProvider(cfg.Client.IDToken)
	}
	return identity.NewStaticProvider(cfg.Client.UserName, cfg.Client.UserEmail), nil
}
