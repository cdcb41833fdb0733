package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pardal23/gato23/internal/classify"
	"github.com/pardal23/gato23/internal/config"
	"github.com/pardal23/gato23/internal/logging"
	"github.com/pardal23/gato23/internal/scratch"
	"github.com/pardal23/gato23/internal/store"
)

// env carries what a command needs after the global flags are resolved.
type env struct {
	cfg        *config.Config
	logger     *zap.Logger
	classifier *classify.Classifier
	slot       *scratch.Slot
	out        *OutputFormatter

	store *store.Store
}

// loadEnv loads configuration and builds the logger, classifier, text slot
// and output formatter. The store is opened separately with openStore.
func loadEnv(opts *RootOptions, cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if opts.Database != "" {
		cfg.Database = opts.Database
	}

	logCfg := logging.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	}
	if opts.Verbose {
		logCfg.Level = "debug"
	}
	logger, err := logging.New(logCfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to build logger", err)
	}

	classifier, err := classify.New(cfg.Classifier.Threshold)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid classifier threshold", err)
	}

	return &env{
		cfg:        cfg,
		logger:     logger,
		classifier: classifier,
		slot:       scratch.New(cfg.SlotPath()),
		out: &OutputFormatter{
			Format:    opts.Format,
			Writer:    cmd.OutOrStdout(),
			ErrWriter: cmd.ErrOrStderr(),
			Verbose:   opts.Verbose,
		},
	}, nil
}

// openStore opens the record store at the configured path, creating its
// directory when missing.
func (e *env) openStore(ctx context.Context) (*store.Store, error) {
	if e.store != nil {
		return e.store, nil
	}

	if err := os.MkdirAll(filepath.Dir(e.cfg.Database), 0o700); err != nil {
		e.logger.Error("data directory unavailable", zap.String("path", e.cfg.Database), zap.Error(err))
		return nil, WrapExitError(ExitCommandError, "failed to create data directory",
			&store.Error{Code: store.ErrCodeUnavailable, Op: "open", Err: err})
	}

	st := store.New(e.cfg.Database, store.WithLogger(e.logger.Named("store")))
	if err := st.Open(ctx); err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("failed to open database %s", e.cfg.Database), err)
	}

	e.out.VerboseLog("Opened database %s", e.cfg.Database)
	e.store = st
	return st, nil
}

// Close releases the store and flushes the logger.
func (e *env) Close() {
	if e.store != nil {
		e.store.Close()
	}
	_ = e.logger.Sync()
}

// withEnv loads the environment, runs fn, and releases the environment.
func withEnv(opts *RootOptions, cmd *cobra.Command, fn func(e *env) error) error {
	e, err := loadEnv(opts, cmd)
	if err != nil {
		return err
	}
	defer e.Close()
	return fn(e)
}

// withStore is withEnv with the record store opened.
func withStore(opts *RootOptions, cmd *cobra.Command, fn func(ctx context.Context, e *env, st *store.Store) error) error {
	return withEnv(opts, cmd, func(e *env) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		st, err := e.openStore(ctx)
		if err != nil {
			return err
		}
		return fn(ctx, e, st)
	})
}
