package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/meltsync/meltsync/cmd/meltsync/opts"
	"github.com/meltsync/meltsync/pkg/archive"
	"github.com/meltsync/meltsync/pkg/config"
	"github.com/meltsync/meltsync/pkg/remote/cloudinary"
	"github.com/meltsync/meltsync/pkg/status"
	"github.com/meltsync/meltsync/pkg/sync"
)

var (
	// Flags
	debug bool
)

// newRootOpts creates a new RootOpts with initialized dependencies.
func newRootOpts(ctx context.Context) (*opts.RootOpts, error) {
	userLogger := status.NewUserLogger(ctx)

	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	store, err := cloudinary.New(cfg)
	if err != nil {
		return nil, errors.Errorf("creating storage client: %w", err)
	}

	executor := archive.NewExecutor()
	syncer := sync.New(
		cfg,
		store,
		archive.NewSplitter(executor, cfg.ThresholdBytes()),
		archive.NewReassembler(executor),
		userLogger,
	)

	return &opts.RootOpts{
		Config: cfg,
		Syncer: syncer,
		UI:     userLogger,
	}, nil
}

// addRootFlags adds shared flags to the root command.
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog for console output.
func setupLogging() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}

// applyLogLevel applies the --debug flag once flags are parsed.
func applyLogLevel() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}
