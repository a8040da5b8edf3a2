package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/meltsync/meltsync/cmd/meltsync/commands"
	"github.com/meltsync/meltsync/pkg/status"
)

func main() {
	setupLogging()
	ctx := log.Logger.WithContext(context.Background())

	userLogger := status.NewUserLogger(ctx)

	rootCmd := &cobra.Command{
		Use:   "meltsync",
		Short: "Sync local files with folders in your cloud media library",
		Long: `meltsync uploads files or directory trees to a cloud media library,
lists and downloads remote folders, and deletes them. Files above the
configured size threshold are split into 7z volumes before upload and
reassembled automatically after download.

Required environment: MELTSYNC_CLOUD_NAME, MELTSYNC_API_KEY, MELTSYNC_API_SECRET.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			applyLogLevel()
		},
	}

	addRootFlags(rootCmd)

	opts, err := newRootOpts(ctx)
	if err != nil {
		userLogger.LogValidation(false, "Configuration error", err)
		os.Exit(1)
	}

	rootCmd.AddCommand(
		commands.NewUploadCmd(opts),
		commands.NewFileCmd(opts),
		commands.NewListCmd(opts),
		commands.NewFilesCmd(opts),
		commands.NewDownloadCmd(opts),
		commands.NewDeleteCmd(opts),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		userLogger.LogValidation(false, "Command failed", err)
		os.Exit(1)
	}
}
