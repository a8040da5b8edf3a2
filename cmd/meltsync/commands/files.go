package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/meltsync/meltsync/cmd/meltsync/opts"
)

// NewFilesCmd creates the interactive file listing command.
func NewFilesCmd(opts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "files",
		Short: "List files in a selected folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			folder, err := selectFolder(ctx, opts, "Select a folder to list")
			if err != nil {
				opts.UI.LogValidation(false, "Listing folders failed", err)
				return nil
			}
			if folder == nil {
				return nil
			}

			assets, err := opts.Syncer.ListFiles(ctx, folder.Path)
			if err != nil {
				opts.UI.LogValidation(false, "Listing files failed", err)
				return nil
			}
			if len(assets) == 0 {
				opts.UI.LogProgress("No files found in folder '" + folder.Path + "'")
				return nil
			}

			opts.UI.LogProgress("Files in '" + folder.Path + "':")
			prefix := folder.Path + "/"
			for _, asset := range assets {
				name := strings.TrimPrefix(asset.PublicID, prefix)
				if asset.Format != "" {
					name += "." + asset.Format
				}
				fmt.Printf("  %s\n", color.New(color.Bold).Sprint(name))
				fmt.Printf("     ID:      %s\n", asset.PublicID)
				fmt.Printf("     URL:     %s\n", asset.SecureURL)
				fmt.Printf("     Created: %s\n\n", asset.CreatedAt.Format(time.RFC3339))
			}
			opts.UI.LogProgress(fmt.Sprintf("Total files: %d", len(assets)))
			return nil
		},
	}
}
