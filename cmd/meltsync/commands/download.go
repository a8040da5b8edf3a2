package commands

import (
	"fmt"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/meltsync/meltsync/cmd/meltsync/opts"
)

// NewDownloadCmd creates the interactive folder download command.
func NewDownloadCmd(opts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "download",
		Short: "Download a folder from the cloud library",
		Long: `Pick a remote folder and download its contents. Multi-volume 7z archives
are detected and reassembled into the original files automatically.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			folder, err := selectFolder(ctx, opts, "Select a folder to download")
			if err != nil {
				opts.UI.LogValidation(false, "Listing folders failed", err)
				return nil
			}
			if folder == nil {
				return nil
			}

			defaultPath := filepath.Join(".", "downloads", filepath.Base(folder.Path))
			dest, err := pterm.DefaultInteractiveTextInput.
				WithDefaultValue(defaultPath).
				Show("Enter local download path")
			if err != nil {
				return err
			}

			summary, reassembly, err := opts.Syncer.DownloadFolder(ctx, folder.Path, dest)
			if err != nil {
				opts.UI.LogValidation(false, "Download failed", err)
				return nil
			}

			if reassembly != nil && reassembly.Reassembled > 0 {
				opts.UI.LogProgress(fmt.Sprintf("Reassembled %d archive(s), removed %d fragment(s)",
					reassembly.Reassembled, reassembly.Removed))
			}
			if reassembly != nil && reassembly.Failed > 0 {
				opts.UI.LogWarning(fmt.Sprintf("%d archive(s) could not be decompressed; fragments were kept", reassembly.Failed))
			}

			opts.UI.LogValidation(summary.Failed == 0, "Download summary: "+summary.String(), nil)
			opts.UI.LogProgress("Files saved to: " + dest)
			return nil
		},
	}
}
