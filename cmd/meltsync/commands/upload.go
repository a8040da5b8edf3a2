package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/meltsync/meltsync/cmd/meltsync/opts"
	"github.com/meltsync/meltsync/pkg/sync"
)

// NewUploadCmd creates the upload command.
func NewUploadCmd(opts *opts.RootOpts) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "upload <local_path> <cloud_folder>",
		Short: "Upload a file or directory to the cloud library",
		Long: `Upload a single file or a whole directory tree. Subdirectory structure
is preserved, hidden and temporary files are skipped, and files above the
configured size threshold are split into 7z volumes before transfer.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			summary, err := opts.Syncer.UploadPath(ctx, args[0], args[1], !force)
			if err != nil {
				opts.UI.LogValidation(false, "Upload failed", err)
				return nil
			}

			opts.UI.LogValidation(summary.Failed == 0, "Upload summary: "+summary.String(), nil)

			folder := sync.NormalizeFolder(opts.Config.DefaultFolder, args[1])
			pterm.Info.WithPrefix(pterm.Prefix{Text: "🔗"}).Println(opts.Config.ConsoleFolderURL(folder))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "force re-upload of existing files")
	return cmd
}
