package commands

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/meltsync/meltsync/cmd/meltsync/opts"
)

// NewFileCmd creates the interactive single-file upload command.
func NewFileCmd(opts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "file [<file_path>]",
		Short: "Upload a single file interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var path string
			if len(args) == 1 {
				path = args[0]
			} else {
				entered, err := pterm.DefaultInteractiveTextInput.Show("Enter file path")
				if err != nil {
					return err
				}
				path = entered
			}

			info, err := os.Stat(path)
			if err != nil {
				opts.UI.LogValidation(false, "File not found: "+path, nil)
				return nil
			}
			if info.IsDir() {
				opts.UI.LogValidation(false, "Path is not a file: "+path, nil)
				return nil
			}

			folder, err := pterm.DefaultInteractiveTextInput.
				WithDefaultValue("uploads").
				Show("Enter cloud folder name")
			if err != nil {
				return err
			}

			force, err := pterm.DefaultInteractiveConfirm.Show("Force re-upload if file exists?")
			if err != nil {
				return err
			}

			summary, err := opts.Syncer.UploadPath(ctx, path, folder, !force)
			if err != nil {
				opts.UI.LogValidation(false, "Upload failed", err)
				return nil
			}

			switch {
			case summary.Failed > 0:
				opts.UI.LogValidation(false, "Upload failed", nil)
			case summary.Skipped > 0 && summary.Uploaded == 0:
				opts.UI.LogProgress("File was skipped (already exists)")
			default:
				opts.UI.LogValidation(true, "Upload completed successfully", nil)
			}
			return nil
		},
	}
}
