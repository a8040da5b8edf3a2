package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/meltsync/meltsync/cmd/meltsync/opts"
)

// NewDeleteCmd creates the interactive folder deletion command.
func NewDeleteCmd(opts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Delete a folder and all its contents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			folder, err := selectFolder(ctx, opts, "Select a folder to delete")
			if err != nil {
				opts.UI.LogValidation(false, "Listing folders failed", err)
				return nil
			}
			if folder == nil {
				return nil
			}

			opts.UI.LogWarning("You are about to delete folder '" + folder.Path + "' and ALL its contents.")
			confirm, err := pterm.DefaultInteractiveTextInput.Show("Type 'DELETE' to confirm")
			if err != nil {
				return err
			}
			if confirm != "DELETE" {
				opts.UI.LogProgress("Deletion cancelled")
				return nil
			}

			summary, err := opts.Syncer.DeleteFolder(ctx, folder.Path)
			if err != nil {
				opts.UI.LogValidation(false, "Deletion failed", err)
				return nil
			}

			opts.UI.LogValidation(summary.Failed == 0,
				"Deleted folder '"+folder.Path+"': "+summary.String(), nil)
			return nil
		},
	}
}
