package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/meltsync/meltsync/cmd/meltsync/opts"
)

// NewListCmd creates the folder listing command.
func NewListCmd(opts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List folders in the cloud library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			folders, err := opts.Syncer.ListFolders(cmd.Context())
			if err != nil {
				opts.UI.LogValidation(false, "Listing folders failed", err)
				return nil
			}
			if len(folders) == 0 {
				opts.UI.LogProgress("No folders found in '" + displayRoot(opts) + "'")
				return nil
			}

			opts.UI.LogProgress("Folders in '" + displayRoot(opts) + "':")
			for i, folder := range folders {
				fmt.Printf("%s %s %s\n",
					color.CyanString("%d.", i+1),
					folder.Name,
					color.HiBlackString("(path: %s)", folder.Path),
				)
			}
			return nil
		},
	}
}
