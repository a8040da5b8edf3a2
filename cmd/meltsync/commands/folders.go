package commands

import (
	"context"

	"github.com/pterm/pterm"

	"github.com/meltsync/meltsync/cmd/meltsync/opts"
	"github.com/meltsync/meltsync/pkg/remote"
)

// displayRoot names the folder the listings are rooted at.
func displayRoot(opts *opts.RootOpts) string {
	if opts.Config.DefaultFolder == "" {
		return "root"
	}
	return opts.Config.DefaultFolder
}

// selectFolder lists the remote folders and asks the user to pick one.
// Returns nil when there is nothing to pick.
func selectFolder(ctx context.Context, opts *opts.RootOpts, prompt string) (*remote.Folder, error) {
	folders, err := opts.Syncer.ListFolders(ctx)
	if err != nil {
		return nil, err
	}
	if len(folders) == 0 {
		opts.UI.LogProgress("No folders found in '" + displayRoot(opts) + "'")
		return nil, nil
	}

	options := make([]string, 0, len(folders))
	byPath := make(map[string]*remote.Folder, len(folders))
	for i := range folders {
		options = append(options, folders[i].Path)
		byPath[folders[i].Path] = &folders[i]
	}

	picked, err := pterm.DefaultInteractiveSelect.
		WithOptions(options).
		Show(prompt)
	if err != nil {
		return nil, err
	}
	return byPath[picked], nil
}
