package sync

import (
	"context"
	"strconv"

	"gitlab.com/tozd/go/errors"

	"github.com/meltsync/meltsync/pkg/remote"
)

// 📂 ListFolders returns the folders directly under the default folder.
func (s *Syncer) ListFolders(ctx context.Context) ([]remote.Folder, error) {
	folders, err := s.store.ListSubfolders(ctx, s.cfg.DefaultFolder)
	if err != nil {
		return nil, errors.Errorf("listing folders: %w", err)
	}
	return folders, nil
}

// 📂 ListFiles returns every asset under folderPath across all three
// resource-type partitions. Per-type listing failures are reported as
// warnings and do not abort the other partitions.
func (s *Syncer) ListFiles(ctx context.Context, folderPath string) ([]remote.Asset, error) {
	prefix := folderPath + "/"

	var all []remote.Asset
	for _, rt := range remote.ResourceTypes {
		assets, err := s.store.ListByPrefix(ctx, prefix, rt, maxListResults)
		if err != nil {
			s.ui.LogWarning("Could not list " + string(rt) + " resources: " + err.Error())
			continue
		}
		all = append(all, assets...)
	}
	return all, nil
}

// 🗑️ DeleteFolder deletes every asset under folderPath for each resource
// type, then removes the folder record. Per-type failures are warnings; the
// summary reports the total deleted count.
func (s *Syncer) DeleteFolder(ctx context.Context, folderPath string) (*Summary, error) {
	prefix := folderPath + "/"
	summary := &Summary{}

	for _, rt := range remote.ResourceTypes {
		count, err := s.store.DeleteByPrefix(ctx, prefix, rt)
		if err != nil {
			s.ui.LogWarning("Could not delete " + string(rt) + " resources: " + err.Error())
			summary.Failed++
			continue
		}
		if count > 0 {
			s.ui.LogProgress("Deleted " + strconv.Itoa(count) + " " + string(rt) + " files")
			summary.Deleted += count
		}
	}

	if err := s.store.DeleteFolder(ctx, folderPath); err != nil {
		s.ui.LogWarning("Could not delete folder record: " + err.Error())
	}

	return summary, nil
}
