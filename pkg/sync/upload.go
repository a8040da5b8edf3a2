package sync

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/meltsync/meltsync/pkg/remote"
	"github.com/meltsync/meltsync/pkg/status"
)

// 📤 UploadPath uploads a file or directory tree to the given cloud folder.
// Directory uploads preserve the subdirectory structure and prune hidden
// directories. Per-file failures are tallied, not returned.
func (s *Syncer) UploadPath(ctx context.Context, localPath, folder string, skipDuplicates bool) (*Summary, error) {
	info, err := os.Stat(localPath)
	if err != nil {
		return nil, errors.Errorf("stating %s: %w", localPath, err)
	}

	folder = NormalizeFolder(s.cfg.DefaultFolder, folder)
	summary := &Summary{}

	if !info.IsDir() {
		if err := s.uploadFile(ctx, localPath, folder, skipDuplicates, summary); err != nil {
			s.ui.LogItemChange(status.ItemChange{Type: status.ItemError, Name: filepath.Base(localPath), Error: err})
			summary.Failed++
		}
		return summary, nil
	}

	s.ui.LogProgress("Uploading '" + localPath + "' to '" + folder + "'")

	walkErr := filepath.WalkDir(localPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != localPath && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(localPath, path)
		if err != nil {
			return errors.Errorf("computing relative path for %s: %w", path, err)
		}

		fileFolder := folder
		if sub := filepath.Dir(rel); sub != "." {
			fileFolder = folder + "/" + filepath.ToSlash(sub)
		}

		if err := s.uploadFile(ctx, path, fileFolder, skipDuplicates, summary); err != nil {
			s.ui.LogItemChange(status.ItemChange{Type: status.ItemError, Name: d.Name(), Error: err})
			summary.Failed++
		}
		return nil
	})
	if walkErr != nil {
		return summary, errors.Errorf("walking %s: %w", localPath, walkErr)
	}

	return summary, nil
}

// uploadFile uploads one logical file: skip-pattern check, optional volume
// split, then one transfer per artifact. The scratch directory of a split is
// removed unconditionally once every artifact has been attempted.
func (s *Syncer) uploadFile(ctx context.Context, path, folder string, skipDuplicates bool, summary *Summary) error {
	name := filepath.Base(path)
	if ShouldSkip(name) {
		s.ui.LogItemChange(status.ItemChange{Type: status.ItemSkipped, Name: name, Description: "hidden or temporary file"})
		summary.Skipped++
		return nil
	}

	split, err := s.splitter.MaybeSplit(ctx, path)
	if err != nil {
		return err
	}
	defer split.Cleanup()

	// One failed volume does not abort the others.
	for _, artifact := range split.Artifacts {
		s.uploadArtifact(ctx, artifact, folder, skipDuplicates, summary)
	}
	return nil
}

// uploadArtifact transfers a single artifact (an original file or one volume
// fragment) and records its outcome.
func (s *Syncer) uploadArtifact(ctx context.Context, artifact, folder string, skipDuplicates bool, summary *Summary) {
	name := filepath.Base(artifact)
	rt := remote.TypeForFile(artifact)
	publicID := RemoteID(folder, artifact)

	if skipDuplicates {
		switch err := s.store.Exists(ctx, publicID, rt); {
		case err == nil:
			s.ui.LogItemChange(status.ItemChange{Type: status.ItemSkipped, Name: name, Description: "already exists in '" + folder + "'"})
			summary.Skipped++
			return
		case errors.Is(err, remote.ErrNotFound):
			// absent, proceed with the upload
		default:
			// Safety bias: an inconclusive probe is treated as "exists" so
			// we never create accidental duplicates.
			s.ui.LogWarning("Existence probe for " + publicID + " failed, skipping to avoid duplication: " + err.Error())
			summary.Skipped++
			return
		}
	}

	asset, err := s.store.Put(ctx, artifact, publicID, rt, s.cfg.UniqueNames)
	if err != nil {
		s.ui.LogItemChange(status.ItemChange{Type: status.ItemError, Name: name, Error: err})
		summary.Failed++
		return
	}

	s.ui.LogItemChange(status.ItemChange{Type: status.ItemUploaded, Name: name, Description: asset.PublicID})
	summary.Uploaded++
}
