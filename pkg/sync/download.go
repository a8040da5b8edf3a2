package sync

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"

	"github.com/meltsync/meltsync/pkg/archive"
	"github.com/meltsync/meltsync/pkg/remote"
	"github.com/meltsync/meltsync/pkg/status"
)

// 📥 DownloadFolder streams every asset under folderPath into destDir and,
// once the whole batch has finished, runs the reassembly detector exactly
// once over the destination directory.
func (s *Syncer) DownloadFolder(ctx context.Context, folderPath, destDir string) (*Summary, *archive.ReassembleSummary, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, nil, errors.Errorf("creating %s: %w", destDir, err)
	}

	s.ui.LogProgress("Downloading '" + folderPath + "' to '" + destDir + "'")

	prefix := folderPath + "/"
	summary := &Summary{}

	for _, rt := range remote.ResourceTypes {
		assets, err := s.store.ListByPrefix(ctx, prefix, rt, maxListResults)
		if err != nil {
			s.ui.LogWarning("Could not list " + string(rt) + " resources: " + err.Error())
			continue
		}

		for _, asset := range assets {
			name := localName(prefix, asset)
			local := filepath.Join(destDir, name)
			if err := s.downloadAsset(ctx, asset, local); err != nil {
				s.ui.LogItemChange(status.ItemChange{Type: status.ItemError, Name: name, Error: err})
				summary.Failed++
				continue
			}
			s.ui.LogItemChange(status.ItemChange{Type: status.ItemDownloaded, Name: name})
			summary.Downloaded++
		}
	}

	var reassembly *archive.ReassembleSummary
	if summary.Downloaded > 0 {
		s.ui.LogProgress("Checking for compressed archives")
		var err error
		reassembly, err = s.reassembler.ReassembleDir(ctx, destDir)
		if err != nil {
			return summary, nil, errors.Errorf("reassembling archives in %s: %w", destDir, err)
		}
	}

	return summary, reassembly, nil
}

// downloadAsset streams one secure URL to a local path.
func (s *Syncer) downloadAsset(ctx context.Context, asset remote.Asset, local string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, asset.SecureURL, nil)
	if err != nil {
		return errors.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return errors.Errorf("downloading %s: %w", asset.PublicID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("downloading %s: unexpected status code %d", asset.PublicID, resp.StatusCode)
	}

	f, err := os.Create(local)
	if err != nil {
		return errors.Errorf("creating %s: %w", local, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return errors.Errorf("writing %s: %w", local, err)
	}
	return nil
}
