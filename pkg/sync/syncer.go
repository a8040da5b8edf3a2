// Package sync orchestrates transfers between the local filesystem and the
// remote media store: upload with transparent volume splitting, download
// with automatic reassembly, folder listing and deletion. All operations
// are sequential; one file (or one volume fragment) is processed at a time.
package sync

import (
	"fmt"

	"github.com/meltsync/meltsync/pkg/archive"
	"github.com/meltsync/meltsync/pkg/config"
	"github.com/meltsync/meltsync/pkg/remote"
	"github.com/meltsync/meltsync/pkg/status"
)

// maxListResults is the per-request listing cap imposed by the service API.
const maxListResults = 500

// 📊 Summary tallies the per-item outcomes of a batch operation. Per-item
// failures are counted here, never escalated to the command handler.
type Summary struct {
	Uploaded   int
	Downloaded int
	Deleted    int
	Skipped    int
	Failed     int
}

// String renders the summary for the end-of-batch report.
func (s *Summary) String() string {
	out := ""
	if s.Uploaded > 0 {
		out += fmt.Sprintf("uploaded %d ", s.Uploaded)
	}
	if s.Downloaded > 0 {
		out += fmt.Sprintf("downloaded %d ", s.Downloaded)
	}
	if s.Deleted > 0 {
		out += fmt.Sprintf("deleted %d ", s.Deleted)
	}
	if s.Skipped > 0 {
		out += fmt.Sprintf("skipped %d ", s.Skipped)
	}
	if s.Failed > 0 {
		out += fmt.Sprintf("failed %d ", s.Failed)
	}
	if out == "" {
		return "nothing to do"
	}
	return out[:len(out)-1]
}

// 🔧 Syncer wires the storage boundary, the volume manager and the user
// logger together.
type Syncer struct {
	cfg         *config.Config
	store       remote.Storage
	splitter    *archive.Splitter
	reassembler *archive.Reassembler
	ui          *status.UserLogger
}

// 🏭 New creates a syncer.
func New(cfg *config.Config, store remote.Storage, splitter *archive.Splitter, reassembler *archive.Reassembler, ui *status.UserLogger) *Syncer {
	return &Syncer{
		cfg:         cfg,
		store:       store,
		splitter:    splitter,
		reassembler: reassembler,
		ui:          ui,
	}
}
