package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// compressionLevel is the fixed -mx level passed to the archiver (0-9).
const compressionLevel = 5

// 📦 SplitResult describes the artifacts an upload should transfer: either
// the original file unchanged, or an ordered volume set in a scratch
// directory that the caller owns until Cleanup.
type SplitResult struct {
	Artifacts  []string // files to upload, in order
	Split      bool     // whether the source was split into volumes
	ScratchDir string   // scratch directory holding the volumes, "" when not split
}

// 🗑️ Cleanup removes the scratch directory. Safe to call unconditionally;
// it is a no-op for pass-through results.
func (r *SplitResult) Cleanup() {
	if r.ScratchDir != "" {
		_ = os.RemoveAll(r.ScratchDir)
	}
}

// ✂️ Splitter decides whether a file exceeds the size threshold and, if so,
// invokes the external archiver to produce fixed-size volumes.
type Splitter struct {
	exec      Executor
	tool      string // resolved archiver executable, "" when unavailable
	threshold int64  // split threshold and volume size, in bytes
}

// 🏭 NewSplitter creates a splitter, resolving the archiver from PATH.
func NewSplitter(executor Executor, thresholdBytes int64) *Splitter {
	tool, err := LookupTool()
	if err != nil {
		tool = ""
	}
	return NewSplitterWithTool(executor, tool, thresholdBytes)
}

// NewSplitterWithTool creates a splitter with an explicit archiver name.
// An empty tool means the archiver is unavailable.
func NewSplitterWithTool(executor Executor, tool string, thresholdBytes int64) *Splitter {
	return &Splitter{exec: executor, tool: tool, threshold: thresholdBytes}
}

// 🎯 MaybeSplit returns the artifacts to upload for path. Files at or below
// the threshold, and every failure mode of the archiver, pass the original
// file through unchanged — splitting is best-effort, never fatal.
func (s *Splitter) MaybeSplit(ctx context.Context, path string) (*SplitResult, error) {
	logger := zerolog.Ctx(ctx)

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Errorf("stating %s: %w", path, err)
	}

	passthrough := &SplitResult{Artifacts: []string{path}}

	if info.Size() <= s.threshold {
		return passthrough, nil
	}

	if s.tool == "" {
		logger.Warn().Str("path", path).Msg("7z not available, large file will be uploaded as-is")
		return passthrough, nil
	}

	logger.Info().
		Str("path", path).
		Int64("size", info.Size()).
		Int64("threshold", s.threshold).
		Msg("file exceeds threshold, compressing into volumes")

	scratch := filepath.Join(os.TempDir(), "meltsync-"+uuid.NewString())
	if err := os.MkdirAll(scratch, 0o755); err != nil {
		return nil, errors.Errorf("creating scratch directory: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	archivePath := filepath.Join(scratch, base+".7z")

	res, err := s.exec.Run(ctx, s.tool,
		"a",
		fmt.Sprintf("-v%db", s.threshold),
		fmt.Sprintf("-mx=%d", compressionLevel),
		archivePath,
		path,
	)
	if err != nil {
		_ = os.RemoveAll(scratch)
		logger.Warn().Err(err).Str("path", path).Msg("compression failed, uploading as-is")
		return passthrough, nil
	}
	if res.ExitCode != 0 {
		_ = os.RemoveAll(scratch)
		logger.Warn().
			Int("exit_code", res.ExitCode).
			Str("stderr", res.Stderr).
			Str("path", path).
			Msg("compression failed, uploading as-is")
		return passthrough, nil
	}

	volumes, err := collectVolumes(scratch, base)
	if err != nil || len(volumes) == 0 {
		_ = os.RemoveAll(scratch)
		logger.Warn().Str("path", path).Msg("archiver produced no volumes, uploading as-is")
		return passthrough, nil
	}

	logger.Info().Int("volumes", len(volumes)).Msg("compressed into volumes")
	return &SplitResult{Artifacts: volumes, Split: true, ScratchDir: scratch}, nil
}

// collectVolumes gathers the volume files of base in dir, sorted
// lexicographically. The archiver's fixed-width numeric suffixing makes
// lexicographic order the correct sequential order.
func collectVolumes(dir, base string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Errorf("reading scratch directory: %w", err)
	}

	var volumes []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, base) && strings.Contains(name, ".7z.") {
			volumes = append(volumes, filepath.Join(dir, name))
		}
	}
	sort.Strings(volumes)
	return volumes, nil
}
