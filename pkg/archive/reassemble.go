package archive

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const firstVolumeSuffix = ".7z.001"

// 📊 ReassembleSummary counts the outcome of a reassembly pass.
type ReassembleSummary struct {
	Reassembled int // archives successfully extracted
	Removed     int // fragment/archive files removed after extraction
	Failed      int // archives whose extraction failed (fragments retained)
}

// 🧩 Reassembler scans a directory for downloaded archives and reconstructs
// the original files.
type Reassembler struct {
	exec Executor
	tool string
}

// 🏭 NewReassembler creates a reassembler, resolving the archiver from PATH.
func NewReassembler(executor Executor) *Reassembler {
	tool, err := LookupTool()
	if err != nil {
		tool = ""
	}
	return NewReassemblerWithTool(executor, tool)
}

// NewReassemblerWithTool creates a reassembler with an explicit archiver name.
func NewReassemblerWithTool(executor Executor, tool string) *Reassembler {
	return &Reassembler{exec: executor, tool: tool}
}

// 🎯 ReassembleDir scans dir (non-recursive) for multi-volume archive sets
// and single compressed files, extracts them in place, and removes the
// consumed fragments. Fragments are deleted only after their archive
// extracts successfully; a failed extraction leaves every fragment in place
// so the only remaining copy of the data is never destroyed.
func (r *Reassembler) ReassembleDir(ctx context.Context, dir string) (*ReassembleSummary, error) {
	logger := zerolog.Ctx(ctx)
	summary := &ReassembleSummary{}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", dir, err)
	}

	var firstVolumes, singles []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		switch {
		case strings.HasSuffix(name, firstVolumeSuffix):
			firstVolumes = append(firstVolumes, name)
		case strings.HasSuffix(name, ".7z"):
			singles = append(singles, name)
		}
	}

	if len(firstVolumes) == 0 && len(singles) == 0 {
		return summary, nil
	}

	if r.tool == "" {
		logger.Warn().Str("dir", dir).Msg("7z not available, cannot decompress downloaded archives")
		summary.Failed = len(firstVolumes) + len(singles)
		return summary, nil
	}

	for _, name := range firstVolumes {
		logger.Info().Str("archive", name).Msg("detected multi-volume archive")
		if !r.extract(ctx, filepath.Join(dir, name), dir) {
			summary.Failed++
			continue
		}
		summary.Reassembled++

		base := strings.TrimSuffix(name, firstVolumeSuffix) + ".7z"
		removed, err := removeVolumeSet(dir, base)
		if err != nil {
			return summary, err
		}
		summary.Removed += removed
		logger.Info().Int("removed", removed).Str("archive", name).Msg("removed volume files after decompression")
	}

	for _, name := range singles {
		logger.Info().Str("archive", name).Msg("decompressing archive")
		if !r.extract(ctx, filepath.Join(dir, name), dir) {
			summary.Failed++
			continue
		}
		summary.Reassembled++
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return summary, errors.Errorf("removing %s: %w", name, err)
		}
		summary.Removed++
	}

	return summary, nil
}

// extract runs the archiver's extract operation, overwriting in place.
func (r *Reassembler) extract(ctx context.Context, archivePath, destDir string) bool {
	logger := zerolog.Ctx(ctx)

	res, err := r.exec.Run(ctx, r.tool, "x", archivePath, "-o"+destDir, "-y")
	if err != nil {
		logger.Error().Err(err).Str("archive", archivePath).Msg("decompression failed")
		return false
	}
	if res.ExitCode != 0 {
		logger.Error().
			Int("exit_code", res.ExitCode).
			Str("stderr", res.Stderr).
			Str("archive", archivePath).
			Msg("decompression failed")
		return false
	}
	return true
}

// removeVolumeSet deletes every fragment of base ("name.7z") in dir,
// matching the canonical volume pattern base + "." + one-or-more digits.
// This handles 2 through N volumes uniformly, regardless of suffix width.
func removeVolumeSet(dir, base string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, errors.Errorf("reading %s: %w", dir, err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !isVolumeOf(entry.Name(), base) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			return removed, errors.Errorf("removing %s: %w", entry.Name(), err)
		}
		removed++
	}
	return removed, nil
}

// isVolumeOf reports whether name is a volume fragment of base.
func isVolumeOf(name, base string) bool {
	suffix, ok := strings.CutPrefix(name, base+".")
	if !ok || suffix == "" {
		return false
	}
	for _, c := range suffix {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
