package archive

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir string, names ...string) {
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("data"), 0o644))
	}
}

func dirNames(t *testing.T, dir string) []string {
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func TestReassembleDir(t *testing.T) {
	t.Run("reassembles_multi_volume_set", func(t *testing.T) {
		ctx := setupTestLogger(t)
		dir := t.TempDir()
		touch(t, dir, "movie.7z.001", "movie.7z.002", "movie.7z.003", "notes.txt")

		fake := &fakeExecutor{
			run: func(ctx context.Context, name string, args []string) (*Result, error) {
				require.Equal(t, "x", args[0])
				touch(t, dir, "movie.mp4")
				return &Result{}, nil
			},
		}

		summary, err := NewReassemblerWithTool(fake, "7z").ReassembleDir(ctx, dir)
		require.NoError(t, err, "reassembling")

		assert.Equal(t, 1, summary.Reassembled)
		assert.Equal(t, 3, summary.Removed)
		assert.Zero(t, summary.Failed)
		assert.ElementsMatch(t, []string{"movie.mp4", "notes.txt"}, dirNames(t, dir))
	})

	t.Run("failed_extraction_retains_fragments", func(t *testing.T) {
		ctx := setupTestLogger(t)
		dir := t.TempDir()
		touch(t, dir, "movie.7z.001", "movie.7z.002")

		fake := &fakeExecutor{
			run: func(ctx context.Context, name string, args []string) (*Result, error) {
				return &Result{ExitCode: 2, Stderr: "corrupt archive"}, nil
			},
		}

		summary, err := NewReassemblerWithTool(fake, "7z").ReassembleDir(ctx, dir)
		require.NoError(t, err, "failed extraction is reported, not returned")

		assert.Equal(t, 1, summary.Failed)
		assert.Zero(t, summary.Removed)
		assert.ElementsMatch(t, []string{"movie.7z.001", "movie.7z.002"}, dirNames(t, dir),
			"all fragments must remain after a failed extraction")
	})

	t.Run("extracts_single_archive", func(t *testing.T) {
		ctx := setupTestLogger(t)
		dir := t.TempDir()
		touch(t, dir, "doc.7z")

		fake := &fakeExecutor{
			run: func(ctx context.Context, name string, args []string) (*Result, error) {
				touch(t, dir, "doc.pdf")
				return &Result{}, nil
			},
		}

		summary, err := NewReassemblerWithTool(fake, "7z").ReassembleDir(ctx, dir)
		require.NoError(t, err)

		assert.Equal(t, 1, summary.Reassembled)
		assert.Equal(t, 1, summary.Removed)
		assert.ElementsMatch(t, []string{"doc.pdf"}, dirNames(t, dir),
			"the single compressed file is removed after successful extraction")
	})

	t.Run("handles_wide_volume_suffixes", func(t *testing.T) {
		ctx := setupTestLogger(t)
		dir := t.TempDir()
		touch(t, dir, "huge.7z.001", "huge.7z.0999", "huge.7z.1000", "huge.7z.txt")

		fake := &fakeExecutor{}

		summary, err := NewReassemblerWithTool(fake, "7z").ReassembleDir(ctx, dir)
		require.NoError(t, err)

		assert.Equal(t, 1, summary.Reassembled)
		assert.Equal(t, 3, summary.Removed, "digit suffixes of any width are part of the set")
		assert.Contains(t, dirNames(t, dir), "huge.7z.txt", "non-numeric suffixes are not fragments")
	})

	t.Run("archiver_unavailable_leaves_files", func(t *testing.T) {
		ctx := setupTestLogger(t)
		dir := t.TempDir()
		touch(t, dir, "movie.7z.001", "doc.7z")

		fake := &fakeExecutor{}

		summary, err := NewReassemblerWithTool(fake, "").ReassembleDir(ctx, dir)
		require.NoError(t, err)

		assert.Equal(t, 2, summary.Failed)
		assert.Empty(t, fake.calls)
		assert.ElementsMatch(t, []string{"movie.7z.001", "doc.7z"}, dirNames(t, dir))
	})

	t.Run("empty_directory", func(t *testing.T) {
		ctx := setupTestLogger(t)
		summary, err := NewReassemblerWithTool(&fakeExecutor{}, "7z").ReassembleDir(ctx, t.TempDir())
		require.NoError(t, err)
		assert.Zero(t, summary.Reassembled)
		assert.Zero(t, summary.Failed)
	})
}

func TestIsVolumeOf(t *testing.T) {
	tests := []struct {
		name string
		base string
		want bool
	}{
		{"movie.7z.001", "movie.7z", true},
		{"movie.7z.002", "movie.7z", true},
		{"movie.7z.12345", "movie.7z", true},
		{"movie.7z", "movie.7z", false},
		{"movie.7z.txt", "movie.7z", false},
		{"movie.7z.0a1", "movie.7z", false},
		{"other.7z.001", "movie.7z", false},
		{"movie.7z.", "movie.7z", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isVolumeOf(tt.name, tt.base), "isVolumeOf(%q, %q)", tt.name, tt.base)
	}
}
