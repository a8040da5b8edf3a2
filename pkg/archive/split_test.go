package archive

import (
	"context"
	"crypto/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.TestWriter{T: t}).With().Timestamp().Logger()
	return logger.WithContext(context.Background())
}

// fakeExecutor records invocations and delegates to a scripted run func.
type fakeExecutor struct {
	calls [][]string
	run   func(ctx context.Context, name string, args []string) (*Result, error)
}

func (f *fakeExecutor) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.run != nil {
		return f.run(ctx, name, args)
	}
	return &Result{}, nil
}

func writeFileOfSize(t *testing.T, path string, size int) {
	buf := make([]byte, size)
	_, err := rand.Read(buf)
	require.NoError(t, err, "generating file content")
	require.NoError(t, os.WriteFile(path, buf, 0o644), "writing test file")
}

func TestMaybeSplit(t *testing.T) {
	t.Run("below_threshold_passes_through", func(t *testing.T) {
		ctx := setupTestLogger(t)
		dir := t.TempDir()
		path := filepath.Join(dir, "small.bin")
		writeFileOfSize(t, path, 1024)

		fake := &fakeExecutor{}
		splitter := NewSplitterWithTool(fake, "7z", 2048)

		res, err := splitter.MaybeSplit(ctx, path)
		require.NoError(t, err, "splitting small file")

		assert.False(t, res.Split, "small file should not be split")
		assert.Equal(t, []string{path}, res.Artifacts)
		assert.Empty(t, fake.calls, "archiver should not be invoked")
		res.Cleanup() // no-op for pass-through
	})

	t.Run("archiver_unavailable_passes_through", func(t *testing.T) {
		ctx := setupTestLogger(t)
		dir := t.TempDir()
		path := filepath.Join(dir, "big.bin")
		writeFileOfSize(t, path, 4096)

		fake := &fakeExecutor{}
		splitter := NewSplitterWithTool(fake, "", 1024)

		res, err := splitter.MaybeSplit(ctx, path)
		require.NoError(t, err, "splitting without archiver")

		assert.False(t, res.Split)
		assert.Equal(t, []string{path}, res.Artifacts)
		assert.Empty(t, fake.calls)
	})

	t.Run("splits_into_sorted_volumes", func(t *testing.T) {
		ctx := setupTestLogger(t)
		dir := t.TempDir()
		path := filepath.Join(dir, "big.bin")
		writeFileOfSize(t, path, 4096)

		fake := &fakeExecutor{
			run: func(ctx context.Context, name string, args []string) (*Result, error) {
				archivePath := args[3]
				// Simulate the archiver writing three fixed-width volumes.
				for _, suffix := range []string{".003", ".001", ".002"} {
					require.NoError(t, os.WriteFile(archivePath+suffix, []byte("v"), 0o644))
				}
				return &Result{}, nil
			},
		}
		splitter := NewSplitterWithTool(fake, "7z", 1024)

		res, err := splitter.MaybeSplit(ctx, path)
		require.NoError(t, err, "splitting large file")

		assert.True(t, res.Split)
		require.Len(t, res.Artifacts, 3)
		assert.Equal(t, "big.7z.001", filepath.Base(res.Artifacts[0]), "volumes should be in sequential order")
		assert.Equal(t, "big.7z.002", filepath.Base(res.Artifacts[1]))
		assert.Equal(t, "big.7z.003", filepath.Base(res.Artifacts[2]))
		assert.DirExists(t, res.ScratchDir)

		require.Len(t, fake.calls, 1)
		assert.Equal(t, "7z", fake.calls[0][0])
		assert.Equal(t, "a", fake.calls[0][1])
		assert.Equal(t, "-v1024b", fake.calls[0][2], "volume size should equal the threshold")
		assert.Equal(t, "-mx=5", fake.calls[0][3])

		res.Cleanup()
		assert.NoDirExists(t, res.ScratchDir, "cleanup should remove the scratch directory")
	})

	t.Run("archiver_failure_falls_back", func(t *testing.T) {
		ctx := setupTestLogger(t)
		dir := t.TempDir()
		path := filepath.Join(dir, "big.bin")
		writeFileOfSize(t, path, 4096)

		var scratch string
		fake := &fakeExecutor{
			run: func(ctx context.Context, name string, args []string) (*Result, error) {
				scratch = filepath.Dir(args[3])
				return &Result{ExitCode: 2, Stderr: "disk full"}, nil
			},
		}
		splitter := NewSplitterWithTool(fake, "7z", 1024)

		res, err := splitter.MaybeSplit(ctx, path)
		require.NoError(t, err, "compression failure must not be fatal")

		assert.False(t, res.Split)
		assert.Equal(t, []string{path}, res.Artifacts)
		assert.NoDirExists(t, scratch, "scratch directory should be removed on failure")
	})

	t.Run("zero_volumes_falls_back", func(t *testing.T) {
		ctx := setupTestLogger(t)
		dir := t.TempDir()
		path := filepath.Join(dir, "big.bin")
		writeFileOfSize(t, path, 4096)

		var scratch string
		fake := &fakeExecutor{
			run: func(ctx context.Context, name string, args []string) (*Result, error) {
				scratch = filepath.Dir(args[3])
				return &Result{}, nil
			},
		}
		splitter := NewSplitterWithTool(fake, "7z", 1024)

		res, err := splitter.MaybeSplit(ctx, path)
		require.NoError(t, err, "empty volume set must not be fatal")

		assert.False(t, res.Split)
		assert.Equal(t, []string{path}, res.Artifacts)
		assert.NoDirExists(t, scratch)
	})

	t.Run("missing_file_errors", func(t *testing.T) {
		ctx := setupTestLogger(t)
		splitter := NewSplitterWithTool(&fakeExecutor{}, "7z", 1024)

		_, err := splitter.MaybeSplit(ctx, filepath.Join(t.TempDir(), "nope.bin"))
		require.Error(t, err, "missing file should error")
	})
}

// TestSplitReassembleRoundTrip exercises the real archiver when present:
// split a file into volumes, reassemble them, and compare bytes.
func TestSplitReassembleRoundTrip(t *testing.T) {
	tool, err := LookupTool()
	if err != nil {
		t.Skip("7z not installed")
	}

	ctx := setupTestLogger(t)
	srcDir := t.TempDir()
	src := filepath.Join(srcDir, "payload.bin")
	writeFileOfSize(t, src, 200*1024) // random bytes compress poorly, forcing >1 volume

	executor := NewExecutor()
	splitter := NewSplitterWithTool(executor, tool, 64*1024)

	res, err := splitter.MaybeSplit(ctx, src)
	require.NoError(t, err, "splitting")
	defer res.Cleanup()

	require.True(t, res.Split, "200KiB of random data over a 64KiB threshold must split")
	require.GreaterOrEqual(t, len(res.Artifacts), 2, "expected at least two volumes")

	for _, vol := range res.Artifacts {
		info, err := os.Stat(vol)
		require.NoError(t, err, "stating volume")
		assert.LessOrEqual(t, info.Size(), int64(64*1024), "volume must not exceed the size limit")
	}

	// Simulate a download: copy the volumes into a fresh directory.
	destDir := t.TempDir()
	for _, vol := range res.Artifacts {
		data, err := os.ReadFile(vol)
		require.NoError(t, err, "reading volume")
		require.NoError(t, os.WriteFile(filepath.Join(destDir, filepath.Base(vol)), data, 0o644))
	}

	summary, err := NewReassemblerWithTool(executor, tool).ReassembleDir(ctx, destDir)
	require.NoError(t, err, "reassembling")
	assert.Equal(t, 1, summary.Reassembled)
	assert.Zero(t, summary.Failed)

	want, err := os.ReadFile(src)
	require.NoError(t, err)
	got, err := os.ReadFile(filepath.Join(destDir, "payload.bin"))
	require.NoError(t, err, "reconstructed file should exist")
	assert.Equal(t, want, got, "round trip must reconstruct the original bytes")

	entries, err := os.ReadDir(destDir)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.NotContains(t, entry.Name(), ".7z.", "no volume fragments should remain")
	}
}
