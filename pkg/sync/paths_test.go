package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meltsync/meltsync/pkg/remote"
)

func TestShouldSkip(t *testing.T) {
	skip := []string{
		".DS_Store", ".gitignore", ".hidden", "Thumbs.db", "desktop.ini",
		"Desktop.ini", "draft.tmp", "notes.swp", "notes.swo", "~$report.docx",
		"__pycache__",
	}
	for _, name := range skip {
		assert.True(t, ShouldSkip(name), "should skip %q", name)
	}

	keep := []string{"photo.jpg", "movie.mp4", "doc.pdf", "archive.7z.001", "tmp.txt"}
	for _, name := range keep {
		assert.False(t, ShouldSkip(name), "should keep %q", name)
	}
}

func TestNormalizeFolder(t *testing.T) {
	tests := []struct {
		name          string
		defaultFolder string
		folder        string
		want          string
	}{
		{"no_default", "", "photos", "photos"},
		{"prepends_default", "melted", "photos", "melted/photos"},
		{"already_prefixed", "melted", "melted/photos", "melted/photos"},
		{"equals_default", "melted", "melted", "melted"},
		{"empty_folder", "melted", "", "melted"},
		{"trims_slashes", "melted", "/photos/", "melted/photos"},
		{"similar_prefix_not_confused", "melted", "melted2/photos", "melted/melted2/photos"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeFolder(tt.defaultFolder, tt.folder))
		})
	}
}

func TestRemoteID(t *testing.T) {
	tests := []struct {
		name   string
		folder string
		path   string
		want   string
	}{
		{"image_drops_extension", "melted/photos", "/tmp/cat.jpg", "melted/photos/cat"},
		{"video_drops_extension", "melted", "clip.mp4", "melted/clip"},
		{"raw_keeps_extension", "melted/docs", "/tmp/report.pdf", "melted/docs/report.pdf"},
		{"volume_fragment_stays_distinct", "melted", "/scratch/movie.7z.001", "melted/movie.7z.001"},
		{"root_folder", "", "cat.jpg", "cat"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RemoteID(tt.folder, tt.path))
		})
	}
}

func TestLocalName(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		asset  remote.Asset
		want   string
	}{
		{"appends_format", "melted/photos/", remote.Asset{PublicID: "melted/photos/cat", Format: "jpg"}, "cat.jpg"},
		{"raw_without_format", "melted/docs/", remote.Asset{PublicID: "melted/docs/report.pdf"}, "report.pdf"},
		{"fragment_name", "melted/", remote.Asset{PublicID: "melted/movie.7z.001"}, "movie.7z.001"},
		{"nested_takes_last_segment", "melted/", remote.Asset{PublicID: "melted/sub/cat", Format: "png"}, "cat.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, localName(tt.prefix, tt.asset))
		})
	}
}
