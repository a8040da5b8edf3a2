package remote

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeForFile(t *testing.T) {
	tests := []struct {
		path string
		want ResourceType
	}{
		{"photo.jpg", Image},
		{"photo.JPEG", Image},
		{"logo.svg", Image},
		{"clip.mp4", Video},
		{"clip.MOV", Video},
		{"doc.pdf", Raw},
		{"archive.7z.001", Raw},
		{"noext", Raw},
		{"dir/movie.mkv", Video},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TypeForFile(tt.path), "TypeForFile(%q)", tt.path)
	}
}
