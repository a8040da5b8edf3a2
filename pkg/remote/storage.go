package remote

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"gitlab.com/tozd/go/errors"
)

// 🚫 ErrNotFound is returned when a remote identifier does not exist.
// Callers treat it as "safe to upload"; any other error from an existence
// probe is treated conservatively as "exists" to avoid duplication.
var ErrNotFound = errors.New("remote resource not found")

// 🏷️ ResourceType is the service-side handling hint derived from a file's
// extension.
type ResourceType string

const (
	Image ResourceType = "image"
	Video ResourceType = "video"
	Raw   ResourceType = "raw"
)

// ResourceTypes lists every partition a folder's contents can live in.
var ResourceTypes = []ResourceType{Image, Video, Raw}

// 📄 Asset describes a stored object.
type Asset struct {
	PublicID  string
	SecureURL string
	Format    string // delivery format, "" for raw assets
	CreatedAt time.Time
	Type      ResourceType
}

// 📁 Folder describes a remote folder.
type Folder struct {
	Name string
	Path string
}

// 🔌 Storage is the boundary to the media-management service. Implementations
// translate these calls into vendor API requests.
type Storage interface {
	// 📤 Put uploads a local file under the given remote identifier.
	Put(ctx context.Context, localPath, publicID string, rt ResourceType, uniqueNames bool) (*Asset, error)

	// 🔍 Exists probes a remote identifier. ErrNotFound means absent.
	Exists(ctx context.Context, publicID string, rt ResourceType) error

	// 📂 ListByPrefix returns up to max assets under prefix.
	ListByPrefix(ctx context.Context, prefix string, rt ResourceType, max int) ([]Asset, error)

	// 📂 ListSubfolders returns the folders directly under root.
	ListSubfolders(ctx context.Context, root string) ([]Folder, error)

	// 🗑️ DeleteByPrefix deletes every asset under prefix, returning the count.
	DeleteByPrefix(ctx context.Context, prefix string, rt ResourceType) (int, error)

	// 🗑️ DeleteFolder removes the folder record itself.
	DeleteFolder(ctx context.Context, path string) error
}

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".bmp": true,
	".tiff": true, ".tif": true, ".webp": true, ".svg": true, ".ico": true,
	".psd": true, ".ai": true, ".eps": true,
}

var videoExtensions = map[string]bool{
	".mp4": true, ".avi": true, ".mov": true, ".wmv": true, ".flv": true,
	".webm": true, ".mkv": true, ".m4v": true, ".3gp": true, ".ogv": true,
	".mxf": true, ".ts": true, ".m2ts": true,
}

// 🎯 TypeForFile classifies a local file by extension.
func TypeForFile(path string) ResourceType {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case imageExtensions[ext]:
		return Image
	case videoExtensions[ext]:
		return Video
	default:
		return Raw
	}
}
