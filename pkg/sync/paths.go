package sync

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/meltsync/meltsync/pkg/remote"
)

// skipGlobs are glob patterns for files never worth uploading. Leading-dot
// names are handled separately so ".anything" is always skipped.
var skipGlobs = []string{
	"Thumbs.db",
	"[Dd]esktop.ini",
	"*.tmp",
	"*.swp",
	"*.swo",
	"~$*",
	"__pycache__*",
}

// 🔍 ShouldSkip reports whether a filename is hidden or temporary.
func ShouldSkip(filename string) bool {
	if strings.HasPrefix(filename, ".") {
		return true
	}
	for _, pattern := range skipGlobs {
		if ok, err := doublestar.Match(pattern, filename); err == nil && ok {
			return true
		}
	}
	return false
}

// 🎯 NormalizeFolder prepends the default folder prefix to a folder argument
// unless it is already present. Idempotent.
func NormalizeFolder(defaultFolder, folder string) string {
	folder = strings.Trim(folder, "/")
	if defaultFolder == "" {
		return folder
	}
	if folder == "" {
		return defaultFolder
	}
	if folder == defaultFolder || strings.HasPrefix(folder, defaultFolder+"/") {
		return folder
	}
	return defaultFolder + "/" + folder
}

// 🏷️ RemoteID maps a local file to its remote identifier under folder.
// Image and video identifiers drop the extension (the service records the
// delivery format separately); raw identifiers keep the full filename, which
// keeps the fragments of a volume set distinct.
func RemoteID(folder, localPath string) string {
	name := filepath.Base(localPath)
	if remote.TypeForFile(localPath) != remote.Raw {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	if folder == "" {
		return name
	}
	return folder + "/" + name
}

// localName maps an asset's public ID back to a local filename, appending
// the delivery format as extension when the service reports one.
func localName(prefix string, asset remote.Asset) string {
	name := strings.TrimPrefix(asset.PublicID, prefix)
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if asset.Format != "" {
		name += "." + asset.Format
	}
	return name
}
