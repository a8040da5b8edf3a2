package archive

import (
	"os/exec"

	"gitlab.com/tozd/go/errors"
)

// toolCandidates are the known archiver executable names, tried in order.
var toolCandidates = []string{"7zz", "7z", "7za"}

// 🚫 ErrArchiverUnavailable is returned when no archiver executable can be
// resolved on PATH. Callers degrade to uncompressed transfer, never fail.
var ErrArchiverUnavailable = errors.New("no 7z executable found")

// 🔍 LookupTool resolves the first invocable archiver executable.
func LookupTool() (string, error) {
	for _, name := range toolCandidates {
		if _, err := exec.LookPath(name); err == nil {
			return name, nil
		}
	}
	return "", ErrArchiverUnavailable
}
