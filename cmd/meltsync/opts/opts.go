package opts

import (
	"github.com/meltsync/meltsync/pkg/config"
	"github.com/meltsync/meltsync/pkg/status"
	"github.com/meltsync/meltsync/pkg/sync"
)

// RootOpts contains shared options used by all commands.
type RootOpts struct {
	Config *config.Config
	Syncer *sync.Syncer
	UI     *status.UserLogger
}
