package mount

import (
	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/jamesblissett/tagfs/internal/fshandler"
)

// Config controls how the filesystem is exposed at the kernel boundary.
type Config struct {
	Debug      bool
	AllowOther bool
}

// Mount attaches the tagfs tree rooted at h to dir and blocks until the
// server is ready to serve requests. The returned server's Wait method
// blocks until the filesystem is unmounted.
func Mount(dir string, h *fshandler.Handler, cfg Config) (*fuse.Server, error) {
	opts := &fs.Options{
		MountOptions: fuse.MountOptions{
			Debug:      cfg.Debug,
			AllowOther: cfg.AllowOther,
			FsName:     "tagfs",
			Name:       "tagfs",
		},
	}
	return fs.Mount(dir, Root(h), opts)
}
