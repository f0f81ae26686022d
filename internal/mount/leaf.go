package mount

import (
	"context"
	"syscall"

	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/jamesblissett/tagfs/internal/fshandler"
)

// SymlinkNode is a KindResultSymlink entry: readlink resolves to the
// original tagged path, outside the mount.
type SymlinkNode struct {
	BaseNode
}

var (
	_ fs.NodeReadlinker = (*SymlinkNode)(nil)
	_ fs.NodeGetattrer  = (*SymlinkNode)(nil)
)

func (n *SymlinkNode) Readlink(ctx context.Context) ([]byte, syscall.Errno) {
	target, err := n.h.ReadLink(ctx, n.ino)
	if err != nil {
		return nil, fshandler.Errno(err)
	}
	return []byte(target), 0
}

func (n *SymlinkNode) Getattr(ctx context.Context, f fs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	out.Mode = 0777 | syscall.S_IFLNK
	if target, err := n.h.ReadLink(ctx, n.ino); err == nil {
		out.Size = uint64(len(target))
	}
	n.setTimes(out)
	return 0
}

// ProjectionNode is a KindTagProjection entry: a read-only synthetic file
// whose content is the tagged path's newline-joined tag list.
type ProjectionNode struct {
	BaseNode
}

var (
	_ fs.NodeReader    = (*ProjectionNode)(nil)
	_ fs.NodeGetattrer = (*ProjectionNode)(nil)
)

func (n *ProjectionNode) Getattr(ctx context.Context, f fs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	out.Mode = 0444 | syscall.S_IFREG
	if data, err := n.h.Read(ctx, n.ino, 0, maxProjectionRead); err == nil {
		out.Size = uint64(len(data))
	}
	n.setTimes(out)
	return 0
}

func (n *ProjectionNode) Read(ctx context.Context, f fs.FileHandle, dest []byte, off int64) (fuse.ReadResult, syscall.Errno) {
	data, err := n.h.Read(ctx, n.ino, off, len(dest))
	if err != nil {
		return nil, fshandler.Errno(err)
	}
	return fuse.ReadResultData(data), 0
}
