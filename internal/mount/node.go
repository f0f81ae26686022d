// Package mount adapts internal/fshandler to the FUSE transport, using
// github.com/hanwen/go-fuse/v2's high-level fs package. It is the external
// consumer analogous to the teacher's cmd package depending on
// internal/service: the core (fshandler) is transport-agnostic, and this
// package is the one place that knows about kernel-facing FUSE types.
//
// Node style grounded on the jra3-linear-fuse example's BaseNode: one
// embeddable base holding shared state, concrete node types embedding it,
// each implementing only the NodeXxxer interfaces its entry kind supports.
package mount

import (
	"context"
	"syscall"
	"time"

	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/jamesblissett/tagfs/internal/entry"
	"github.com/jamesblissett/tagfs/internal/fshandler"
)

// BaseNode holds everything every node needs: the handler, this node's
// inode, and the mount's start time (used for synthetic timestamps, since
// the store has no per-tagging timestamp to report).
type BaseNode struct {
	fs.Inode

	h       *fshandler.Handler
	ino     entry.Ino
	started time.Time
}

func newBase(h *fshandler.Handler, ino entry.Ino, started time.Time) BaseNode {
	return BaseNode{h: h, ino: ino, started: started}
}

// nodeFor builds the concrete InodeEmbedder for e, registered at ino.
func nodeFor(h *fshandler.Handler, ino entry.Ino, e entry.Entry, started time.Time) fs.InodeEmbedder {
	base := newBase(h, ino, started)
	switch e.Kind {
	case entry.KindResultSymlink:
		return &SymlinkNode{BaseNode: base}
	case entry.KindTagProjection:
		return &ProjectionNode{BaseNode: base}
	default:
		return &DirNode{BaseNode: base}
	}
}

func stableAttrFor(ino entry.Ino, e entry.Entry) fs.StableAttr {
	mode := uint32(syscall.S_IFDIR)
	switch e.Kind {
	case entry.KindResultSymlink:
		mode = syscall.S_IFLNK
	case entry.KindTagProjection:
		mode = syscall.S_IFREG
	}
	return fs.StableAttr{Mode: mode, Ino: uint64(ino)}
}

// Root returns the node to pass to fs.Mount.
func Root(h *fshandler.Handler) fs.InodeEmbedder {
	return &DirNode{BaseNode: newBase(h, entry.RootIno, time.Now())}
}

// DirNode serves every directory-shaped entry kind (root, query root/node,
// result sentinel, tag browser root/dir, stored-query root/dir) - they all
// resolve through the same Lookup/Readdir/Getattr calls on the handler, so
// one type covers them instead of one per kind.
type DirNode struct {
	BaseNode
}

var (
	_ fs.NodeLookuper  = (*DirNode)(nil)
	_ fs.NodeReaddirer = (*DirNode)(nil)
	_ fs.NodeGetattrer = (*DirNode)(nil)
)

func (n *DirNode) Getattr(ctx context.Context, f fs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	out.Mode = 0555 | syscall.S_IFDIR
	out.Nlink = 2
	n.setTimes(out)
	return 0
}

func (n *DirNode) Lookup(ctx context.Context, name string, out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {
	childIno, childEnt, err := n.h.Lookup(ctx, n.ino, name)
	if err != nil {
		return nil, fshandler.Errno(err)
	}
	return n.spawn(ctx, childIno, childEnt, out), 0
}

func (n *DirNode) Readdir(ctx context.Context) (fs.DirStream, syscall.Errno) {
	children, err := n.h.ReadDir(ctx, n.ino)
	if err != nil {
		return nil, fshandler.Errno(err)
	}

	fuseEntries := make([]fuse.DirEntry, 0, len(children))
	for _, c := range children {
		fuseEntries = append(fuseEntries, fuse.DirEntry{
			Name: c.Name,
			Ino:  uint64(c.Ino),
			Mode: stableAttrFor(c.Ino, c.Ent).Mode,
		})
	}
	return fs.NewListDirStream(fuseEntries), 0
}

// spawn wraps a handler-resolved child as the right node type, filling out
// with the attributes GetAttr would also report.
func (n *BaseNode) spawn(ctx context.Context, childIno entry.Ino, childEnt entry.Entry, out *fuse.EntryOut) *fs.Inode {
	node := nodeFor(n.h, childIno, childEnt, n.started)
	n.fillAttr(ctx, childEnt, &out.Attr)
	child := n.NewInode(ctx, node, stableAttrFor(childIno, childEnt))
	return child
}

func (n *BaseNode) setTimes(out *fuse.AttrOut) {
	out.SetTimes(&n.started, &n.started, &n.started)
}

// fillAttr computes the size-bearing fields that depend on store content:
// a symlink's size is its target length, a projection's size is its
// content length. Directories need neither.
func (n *BaseNode) fillAttr(ctx context.Context, e entry.Entry, attr *fuse.Attr) {
	switch e.Kind {
	case entry.KindResultSymlink:
		attr.Mode = 0777 | syscall.S_IFLNK
		if target, err := n.h.ReadLink(ctx, n.allocFor(e)); err == nil {
			attr.Size = uint64(len(target))
		}
	case entry.KindTagProjection:
		attr.Mode = 0444 | syscall.S_IFREG
		if data, err := n.h.Read(ctx, n.allocFor(e), 0, maxProjectionRead); err == nil {
			attr.Size = uint64(len(data))
		}
	default:
		attr.Mode = 0555 | syscall.S_IFDIR
		attr.Nlink = 2
	}
	attr.SetTimes(&n.started, &n.started, &n.started)
}

// allocFor re-resolves e's inode through the registry. Cheap: Allocate is
// idempotent for an already-seen entry key.
func (n *BaseNode) allocFor(e entry.Entry) entry.Ino {
	return n.h.Registry.Allocate(e)
}

const maxProjectionRead = 1 << 20
