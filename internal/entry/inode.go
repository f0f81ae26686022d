package entry

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// Ino is a synthetic inode number. Ino 1 is always KindRoot.
type Ino uint64

// RootIno is the mount's fixed root inode, as required by FUSE.
const RootIno Ino = 1

// hashKey folds an entry key into a 64-bit candidate inode, the same way
// internal/log hashes a directory path into a stable project identifier.
// "Candidate" because the registry still resolves collisions on insert.
func hashKey(key string) Ino {
	sum := blake2b.Sum256([]byte(key))
	n := binary.BigEndian.Uint64(sum[:8])
	if n <= uint64(RootIno) {
		n += uint64(RootIno) + 1 // never collide with the fixed root inode
	}
	return Ino(n)
}
