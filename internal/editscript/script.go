// Package editscript implements the line-oriented, human-editable bulk
// tagging format the spec calls the "edit script":
//
//	# comment line, ignored
//	<absolute path>
//	    tag1
//	    key=value
//	<next path>
//	    ...
//
// A path block declares the complete tag set for that path; applying a
// script diffs each block against the store's current tags for that path
// (see internal/store's ApplyEditScript).
package editscript

import "errors"

var (
	// ErrMalformedPath indicates a path line is empty or not absolute.
	ErrMalformedPath = errors.New("malformed path")
	// ErrOrphanTag indicates an indented line with no preceding path.
	ErrOrphanTag = errors.New("orphan tag")
	// ErrDuplicateTagInBlock indicates the same tag listed twice under
	// one path. The spec leaves warn-vs-reject to the implementer;
	// tagfs rejects, for the same reason apply_edit_script runs as one
	// transaction - a script with internal contradictions shouldn't
	// silently pick a winner.
	ErrDuplicateTagInBlock = errors.New("duplicate tag in block")
)

// Block is the declared complete tag set for one path.
type Block struct {
	Path string
	Tags []string
}

// Script is a parsed edit script: an ordered sequence of path blocks.
type Script struct {
	Blocks []Block
}
