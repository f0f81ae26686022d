// parse.go implements the edit-script lexer/parser: a line scanner, not a
// token-level grammar, since the format is line-oriented by design.

package editscript

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jamesblissett/tagfs/internal/validate"
)

// Parse reads a complete edit script. A parse error names the offending
// line and wraps one of the sentinel errors in this package, or
// validate.ErrInvalidTag for a tag line that fails tag validation. A read
// failure of r is returned wrapped as is.
func Parse(r io.Reader) (*Script, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var script Script
	var current *Block
	var seen map[string]struct{}
	line := 0

	flush := func() {
		if current != nil {
			script.Blocks = append(script.Blocks, *current)
		}
		current = nil
		seen = nil
	}

	for scanner.Scan() {
		line++
		raw := scanner.Text()
		trimmed := strings.TrimLeft(raw, " \t")

		switch {
		case strings.HasPrefix(trimmed, "#"):
			continue // comment, ignored anywhere

		case raw == "":
			flush() // blank line terminates the current block

		case raw == trimmed: // no leading whitespace: a path line
			flush()
			path, err := validate.Path(raw)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w: %q", line, ErrMalformedPath, raw)
			}
			current = &Block{Path: path}
			seen = make(map[string]struct{})

		default: // indented: a tag line
			if current == nil {
				return nil, fmt.Errorf("line %d: %w: %q", line, ErrOrphanTag, raw)
			}
			tagText := strings.TrimSpace(trimmed)
			tag, err := validate.Tag(tagText)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid tag: %w", line, err)
			}
			if _, dup := seen[tag]; dup {
				return nil, fmt.Errorf("line %d: %w: %q under %q", line, ErrDuplicateTagInBlock, tag, current.Path)
			}
			seen[tag] = struct{}{}
			current.Tags = append(current.Tags, tag)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read edit script: %w", err)
	}
	flush()

	return &script, nil
}
