// path.go implements validation for host-filesystem paths tracked by the
// tag store.
//
// Design: unlike a document path, a tagged path is a reference into the
// real host filesystem, so it is validated but never normalised - the
// store stores exactly the string the caller provided (minus a trailing
// slash, which would otherwise let "/a/b" and "/a/b/" collide as distinct
// rows for the same file).

package validate

import (
	"fmt"
	"strings"
)

// Path validates a host-filesystem path.
//
// Validation rules:
//   - Must be non-empty and start with "/" (absolute)
//   - Null bytes rejected
//   - A single trailing slash is stripped (root "/" itself is kept as is)
func Path(p string) (string, error) {
	if p == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if strings.ContainsRune(p, 0) {
		return "", fmt.Errorf("%w: null byte in path", ErrInvalidPath)
	}
	if !strings.HasPrefix(p, "/") {
		return "", fmt.Errorf("%w: not absolute: %q", ErrInvalidPath, p)
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimSuffix(p, "/")
	}
	return p, nil
}
