// tag.go implements tag string validation for the permitted alphabet the
// spec defines: letters, digits, '-', '_', '.', with '=' reserved as the
// key/value separator and '/' forbidden everywhere (tag text lives inside
// a single path segment under the query root, so a '/' would be
// indistinguishable from a directory boundary).
//
// Design: the first '=' splits key from value; everything after it is the
// value verbatim, including further '=' characters. This mirrors the rule
// the spec calls out explicitly as an open question resolved in favour of
// the source's behaviour.

package validate

import (
	"fmt"
	"strings"
)

// Tag validates a tag string (bare or key=value) and returns its canonical
// form, which is the input unchanged on success.
func Tag(t string) (string, error) {
	if t == "" {
		return "", fmt.Errorf("%w: empty tag", ErrInvalidTag)
	}
	if strings.ContainsRune(t, 0) {
		return "", fmt.Errorf("%w: null byte in tag %q", ErrInvalidTag, t)
	}
	if strings.ContainsRune(t, '/') {
		return "", fmt.Errorf("%w: '/' not permitted in tag %q", ErrInvalidTag, t)
	}

	idx := strings.IndexByte(t, '=')
	if idx == -1 {
		if !validName(t) {
			return "", fmt.Errorf("%w: %q", ErrInvalidTag, t)
		}
		return t, nil
	}

	key, value := t[:idx], t[idx+1:]
	if key == "" {
		return "", fmt.Errorf("%w: empty key in %q", ErrInvalidTag, t)
	}
	if value == "" {
		return "", fmt.Errorf("%w: empty value in %q", ErrInvalidTag, t)
	}
	if !validName(key) {
		return "", fmt.Errorf("%w: invalid key %q", ErrInvalidTag, key)
	}
	if !validValue(value) {
		return "", fmt.Errorf("%w: invalid value %q", ErrInvalidTag, value)
	}
	return t, nil
}

// IsKeyed reports whether a canonical tag string has a key=value form.
func IsKeyed(t string) bool {
	return strings.IndexByte(t, '=') != -1
}

// Split divides a canonical keyed tag into key and value. The caller must
// have already confirmed IsKeyed(t).
func Split(t string) (key, value string) {
	idx := strings.IndexByte(t, '=')
	return t[:idx], t[idx+1:]
}

// validName reports whether s is a non-empty string drawn from letters,
// digits, '-', '_', '.'.
func validName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !nameRune(r) {
			return false
		}
	}
	return true
}

// validValue allows everything validName allows, plus spaces, since the
// spec explicitly permits spaces in tag values, and '=', since everything
// after the first '=' is the value verbatim.
func validValue(s string) bool {
	for _, r := range s {
		if r == ' ' || r == '=' {
			continue
		}
		if !nameRune(r) {
			return false
		}
	}
	return true
}

func nameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-', r == '_', r == '.':
		return true
	default:
		return false
	}
}
