// Package validate provides input validation for tagfs's domain types.
//
// This package enforces the alphabet and shape rules the spec requires for
// paths and tags, at the boundary between user input (CLI, edit scripts,
// lookups inside the mount) and the store.
//
// # Validation Functions
//
// Path validates that a path is a non-empty absolute string free of NUL
// bytes. Tag validates the permitted alphabet for bare and keyed tags.
//
// # Error Handling
//
// All validation errors wrap one of the sentinel errors defined in
// errors.go. Use errors.Is() for type-safe error checking.
package validate
