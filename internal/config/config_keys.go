// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic, which the CLI's "config" subcommand uses to read and
// write individual settings without exposing the whole YAML structure.

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"author.name", "author.email",
		"case_sensitive",
		"limits.max_path", "limits.max_tag",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "author.name":
		return c.Author.Name, nil
	case "author.email":
		return c.Author.Email, nil
	case "case_sensitive":
		return strconv.FormatBool(!c.CaseFold()), nil
	case "limits.max_path":
		return strconv.Itoa(c.MaxPath()), nil
	case "limits.max_tag":
		return strconv.Itoa(c.MaxTag()), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "author.name":
		c.Author.Name = value
	case "author.email":
		c.Author.Email = value
	case "case_sensitive":
		v := strings.ToLower(value)
		if v != "true" && v != "false" {
			return fmt.Errorf("%w: case_sensitive must be true or false", ErrInvalidValue)
		}
		b := v == "true"
		c.CaseSensitive = &b
	case "limits.max_path":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: limits.max_path must be a positive integer", ErrInvalidValue)
		}
		c.Limits.MaxPath = &n
	case "limits.max_tag":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: limits.max_tag must be a positive integer", ErrInvalidValue)
		}
		c.Limits.MaxTag = &n
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	return map[string]string{
		"author.name":     c.Author.Name,
		"author.email":    c.Author.Email,
		"case_sensitive":  strconv.FormatBool(!c.CaseFold()),
		"limits.max_path": strconv.Itoa(c.MaxPath()),
		"limits.max_tag":  strconv.Itoa(c.MaxTag()),
	}
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "author.name":
		return c.Author.Name != ""
	case "author.email":
		return c.Author.Email != ""
	case "case_sensitive":
		return c.CaseSensitive != nil
	case "limits.max_path":
		return c.Limits.MaxPath != nil
	case "limits.max_tag":
		return c.Limits.MaxTag != nil
	default:
		return false
	}
}
