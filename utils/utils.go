// Package utils provides small helpers shared across the CLI.
package utils

import (
	"bytes"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
)

// ExpandPath expands a leading tilde and makes the path absolute. The
// input is returned unchanged when expansion fails.
func ExpandPath(path string) string {
	if expanded, err := homedir.Expand(path); err == nil {
		path = expanded
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// RemoveFrontmatter strips a leading YAML frontmatter block so metadata
// does not end up in the reading stream.
func RemoveFrontmatter(content []byte) []byte {
	if !bytes.HasPrefix(content, []byte("---\n")) {
		return content
	}
	parts := bytes.SplitN(content[4:], []byte("\n---\n"), 2)
	if len(parts) < 2 {
		return content
	}
	return parts[1]
}
