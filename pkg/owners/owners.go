// Package owners provides the read-only directory mapping projects to
// ticket assignees. The directory is loaded once and injected into the
// collection step; a lookup miss simply leaves the ticket unassigned.
package owners

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Directory maps a project identifier or name to an assignee accountId.
type Directory map[string]string

// Load reads a YAML directory file. An empty path yields an empty
// directory, which is valid: every lookup misses.
func Load(path string) (Directory, error) {
	if path == "" {
		return Directory{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read owners file: %w", err)
	}

	var dir Directory
	if err := yaml.Unmarshal(data, &dir); err != nil {
		return nil, fmt.Errorf("failed to parse owners file %s: %w", path, err)
	}
	if dir == nil {
		dir = Directory{}
	}
	return dir, nil
}

// Lookup tries each key in order and returns the first match. Misses
// are expected, not errors.
func (d Directory) Lookup(keys ...string) (string, bool) {
	for _, key := range keys {
		if owner, ok := d[key]; ok && owner != "" {
			return owner, true
		}
	}
	return "", false
}
