// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Session carries the per-run ambient state: which profile owns the rows
// being read and written. It is created once at startup from flags/config
// and passed explicitly instead of being looked up globally.
type Session struct {
	Profile string
}

// DefaultProfile is used when no profile is configured.
const DefaultProfile = "default"

// NewSession creates a session for the given profile, falling back to
// DefaultProfile when empty.
func NewSession(profile string) Session {
	if strings.TrimSpace(profile) == "" {
		profile = DefaultProfile
	}
	return Session{Profile: profile}
}

// DefaultDatabasePath returns the standard location of the SQLite database.
func DefaultDatabasePath() string {
	return ExpandPath("~/.local/share/dindin/dindin.db")
}

// ExpandPath expands ~ and environment variables in a file path.
// It handles both ~ for home directory and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	// First expand tilde if present
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	// Then expand environment variables
	return os.ExpandEnv(path)
}
