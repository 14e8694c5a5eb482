package config

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// ExpandTilde replaces ~ or ~/path with the user's home directory.
// Does not support ~username syntax - just ~ for the current user.
func ExpandTilde(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}

	return path
}

// Expand replaces variables in a path and then expands a leading ~.
// Supported variables:
//   - ${HOME}  - user's home directory
//   - ${USER}  - current username
//   - ${STATE} - sentinel's state directory (see StateDir)
func Expand(s string) string {
	if s == "" {
		return s
	}

	result := s
	if strings.Contains(result, "${HOME}") {
		home, _ := os.UserHomeDir()
		result = strings.ReplaceAll(result, "${HOME}", home)
	}
	if strings.Contains(result, "${USER}") {
		result = strings.ReplaceAll(result, "${USER}", getUser())
	}
	if strings.Contains(result, "${STATE}") {
		result = strings.ReplaceAll(result, "${STATE}", StateDir())
	}

	return ExpandTilde(result)
}

// StateDir is where sentinel keeps its log: $XDG_STATE_HOME/sentinel, or
// ~/.local/state/sentinel when XDG_STATE_HOME is unset.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "sentinel")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "sentinel")
	}
	return filepath.Join(home, ".local", "state", "sentinel")
}

// DefaultLogFile is the log path used when log.file is not set.
func DefaultLogFile() string {
	return filepath.Join(StateDir(), "sentinel.log")
}

func getUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return "unknown"
}
