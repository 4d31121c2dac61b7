// Package config resolves roomcraft settings from viper and the filesystem.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// appDir is the directory name used under the user config and data roots.
const appDir = "roomcraft"

// ExpandPath replaces a leading ~ with the home directory and then expands
// $VAR and ${VAR}. A ~ anywhere else is left alone, as is a path whose home
// directory cannot be resolved.
func ExpandPath(path string) string {
	if rest, ok := strings.CutPrefix(path, "~"); ok && (rest == "" || rest[0] == '/') {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + rest
		}
	}
	return os.ExpandEnv(path)
}

// ConfigSearchPaths lists the directories searched for config.yaml, in
// order: $XDG_CONFIG_HOME/roomcraft (or ~/.config/roomcraft), then the
// working directory.
func ConfigSearchPaths() []string {
	var paths []string
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		paths = append(paths, filepath.Join(dir, appDir))
	} else if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appDir))
	}
	return append(paths, ".")
}
