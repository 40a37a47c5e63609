// Package paths decides where topics keeps config.yaml and its data.
//
// Both directories are per user. On Linux they follow the XDG base
// directory variables; elsewhere they live under os.UserConfigDir. Flags,
// config.yaml and TOPICS_* variables can move them.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appDirName is the directory topics owns under each platform root.
const appDirName = "topics"

// Environment variables that relocate the directories.
const (
	EnvConfigDir = "TOPICS_CONFIG_DIR"
	EnvDataDir   = "TOPICS_DATA_DIR"
)

// platformDir is swapped in tests to simulate lookup failures.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir is where config.yaml lives when nothing overrides it:
// $XDG_CONFIG_HOME/topics or ~/.config/topics on Linux,
// ~/Library/Application Support/topics on macOS, %APPDATA%\topics on Windows.
func DefaultConfigDir() (string, error) {
	return userDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir is where the topic snapshot is stored when nothing
// overrides it: $XDG_DATA_HOME/topics or ~/.local/share/topics on Linux,
// and the same directory as DefaultConfigDir on other platforms.
func DefaultDataDir() (string, error) {
	return userDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// userDir returns appDirName under $xdgVar, or under ~/homeRel when the
// variable is unset. Non-Linux platforms use os.UserConfigDir.
func userDir(xdgVar, homeRel string) (string, error) {
	if runtime.GOOS != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appDirName), nil
	}
	if xdg := os.Getenv(xdgVar); xdg != "" {
		return filepath.Join(xdg, appDirName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, homeRel, appDirName), nil
}

// ResolveConfigDir picks the config directory: the --config-dir flag, then
// TOPICS_CONFIG_DIR, then DefaultConfigDir. Explicit values are made absolute.
func ResolveConfigDir(flag string) (string, error) {
	return firstAbs(DefaultConfigDir, flag, os.Getenv(EnvConfigDir))
}

// ResolveDataDir picks the data directory: the --data-dir flag, then
// data_dir from config.yaml, then TOPICS_DATA_DIR, then DefaultDataDir.
// Explicit values are made absolute.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	return firstAbs(DefaultDataDir, flag, configYAMLValue, os.Getenv(EnvDataDir))
}

// firstAbs returns the first non-empty candidate as an absolute path, or
// fallback() when all are empty.
func firstAbs(fallback func() (string, error), candidates ...string) (string, error) {
	for _, c := range candidates {
		if c != "" {
			return filepath.Abs(c)
		}
	}
	return fallback()
}
