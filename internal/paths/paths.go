// Package paths resolves the configuration and data directories of rpncalc.
//
// Both follow the same precedence: an explicit flag, then an environment
// variable, then the platform default. The data directory may additionally
// be set by data_dir in config.yaml, which ranks between the flag and the
// environment.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName is the directory name used under the platform base directories.
const AppName = "rpncalc"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "RPNCALC_CONFIG_DIR"
	EnvDataDir   = "RPNCALC_DATA_DIR"
)

// File names inside the resolved directories.
const (
	ConfigFileName  = "config.yaml"
	HistoryFileName = "history"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/rpncalc (fallback ~/.config/rpncalc)
// macOS:   ~/Library/Application Support/rpncalc
// Windows: %APPDATA%/rpncalc
func DefaultConfigDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform-specific default data directory.
//
// Linux:   $XDG_DATA_HOME/rpncalc (fallback ~/.local/share/rpncalc)
// macOS and Windows: same as DefaultConfigDir.
func DefaultDataDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// xdgDir applies the XDG base directory rules on Linux and falls back to
// os.UserConfigDir elsewhere.
func xdgDir(env, homeRel string) (string, error) {
	if platformDir.goos != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppName), nil
	}
	if xdg := os.Getenv(env); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, homeRel, AppName), nil
}

// ResolveConfigDir returns the configuration directory:
// flag > RPNCALC_CONFIG_DIR > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	return resolve(DefaultConfigDir, flag, os.Getenv(EnvConfigDir))
}

// ResolveDataDir returns the data directory:
// flag > config.yaml data_dir > RPNCALC_DATA_DIR > DefaultDataDir().
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	return resolve(DefaultDataDir, flag, configYAMLValue, os.Getenv(EnvDataDir))
}

// resolve returns the absolute form of the first non-empty candidate, or
// the platform default when all are empty.
func resolve(fallback func() (string, error), candidates ...string) (string, error) {
	for _, c := range candidates {
		if c != "" {
			return filepath.Abs(c)
		}
	}
	return fallback()
}

// ConfigFile returns the path of config.yaml inside configDir.
func ConfigFile(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}

// HistoryFile returns the path of the interactive line history inside dataDir.
func HistoryFile(dataDir string) string {
	return filepath.Join(dataDir, HistoryFileName)
}
