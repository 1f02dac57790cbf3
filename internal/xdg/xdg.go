package xdg

import (
	"os"
	"os/user"
	"path/filepath"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "actorkey"

// ConfigEnv names the environment variable that overrides the config path.
const ConfigEnv = "ACTORKEY_CONFIG"

// Paths holds XDG-compliant directory paths
type Paths struct {
	ConfigHome string
}

// NewPaths returns XDG-compliant directory paths
// If XDG_CONFIG_HOME is set it is used; otherwise ~/.config applies
func NewPaths() (Paths, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := getHomeDir()
		if err != nil {
			return Paths{}, err
		}
		configHome = filepath.Join(homeDir, ".config")
	}

	return Paths{
		ConfigHome: configHome,
	}, nil
}

// getHomeDir returns the user's home directory
func getHomeDir() (string, error) {
	currentUser, err := user.Current()
	if err != nil {
		return "", err
	}
	return currentUser.HomeDir, nil
}

// ConfigPath returns the path to the config file
func (p Paths) ConfigPath() string {
	return filepath.Join(p.ConfigHome, AppName, "config")
}

// ResolveConfigPath picks the config file in priority order: the explicit
// flag value, then $ACTORKEY_CONFIG, then the XDG location. explicit reports
// whether the path came from the flag or the environment.
func (p Paths) ResolveConfigPath(flagValue string) (path string, explicit bool) {
	if flagValue != "" {
		return flagValue, true
	}
	if env := os.Getenv(ConfigEnv); env != "" {
		return env, true
	}
	return p.ConfigPath(), false
}

// EnsureDirs creates necessary directories with proper permissions (0700)
func (p Paths) EnsureDirs() error {
	return os.MkdirAll(filepath.Join(p.ConfigHome, AppName), 0o700)
}
