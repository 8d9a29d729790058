package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// PathResolver finds the config and dictionary locations for the keyserve
// binary regardless of the directory it was started from.
type PathResolver struct {
	executableDir string
	homeDir       string
	configDir     string
}

// NewPathResolver creates a new path resolver that determines the executable location
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}
	pr := &PathResolver{
		executableDir: filepath.Dir(execPath),
		homeDir:       homeDir,
		configDir:     configDirFor(homeDir),
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", pr.executableDir, pr.configDir)
	return pr, nil
}

// configDirFor returns the platform config directory for keyserve.
func configDirFor(homeDir string) string {
	switch runtime.GOOS {
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, "keyserve")
		}
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "keyserve")
		}
	}
	return filepath.Join(homeDir, ".config", "keyserve")
}

// ConfigDir returns the config directory
func (pr *PathResolver) ConfigDir() string {
	return pr.configDir
}

// GetDataDir resolves the dictionary directory. Candidates, in order: the
// path itself when absolute, relative to the executable, relative to the
// working directory, then <configDir>/data. The first one holding
// dictionary files wins.
func (pr *PathResolver) GetDataDir(userPath string) string {
	var candidates []string
	if filepath.IsAbs(userPath) {
		candidates = append(candidates, userPath)
	}
	candidates = append(candidates, filepath.Join(pr.executableDir, userPath))
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, userPath))
	}
	candidates = append(candidates, filepath.Join(pr.configDir, "data"))

	for _, path := range candidates {
		if IsDataDir(path) {
			log.Debugf("Found valid data directory: %s", path)
			return path
		}
		log.Debugf("Data directory candidate not valid: %s", path)
	}
	return candidates[0]
}

// GetConfigPath returns the path for filename in the first writable config
// location, falling back to the temp dir.
func (pr *PathResolver) GetConfigPath(filename string) string {
	for _, dir := range []string{pr.configDir, filepath.Join(pr.homeDir, ".keyserve"), pr.executableDir} {
		if CheckDirStatus(dir).Writable {
			return filepath.Join(dir, filename)
		}
	}
	tempPath := filepath.Join(os.TempDir(), filename)
	log.Warnf("Using temporary config file: %s", tempPath)
	return tempPath
}

// IsDataDir reports whether path is a directory holding dictionary files.
func IsDataDir(path string) bool {
	if stat, err := os.Stat(path); err != nil || !stat.IsDir() {
		return false
	}
	for _, pattern := range []string{"dict_*.bin", "*.txt"} {
		if matches, err := filepath.Glob(filepath.Join(path, pattern)); err == nil && len(matches) > 0 {
			return true
		}
	}
	return false
}
