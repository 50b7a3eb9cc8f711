package paths

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// ConfigDirName is the per-repository configuration directory
	ConfigDirName = ".nmprep"
	// ConfigFileName is the viper config file inside ConfigDirName
	ConfigFileName = "config.toml"
	// OverridesFileName is the default prefix override table inside ConfigDirName
	OverridesFileName = "overrides.toml"
)

// GetConfigDir returns <repoRoot>/.nmprep
func GetConfigDir(repoRoot string) string {
	return filepath.Join(repoRoot, ConfigDirName)
}

// GetConfigPath returns <repoRoot>/.nmprep/config.toml
func GetConfigPath(repoRoot string) string {
	return filepath.Join(GetConfigDir(repoRoot), ConfigFileName)
}

// DefaultOverridesPath is the repo-relative location of the override table.
func DefaultOverridesPath() string {
	return ConfigDirName + "/" + OverridesFileName
}

// ResolveRepoPath returns p unchanged when absolute, otherwise joined to repoRoot.
func ResolveRepoPath(repoRoot, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return JoinRepoPath(repoRoot, p)
}

// OutputPath returns the processed header location: the input's base name inside outDir.
func OutputPath(outDir, input string) string {
	return filepath.Join(outDir, filepath.Base(input))
}

// EnsureDir creates dir and its parents if they don't exist.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// CanonicalizePath converts an absolute path to a repo-relative canonical path
// - Resolves symlinks to real paths
// - Makes path relative to repo root
// - Converts backslashes to forward slashes
func CanonicalizePath(absolutePath string, repoRoot string) (string, error) {
	resolved, err := filepath.EvalSymlinks(absolutePath)
	if err != nil {
		// If the file doesn't exist yet, use the path as-is
		if os.IsNotExist(err) {
			resolved = absolutePath
		} else {
			return "", err
		}
	}

	repoRootResolved, err := filepath.EvalSymlinks(repoRoot)
	if err != nil {
		if os.IsNotExist(err) {
			repoRootResolved = repoRoot
		} else {
			return "", err
		}
	}

	relativePath, err := filepath.Rel(repoRootResolved, resolved)
	if err != nil {
		return "", err
	}

	return filepath.ToSlash(relativePath), nil
}

// JoinRepoPath joins a repo root with a canonical path
func JoinRepoPath(repoRoot string, canonicalPath string) string {
	normalizedPath := strings.ReplaceAll(canonicalPath, "\\", "/")
	parts := strings.Split(normalizedPath, "/")
	return filepath.Join(append([]string{repoRoot}, parts...)...)
}
