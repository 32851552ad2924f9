// Package config resolves where the journal lives and loads the optional
// YAML configuration file into kong.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/worthy/internal/constants"
)

// YAML is a kong.ConfigurationLoader for YAML files. Keys are flag names
// with dashes written as underscores; nested maps address dotted names.
func YAML(r io.Reader) (kong.Resolver, error) {
	var values map[string]any
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if values == nil {
		values = map[string]any{}
	}

	data, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("failed to convert YAML config: %w", err)
	}
	return kong.JSON(bytes.NewReader(data))
}

// DefaultDataPath returns the platform location of the journal database.
func DefaultDataPath() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" && runtime.GOOS != "windows" && runtime.GOOS != "darwin" {
		return filepath.Join(dir, constants.AppName, constants.AppName+".db")
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return constants.AppName + ".db"
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(homeDir, "AppData", "Roaming", constants.AppName, constants.AppName+".db")
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", constants.AppName, constants.AppName+".db")
	default:
		return filepath.Join(homeDir, ".local", "share", constants.AppName, constants.AppName+".db")
	}
}

// ExpandPath replaces a leading ~ with the home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory to expand path '%s': %w", path, err)
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~")), nil
}

// ResolveDataPath turns the --data value into an absolute path and makes
// sure its directory exists. An empty value selects DefaultDataPath.
func ResolveDataPath(provided string) (string, error) {
	target := provided
	if target == "" {
		target = DefaultDataPath()
	}

	target, err := ExpandPath(target)
	if err != nil {
		return "", err
	}

	absPath, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path for '%s': %w", target, err)
	}

	dir := filepath.Dir(absPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create directory '%s' for journal: %w", dir, err)
	}
	return absPath, nil
}

// ConfigPaths lists the configuration files kong should try, in order.
// Missing files are skipped by kong.
func ConfigPaths() []string {
	paths := []string{constants.DefaultConfigFile}
	if env := os.Getenv("WORTHY_CONFIG"); env != "" {
		paths = append([]string{env}, paths...)
	}
	return paths
}
