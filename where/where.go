// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/peek-cli/peek/constant"
	"github.com/peek-cli/peek/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath is the environment variable identifier used to override the default configuration directory.
const EnvConfigPath = "PEEK_CONFIG_PATH"

func mkdir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the configuration directory, honouring PEEK_CONFIG_PATH before the platform default.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return mkdir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return mkdir(filepath.Join(base, constant.App))
}

// Cache resolves the persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return mkdir(filepath.Join(base, constant.App))
}

// Catalog resolves the directory holding cached catalog responses.
func Catalog() string {
	return mkdir(filepath.Join(Cache(), "catalog"))
}

// Logs resolves the directory used for diagnostic logs.
func Logs() string {
	return mkdir(filepath.Join(Config(), "logs"))
}

// Queries resolves the file remembering previously used catalog filters.
func Queries() string {
	return filepath.Join(Cache(), "queries.json")
}

// Temp resolves a volatile directory for transient artifacts such as player IPC sockets.
func Temp() string {
	return mkdir(filepath.Join(os.TempDir(), constant.App))
}
