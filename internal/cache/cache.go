// Package cache keeps fetched catalog responses on disk so repeated launches skip the network.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/peek-cli/peek/filesystem"
	"github.com/peek-cli/peek/where"
	"github.com/spf13/afero"
)

// MaxAge bounds how long any entry survives garbage collection, whatever TTL readers use.
const MaxAge = 7 * 24 * time.Hour

// GenerateKey derives a deterministic file name from a source and a namespace.
func GenerateKey(source, namespace string) string {
	sanitized := strings.ToLower(strings.TrimSpace(source)) + namespace
	hash := sha256.Sum256([]byte(sanitized))
	return hex.EncodeToString(hash[:])
}

// Read decodes the entry stored under key into target if it is younger than ttl.
func Read(key string, ttl time.Duration, target any) bool {
	path := filepath.Join(where.Catalog(), key)

	info, err := filesystem.API().Stat(path)
	if err != nil || time.Since(info.ModTime()) > ttl {
		return false
	}

	f, err := filesystem.API().Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	return json.NewDecoder(f).Decode(target) == nil
}

// Write stores data under key, swapping a temporary file into place.
func Write(key string, data any) error {
	path := filepath.Join(where.Catalog(), key)
	tmpPath := path + ".tmp"

	f, err := filesystem.API().OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	if err := json.NewEncoder(f).Encode(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return filesystem.API().Rename(tmpPath, path)
}

// CollectGarbage removes entries older than MaxAge.
func CollectGarbage() {
	_ = afero.Walk(filesystem.API(), where.Catalog(), func(path string, info fs.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if time.Since(info.ModTime()) > MaxAge {
			_ = filesystem.API().Remove(path)
		}
		return nil
	})
}
