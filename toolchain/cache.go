package toolchain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"github.com/gofrs/flock"
)

const objectsDir = "objects"

// Eviction keeps the most recent entries and never touches anything
// younger than the age floor, so objects still referenced by a concurrent
// build are not pulled out from under it.
const (
	cacheKeep   = 5
	cacheMinAge = 7 * 24 * 60 * 60 // seconds
)

// DefaultCacheDir returns the object cache location: $CHARON_CACHE when
// set, else the platform's user cache directory plus "charon".
func DefaultCacheDir() string {
	if env := os.Getenv("CHARON_CACHE"); env != "" {
		return env
	}

	homeDir, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "windows":
		if localAppData := os.Getenv("LocalAppData"); localAppData != "" {
			return filepath.Join(localAppData, "charon")
		}
		return filepath.Join(homeDir, "AppData", "Local", "charon")
	case "darwin":
		return filepath.Join(homeDir, "Library", "Caches", "charon")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
			return filepath.Join(xdg, "charon")
		}
		return filepath.Join(homeDir, ".cache", "charon")
	}
}

// isHashDir reports whether name looks like a cache entry: an 8-char hex
// string, the short form of the content hash.
func isHashDir(name string) bool {
	if len(name) != 8 {
		return false
	}
	_, err := hex.DecodeString(name)
	return err == nil
}

// contentHash hashes everything that determines the object bytes: the
// tool, its flags, the platform, and the IR itself. Returns the short
// hash used as the entry directory name and the full hash stored as the
// completion marker.
func (tc *Toolchain) contentHash(ir string) (shortHash, fullHash string) {
	h := sha256.New()
	h.Write([]byte(tc.LLC))
	for _, flag := range objectFlags() {
		h.Write([]byte(flag))
	}
	h.Write([]byte(runtime.GOOS))
	h.Write([]byte(runtime.GOARCH))
	h.Write([]byte(ir))
	fullHash = hex.EncodeToString(h.Sum(nil))
	return fullHash[:8], fullHash
}

// CachedObject compiles ir to an object file under cacheDir, reusing the
// result of a previous identical build. A file lock serializes concurrent
// processes; the full hash stored next to the object acts as the
// completion marker and collision check.
func (tc *Toolchain) CachedObject(cacheDir, ir string) (string, error) {
	objRoot := filepath.Join(cacheDir, objectsDir)
	if err := os.MkdirAll(objRoot, 0o755); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}

	// Lock the entire operation
	lock := flock.New(filepath.Join(objRoot, ".lock"))
	if err := lock.Lock(); err != nil {
		return "", fmt.Errorf("acquire cache lock: %w", err)
	}
	defer lock.Unlock()

	shortHash, fullHash := tc.contentHash(ir)
	entryDir := filepath.Join(objRoot, shortHash)
	hashFile := filepath.Join(entryDir, ".hash")
	objFile := filepath.Join(entryDir, "module.o")

	if _, err := os.Stat(objFile); err == nil {
		if stored, err := os.ReadFile(hashFile); err == nil && string(stored) == fullHash {
			return objFile, nil
		}
		// Short-hash collision or an interrupted build: rebuild.
		os.RemoveAll(entryDir)
	}

	cleanupStale(objRoot, cacheKeep, cacheMinAge)

	if err := os.MkdirAll(entryDir, 0o755); err != nil {
		return "", fmt.Errorf("create cache entry: %w", err)
	}
	if _, err := tc.BuildObject(entryDir, "module", ir); err != nil {
		return "", err
	}
	// Store the full hash after a successful build; it doubles as the
	// completion marker.
	if err := os.WriteFile(hashFile, []byte(fullHash), 0o644); err != nil {
		return "", fmt.Errorf("write hash file: %w", err)
	}
	return objFile, nil
}

// cleanupStale removes old cache entries. Only entries older than minAge
// seconds are deleted, and the keep most recent survive regardless.
func cleanupStale(objRoot string, keep int, minAge int64) {
	entries, err := os.ReadDir(objRoot)
	if err != nil || len(entries) <= keep {
		return
	}

	type dirInfo struct {
		name  string
		mtime int64
	}
	var dirs []dirInfo
	for _, e := range entries {
		if e.IsDir() && isHashDir(e.Name()) {
			if info, err := e.Info(); err == nil {
				dirs = append(dirs, dirInfo{e.Name(), info.ModTime().Unix()})
			}
		}
	}
	if len(dirs) <= keep {
		return
	}

	cutoff := time.Now().Unix() - minAge
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].mtime < dirs[j].mtime })
	for i := 0; i < len(dirs)-keep; i++ {
		if dirs[i].mtime < cutoff {
			os.RemoveAll(filepath.Join(objRoot, dirs[i].name))
		}
	}
}
