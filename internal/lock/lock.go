// Package lock keeps two envpanel processes from driving the same display.
//
// A lock is a directory created with mkdir, which either succeeds or fails
// atomically, holding an info.json that names the holder.
package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rileyhilliard/envpanel/internal/errors"
	"github.com/spf13/afero"
)

const infoFileName = "info.json"

// Lock represents an acquired lock.
type Lock struct {
	Dir  string    // The lock directory path
	Info *LockInfo // Info about the lock holder (us)
	fs   afero.Fs
}

// DisplayName returns the lock name for an I2C display bus.
func DisplayName(bus string) string {
	r := strings.NewReplacer("/", "_", `\`, "_", ":", "_")
	return "envpanel-display-" + r.Replace(strings.Trim(bus, "/"))
}

// processAlive is replaced in tests.
var processAlive = func(pid int) bool {
	if pid <= 0 {
		return false
	}
	p, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = p.Signal(syscall.Signal(0))
	return err == nil || err == syscall.EPERM
}

// TryAcquire takes the named lock in dir without waiting. A lock whose
// holder process has exited, or which is older than stale (when stale is
// positive), is removed first. A live lock yields an error wrapping
// ErrLocked.
func TryAcquire(fs afero.Fs, dir, name string, stale time.Duration) (*Lock, error) {
	lockDir := Path(dir, name)
	infoFile := filepath.Join(lockDir, infoFileName)

	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrLock,
			"Failed to create lock directory "+dir,
			"Check permissions on "+dir)
	}

	if isLockStale(fs, infoFile, stale) {
		// Stale lock; the holder crashed or was killed.
		_ = fs.RemoveAll(lockDir)
	}

	if err := fs.Mkdir(lockDir, 0o755); err != nil {
		if os.IsExist(err) {
			return nil, errors.WrapWithCode(ErrLocked, errors.ErrLock,
				"Display is already in use",
				fmt.Sprintf("Held by: %s. Stop that process, or remove %s if it is gone.", readLockHolder(fs, infoFile), lockDir))
		}
		return nil, errors.WrapWithCode(err, errors.ErrLock,
			"Failed to create lock "+lockDir,
			"Check permissions on "+dir)
	}

	info := NewLockInfo("envpanel")
	data, err := info.Marshal()
	if err == nil {
		err = afero.WriteFile(fs, infoFile, data, 0o644)
	}
	if err != nil {
		// Clean up the lock dir if we can't write info
		_ = fs.RemoveAll(lockDir)
		return nil, errors.WrapWithCode(err, errors.ErrLock,
			"Failed to write lock info file",
			"Check disk space and permissions on "+dir)
	}

	return &Lock{Dir: lockDir, Info: info, fs: fs}, nil
}

// Release removes the lock, allowing others to acquire it.
func (l *Lock) Release() error {
	if l == nil || l.fs == nil {
		return nil // Nothing to release
	}
	if err := l.fs.RemoveAll(l.Dir); err != nil {
		return errors.WrapWithCode(err, errors.ErrLock,
			fmt.Sprintf("Failed to remove lock directory: %s", l.Dir),
			"Remove it by hand before starting envpanel again")
	}
	return nil
}

// Path returns the lock directory TryAcquire creates for name in dir.
func Path(dir, name string) string {
	return filepath.Join(dir, name+".lock")
}

// Holder describes who holds the lock at lockDir. It reports false when the
// lock is not held.
func Holder(fs afero.Fs, lockDir string) (string, bool) {
	if ok, _ := afero.DirExists(fs, lockDir); !ok {
		return "", false
	}
	return readLockHolder(fs, filepath.Join(lockDir, infoFileName)), true
}

// isLockStale reports whether an existing lock can be taken over.
func isLockStale(fs afero.Fs, infoFile string, staleThreshold time.Duration) bool {
	data, err := afero.ReadFile(fs, infoFile)
	if err != nil {
		return false // Can't read, assume not stale
	}

	info, err := ParseLockInfo(data)
	if err != nil {
		return false
	}

	if staleThreshold > 0 && info.Age() > staleThreshold {
		return true
	}
	if host, _ := os.Hostname(); info.Hostname == host && !processAlive(info.PID) {
		return true
	}
	return false
}

// readLockHolder reads the lock info file and returns a description of the holder.
func readLockHolder(fs afero.Fs, infoFile string) string {
	data, err := afero.ReadFile(fs, infoFile)
	if err != nil {
		return "unknown"
	}

	info, err := ParseLockInfo(data)
	if err != nil {
		// Fall back to raw content
		return strings.TrimSpace(string(data))
	}

	return info.String()
}
