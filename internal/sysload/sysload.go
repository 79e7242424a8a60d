// Package sysload reads host load averages and the local network address.
package sysload

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/prometheus/procfs"
)

// LoadAverage holds the 1, 5 and 15 minute load averages.
type LoadAverage struct {
	One     float32
	Five    float32
	Fifteen float32
}

// Kind classifies a process-metrics failure.
type Kind int

const (
	// KindIncomplete means the file was read but did not hold the expected data.
	KindIncomplete Kind = iota + 1
	// KindInternal means procfs itself could not be set up.
	KindInternal
	// KindIO means reading a file failed.
	KindIO
	// KindNotFound means a file did not exist.
	KindNotFound
	// KindOther covers failures that fit none of the above.
	KindOther
)

// Error is returned by Reader for every failure.
type Error struct {
	Kind Kind
	// Path is the offending file, empty when unknown.
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("procfs %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("procfs: %v", e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Reader reads load averages from a procfs mount.
type Reader struct {
	mount string
}

// New returns a Reader for the given procfs mount point.
// An empty mount means procfs.DefaultMountPoint.
func New(mount string) *Reader {
	if mount == "" {
		mount = procfs.DefaultMountPoint
	}
	return &Reader{mount: mount}
}

// LoadAverage reads <mount>/loadavg fresh on every call.
func (r *Reader) LoadAverage() (LoadAverage, error) {
	fsys, err := procfs.NewFS(r.mount)
	if err != nil {
		return LoadAverage{}, &Error{Kind: KindInternal, Err: err}
	}
	avg, err := fsys.LoadAvg()
	if err != nil {
		return LoadAverage{}, classify(filepath.Join(r.mount, "loadavg"), err)
	}
	return LoadAverage{
		One:     float32(avg.Load1),
		Five:    float32(avg.Load5),
		Fifteen: float32(avg.Load15),
	}, nil
}

// classify maps a procfs error onto a Kind, keeping the path when procfs
// reports one.
func classify(path string, err error) *Error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		if errors.Is(err, fs.ErrNotExist) {
			return &Error{Kind: KindNotFound, Path: pathErr.Path, Err: err}
		}
		return &Error{Kind: KindIO, Path: pathErr.Path, Err: err}
	}
	if errors.Is(err, procfs.ErrFileParse) {
		return &Error{Kind: KindIncomplete, Path: path, Err: err}
	}
	return &Error{Kind: KindOther, Err: err}
}
