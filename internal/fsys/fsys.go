// pattern: Imperative Shell

// Package fsys is the minimal filesystem abstraction the exploration
// helpers are built over. Every operation takes a context and fails with
// a classifiable error: ErrNotFound for absent targets, ErrPermission for
// access failures, and a plain wrap of the underlying error for anything
// else.
package fsys

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Kind classifies a filesystem object for traversal decisions.
type Kind int

const (
	KindFile  Kind = iota // regular file
	KindDir               // directory
	KindOther             // anything else: device, socket, dangling symlink
)

// FileInfo describes a single filesystem object.
type FileInfo struct {
	Name string
	Size int64
	Kind Kind
}

// DirEntry is one immediate child of a directory.
type DirEntry struct {
	Name  string
	IsDir bool
}

var (
	// ErrNotFound indicates the stat/read target does not exist.
	ErrNotFound = errors.New("not found")

	// ErrPermission indicates the target exists but access was denied.
	ErrPermission = errors.New("permission denied")
)

// IsNotFound reports whether err classifies as a missing target.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// FS is the set of filesystem primitives the exploration helpers consume.
// Implementations must honor context cancellation between operations but
// are not required to interrupt an operation already issued.
type FS interface {
	Stat(ctx context.Context, path string) (FileInfo, error)
	ReadFile(ctx context.Context, path string) (string, error)
	ReadDir(ctx context.Context, path string) ([]DirEntry, error)
	MkdirAll(ctx context.Context, path string) error
}

// OS returns an FS backed by the local filesystem.
func OS() FS {
	return osFS{}
}

type osFS struct{}

// Stat does not follow symlinks: a symlink classifies as KindOther, so a
// link to nowhere is a skippable object rather than a missing one.
func (osFS) Stat(ctx context.Context, path string) (FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return FileInfo{}, err
	}
	info, err := os.Lstat(path)
	if err != nil {
		return FileInfo{}, classify("stat", path, err)
	}
	return FileInfo{
		Name: info.Name(),
		Size: info.Size(),
		Kind: kindOf(info.Mode()),
	}, nil
}

func (osFS) ReadFile(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", classify("read", path, err)
	}
	return string(data), nil
}

func (osFS) ReadDir(ctx context.Context, path string) ([]DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dirents, err := os.ReadDir(path)
	if err != nil {
		return nil, classify("readdir", path, err)
	}
	entries := make([]DirEntry, len(dirents))
	for i, d := range dirents {
		entries[i] = DirEntry{Name: d.Name(), IsDir: d.IsDir()}
	}
	return entries, nil
}

func (osFS) MkdirAll(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return classify("mkdir", path, err)
	}
	return nil
}

func kindOf(mode fs.FileMode) Kind {
	switch {
	case mode.IsDir():
		return KindDir
	case mode.IsRegular():
		return KindFile
	default:
		return KindOther
	}
}

// classify maps an os error onto the package taxonomy, keeping the
// original error in the chain.
func classify(op, path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%s %s: %w", op, path, ErrNotFound)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%s %s: %w", op, path, ErrPermission)
	default:
		return fmt.Errorf("%s %s: %w", op, path, err)
	}
}
