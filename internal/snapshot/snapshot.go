// pattern: Imperative Shell

// Package snapshot persists collected trees as JSON documents under a data
// directory. Writes are serialized across processes with a file lock so
// concurrent tool invocations cannot interleave.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"fsprobe/internal/collect"
	"fsprobe/internal/fsys"
)

const lockFileName = "fsprobe.lock"

// Write stores tree as <dir>/<name>.json and returns the written path.
// Fails if another process currently holds the snapshot lock for dir.
func Write(ctx context.Context, fs fsys.FS, dir, name string, tree collect.Tree) (string, error) {
	if err := fs.MkdirAll(ctx, dir); err != nil {
		return "", err
	}

	fl := flock.New(filepath.Join(dir, lockFileName))
	locked, err := fl.TryLock()
	if err != nil {
		return "", fmt.Errorf("failed to acquire snapshot lock: %w", err)
	}
	if !locked {
		return "", fmt.Errorf("another fsprobe process is writing snapshots in %s", dir)
	}
	defer func() { _ = fl.Unlock() }()

	data, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, name+".json")
	if err := os.WriteFile(path, append(data, '\n'), 0600); err != nil {
		return "", err
	}
	return path, nil
}

// Read loads a snapshot previously written with Write.
func Read(path string) (collect.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tree collect.Tree
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}
	return tree, nil
}
