// pattern: Imperative Shell

// Package collect gathers the textual contents of a directory tree into a
// single flat mapping, fanning out over directory entries concurrently.
package collect

import (
	"context"
	"maps"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"fsprobe/internal/fsys"
)

// Tree maps absolute, normalized file paths to their textual contents.
// Keys are unique by construction: each one is contributed by exactly one
// leaf visit, and the filesystem tree guarantees distinct paths per node.
type Tree map[string]string

// Collector walks a tree over an FS, keeping files whose name passes the
// extension filter.
type Collector struct {
	fs  fsys.FS
	ext string
}

// New creates a Collector. ext is a case-sensitive name suffix; empty
// matches every file.
func New(fs fsys.FS, ext string) *Collector {
	return &Collector{fs: fs, ext: ext}
}

// Collect returns the contents of every matching file under path. A single
// failure anywhere in the subtree aborts the whole collection: the first
// error wins and no partial result is returned. Sibling reads already in
// flight run to completion; their results are discarded.
func (c *Collector) Collect(ctx context.Context, path string) (Tree, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return c.collect(ctx, abs)
}

func (c *Collector) collect(ctx context.Context, path string) (Tree, error) {
	info, err := c.fs.Stat(ctx, path)
	if err != nil {
		return nil, err
	}

	switch info.Kind {
	case fsys.KindFile:
		if !c.matches(path) {
			return Tree{}, nil
		}
		content, err := c.fs.ReadFile(ctx, path)
		if err != nil {
			return nil, err
		}
		return Tree{path: content}, nil

	case fsys.KindDir:
		entries, err := c.fs.ReadDir(ctx, path)
		if err != nil {
			return nil, err
		}
		// Fan out one goroutine per entry; each child owns its own result
		// slot, so no accumulator is shared across branches. The group
		// context cancels the remaining children on the first error.
		children := make([]Tree, len(entries))
		g, gctx := errgroup.WithContext(ctx)
		for i, entry := range entries {
			i, entry := i, entry
			g.Go(func() error {
				sub, err := c.collect(gctx, filepath.Join(path, entry.Name))
				if err != nil {
					return err
				}
				children[i] = sub
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		merged := make(Tree)
		for _, sub := range children {
			maps.Copy(merged, sub)
		}
		return merged, nil

	default:
		// Devices, sockets, dangling symlinks: nothing to collect, not an
		// error.
		return Tree{}, nil
	}
}

func (c *Collector) matches(path string) bool {
	return c.ext == "" || strings.HasSuffix(path, c.ext)
}
