// pattern: Imperative Shell

// Package repo locates the enclosing git repository of a directory and
// reads out its current branch and resolved head reference.
package repo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"fsprobe/internal/fsys"
)

const (
	// markerDir signals a repository root when present in a candidate
	// directory.
	markerDir = ".git"

	// maxAscent bounds the number of parent directories probed before
	// giving up.
	maxAscent = 10

	headPrefix = "ref: refs/heads/"
)

// Metadata describes a detected repository. Produced once per successful
// detection and never mutated afterwards.
type Metadata struct {
	Root   string `json:"root"`   // repository root (directory containing the marker)
	Branch string `json:"branch"` // currently checked-out branch name
	Head   string `json:"head"`   // raw content of the branch's ref record
}

// ErrMalformedHead indicates the HEAD record did not have the expected
// "ref: refs/heads/<branch>\n" shape. A detached HEAD trips this too.
var ErrMalformedHead = errors.New("malformed HEAD record")

// Detect walks up from startDir looking for the enclosing repository and
// returns its metadata. Fails with fsys.ErrNotFound when no marker is
// found within maxAscent levels or before reaching the filesystem root.
func Detect(ctx context.Context, fs fsys.FS, startDir string) (Metadata, error) {
	start, err := filepath.Abs(startDir)
	if err != nil {
		return Metadata{}, err
	}
	root, err := findRoot(ctx, fs, start)
	if err != nil {
		return Metadata{}, err
	}
	return readMetadata(ctx, fs, root)
}

// findRoot probes parents of start for the marker directory, strictly
// sequentially: success at a shallower ancestor must short-circuit deeper
// probes, so the walk is never parallelized.
func findRoot(ctx context.Context, fs fsys.FS, start string) (string, error) {
	dir := filepath.Dir(start)
	for depth := 0; ; depth++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		// Terminal checks come before the probe: the filesystem root is
		// never probed, and at most maxAscent candidates are.
		if depth >= maxAscent || dir == filepath.Dir(dir) {
			return "", fmt.Errorf("no %s above %s: %w", markerDir, start, fsys.ErrNotFound)
		}
		if _, err := fs.Stat(ctx, filepath.Join(dir, markerDir)); err == nil {
			return dir, nil
		}
		// Any stat failure, not only absence, means keep ascending.
		dir = filepath.Dir(dir)
	}
}

// readMetadata reads the HEAD pointer record and the ref record it names.
// The two reads are sequential: the second path depends on the first's
// content. Read failures propagate as-is, no retry.
func readMetadata(ctx context.Context, fs fsys.FS, root string) (Metadata, error) {
	raw, err := fs.ReadFile(ctx, filepath.Join(root, markerDir, "HEAD"))
	if err != nil {
		return Metadata{}, err
	}
	branch, err := parseHead(raw)
	if err != nil {
		return Metadata{}, err
	}
	head, err := fs.ReadFile(ctx, filepath.Join(root, markerDir, "refs", "heads", branch))
	if err != nil {
		return Metadata{}, err
	}
	// Head keeps the ref record content verbatim, trailing newline included.
	return Metadata{Root: root, Branch: branch, Head: head}, nil
}

// parseHead extracts the branch name from a HEAD record of the form
// "ref: refs/heads/<branch>\n". Anything else fails with ErrMalformedHead
// rather than yielding a silently wrong branch.
func parseHead(raw string) (string, error) {
	rest, ok := strings.CutPrefix(raw, headPrefix)
	if !ok {
		return "", fmt.Errorf("%w: missing %q prefix", ErrMalformedHead, headPrefix)
	}
	branch, ok := strings.CutSuffix(rest, "\n")
	if !ok || branch == "" {
		return "", fmt.Errorf("%w: no branch name before trailing newline", ErrMalformedHead)
	}
	return branch, nil
}
