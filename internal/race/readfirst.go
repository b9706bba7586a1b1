// pattern: Imperative Shell

package race

import (
	"context"

	"fsprobe/internal/fsys"
)

// FileRead is the outcome of reading the first available candidate path.
type FileRead struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// ReadFirst reads whichever candidate path becomes readable first. An
// *AllFailedError means none of the candidates were readable; its failures
// line up with paths by index.
func ReadFirst(ctx context.Context, fs fsys.FS, paths []string) (FileRead, error) {
	attempts := make([]Attempt[FileRead], len(paths))
	for i, path := range paths {
		path := path
		attempts[i] = func(ctx context.Context) (FileRead, error) {
			content, err := fs.ReadFile(ctx, path)
			if err != nil {
				return FileRead{}, err
			}
			return FileRead{Path: path, Content: content}, nil
		}
	}
	return First(ctx, attempts)
}
