package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// BatchManifest is the file name `csmerge batch` looks for when no
// manifest path is given.
const BatchManifest = "csmerge.batch.toml"

// FindUp walks up from startDir to locate name.
func FindUp(startDir, name string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// FindBatchManifest locates csmerge.batch.toml from startDir upwards.
func FindBatchManifest(startDir string) (string, bool, error) {
	return FindUp(startDir, BatchManifest)
}
