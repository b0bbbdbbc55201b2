package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
)

// Discover returns the absolute paths of all files under dir in
// lexicographic order. With topOnly subdirectories are not entered.
func Discover(ctx context.Context, dir string, topOnly bool) ([]string, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	// WalkDir не заходит в корень-симлинк, поэтому обходим настоящий
	// каталог, а пути возвращаем под исходным root
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, err
	}
	var files []string
	err = filepath.WalkDir(resolved, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if topOnly && path != resolved {
				return filepath.SkipDir
			}
			return nil
		}
		// символические ссылки на файлы тоже считаются файлами
		if !d.Type().IsRegular() && d.Type()&fs.ModeSymlink == 0 {
			return nil
		}
		rel, err := filepath.Rel(resolved, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.Join(root, rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
