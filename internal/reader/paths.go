package reader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ParquetExt is the extension used to pick files out of directories.
const ParquetExt = ".parquet"

// ExpandPaths resolves command-line arguments into file paths.
//
// The arguments can be:
//   - a file path, kept as-is
//   - a directory, walked recursively for *.parquet files; hidden files and
//     directories (names starting with ".") are skipped
//   - a glob pattern, where * matches any sequence of non-separator
//     characters, ? any single one and [range] a character range
//
// A glob that matches nothing is reported as ErrPathNotFound. Plain paths are
// not checked here; see CheckPaths.
func ExpandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		if strings.ContainsAny(arg, "*?[") {
			matches, err := filepath.Glob(arg)
			if err != nil {
				return nil, fmt.Errorf("invalid glob pattern %q: %w", arg, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("%w: no files match pattern %s", ErrPathNotFound, arg)
			}
			paths = append(paths, matches...)
			continue
		}

		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		found, err := walkParquetFiles(arg)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	return paths, nil
}

func walkParquetFiles(root string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(d.Name()), ParquetExt) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpen, root, err)
	}
	return found, nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// CheckPaths verifies that every path exists before any of them is read, so
// a typo in the last argument does not leave half of the output behind.
func CheckPaths(paths []string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("%w: %s", ErrPathNotFound, p)
			}
			return fmt.Errorf("%w %s: %w", ErrOpen, p, err)
		}
	}
	return nil
}
