// Package fsutil locates model definition files on disk.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ModelExt is the extension shared by all model definition files.
const ModelExt = ".osmg.hcl"

// Discover resolves the given paths into a sorted, deduplicated list of
// model files. A path may name a model file directly, a directory to search
// recursively, or a glob pattern (doublestar ** syntax). With no paths the
// current directory is searched. The sorted order keeps every downstream
// stage independent of filesystem iteration order.
func Discover(paths ...string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	var files []string
	seen := make(map[string]bool)
	for _, path := range paths {
		resolved, err := resolve(path)
		if err != nil {
			return nil, fmt.Errorf("error discovering model files at %q: %w", path, err)
		}
		for _, f := range resolved {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

func resolve(path string) ([]string, error) {
	if strings.ContainsAny(path, "*?[") {
		matches, err := doublestar.FilepathGlob(path, doublestar.WithFilesOnly())
		if err != nil {
			return nil, err
		}
		var files []string
		for _, m := range matches {
			if strings.HasSuffix(m, ModelExt) {
				files = append(files, m)
			}
		}
		return files, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if !strings.HasSuffix(path, ModelExt) {
			return nil, fmt.Errorf("%s is not a model file (want *%s)", path, ModelExt)
		}
		return []string{path}, nil
	}

	return doublestar.FilepathGlob(
		filepath.Join(path, "**", "*"+ModelExt),
		doublestar.WithFilesOnly(),
	)
}
