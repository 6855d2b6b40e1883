package pipeline

import (
	"os"
	"sort"

	"github.com/spf13/afero"
)

// DiscoverFiles walks root recursively and returns every regular file,
// sorted lexicographically for deterministic processing order. Symlinks,
// directories and other non-file entries are left alone. Used by cleanup
// mode, which considers every file a candidate regardless of extension.
func DiscoverFiles(fs afero.Fs, root string) ([]string, error) {
	var files []string
	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
