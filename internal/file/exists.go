package file

import (
	"os"

	"github.com/spf13/afero"
)

// Exists indicates if the given path is an existing regular file (not a directory).
func Exists(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	if os.IsNotExist(err) || err != nil {
		return false
	}
	return !info.IsDir()
}

// IsDir indicates if the given path is an existing directory.
func IsDir(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
