package archiver

import (
	"os"
	"path"
	"strings"
	"time"
)

// Entry is a single item of an archive.
type Entry struct {
	// Name is the slash separated path within the archive; directories end with "/".
	Name string
	// Source is the file backing the entry (empty for directories that only exist within the archive).
	Source  string
	Mode    os.FileMode
	ModTime time.Time
	// content is used for generated entries (manifest, maven descriptor).
	content []byte
}

func (e Entry) IsDir() bool {
	return strings.HasSuffix(e.Name, "/")
}

// parentDirs lists the directory entry names leading to the given entry name, outermost first.
func parentDirs(name string) []string {
	var dirs []string
	dir := path.Dir(strings.TrimSuffix(name, "/"))
	for dir != "." && dir != "/" && dir != "" {
		dirs = append([]string{dir + "/"}, dirs...)
		dir = path.Dir(dir)
	}
	return dirs
}
