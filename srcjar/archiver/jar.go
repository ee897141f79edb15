package archiver

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/scylladb/go-set/strset"
	"github.com/spf13/afero"
)

type source struct {
	file    string
	name    string
	fileSet *FileSet
}

// JarArchiver collects the content of a jar. File sets are resolved lazily: Entries walks the file system every time
// content was added since the last resolution.
type JarArchiver struct {
	fs      afero.Fs
	sources []source
	entries []Entry
	dirty   bool
}

func NewJarArchiver(fs afero.Fs) *JarArchiver {
	return &JarArchiver{fs: fs}
}

// AddFile adds a single file under the given archive name.
func (a *JarArchiver) AddFile(path, name string) error {
	info, err := a.fs.Stat(path)
	if err != nil {
		return fmt.Errorf("unable to add file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("unable to add file %s: is a directory", path)
	}
	a.sources = append(a.sources, source{file: path, name: filepath.ToSlash(name)})
	a.dirty = true
	return nil
}

// AddFileSet adds the files of the given set; the set directory must exist.
func (a *JarArchiver) AddFileSet(set FileSet) error {
	info, err := a.fs.Stat(set.Directory)
	if err != nil {
		return fmt.Errorf("unable to add directory %s: %w", set.Directory, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("unable to add directory %s: not a directory", set.Directory)
	}
	s := set
	a.sources = append(a.sources, source{fileSet: &s})
	a.dirty = true
	return nil
}

// Entries resolves all added content in addition order. When two entries share a name the first one wins.
func (a *JarArchiver) Entries() ([]Entry, error) {
	if !a.dirty {
		return a.entries, nil
	}

	seen := strset.New()
	var entries []Entry
	add := func(e Entry) {
		if seen.Has(e.Name) {
			return
		}
		seen.Add(e.Name)
		entries = append(entries, e)
	}

	for _, s := range a.sources {
		if s.fileSet != nil {
			resolved, err := s.fileSet.entries(a.fs)
			if err != nil {
				return nil, err
			}
			for _, e := range resolved {
				add(e)
			}
			continue
		}

		info, err := a.fs.Stat(s.file)
		if err != nil {
			return nil, fmt.Errorf("unable to stat %s: %w", s.file, err)
		}
		for _, d := range parentDirs(s.name) {
			add(Entry{Name: d, Mode: os.ModeDir | 0755, ModTime: info.ModTime()})
		}
		add(Entry{Name: s.name, Source: s.file, Mode: info.Mode(), ModTime: info.ModTime()})
	}

	a.entries = entries
	a.dirty = false
	return entries, nil
}

// HasEntries reports whether any file or directory was selected.
func (a *JarArchiver) HasEntries() (bool, error) {
	entries, err := a.Entries()
	if err != nil {
		return false, err
	}
	return len(entries) > 0, nil
}
