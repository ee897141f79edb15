package archiver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/anchore/srcjar/internal/log"
)

// FileSet selects files below a directory with include and exclude patterns. Selected files are added to the
// archive below Prefix.
type FileSet struct {
	Directory string
	Prefix    string
	Includes  []string
	Excludes  []string
}

// NormalizedPrefix returns the prefix with slash separators, no leading slash, and a trailing slash when not empty.
func (s FileSet) NormalizedPrefix() string {
	p := strings.ReplaceAll(strings.TrimSpace(s.Prefix), "\\", "/")
	p = strings.TrimLeft(p, "/")
	if p != "" && !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}

// maxLinkDepth bounds how many symlinked directories are followed below each other.
const maxLinkDepth = 8

// entries walks the directory (lexically, directories before their children) and returns the selected entries. Every
// path is judged independently; the directories leading to a selected file are always part of the result. Symlinks
// are followed: a linked file is added with the target's contents and a linked directory is walked in place.
func (s FileSet) entries(fs afero.Fs) ([]Entry, error) {
	m, err := newMatcher(s.Includes, s.Excludes)
	if err != nil {
		return nil, err
	}

	w := fileSetWalker{
		fs:      fs,
		matcher: m,
		prefix:  s.NormalizedPrefix(),
		added:   make(map[string]struct{}),
	}
	if err := w.walk(s.Directory, "", 0); err != nil {
		return nil, fmt.Errorf("unable to walk %s: %w", s.Directory, err)
	}
	return w.result, nil
}

type fileSetWalker struct {
	fs      afero.Fs
	matcher *matcher
	prefix  string
	added   map[string]struct{}
	result  []Entry
}

func (w *fileSetWalker) add(e Entry) {
	if _, ok := w.added[e.Name]; ok {
		return
	}
	w.added[e.Name] = struct{}{}
	w.result = append(w.result, e)
}

func (w *fileSetWalker) addSelected(name, source string, info os.FileInfo) {
	for _, d := range parentDirs(name) {
		w.add(Entry{Name: d, Mode: os.ModeDir | 0755, ModTime: info.ModTime()})
	}
	w.add(Entry{Name: name, Source: source, Mode: info.Mode(), ModTime: info.ModTime()})
}

// walk visits root, whose contents are named below base within the file set.
func (w *fileSetWalker) walk(root, base string, depth int) error {
	return afero.Walk(w.fs, root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if base != "" {
			rel = base + "/" + rel
		}

		if info.Mode()&os.ModeSymlink != 0 {
			return w.followLink(p, rel, depth)
		}
		if !w.matcher.selects(rel) {
			return nil
		}
		switch {
		case info.IsDir():
			w.addSelected(w.prefix+rel+"/", p, info)
		case info.Mode().IsRegular():
			w.addSelected(w.prefix+rel, p, info)
		}
		return nil
	})
}

func (w *fileSetWalker) followLink(p, rel string, depth int) error {
	target, err := w.fs.Stat(p)
	if err != nil {
		log.Warnf("ignoring broken symlink %s: %+v", p, err)
		return nil
	}
	switch {
	case target.IsDir():
		if depth >= maxLinkDepth {
			log.Warnf("not following symlinked directory %s: too many nested links", p)
			return nil
		}
		if w.matcher.selects(rel) {
			w.addSelected(w.prefix+rel+"/", p, target)
		}
		// a trailing separator makes the walk resolve the link instead of reporting it
		return w.walk(p+string(filepath.Separator), rel, depth+1)
	case target.Mode().IsRegular():
		if w.matcher.selects(rel) {
			w.addSelected(w.prefix+rel, p, target)
		}
	}
	return nil
}
