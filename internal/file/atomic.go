package file

import (
	"fmt"
	"io"
	"os"

	"github.com/google/renameio/v2"
	"github.com/spf13/afero"
)

// PendingFile is a writer whose content only becomes visible at its destination on Commit.
type PendingFile interface {
	io.Writer
	// Commit makes the written content visible at the destination path.
	Commit() error
	// Discard abandons the write, leaving any existing destination untouched.
	Discard() error
}

// NewPendingFile returns a PendingFile for the given destination. On the OS filesystem the destination is replaced
// atomically (write to a temporary file in the same directory followed by a rename); other filesystems are written
// in place.
func NewPendingFile(fs afero.Fs, path string, perm os.FileMode) (PendingFile, error) {
	if _, ok := fs.(*afero.OsFs); ok {
		t, err := renameio.NewPendingFile(path, renameio.WithPermissions(perm), renameio.WithExistingPermissions())
		if err != nil {
			return nil, fmt.Errorf("unable to create pending file for %q: %w", path, err)
		}
		return &osPendingFile{PendingFile: t}, nil
	}

	f, err := fs.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return nil, fmt.Errorf("unable to create file %q: %w", path, err)
	}
	return &aferoPendingFile{fs: fs, file: f, path: path}, nil
}

type osPendingFile struct {
	*renameio.PendingFile
}

func (p *osPendingFile) Commit() error {
	return p.CloseAtomicallyReplace()
}

func (p *osPendingFile) Discard() error {
	return p.Cleanup()
}

type aferoPendingFile struct {
	fs   afero.Fs
	file afero.File
	path string
}

func (p *aferoPendingFile) Write(b []byte) (int, error) {
	return p.file.Write(b)
}

func (p *aferoPendingFile) Commit() error {
	return p.file.Close()
}

func (p *aferoPendingFile) Discard() error {
	_ = p.file.Close()
	return p.fs.Remove(p.path)
}
