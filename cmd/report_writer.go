package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"

	"github.com/anchore/srcjar/internal/file"
)

func reportWriter() (io.Writer, func() error, error) {
	nop := func() error { return nil }

	path := strings.TrimSpace(appConfig.File)
	if path == "" {
		return os.Stdout, nop, nil
	}

	path, err := homedir.Expand(path)
	if err != nil {
		return nil, nop, fmt.Errorf("unable to expand report file path: %w", err)
	}

	reportFile, err := file.NewPendingFile(afero.NewOsFs(), path, 0644)
	if err != nil {
		return nil, nop, fmt.Errorf("unable to create report file: %w", err)
	}
	return reportFile, func() error {
		if err := reportFile.Commit(); err != nil {
			return err
		}
		if !appConfig.Quiet {
			fmt.Fprintf(os.Stderr, "Report written to %q\n", path)
		}
		return nil
	}, nil
}
