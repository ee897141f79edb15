package cli

import (
	"archive/zip"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/acarl005/stripansi"
	"github.com/scylladb/go-set/strset"
)

type traitAssertion func(tb testing.TB, stdout, stderr string, rc int)

func assertNoStderr(tb testing.TB, _, stderr string, _ int) {
	tb.Helper()
	if len(stderr) > 0 {
		tb.Errorf("expected stderr to be empty, but wasn't: %s", stderr)
	}
}

func assertInOutput(data string) traitAssertion {
	return func(tb testing.TB, stdout, stderr string, _ int) {
		tb.Helper()

		if !strings.Contains(stripansi.Strip(stderr), data) && !strings.Contains(stripansi.Strip(stdout), data) {
			tb.Errorf("data=%q was NOT found in any output, but should have been there", data)
		}
	}
}

func assertNotInOutput(notWanted string) traitAssertion {
	return func(tb testing.TB, stdout, _ string, _ int) {
		tb.Helper()
		if strings.Contains(stdout, notWanted) {
			tb.Errorf("got unwanted %s in stdout %s", notWanted, stdout)
		}
	}
}

func assertFailingReturnCode(tb testing.TB, _, _ string, rc int) {
	tb.Helper()
	if rc == 0 {
		tb.Errorf("expected a failure but got rc=%d", rc)
	}
}

func assertSucceedingReturnCode(tb testing.TB, _, _ string, rc int) {
	tb.Helper()
	if rc != 0 {
		tb.Errorf("expected to succeed but got rc=%d", rc)
	}
}

func assertRowInStdOut(row []string) traitAssertion {
	return func(tb testing.TB, stdout, _ string, _ int) {
		tb.Helper()

		for _, line := range strings.Split(stdout, "\n") {
			lineMatched := false
			for _, column := range row {
				if !strings.Contains(line, column) {
					// it wasn't this line
					lineMatched = false
					break
				}
				lineMatched = true
			}
			if lineMatched {
				return
			}
		}
		// none of the lines matched
		tb.Errorf("expected stdout to contain %s, but it did not", strings.Join(row, " "))
	}
}

func assertJSONReport(archives int) traitAssertion {
	return func(tb testing.TB, stdout, _ string, _ int) {
		tb.Helper()
		var doc struct {
			Archives []struct {
				Project string `json:"project"`
				Path    string `json:"path"`
			} `json:"archives"`
		}

		if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
			tb.Errorf("expected to find a JSON report, but was unmarshalable: %+v", err)
			return
		}
		if len(doc.Archives) != archives {
			tb.Errorf("expected %d archives in the report, got %d: %s", archives, len(doc.Archives), stdout)
		}
	}
}

func assertTableReport(tb testing.TB, stdout, _ string, _ int) {
	tb.Helper()
	if !strings.Contains(stdout, "PROJECT") || !strings.Contains(stdout, "STATUS") {
		tb.Errorf("expected to find a table report, but did not")
	}
}

// assertJarEntries checks the jar at the given path (relative to root) holds at least the given entries.
func assertJarEntries(root, path string, entries ...string) traitAssertion {
	return func(tb testing.TB, _, _ string, _ int) {
		tb.Helper()
		r, err := zip.OpenReader(filepath.Join(root, path))
		if err != nil {
			tb.Errorf("unable to open jar %q: %+v", path, err)
			return
		}
		defer r.Close()

		names := strset.New()
		for _, f := range r.File {
			names.Add(f.Name)
		}
		for _, e := range entries {
			if !names.Has(e) {
				tb.Errorf("expected jar %q to contain %q, got %v", path, e, names.List())
			}
		}
	}
}

func assertNoFile(root, path string) traitAssertion {
	return func(tb testing.TB, _, _ string, _ int) {
		tb.Helper()
		if _, err := os.Stat(filepath.Join(root, path)); err == nil {
			tb.Errorf("expected %q to not exist", path)
		}
	}
}
