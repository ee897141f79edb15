package cli

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/anchore/srcjar/internal/file"
)

func getSrcjarCommand(tb testing.TB, args ...string) *exec.Cmd {
	tb.Helper()
	argsWithConfig := args
	if !srcjarCommandHasConfigArg(argsWithConfig...) {
		argsWithConfig = append(
			[]string{"-c", "../srcjar-test-config.yaml"},
			args...,
		)
	}

	return exec.Command(
		getSrcjarSnapshotLocation(tb, runtime.GOOS),
		argsWithConfig...,
	)
}

func srcjarCommandHasConfigArg(args ...string) bool {
	for _, arg := range args {
		if arg == "-c" || arg == "--config" {
			return true
		}
	}
	return false
}

func getSrcjarSnapshotLocation(tb testing.TB, goOS string) string {
	// SRCJAR_BINARY_LOCATION is the absolute path to the snapshot binary
	const envKey = "SRCJAR_BINARY_LOCATION"
	if os.Getenv(envKey) != "" {
		return os.Getenv(envKey)
	}
	loc := getSrcjarBinaryLocationByOS(tb, goOS)
	buildBinary(tb, loc)
	_ = os.Setenv(envKey, loc)
	return loc
}

func getSrcjarBinaryLocationByOS(tb testing.TB, goOS string) string {
	switch goOS {
	case "darwin", "linux":
		return filepath.Join(repoRoot(tb), fmt.Sprintf("snapshot/%s-build_%s_%s/srcjar", goOS, goOS, runtime.GOARCH))
	default:
		tb.Fatalf("unsupported OS: %s", runtime.GOOS)
	}
	return ""
}

func buildBinary(tb testing.TB, loc string) {
	tb.Helper()
	tb.Log("Building srcjar...")
	c := exec.Command("go", "build", "-o", loc, "./cmd/srcjar")
	c.Dir = repoRoot(tb)
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	require.NoError(tb, c.Run())
}

func runSrcjar(tb testing.TB, env map[string]string, args ...string) (*exec.Cmd, string, string) {
	tb.Helper()

	cmd := getSrcjarCommand(tb, args...)
	if env == nil {
		env = make(map[string]string)
	}

	// we should not have tests reaching out for app update checks
	env["SRCJAR_CHECK_FOR_APP_UPDATE"] = "false"

	stdout, stderr := runCommand(cmd, env)
	return cmd, stdout, stderr
}

func runCommand(cmd *exec.Cmd, env map[string]string) (string, string) {
	if env != nil {
		cmd.Env = append(os.Environ(), envMapToSlice(env)...)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	// ignore errors since this may be what the test expects
	_ = cmd.Run()

	return stdout.String(), stderr.String()
}

func envMapToSlice(env map[string]string) (envList []string) {
	for key, val := range env {
		if key == "" {
			continue
		}
		envList = append(envList, fmt.Sprintf("%s=%s", key, val))
	}
	return
}

// repoRoot is the first parent of the working directory holding a go.mod.
func repoRoot(tb testing.TB) string {
	tb.Helper()
	dir, err := os.Getwd()
	require.NoError(tb, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			tb.Fatal("unable to find repo root dir")
		}
		dir = parent
	}
}

// copyFixture copies the named project fixture into a temporary directory, so archives are never written into the
// source tree.
func copyFixture(tb testing.TB, name string) string {
	tb.Helper()
	dst := filepath.Join(tb.TempDir(), name)
	require.NoError(tb, file.CopyDir(afero.NewOsFs(), filepath.Join("test-fixtures", name), dst))
	return dst
}
