package cli

import (
	"testing"
)

func TestPackagingCmd(t *testing.T) {
	const fixture = "multi-module"

	tests := []struct {
		name       string
		args       func(dir string) []string
		assertions func(dir string) []traitAssertion
	}{
		{
			name: "declared executions default to the jar goal",
			args: func(dir string) []string { return []string{dir} },
			assertions: func(dir string) []traitAssertion {
				return []traitAssertion{
					assertSucceedingReturnCode,
					assertTableReport,
					assertRowInStdOut([]string{"org.example:core:1.0.0", "jar", "sources", "created", "yes"}),
					assertRowInStdOut([]string{"org.example:app:1.0.0", "jar", "sources", "created"}),
					assertRowInStdOut([]string{"org.example:cli-parent:1.0.0", "skipped (aggregator packaging)"}),
					assertJarEntries(dir, "core/target/core-1.0.0-sources.jar",
						"META-INF/MANIFEST.MF",
						"org/example/core/Greeter.java",
						"greeter.properties",
						"META-INF/maven/org.example/core/pom.xml",
						"META-INF/maven/org.example/core/pom.properties",
					),
					assertJarEntries(dir, "app/target/app-1.0.0-sources.jar", "org/example/app/Main.java"),
				}
			},
		},
		{
			name: "json report",
			args: func(dir string) []string { return []string{"jar", dir, "-o", "json"} },
			assertions: func(dir string) []traitAssertion {
				return []traitAssertion{
					assertSucceedingReturnCode,
					assertJSONReport(2),
				}
			},
		},
		{
			name: "test jar skips projects without test sources",
			args: func(dir string) []string { return []string{"test-jar", dir} },
			assertions: func(dir string) []traitAssertion {
				return []traitAssertion{
					assertSucceedingReturnCode,
					assertRowInStdOut([]string{"org.example:core:1.0.0", "test-jar", "test-sources", "created"}),
					assertRowInStdOut([]string{"org.example:app:1.0.0", "skipped (no sources)"}),
					assertJarEntries(dir, "core/target/core-1.0.0-test-sources.jar", "org/example/core/GreeterTest.java"),
					assertNoFile(dir, "app/target/app-1.0.0-test-sources.jar"),
				}
			},
		},
		{
			name: "aggregate bundles every module into the top level project",
			args: func(dir string) []string { return []string{"aggregate", dir} },
			assertions: func(dir string) []traitAssertion {
				return []traitAssertion{
					assertSucceedingReturnCode,
					assertJarEntries(dir, "target/cli-parent-1.0.0-sources.jar",
						"org/example/core/Greeter.java",
						"org/example/app/Main.java",
					),
				}
			},
		},
		{
			name: "project selection",
			args: func(dir string) []string { return []string{"jar", dir, "--projects", "core"} },
			assertions: func(dir string) []traitAssertion {
				return []traitAssertion{
					assertSucceedingReturnCode,
					assertRowInStdOut([]string{"org.example:core:1.0.0", "created"}),
					assertNotInOutput("org.example:app:1.0.0"),
					assertNoFile(dir, "app/target/app-1.0.0-sources.jar"),
				}
			},
		},
		{
			name: "custom classifier",
			args: func(dir string) []string { return []string{"jar", dir, "--classifier", "src", "--projects", "app"} },
			assertions: func(dir string) []traitAssertion {
				return []traitAssertion{
					assertSucceedingReturnCode,
					assertJarEntries(dir, "app/target/app-1.0.0-src.jar", "org/example/app/Main.java"),
				}
			},
		},
		{
			name: "skip",
			args: func(dir string) []string { return []string{dir, "--skip"} },
			assertions: func(dir string) []traitAssertion {
				return []traitAssertion{
					assertSucceedingReturnCode,
					assertInOutput("skipped (skipped per configuration)"),
					assertNoFile(dir, "core/target/core-1.0.0-sources.jar"),
				}
			},
		},
		{
			name: "unknown output format",
			args: func(dir string) []string { return []string{dir, "-o", "cyclonedx"} },
			assertions: func(dir string) []traitAssertion {
				return []traitAssertion{
					assertFailingReturnCode,
					assertInOutput("bad --output value"),
				}
			},
		},
		{
			name: "missing project",
			args: func(dir string) []string { return []string{dir + "/does-not-exist"} },
			assertions: func(dir string) []traitAssertion {
				return []traitAssertion{
					assertFailingReturnCode,
				}
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dir := copyFixture(t, fixture)
			cmd, stdout, stderr := runSrcjar(t, nil, test.args(dir)...)
			for _, traitFn := range test.assertions(dir) {
				traitFn(t, stdout, stderr, cmd.ProcessState.ExitCode())
			}
			if t.Failed() {
				t.Logf("stdout: %s", stdout)
				t.Logf("stderr: %s", stderr)
			}
		})
	}
}
