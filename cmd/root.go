package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/anchore/srcjar/internal"
	"github.com/anchore/srcjar/internal/config"
	"github.com/anchore/srcjar/internal/log"
	"github.com/anchore/srcjar/internal/ui"
	"github.com/anchore/srcjar/srcjar/presenter"
	"github.com/anchore/srcjar/srcjar/source"
)

var persistentOpts = config.CliOnlyOptions{}

var rootCmd = &cobra.Command{
	Use:   fmt.Sprintf("%s [DIR]", internal.ApplicationName),
	Short: "Bundle the sources of a maven project into source jars",
	Long: fmt.Sprintf(`Runs the source packaging executions declared in the project poms, or the "jar" goal when none are declared:
    %[1]s                      package the project (and its modules) in the current directory
    %[1]s path/to/project      package the project in the given directory
    %[1]s path/to/pom.xml      package the project described by the given pom
    %[1]s test-jar .           run a single goal on every project (see the goal commands below)
`, internal.ApplicationName),
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPackagingCmd(args, nil)
	},
	ValidArgsFunction: dirArgsOnly,
}

func init() {
	setRootFlags(rootCmd.PersistentFlags())
}

// nolint:funlen
func setRootFlags(flags *pflag.FlagSet) {
	defaults := source.DefaultOptions()

	flags.StringVarP(&persistentOpts.ConfigPath, "config", "c", "", "application config file")
	flags.CountVarP(&persistentOpts.Verbosity, "verbose", "v", "increase verbosity (-v = info, -vv = debug)")

	flags.BoolP(
		"quiet", "q", false,
		"suppress all logging output",
	)

	flags.StringP(
		"output", "o", presenter.TablePresenter.String(),
		fmt.Sprintf("report output formatter, options=%v", presenter.Options),
	)

	flags.StringP(
		"file", "", "",
		"file to write the report output to (default is STDOUT)",
	)

	flags.StringP(
		"template", "t", "",
		"specify the path to a Go template file (requires 'template' output to be selected)",
	)

	// reactor options
	flags.BoolP(
		"non-recursive", "N", false,
		"do not package the modules of the project",
	)

	flags.StringSliceP(
		"projects", "", nil,
		"only package the given projects (artifactId or groupId:artifactId)",
	)

	// packaging options
	flags.BoolP(
		"skip", "", defaults.Skip,
		"skip source packaging",
	)

	flags.BoolP(
		"force-creation", "", defaults.ForceCreation,
		"write the archive even when it is up to date",
	)

	flags.BoolP(
		"include-pom", "", defaults.IncludePom,
		"add the pom to the archive",
	)

	flags.BoolP(
		"exclude-resources", "", defaults.ExcludeResources,
		"leave the project resources out of the archive",
	)

	flags.BoolP(
		"attach", "", defaults.Attach,
		"attach the archive to the project",
	)

	flags.BoolP(
		"use-default-excludes", "", defaults.UseDefaultExcludes,
		"exclude the files of common version control and editor tooling",
	)

	flags.BoolP(
		"use-default-manifest-file", "", defaults.UseDefaultManifestFile,
		"use the manifest found in the project output directory",
	)

	flags.StringP(
		"classifier", "", defaults.Classifier,
		"classifier of the main source archive",
	)

	flags.StringP(
		"test-classifier", "", defaults.TestClassifier,
		"classifier of the test source archive",
	)

	flags.StringP(
		"output-directory", "", defaults.OutputDirectory,
		"directory the archives are written to",
	)

	flags.StringP(
		"final-name", "", defaults.FinalName,
		"base name of the archives",
	)

	flags.StringP(
		"output-timestamp", "", defaults.OutputTimestamp,
		"timestamp of the archive entries for reproducible builds (ISO 8601 or seconds since the epoch)",
	)

	flags.StringSliceP(
		"include", "", nil,
		"ant style pattern of files to include (may be repeated)",
	)

	flags.StringSliceP(
		"exclude", "", nil,
		"ant style pattern of files to exclude (may be repeated)",
	)
}

// flagConfigKeys maps flags onto their application config keys (flags not listed share the name of the key).
var flagConfigKeys = map[string]string{
	"template":                  "output-template-file",
	"non-recursive":             "reactor.non-recursive",
	"projects":                  "reactor.projects",
	"skip":                      "source.skip",
	"force-creation":            "source.force-creation",
	"include-pom":               "source.include-pom",
	"exclude-resources":         "source.exclude-resources",
	"attach":                    "source.attach",
	"use-default-excludes":      "source.use-default-excludes",
	"use-default-manifest-file": "source.use-default-manifest-file",
	"classifier":                "source.classifier",
	"test-classifier":           "source.test-classifier",
	"output-directory":          "source.output-directory",
	"final-name":                "source.final-name",
	"output-timestamp":          "source.output-timestamp",
	"include":                   "source.includes",
	"exclude":                   "source.excludes",
}

func bindRootConfigOptions(flags *pflag.FlagSet) error {
	for _, name := range []string{"quiet", "output", "file"} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			return err
		}
	}

	for name, key := range flagConfigKeys {
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("unable to bind flag %q: %w", name, err)
		}
	}

	return nil
}

func runPackagingCmd(args []string, goal *source.Goal) error {
	if appConfig.Dev.ProfileCPU && appConfig.Dev.ProfileMem {
		return fmt.Errorf("cannot profile CPU and memory simultaneously")
	}

	if appConfig.Dev.ProfileCPU {
		defer profile.Start(profile.CPUProfile).Stop()
	} else if appConfig.Dev.ProfileMem {
		defer profile.Start(profile.MemProfile).Stop()
	}

	dir := "."
	if len(args) > 0 {
		dir = strings.TrimSpace(args[0])
	}

	reporter, closer, err := reportWriter()
	defer func() {
		if err := closer(); err != nil {
			log.Warnf("unable to write to report destination: %+v", err)
		}
	}()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())

	return eventLoop(
		startPackagingWorker(ctx, dir, goal),
		setupSignals(),
		eventSubscription,
		cancel,
		ui.NewLoggerUI(reporter),
	)
}

func dirArgsOnly(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveFilterDirs
}
