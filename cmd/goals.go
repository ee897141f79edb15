package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anchore/srcjar/srcjar/source"
)

var goalDescriptions = map[source.Goal]string{
	source.JarGoal:           "bundle the main sources of each project into a source jar",
	source.TestJarGoal:       "bundle the test sources of each project into a test source jar",
	source.AggregateGoal:     "bundle the main sources of the top level project and all of its modules into one jar",
	source.TestAggregateGoal: "bundle the test sources of the top level project and all of its modules into one jar",
}

func init() {
	for _, g := range source.Goals {
		rootCmd.AddCommand(newGoalCmd(g))
	}
}

func newGoalCmd(goal source.Goal) *cobra.Command {
	return &cobra.Command{
		Use:               fmt.Sprintf("%s [DIR]", goal),
		Short:             goalDescriptions[goal],
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		ValidArgsFunction: dirArgsOnly,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPackagingCmd(args, &goal)
		},
	}
}
