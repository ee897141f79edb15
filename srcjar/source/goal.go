package source

import (
	"fmt"
	"strings"

	"github.com/anchore/srcjar/srcjar/project"
	"github.com/anchore/srcjar/srcjar/srcjarerr"
)

// Goal is a packaging goal: which half of the project is archived, and for which projects.
type Goal string

const (
	JarGoal           Goal = "jar"
	TestJarGoal       Goal = "test-jar"
	AggregateGoal     Goal = "aggregate"
	TestAggregateGoal Goal = "test-aggregate"
)

// Goals are all known goals, in their canonical spelling.
var Goals = []Goal{JarGoal, TestJarGoal, AggregateGoal, TestAggregateGoal}

var goalAliases = map[string]Goal{
	"jar-no-fork":      JarGoal,
	"test-jar-no-fork": TestJarGoal,
}

// ParseGoal maps a goal name (or one of the no-fork aliases) to a Goal.
func ParseGoal(name string) (Goal, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if g, ok := goalAliases[name]; ok {
		return g, nil
	}
	for _, g := range Goals {
		if string(g) == name {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: %q", srcjarerr.ErrUnknownGoal, name)
}

// Scope is the half of the project the goal packages.
func (g Goal) Scope() project.Scope {
	switch g {
	case TestJarGoal, TestAggregateGoal:
		return project.TestScope
	default:
		return project.MainScope
	}
}

// Aggregate goals package the content of every reactor project into a single archive.
func (g Goal) Aggregate() bool {
	return g == AggregateGoal || g == TestAggregateGoal
}

func (g Goal) String() string {
	return string(g)
}
