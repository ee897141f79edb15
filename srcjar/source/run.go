package source

import (
	"context"
	"fmt"

	"github.com/anchore/srcjar/internal/log"
	"github.com/anchore/srcjar/srcjar/project"
	"github.com/anchore/srcjar/srcjar/srcjarerr"
)

// DefaultExecutionID is the execution of goals requested directly rather than declared in a pom.
const DefaultExecutionID = "default-cli"

// Config is shared by every packager of a run.
type Config struct {
	// Options are the base options; each project layers its own configuration on top.
	Options   Options
	CreatedBy string
	Monitor   *Monitor
}

type invocation struct {
	project     *project.Project
	goal        Goal
	executionID string
}

// Run executes the goal against every project of the session. Aggregate goals run once, for the top level project.
func Run(ctx context.Context, session *project.Session, goal Goal, cfg Config) ([]Result, error) {
	var invocations []invocation
	if goal.Aggregate() {
		if session.TopLevelProject == nil {
			return nil, srcjarerr.ErrNoProject
		}
		invocations = append(invocations, invocation{project: session.TopLevelProject, goal: goal, executionID: DefaultExecutionID})
	} else {
		for _, p := range session.Projects {
			invocations = append(invocations, invocation{project: p, goal: goal, executionID: DefaultExecutionID})
		}
	}
	return run(ctx, session, invocations, cfg)
}

// RunExecutions runs, for every project of the session, the goals of every execution declared for the plugin, in
// declaration order. Projects without declared executions run the jar goal.
func RunExecutions(ctx context.Context, session *project.Session, cfg Config) ([]Result, error) {
	var invocations []invocation
	for _, p := range session.Projects {
		declared, err := declaredInvocations(p)
		if err != nil {
			return nil, err
		}
		if len(declared) == 0 {
			declared = append(declared, invocation{project: p, goal: JarGoal, executionID: DefaultExecutionID})
		}
		invocations = append(invocations, declared...)
	}
	return run(ctx, session, invocations, cfg)
}

func declaredInvocations(p *project.Project) ([]invocation, error) {
	if p.Plugin == nil {
		return nil, nil
	}
	var invocations []invocation
	for _, e := range p.Plugin.Executions {
		for _, name := range e.Goals {
			goal, err := ParseGoal(name)
			if err != nil {
				return nil, fmt.Errorf("execution %q of %s: %w", e.ID, p, err)
			}
			invocations = append(invocations, invocation{project: p, goal: goal, executionID: e.ID})
		}
	}
	return invocations, nil
}

func run(ctx context.Context, session *project.Session, invocations []invocation, cfg Config) ([]Result, error) {
	if cfg.Monitor != nil {
		cfg.Monitor.ProjectsProcessed.Total = int64(expectedVisits(session, invocations))
	}

	var results []Result
	for _, inv := range invocations {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		opts, err := cfg.Options.ForProject(inv.project, inv.goal, inv.executionID)
		if err != nil {
			return results, err
		}

		log.Infof("running %s (%s) on %s", inv.goal, inv.executionID, inv.project)
		packager := &Packager{
			Session:     session,
			Project:     inv.project,
			Goal:        inv.goal,
			ExecutionID: inv.executionID,
			Options:     opts,
			CreatedBy:   cfg.CreatedBy,
			Monitor:     cfg.Monitor,
		}
		result, err := packager.Execute(ctx)
		if err != nil {
			return results, fmt.Errorf("unable to run %s on %s: %w", inv.goal, inv.project, err)
		}
		if cfg.Monitor != nil && result.Skipped != "" && result.Skipped != SkippedNoSources {
			// skipped before any project was visited
			cfg.Monitor.ProjectsProcessed.N += int64(visits(session, inv))
		}
		results = append(results, *result)
	}

	if cfg.Monitor != nil {
		cfg.Monitor.Done()
	}
	return results, nil
}

func expectedVisits(session *project.Session, invocations []invocation) int {
	total := 0
	for _, inv := range invocations {
		total += visits(session, inv)
	}
	return total
}

func visits(session *project.Session, inv invocation) int {
	if !inv.goal.Aggregate() {
		return 1
	}
	p := &Packager{Session: session, Project: inv.project, Goal: inv.goal}
	return len(p.aggregatedProjects())
}
