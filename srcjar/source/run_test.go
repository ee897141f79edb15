package source

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anchore/srcjar/srcjar/project"
)

type resultSummary struct {
	project    string
	goal       Goal
	execution  string
	classifier string
	file       string
	attached   bool
	skipped    string
}

func summarize(results []Result) []resultSummary {
	var summaries []resultSummary
	for _, r := range results {
		var file string
		if r.Path != "" {
			file = filepath.Base(r.Path)
		}
		summaries = append(summaries, resultSummary{
			project:    r.Project.ArtifactID,
			goal:       r.Goal,
			execution:  r.ExecutionID,
			classifier: r.Classifier,
			file:       file,
			attached:   r.Attached,
			skipped:    r.Skipped,
		})
	}
	return summaries
}

func TestRunExecutions(t *testing.T) {
	session, _ := setupSession(t, "executions")
	monitor := NewMonitor(0)

	results, err := RunExecutions(context.Background(), session, Config{
		Options:   DefaultOptions(),
		CreatedBy: "srcjar test",
		Monitor:   monitor,
	})
	require.NoError(t, err)

	assert.Equal(t, []resultSummary{
		{project: "executions", goal: JarGoal, execution: "attach-sources", classifier: "sources", file: "executions-2.0-sources.jar", attached: true},
		{project: "executions", goal: TestJarGoal, execution: "attach-sources", classifier: "test-sources", file: "executions-2.0-test-sources.jar", attached: true},
		{project: "executions", goal: JarGoal, execution: "unattached-sources", classifier: "extra-sources", file: "executions-2.0-extra-sources.jar"},
	}, summarize(results))

	assert.Len(t, session.ProjectManager().AttachedArtifacts(session.TopLevelProject), 2)

	assert.Equal(t, int64(3), monitor.ProjectsProcessed.Current())
	assert.Equal(t, int64(3), monitor.ArchivesCreated.Current())
	assert.Equal(t, int64(27), monitor.EntriesAdded.Current())
}

func TestRunExecutions_Aggregate(t *testing.T) {
	session, _ := setupSession(t, "aggregate")

	results, err := RunExecutions(context.Background(), session, Config{Options: DefaultOptions()})
	require.NoError(t, err)

	assert.Equal(t, []resultSummary{
		{project: "aggregate-parent", goal: AggregateGoal, execution: "aggregate-sources", classifier: "sources", file: "aggregate-parent-1.0-sources.jar", attached: true},
		{project: "module-a", goal: JarGoal, execution: DefaultExecutionID, classifier: "sources", file: "module-a-1.0-sources.jar", attached: true},
		{project: "module-b", goal: JarGoal, execution: DefaultExecutionID, classifier: "sources", file: "module-b-1.0-sources.jar", attached: true},
	}, summarize(results))
}

func TestRun(t *testing.T) {
	session, _ := setupSession(t, "aggregate")

	results, err := Run(context.Background(), session, TestJarGoal, Config{Options: DefaultOptions()})
	require.NoError(t, err)

	assert.Equal(t, []resultSummary{
		{project: "aggregate-parent", goal: TestJarGoal, execution: DefaultExecutionID, classifier: "test-sources", skipped: SkippedAggregator},
		{project: "module-a", goal: TestJarGoal, execution: DefaultExecutionID, classifier: "test-sources", skipped: SkippedNoSources},
		{project: "module-b", goal: TestJarGoal, execution: DefaultExecutionID, classifier: "test-sources", file: "module-b-1.0-test-sources.jar", attached: true},
	}, summarize(results))

	results, err = Run(context.Background(), session, AggregateGoal, Config{Options: DefaultOptions()})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "aggregate-parent", results[0].Project.ArtifactID)
}

func TestRun_Cancelled(t *testing.T) {
	session, _ := setupSession(t, "aggregate")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, session, JarGoal, Config{Options: DefaultOptions()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunExecutions_UnknownGoal(t *testing.T) {
	fs := newMemFs(t, map[string]string{"/work/pom.xml": `<project><groupId>g</groupId><artifactId>a</artifactId><version>1</version>
<build><plugins><plugin><artifactId>maven-source-plugin</artifactId><executions><execution><id>bad</id><goals><goal>javadoc</goal></goals></execution></executions></plugin></plugins></build></project>`})
	p, err := project.LoadProject(fs, "/work")
	require.NoError(t, err)

	_, err = RunExecutions(context.Background(), project.NewSession(fs, []*project.Project{p}), Config{Options: DefaultOptions()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `execution "bad"`)
}
