package source

import (
	"github.com/wagoodman/go-progress"

	"github.com/anchore/srcjar/srcjar/event/monitor"
)

// Monitor counts the progress of a packaging session.
type Monitor struct {
	ProjectsProcessed progress.Manual
	EntriesAdded      progress.Manual
	ArchivesCreated   progress.Manual
}

// NewMonitor creates a monitor expecting the given number of project visits.
func NewMonitor(projects int) *Monitor {
	return &Monitor{
		ProjectsProcessed: progress.Manual{Total: int64(projects)},
	}
}

// Packaging exposes the monitor as event payload.
func (m *Monitor) Packaging() monitor.Packaging {
	return monitor.Packaging{
		ProjectsProcessed: &m.ProjectsProcessed,
		EntriesAdded:      &m.EntriesAdded,
		ArchivesCreated:   &m.ArchivesCreated,
	}
}

// Done marks every counter as complete.
func (m *Monitor) Done() {
	m.ProjectsProcessed.SetCompleted()
	m.EntriesAdded.SetCompleted()
	m.ArchivesCreated.SetCompleted()
}
