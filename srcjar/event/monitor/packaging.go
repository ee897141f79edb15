package monitor

import "github.com/wagoodman/go-progress"

// Packaging tracks a packaging session: projects visited, entries collected and archives written.
type Packaging struct {
	ProjectsProcessed progress.Progressable
	EntriesAdded      progress.Monitorable
	ArchivesCreated   progress.Monitorable
}
