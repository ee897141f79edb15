package event

import "github.com/wagoodman/go-partybus"

const (
	// AppUpdateAvailable is published when a newer version of the application has been released. The value is the
	// new version string.
	AppUpdateAvailable partybus.EventType = "srcjar-app-update-available"

	// PackagingStarted is published once per session, carrying a monitor.Packaging value.
	PackagingStarted partybus.EventType = "srcjar-packaging-started"

	// ArchiveCreated is published whenever a source archive is written (or found up to date). The source is the
	// project key and the value is the archive path.
	ArchiveCreated partybus.EventType = "srcjar-archive-created"

	// ArtifactAttached is published when a source archive is attached to a project. The source is the artifact key
	// and the value is the archive path.
	ArtifactAttached partybus.EventType = "srcjar-artifact-attached"

	// PackagingFinished is the final event of a session, carrying the presenter for the report.
	PackagingFinished partybus.EventType = "srcjar-packaging-finished"

	// NonRootCommandFinished is the final event of auxiliary commands, carrying the string to show.
	NonRootCommandFinished partybus.EventType = "srcjar-non-root-command-finished"
)
