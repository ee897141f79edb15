package bus

import (
	"io"

	"github.com/wagoodman/go-partybus"

	"github.com/anchore/srcjar/srcjar/event"
	"github.com/anchore/srcjar/srcjar/event/monitor"
)

func AppUpdateAvailable(newVersion string) {
	Publish(partybus.Event{
		Type:  event.AppUpdateAvailable,
		Value: newVersion,
	})
}

func PackagingStarted(mon monitor.Packaging) {
	Publish(partybus.Event{
		Type:  event.PackagingStarted,
		Value: mon,
	})
}

func ArchiveCreated(projectKey, path string) {
	Publish(partybus.Event{
		Type:   event.ArchiveCreated,
		Source: projectKey,
		Value:  path,
	})
}

func ArtifactAttached(artifactKey, path string) {
	Publish(partybus.Event{
		Type:   event.ArtifactAttached,
		Source: artifactKey,
		Value:  path,
	})
}

// PackagingFinished publishes the report for the session. The presenter is accepted structurally: the report
// packages import the packager, which imports this package.
func PackagingFinished(pres interface{ Present(io.Writer) error }) {
	Publish(partybus.Event{
		Type:  event.PackagingFinished,
		Value: pres,
	})
}

func NonRootCommandFinished(result string) {
	Publish(partybus.Event{
		Type:  event.NonRootCommandFinished,
		Value: result,
	})
}
