package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/gookit/color"
	"github.com/wagoodman/go-partybus"

	"github.com/anchore/srcjar/internal"
	"github.com/anchore/srcjar/internal/log"
	"github.com/anchore/srcjar/srcjar/event"
	"github.com/anchore/srcjar/srcjar/event/monitor"
	"github.com/anchore/srcjar/srcjar/event/parsers"
)

type loggerUI struct {
	unsubscribe  func() error
	reportOutput io.Writer
	statusOutput io.Writer
	newVersion   string
	packaging    *monitor.Packaging
}

// NewLoggerUI writes all events to the common application logger and writes the final report to the given writer.
func NewLoggerUI(reportWriter io.Writer) UI {
	return &loggerUI{
		reportOutput: reportWriter,
		statusOutput: os.Stderr,
	}
}

func (l *loggerUI) Setup(unsubscribe func() error) error {
	l.unsubscribe = unsubscribe
	return nil
}

func (l *loggerUI) Handle(e partybus.Event) error {
	switch e.Type {
	case event.AppUpdateAvailable:
		newVersion, err := parsers.ParseAppUpdateAvailable(e)
		if err != nil {
			log.Warnf("unable to show %s event: %+v", e.Type, err)
			return nil
		}
		l.newVersion = newVersion
		return nil

	case event.PackagingStarted:
		mon, err := parsers.ParsePackagingStarted(e)
		if err != nil {
			log.Warnf("unable to show %s event: %+v", e.Type, err)
			return nil
		}
		l.packaging = mon
		return nil

	case event.ArchiveCreated:
		if key, path, err := parsers.ParseArchiveCreated(e); err == nil {
			log.Debugf("archive ready project=%s path=%s", key, path)
		}
		return nil

	case event.ArtifactAttached:
		if key, path, err := parsers.ParseArtifactAttached(e); err == nil {
			log.Debugf("artifact attached artifact=%s path=%s", key, path)
		}
		return nil

	case event.PackagingFinished:
		l.logSummary()
		if err := handlePackagingFinished(e, l.reportOutput); err != nil {
			log.Warnf("unable to show %s event: %+v", e.Type, err)
		}

	case event.NonRootCommandFinished:
		if err := handleNonRootCommandFinished(e, l.reportOutput); err != nil {
			log.Warnf("unable to show %s event: %+v", e.Type, err)
		}

	// ignore all other events
	default:
		return nil
	}

	// this is the last expected event, stop listening to events
	return l.unsubscribe()
}

func (l *loggerUI) logSummary() {
	if l.packaging == nil {
		return
	}
	log.Infof("packaging finished: archives=%d entries=%d projects=%d",
		l.packaging.ArchivesCreated.Current(),
		l.packaging.EntriesAdded.Current(),
		l.packaging.ProjectsProcessed.Current(),
	)
}

func (l *loggerUI) Teardown(force bool) error {
	if force || l.newVersion == "" {
		return nil
	}

	message := color.Magenta.Sprintf("New version of %s is available: %s", internal.ApplicationName, l.newVersion)
	_, err := fmt.Fprintln(l.statusOutput, message)
	return err
}
