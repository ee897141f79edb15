package ui

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wagoodman/go-partybus"
	"github.com/wagoodman/go-progress"

	"github.com/anchore/srcjar/srcjar/event"
	"github.com/anchore/srcjar/srcjar/event/monitor"
)

type stringPresenter string

func (s stringPresenter) Present(w io.Writer) error {
	_, err := io.WriteString(w, string(s))
	return err
}

type failingPresenter struct{}

func (failingPresenter) Present(io.Writer) error {
	return errors.New("broken")
}

func newTestUI(t *testing.T) (*loggerUI, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	report := &bytes.Buffer{}
	status := &bytes.Buffer{}
	unsubscribed := 0

	ux := NewLoggerUI(report).(*loggerUI)
	ux.statusOutput = status
	require.NoError(t, ux.Setup(func() error {
		unsubscribed++
		return nil
	}))
	return ux, report, status, &unsubscribed
}

func TestLoggerUI_Handle(t *testing.T) {
	tests := []struct {
		name             string
		events           []partybus.Event
		wantReport       string
		wantUnsubscribed int
	}{
		{
			name: "report is presented on packaging finished",
			events: []partybus.Event{
				{Type: event.PackagingStarted, Value: monitor.Packaging{
					ProjectsProcessed: &progress.Manual{N: 1, Total: 1},
					EntriesAdded:      &progress.Manual{N: 4},
					ArchivesCreated:   &progress.Manual{N: 1},
				}},
				{Type: event.ArchiveCreated, Source: "g:a:1", Value: "/a.jar"},
				{Type: event.ArtifactAttached, Source: "g:a:jar:sources:1", Value: "/a.jar"},
				{Type: event.PackagingFinished, Value: stringPresenter("the report")},
			},
			wantReport:       "the report",
			wantUnsubscribed: 1,
		},
		{
			name: "non root command result",
			events: []partybus.Event{
				{Type: event.NonRootCommandFinished, Value: "version info"},
			},
			wantReport:       "version info",
			wantUnsubscribed: 1,
		},
		{
			name: "broken presenter still unsubscribes",
			events: []partybus.Event{
				{Type: event.PackagingFinished, Value: failingPresenter{}},
			},
			wantUnsubscribed: 1,
		},
		{
			name: "intermediate events only",
			events: []partybus.Event{
				{Type: event.PackagingStarted, Value: "not a monitor"},
				{Type: event.ArchiveCreated, Source: "g:a:1", Value: "/a.jar"},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ux, report, _, unsubscribed := newTestUI(t)
			for _, e := range test.events {
				require.NoError(t, ux.Handle(e))
			}
			assert.Equal(t, test.wantReport, report.String())
			assert.Equal(t, test.wantUnsubscribed, *unsubscribed)
		})
	}
}

func TestLoggerUI_Teardown_UpdateNotice(t *testing.T) {
	ux, _, status, _ := newTestUI(t)

	require.NoError(t, ux.Handle(partybus.Event{Type: event.AppUpdateAvailable, Value: "2.0.0"}))
	require.NoError(t, ux.Teardown(false))
	assert.Contains(t, status.String(), "New version of srcjar is available: 2.0.0")
}

func TestLoggerUI_Teardown_Forced(t *testing.T) {
	ux, _, status, _ := newTestUI(t)

	require.NoError(t, ux.Handle(partybus.Event{Type: event.AppUpdateAvailable, Value: "2.0.0"}))
	require.NoError(t, ux.Teardown(true))
	assert.Empty(t, status.String())
}
