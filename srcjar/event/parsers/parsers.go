package parsers

import (
	"fmt"

	"github.com/wagoodman/go-partybus"

	"github.com/anchore/srcjar/srcjar/event"
	"github.com/anchore/srcjar/srcjar/event/monitor"
	"github.com/anchore/srcjar/srcjar/presenter"
)

type ErrBadPayload struct {
	Type  partybus.EventType
	Field string
	Value interface{}
}

func (e *ErrBadPayload) Error() string {
	return fmt.Sprintf("event='%s' has bad event payload field='%v': '%+v'", string(e.Type), e.Field, e.Value)
}

func newPayloadErr(t partybus.EventType, field string, value interface{}) error {
	return &ErrBadPayload{
		Type:  t,
		Field: field,
		Value: value,
	}
}

func checkEventType(actual, expected partybus.EventType) error {
	if actual != expected {
		return newPayloadErr(expected, "Type", actual)
	}
	return nil
}

func ParseAppUpdateAvailable(e partybus.Event) (string, error) {
	if err := checkEventType(e.Type, event.AppUpdateAvailable); err != nil {
		return "", err
	}

	newVersion, ok := e.Value.(string)
	if !ok {
		return "", newPayloadErr(e.Type, "Value", e.Value)
	}

	return newVersion, nil
}

func ParsePackagingStarted(e partybus.Event) (*monitor.Packaging, error) {
	if err := checkEventType(e.Type, event.PackagingStarted); err != nil {
		return nil, err
	}

	mon, ok := e.Value.(monitor.Packaging)
	if !ok {
		return nil, newPayloadErr(e.Type, "Value", e.Value)
	}

	return &mon, nil
}

// ParseArchiveCreated returns the project key and the archive path.
func ParseArchiveCreated(e partybus.Event) (string, string, error) {
	return parseKeyAndPath(e, event.ArchiveCreated)
}

// ParseArtifactAttached returns the artifact key and the attached file path.
func ParseArtifactAttached(e partybus.Event) (string, string, error) {
	return parseKeyAndPath(e, event.ArtifactAttached)
}

func parseKeyAndPath(e partybus.Event, expected partybus.EventType) (string, string, error) {
	if err := checkEventType(e.Type, expected); err != nil {
		return "", "", err
	}

	key, ok := e.Source.(string)
	if !ok {
		return "", "", newPayloadErr(e.Type, "Source", e.Source)
	}

	path, ok := e.Value.(string)
	if !ok {
		return "", "", newPayloadErr(e.Type, "Value", e.Value)
	}

	return key, path, nil
}

func ParsePackagingFinished(e partybus.Event) (presenter.Presenter, error) {
	if err := checkEventType(e.Type, event.PackagingFinished); err != nil {
		return nil, err
	}

	pres, ok := e.Value.(presenter.Presenter)
	if !ok {
		return nil, newPayloadErr(e.Type, "Value", e.Value)
	}

	return pres, nil
}

func ParseNonRootCommandFinished(e partybus.Event) (*string, error) {
	if err := checkEventType(e.Type, event.NonRootCommandFinished); err != nil {
		return nil, err
	}

	result, ok := e.Value.(string)
	if !ok {
		return nil, newPayloadErr(e.Type, "Value", e.Value)
	}

	return &result, nil
}
