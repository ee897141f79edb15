package ui

import (
	"fmt"
	"io"

	"github.com/wagoodman/go-partybus"

	"github.com/anchore/srcjar/srcjar/event/parsers"
)

func handlePackagingFinished(event partybus.Event, reportOutput io.Writer) error {
	pres, err := parsers.ParsePackagingFinished(event)
	if err != nil {
		return fmt.Errorf("bad %s event: %w", event.Type, err)
	}

	if err := pres.Present(reportOutput); err != nil {
		return fmt.Errorf("unable to show packaging report: %w", err)
	}
	return nil
}

func handleNonRootCommandFinished(event partybus.Event, reportOutput io.Writer) error {
	result, err := parsers.ParseNonRootCommandFinished(event)
	if err != nil {
		return fmt.Errorf("bad %s event: %w", event.Type, err)
	}

	if _, err := reportOutput.Write([]byte(*result)); err != nil {
		return fmt.Errorf("unable to show command result: %w", err)
	}
	return nil
}
