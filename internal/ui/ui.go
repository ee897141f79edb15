package ui

import (
	"github.com/wagoodman/go-partybus"
)

// UI reacts to events published during a session. The final event (the report, or the result of a non-root command)
// is the point at which the UI unsubscribes from the bus.
type UI interface {
	Setup(unsubscribe func() error) error
	partybus.Handler
	Teardown(force bool) error
}
