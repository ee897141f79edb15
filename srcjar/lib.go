package srcjar

import (
	"github.com/wagoodman/go-partybus"

	"github.com/anchore/srcjar/internal/bus"
	"github.com/anchore/srcjar/internal/log"
	"github.com/anchore/srcjar/srcjar/logger"
)

// SetLogger sets the logger used by the library; by default nothing is logged.
func SetLogger(logger logger.Logger) {
	log.Log = logger
}

// SetBus sets the event bus the library publishes to; by default no events are published.
func SetBus(b *partybus.Bus) {
	bus.SetPublisher(b)
}
