package cmd

import (
	"errors"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/wagoodman/go-partybus"

	"github.com/anchore/srcjar/internal/log"
	"github.com/anchore/srcjar/internal/ui"
)

// eventLoop listens to worker errors (from execution path), worker events (from a partybus subscription), and
// signal interrupts. Is responsible for handling each event relative to a given UI and to coordinate eventing until
// an eventual graceful exit. The cleanup function runs on exit, cancelling the worker if it is still running.
// nolint:gocognit,funlen
func eventLoop(workerErrs <-chan error, signals <-chan os.Signal, subscription *partybus.Subscription, cleanupFn func(), ux ui.UI) error {
	defer cleanupFn()
	events := subscription.Events()
	var err error
	if ux, err = setupUI(subscription.Unsubscribe, ux); err != nil {
		return err
	}

	var retErr error
	var forceTeardown bool

	for {
		if workerErrs == nil && events == nil {
			break
		}
		select {
		case err, isOpen := <-workerErrs:
			if !isOpen {
				workerErrs = nil
				continue
			}
			if err != nil {
				// capture the error from the worker and unsubscribe to complete a graceful shutdown
				retErr = multierror.Append(retErr, err)
				if err := subscription.Unsubscribe(); err != nil {
					retErr = multierror.Append(retErr, err)
				}
			}
		case e, isOpen := <-events:
			if !isOpen {
				events = nil
				continue
			}

			if err := ux.Handle(e); err != nil {
				if errors.Is(err, partybus.ErrUnsubscribe) {
					log.Warnf("unable to unsubscribe from the event bus")
					events = nil
				} else {
					retErr = multierror.Append(retErr, err)
				}
			}
		case <-signals:
			// ignore further results from any event source and exit ASAP; the cleanup function cancels the worker,
			// which stops between projects and file sets. Archives are written atomically, so nothing partial is left.
			events = nil
			workerErrs = nil
			forceTeardown = true
		}
	}

	if err := ux.Teardown(forceTeardown); err != nil {
		retErr = multierror.Append(retErr, err)
	}

	return retErr
}

func setupUI(unsubscribe func() error, ux ui.UI) (ui.UI, error) {
	if err := ux.Setup(unsubscribe); err != nil {
		// replace the existing UI with a (simpler) logger UI
		ux = ui.NewLoggerUI(os.Stdout)
		if err := ux.Setup(unsubscribe); err != nil {
			// something is very wrong, bail.
			return ux, err
		}
		log.Errorf("unable to setup given UI, falling back to logger: %+v", err)
	}
	return ux, nil
}
