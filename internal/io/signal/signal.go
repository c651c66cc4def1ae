// Package signal turns termination signals into context cancellation.
package signal

import (
	"context"
	"os"
	gosignal "os/signal"
	"syscall"
	"time"

	"github.com/ricat/ricat/internal/constants"
	"github.com/ricat/ricat/internal/errors"
	"github.com/ricat/ricat/internal/io/dlog"
)

var realExit = os.Exit

// exit is replaced in tests.
var exit = realExit

// Signals handled by Cancel.
var Signals = []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGHUP}

// Cancel calls cancel on the first SIGINT, SIGTERM or SIGHUP. The run is
// expected to stop and flush its output. If the process is still running
// after constants.ForcedExitDelay (e.g. blocked reading a terminal), or a
// second signal arrives, it exits with errors.ExitInterrupted. The returned
// function stops listening.
func Cancel(ctx context.Context, cancel context.CancelFunc, log *dlog.Logger) (stop func()) {
	return cancelAfter(ctx, cancel, log, constants.ForcedExitDelay)
}

func cancelAfter(ctx context.Context, cancel context.CancelFunc, log *dlog.Logger,
	delay time.Duration) func() {

	sigCh := make(chan os.Signal, 2)
	gosignal.Notify(sigCh, Signals...)
	done := make(chan struct{})

	go func() {
		select {
		case sig := <-sigCh:
			log.Debug("Received signal, stopping", dlog.Fields("signal", sig.String()))
			cancel()
		case <-ctx.Done():
			return
		case <-done:
			return
		}

		select {
		case <-sigCh:
			log.Debug("Received second signal, exiting")
		case <-time.After(delay):
			log.Warn("Not stopped in time, exiting")
		case <-done:
			return
		}
		exit(errors.ExitInterrupted)
	}()

	return func() {
		gosignal.Stop(sigCh)
		close(done)
	}
}
