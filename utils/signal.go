package utils

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

var stopNotify = signal.Stop

func notifyInterrupt() chan os.Signal {
	wait := make(chan os.Signal, 1)
	signal.Notify(wait, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	return wait
}

func InterruptSignal() <-chan os.Signal {
	return notifyInterrupt()
}

// InterruptContext returns a context canceled on the first interrupt signal
// or when cancel is called. Signal delivery stops once the context is done.
func InterruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	interrupt := notifyInterrupt()
	stop := stopNotify
	go func() {
		defer stop(interrupt)
		select {
		case <-interrupt:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
