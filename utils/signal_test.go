package utils

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterruptContextCancel(t *testing.T) {
	ctx, cancel := InterruptContext(context.Background())
	assert.Nil(t, ctx.Err())
	cancel()
	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestInterruptContextCancelStopsNotify(t *testing.T) {
	stopped := make(chan chan<- os.Signal, 1)
	stopNotify = func(c chan<- os.Signal) {
		signal.Stop(c)
		stopped <- c
	}
	defer func() { stopNotify = signal.Stop }()

	_, cancel := InterruptContext(context.Background())
	cancel()

	select {
	case c := <-stopped:
		require.NotNil(t, c)
	case <-time.After(5 * time.Second):
		t.Fatal("Signal notification was not stopped")
	}
}

func TestInterruptContextSignal(t *testing.T) {
	ctx, cancel := InterruptContext(context.Background())
	defer cancel()

	assert.Nil(t, syscall.Kill(syscall.Getpid(), syscall.SIGHUP))
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("Context was not canceled by the signal")
	}
}

func TestInterruptSignal(t *testing.T) {
	interrupt := InterruptSignal()
	assert.Nil(t, syscall.Kill(syscall.Getpid(), syscall.SIGHUP))
	select {
	case sig := <-interrupt:
		assert.Equal(t, syscall.SIGHUP, sig)
	case <-time.After(5 * time.Second):
		t.Fatal("Signal was not delivered")
	}
}
