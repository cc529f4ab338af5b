package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// notifyContext returns a context canceled on interrupt or SIGTERM.
// Files already written stay in place; pending ones are reported as canceled.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
