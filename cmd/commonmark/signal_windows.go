//go:build windows

package main

import (
	"context"
	"os"
	"os/signal"
)

// notifyContext derives a context from parent that is canceled on Ctrl+C,
// so a batch stops scheduling conversions. Windows has no SIGTERM. The
// returned function unregisters the handler.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt)
}
