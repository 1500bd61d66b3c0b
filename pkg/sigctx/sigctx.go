// Package sigctx binds the process root context to termination signals.
package sigctx

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

var stopSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

// NotifyContext returns a context cancelled on the first stop signal.
func NotifyContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), stopSignals...)
}
