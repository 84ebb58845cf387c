// Package context provides context utilities with proper resource cleanup
package context

import (
	"context"
	"os"
	"os/signal"
	"sync"
)

// signalContext provides a context that cancels on OS signals.
// It properly manages goroutine lifecycle to prevent leaks.
type signalContext struct {
	context.Context

	cancel   context.CancelFunc
	stopOnce sync.Once
	stopCh   chan struct{}
}

// stop stops the signalContext and releases all resources.
// It can be called multiple times safely.
func (sc *signalContext) stop() {
	sc.stopOnce.Do(func() {
		sc.cancel()
		close(sc.stopCh)
	})
}

// WithSignal creates a new context that cancels when any of the specified
// signals are received. The returned cancel function must be called to
// release resources and prevent goroutine leaks.
//
// Example:
//
//	ctx, cancel := WithSignal(context.Background(), os.Interrupt)
//	defer cancel() // Important: always call cancel to prevent goroutine leaks
func WithSignal(parent context.Context, sigs ...os.Signal) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sc := &signalContext{
		Context: ctx,
		cancel:  cancel,
		stopCh:  make(chan struct{}),
	}

	// Buffered so a signal arriving before the goroutine starts
	// listening is not lost.
	ch := make(chan os.Signal, len(sigs))
	signal.Notify(ch, sigs...)

	go func() {
		defer signal.Stop(ch)
		select {
		case <-ch:
			cancel()
		case <-sc.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}()

	return sc, sc.stop
}
