// Package lifecycle coordinates startup, background work, and shutdown across subsystems.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"sync/atomic"
	"time"
)

var (
	// ErrShutdown is the cancellation cause of Context once Shutdown runs.
	ErrShutdown = errors.New("lifecycle shutdown")
	// ErrShutdownTimeout reports hooks still running when Shutdown gave up.
	ErrShutdownTimeout = errors.New("shutdown timed out")
)

// ReadinessChecker reports whether a subsystem is ready to serve traffic.
type ReadinessChecker interface {
	Ready() bool
}

// ReadyFunc adapts a function to ReadinessChecker.
type ReadyFunc func() bool

// Ready calls f.
func (f ReadyFunc) Ready() bool { return f() }

// Coordinator manages startup and shutdown hooks for the application lifecycle
// and tracks the readiness of named subsystems.
type Coordinator struct {
	ctx        context.Context
	cancel     context.CancelCauseFunc
	startupWg  sync.WaitGroup
	shutdownWg sync.WaitGroup
	ready      atomic.Bool
	checkersMu sync.RWMutex
	checkers   map[string]ReadinessChecker
}

// New creates a Coordinator whose context lives until Shutdown.
func New() *Coordinator {
	ctx, cancel := context.WithCancelCause(context.Background())
	return &Coordinator{
		ctx:      ctx,
		cancel:   cancel,
		checkers: make(map[string]ReadinessChecker),
	}
}

// Context returns the coordinator's context, cancelled on shutdown.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// OnStartup registers a function to run concurrently during startup.
func (c *Coordinator) OnStartup(fn func()) {
	c.startupWg.Go(fn)
}

// OnShutdown registers a function to run concurrently during shutdown.
// Shutdown hooks should block on <-c.Context().Done() before executing cleanup.
func (c *Coordinator) OnShutdown(fn func()) {
	c.shutdownWg.Go(fn)
}

// Background runs fn until the coordinator context is cancelled.
// Shutdown waits for fn to return.
func (c *Coordinator) Background(fn func(ctx context.Context)) {
	c.shutdownWg.Go(func() {
		fn(c.ctx)
	})
}

// Track registers a named subsystem whose readiness is reported by Services.
func (c *Coordinator) Track(name string, checker ReadinessChecker) {
	c.checkersMu.Lock()
	defer c.checkersMu.Unlock()
	c.checkers[name] = checker
}

// Services returns the current readiness of every tracked subsystem.
func (c *Coordinator) Services() map[string]bool {
	c.checkersMu.RLock()
	checkers := maps.Clone(c.checkers)
	c.checkersMu.RUnlock()

	services := make(map[string]bool, len(checkers))
	for name, checker := range checkers {
		services[name] = checker.Ready()
	}
	return services
}

// Ready returns true after all startup hooks have completed.
func (c *Coordinator) Ready() bool {
	return c.ready.Load()
}

// WaitForStartup blocks until all startup hooks have completed and sets the ready flag.
func (c *Coordinator) WaitForStartup() {
	c.startupWg.Wait()
	c.ready.Store(true)
}

// Shutdown cancels the context with ErrShutdown and waits up to timeout for
// shutdown hooks and background work. Readiness drops immediately.
func (c *Coordinator) Shutdown(timeout time.Duration) error {
	c.ready.Store(false)
	c.cancel(ErrShutdown)

	done := make(chan struct{})
	go func() {
		c.shutdownWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("%w after %v", ErrShutdownTimeout, timeout)
	}
}
