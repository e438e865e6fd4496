// Package worker provides the permit pool that bounds how many probes run at once.
package worker

import (
	"context"
	"sync"
	"sync/atomic"
)

// Semaphore provides a counting semaphore for controlling concurrency.
// It is used to limit the number of probes in flight so a large batch does
// not exhaust file descriptors or spawn thousands of external processes.
type Semaphore struct {
	permits  chan struct{}
	inFlight atomic.Int64
}

// NewSemaphore creates a new semaphore with the given number of permits.
func NewSemaphore(count int) *Semaphore {
	if count <= 0 {
		count = 1
	}
	s := &Semaphore{
		permits: make(chan struct{}, count),
	}
	// Pre-fill the permits
	for i := 0; i < count; i++ {
		s.permits <- struct{}{}
	}
	return s
}

// Acquire blocks until a permit is available or ctx is done.
// On cancellation no permit is held and ctx.Err() is returned.
func (s *Semaphore) Acquire(ctx context.Context) error {
	// Prefer cancellation over a racing free permit.
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-s.permits:
		s.inFlight.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release returns a permit to the semaphore.
func (s *Semaphore) Release() {
	select {
	case s.permits <- struct{}{}:
		s.inFlight.Add(-1)
	default:
		// Semaphore is full, this shouldn't happen in normal use
	}
}

// Go acquires a permit on the calling goroutine, then runs fn on a new
// goroutine that holds it. The permit is released and wg marked done on
// every exit path of fn, including a panic. If ctx ends first, nothing is
// started and ctx.Err() is returned.
func (s *Semaphore) Go(ctx context.Context, wg *sync.WaitGroup, fn func()) error {
	if err := s.Acquire(ctx); err != nil {
		return err
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer s.Release()
		fn()
	}()
	return nil
}

// InFlight returns the number of permits currently held.
func (s *Semaphore) InFlight() int {
	return int(s.inFlight.Load())
}
