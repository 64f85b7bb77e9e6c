package database

import (
	"context"
	"errors"
	"sync"
)

// Subscription is the handle of a live query. Snapshots are delivered from a
// single goroutine, one at a time.
type Subscription struct {
	cancel context.CancelFunc
	done   chan struct{}

	mu  sync.Mutex
	err error
}

func newSubscription(parent context.Context) (*Subscription, context.Context) {
	ctx, cancel := context.WithCancel(parent)
	return &Subscription{cancel: cancel, done: make(chan struct{})}, ctx
}

// Cancel detaches the live query and waits for the delivery goroutine to
// exit. Once Cancel returns no further snapshots are delivered. Cancel must
// not be called from inside the SnapshotFunc; cancel the parent context there.
func (s *Subscription) Cancel() {
	s.cancel()
	<-s.done
}

// Done is closed when the subscription stops delivering, either because it
// was cancelled or because the live query failed.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Err returns the error that ended the live query, or nil after a cancel.
func (s *Subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Subscription) finish(err error) {
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	s.cancel()
	close(s.done)
}
