package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/pulsedash/pulse/pkg/domain"
)

// ErrSubscriptionLost marks a push feed that died underneath us. The feed
// stops permanently; recovery is a fresh SubscribeDocument call.
var ErrSubscriptionLost = errors.New("store: subscription lost")

// Event is one emission from a live document subscription: a full snapshot,
// or a terminal error after which nothing further is emitted.
type Event struct {
	Doc domain.Document
	Err error
}

// Subscription is the live feed for one document path. It owns exactly one
// push handle; Close releases it on every exit path, and a caller must Close
// the old subscription before opening a replacement.
type Subscription struct {
	events chan Event
	handle handle
	cancel context.CancelFunc
	once   sync.Once
}

// Events returns the snapshot feed. The channel closes when the
// subscription terminates, whether by Close or by error.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Close tears the subscription down deterministically. Safe to call more
// than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
		if s.handle != nil {
			_ = s.handle.close()
		}
	})
}

// SubscribeDocument opens the push subscription for the document at path.
// The current snapshot is emitted immediately, then a fresh snapshot on
// every change notification. A missing document emits the canonical empty
// body. The first error is emitted once and ends the feed.
func (c *Client) SubscribeDocument(ctx context.Context, path string) (*Subscription, error) {
	h, err := c.backend.subscribe(ctx, ChangeChannel(path))
	if err != nil {
		return nil, fmt.Errorf("store.SubscribeDocument: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		events: make(chan Event, 1),
		handle: h,
		cancel: cancel,
	}
	go sub.run(ctx, c, path)
	return sub, nil
}

func (s *Subscription) run(ctx context.Context, c *Client, path string) {
	defer close(s.events)

	emit := func(ev Event) bool {
		select {
		case s.events <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	doc, err := c.Fetch(ctx, path)
	if err != nil {
		c.log.Error("initial document read failed", zap.String("path", path), zap.Error(err))
		emit(Event{Err: err})
		return
	}
	if !emit(Event{Doc: doc}) {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-s.handle.notifications():
			if !ok {
				if ctx.Err() == nil {
					c.log.Error("document subscription lost", zap.String("path", path))
					emit(Event{Err: ErrSubscriptionLost})
				}
				return
			}
			doc, err := c.Fetch(ctx, path)
			if err != nil {
				c.log.Error("document re-read failed", zap.String("path", path), zap.Error(err))
				emit(Event{Err: err})
				return
			}
			if !emit(Event{Doc: doc}) {
				return
			}
		}
	}
}
