// Package store reads dashboard documents from the remote document store
// and exposes a push subscription to their changes. The store is Redis: the
// document body is JSON at a well-known key, and change notifications arrive
// on a pub/sub channel derived from the key. This system never writes.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pulsedash/pulse/pkg/domain"
)

const changeChannelSuffix = ":updates"

var appIDSanitizer = strings.NewReplacer("/", "_", ".", "_")

// DocPath returns the well-known dashboard document path for an app ID.
// Path separators and dots in the ID are replaced so any identifier maps to
// a single flat key.
func DocPath(appID string) string {
	return fmt.Sprintf("/artifacts/%s/public/data/dashboard/current_data", appIDSanitizer.Replace(appID))
}

// ChangeChannel returns the pub/sub channel carrying change notifications
// for the document at path.
func ChangeChannel(path string) string {
	return path + changeChannelSuffix
}

// backend is the minimal surface the client needs from the remote store:
// point reads and raw push subscriptions. Production uses Redis; tests swap
// in a fake to script snapshots and notifications.
type backend interface {
	read(ctx context.Context, key string) (value string, exists bool, err error)
	subscribe(ctx context.Context, channel string) (handle, error)
	close() error
}

// handle is one live raw push subscription.
type handle interface {
	notifications() <-chan struct{}
	close() error
}

// Client reads dashboard documents and opens live subscriptions to them.
type Client struct {
	backend backend
	log     *zap.Logger
}

// New builds a client from a redis:// URL. The connection is lazy: a store
// that is down surfaces through the subscription, not here.
func New(storeURL string, log *zap.Logger) (*Client, error) {
	opts, err := redis.ParseURL(storeURL)
	if err != nil {
		return nil, fmt.Errorf("store.New: parse store URL: %w", err)
	}
	return &Client{backend: &redisBackend{rdb: redis.NewClient(opts)}, log: log}, nil
}

// Fetch reads the document at path. A missing document yields the canonical
// empty body rather than an error, and every snapshot is normalized before
// it is returned.
func (c *Client) Fetch(ctx context.Context, path string) (domain.Document, error) {
	raw, exists, err := c.backend.read(ctx, path)
	if err != nil {
		return domain.Document{}, fmt.Errorf("store.Fetch: %w", err)
	}
	if !exists {
		return domain.EmptyDocument(), nil
	}

	var doc domain.Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return domain.Document{}, fmt.Errorf("store.Fetch: decode document: %w", err)
	}
	doc.Normalize()
	return doc, nil
}

// Close releases the underlying store connection.
func (c *Client) Close() error {
	return c.backend.close()
}

// redisBackend implements backend against a live Redis connection.
type redisBackend struct {
	rdb *redis.Client
}

func (b *redisBackend) read(ctx context.Context, key string) (string, bool, error) {
	val, err := b.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (b *redisBackend) subscribe(ctx context.Context, channel string) (handle, error) {
	ps := b.rdb.Subscribe(ctx, channel)
	// Confirm the subscription up front so a refused or unreachable store
	// surfaces as a subscription error instead of a silent dead feed.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, err
	}

	notif := make(chan struct{}, 1)
	go func() {
		defer close(notif)
		for range ps.Channel() {
			// Coalesce bursts; every signal triggers a full re-read anyway.
			select {
			case notif <- struct{}{}:
			default:
			}
		}
	}()
	return &redisHandle{ps: ps, notif: notif}, nil
}

func (b *redisBackend) close() error {
	return b.rdb.Close()
}

type redisHandle struct {
	ps    *redis.PubSub
	notif chan struct{}
}

func (h *redisHandle) notifications() <-chan struct{} { return h.notif }

func (h *redisHandle) close() error { return h.ps.Close() }
