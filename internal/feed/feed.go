// Package feed is the live-update collaborator: record create/update/delete
// events published by each API instance over a Redis channel and applied to
// every other instance's in-memory store, mirroring a local mutation.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/skrm-sewa/duty-tracker/backend/internal/domain"
	"github.com/skrm-sewa/duty-tracker/backend/internal/dutycore"
)

type Feed struct {
	rdb     *redis.Client
	channel string
	origin  string
	store   *dutycore.Store
}

// New creates a feed bound to a pub/sub channel. origin identifies this
// instance; events carrying it are skipped on receipt so local mutations are
// not applied twice.
func New(rdb *redis.Client, channel string, origin string, store *dutycore.Store) *Feed {
	return &Feed{
		rdb:     rdb,
		channel: channel,
		origin:  origin,
		store:   store,
	}
}

// Publish announces a record mutation to the other instances. Delivery is
// best-effort: the local store and the database are already updated by the
// time this is called.
func (f *Feed) Publish(ctx context.Context, ev domain.ChangeEvent) error {
	ev.Origin = f.origin

	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	return f.rdb.Publish(ctx, f.channel, payload).Err()
}

// Run subscribes to the channel and applies incoming events to the store
// until ctx is cancelled. Events for sessions not loaded locally are
// ignored; a completed session rejects changes just like a local mutation.
func (f *Feed) Run(ctx context.Context) error {
	sub := f.rdb.Subscribe(ctx, f.channel)
	defer sub.Close()

	// fail fast if the subscription could not be established
	if _, err := sub.Receive(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-sub.Channel():
			if !ok {
				return nil
			}
			f.apply(msg.Payload)
		}
	}
}

func (f *Feed) apply(payload string) {
	ev := domain.ChangeEvent{}
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		slog.Error("failed to decode change event", "error", err)
		return
	}

	if ev.Origin == f.origin {
		return
	}

	if err := f.store.ApplyExternalChange(ev); err != nil {
		switch {
		case errors.Is(err, dutycore.ErrNotFound):
			// the session is not loaded on this instance; nothing to sync
		case errors.Is(err, dutycore.ErrSessionClosed):
			slog.Warn("change event for completed session dropped", "recordID", ev.RecordID)
		default:
			slog.Error("failed to apply change event", "recordID", ev.RecordID, "error", err)
		}
	}
}
