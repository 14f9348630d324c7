package app

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

// HotelLoader builds a fully restored Hotel from storage.
type HotelLoader func(ctx context.Context) (*Hotel, error)

// LiveHotel publishes read-only Hotels rebuilt from storage. A reload never
// mutates a published Hotel, so readers may share the one Current returns.
type LiveHotel struct {
	load   HotelLoader
	maxAge time.Duration
	now    func() time.Time

	mu       sync.Mutex // serializes reloads
	loadedAt time.Time
	cur      atomic.Pointer[Hotel]
}

// NewLiveHotel loads once and then reloads whenever Current finds the data
// older than maxAge. maxAge <= 0 reloads only on an explicit Reload.
func NewLiveHotel(ctx context.Context, load HotelLoader, maxAge time.Duration, now func() time.Time) (*LiveHotel, error) {
	if now == nil {
		now = time.Now
	}
	l := &LiveHotel{load: load, maxAge: maxAge, now: now}
	if _, err := l.Reload(ctx); err != nil {
		return nil, err
	}
	return l, nil
}

// StaticHotel wraps a Hotel that is never reloaded.
func StaticHotel(h *Hotel) *LiveHotel {
	l := &LiveHotel{now: time.Now}
	l.cur.Store(h)
	return l
}

// Current returns the published Hotel, reloading first when it is stale.
// A failed reload keeps serving the previous data.
func (l *LiveHotel) Current(ctx context.Context) *Hotel {
	if l.load == nil || l.maxAge <= 0 {
		return l.cur.Load()
	}
	l.mu.Lock()
	stale := l.now().Sub(l.loadedAt) >= l.maxAge
	l.mu.Unlock()
	if !stale {
		return l.cur.Load()
	}
	h, err := l.Reload(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("reload failed, serving previous data")
		return l.cur.Load()
	}
	return h
}

// Reload rebuilds the Hotel from storage and publishes it.
func (l *LiveHotel) Reload(ctx context.Context) (*Hotel, error) {
	if l.load == nil {
		return l.cur.Load(), nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	h, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	l.cur.Store(h)
	l.loadedAt = l.now()
	log.Debug().Int("reservations", len(h.Reservations())).Msg("hotel data reloaded")
	return h, nil
}
