package srv

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/memoirlab/memoir-api/pkg/safe"
)

// Cache is the view cache handed in by the active plugin, redis when
// configured, a noop otherwise.
type Cache interface {
	SetEx(ctx context.Context, key, value string, expiresAt time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

const calendarViewTTL = time.Hour * 12

func CalendarViewKey(userID string) string {
	return fmt.Sprintf("view:calendar:%s", userID)
}

func DateViewKey(userID, date string) string {
	return fmt.Sprintf("view:date:%s:%s", userID, date)
}

// ViewSrv invalidates and primes cached read views. Invalidation is fire and
// forget, a stale view only survives until its ttl.
type ViewSrv struct {
	cache func() Cache
}

func SetupViewSrv(cache func() Cache) *ViewSrv {
	return &ViewSrv{cache: cache}
}

// Invalidate drops the named views. Runs in the background, callers never
// wait on the cache.
func (s *ViewSrv) Invalidate(keys ...string) {
	go safe.Run(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		if err := s.cache().Del(ctx, keys...); err != nil {
			slog.Error("Failed to invalidate views", slog.Any("keys", keys), slog.String("error", err.Error()))
		}
	})
}

// GetCalendar returns the cached marked-dates view, false on miss.
func (s *ViewSrv) GetCalendar(ctx context.Context, userID string) ([]string, bool) {
	raw, err := s.cache().Get(ctx, CalendarViewKey(userID))
	if err != nil || raw == "" {
		return nil, false
	}

	var dates []string
	if err = json.Unmarshal([]byte(raw), &dates); err != nil {
		slog.Warn("Broken calendar view cache", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, false
	}
	return dates, true
}

// SetCalendar primes the marked-dates view. Best effort.
func (s *ViewSrv) SetCalendar(ctx context.Context, userID string, dates []string) {
	raw, err := json.Marshal(dates)
	if err != nil {
		return
	}
	if err = s.cache().SetEx(ctx, CalendarViewKey(userID), string(raw), calendarViewTTL); err != nil {
		slog.Warn("Failed to prime calendar view", slog.String("user_id", userID), slog.String("error", err.Error()))
	}
}
