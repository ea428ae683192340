package srv

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type memCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string]string)}
}

func (m *memCache) SetEx(ctx context.Context, key, value string, expiresAt time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memCache) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memCache) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func Test_CalendarView(t *testing.T) {
	cache := newMemCache()
	views := SetupViewSrv(func() Cache { return cache })

	ctx := context.Background()

	_, hit := views.GetCalendar(ctx, "u1")
	assert.False(t, hit)

	views.SetCalendar(ctx, "u1", []string{"2025-06-01", "2025-06-02"})

	dates, hit := views.GetCalendar(ctx, "u1")
	assert.True(t, hit)
	assert.Equal(t, []string{"2025-06-01", "2025-06-02"}, dates)

	_, hit = views.GetCalendar(ctx, "u2")
	assert.False(t, hit)
}

func Test_CalendarView_Invalidate(t *testing.T) {
	cache := newMemCache()
	views := SetupViewSrv(func() Cache { return cache })

	ctx := context.Background()
	views.SetCalendar(ctx, "u1", []string{"2025-06-01"})
	views.Invalidate(CalendarViewKey("u1"), DateViewKey("u1", "2025-06-01"))

	assert.Eventually(t, func() bool {
		_, hit := views.GetCalendar(ctx, "u1")
		return !hit
	}, time.Second, time.Millisecond*10)
}

func Test_CalendarView_BrokenPayload(t *testing.T) {
	cache := newMemCache()
	cache.data[CalendarViewKey("u1")] = "{not json"
	views := SetupViewSrv(func() Cache { return cache })

	_, hit := views.GetCalendar(context.Background(), "u1")
	assert.False(t, hit)
}
