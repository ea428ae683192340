package plugins

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_UseLimiter_Concurrent(t *testing.T) {
	p := newSelfHostMode()

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p.UseLimiter(fmt.Sprintf("user%d", i%8), "entry_modify", 4).Allow()
		}(i)
	}
	wg.Wait()
}

func Test_SingleLock(t *testing.T) {
	l := NewSingleLock()
	ctx, cancel := context.WithCancel(context.Background())

	ok, err := l.TryLock(ctx, "reconcile")
	assert.Nil(t, err)
	assert.True(t, ok)

	ok, _ = l.TryLock(ctx, "reconcile")
	assert.False(t, ok)

	cancel()
	assert.Eventually(t, func() bool {
		ok, _ := l.TryLock(context.Background(), "reconcile")
		return ok
	}, time.Second, time.Millisecond*10)
}
