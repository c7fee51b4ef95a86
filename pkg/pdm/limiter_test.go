package pdm

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestClientLimiters_Basic(t *testing.T) {
	store := NewClientLimiters(1, 2)

	limiter := store.Get("10.0.0.1")
	if limiter == nil {
		t.Fatal("expected limiter, got nil")
	}
	assert.EqualValues(t, 1, limiter.Limit())
	assert.Equal(t, 2, limiter.Burst())
	assert.Same(t, limiter, store.Get("10.0.0.1"))

	assert.True(t, store.Allow("10.0.0.2"))
	assert.True(t, store.Allow("10.0.0.2"))
	assert.False(t, store.Allow("10.0.0.2"))
}

func TestClientLimiters_SetRate(t *testing.T) {
	store := NewClientLimiters(1, 2)

	store.SetRate("benchmark", 5, 10)
	limiter := store.Get("benchmark")
	assert.EqualValues(t, 5, limiter.Limit())
	assert.Equal(t, 10, limiter.Burst())
}

func TestClientLimiters_Sweep(t *testing.T) {
	store := NewClientLimiters(1, 2)
	now := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Get("idle")
	store.SetRate("pinned", 5, 5)
	now = now.Add(5 * time.Minute)
	store.Get("active")
	now = now.Add(6 * time.Minute)

	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 2, store.Len())
	assert.Equal(t, 0, store.Sweep())
}

func TestClientLimiters_Concurrency(t *testing.T) {
	store := NewClientLimiters(10, 5)
	clientID := uuid.NewString()

	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if store.Get(clientID) == nil {
				t.Error("expected limiter, got nil")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, store.Len())
}
