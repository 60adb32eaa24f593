package bot

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_CreatesSessionOnFirstContact(t *testing.T) {
	registry := NewRegistry()

	registry.With("5511999990000", func(s *Session) {
		assert.Equal(t, StateAnonymous, s.State)
		assert.Equal(t, "5511999990000", s.Phone)
	})
	assert.Equal(t, 1, registry.Len())
}

func TestRegistry_SerializesPerKey(t *testing.T) {
	registry := NewRegistry()

	const messages = 100
	counter := 0

	var wg sync.WaitGroup
	for range messages {
		wg.Add(1)
		go func() {
			defer wg.Done()
			registry.With("5511999990000", func(s *Session) {
				// A data race here would trip the race detector; the lost
				// updates would also break the count.
				counter++
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, messages, counter)
	assert.Equal(t, 1, registry.Len())
}

func TestRegistry_DistinctKeysInParallel(t *testing.T) {
	registry := NewRegistry()

	release := make(chan struct{})
	entered := make(chan struct{})

	go registry.With("111111111111", func(*Session) {
		close(entered)
		<-release
	})

	<-entered

	// A second customer must not wait behind the first one's lock.
	done := make(chan struct{})
	go registry.With("222222222222", func(*Session) {
		close(done)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("distinct keys blocked each other")
	}
	close(release)
}

func TestRegistry_CloseRemovesSession(t *testing.T) {
	registry := NewRegistry()

	registry.With("5511999990000", func(s *Session) {
		s.Close()
	})
	assert.Equal(t, 0, registry.Len())
}

func TestRegistry_SweepEvictsIdleOnly(t *testing.T) {
	registry := NewRegistry()

	registry.With("111111111111", func(s *Session) {
		s.LastSeen = time.Now().Add(-time.Hour)
	})
	registry.With("222222222222", func(*Session) {})

	evicted := registry.Sweep(30 * time.Minute)
	assert.Equal(t, 1, evicted)
	require.Equal(t, 1, registry.Len())

	// The surviving session is the fresh one.
	registry.With("222222222222", func(s *Session) {
		assert.Equal(t, StateAnonymous, s.State)
	})
}

func TestRegistry_SweepDisabled(t *testing.T) {
	registry := NewRegistry()
	registry.With("111111111111", func(s *Session) {
		s.LastSeen = time.Now().Add(-time.Hour)
	})

	assert.Equal(t, 0, registry.Sweep(0))
	assert.Equal(t, 1, registry.Len())
}
