package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dareloop/dareloop/internal/models"
)

func TestEnqueueKeepsLatest(t *testing.T) {
	s := New("test:snapshot")

	s.Enqueue(models.SessionSnapshot{CurrentPlayerIndex: 1})
	s.Enqueue(models.SessionSnapshot{CurrentPlayerIndex: 2})
	s.Enqueue(models.SessionSnapshot{CurrentPlayerIndex: 3})

	select {
	case snap := <-s.pending:
		assert.Equal(t, 3, snap.CurrentPlayerIndex, "a waiting snapshot is replaced by the newer one")
	default:
		t.Fatal("expected a queued snapshot")
	}

	select {
	case <-s.pending:
		t.Fatal("only the newest snapshot should be queued")
	default:
	}
}

func TestEnqueueNeverBlocks(t *testing.T) {
	s := New("test:snapshot")

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			s.Enqueue(models.SessionSnapshot{CurrentPlayerIndex: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Enqueue blocked with no writer draining the queue")
	}

	snap := <-s.pending
	require.Equal(t, 999, snap.CurrentPlayerIndex)
}
