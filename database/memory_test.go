package database

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	id, err := s.Create(ctx, "trilhas", map[string]any{"trailName": "A", "date": "01/01"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	require.NoError(t, s.Update(ctx, "trilhas", id, map[string]any{"date": "02/01"}))
	doc, err := s.GetOne(ctx, "trilhas", id)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"trailName": "A", "date": "02/01"}, doc.Data)

	// Returned data is a copy.
	doc.Data["trailName"] = "mutated"
	again, err := s.GetOne(ctx, "trilhas", id)
	require.NoError(t, err)
	assert.Equal(t, "A", again.Data["trailName"])

	assert.ErrorIs(t, s.Update(ctx, "trilhas", "missing", map[string]any{"x": 1}), ErrDocumentNotFound)

	require.NoError(t, s.Delete(ctx, "trilhas", id))
	require.NoError(t, s.Delete(ctx, "trilhas", id))
	_, err = s.GetOne(ctx, "trilhas", id)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestMemoryStoreFind(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, "agendamentos", "a", map[string]any{"userId": "u1"}))
	require.NoError(t, s.Set(ctx, "agendamentos", "b", map[string]any{"userId": "u2"}))
	require.NoError(t, s.Set(ctx, "agendamentos", "c", map[string]any{"userId": "u1"}))

	docs, err := s.Find(ctx, "agendamentos", Filter{Field: "userId", Value: "u1"})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].ID)
	assert.Equal(t, "c", docs[1].ID)

	all, err := s.GetAll(ctx, "agendamentos")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

// snapshots collects the sizes of the snapshots delivered to a subscription.
type snapshots struct {
	mu    sync.Mutex
	sizes []int
}

func (s *snapshots) add(_ context.Context, docs []Document) {
	s.mu.Lock()
	s.sizes = append(s.sizes, len(docs))
	s.mu.Unlock()
}

func (s *snapshots) last() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sizes) == 0 {
		return -1
	}
	return s.sizes[len(s.sizes)-1]
}

func (s *snapshots) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sizes)
}

func TestMemoryStoreSubscribe(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, "agendamentos", "a", map[string]any{"userId": "u1"}))

	var got snapshots
	sub, err := s.Subscribe(ctx, "agendamentos", Filter{Field: "userId", Value: "u1"}, got.add)
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return got.last() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, s.Set(ctx, "agendamentos", "b", map[string]any{"userId": "u1"}))
	assert.Eventually(t, func() bool { return got.last() == 2 }, time.Second, 5*time.Millisecond)

	require.NoError(t, s.Delete(ctx, "agendamentos", "a"))
	assert.Eventually(t, func() bool { return got.last() == 1 }, time.Second, 5*time.Millisecond)

	sub.Cancel()
	assert.NoError(t, sub.Err())
	delivered := got.count()

	require.NoError(t, s.Set(ctx, "agendamentos", "c", map[string]any{"userId": "u1"}))
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, delivered, got.count())
}

func TestMemoryStoreSubscriptionEndsWithParent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewMemoryStore()

	sub, err := s.Subscribe(ctx, "trilhas", Filter{}, func(context.Context, []Document) {})
	require.NoError(t, err)
	cancel()

	select {
	case <-sub.Done():
	case <-time.After(time.Second):
		t.Fatal("subscription did not stop with its parent context")
	}
	assert.NoError(t, sub.Err())
}
