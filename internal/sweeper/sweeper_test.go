package sweeper

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whisperwall/backend/internal/model"
	"gorm.io/gorm"
)

// memStore applies the same conditional bulk update the SQL layer does:
// created_at < cutoff AND deleted_at IS NULL.
type memStore struct {
	mu       sync.Mutex
	whispers []*model.Whisper
	sweeps   int
	failWith error
}

func (m *memStore) Create(_ context.Context, w *model.Whisper) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.whispers = append(m.whispers, w)
	return nil
}

func (m *memStore) FindLiveByID(_ context.Context, id uint64) (*model.Whisper, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.whispers {
		if w.ID == id && !w.DeletedAt.Valid {
			return w, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memStore) ListLive(_ context.Context, topic model.Topic) ([]model.Whisper, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Whisper
	for _, w := range m.whispers {
		if w.DeletedAt.Valid {
			continue
		}
		if topic != "" && w.Topic != topic {
			continue
		}
		out = append(out, *w)
	}
	return out, nil
}

func (m *memStore) SoftDeleteExpired(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweeps++
	if m.failWith != nil {
		return 0, m.failWith
	}
	var n int64
	now := time.Now()
	for _, w := range m.whispers {
		if !w.DeletedAt.Valid && w.CreatedAt.Before(cutoff) {
			w.DeletedAt = gorm.DeletedAt{Time: now, Valid: true}
			n++
		}
	}
	return n, nil
}

func (m *memStore) SetDB(*gorm.DB) {}

func (m *memStore) sweepCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sweeps
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSweepThreshold(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := &memStore{}
	_ = store.Create(context.Background(), &model.Whisper{ID: 1, Topic: model.TopicLife, CreatedAt: now.Add(-49 * time.Hour)})
	_ = store.Create(context.Background(), &model.Whisper{ID: 2, Topic: model.TopicLife, CreatedAt: now.Add(-47 * time.Hour)})

	s := New(store, 48*time.Hour, time.Hour, quietLogger())
	s.now = func() time.Time { return now }

	n, err := s.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = store.FindLiveByID(context.Background(), 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = store.FindLiveByID(context.Background(), 2)
	assert.NoError(t, err)
}

func TestSweepIdempotent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := &memStore{}
	_ = store.Create(context.Background(), &model.Whisper{ID: 1, Topic: model.TopicLove, CreatedAt: now.Add(-72 * time.Hour)})

	s := New(store, 48*time.Hour, time.Hour, quietLogger())
	s.now = func() time.Time { return now }

	n, err := s.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = s.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), n, "second sweep must not re-mark rows")
}

func TestSweepBoundaryIsStrict(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := &memStore{}
	// Exactly at the cutoff: created_at < cutoff is false, stays live.
	_ = store.Create(context.Background(), &model.Whisper{ID: 1, Topic: model.TopicAdvice, CreatedAt: now.Add(-48 * time.Hour)})

	s := New(store, 48*time.Hour, time.Hour, quietLogger())
	s.now = func() time.Time { return now }

	n, err := s.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestRunSweepsAtStartAndOnTick(t *testing.T) {
	store := &memStore{}
	s := New(store, 48*time.Hour, 5*time.Millisecond, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for store.sweepCount() < 3 {
		select {
		case <-deadline:
			t.Fatalf("expected >=3 sweeps, got %d", store.sweepCount())
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestRunContinuesAfterFailure(t *testing.T) {
	store := &memStore{failWith: errors.New("connection refused")}
	s := New(store, 48*time.Hour, 5*time.Millisecond, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for store.sweepCount() < 2 {
		select {
		case <-deadline:
			t.Fatalf("expected sweep to retry after failure, got %d attempts", store.sweepCount())
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	<-done
}
