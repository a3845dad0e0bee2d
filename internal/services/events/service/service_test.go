package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	perr "caseline/internal/platform/errors"
	kit "caseline/internal/platform/testkit"
	"caseline/internal/services/events/domain"
)

type memRepo struct {
	mu      sync.Mutex
	batches [][]domain.Event
	recent  []domain.Event
	err     error
}

func (m *memRepo) Migrate(context.Context) error { return nil }

func (m *memRepo) Append(_ context.Context, evs []domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batches = append(m.batches, append([]domain.Event(nil), evs...))
	return nil
}

func (m *memRepo) Recent(context.Context, string, string, int) ([]domain.Event, error) {
	return m.recent, m.err
}

func (m *memRepo) total() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, b := range m.batches {
		n += len(b)
	}
	return n
}

var t0 = time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

func TestRecorderFlushesOnBatchSize(t *testing.T) {
	repo := &memRepo{}
	rec := NewRecorder(repo, Config{Buffer: 16, Batch: 3, FlushEvery: time.Hour}, kit.Clock(t0))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- rec.Run(ctx) }()

	for i := 0; i < 3; i++ {
		rec.Emit(ctx, domain.Event{Kind: domain.KindUnitRecorded, OrderID: "o1"})
	}
	kit.Eventually(t, time.Second, func() bool { return repo.total() == 3 })

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("run = %v", err)
	}
	if at := repo.batches[0][0].At; !at.Equal(t0) {
		t.Fatalf("event time = %v", at)
	}
}

func TestRecorderFlushesOnTick(t *testing.T) {
	repo := &memRepo{}
	rec := NewRecorder(repo, Config{Buffer: 16, Batch: 10, FlushEvery: 10 * time.Millisecond}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = rec.Run(ctx) }()

	rec.Emit(ctx, domain.Event{Kind: domain.KindCaseMinted})
	kit.Eventually(t, time.Second, func() bool { return repo.total() == 1 })
}

func TestRecorderDrainsOnStop(t *testing.T) {
	repo := &memRepo{}
	rec := NewRecorder(repo, Config{Buffer: 8, Batch: 8, FlushEvery: time.Hour}, nil)
	for i := 0; i < 5; i++ {
		rec.Emit(context.Background(), domain.Event{Kind: domain.KindCaseDestroyed})
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = rec.Run(ctx)
	if repo.total() != 5 {
		t.Fatalf("flushed %d, want 5", repo.total())
	}
}

func TestRecorderDropsWhenFull(t *testing.T) {
	rec := NewRecorder(&memRepo{}, Config{Buffer: 2}, nil)
	for i := 0; i < 5; i++ {
		rec.Emit(context.Background(), domain.Event{})
	}
	if rec.Dropped() != 3 {
		t.Fatalf("dropped = %d", rec.Dropped())
	}
}

func TestRecent(t *testing.T) {
	repo := &memRepo{recent: []domain.Event{{Kind: domain.KindCaseMinted}}}
	rec := NewRecorder(repo, Config{}, nil)
	if _, err := rec.Recent(context.Background(), "org1", "", 10); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("missing order: %v", err)
	}
	evs, err := rec.Recent(context.Background(), "org1", "o1", 10)
	if err != nil || len(evs) != 1 {
		t.Fatalf("recent = %v, %v", evs, err)
	}
	repo.err = errors.New("down")
	if _, err := rec.Recent(context.Background(), "org1", "o1", 10); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("repo failure: %v", err)
	}
}
