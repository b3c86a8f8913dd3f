package memory

import (
	"context"
	"sync"

	"github.com/hamed0406/uptimealert/internal/domain"
)

// DefaultCapacity is the number of transitions kept when New gets a
// non-positive capacity.
const DefaultCapacity = 100

// Store is a fixed-size ring of transition events. Contents are lost on
// restart.
type Store struct {
	mu     sync.RWMutex
	events []domain.Event
	next   int
	full   bool
}

func New(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{events: make([]domain.Event, capacity)}
}

func (m *Store) Append(ctx context.Context, ev domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[m.next] = ev
	m.next = (m.next + 1) % len(m.events)
	if m.next == 0 {
		m.full = true
	}
	return nil
}

func (m *Store) Recent(ctx context.Context, n int) ([]domain.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	size := m.next
	if m.full {
		size = len(m.events)
	}
	if n <= 0 || n > size {
		n = size
	}
	out := make([]domain.Event, 0, n)
	for i := 1; i <= n; i++ {
		idx := (m.next - i + len(m.events)) % len(m.events)
		out = append(out, m.events[idx])
	}
	return out, nil
}
