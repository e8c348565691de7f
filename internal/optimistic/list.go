package optimistic

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// TempID returns a local-only identifier for a placeholder item. It is
// replaced by the store-assigned id once the insert confirms.
func TempID() string {
	return "temp-" + uuid.NewString()
}

// List is an append-only optimistic collection, ordered oldest first. The id
// function must yield a stable identifier for any item, placeholder or
// canonical.
type List[T any] struct {
	mu       sync.Mutex
	items    []T
	id       func(T) string
	inFlight bool
}

func NewList[T any](initial []T, id func(T) string) *List[T] {
	items := make([]T, len(initial))
	copy(items, initial)
	return &List[T]{items: items, id: id}
}

// Items returns a copy of the current list.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// locked; returns -1 when absent.
func (l *List[T]) indexOf(id string) int {
	for i, item := range l.items {
		if l.id(item) == id {
			return i
		}
	}
	return -1
}

// Post appends placeholder immediately and swaps in the canonical record the
// commit returns, at the same position, so the visual order never changes.
// On failure the placeholder is removed and the error reported so the caller
// can restore the draft. Posts are serialized: a second call while one is
// outstanding returns ErrInFlight without a commit.
func (l *List[T]) Post(ctx context.Context, placeholder T, commit func(ctx context.Context) (T, error)) error {
	l.mu.Lock()
	if l.inFlight {
		l.mu.Unlock()
		return ErrInFlight
	}
	l.inFlight = true
	l.items = append(l.items, placeholder)
	tempID := l.id(placeholder)
	l.mu.Unlock()

	canonical, err := commit(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.inFlight = false
	idx := l.indexOf(tempID)
	if err != nil {
		if idx >= 0 {
			l.items = append(l.items[:idx], l.items[idx+1:]...)
		}
		return err
	}
	if idx >= 0 {
		l.items[idx] = canonical
	}
	return nil
}

// Delete removes the item immediately. On failure the full prior snapshot is
// restored rather than re-inserting the one item, which stays correct even
// when interleaved deletes changed the list shape in between. A delete of an
// unknown id is a no-op and issues no write.
func (l *List[T]) Delete(ctx context.Context, id string, commit func(ctx context.Context) error) error {
	l.mu.Lock()
	idx := l.indexOf(id)
	if idx < 0 {
		l.mu.Unlock()
		return nil
	}
	snapshot := make([]T, len(l.items))
	copy(snapshot, l.items)
	l.items = append(l.items[:idx], l.items[idx+1:]...)
	l.mu.Unlock()

	if err := commit(ctx); err != nil {
		l.mu.Lock()
		l.items = snapshot
		l.mu.Unlock()
		return err
	}
	return nil
}
