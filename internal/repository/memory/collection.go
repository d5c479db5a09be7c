// Package memory provides in-memory implementations of the repository interfaces.
// Every read and write goes through a clone, so callers never share slices with
// the stored entities.
package memory

import (
	"alcyxob/workout-tracker/internal/repository"
	"sync"

	"github.com/google/uuid"
)

// collection is an insertion-ordered map of entities keyed by uuid.
type collection[T any] struct {
	mu    sync.RWMutex
	items map[uuid.UUID]T
	order []uuid.UUID
	clone func(T) T
}

func newCollection[T any](clone func(T) T) *collection[T] {
	return &collection[T]{
		items: make(map[uuid.UUID]T),
		clone: clone,
	}
}

func (c *collection[T]) insert(id uuid.UUID, item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[id]; exists {
		return repository.ErrDuplicate
	}
	c.items[id] = c.clone(item)
	c.order = append(c.order, id)
	return nil
}

func (c *collection[T]) get(id uuid.UUID) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[id]
	if !ok {
		var zero T
		return zero, repository.ErrNotFound
	}
	return c.clone(item), nil
}

func (c *collection[T]) list() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.clone(c.items[id]))
	}
	return out
}

func (c *collection[T]) replace(id uuid.UUID, item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return repository.ErrNotFound
	}
	c.items[id] = c.clone(item)
	return nil
}

func (c *collection[T]) remove(id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(c.items, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}
