package storage

import (
	"context"
	"sync"
)

// Memory keeps documents in process memory. It backs tests and the
// "memory" store driver.
type Memory struct {
	mu   sync.RWMutex
	docs map[string]map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{docs: make(map[string]map[string][]byte)}
}

func (m *Memory) Collection(name string) Collection {
	return &memoryCollection{parent: m, name: name}
}

type memoryCollection struct {
	parent *Memory
	name   string
}

func (c *memoryCollection) FindOne(ctx context.Context, id string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.parent.mu.RLock()
	defer c.parent.mu.RUnlock()

	doc, ok := c.parent.docs[c.name][id]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), doc...), nil
}

func (c *memoryCollection) ReplaceOne(ctx context.Context, id string, doc []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.parent.mu.Lock()
	defer c.parent.mu.Unlock()

	if c.parent.docs[c.name] == nil {
		c.parent.docs[c.name] = make(map[string][]byte)
	}
	c.parent.docs[c.name][id] = append([]byte(nil), doc...)
	return nil
}
