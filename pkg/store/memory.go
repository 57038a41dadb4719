package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// NewMemory returns a journal that lives only as long as the process.
func NewMemory() *Journal {
	return newJournal(StorageMemory, &memoryBackend{docs: make(map[Kind]map[string][]byte)})
}

type memoryBackend struct {
	mu   sync.Mutex
	docs map[Kind]map[string][]byte
}

func (m *memoryBackend) readAll(ctx context.Context, kind Kind) ([][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.docs[kind]))
	for id := range m.docs[kind] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	all := make([][]byte, 0, len(ids))
	for _, id := range ids {
		all = append(all, append([]byte(nil), m.docs[kind][id]...))
	}
	return all, nil
}

func (m *memoryBackend) write(ctx context.Context, kind Kind, id string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.docs[kind] == nil {
		m.docs[kind] = make(map[string][]byte)
	}
	m.docs[kind][id] = append([]byte(nil), data...)
	return nil
}

func (m *memoryBackend) erase(ctx context.Context, kind Kind, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[kind][id]; !ok {
		return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
	}
	delete(m.docs[kind], id)
	return nil
}

func (m *memoryBackend) close() error {
	return nil
}
