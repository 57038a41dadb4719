// Package store persists spreads and entries. Every backend stores JSON
// documents keyed by entity kind and id.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"tableflip.dev/spreads/pkg/entry"
	"tableflip.dev/spreads/pkg/spread"
)

// ErrNotFound is returned when deleting a record that does not exist.
var ErrNotFound = errors.New("store: not found")

// ErrWatchUnsupported is returned by Watch on backends without change
// notifications.
var ErrWatchUnsupported = errors.New("store: backend does not support watch")

// Kind names one entity collection.
type Kind string

const (
	KindSpread Kind = "spread"
	KindTask   Kind = "task"
	KindNote   Kind = "note"
	KindEvent  Kind = "event"
)

// Kinds lists every collection.
func Kinds() []Kind {
	return []Kind{KindSpread, KindTask, KindNote, KindEvent}
}

// Repository is the persistence contract for one entity type.
type Repository[T any] interface {
	GetAll(ctx context.Context) ([]T, error)
	Save(ctx context.Context, v T) error
	Delete(ctx context.Context, v T) error
}

// backend is a keyed document store shared by every repository of a journal.
type backend interface {
	readAll(ctx context.Context, kind Kind) ([][]byte, error)
	write(ctx context.Context, kind Kind, id string, data []byte) error
	erase(ctx context.Context, kind Kind, id string) error
	close() error
}

type watcher interface {
	watch(ctx context.Context) (<-chan Event, error)
}

// Journal bundles the four repositories over one backend.
type Journal struct {
	Spreads Repository[*spread.Spread]
	Tasks   Repository[*entry.Task]
	Notes   Repository[*entry.Note]
	Events  Repository[*entry.Event]

	name string
	b    backend
}

func newJournal(name string, b backend) *Journal {
	return &Journal{
		Spreads: &repository[*spread.Spread]{b: b, kind: KindSpread, id: func(s *spread.Spread) string { return s.ID }},
		Tasks:   &repository[*entry.Task]{b: b, kind: KindTask, id: func(t *entry.Task) string { return t.ID }},
		Notes:   &repository[*entry.Note]{b: b, kind: KindNote, id: func(n *entry.Note) string { return n.ID }},
		Events:  &repository[*entry.Event]{b: b, kind: KindEvent, id: func(e *entry.Event) string { return e.ID }},
		name:    name,
		b:       b,
	}
}

// Backend names the storage backend in use.
func (j *Journal) Backend() string {
	return j.name
}

// Close releases the backend.
func (j *Journal) Close() error {
	if j.b == nil {
		return nil
	}
	return j.b.close()
}

// Watch streams change notifications until ctx is done.
func (j *Journal) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := j.b.(watcher)
	if !ok {
		return nil, ErrWatchUnsupported
	}
	return w.watch(ctx)
}

// Open builds the journal selected by cfg.
func Open(cfg *Config) (*Journal, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	switch cfg.Storage {
	case StorageDiskv, "":
		return OpenDiskv(cfg.BasePath())
	case StorageSQLite:
		return OpenSQLite(cfg.SQLitePath())
	case StorageMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("store: unknown storage %q", cfg.Storage)
	}
}

type repository[T any] struct {
	b    backend
	kind Kind
	id   func(T) string
}

func (r *repository[T]) GetAll(ctx context.Context) ([]T, error) {
	docs, err := r.b.readAll(ctx, r.kind)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", r.kind, err)
	}
	all := make([]T, 0, len(docs))
	for _, data := range docs {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("store: decode %s: %w", r.kind, err)
		}
		all = append(all, v)
	}
	return all, nil
}

func (r *repository[T]) Save(ctx context.Context, v T) error {
	id := r.id(v)
	if id == "" {
		return fmt.Errorf("store: %s without id", r.kind)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %s %s: %w", r.kind, id, err)
	}
	return r.b.write(ctx, r.kind, id, data)
}

func (r *repository[T]) Delete(ctx context.Context, v T) error {
	return r.b.erase(ctx, r.kind, r.id(v))
}
