package store

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// OpenDiskv opens a journal stored as one JSON file per record under
// basePath/<kind>/<id>.
func OpenDiskv(basePath string) (*Journal, error) {
	if basePath == "" {
		return nil, fmt.Errorf("store: diskv base path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	d := diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	})
	return newJournal(StorageDiskv, &diskvBackend{d: d, basePath: basePath}), nil
}

type diskvBackend struct {
	d        *diskv.Diskv
	basePath string
}

func (p *diskvBackend) readAll(ctx context.Context, kind Kind) ([][]byte, error) {
	all := make([][]byte, 0)
	for key := range p.d.KeysPrefix(string(kind)+"-", ctx.Done()) {
		val, err := p.d.Read(key)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		all = append(all, val)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return all, nil
}

func (p *diskvBackend) write(ctx context.Context, kind Kind, id string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.d.Write(toKey(kind, id), data)
}

func (p *diskvBackend) erase(ctx context.Context, kind Kind, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := toKey(kind, id)
	if !p.d.Has(key) {
		return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
	}
	return p.d.Erase(key)
}

func (p *diskvBackend) close() error {
	return nil
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `kind-id`
func toKey(kind Kind, id string) string {
	return fmt.Sprintf("%s-%s", kind, id)
}
