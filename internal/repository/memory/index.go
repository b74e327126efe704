// Package memory - хранилища в памяти процесса для STORAGE_BACKEND=memory и тестов
package memory

import (
	"context"
	"maps"
	"sort"
	"sync"

	"github.com/shenikar/emergency_geo/internal/models"
	"github.com/shenikar/emergency_geo/internal/service"
)

type indexKey struct {
	geohash  string
	entityID string
}

func (k indexKey) less(o indexKey) bool {
	if k.geohash == o.geohash {
		return k.entityID < o.entityID
	}
	return k.geohash < o.geohash
}

// Index - упорядоченный по geohash индекс
type Index struct {
	mu      sync.RWMutex
	keys    []indexKey
	entries map[string]*models.IndexEntry
}

func NewIndex() *Index {
	return &Index{entries: make(map[string]*models.IndexEntry)}
}

var _ service.IndexStore = (*Index)(nil)

// Scan возвращает записи с geohash в [start, end) в порядке ключей
func (i *Index) Scan(ctx context.Context, start, end string) ([]*models.IndexEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	pos := sort.Search(len(i.keys), func(n int) bool { return i.keys[n].geohash >= start })
	out := make([]*models.IndexEntry, 0)
	for ; pos < len(i.keys) && i.keys[pos].geohash < end; pos++ {
		out = append(out, cloneEntry(i.entries[i.keys[pos].entityID]))
	}
	return out, nil
}

// Put вставляет запись или перемещает существующую
func (i *Index) Put(ctx context.Context, entry *models.IndexEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if old, ok := i.entries[entry.EntityID]; ok {
		i.deleteKey(indexKey{geohash: old.Geohash, entityID: old.EntityID})
	}

	key := indexKey{geohash: entry.Geohash, entityID: entry.EntityID}
	pos := sort.Search(len(i.keys), func(n int) bool { return !i.keys[n].less(key) })
	i.keys = append(i.keys, indexKey{})
	copy(i.keys[pos+1:], i.keys[pos:])
	i.keys[pos] = key
	i.entries[entry.EntityID] = cloneEntry(entry)
	return nil
}

// Remove удаляет запись сущности
func (i *Index) Remove(ctx context.Context, entityID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	old, ok := i.entries[entityID]
	if !ok {
		return service.ErrEntryNotFound
	}
	i.deleteKey(indexKey{geohash: old.Geohash, entityID: entityID})
	delete(i.entries, entityID)
	return nil
}

// Len - число записей в индексе
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.entries)
}

func (i *Index) deleteKey(key indexKey) {
	pos := sort.Search(len(i.keys), func(n int) bool { return !i.keys[n].less(key) })
	if pos < len(i.keys) && i.keys[pos] == key {
		i.keys = append(i.keys[:pos], i.keys[pos+1:]...)
	}
}

func cloneEntry(e *models.IndexEntry) *models.IndexEntry {
	c := *e
	c.Payload = maps.Clone(e.Payload)
	return &c
}
