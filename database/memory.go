package database

import (
	"context"
	"reflect"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-process DocumentStore. It backs local development and
// the repository tests; live queries are re-evaluated after every write to
// their collection.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]any
	watchers    map[string]map[int]chan struct{}
	nextWatcher int
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]map[string]any),
		watchers:    make(map[string]map[int]chan struct{}),
	}
}

func (s *MemoryStore) GetAll(ctx context.Context, collection string) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.query(collection, Filter{}), nil
}

func (s *MemoryStore) Find(ctx context.Context, collection string, filter Filter) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.query(collection, filter), nil
}

func (s *MemoryStore) GetOne(ctx context.Context, collection, id string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.collections[collection][id]
	if !ok {
		return nil, ErrDocumentNotFound
	}
	return &Document{ID: id, Data: copyFields(data)}, nil
}

func (s *MemoryStore) Create(ctx context.Context, collection string, fields map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id := uuid.NewString()
	s.mu.Lock()
	s.collection(collection)[id] = copyFields(fields)
	s.mu.Unlock()
	s.notify(collection)
	return id, nil
}

func (s *MemoryStore) Set(ctx context.Context, collection, id string, fields map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.collection(collection)[id] = copyFields(fields)
	s.mu.Unlock()
	s.notify(collection)
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	data, ok := s.collections[collection][id]
	if !ok {
		s.mu.Unlock()
		return ErrDocumentNotFound
	}
	for k, v := range fields {
		data[k] = v
	}
	s.mu.Unlock()
	s.notify(collection)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	_, existed := s.collections[collection][id]
	delete(s.collections[collection], id)
	s.mu.Unlock()
	if existed {
		s.notify(collection)
	}
	return nil
}

func (s *MemoryStore) Subscribe(ctx context.Context, collection string, filter Filter, fn SnapshotFunc) (*Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sub, subCtx := newSubscription(ctx)

	// Buffered so writers never block; pending notifications coalesce.
	notify := make(chan struct{}, 1)
	notify <- struct{}{}

	s.mu.Lock()
	if s.watchers[collection] == nil {
		s.watchers[collection] = make(map[int]chan struct{})
	}
	key := s.nextWatcher
	s.nextWatcher++
	s.watchers[collection][key] = notify
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.watchers[collection], key)
			s.mu.Unlock()
			sub.finish(subCtx.Err())
		}()
		for {
			select {
			case <-subCtx.Done():
				return
			case <-notify:
				docs := s.query(collection, filter)
				if subCtx.Err() != nil {
					return
				}
				fn(subCtx, docs)
			}
		}
	}()
	return sub, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryStore) Close() error {
	return nil
}

// collection must be called with s.mu held for writing.
func (s *MemoryStore) collection(name string) map[string]map[string]any {
	c, ok := s.collections[name]
	if !ok {
		c = make(map[string]map[string]any)
		s.collections[name] = c
	}
	return c
}

func (s *MemoryStore) query(collection string, filter Filter) []Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]Document, 0, len(s.collections[collection]))
	for id, data := range s.collections[collection] {
		if filter.Field != "" && !reflect.DeepEqual(data[filter.Field], filter.Value) {
			continue
		}
		docs = append(docs, Document{ID: id, Data: copyFields(data)})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs
}

func (s *MemoryStore) notify(collection string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.watchers[collection] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
