package memory

import (
	"context"
	"sync"

	"sheetstore/domain/core"
	"sheetstore/ports"
)

// Store is an insertion-ordered in-memory DocumentStore. It backs unit
// tests and the importer's dry-run mode. Query iterates documents in
// insertion order, matching what a scan of an untouched collection
// yields.
type Store struct {
	mu    sync.RWMutex
	order []string
	docs  map[string]ports.Document
}

func New() *Store {
	return &Store{docs: make(map[string]ports.Document)}
}

func (s *Store) Get(ctx context.Context, id string) (ports.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, core.NewNotFoundError("document", id)
	}
	return cloneDoc(doc), nil
}

func (s *Store) Set(ctx context.Context, id string, doc ports.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		s.order = append(s.order, id)
	}
	s.docs[id] = cloneDoc(doc)
	return nil
}

func (s *Store) Merge(ctx context.Context, id string, fields, defaults ports.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		doc = cloneDoc(defaults)
		s.order = append(s.order, id)
	}
	for k, v := range fields {
		doc[k] = v
	}
	s.docs[id] = doc
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return nil
	}
	delete(s.docs, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) Query(ctx context.Context) ([]ports.Stored, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ports.Stored, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, ports.Stored{ID: id, Doc: cloneDoc(s.docs[id])})
	}
	return out, nil
}

// cloneDoc copies the top-level map so callers cannot mutate stored
// state through a returned document.
func cloneDoc(doc ports.Document) ports.Document {
	out := make(ports.Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
