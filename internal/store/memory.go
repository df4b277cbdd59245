package store

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// MemoryStore is an in-process tree backend with the same path semantics as
// the Realtime Database. It backs tests and local development. Values are
// normalized through JSON so reads return detached copies, never aliases of
// stored structs.
type MemoryStore struct {
	mu   sync.RWMutex
	root map[string]any
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{root: make(map[string]any)}
}

func (s *MemoryStore) Get(ctx context.Context, path string, v any) error {
	s.mu.RLock()
	node := s.lookup(splitPath(path))
	s.mu.RUnlock()
	if node == nil {
		return nil
	}
	return remarshal(node, v)
}

func (s *MemoryStore) Set(ctx context.Context, path string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setLocked(splitPath(path), v)
}

func (s *MemoryStore) MultiUpdate(ctx context.Context, updates map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// One lock span: readers observe either none or all of the batch.
	for path, v := range updates {
		if err := s.setLocked(splitPath(path), v); err != nil {
			return err
		}
	}
	return nil
}

func (s *MemoryStore) Query(ctx context.Context, path, field string, value any, out any) error {
	want, err := normalize(value)
	if err != nil {
		return err
	}

	s.mu.RLock()
	node := s.lookup(splitPath(path))
	matched := make(map[string]any)
	if children, ok := node.(map[string]any); ok {
		for key, child := range children {
			record, ok := child.(map[string]any)
			if !ok {
				continue
			}
			if reflect.DeepEqual(record[field], want) {
				matched[key] = child
			}
		}
	}
	s.mu.RUnlock()

	return remarshal(matched, out)
}

func (s *MemoryStore) CreateIfAbsent(ctx context.Context, path string, v any) error {
	segments := splitPath(path)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lookup(segments) != nil {
		return ErrAlreadyExists
	}
	return s.setLocked(segments, v)
}

// lookup walks the tree and returns the node at the path, or nil.
// Callers must hold at least the read lock.
func (s *MemoryStore) lookup(segments []string) any {
	var node any = s.root
	for _, seg := range segments {
		m, ok := node.(map[string]any)
		if !ok {
			return nil
		}
		node = m[seg]
		if node == nil {
			return nil
		}
	}
	return node
}

// setLocked writes (or, for nil, deletes) the value at the path. Callers
// must hold the write lock.
func (s *MemoryStore) setLocked(segments []string, v any) error {
	if len(segments) == 0 {
		return fmt.Errorf("empty store path")
	}
	if v == nil {
		deleteNode(s.root, segments)
		return nil
	}

	normalized, err := normalize(v)
	if err != nil {
		return err
	}

	parent := s.root
	for _, seg := range segments[:len(segments)-1] {
		child, ok := parent[seg].(map[string]any)
		if !ok {
			child = make(map[string]any)
			parent[seg] = child
		}
		parent = child
	}
	parent[segments[len(segments)-1]] = normalized
	return nil
}

// deleteNode removes the leaf and prunes any parent maps it leaves empty,
// so a fully-deleted subtree reads back as absent rather than as {}.
func deleteNode(node map[string]any, segments []string) bool {
	if len(segments) == 1 {
		delete(node, segments[0])
		return len(node) == 0
	}
	child, ok := node[segments[0]].(map[string]any)
	if !ok {
		return len(node) == 0
	}
	if deleteNode(child, segments[1:]) {
		delete(node, segments[0])
	}
	return len(node) == 0
}

func splitPath(path string) []string {
	return strings.Split(strings.Trim(path, "/"), "/")
}

// normalize round-trips a value through JSON into generic form, matching
// what the real database would hand back.
func normalize(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func remarshal(node any, v any) error {
	b, err := json.Marshal(node)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
