package scholarship

import (
	"context"
	"errors"
	"sync"
)

var ErrNotFound = errors.New("scholarship type not found")

// Catalog persists the admin-configured scholarship types and their
// dynamic form schemas.
type Catalog interface {
	PutType(ctx context.Context, t ScholarshipType) error
	GetType(ctx context.Context, code string) (ScholarshipType, error)
	ListTypes(ctx context.Context) ([]ScholarshipType, error)
	PutSchema(ctx context.Context, code string, s FormSchema) error
	// GetSchema returns nil (with no error) when the schema has not been
	// configured yet; callers score progress 0 against a nil schema.
	GetSchema(ctx context.Context, code string) (*FormSchema, error)
}

type memoryCatalog struct {
	mu      sync.RWMutex
	types   map[string]ScholarshipType
	order   []string
	schemas map[string]FormSchema
}

func NewMemoryCatalog() Catalog {
	return &memoryCatalog{
		types:   map[string]ScholarshipType{},
		schemas: map[string]FormSchema{},
	}
}

func (m *memoryCatalog) PutType(_ context.Context, t ScholarshipType) error {
	if t.Code == "" {
		return errors.New("scholarship code required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.types[t.Code]; !ok {
		m.order = append(m.order, t.Code)
	}
	m.types[t.Code] = t
	return nil
}

func (m *memoryCatalog) GetType(_ context.Context, code string) (ScholarshipType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.types[code]
	if !ok {
		return ScholarshipType{}, ErrNotFound
	}
	return t, nil
}

func (m *memoryCatalog) ListTypes(_ context.Context) ([]ScholarshipType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ScholarshipType, 0, len(m.order))
	for _, code := range m.order {
		out = append(out, m.types[code])
	}
	return out, nil
}

func (m *memoryCatalog) PutSchema(_ context.Context, code string, s FormSchema) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.types[code]; !ok {
		return ErrNotFound
	}
	m.schemas[code] = s
	return nil
}

func (m *memoryCatalog) GetSchema(_ context.Context, code string) (*FormSchema, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.schemas[code]
	if !ok {
		return nil, nil
	}
	cp := s
	return &cp, nil
}
