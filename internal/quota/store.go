package quota

import (
	"context"
	"sync"
)

// Store persists the quota matrix per scholarship code.
type Store interface {
	// Matrix returns a snapshot; an unconfigured code yields an empty
	// matrix, never an error.
	Matrix(ctx context.Context, scholarshipCode string) (Matrix, error)
	PutCell(ctx context.Context, scholarshipCode, subType, college string, c Cell) error
	// IncrementUsed consumes one slot. Cells missing a configured total
	// are created on the fly so over-allocation stays visible.
	IncrementUsed(ctx context.Context, scholarshipCode, subType, college string) error
}

type memoryStore struct {
	mu    sync.RWMutex
	cells map[string]map[string]map[string]Cell // code -> sub-type -> college
}

func NewMemoryStore() Store {
	return &memoryStore{cells: map[string]map[string]map[string]Cell{}}
}

func (m *memoryStore) Matrix(_ context.Context, code string) (Matrix, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := Matrix{PhdQuotas: map[string]map[string]Cell{}}
	for subType, colleges := range m.cells[code] {
		row := map[string]Cell{}
		for college, c := range colleges {
			row[college] = c
		}
		out.PhdQuotas[subType] = row
	}
	return out, nil
}

func (m *memoryStore) PutCell(_ context.Context, code, subType, college string, c Cell) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set(code, subType, college, c)
	return nil
}

func (m *memoryStore) IncrementUsed(_ context.Context, code, subType, college string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.cells[code][subType][college]
	c.UsedQuota++
	m.set(code, subType, college, c)
	return nil
}

func (m *memoryStore) set(code, subType, college string, c Cell) {
	if m.cells[code] == nil {
		m.cells[code] = map[string]map[string]Cell{}
	}
	if m.cells[code][subType] == nil {
		m.cells[code][subType] = map[string]Cell{}
	}
	m.cells[code][subType][college] = c
}
