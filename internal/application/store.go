package application

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/anud18/scholarship-system-sub000/internal/scholarship"
)

// Store persists applications. Both implementations recompute Progress
// from the live form schema on every mutation and read, so the stored
// value is only the last computed one.
type Store interface {
	CreateDraft(ctx context.Context, userID, college, scholarshipCode string) (Application, error)
	Get(ctx context.Context, id string) (Application, error)
	ListByUser(ctx context.Context, userID string) ([]Application, error)
	ListByStatus(ctx context.Context, status Status) ([]Application, error)
	// SaveForm replaces the draft's field values and terms flag.
	SaveForm(ctx context.Context, id string, values scholarship.FormValues, agreeTerms bool) (Application, error)
	// ToggleSubType applies the selection engine for the draft's
	// scholarship type. Invalid toggles are silent no-ops, mirroring the
	// wizard UI.
	ToggleSubType(ctx context.Context, id, value string) (Application, error)
	// ChangeScholarship retargets a draft and clears its sub-type
	// selection, which would otherwise be stale for the new type.
	ChangeScholarship(ctx context.Context, id, scholarshipCode string) (Application, error)
	AttachFile(ctx context.Context, id, document string, f scholarship.UploadedFile) (Application, error)
	RemoveFile(ctx context.Context, id, document, fileID string) (Application, error)
	// Submit moves a complete draft to submitted. Incomplete drafts
	// (progress below 100) are refused with ErrNotComplete.
	Submit(ctx context.Context, id string) (Application, error)
	SetStatus(ctx context.Context, id string, to Status, reviewer, note string) (Application, error)
}

// refreshProgress recomputes the completion percentage against whatever
// the catalog currently holds for the application's scholarship type. A
// missing type or schema scores 0, same as a wizard whose schema has not
// loaded yet.
func refreshProgress(ctx context.Context, cat scholarship.Catalog, a *Application) {
	var selectable []string
	if t, err := cat.GetType(ctx, a.ScholarshipCode); err == nil {
		selectable = t.SelectableValues()
	}
	schema, err := cat.GetSchema(ctx, a.ScholarshipCode)
	if err != nil {
		schema = nil
	}
	a.Progress = scholarship.ComputeProgress(schema, a.FormValues, a.FileValues, selectable, a.SubTypes, a.AgreeTerms)
}

type memoryStore struct {
	mu      sync.RWMutex
	apps    map[string]Application
	catalog scholarship.Catalog
}

func NewMemoryStore(catalog scholarship.Catalog) Store {
	return &memoryStore{apps: map[string]Application{}, catalog: catalog}
}

func (m *memoryStore) CreateDraft(ctx context.Context, userID, college, scholarshipCode string) (Application, error) {
	if _, err := m.catalog.GetType(ctx, scholarshipCode); err != nil {
		return Application{}, err
	}
	a := Application{
		ID:              uuid.NewString(),
		UserID:          userID,
		College:         college,
		ScholarshipCode: scholarshipCode,
		Status:          StatusDraft,
		SubTypes:        []string{},
		FormValues:      scholarship.FormValues{},
		FileValues:      scholarship.FileValues{},
		CreatedAt:       time.Now().Unix(),
	}
	refreshProgress(ctx, m.catalog, &a)
	m.mu.Lock()
	m.apps[a.ID] = a
	m.mu.Unlock()
	return a, nil
}

func (m *memoryStore) Get(ctx context.Context, id string) (Application, error) {
	m.mu.RLock()
	a, ok := m.apps[id]
	m.mu.RUnlock()
	if !ok {
		return Application{}, ErrNotFound
	}
	refreshProgress(ctx, m.catalog, &a)
	return a, nil
}

func (m *memoryStore) ListByUser(ctx context.Context, userID string) ([]Application, error) {
	return m.list(ctx, func(a Application) bool { return a.UserID == userID })
}

func (m *memoryStore) ListByStatus(ctx context.Context, status Status) ([]Application, error) {
	return m.list(ctx, func(a Application) bool { return a.Status == status })
}

func (m *memoryStore) list(ctx context.Context, keep func(Application) bool) ([]Application, error) {
	m.mu.RLock()
	out := make([]Application, 0)
	for _, a := range m.apps {
		if keep(a) {
			out = append(out, a)
		}
	}
	m.mu.RUnlock()
	for i := range out {
		refreshProgress(ctx, m.catalog, &out[i])
	}
	return out, nil
}

func (m *memoryStore) update(ctx context.Context, id string, fn func(*Application) error) (Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.apps[id]
	if !ok {
		return Application{}, ErrNotFound
	}
	if err := fn(&a); err != nil {
		return Application{}, err
	}
	refreshProgress(ctx, m.catalog, &a)
	m.apps[id] = a
	return a, nil
}

func (m *memoryStore) SaveForm(ctx context.Context, id string, values scholarship.FormValues, agreeTerms bool) (Application, error) {
	return m.update(ctx, id, func(a *Application) error {
		if a.Status != StatusDraft {
			return ErrNotEditable
		}
		if values == nil {
			values = scholarship.FormValues{}
		}
		a.FormValues = values
		a.AgreeTerms = agreeTerms
		return nil
	})
}

func (m *memoryStore) ToggleSubType(ctx context.Context, id, value string) (Application, error) {
	return m.update(ctx, id, func(a *Application) error {
		if a.Status != StatusDraft {
			return ErrNotEditable
		}
		st, err := m.catalog.GetType(ctx, a.ScholarshipCode)
		if err != nil {
			return err
		}
		a.SubTypes = scholarship.Toggle(a.SubTypes, value, st.SubTypeSelectionMode, st.SelectableValues())
		return nil
	})
}

func (m *memoryStore) ChangeScholarship(ctx context.Context, id, scholarshipCode string) (Application, error) {
	if _, err := m.catalog.GetType(ctx, scholarshipCode); err != nil {
		return Application{}, err
	}
	return m.update(ctx, id, func(a *Application) error {
		if a.Status != StatusDraft {
			return ErrNotEditable
		}
		a.ScholarshipCode = scholarshipCode
		a.SubTypes = []string{}
		return nil
	})
}

func (m *memoryStore) AttachFile(ctx context.Context, id, document string, f scholarship.UploadedFile) (Application, error) {
	return m.update(ctx, id, func(a *Application) error {
		if a.Status != StatusDraft {
			return ErrNotEditable
		}
		if a.FileValues == nil {
			a.FileValues = scholarship.FileValues{}
		}
		a.FileValues[document] = append(a.FileValues[document], f)
		return nil
	})
}

func (m *memoryStore) RemoveFile(ctx context.Context, id, document, fileID string) (Application, error) {
	return m.update(ctx, id, func(a *Application) error {
		if a.Status != StatusDraft {
			return ErrNotEditable
		}
		kept := a.FileValues[document][:0]
		for _, f := range a.FileValues[document] {
			if f.ID != fileID {
				kept = append(kept, f)
			}
		}
		a.FileValues[document] = kept
		return nil
	})
}

func (m *memoryStore) Submit(ctx context.Context, id string) (Application, error) {
	return m.update(ctx, id, func(a *Application) error {
		if !a.Status.CanTransition(StatusSubmitted) {
			return ErrBadTransition
		}
		refreshProgress(ctx, m.catalog, a)
		if a.Progress < 100 {
			return ErrNotComplete
		}
		a.Status = StatusSubmitted
		a.SubmittedAt = time.Now().Unix()
		return nil
	})
}

func (m *memoryStore) SetStatus(ctx context.Context, id string, to Status, reviewer, note string) (Application, error) {
	return m.update(ctx, id, func(a *Application) error {
		if !a.Status.CanTransition(to) {
			return ErrBadTransition
		}
		a.Status = to
		a.ReviewedBy = reviewer
		a.ReviewNote = note
		return nil
	})
}
