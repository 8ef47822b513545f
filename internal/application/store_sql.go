package application

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/anud18/scholarship-system-sub000/internal/scholarship"
)

// SQLStore persists applications with the variable-shaped parts
// (sub-types, form values, file values) as JSON columns. Works unchanged
// on sqlite and postgres.
type SQLStore struct {
	db      *sql.DB
	catalog scholarship.Catalog
}

func NewSQLStore(db *sql.DB, catalog scholarship.Catalog) *SQLStore {
	return &SQLStore{db: db, catalog: catalog}
}

const appColumns = `id, user_id, college, scholarship_code, status,
	sub_types_json, form_values_json, file_values_json, agree_terms,
	progress, reviewed_by, review_note, created_at, submitted_at`

func (s *SQLStore) CreateDraft(ctx context.Context, userID, college, scholarshipCode string) (Application, error) {
	if _, err := s.catalog.GetType(ctx, scholarshipCode); err != nil {
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
	refreshProgress(ctx, s.catalog, &a)
	return a, s.insert(ctx, a)
}

func (s *SQLStore) insert(ctx context.Context, a Application) error {
	stj, fvj, flj, err := marshalApp(a)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO applications (`+appColumns+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		a.ID, a.UserID, a.College, a.ScholarshipCode, string(a.Status),
		stj, fvj, flj, a.AgreeTerms, a.Progress, a.ReviewedBy, a.ReviewNote,
		a.CreatedAt, a.SubmittedAt)
	return err
}

func (s *SQLStore) Get(ctx context.Context, id string) (Application, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+appColumns+` FROM applications WHERE id=$1`, id)
	a, err := scanApp(row)
	if err != nil {
		return Application{}, err
	}
	refreshProgress(ctx, s.catalog, &a)
	return a, nil
}

func (s *SQLStore) ListByUser(ctx context.Context, userID string) ([]Application, error) {
	return s.query(ctx,
		`SELECT `+appColumns+` FROM applications WHERE user_id=$1 ORDER BY created_at DESC`, userID)
}

func (s *SQLStore) ListByStatus(ctx context.Context, status Status) ([]Application, error) {
	return s.query(ctx,
		`SELECT `+appColumns+` FROM applications WHERE status=$1 ORDER BY created_at DESC`, string(status))
}

func (s *SQLStore) query(ctx context.Context, q string, args ...any) ([]Application, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]Application, 0)
	for rows.Next() {
		a, err := scanApp(rows)
		if err != nil {
			return nil, err
		}
		refreshProgress(ctx, s.catalog, &a)
		out = append(out, a)
	}
	return out, rows.Err()
}

// mutate loads, applies fn, recomputes progress and writes back. One
// statement per step is enough here; the portal serializes edits per
// draft at the UI level.
func (s *SQLStore) mutate(ctx context.Context, id string, fn func(*Application) error) (Application, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+appColumns+` FROM applications WHERE id=$1`, id)
	a, err := scanApp(row)
	if err != nil {
		return Application{}, err
	}
	if err := fn(&a); err != nil {
		return Application{}, err
	}
	refreshProgress(ctx, s.catalog, &a)
	stj, fvj, flj, err := marshalApp(a)
	if err != nil {
		return Application{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE applications SET
		   scholarship_code=$1, status=$2, sub_types_json=$3,
		   form_values_json=$4, file_values_json=$5, agree_terms=$6,
		   progress=$7, reviewed_by=$8, review_note=$9, submitted_at=$10
		 WHERE id=$11`,
		a.ScholarshipCode, string(a.Status), stj, fvj, flj, a.AgreeTerms,
		a.Progress, a.ReviewedBy, a.ReviewNote, a.SubmittedAt, a.ID)
	if err != nil {
		return Application{}, err
	}
	return a, nil
}

func (s *SQLStore) SaveForm(ctx context.Context, id string, values scholarship.FormValues, agreeTerms bool) (Application, error) {
	return s.mutate(ctx, id, func(a *Application) error {
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

func (s *SQLStore) ToggleSubType(ctx context.Context, id, value string) (Application, error) {
	return s.mutate(ctx, id, func(a *Application) error {
		if a.Status != StatusDraft {
			return ErrNotEditable
		}
		st, err := s.catalog.GetType(ctx, a.ScholarshipCode)
		if err != nil {
			return err
		}
		a.SubTypes = scholarship.Toggle(a.SubTypes, value, st.SubTypeSelectionMode, st.SelectableValues())
		return nil
	})
}

func (s *SQLStore) ChangeScholarship(ctx context.Context, id, scholarshipCode string) (Application, error) {
	if _, err := s.catalog.GetType(ctx, scholarshipCode); err != nil {
		return Application{}, err
	}
	return s.mutate(ctx, id, func(a *Application) error {
		if a.Status != StatusDraft {
			return ErrNotEditable
		}
		a.ScholarshipCode = scholarshipCode
		a.SubTypes = []string{}
		return nil
	})
}

func (s *SQLStore) AttachFile(ctx context.Context, id, document string, f scholarship.UploadedFile) (Application, error) {
	return s.mutate(ctx, id, func(a *Application) error {
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

func (s *SQLStore) RemoveFile(ctx context.Context, id, document, fileID string) (Application, error) {
	return s.mutate(ctx, id, func(a *Application) error {
		if a.Status != StatusDraft {
			return ErrNotEditable
		}
		kept := make([]scholarship.UploadedFile, 0, len(a.FileValues[document]))
		for _, f := range a.FileValues[document] {
			if f.ID != fileID {
				kept = append(kept, f)
			}
		}
		a.FileValues[document] = kept
		return nil
	})
}

func (s *SQLStore) Submit(ctx context.Context, id string) (Application, error) {
	return s.mutate(ctx, id, func(a *Application) error {
		if !a.Status.CanTransition(StatusSubmitted) {
			return ErrBadTransition
		}
		refreshProgress(ctx, s.catalog, a)
		if a.Progress < 100 {
			return ErrNotComplete
		}
		a.Status = StatusSubmitted
		a.SubmittedAt = time.Now().Unix()
		return nil
	})
}

func (s *SQLStore) SetStatus(ctx context.Context, id string, to Status, reviewer, note string) (Application, error) {
	return s.mutate(ctx, id, func(a *Application) error {
		if !a.Status.CanTransition(to) {
			return ErrBadTransition
		}
		a.Status = to
		a.ReviewedBy = reviewer
		a.ReviewNote = note
		return nil
	})
}

func marshalApp(a Application) (subTypes, formValues, fileValues string, err error) {
	stj, err := json.Marshal(a.SubTypes)
	if err != nil {
		return "", "", "", err
	}
	fvj, err := json.Marshal(a.FormValues)
	if err != nil {
		return "", "", "", err
	}
	flj, err := json.Marshal(a.FileValues)
	if err != nil {
		return "", "", "", err
	}
	return string(stj), string(fvj), string(flj), nil
}

func scanApp(row interface{ Scan(...any) error }) (Application, error) {
	var a Application
	var status, stj, fvj, flj string
	var reviewedBy, reviewNote sql.NullString
	var submittedAt sql.NullInt64
	err := row.Scan(&a.ID, &a.UserID, &a.College, &a.ScholarshipCode, &status,
		&stj, &fvj, &flj, &a.AgreeTerms, &a.Progress, &reviewedBy, &reviewNote,
		&a.CreatedAt, &submittedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Application{}, ErrNotFound
		}
		return Application{}, err
	}
	a.Status = Status(status)
	a.ReviewedBy = reviewedBy.String
	a.ReviewNote = reviewNote.String
	a.SubmittedAt = submittedAt.Int64
	if err := json.Unmarshal([]byte(stj), &a.SubTypes); err != nil {
		return Application{}, err
	}
	if err := json.Unmarshal([]byte(fvj), &a.FormValues); err != nil {
		return Application{}, err
	}
	if err := json.Unmarshal([]byte(flj), &a.FileValues); err != nil {
		return Application{}, err
	}
	return a, nil
}
