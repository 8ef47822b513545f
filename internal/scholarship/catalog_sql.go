package scholarship

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// SQLCatalog stores scholarship types in one row per code with the
// sub-type list and form schema as JSON columns (works for both sqlite
// and postgres).
type SQLCatalog struct {
	db *sql.DB
}

func NewSQLCatalog(db *sql.DB) *SQLCatalog { return &SQLCatalog{db: db} }

func (c *SQLCatalog) PutType(ctx context.Context, t ScholarshipType) error {
	if t.Code == "" {
		return errors.New("scholarship code required")
	}
	sj, err := json.Marshal(t.EligibleSubTypes)
	if err != nil {
		return err
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT INTO scholarships (code, name, name_en, selection_mode, sub_types_json)
		 VALUES ($1,$2,$3,$4,$5)
		 ON CONFLICT (code) DO UPDATE SET
		   name=EXCLUDED.name, name_en=EXCLUDED.name_en,
		   selection_mode=EXCLUDED.selection_mode, sub_types_json=EXCLUDED.sub_types_json`,
		t.Code, t.Name, t.NameEN, string(t.SubTypeSelectionMode), string(sj))
	return err
}

func (c *SQLCatalog) GetType(ctx context.Context, code string) (ScholarshipType, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT code, name, name_en, selection_mode, sub_types_json FROM scholarships WHERE code=$1`, code)
	return scanType(row)
}

func (c *SQLCatalog) ListTypes(ctx context.Context) ([]ScholarshipType, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT code, name, name_en, selection_mode, sub_types_json FROM scholarships ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ScholarshipType
	for rows.Next() {
		t, err := scanType(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (c *SQLCatalog) PutSchema(ctx context.Context, code string, s FormSchema) error {
	sj, err := json.Marshal(s)
	if err != nil {
		return err
	}
	res, err := c.db.ExecContext(ctx,
		`UPDATE scholarships SET schema_json=$1 WHERE code=$2`, string(sj), code)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *SQLCatalog) GetSchema(ctx context.Context, code string) (*FormSchema, error) {
	var sj sql.NullString
	err := c.db.QueryRowContext(ctx,
		`SELECT schema_json FROM scholarships WHERE code=$1`, code).Scan(&sj)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !sj.Valid || sj.String == "" {
		return nil, nil
	}
	var s FormSchema
	if err := json.Unmarshal([]byte(sj.String), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanType(row rowScanner) (ScholarshipType, error) {
	var t ScholarshipType
	var mode, sj string
	if err := row.Scan(&t.Code, &t.Name, &t.NameEN, &mode, &sj); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ScholarshipType{}, ErrNotFound
		}
		return ScholarshipType{}, err
	}
	t.SubTypeSelectionMode = SelectionMode(mode)
	if sj != "" {
		if err := json.Unmarshal([]byte(sj), &t.EligibleSubTypes); err != nil {
			return ScholarshipType{}, err
		}
	}
	return t, nil
}
