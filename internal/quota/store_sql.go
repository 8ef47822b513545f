package quota

import (
	"context"
	"database/sql"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Matrix(ctx context.Context, code string) (Matrix, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT sub_type, college, total_quota, used_quota
		 FROM quota_cells WHERE scholarship_code=$1`, code)
	if err != nil {
		return Matrix{}, err
	}
	defer rows.Close()
	out := Matrix{PhdQuotas: map[string]map[string]Cell{}}
	for rows.Next() {
		var subType, college string
		var c Cell
		if err := rows.Scan(&subType, &college, &c.TotalQuota, &c.UsedQuota); err != nil {
			return Matrix{}, err
		}
		if out.PhdQuotas[subType] == nil {
			out.PhdQuotas[subType] = map[string]Cell{}
		}
		out.PhdQuotas[subType][college] = c
	}
	return out, rows.Err()
}

func (s *SQLStore) PutCell(ctx context.Context, code, subType, college string, c Cell) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO quota_cells (scholarship_code, sub_type, college, total_quota, used_quota)
		 VALUES ($1,$2,$3,$4,$5)
		 ON CONFLICT (scholarship_code, sub_type, college) DO UPDATE SET
		   total_quota=EXCLUDED.total_quota, used_quota=EXCLUDED.used_quota`,
		code, subType, college, c.TotalQuota, c.UsedQuota)
	return err
}

func (s *SQLStore) IncrementUsed(ctx context.Context, code, subType, college string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO quota_cells (scholarship_code, sub_type, college, total_quota, used_quota)
		 VALUES ($1,$2,$3,0,1)
		 ON CONFLICT (scholarship_code, sub_type, college) DO UPDATE SET
		   used_quota=quota_cells.used_quota+1`,
		code, subType, college)
	return err
}
