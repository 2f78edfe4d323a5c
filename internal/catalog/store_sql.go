package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mind-engage/compendium/internal/compendium"
)

type SQLStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

// PutCompendium replaces the stored variants and meta in one transaction and
// appends an import run.
func (s *SQLStore) PutCompendium(ctx context.Context, c *compendium.Compendium, source string) (ImportRun, error) {
	rep := compendium.Summarize(c)
	now := s.now().Unix()
	run := ImportRun{
		ID:            uuid.NewString(),
		Source:        source,
		Variants:      rep.Variants,
		Solutions:     rep.Solutions,
		FallbackTasks: rep.FallbackTasks,
		CreatedAt:     now,
	}

	mj, err := json.Marshal(c.Meta)
	if err != nil {
		return ImportRun{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ImportRun{}, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM variants`); err != nil {
		return ImportRun{}, err
	}
	for i, v := range c.Variants {
		vj, err := json.Marshal(v)
		if err != nil {
			return ImportRun{}, err
		}
		_, err = tx.ExecContext(ctx, `INSERT INTO variants
			(position,number,id,slug,title,solutions,answers,variant_json,import_id,updated_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
			i, v.Number, v.ID, v.Slug, v.Title, len(v.Solutions), len(v.Answers), string(vj), run.ID, now)
		if err != nil {
			return ImportRun{}, err
		}
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO compendium_meta (id,meta_json,import_id,updated_at)
		VALUES (1,$1,$2,$3)
		ON CONFLICT (id) DO UPDATE SET meta_json=EXCLUDED.meta_json, import_id=EXCLUDED.import_id, updated_at=EXCLUDED.updated_at`,
		string(mj), run.ID, now)
	if err != nil {
		return ImportRun{}, err
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO import_runs (id,source,variants,solutions,fallback_tasks,created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		run.ID, run.Source, run.Variants, run.Solutions, run.FallbackTasks, run.CreatedAt)
	if err != nil {
		return ImportRun{}, err
	}
	if err := tx.Commit(); err != nil {
		return ImportRun{}, err
	}
	return run, nil
}

func (s *SQLStore) LatestCompendium(ctx context.Context) (*compendium.Compendium, error) {
	var mj string
	err := s.db.QueryRowContext(ctx, `SELECT meta_json FROM compendium_meta WHERE id=1`).Scan(&mj)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	c := &compendium.Compendium{Variants: []compendium.Variant{}}
	if err := json.Unmarshal([]byte(mj), &c.Meta); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT variant_json FROM variants ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, err
		}
		c.Variants = append(c.Variants, v)
	}
	return c, rows.Err()
}

func (s *SQLStore) ListVariants(ctx context.Context, opts ListOpts) ([]VariantSummary, error) {
	limit := normLimit(opts.Limit, 50, 500)
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	q := "%" + strings.ToLower(strings.TrimSpace(opts.Q)) + "%"
	rows, err := s.db.QueryContext(ctx, `SELECT id,number,title,slug,solutions,answers FROM variants
		WHERE LOWER(title) LIKE $1 OR slug LIKE $1
		ORDER BY position LIMIT $2 OFFSET $3`, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []VariantSummary{}
	for rows.Next() {
		var v VariantSummary
		if err := rows.Scan(&v.ID, &v.Number, &v.Title, &v.Slug, &v.Solutions, &v.Answers); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *SQLStore) GetVariant(ctx context.Context, number int) (compendium.Variant, error) {
	row := s.db.QueryRowContext(ctx, `SELECT variant_json FROM variants WHERE number=$1 ORDER BY position LIMIT 1`, number)
	return scanVariant(row)
}

func (s *SQLStore) GetVariantBySlug(ctx context.Context, slug string) (compendium.Variant, error) {
	row := s.db.QueryRowContext(ctx, `SELECT variant_json FROM variants WHERE slug=$1 ORDER BY position LIMIT 1`, slug)
	return scanVariant(row)
}

func (s *SQLStore) ListImports(ctx context.Context, limit int) ([]ImportRun, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,source,variants,solutions,fallback_tasks,created_at
		FROM import_runs ORDER BY seq DESC LIMIT $1`, normLimit(limit, 20, 200))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ImportRun{}
	for rows.Next() {
		var r ImportRun
		if err := rows.Scan(&r.ID, &r.Source, &r.Variants, &r.Solutions, &r.FallbackTasks, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanVariant(sc scanner) (compendium.Variant, error) {
	var vj string
	if err := sc.Scan(&vj); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return compendium.Variant{}, ErrNotFound
		}
		return compendium.Variant{}, err
	}
	var v compendium.Variant
	if err := json.Unmarshal([]byte(vj), &v); err != nil {
		return compendium.Variant{}, err
	}
	return v, nil
}
