package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ContentSection is a persisted block of site content, keyed by section
// name (hero, services, about, footer, ...). Data is an opaque document
// owned by the frontend.
type ContentSection struct {
	Section   string
	Data      json.RawMessage
	UpdatedBy *string
	UpdatedAt time.Time
}

type ContentRepository interface {
	Get(ctx context.Context, section string) (*ContentSection, error)
	List(ctx context.Context) ([]*ContentSection, error)
	Upsert(ctx context.Context, cs *ContentSection) error
}

type pgContentRepository struct {
	pool *pgxpool.Pool
}

func NewContentRepository(pool *pgxpool.Pool) ContentRepository {
	return &pgContentRepository{pool: pool}
}

func (r *pgContentRepository) Get(ctx context.Context, section string) (*ContentSection, error) {
	cs := &ContentSection{}
	err := r.pool.QueryRow(ctx,
		`SELECT section, data, updated_by, updated_at FROM content_sections WHERE section = $1`, section,
	).Scan(&cs.Section, &cs.Data, &cs.UpdatedBy, &cs.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return cs, nil
}

func (r *pgContentRepository) List(ctx context.Context) ([]*ContentSection, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT section, data, updated_by, updated_at FROM content_sections ORDER BY section`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []*ContentSection
	for rows.Next() {
		cs := &ContentSection{}
		if err := rows.Scan(&cs.Section, &cs.Data, &cs.UpdatedBy, &cs.UpdatedAt); err != nil {
			return nil, err
		}
		sections = append(sections, cs)
	}
	return sections, rows.Err()
}

func (r *pgContentRepository) Upsert(ctx context.Context, cs *ContentSection) error {
	query := `
		INSERT INTO content_sections (section, data, updated_by, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (section) DO UPDATE SET data = $2, updated_by = $3, updated_at = NOW()
		RETURNING updated_at
	`
	return r.pool.QueryRow(ctx, query, cs.Section, cs.Data, cs.UpdatedBy).Scan(&cs.UpdatedAt)
}
