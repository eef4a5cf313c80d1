package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Rich portfolio sub-documents, stored as jsonb.

type KeyResult struct {
	Metric      string `json:"metric"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type Technology struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Color    string `json:"color"`
}

type TimelinePhase struct {
	Phase        string   `json:"phase"`
	Duration     string   `json:"duration"`
	Description  string   `json:"description"`
	Deliverables []string `json:"deliverables"`
}

type Testimonial struct {
	Quote    string `json:"quote"`
	Author   string `json:"author"`
	Position string `json:"position"`
	Company  string `json:"company"`
	Avatar   string `json:"avatar"`
}

type Project struct {
	ID              string
	Title           string
	Slug            string
	Subtitle        string
	Description     string
	LongDescription string
	Category        string
	Client          string
	Image           string
	HeroImage       string
	Images          []string
	Tags            []string
	Status          string
	SortOrder       int
	Featured        bool
	KeyResults      []KeyResult
	Technologies    []Technology
	Timeline        []TimelinePhase
	Testimonials    []Testimonial
	Features        []string
	CreatedBy       *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type ProjectFilter struct {
	Status   string // empty means any
	Category string
	Tag      string
	Featured *bool
}

type ProjectOrder struct {
	ID        string `json:"id"`
	SortOrder int    `json:"order"`
}

type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	FindByID(ctx context.Context, id string) (*Project, error)
	FindBySlug(ctx context.Context, slug string) (*Project, error)
	FindFeatured(ctx context.Context) (*Project, error)
	List(ctx context.Context, filter ProjectFilter) ([]*Project, error)
	Update(ctx context.Context, project *Project) error
	SetFeatured(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	UpdateStatusBulk(ctx context.Context, ids []string, status string) (int64, error)
	Reorder(ctx context.Context, orders []ProjectOrder) error
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
}

type pgProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &pgProjectRepository{pool: pool}
}

const projectColumns = `id, title, slug, subtitle, description, long_description, category, client,
	image, hero_image, images, tags, status, sort_order, featured,
	key_results, technologies, timeline, testimonials, features,
	created_by, created_at, updated_at`

func scanProject(row pgx.Row) (*Project, error) {
	p := &Project{}
	var keyResults, technologies, timeline, testimonials []byte
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Subtitle, &p.Description, &p.LongDescription,
		&p.Category, &p.Client, &p.Image, &p.HeroImage, &p.Images, &p.Tags,
		&p.Status, &p.SortOrder, &p.Featured,
		&keyResults, &technologies, &timeline, &testimonials, &p.Features,
		&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(keyResults, &p.KeyResults); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(technologies, &p.Technologies); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(timeline, &p.Timeline); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(testimonials, &p.Testimonials); err != nil {
		return nil, err
	}
	return p, nil
}

func projectJSONArgs(p *Project) (keyResults, technologies, timeline, testimonials []byte, err error) {
	if keyResults, err = json.Marshal(orEmpty(p.KeyResults)); err != nil {
		return
	}
	if technologies, err = json.Marshal(orEmpty(p.Technologies)); err != nil {
		return
	}
	if timeline, err = json.Marshal(orEmpty(p.Timeline)); err != nil {
		return
	}
	testimonials, err = json.Marshal(orEmpty(p.Testimonials))
	return
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// isUniqueViolation reports whether err is a violation of the named index.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == constraint
}

// Create inserts the project. When the project is flagged featured the
// insert runs in a transaction that first clears the flag everywhere else,
// so the single-featured invariant holds without a second enforcement layer.
func (r *pgProjectRepository) Create(ctx context.Context, p *Project) error {
	keyResults, technologies, timeline, testimonials, err := projectJSONArgs(p)
	if err != nil {
		return err
	}

	insert := `
		INSERT INTO projects (title, slug, subtitle, description, long_description, category, client,
			image, hero_image, images, tags, status, sort_order, featured,
			key_results, technologies, timeline, testimonials, features, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id, created_at, updated_at
	`
	args := []interface{}{
		p.Title, p.Slug, p.Subtitle, p.Description, p.LongDescription, p.Category, p.Client,
		p.Image, p.HeroImage, orEmpty(p.Images), orEmpty(p.Tags), p.Status, p.SortOrder, p.Featured,
		keyResults, technologies, timeline, testimonials, orEmpty(p.Features), p.CreatedBy,
	}

	if !p.Featured {
		err := r.pool.QueryRow(ctx, insert, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
		if isUniqueViolation(err, "projects_slug_key") {
			return ErrSlugTaken
		}
		return err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE projects SET featured = FALSE, updated_at = NOW() WHERE featured`); err != nil {
		return err
	}
	if err := tx.QueryRow(ctx, insert, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if isUniqueViolation(err, "projects_slug_key") {
			return ErrSlugTaken
		}
		return err
	}
	return tx.Commit(ctx)
}

func (r *pgProjectRepository) FindByID(ctx context.Context, id string) (*Project, error) {
	return scanProject(r.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
}

func (r *pgProjectRepository) FindBySlug(ctx context.Context, slug string) (*Project, error) {
	return scanProject(r.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE slug = $1`, slug))
}

func (r *pgProjectRepository) FindFeatured(ctx context.Context) (*Project, error) {
	return scanProject(r.pool.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE featured AND status = 'published'`))
}

func (r *pgProjectRepository) List(ctx context.Context, f ProjectFilter) ([]*Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE 1=1`
	var args []interface{}
	n := 0

	if f.Status != "" {
		n++
		query += fmt.Sprintf(` AND status = $%d`, n)
		args = append(args, f.Status)
	}
	if f.Category != "" {
		n++
		query += fmt.Sprintf(` AND category = $%d`, n)
		args = append(args, f.Category)
	}
	if f.Tag != "" {
		n++
		query += fmt.Sprintf(` AND $%d = ANY(tags)`, n)
		args = append(args, f.Tag)
	}
	if f.Featured != nil {
		n++
		query += fmt.Sprintf(` AND featured = $%d`, n)
		args = append(args, *f.Featured)
	}
	query += ` ORDER BY sort_order, created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// Update saves all mutable fields. A transition to featured=true clears the
// flag on every other project inside the same transaction.
func (r *pgProjectRepository) Update(ctx context.Context, p *Project) error {
	keyResults, technologies, timeline, testimonials, err := projectJSONArgs(p)
	if err != nil {
		return err
	}

	update := `
		UPDATE projects
		SET title = $2, slug = $3, subtitle = $4, description = $5, long_description = $6,
		    category = $7, client = $8, image = $9, hero_image = $10, images = $11, tags = $12,
		    status = $13, sort_order = $14, featured = $15,
		    key_results = $16, technologies = $17, timeline = $18, testimonials = $19, features = $20,
		    updated_at = NOW()
		WHERE id = $1
	`
	args := []interface{}{
		p.ID, p.Title, p.Slug, p.Subtitle, p.Description, p.LongDescription,
		p.Category, p.Client, p.Image, p.HeroImage, orEmpty(p.Images), orEmpty(p.Tags),
		p.Status, p.SortOrder, p.Featured,
		keyResults, technologies, timeline, testimonials, orEmpty(p.Features),
	}

	if !p.Featured {
		_, err := r.pool.Exec(ctx, update, args...)
		if isUniqueViolation(err, "projects_slug_key") {
			return ErrSlugTaken
		}
		return err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE projects SET featured = FALSE, updated_at = NOW() WHERE featured AND id <> $1`, p.ID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, update, args...); err != nil {
		if isUniqueViolation(err, "projects_slug_key") {
			return ErrSlugTaken
		}
		return err
	}
	return tx.Commit(ctx)
}

// SetFeatured atomically makes the given project the only featured one.
func (r *pgProjectRepository) SetFeatured(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE projects SET featured = FALSE, updated_at = NOW() WHERE featured AND id <> $1`, id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx,
		`UPDATE projects SET featured = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return tx.Commit(ctx)
}

func (r *pgProjectRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return err
}

func (r *pgProjectRepository) UpdateStatusBulk(ctx context.Context, ids []string, status string) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE projects SET status = $2, updated_at = NOW() WHERE id = ANY($1)`, ids, status)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *pgProjectRepository) Reorder(ctx context.Context, orders []ProjectOrder) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, o := range orders {
		if _, err := tx.Exec(ctx,
			`UPDATE projects SET sort_order = $2, updated_at = NOW() WHERE id = $1`, o.ID, o.SortOrder); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *pgProjectRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM projects WHERE slug = $1 AND id <> $2)`, slug, excludeID,
	).Scan(&exists)
	return exists, err
}
