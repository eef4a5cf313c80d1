package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Contact struct {
	ID               string
	Name             string
	Email            string
	Company          string
	Phone            string
	ProjectType      string
	Budget           string
	Timeline         string
	Message          string
	Status           string
	Priority         string
	Notes            string
	EmailSentToUser  bool
	EmailSentToAdmin bool
	IPAddress        string
	UserAgent        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type ContactFilter struct {
	Status   string
	Priority string
	Limit    int
	Offset   int
}

type ContactRepository interface {
	Create(ctx context.Context, contact *Contact) error
	FindByID(ctx context.Context, id string) (*Contact, error)
	List(ctx context.Context, filter ContactFilter) ([]*Contact, int, error)
	Update(ctx context.Context, contact *Contact) error
	UpdateEmailFlags(ctx context.Context, id string, sentToUser, sentToAdmin bool) error
	Delete(ctx context.Context, id string) error
	FindCreatedSince(ctx context.Context, since time.Time) ([]*Contact, error)
	ArchiveCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type pgContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) ContactRepository {
	return &pgContactRepository{pool: pool}
}

const contactColumns = `id, name, email, company, phone, project_type, budget, timeline, message,
	status, priority, notes, email_sent_to_user, email_sent_to_admin,
	ip_address, user_agent, created_at, updated_at`

func scanContact(row pgx.Row) (*Contact, error) {
	c := &Contact{}
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Company, &c.Phone, &c.ProjectType, &c.Budget,
		&c.Timeline, &c.Message, &c.Status, &c.Priority, &c.Notes,
		&c.EmailSentToUser, &c.EmailSentToAdmin, &c.IPAddress, &c.UserAgent,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *pgContactRepository) Create(ctx context.Context, c *Contact) error {
	query := `
		INSERT INTO contacts (name, email, company, phone, project_type, budget, timeline, message,
			status, priority, notes, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		c.Name, c.Email, c.Company, c.Phone, c.ProjectType, c.Budget, c.Timeline, c.Message,
		c.Status, c.Priority, c.Notes, c.IPAddress, c.UserAgent,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *pgContactRepository) FindByID(ctx context.Context, id string) (*Contact, error) {
	return scanContact(r.pool.QueryRow(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id))
}

func (r *pgContactRepository) List(ctx context.Context, f ContactFilter) ([]*Contact, int, error) {
	where := ` WHERE 1=1`
	var args []interface{}
	n := 0

	if f.Status != "" {
		n++
		where += fmt.Sprintf(` AND status = $%d`, n)
		args = append(args, f.Status)
	}
	if f.Priority != "" {
		n++
		where += fmt.Sprintf(` AND priority = $%d`, n)
		args = append(args, f.Priority)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM contacts`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + contactColumns + ` FROM contacts` + where + ` ORDER BY created_at DESC`
	if f.Limit > 0 {
		n++
		query += fmt.Sprintf(` LIMIT $%d`, n)
		args = append(args, f.Limit)
	}
	if f.Offset > 0 {
		n++
		query += fmt.Sprintf(` OFFSET $%d`, n)
		args = append(args, f.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var contacts []*Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, 0, err
		}
		contacts = append(contacts, c)
	}
	return contacts, total, rows.Err()
}

func (r *pgContactRepository) Update(ctx context.Context, c *Contact) error {
	query := `
		UPDATE contacts
		SET status = $2, priority = $3, notes = $4, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, c.ID, c.Status, c.Priority, c.Notes)
	return err
}

func (r *pgContactRepository) UpdateEmailFlags(ctx context.Context, id string, sentToUser, sentToAdmin bool) error {
	query := `
		UPDATE contacts
		SET email_sent_to_user = $2, email_sent_to_admin = $3, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, id, sentToUser, sentToAdmin)
	return err
}

func (r *pgContactRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	return err
}

func (r *pgContactRepository) FindCreatedSince(ctx context.Context, since time.Time) ([]*Contact, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE created_at >= $1 ORDER BY created_at DESC`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []*Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *pgContactRepository) ArchiveCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE contacts SET status = 'archived', updated_at = NOW()
		 WHERE status = 'completed' AND updated_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
