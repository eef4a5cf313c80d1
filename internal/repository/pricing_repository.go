package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PricingPlan struct {
	ID          string
	Name        string
	Price       decimal.Decimal
	PriceNote   string
	Description string
	Features    []string
	CTA         string
	Note        string
	SortOrder   int
	IsActive    bool
	Popular     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type PricingPlanRepository interface {
	// Create inserts an active plan, rejecting the write when three plans
	// are already active or the slot order is taken.
	Create(ctx context.Context, plan *PricingPlan) error
	FindByID(ctx context.Context, id string) (*PricingPlan, error)
	FindActive(ctx context.Context) ([]*PricingPlan, error)
	FindAll(ctx context.Context) ([]*PricingPlan, error)
	Update(ctx context.Context, plan *PricingPlan) error
	SetPopular(ctx context.Context, id string) error
	ClearPopular(ctx context.Context, id string) error
	Deactivate(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	CountActive(ctx context.Context) (int, error)
}

type pgPricingPlanRepository struct {
	pool *pgxpool.Pool
}

func NewPricingPlanRepository(pool *pgxpool.Pool) PricingPlanRepository {
	return &pgPricingPlanRepository{pool: pool}
}

const planColumns = `id, name, price, price_note, description, features, cta, note,
	sort_order, is_active, popular, created_at, updated_at`

func scanPlan(row pgx.Row) (*PricingPlan, error) {
	p := &PricingPlan{}
	var price string
	err := row.Scan(
		&p.ID, &p.Name, &price, &p.PriceNote, &p.Description, &p.Features,
		&p.CTA, &p.Note, &p.SortOrder, &p.IsActive, &p.Popular, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if p.Price, err = decimal.NewFromString(price); err != nil {
		return nil, err
	}
	return p, nil
}

// lockActivePlans takes row locks on every active plan so that concurrent
// capacity and order checks serialize against each other.
func lockActivePlans(ctx context.Context, tx pgx.Tx) (count int, taken map[int]string, err error) {
	rows, err := tx.Query(ctx, `SELECT id, sort_order FROM pricing_plans WHERE is_active FOR UPDATE`)
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()

	taken = make(map[int]string)
	for rows.Next() {
		var id string
		var order int
		if err := rows.Scan(&id, &order); err != nil {
			return 0, nil, err
		}
		taken[order] = id
		count++
	}
	return count, taken, rows.Err()
}

func (r *pgPricingPlanRepository) Create(ctx context.Context, p *PricingPlan) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	count, taken, err := lockActivePlans(ctx, tx)
	if err != nil {
		return err
	}
	if p.IsActive {
		if count >= 3 {
			return ErrActivePlanLimit
		}
		if _, ok := taken[p.SortOrder]; ok {
			return ErrOrderTaken
		}
	}

	if p.Popular {
		if _, err := tx.Exec(ctx,
			`UPDATE pricing_plans SET popular = FALSE, updated_at = NOW() WHERE popular`); err != nil {
			return err
		}
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO pricing_plans (name, price, price_note, description, features, cta, note,
			sort_order, is_active, popular)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`,
		p.Name, p.Price.String(), p.PriceNote, p.Description, orEmpty(p.Features),
		p.CTA, p.Note, p.SortOrder, p.IsActive, p.Popular,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "pricing_plans_active_order_idx") {
			return ErrOrderTaken
		}
		return err
	}
	return tx.Commit(ctx)
}

func (r *pgPricingPlanRepository) FindByID(ctx context.Context, id string) (*PricingPlan, error) {
	return scanPlan(r.pool.QueryRow(ctx, `SELECT `+planColumns+` FROM pricing_plans WHERE id = $1`, id))
}

func (r *pgPricingPlanRepository) FindActive(ctx context.Context) ([]*PricingPlan, error) {
	return r.list(ctx, `SELECT `+planColumns+` FROM pricing_plans WHERE is_active ORDER BY sort_order`)
}

func (r *pgPricingPlanRepository) FindAll(ctx context.Context) ([]*PricingPlan, error) {
	return r.list(ctx, `SELECT `+planColumns+` FROM pricing_plans ORDER BY is_active DESC, sort_order`)
}

func (r *pgPricingPlanRepository) list(ctx context.Context, query string) ([]*PricingPlan, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []*PricingPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func (r *pgPricingPlanRepository) Update(ctx context.Context, p *PricingPlan) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, taken, err := lockActivePlans(ctx, tx)
	if err != nil {
		return err
	}
	if p.IsActive {
		if holder, ok := taken[p.SortOrder]; ok && holder != p.ID {
			return ErrOrderTaken
		}
	}

	if p.Popular {
		if _, err := tx.Exec(ctx,
			`UPDATE pricing_plans SET popular = FALSE, updated_at = NOW() WHERE popular AND id <> $1`, p.ID); err != nil {
			return err
		}
	}

	_, err = tx.Exec(ctx, `
		UPDATE pricing_plans
		SET name = $2, price = $3, price_note = $4, description = $5, features = $6,
		    cta = $7, note = $8, sort_order = $9, is_active = $10, popular = $11, updated_at = NOW()
		WHERE id = $1
	`,
		p.ID, p.Name, p.Price.String(), p.PriceNote, p.Description, orEmpty(p.Features),
		p.CTA, p.Note, p.SortOrder, p.IsActive, p.Popular,
	)
	if err != nil {
		if isUniqueViolation(err, "pricing_plans_active_order_idx") {
			return ErrOrderTaken
		}
		return err
	}
	return tx.Commit(ctx)
}

// SetPopular atomically makes the given plan the only popular one.
func (r *pgPricingPlanRepository) SetPopular(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE pricing_plans SET popular = FALSE, updated_at = NOW() WHERE popular AND id <> $1`, id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx,
		`UPDATE pricing_plans SET popular = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return tx.Commit(ctx)
}

func (r *pgPricingPlanRepository) ClearPopular(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE pricing_plans SET popular = FALSE, updated_at = NOW() WHERE id = $1`, id)
	return err
}

// Deactivate soft-deletes a plan. A deactivated plan cannot stay popular.
func (r *pgPricingPlanRepository) Deactivate(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE pricing_plans SET is_active = FALSE, popular = FALSE, updated_at = NOW() WHERE id = $1`, id)
	return err
}

// Restore re-activates a soft-deleted plan, subject to the same capacity
// and slot checks as creation.
func (r *pgPricingPlanRepository) Restore(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	plan, err := scanPlan(tx.QueryRow(ctx,
		`SELECT `+planColumns+` FROM pricing_plans WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return err
	}
	if plan == nil {
		return pgx.ErrNoRows
	}
	if plan.IsActive {
		return tx.Commit(ctx)
	}

	count, taken, err := lockActivePlans(ctx, tx)
	if err != nil {
		return err
	}
	if count >= 3 {
		return ErrActivePlanLimit
	}
	if _, ok := taken[plan.SortOrder]; ok {
		return ErrOrderTaken
	}

	if _, err := tx.Exec(ctx,
		`UPDATE pricing_plans SET is_active = TRUE, updated_at = NOW() WHERE id = $1`, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *pgPricingPlanRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM pricing_plans WHERE is_active`).Scan(&count)
	return count, err
}
