package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/repository"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePlanRepo mirrors the capacity and exclusivity rules the real
// repository enforces inside a transaction.
type fakePlanRepo struct {
	plans  map[string]*repository.PricingPlan
	nextID int
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: make(map[string]*repository.PricingPlan)}
}

func (f *fakePlanRepo) activeCount() int {
	n := 0
	for _, p := range f.plans {
		if p.IsActive {
			n++
		}
	}
	return n
}

func (f *fakePlanRepo) orderTaken(order int, excludeID string) bool {
	for id, p := range f.plans {
		if id != excludeID && p.IsActive && p.SortOrder == order {
			return true
		}
	}
	return false
}

func (f *fakePlanRepo) Create(_ context.Context, plan *repository.PricingPlan) error {
	if f.activeCount() >= types.MaxActivePlans {
		return repository.ErrActivePlanLimit
	}
	if f.orderTaken(plan.SortOrder, "") {
		return repository.ErrOrderTaken
	}
	if plan.Popular {
		for _, p := range f.plans {
			p.Popular = false
		}
	}
	f.nextID++
	plan.ID = fmt.Sprintf("plan-%d", f.nextID)
	copied := *plan
	f.plans[plan.ID] = &copied
	return nil
}

func (f *fakePlanRepo) FindByID(_ context.Context, id string) (*repository.PricingPlan, error) {
	p, ok := f.plans[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (f *fakePlanRepo) FindActive(_ context.Context) ([]*repository.PricingPlan, error) {
	var out []*repository.PricingPlan
	for _, p := range f.plans {
		if p.IsActive {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakePlanRepo) FindAll(_ context.Context) ([]*repository.PricingPlan, error) {
	var out []*repository.PricingPlan
	for _, p := range f.plans {
		copied := *p
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakePlanRepo) Update(_ context.Context, plan *repository.PricingPlan) error {
	existing, ok := f.plans[plan.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	if existing.IsActive && f.orderTaken(plan.SortOrder, plan.ID) {
		return repository.ErrOrderTaken
	}
	copied := *plan
	f.plans[plan.ID] = &copied
	return nil
}

func (f *fakePlanRepo) SetPopular(_ context.Context, id string) error {
	target, ok := f.plans[id]
	if !ok {
		return pgx.ErrNoRows
	}
	for _, p := range f.plans {
		p.Popular = false
	}
	target.Popular = true
	return nil
}

func (f *fakePlanRepo) ClearPopular(_ context.Context, id string) error {
	if p, ok := f.plans[id]; ok {
		p.Popular = false
	}
	return nil
}

func (f *fakePlanRepo) Deactivate(_ context.Context, id string) error {
	p, ok := f.plans[id]
	if !ok {
		return pgx.ErrNoRows
	}
	p.IsActive = false
	p.Popular = false
	return nil
}

func (f *fakePlanRepo) Restore(_ context.Context, id string) error {
	p, ok := f.plans[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if p.IsActive {
		return nil
	}
	if f.activeCount() >= types.MaxActivePlans {
		return repository.ErrActivePlanLimit
	}
	if f.orderTaken(p.SortOrder, id) {
		return repository.ErrOrderTaken
	}
	p.IsActive = true
	return nil
}

func (f *fakePlanRepo) CountActive(_ context.Context) (int, error) {
	return f.activeCount(), nil
}

func testPlan(name string, order int) *repository.PricingPlan {
	return &repository.PricingPlan{
		Name:      name,
		Price:     decimal.NewFromInt(1000),
		Features:  []string{"One feature"},
		SortOrder: order,
	}
}

func TestPricingCapacityLimit(t *testing.T) {
	repo := newFakePlanRepo()
	svc := NewPricingService(repo, nil, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, testPlan(fmt.Sprintf("Plan %d", i), i))
		require.NoError(t, err)
	}

	_, err := svc.Create(ctx, testPlan("One Too Many", 0))
	assert.ErrorIs(t, err, ErrPlanLimit)
}

func TestPricingOrderCollision(t *testing.T) {
	repo := newFakePlanRepo()
	svc := NewPricingService(repo, nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, testPlan("First", 1))
	require.NoError(t, err)

	_, err = svc.Create(ctx, testPlan("Second", 1))
	assert.ErrorIs(t, err, ErrOrderTaken)
}

func TestPricingDeactivateFreesSlot(t *testing.T) {
	repo := newFakePlanRepo()
	svc := NewPricingService(repo, nil, nil)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		plan, err := svc.Create(ctx, testPlan(fmt.Sprintf("Plan %d", i), i))
		require.NoError(t, err)
		ids = append(ids, plan.ID)
	}

	require.NoError(t, svc.Deactivate(ctx, ids[0]))

	replacement, err := svc.Create(ctx, testPlan("Replacement", 0))
	require.NoError(t, err)
	assert.True(t, replacement.IsActive)
}

func TestPricingRestoreRespectsCapacity(t *testing.T) {
	repo := newFakePlanRepo()
	svc := NewPricingService(repo, nil, nil)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		plan, err := svc.Create(ctx, testPlan(fmt.Sprintf("Plan %d", i), i))
		require.NoError(t, err)
		ids = append(ids, plan.ID)
	}

	require.NoError(t, svc.Deactivate(ctx, ids[0]))
	_, err := svc.Create(ctx, testPlan("Replacement", 0))
	require.NoError(t, err)

	// All three slots are full again, so the retired plan cannot come back.
	_, err = svc.Restore(ctx, ids[0])
	assert.ErrorIs(t, err, ErrPlanLimit)
}

func TestTogglePopularIsExclusive(t *testing.T) {
	repo := newFakePlanRepo()
	svc := NewPricingService(repo, nil, nil)
	ctx := context.Background()

	a, err := svc.Create(ctx, testPlan("Starter", 0))
	require.NoError(t, err)
	b, err := svc.Create(ctx, testPlan("Studio", 1))
	require.NoError(t, err)

	a, err = svc.TogglePopular(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, a.Popular)

	b, err = svc.TogglePopular(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, b.Popular)

	a, err = svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, a.Popular, "only one plan may be popular")
}

func TestTogglePopularOffLeavesNone(t *testing.T) {
	repo := newFakePlanRepo()
	svc := NewPricingService(repo, nil, nil)
	ctx := context.Background()

	a, err := svc.Create(ctx, testPlan("Solo", 0))
	require.NoError(t, err)

	a, err = svc.TogglePopular(ctx, a.ID)
	require.NoError(t, err)
	require.True(t, a.Popular)

	a, err = svc.TogglePopular(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, a.Popular)
}

func TestUpdatePreservesPopularFlag(t *testing.T) {
	repo := newFakePlanRepo()
	svc := NewPricingService(repo, nil, nil)
	ctx := context.Background()

	plan, err := svc.Create(ctx, testPlan("Studio", 0))
	require.NoError(t, err)

	plan, err = svc.TogglePopular(ctx, plan.ID)
	require.NoError(t, err)
	require.True(t, plan.Popular)

	renamed := testPlan("Studio Plus", 0)
	plan, err = svc.Update(ctx, plan.ID, renamed)
	require.NoError(t, err)

	assert.Equal(t, "Studio Plus", plan.Name)
	assert.True(t, plan.Popular, "renaming a plan must not clear the popular flag")
}

func TestPricingCreateValidation(t *testing.T) {
	svc := NewPricingService(newFakePlanRepo(), nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, &repository.PricingPlan{Name: "", Features: []string{"x"}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, &repository.PricingPlan{Name: "No Features"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, &repository.PricingPlan{Name: "Bad Order", Features: []string{"x"}, SortOrder: 5})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
