package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProjectRepo is an in-memory ProjectRepository that mirrors the
// featured-exclusivity behavior of the real one.
type fakeProjectRepo struct {
	projects       map[string]*repository.Project
	nextID         int
	setFeaturedErr error
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[string]*repository.Project)}
}

func (f *fakeProjectRepo) Create(_ context.Context, p *repository.Project) error {
	for _, existing := range f.projects {
		if existing.Slug == p.Slug {
			return repository.ErrSlugTaken
		}
	}
	if p.Featured {
		for _, existing := range f.projects {
			existing.Featured = false
		}
	}
	f.nextID++
	p.ID = fmt.Sprintf("proj-%d", f.nextID)
	copied := *p
	f.projects[p.ID] = &copied
	return nil
}

func (f *fakeProjectRepo) FindByID(_ context.Context, id string) (*repository.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProjectRepo) FindBySlug(_ context.Context, slug string) (*repository.Project, error) {
	for _, p := range f.projects {
		if p.Slug == slug {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeProjectRepo) FindFeatured(_ context.Context) (*repository.Project, error) {
	for _, p := range f.projects {
		if p.Featured {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeProjectRepo) List(_ context.Context, filter repository.ProjectFilter) ([]*repository.Project, error) {
	var out []*repository.Project
	for _, p := range f.projects {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Featured != nil && p.Featured != *filter.Featured {
			continue
		}
		copied := *p
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeProjectRepo) Update(_ context.Context, p *repository.Project) error {
	for id, existing := range f.projects {
		if id != p.ID && existing.Slug == p.Slug {
			return repository.ErrSlugTaken
		}
	}
	if p.Featured {
		for id, existing := range f.projects {
			if id != p.ID {
				existing.Featured = false
			}
		}
	}
	copied := *p
	f.projects[p.ID] = &copied
	return nil
}

func (f *fakeProjectRepo) SetFeatured(_ context.Context, id string) error {
	if f.setFeaturedErr != nil {
		return f.setFeaturedErr
	}
	target, ok := f.projects[id]
	if !ok {
		return pgx.ErrNoRows
	}
	for _, p := range f.projects {
		p.Featured = false
	}
	target.Featured = true
	return nil
}

func (f *fakeProjectRepo) Delete(_ context.Context, id string) error {
	delete(f.projects, id)
	return nil
}

func (f *fakeProjectRepo) UpdateStatusBulk(_ context.Context, ids []string, status string) (int64, error) {
	var n int64
	for _, id := range ids {
		if p, ok := f.projects[id]; ok {
			p.Status = status
			n++
		}
	}
	return n, nil
}

func (f *fakeProjectRepo) Reorder(_ context.Context, orders []repository.ProjectOrder) error {
	for _, o := range orders {
		if p, ok := f.projects[o.ID]; ok {
			p.SortOrder = o.SortOrder
		}
	}
	return nil
}

func (f *fakeProjectRepo) SlugExists(_ context.Context, slug, excludeID string) (bool, error) {
	for id, p := range f.projects {
		if p.Slug == slug && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func TestPortfolioCreateGeneratesSlug(t *testing.T) {
	repo := newFakeProjectRepo()
	svc := NewPortfolioService(repo, nil)

	project, err := svc.Create(context.Background(), &repository.Project{
		Title:       "Fashion Forward! 2024",
		Description: "A case study",
	})
	require.NoError(t, err)
	assert.Equal(t, "fashion-forward-2024", project.Slug)
	assert.Equal(t, "draft", project.Status)
	assert.Equal(t, "other", project.Category)
}

func TestPortfolioCreateSuffixesDuplicateSlug(t *testing.T) {
	repo := newFakeProjectRepo()
	svc := NewPortfolioService(repo, nil)
	ctx := context.Background()

	first, err := svc.Create(ctx, &repository.Project{Title: "Brand Refresh", Description: "x"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, &repository.Project{Title: "Brand Refresh", Description: "x"})
	require.NoError(t, err)
	third, err := svc.Create(ctx, &repository.Project{Title: "Brand Refresh", Description: "x"})
	require.NoError(t, err)

	assert.Equal(t, "brand-refresh", first.Slug)
	assert.Equal(t, "brand-refresh-2", second.Slug)
	assert.Equal(t, "brand-refresh-3", third.Slug)
}

func TestPortfolioCreateRejectsBadCategory(t *testing.T) {
	svc := NewPortfolioService(newFakeProjectRepo(), nil)

	_, err := svc.Create(context.Background(), &repository.Project{
		Title:    "Bad Category",
		Category: "interpretive-dance",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetFeaturedDemotesPrevious(t *testing.T) {
	repo := newFakeProjectRepo()
	svc := NewPortfolioService(repo, nil)
	ctx := context.Background()

	a, err := svc.Create(ctx, &repository.Project{Title: "Alpha", Featured: true})
	require.NoError(t, err)
	b, err := svc.Create(ctx, &repository.Project{Title: "Beta"})
	require.NoError(t, err)

	featured, err := svc.GetFeatured(ctx)
	require.NoError(t, err)
	assert.Equal(t, a.ID, featured.ID)

	_, err = svc.SetFeatured(ctx, b.ID)
	require.NoError(t, err)

	featured, err = svc.GetFeatured(ctx)
	require.NoError(t, err)
	assert.Equal(t, b.ID, featured.ID)

	// The previous holder must have been demoted, not duplicated.
	oldA, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, oldA.Featured)
}

func TestSetFeaturedErrorMapping(t *testing.T) {
	repo := newFakeProjectRepo()
	svc := NewPortfolioService(repo, nil)
	ctx := context.Background()

	_, err := svc.SetFeatured(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	// Repository failures other than a missing row pass through untouched.
	repo.setFeaturedErr = errors.New("connection refused")
	_, err = svc.SetFeatured(ctx, "missing")
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "connection refused")
}

func TestCreateFeaturedDemotesExisting(t *testing.T) {
	repo := newFakeProjectRepo()
	svc := NewPortfolioService(repo, nil)
	ctx := context.Background()

	a, err := svc.Create(ctx, &repository.Project{Title: "First", Featured: true})
	require.NoError(t, err)
	b, err := svc.Create(ctx, &repository.Project{Title: "Second", Featured: true})
	require.NoError(t, err)

	oldA, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, oldA.Featured)

	featured, err := svc.GetFeatured(ctx)
	require.NoError(t, err)
	assert.Equal(t, b.ID, featured.ID)
}

func TestGetFeaturedEmpty(t *testing.T) {
	svc := NewPortfolioService(newFakeProjectRepo(), nil)

	_, err := svc.GetFeatured(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetResolvesSlugThenID(t *testing.T) {
	repo := newFakeProjectRepo()
	svc := NewPortfolioService(repo, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, &repository.Project{Title: "Lookup Me"})
	require.NoError(t, err)

	byID, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byID.ID)

	bySlug, err := svc.Get(ctx, "lookup-me")
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)

	_, err = svc.Get(ctx, "does-not-exist")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateRegeneratesSlugOnTitleChange(t *testing.T) {
	repo := newFakeProjectRepo()
	svc := NewPortfolioService(repo, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, &repository.Project{Title: "Old Title"})
	require.NoError(t, err)

	in := *created
	in.Title = "New Title"
	in.Slug = ""
	updated, err := svc.Update(ctx, created.ID, &in)
	require.NoError(t, err)
	assert.Equal(t, "new-title", updated.Slug)

	// Same title again keeps the stored slug.
	in2 := *updated
	in2.Slug = ""
	updated2, err := svc.Update(ctx, created.ID, &in2)
	require.NoError(t, err)
	assert.Equal(t, "new-title", updated2.Slug)
}

func TestBulkUpdateStatusValidation(t *testing.T) {
	svc := NewPortfolioService(newFakeProjectRepo(), nil)

	_, err := svc.BulkUpdateStatus(context.Background(), nil, "published")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.BulkUpdateStatus(context.Background(), []string{"x"}, "nonsense")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
