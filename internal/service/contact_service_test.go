package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/pixelcraft-digital/pixelcraft-backend/internal/config"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/email"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContactRepo struct {
	contacts map[string]*repository.Contact
	nextID   int
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{contacts: make(map[string]*repository.Contact)}
}

func (f *fakeContactRepo) Create(_ context.Context, c *repository.Contact) error {
	f.nextID++
	c.ID = fmt.Sprintf("contact-%d", f.nextID)
	c.CreatedAt = time.Now()
	copied := *c
	f.contacts[c.ID] = &copied
	return nil
}

func (f *fakeContactRepo) FindByID(_ context.Context, id string) (*repository.Contact, error) {
	c, ok := f.contacts[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (f *fakeContactRepo) List(_ context.Context, filter repository.ContactFilter) ([]*repository.Contact, int, error) {
	var out []*repository.Contact
	for _, c := range f.contacts {
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && c.Priority != filter.Priority {
			continue
		}
		copied := *c
		out = append(out, &copied)
	}
	return out, len(out), nil
}

func (f *fakeContactRepo) Update(_ context.Context, c *repository.Contact) error {
	copied := *c
	f.contacts[c.ID] = &copied
	return nil
}

func (f *fakeContactRepo) UpdateEmailFlags(_ context.Context, id string, sentToUser, sentToAdmin bool) error {
	if c, ok := f.contacts[id]; ok {
		c.EmailSentToUser = sentToUser
		c.EmailSentToAdmin = sentToAdmin
	}
	return nil
}

func (f *fakeContactRepo) Delete(_ context.Context, id string) error {
	delete(f.contacts, id)
	return nil
}

func (f *fakeContactRepo) FindCreatedSince(_ context.Context, since time.Time) ([]*repository.Contact, error) {
	var out []*repository.Contact
	for _, c := range f.contacts {
		if c.CreatedAt.After(since) {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeContactRepo) ArchiveCompletedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for _, c := range f.contacts {
		if c.Status == "completed" && c.UpdatedAt.Before(cutoff) {
			c.Status = "archived"
			n++
		}
	}
	return n, nil
}

// fakeEmailer records dispatches and can fail either leg independently.
type fakeEmailer struct {
	mu        sync.Mutex
	userErr   error
	adminErr  error
	userSent  []string
	adminSent []string
}

func (f *fakeEmailer) SendContactThankYou(to string, _ email.ContactThankYouData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.userErr != nil {
		return f.userErr
	}
	f.userSent = append(f.userSent, to)
	return nil
}

func (f *fakeEmailer) SendLeadNotification(to string, _ email.LeadNotificationData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.adminErr != nil {
		return f.adminErr
	}
	f.adminSent = append(f.adminSent, to)
	return nil
}

func testContactConfig() *config.Config {
	return &config.Config{
		AdminEmail:  "studio@example.com",
		FrontendURL: "http://localhost:3000",
	}
}

func validSubmission() *repository.Contact {
	return &repository.Contact{
		Name:        "Jamie Client",
		Email:       "jamie@example.com",
		ProjectType: "website",
		Budget:      "10k-25k",
		Timeline:    "1-3-months",
		Message:     "We need a new marketing site before our launch.",
	}
}

func TestSubmitSendsBothEmails(t *testing.T) {
	repo := newFakeContactRepo()
	emailer := &fakeEmailer{}
	svc := NewContactService(repo, emailer, nil, testContactConfig())

	contact, status, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)

	assert.True(t, status.UserEmail.Success)
	assert.True(t, status.AdminEmail.Success)
	assert.Equal(t, []string{"jamie@example.com"}, emailer.userSent)
	assert.Equal(t, []string{"studio@example.com"}, emailer.adminSent)
	assert.True(t, contact.EmailSentToUser)
	assert.True(t, contact.EmailSentToAdmin)
	assert.Equal(t, "new", contact.Status)
	assert.Equal(t, "medium", contact.Priority)
}

func TestSubmitSucceedsWhenAdminEmailFails(t *testing.T) {
	repo := newFakeContactRepo()
	emailer := &fakeEmailer{adminErr: errors.New("smtp: connection refused")}
	svc := NewContactService(repo, emailer, nil, testContactConfig())

	contact, status, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err, "a mail outage must not lose the lead")

	assert.True(t, status.UserEmail.Success)
	assert.False(t, status.AdminEmail.Success)
	assert.Contains(t, status.AdminEmail.Error, "connection refused")

	stored, err := svc.Get(context.Background(), contact.ID)
	require.NoError(t, err)
	assert.True(t, stored.EmailSentToUser)
	assert.False(t, stored.EmailSentToAdmin)
}

func TestSubmitSucceedsWhenBothEmailsFail(t *testing.T) {
	repo := newFakeContactRepo()
	emailer := &fakeEmailer{
		userErr:  errors.New("smtp down"),
		adminErr: errors.New("smtp down"),
	}
	svc := NewContactService(repo, emailer, nil, testContactConfig())

	contact, status, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)

	assert.False(t, status.UserEmail.Success)
	assert.False(t, status.AdminEmail.Success)

	stored, err := svc.Get(context.Background(), contact.ID)
	require.NoError(t, err)
	assert.False(t, stored.EmailSentToUser)
	assert.False(t, stored.EmailSentToAdmin)
}

func TestSubmitWithoutEmailerStillStores(t *testing.T) {
	repo := newFakeContactRepo()
	svc := NewContactService(repo, nil, nil, testContactConfig())

	contact, status, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)

	assert.False(t, status.UserEmail.Success)
	assert.False(t, status.AdminEmail.Success)
	assert.NotEmpty(t, contact.ID)
}

func TestSubmitRejectsUnknownEnums(t *testing.T) {
	svc := NewContactService(newFakeContactRepo(), &fakeEmailer{}, nil, testContactConfig())
	ctx := context.Background()

	bad := validSubmission()
	bad.ProjectType = "submarine"
	_, _, err := svc.Submit(ctx, bad)
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad = validSubmission()
	bad.Budget = "a-handshake"
	_, _, err = svc.Submit(ctx, bad)
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad = validSubmission()
	bad.Timeline = "someday"
	_, _, err = svc.Submit(ctx, bad)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestContactUpdateValidatesStatus(t *testing.T) {
	repo := newFakeContactRepo()
	svc := NewContactService(repo, &fakeEmailer{}, nil, testContactConfig())
	ctx := context.Background()

	contact, _, err := svc.Submit(ctx, validSubmission())
	require.NoError(t, err)

	updated, err := svc.Update(ctx, contact.ID, "contacted", "high", "Called them back")
	require.NoError(t, err)
	assert.Equal(t, "contacted", updated.Status)
	assert.Equal(t, "high", updated.Priority)
	assert.Equal(t, "Called them back", updated.Notes)

	_, err = svc.Update(ctx, contact.ID, "ghosted", "", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Update(ctx, "missing-id", "contacted", "", "")
	assert.ErrorIs(t, err, ErrNotFound)
}
