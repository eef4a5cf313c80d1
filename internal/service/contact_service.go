package service

import (
	"context"
	"log"
	"sync"

	"github.com/pixelcraft-digital/pixelcraft-backend/internal/config"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/email"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/repository"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/socket"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/types"
)

// ============================================
// Contact Service
// ============================================

// ContactEmailer is the slice of the email service the contact flow depends on.
type ContactEmailer interface {
	SendContactThankYou(to string, data email.ContactThankYouData) error
	SendLeadNotification(to string, data email.LeadNotificationData) error
}

// EmailOutcome reports whether one of the two dispatch emails went out.
type EmailOutcome struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// EmailStatus reports both halves of the submission dispatch. Either half
// failing never fails the submission itself.
type EmailStatus struct {
	UserEmail  EmailOutcome `json:"userEmail"`
	AdminEmail EmailOutcome `json:"adminEmail"`
}

type ContactService interface {
	Submit(ctx context.Context, contact *repository.Contact) (*repository.Contact, EmailStatus, error)
	List(ctx context.Context, filter repository.ContactFilter) ([]*repository.Contact, int, error)
	Get(ctx context.Context, id string) (*repository.Contact, error)
	Update(ctx context.Context, id string, status, priority, notes string) (*repository.Contact, error)
	Delete(ctx context.Context, id string) error
}

type contactService struct {
	contactRepo repository.ContactRepository
	emailer     ContactEmailer
	broadcaster *socket.Broadcaster
	cfg         *config.Config
}

func NewContactService(contactRepo repository.ContactRepository, emailer ContactEmailer, broadcaster *socket.Broadcaster, cfg *config.Config) ContactService {
	return &contactService{contactRepo: contactRepo, emailer: emailer, broadcaster: broadcaster, cfg: cfg}
}

func (s *contactService) Submit(ctx context.Context, contact *repository.Contact) (*repository.Contact, EmailStatus, error) {
	var status EmailStatus

	if contact.Name == "" || contact.Email == "" || contact.Message == "" {
		return nil, status, ErrInvalidInput
	}
	if !types.IsValidProjectType(contact.ProjectType) ||
		!types.IsValidBudget(contact.Budget) ||
		!types.IsValidTimeline(contact.Timeline) {
		return nil, status, ErrInvalidInput
	}

	contact.Status = types.ContactNew
	contact.Priority = types.PriorityMedium

	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, status, err
	}

	status = s.dispatchEmails(contact)

	if status.UserEmail.Success || status.AdminEmail.Success {
		if err := s.contactRepo.UpdateEmailFlags(ctx, contact.ID,
			status.UserEmail.Success, status.AdminEmail.Success); err != nil {
			log.Printf("[Contact] Failed to record email flags for %s: %v", contact.ID, err)
		}
		contact.EmailSentToUser = status.UserEmail.Success
		contact.EmailSentToAdmin = status.AdminEmail.Success
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastLeadCreated(map[string]interface{}{
			"id":          contact.ID,
			"name":        contact.Name,
			"email":       contact.Email,
			"projectType": contact.ProjectType,
		})
	}

	return contact, status, nil
}

// dispatchEmails sends the thank-you and the internal notification
// concurrently and reports each outcome independently.
func (s *contactService) dispatchEmails(contact *repository.Contact) EmailStatus {
	var status EmailStatus

	if s.emailer == nil {
		status.UserEmail.Error = "email service not configured"
		status.AdminEmail.Error = "email service not configured"
		return status
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		err := s.emailer.SendContactThankYou(contact.Email, email.ContactThankYouData{
			Name:        contact.Name,
			ProjectType: contact.ProjectType,
			Budget:      contact.Budget,
			Timeline:    contact.Timeline,
			Message:     contact.Message,
		})
		if err != nil {
			log.Printf("[Contact] Thank-you email to %s failed: %v", contact.Email, err)
			status.UserEmail.Error = err.Error()
			return
		}
		status.UserEmail.Success = true
	}()

	go func() {
		defer wg.Done()
		err := s.emailer.SendLeadNotification(s.cfg.AdminEmail, email.LeadNotificationData{
			Name:        contact.Name,
			Email:       contact.Email,
			Company:     contact.Company,
			Phone:       contact.Phone,
			ProjectType: contact.ProjectType,
			Budget:      contact.Budget,
			Timeline:    contact.Timeline,
			Message:     contact.Message,
			AdminURL:    s.cfg.FrontendURL + "/admin/leads/" + contact.ID,
		})
		if err != nil {
			log.Printf("[Contact] Lead notification to %s failed: %v", s.cfg.AdminEmail, err)
			status.AdminEmail.Error = err.Error()
			return
		}
		status.AdminEmail.Success = true
	}()

	wg.Wait()
	return status
}

func (s *contactService) List(ctx context.Context, filter repository.ContactFilter) ([]*repository.Contact, int, error) {
	if filter.Status != "" && !types.IsValidContactStatus(filter.Status) {
		return nil, 0, ErrInvalidInput
	}
	if filter.Priority != "" && !types.IsValidPriority(filter.Priority) {
		return nil, 0, ErrInvalidInput
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.contactRepo.List(ctx, filter)
}

func (s *contactService) Get(ctx context.Context, id string) (*repository.Contact, error) {
	contact, err := s.contactRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, ErrNotFound
	}
	return contact, nil
}

func (s *contactService) Update(ctx context.Context, id string, status, priority, notes string) (*repository.Contact, error) {
	contact, err := s.contactRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, ErrNotFound
	}

	if status != "" {
		if !types.IsValidContactStatus(status) {
			return nil, ErrInvalidInput
		}
		contact.Status = status
	}
	if priority != "" {
		if !types.IsValidPriority(priority) {
			return nil, ErrInvalidInput
		}
		contact.Priority = priority
	}
	if notes != "" {
		contact.Notes = notes
	}

	if err := s.contactRepo.Update(ctx, contact); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastLeadUpdated(map[string]interface{}{
			"id":       contact.ID,
			"status":   contact.Status,
			"priority": contact.Priority,
		})
	}
	return contact, nil
}

func (s *contactService) Delete(ctx context.Context, id string) error {
	contact, err := s.contactRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if contact == nil {
		return ErrNotFound
	}

	if err := s.contactRepo.Delete(ctx, id); err != nil {
		return err
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastLeadDeleted(id)
	}
	return nil
}
