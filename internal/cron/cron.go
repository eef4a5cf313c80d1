package cron

import (
	"context"
	"log"
	"time"

	"github.com/pixelcraft-digital/pixelcraft-backend/internal/email"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/repository"
	"github.com/robfig/cron/v3"
)

// Scheduler handles scheduled maintenance tasks
type Scheduler struct {
	cron        *cron.Cron
	userRepo    repository.UserRepository
	contactRepo repository.ContactRepository
	emailSvc    *email.Service
	adminEmail  string
}

// NewScheduler creates a new scheduler. emailSvc may be nil when SMTP is
// not configured; the digest job is skipped in that case.
func NewScheduler(userRepo repository.UserRepository, contactRepo repository.ContactRepository, emailSvc *email.Service, adminEmail string) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		userRepo:    userRepo,
		contactRepo: contactRepo,
		emailSvc:    emailSvc,
		adminEmail:  adminEmail,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	// Run every hour - purge expired refresh tokens
	s.cron.AddFunc("0 * * * *", func() {
		log.Println("[Cron] Running refresh token cleanup...")
		s.cleanupRefreshTokens()
	})

	// Run every day at 3 AM - archive stale completed leads
	s.cron.AddFunc("0 3 * * *", func() {
		log.Println("[Cron] Running completed lead archival...")
		s.archiveStaleLeads()
	})

	// Run every Monday at 8 AM - weekly lead digest
	s.cron.AddFunc("0 8 * * 1", func() {
		log.Println("[Cron] Running weekly lead digest...")
		s.sendWeeklyDigest()
	})

	s.cron.Start()
	log.Println("[Cron] Scheduler started")
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[Cron] Scheduler stopped")
}

func (s *Scheduler) cleanupRefreshTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := s.userRepo.DeleteExpiredRefreshTokens(ctx)
	if err != nil {
		log.Printf("[Cron] ❌ Refresh token cleanup failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("[Cron] ✅ Deleted %d expired refresh tokens", deleted)
	}
}

func (s *Scheduler) archiveStaleLeads() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().AddDate(0, 0, -90)
	archived, err := s.contactRepo.ArchiveCompletedBefore(ctx, cutoff)
	if err != nil {
		log.Printf("[Cron] ❌ Lead archival failed: %v", err)
		return
	}
	if archived > 0 {
		log.Printf("[Cron] ✅ Archived %d completed leads older than 90 days", archived)
	}
}

func (s *Scheduler) sendWeeklyDigest() {
	if s.emailSvc == nil || s.adminEmail == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	since := time.Now().AddDate(0, 0, -7)
	contacts, err := s.contactRepo.FindCreatedSince(ctx, since)
	if err != nil {
		log.Printf("[Cron] ❌ Weekly digest query failed: %v", err)
		return
	}
	if len(contacts) == 0 {
		log.Println("[Cron] No new leads this week, skipping digest")
		return
	}

	data := email.WeeklyDigestData{Total: len(contacts)}
	for _, contact := range contacts {
		data.Leads = append(data.Leads, email.DigestLead{
			Name:        contact.Name,
			Email:       contact.Email,
			ProjectType: contact.ProjectType,
		})
	}

	if err := s.emailSvc.SendWeeklyDigest(s.adminEmail, data); err != nil {
		log.Printf("[Cron] ❌ Weekly digest send failed: %v", err)
		return
	}
	log.Printf("[Cron] ✅ Weekly digest sent (%d leads)", len(contacts))
}
