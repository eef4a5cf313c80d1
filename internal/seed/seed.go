// internal/seed/seed.go
package seed

import (
	"context"
	"encoding/json"
	"log"

	"github.com/pixelcraft-digital/pixelcraft-backend/internal/repository"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// SeedData creates a development admin, the three starter plans, a sample
// case study, and the hero content block. It is a no-op when users exist.
func SeedData(repos *repository.Repositories) {
	ctx := context.Background()

	users, _ := repos.UserRepo.FindAll(ctx)
	if len(users) > 0 {
		log.Println("[Seed] Data already exists, skipping...")
		return
	}

	log.Println("[Seed] 🌱 Creating initial data...")

	// ============================================
	// ADMIN ACCOUNT
	// ============================================
	password, _ := bcrypt.GenerateFromPassword([]byte("pixelcraft123"), bcrypt.DefaultCost)

	admin := &repository.User{
		Username:     "admin",
		Email:        "hello@pixelcraft.digital",
		PasswordHash: string(password),
		FirstName:    "Studio",
		LastName:     "Admin",
		Role:         types.RoleAdmin,
		IsActive:     true,
	}
	if err := repos.UserRepo.Create(ctx, admin); err != nil {
		log.Printf("[Seed] ❌ Failed to create admin: %v", err)
		return
	}
	log.Println("✅ Created admin account (hello@pixelcraft.digital / pixelcraft123)")

	// ============================================
	// PRICING PLANS (the three public tiers)
	// ============================================
	plans := []*repository.PricingPlan{
		{
			Name:        "Launch",
			Price:       decimal.NewFromInt(2900),
			PriceNote:   "one-time",
			Description: "A polished marketing site for early-stage teams",
			Features: []string{
				"Up to 5 pages",
				"Responsive design",
				"Basic SEO setup",
				"2 revision rounds",
			},
			CTA:       "Start your project",
			SortOrder: 0,
		},
		{
			Name:        "Grow",
			Price:       decimal.NewFromInt(7900),
			PriceNote:   "one-time",
			Description: "Custom design and CMS for growing businesses",
			Features: []string{
				"Up to 15 pages",
				"Custom design system",
				"CMS integration",
				"Analytics setup",
				"4 revision rounds",
			},
			CTA:       "Start your project",
			Note:      "Most projects land here",
			SortOrder: 1,
			Popular:   true,
		},
		{
			Name:        "Scale",
			Price:       decimal.NewFromInt(19900),
			PriceNote:   "starting at",
			Description: "Full product design and build for ambitious teams",
			Features: []string{
				"Unlimited pages",
				"Web application development",
				"E-commerce or custom backend",
				"Dedicated project manager",
				"Ongoing support",
			},
			CTA:       "Talk to us",
			SortOrder: 2,
		},
	}
	for _, plan := range plans {
		if err := repos.PricingRepo.Create(ctx, plan); err != nil {
			log.Printf("[Seed] ❌ Failed to create plan %s: %v", plan.Name, err)
		}
	}
	log.Printf("✅ Created %d pricing plans", len(plans))

	// ============================================
	// SAMPLE CASE STUDY
	// ============================================
	project := &repository.Project{
		Title:       "Northwind Commerce Replatform",
		Slug:        "northwind-commerce-replatform",
		Subtitle:    "From legacy storefront to headless commerce",
		Description: "A ground-up rebuild of Northwind's online store with a headless stack.",
		LongDescription: "Northwind came to us with a decade-old storefront that was slow, " +
			"hard to update, and losing mobile customers. We rebuilt it as a headless " +
			"commerce platform with a design system the in-house team now runs themselves.",
		Category: types.CategoryEcommerce,
		Client:   "Northwind Traders",
		Tags:     []string{"ecommerce", "headless", "design-system"},
		Status:   types.ProjectPublished,
		Featured: true,
		KeyResults: []repository.KeyResult{
			{Metric: "+64%", Description: "Mobile conversion rate", Icon: "trending-up"},
			{Metric: "1.2s", Description: "Largest contentful paint", Icon: "zap"},
		},
		Technologies: []repository.Technology{
			{Name: "Next.js", Category: "frontend", Color: "#000000"},
			{Name: "Go", Category: "backend", Color: "#00ADD8"},
			{Name: "PostgreSQL", Category: "database", Color: "#336791"},
		},
		Timeline: []repository.TimelinePhase{
			{Phase: "Discovery", Duration: "2 weeks", Description: "Stakeholder interviews and analytics audit",
				Deliverables: []string{"Research report", "Success metrics"}},
			{Phase: "Design", Duration: "4 weeks", Description: "Design system and page templates",
				Deliverables: []string{"Figma library", "Prototype"}},
			{Phase: "Build", Duration: "8 weeks", Description: "Headless storefront and migration",
				Deliverables: []string{"Production site", "CMS training"}},
		},
		Testimonials: []repository.Testimonial{
			{Quote: "The new site paid for itself in the first quarter.",
				Author: "Elena Morozova", Position: "Head of Digital", Company: "Northwind Traders"},
		},
		Features:  []string{"Headless CMS", "Edge rendering", "A/B testing"},
		CreatedBy: &admin.ID,
	}
	if err := repos.ProjectRepo.Create(ctx, project); err != nil {
		log.Printf("[Seed] ❌ Failed to create sample project: %v", err)
	} else {
		log.Println("✅ Created sample case study")
	}

	// ============================================
	// HERO CONTENT BLOCK
	// ============================================
	hero, _ := json.Marshal(map[string]interface{}{
		"headline":    "We build digital products people remember",
		"subheadline": "PixelCraft Digital is a design and engineering studio for ambitious brands.",
		"cta":         map[string]string{"label": "See our work", "href": "/portfolio"},
	})
	if err := repos.ContentRepo.Upsert(ctx, &repository.ContentSection{
		Section: "hero",
		Data:    hero,
	}); err != nil {
		log.Printf("[Seed] ❌ Failed to seed hero content: %v", err)
	} else {
		log.Println("✅ Seeded hero content")
	}

	log.Println("[Seed] 🌱 Done")
}
