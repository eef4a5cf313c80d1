// main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/api/handlers"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/api/middleware"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/config"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/cron"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/db"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/email"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/ratelimit"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/repository"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/seed"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/service"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/socket"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/storage"
)

func main() {
	// ============================================
	// Load environment variables
	// ============================================
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// ============================================
	// Load configuration
	// ============================================
	cfg := config.Load()

	// ============================================
	// Set Gin mode
	// ============================================
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// ============================================
	// Run Database Migrations FIRST
	// ============================================
	log.Println("🔄 Running database migrations...")
	migrationsPath := "./internal/db/migrations"
	if err := db.RunMigrations(cfg.DatabaseURL, migrationsPath); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	log.Println("✅ Database migrations completed")

	// ============================================
	// Initialize PostgreSQL
	// ============================================
	pgDB, err := db.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to PostgreSQL: %v", err)
	}
	defer pgDB.Close()

	// ============================================
	// Initialize Repositories
	// ============================================
	repos := repository.NewRepositories(pgDB.Pool)
	log.Println("📦 Repositories initialized")

	// ============================================
	// Initialize Redis (optional)
	// ============================================
	var redisDB *db.RedisDB
	if cfg.RedisURL != "" {
		redisDB, err = db.NewRedisDB(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️ Failed to connect to Redis: %v (continuing without cache)", err)
			redisDB = nil
		} else {
			defer redisDB.Close()
			log.Println("⚡ Redis cache enabled")
		}
	}

	// ============================================
	// Contact form rate limiter
	// ============================================
	var limiter ratelimit.Limiter
	if redisDB != nil {
		limiter = ratelimit.NewRedisLimiter(redisDB.Client, cfg.RateLimitMax, cfg.RateLimitWindow)
		log.Println("🛡️  Rate limiter using Redis")
	} else {
		limiter = ratelimit.NewMemoryLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)
		log.Println("🛡️  Rate limiter using in-process fallback")
	}

	// ============================================
	// Initialize Email Service (optional)
	// ============================================
	var emailSvc *email.Service
	if cfg.SMTPHost != "" {
		emailSvc = email.NewService(&email.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
			FromName: cfg.SMTPFromName,
			UseTLS:   cfg.SMTPUseTLS,
		})
		log.Println("📧 Email service initialized")
	} else {
		log.Println("⚠️  Email not configured (SMTP_HOST not set)")
	}

	// ============================================
	// Initialize Object Storage (optional)
	// ============================================
	var storageSvc *storage.Service
	if cfg.S3Endpoint != "" {
		storageSvc, err = storage.NewService(&storage.Config{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			UseSSL:    cfg.S3UseSSL,
			PublicURL: cfg.S3PublicURL,
		})
		if err != nil {
			log.Printf("⚠️ Object storage unavailable: %v (uploads disabled)", err)
			storageSvc = nil
		}
	} else {
		log.Println("⚠️  Object storage not configured (S3_ENDPOINT not set)")
	}

	// ============================================
	// Initialize WebSocket Hub
	// ============================================
	hub := socket.NewHub()
	go hub.Run()
	broadcaster := socket.NewBroadcaster(hub)
	wsHandler := socket.NewHandler(hub, cfg.JWTSecret)
	log.Println("🔌 WebSocket hub initialized")

	// ============================================
	// Seed Data (for development)
	// ============================================
	if cfg.Environment != "production" {
		seed.SeedData(repos)
	}

	// ============================================
	// Initialize All Services
	// ============================================
	services := service.NewServices(&service.ServiceDeps{
		Config:      cfg,
		Repos:       repos,
		EmailSvc:    emailSvc,
		Broadcaster: broadcaster,
		Cache:       redisDB,
	})
	log.Println("✨ All services initialized")

	// ============================================
	// Initialize Handlers
	// ============================================
	h := handlers.NewHandlers(services, storageSvc)

	// ============================================
	// Initialize Cron Scheduler
	// ============================================
	cronScheduler := cron.NewScheduler(repos.UserRepo, repos.ContactRepo, emailSvc, cfg.AdminEmail)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	// ============================================
	// Create Gin Router
	// ============================================
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"timestamp":  time.Now(),
			"database":   "connected",
			"cache":      getCacheStatus(redisDB),
			"email":      getEmailStatus(emailSvc),
			"storage":    getStorageStatus(storageSvc),
			"ws_clients": hub.GetConnectedClientsCount(),
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// ============================================
		// Public routes (no auth required)
		// ============================================
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/logout", h.Auth.Logout)
		}

		// Public site data
		api.GET("/portfolio", h.Portfolio.ListPublished)
		api.GET("/portfolio/featured", h.Portfolio.GetFeatured)
		api.GET("/portfolio/:idOrSlug", h.Portfolio.Get)
		api.GET("/pricing", h.Pricing.ListActive)
		api.GET("/content", h.Content.List)
		api.GET("/content/:section", h.Content.Get)

		// Contact form (IP rate limited)
		api.POST("/contact", middleware.RateLimit(limiter), h.Contact.Submit)

		// WebSocket route (admin live feed)
		api.GET("/ws", wsHandler.HandleWebSocket)

		// ============================================
		// Protected routes (admin panel)
		// ============================================
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(services.Auth))
		{
			protected.GET("/auth/me", h.User.GetCurrentUser)

			// Editors and admins run the day-to-day panel.
			staff := protected.Group("")
			staff.Use(middleware.RequireRole("admin", "editor"))
			{
				// Portfolio management
				staff.GET("/portfolio/admin", h.Portfolio.ListAll)
				staff.POST("/portfolio", h.Portfolio.Create)
				staff.PUT("/portfolio/:id", h.Portfolio.Update)
				staff.PATCH("/portfolio/bulk-status", h.Portfolio.BulkUpdateStatus)
				staff.PATCH("/portfolio/reorder", h.Portfolio.Reorder)
				staff.PATCH("/portfolio/:id/featured", h.Portfolio.SetFeatured)

				// Pricing management
				staff.GET("/pricing/admin", h.Pricing.ListAll)
				staff.GET("/pricing/admin/:id", h.Pricing.Get)
				staff.POST("/pricing", h.Pricing.Create)
				staff.PUT("/pricing/admin/:id", h.Pricing.Update)
				staff.PATCH("/pricing/admin/:id/popular", h.Pricing.TogglePopular)
				staff.PATCH("/pricing/admin/:id/restore", h.Pricing.Restore)
				staff.DELETE("/pricing/admin/:id", h.Pricing.Deactivate)

				// Lead inbox
				staff.GET("/contact/admin", h.Contact.List)
				staff.GET("/contact/admin/:id", h.Contact.Get)
				staff.PUT("/contact/admin/:id", h.Contact.Update)

				// Site content
				staff.PUT("/content/:section", h.Content.Update)

				// File uploads
				staff.POST("/upload", h.Upload.Upload)
				staff.DELETE("/upload", h.Upload.Delete)
			}

			// Destructive operations and account management are admin-only.
			admin := protected.Group("")
			admin.Use(middleware.RequireRole("admin"))
			{
				admin.DELETE("/portfolio/:id", h.Portfolio.Delete)
				admin.DELETE("/contact/admin/:id", h.Contact.Delete)

				admin.GET("/admin/users", h.User.List)
				admin.POST("/admin/users", h.User.Create)
				admin.PUT("/admin/users/:id", h.User.Update)
				admin.DELETE("/admin/users/:id", h.User.Delete)
			}
		}
	}

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		log.Printf("🚀 Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func getCacheStatus(redisDB *db.RedisDB) string {
	if redisDB != nil {
		return "connected"
	}
	return "disabled"
}

func getEmailStatus(emailSvc *email.Service) string {
	if emailSvc != nil {
		return "configured"
	}
	return "disabled"
}

func getStorageStatus(storageSvc *storage.Service) string {
	if storageSvc != nil {
		return "configured"
	}
	return "disabled"
}
