package types

// User roles
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

// Project status values
const (
	ProjectDraft     = "draft"
	ProjectPublished = "published"
	ProjectArchived  = "archived"
)

// Project categories
const (
	CategoryWeb       = "web"
	CategoryMobile    = "mobile"
	CategoryBranding  = "branding"
	CategoryEcommerce = "ecommerce"
	CategorySaaS      = "saas"
	CategoryOther     = "other"
)

// Contact status values
const (
	ContactNew        = "new"
	ContactContacted  = "contacted"
	ContactInProgress = "in-progress"
	ContactCompleted  = "completed"
	ContactArchived   = "archived"
)

// Contact priority values
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// MaxActivePlans caps how many pricing plans can be live at once.
const MaxActivePlans = 3

var ValidRoles = []string{RoleAdmin, RoleEditor, RoleViewer}

var ValidProjectStatuses = []string{ProjectDraft, ProjectPublished, ProjectArchived}

var ValidCategories = []string{
	CategoryWeb, CategoryMobile, CategoryBranding,
	CategoryEcommerce, CategorySaaS, CategoryOther,
}

var ValidContactStatuses = []string{
	ContactNew, ContactContacted, ContactInProgress,
	ContactCompleted, ContactArchived,
}

var ValidPriorities = []string{
	PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent,
}

// Contact form enums (mirrored by the public site's select inputs)
var ValidProjectTypes = []string{
	"website", "web-app", "mobile-app", "branding", "ecommerce", "other",
}

var ValidBudgets = []string{
	"under-5k", "5k-10k", "10k-25k", "25k-50k", "50k-plus", "not-sure",
}

var ValidTimelines = []string{
	"asap", "1-month", "1-3-months", "3-6-months", "flexible",
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func IsValidRole(role string) bool { return contains(ValidRoles, role) }

func IsValidProjectStatus(status string) bool { return contains(ValidProjectStatuses, status) }

func IsValidCategory(category string) bool { return contains(ValidCategories, category) }

func IsValidContactStatus(status string) bool { return contains(ValidContactStatuses, status) }

func IsValidPriority(priority string) bool { return contains(ValidPriorities, priority) }

func IsValidProjectType(t string) bool { return contains(ValidProjectTypes, t) }

func IsValidBudget(b string) bool { return contains(ValidBudgets, b) }

func IsValidTimeline(t string) bool { return contains(ValidTimelines, t) }
