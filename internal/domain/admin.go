package domain

import "context"

// AdminStats contains staff console dashboard statistics.
type AdminStats struct {
	TotalUsers         int64              `json:"totalUsers"`
	UsersByAccountType UsersByAccountType `json:"usersByAccountType"`
	TotalJobs          int64              `json:"totalJobs"`
	JobsByStatus       JobsByStatus       `json:"jobsByStatus"`
	TotalApplications  int64              `json:"totalApplications"`
	ActiveDemoSessions int64              `json:"activeDemoSessions"`
	PendingConsents    int64              `json:"pendingConsents"`
	SystemHealth       SystemHealth       `json:"systemHealth"`
}

type UsersByAccountType struct {
	JobSeeker   int64 `json:"jobSeeker"`
	JobProvider int64 `json:"jobProvider"`
	Staff       int64 `json:"staff"`
}

type JobsByStatus struct {
	Open      int64 `json:"open"`
	Reviewing int64 `json:"reviewing"`
	Reserved  int64 `json:"reserved"`
	Filled    int64 `json:"filled"`
	Closed    int64 `json:"closed"`
}

type SystemHealth struct {
	Status      string `json:"status"` // "healthy", "degraded", "down"
	LastChecked string `json:"lastChecked"`
}

// AdminUser is the staff console's user list row.
type AdminUser struct {
	ID                    string `json:"id"`
	DisplayName           string `json:"displayName"`
	AccountType           string `json:"accountType"`
	City                  string `json:"city"`
	IsStaff               bool   `json:"isStaff"`
	IsDisabled            bool   `json:"isDisabled"`
	GuardianConsentStatus string `json:"guardianConsentStatus"`
	CreatedAt             string `json:"createdAt"`
}

// AdminJob is the staff console's moderation row.
type AdminJob struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	PostedBy    string `json:"postedBy"`
	CreatorName string `json:"creatorName"`
	Status      string `json:"status"`
	MarketName  string `json:"marketName"`
	CreatedAt   string `json:"createdAt"`
}

// PaginatedResult wraps list responses for the staff console.
type PaginatedResult[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

type AdminRepository interface {
	GetStats(ctx context.Context) (*AdminStats, error)
	ListUsers(ctx context.Context, limit, offset int) ([]AdminUser, int64, error)
	ListJobs(ctx context.Context, status string, limit, offset int) ([]AdminJob, int64, error)
}

type AdminUsecase interface {
	GetStats(ctx context.Context) (*AdminStats, error)
	ListUsers(ctx context.Context, page, pageSize int) (*PaginatedResult[AdminUser], error)
	SetUserDisabled(ctx context.Context, actorID, userID string, disabled bool) error
	ListJobs(ctx context.Context, status string, page, pageSize int) (*PaginatedResult[AdminJob], error)
	CloseJob(ctx context.Context, actorID, jobID string) error
	ListPendingConsents(ctx context.Context, page, pageSize int) ([]GuardianConsent, error)
}
