package domain

import (
	"context"
	"time"
)

// ViewSource says which data partition a request acts on. The partition is
// absolute: a demo view never touches live tables and vice versa.
type ViewSource string

const (
	ViewSourceDemo ViewSource = "demo"
	ViewSourceLive ViewSource = "live"
)

// DemoSession is the per-user demo toggle. At most one row per user. While
// enabled, every job/application read and write is redirected to the demo_*
// tables. Demo sessions never auto-expire.
type DemoSession struct {
	UserID    string    `json:"user_id"`
	Enabled   bool      `json:"enabled"`
	DemoView  *string   `json:"demo_view,omitempty"` // job_seeker | job_provider
	UpdatedAt time.Time `json:"updated_at"`
}

// RoleOverride is a temporary, self-granted impersonation of the other account
// type. Expired rows are ignored by queries, not purged.
type RoleOverride struct {
	UserID    string    `json:"user_id"`
	ViewAs    string    `json:"view_as"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// EffectiveView is the resolved outcome of identity resolution for one
// request: which role lens applies and which data partition to use. It is
// derived per request and never cached process-wide.
type EffectiveView struct {
	IsDemoEnabled     bool       `json:"is_demo_enabled"`
	ViewRole          string     `json:"view_role"`
	Source            ViewSource `json:"source"`
	DemoView          *string    `json:"demo_view,omitempty"`
	OverrideExpiresAt *time.Time `json:"override_expires_at,omitempty"`
}

// IsDemo reports whether the view acts on the demo partition.
func (v *EffectiveView) IsDemo() bool {
	return v != nil && v.Source == ViewSourceDemo
}

// ViewQuery names the inputs to effective-view resolution. BaseAccountType is
// an optimization: callers that already hold the profile pass it to skip one
// lookup.
type ViewQuery struct {
	UserID          string
	BaseAccountType string
}

type DemoSessionRepository interface {
	// GetByUserID returns (nil, nil) when the user has no demo session row.
	GetByUserID(ctx context.Context, userID string) (*DemoSession, error)
	Upsert(ctx context.Context, session *DemoSession) error
}

type RoleOverrideRepository interface {
	// GetActive returns the override with expires_at > now, or (nil, nil).
	GetActive(ctx context.Context, userID string, now time.Time) (*RoleOverride, error)
	Upsert(ctx context.Context, override *RoleOverride) error
	Delete(ctx context.Context, userID string) error
}

type ViewUsecase interface {
	GetEffectiveView(ctx context.Context, query ViewQuery) (*EffectiveView, error)
	EnableDemo(ctx context.Context, userID, demoView string) (*EffectiveView, error)
	DisableDemo(ctx context.Context, userID string) (*EffectiveView, error)
	SetOverride(ctx context.Context, userID, viewAs string) (*EffectiveView, error)
	ClearOverride(ctx context.Context, userID string) (*EffectiveView, error)
}
