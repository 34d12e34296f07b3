package domain

import (
	"context"
	"fmt"
	"time"
)

// Application status values.
//
// Valid status graph:
//
//	submitted ──► negotiating ──► accepted ──► completed
//	    │              │              │
//	    │              │              └──► cancelled
//	    ├──► waitlisted ──► accepted/rejected/withdrawn
//	    └──► accepted / rejected / auto_rejected / withdrawn
//
// withdrawn, rejected, auto_rejected, completed and cancelled are terminal.
const (
	ApplicationStatusSubmitted    = "submitted"
	ApplicationStatusWithdrawn    = "withdrawn"
	ApplicationStatusAccepted     = "accepted"
	ApplicationStatusRejected     = "rejected"
	ApplicationStatusAutoRejected = "auto_rejected"
	ApplicationStatusCompleted    = "completed"
	ApplicationStatusCancelled    = "cancelled"
	ApplicationStatusNegotiating  = "negotiating"
	ApplicationStatusWaitlisted   = "waitlisted"
)

// applicationTransitions lists every allowed (from → to) pair. Terminal
// statuses have no outgoing transitions.
var applicationTransitions = map[string][]string{
	ApplicationStatusSubmitted: {
		ApplicationStatusNegotiating,
		ApplicationStatusWaitlisted,
		ApplicationStatusAccepted,
		ApplicationStatusRejected,
		ApplicationStatusAutoRejected,
		ApplicationStatusWithdrawn,
	},
	ApplicationStatusNegotiating: {
		ApplicationStatusAccepted,
		ApplicationStatusRejected,
		ApplicationStatusWithdrawn,
	},
	ApplicationStatusWaitlisted: {
		ApplicationStatusAccepted,
		ApplicationStatusRejected,
		ApplicationStatusWithdrawn,
	},
	ApplicationStatusAccepted: {
		ApplicationStatusCompleted,
		ApplicationStatusCancelled,
	},
}

// ParseApplicationStatus converts a raw string to a known status, returning an
// error for unknown values.
func ParseApplicationStatus(s string) (string, error) {
	switch s {
	case ApplicationStatusSubmitted, ApplicationStatusWithdrawn, ApplicationStatusAccepted,
		ApplicationStatusRejected, ApplicationStatusAutoRejected, ApplicationStatusCompleted,
		ApplicationStatusCancelled, ApplicationStatusNegotiating, ApplicationStatusWaitlisted:
		return s, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// IsTransitionAllowed returns true when moving from → to is permitted.
func IsTransitionAllowed(from, to string) bool {
	for _, s := range applicationTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminalStatus reports whether a status has no outgoing transitions.
func IsTerminalStatus(s string) bool {
	return len(applicationTransitions[s]) == 0
}

// CanChat reports whether messages may still be sent on an application. Once
// the application leaves the active set the channel is read-only for both
// parties.
func CanChat(status string) bool {
	switch status {
	case ApplicationStatusSubmitted, ApplicationStatusNegotiating, ApplicationStatusAccepted:
		return true
	}
	return false
}

// Application is a seeker's application to a job. The demo partition has a
// twin in the demo_applications table.
type Application struct {
	ID              string    `json:"id"`
	JobID           string    `json:"job_id"`
	UserID          string    `json:"user_id"`
	Message         *string   `json:"message,omitempty"`
	Status          string    `json:"status"`
	RejectionReason *string   `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Joined data for list responses
	ApplicantName *string `json:"applicant_name,omitempty"`
	JobTitle      *string `json:"job_title,omitempty"`
}

// AcceptResult reports the accept operation including its fan-out side effect,
// so the UI can disclose how many peers were auto-rejected.
type AcceptResult struct {
	Application       *Application `json:"application"`
	AutoRejectedCount int          `json:"auto_rejected_count"`
	JobStatus         string       `json:"job_status"`
}

// ApplicationRepository is implemented for the live tables and the demo twin.
type ApplicationRepository interface {
	// Create inserts the application. Returns created=false when the user
	// already has an application for this job (conflict, no second row).
	Create(ctx context.Context, app *Application) (bool, error)
	GetByID(ctx context.Context, id string) (*Application, error)
	GetByJobID(ctx context.Context, jobID string) ([]Application, error)
	GetByUserID(ctx context.Context, userID string) ([]Application, error)
	ExistsForJob(ctx context.Context, jobID, userID string) (bool, error)
	UpdateStatus(ctx context.Context, id, status string, reason *string) error
	// Accept transitions one application to accepted, auto-rejects every
	// other submitted application on the same job and moves the job to
	// jobStatus, all in a single transaction. Returns ErrNotFound when the
	// application is no longer acceptable (lost a concurrent accept race or
	// already terminal).
	Accept(ctx context.Context, applicationID, jobStatus string) (*AcceptResult, error)
}

type ApplicationUsecase interface {
	ApplyToJob(ctx context.Context, view *EffectiveView, userID, jobID, message string) (*Application, error)
	GetMyApplications(ctx context.Context, view *EffectiveView, userID string) ([]Application, error)
	ListByJobID(ctx context.Context, view *EffectiveView, userID, jobID string) ([]Application, error)
	AcceptApplicant(ctx context.Context, view *EffectiveView, userID, applicationID string) (*AcceptResult, error)
	RejectApplicant(ctx context.Context, view *EffectiveView, userID, applicationID, reason string) error
	WithdrawApplication(ctx context.Context, view *EffectiveView, userID, applicationID string, reason *string) error
}
