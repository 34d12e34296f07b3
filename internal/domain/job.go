package domain

import (
	"context"
	"time"

	"jobbridge-backend/pkg/apperror"
)

// Job status values.
const (
	JobStatusDraft     = "draft"
	JobStatusOpen      = "open"
	JobStatusClosed    = "closed"
	JobStatusReviewing = "reviewing"
	JobStatusReserved  = "reserved"
	JobStatusFilled    = "filled"
)

// Hiring modes steer where a job moves when an applicant is accepted:
// single_hire fills the job, multi_hire only reserves it.
const (
	HiringModeSingle = "single_hire"
	HiringModeMulti  = "multi_hire"
)

// Address reveal policies.
const (
	AddressRevealPublic      = "public"
	AddressRevealAfterAccept = "after_accept"
	AddressRevealOnReview    = "on_review"
)

// Job is a posting. The demo partition has a structurally identical twin in
// the demo_jobs table.
type Job struct {
	ID                  string    `json:"id"`
	PostedBy            string    `json:"posted_by"`
	MarketID            *string   `json:"market_id,omitempty"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	WageHourly          float64   `json:"wage_hourly"`
	Status              string    `json:"status"`
	Category            *string   `json:"category,omitempty"`
	HiringMode          string    `json:"hiring_mode"`
	AddressRevealPolicy string    `json:"address_reveal_policy"`
	PublicLocationLabel *string   `json:"public_location_label,omitempty"`
	PublicLocationLat   *float64  `json:"public_location_lat,omitempty"`
	PublicLocationLng   *float64  `json:"public_location_lng,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// JobPrivateDetails is the 1:1 sidecar holding the non-public address. Absence
// is valid: public-location jobs skip it.
type JobPrivateDetails struct {
	JobID     string    `json:"job_id"`
	Address   string    `json:"address"`
	Notes     *string   `json:"notes,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JobsListItem is a job enriched for list responses: display metadata plus the
// requesting user's own application linkage.
type JobsListItem struct {
	Job
	MarketName        *string `json:"market_name,omitempty"`
	CreatorName       *string `json:"creator_name,omitempty"`
	CreatorVerified   *bool   `json:"creator_verified,omitempty"`
	IsApplied         bool    `json:"is_applied"`
	ApplicationID     *string `json:"application_id,omitempty"`
	ApplicationStatus *string `json:"application_status,omitempty"`
	// PrivateDetails is only set when the address reveal policy allows it for
	// the requesting user.
	PrivateDetails *JobPrivateDetails `json:"private_details,omitempty"`
}

// Fetch modes.
type FetchJobsMode string

const (
	FetchModeFeed   FetchJobsMode = "feed"
	FetchModeMyJobs FetchJobsMode = "my_jobs"
)

// DefaultJobsLimit caps one listing page.
const DefaultJobsLimit = 50

type FetchJobsParams struct {
	Mode     FetchJobsMode
	View     *EffectiveView
	UserID   string
	MarketID *string
	Status   string
	Limit    int
	Offset   int
}

// Create outcome tags. Partial is success-shaped but incomplete: the job row
// exists, the private-details sidecar does not, and the caller is expected to
// resume via RetrySaveJobPrivateDetails.
const (
	CreateOutcomeSuccess = "success"
	CreateOutcomePartial = "partial"

	PrivateDetailsOK      = "ok"
	PrivateDetailsSkipped = "skipped"
	PrivateDetailsFailed  = "failed"

	CreatedViaRPC   = "rpc"
	CreatedViaTable = "table"
	CreatedViaDemo  = "demo"
)

type CreateJobOutcome struct {
	Outcome        string              `json:"outcome"`
	JobID          string              `json:"job_id"`
	PrivateDetails string              `json:"private_details"`
	CreatedVia     string              `json:"created_via"`
	PrivateError   *apperror.ErrorInfo `json:"private_error,omitempty"`
}

// JobRepository is implemented twice: once over the live jobs table and once
// over the demo_jobs twin. Callers pick the implementation from the effective
// view and must never mix partitions within one operation.
type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id string) (*Job, error)
	FetchFeed(ctx context.Context, marketID *string, status string, limit, offset int) ([]Job, error)
	FetchByOwner(ctx context.Context, ownerID string, limit, offset int) ([]Job, error)
	Update(ctx context.Context, job *Job) error
	UpdateStatus(ctx context.Context, id, status string) error
}

// LiveJobRepository adds the live-only pieces: the atomic creation procedure
// and the private-details sidecar. The demo partition has no private-details
// concept.
type LiveJobRepository interface {
	JobRepository
	// CreateAtomic invokes the create_job_atomic stored procedure, which
	// inserts the job row and the sidecar in one transaction and returns the
	// created job id.
	CreateAtomic(ctx context.Context, job *Job, details *JobPrivateDetails) (string, error)
	UpsertPrivateDetails(ctx context.Context, details *JobPrivateDetails) error
	GetPrivateDetails(ctx context.Context, jobID string) (*JobPrivateDetails, error)
}

type JobUsecase interface {
	FetchJobs(ctx context.Context, params FetchJobsParams) ([]JobsListItem, error)
	GetJobDetails(ctx context.Context, view *EffectiveView, userID, jobID string) (*JobsListItem, error)
	CreateJob(ctx context.Context, view *EffectiveView, userID string, job *Job, details *JobPrivateDetails) (*CreateJobOutcome, error)
	RetrySaveJobPrivateDetails(ctx context.Context, userID, jobID string, details *JobPrivateDetails) error
	UpdateJob(ctx context.Context, view *EffectiveView, userID string, job *Job) error
	CloseJob(ctx context.Context, view *EffectiveView, userID, jobID string) error
}
