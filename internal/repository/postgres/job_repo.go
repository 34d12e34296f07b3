package postgres

import (
	"context"
	"time"

	"jobbridge-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// jobRepo serves both partitions; the table name is fixed at construction so a
// repository instance can never cross partitions.
type jobRepo struct {
	db    *pgxpool.Pool
	table string
}

type liveJobRepo struct {
	jobRepo
}

// NewJobRepository returns the repository over the live jobs table, including
// the atomic-create procedure and the private-details sidecar.
func NewJobRepository(db *pgxpool.Pool) domain.LiveJobRepository {
	return &liveJobRepo{jobRepo{db: db, table: "jobs"}}
}

// NewDemoJobRepository returns the structurally identical twin over demo_jobs.
// The demo partition has no private details and no stored procedure.
func NewDemoJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db, table: "demo_jobs"}
}

const jobColumns = `id, posted_by, market_id, title, description, wage_hourly, status, category,
	hiring_mode, address_reveal_policy, public_location_label, public_location_lat, public_location_lng,
	created_at, updated_at`

func scanJob(row pgx.Row, j *domain.Job) error {
	return row.Scan(
		&j.ID, &j.PostedBy, &j.MarketID, &j.Title, &j.Description, &j.WageHourly, &j.Status, &j.Category,
		&j.HiringMode, &j.AddressRevealPolicy, &j.PublicLocationLabel, &j.PublicLocationLat, &j.PublicLocationLng,
		&j.CreatedAt, &j.UpdatedAt,
	)
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `INSERT INTO ` + r.table + ` (posted_by, market_id, title, description, wage_hourly, status, category,
	          hiring_mode, address_reveal_policy, public_location_label, public_location_lat, public_location_lng,
	          created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	          RETURNING id`
	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now
	return r.db.QueryRow(ctx, query,
		job.PostedBy, job.MarketID, job.Title, job.Description, job.WageHourly, job.Status, job.Category,
		job.HiringMode, job.AddressRevealPolicy, job.PublicLocationLabel, job.PublicLocationLat, job.PublicLocationLng,
		job.CreatedAt, job.UpdatedAt,
	).Scan(&job.ID)
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM ` + r.table + ` WHERE id = $1`
	var j domain.Job
	if err := scanJob(r.db.QueryRow(ctx, query, id), &j); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &j, nil
}

func (r *jobRepo) FetchFeed(ctx context.Context, marketID *string, status string, limit, offset int) ([]domain.Job, error) {
	// id DESC breaks created_at ties so pages never overlap.
	query := `SELECT ` + jobColumns + ` FROM ` + r.table + `
	          WHERE status = $1 AND ($2::uuid IS NULL OR market_id = $2)
	          ORDER BY created_at DESC, id DESC
	          LIMIT $3 OFFSET $4`
	rows, err := r.db.Query(ctx, query, status, marketID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}

func (r *jobRepo) FetchByOwner(ctx context.Context, ownerID string, limit, offset int) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM ` + r.table + `
	          WHERE posted_by = $1
	          ORDER BY created_at DESC, id DESC
	          LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}

func collectJobs(rows pgx.Rows) ([]domain.Job, error) {
	var jobs []domain.Job
	for rows.Next() {
		var j domain.Job
		if err := scanJob(rows, &j); err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	query := `UPDATE ` + r.table + ` SET
		title = $2,
		description = $3,
		wage_hourly = $4,
		category = $5,
		hiring_mode = $6,
		address_reveal_policy = $7,
		public_location_label = $8,
		public_location_lat = $9,
		public_location_lng = $10,
		updated_at = $11
	WHERE id = $1`
	job.UpdatedAt = time.Now()
	result, err := r.db.Exec(ctx, query,
		job.ID, job.Title, job.Description, job.WageHourly, job.Category,
		job.HiringMode, job.AddressRevealPolicy, job.PublicLocationLabel,
		job.PublicLocationLat, job.PublicLocationLng, job.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE `+r.table+` SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, time.Now(),
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateAtomic calls the create_job_atomic procedure, which inserts the job row
// and its private-details sidecar in one transaction and returns the job id.
func (r *liveJobRepo) CreateAtomic(ctx context.Context, job *domain.Job, details *domain.JobPrivateDetails) (string, error) {
	var address *string
	var notes *string
	if details != nil {
		address = &details.Address
		notes = details.Notes
	}
	var jobID string
	err := r.db.QueryRow(ctx,
		`SELECT create_job_atomic($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		job.PostedBy, job.MarketID, job.Title, job.Description, job.WageHourly, job.Category,
		job.HiringMode, job.AddressRevealPolicy, job.PublicLocationLabel,
		job.PublicLocationLat, job.PublicLocationLng, address, notes,
	).Scan(&jobID)
	if err != nil {
		return "", err
	}
	return jobID, nil
}

func (r *liveJobRepo) UpsertPrivateDetails(ctx context.Context, details *domain.JobPrivateDetails) error {
	query := `INSERT INTO job_private_details (job_id, address, notes, updated_at)
	          VALUES ($1, $2, $3, $4)
	          ON CONFLICT (job_id) DO UPDATE SET
	              address = EXCLUDED.address,
	              notes = EXCLUDED.notes,
	              updated_at = EXCLUDED.updated_at`
	details.UpdatedAt = time.Now()
	_, err := r.db.Exec(ctx, query, details.JobID, details.Address, details.Notes, details.UpdatedAt)
	return err
}

func (r *liveJobRepo) GetPrivateDetails(ctx context.Context, jobID string) (*domain.JobPrivateDetails, error) {
	query := `SELECT job_id, address, notes, updated_at FROM job_private_details WHERE job_id = $1`
	var d domain.JobPrivateDetails
	err := r.db.QueryRow(ctx, query, jobID).Scan(&d.JobID, &d.Address, &d.Notes, &d.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}
