package postgres

import (
	"context"
	"time"

	"jobbridge-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// applicationRepo serves both partitions. jobsTable is carried alongside so the
// accept transaction moves the job row in the same partition.
type applicationRepo struct {
	db        *pgxpool.Pool
	table     string
	jobsTable string
}

func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db, table: "applications", jobsTable: "jobs"}
}

func NewDemoApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db, table: "demo_applications", jobsTable: "demo_jobs"}
}

const applicationColumns = `id, job_id, user_id, message, status, rejection_reason, created_at, updated_at`

func scanApplication(row pgx.Row, a *domain.Application) error {
	return row.Scan(
		&a.ID, &a.JobID, &a.UserID, &a.Message, &a.Status, &a.RejectionReason,
		&a.CreatedAt, &a.UpdatedAt,
	)
}

// Create inserts the application. The unique index on (job_id, user_id) makes
// the duplicate check race-free: on conflict no row is inserted and created is
// false.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) (bool, error) {
	query := `INSERT INTO ` + r.table + ` (job_id, user_id, message, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          ON CONFLICT (job_id, user_id) DO NOTHING
	          RETURNING id`
	now := time.Now()
	app.Status = domain.ApplicationStatusSubmitted
	app.CreatedAt = now
	app.UpdatedAt = now
	err := r.db.QueryRow(ctx, query,
		app.JobID, app.UserID, app.Message, app.Status, app.CreatedAt, app.UpdatedAt,
	).Scan(&app.ID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM ` + r.table + ` WHERE id = $1`
	var a domain.Application
	if err := scanApplication(r.db.QueryRow(ctx, query, id), &a); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *applicationRepo) GetByJobID(ctx context.Context, jobID string) ([]domain.Application, error) {
	query := `SELECT a.id, a.job_id, a.user_id, a.message, a.status, a.rejection_reason,
	                 a.created_at, a.updated_at, p.display_name
	          FROM ` + r.table + ` a
	          LEFT JOIN profiles p ON p.id = a.user_id
	          WHERE a.job_id = $1
	          ORDER BY a.created_at DESC, a.id DESC`
	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		var a domain.Application
		if err := rows.Scan(
			&a.ID, &a.JobID, &a.UserID, &a.Message, &a.Status, &a.RejectionReason,
			&a.CreatedAt, &a.UpdatedAt, &a.ApplicantName,
		); err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

func (r *applicationRepo) GetByUserID(ctx context.Context, userID string) ([]domain.Application, error) {
	query := `SELECT a.id, a.job_id, a.user_id, a.message, a.status, a.rejection_reason,
	                 a.created_at, a.updated_at, j.title
	          FROM ` + r.table + ` a
	          LEFT JOIN ` + r.jobsTable + ` j ON j.id = a.job_id
	          WHERE a.user_id = $1
	          ORDER BY a.created_at DESC, a.id DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		var a domain.Application
		if err := rows.Scan(
			&a.ID, &a.JobID, &a.UserID, &a.Message, &a.Status, &a.RejectionReason,
			&a.CreatedAt, &a.UpdatedAt, &a.JobTitle,
		); err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

func (r *applicationRepo) ExistsForJob(ctx context.Context, jobID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM `+r.table+` WHERE job_id = $1 AND user_id = $2)`,
		jobID, userID,
	).Scan(&exists)
	return exists, err
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id, status string, reason *string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE `+r.table+` SET status = $2, rejection_reason = $3, updated_at = $4 WHERE id = $1`,
		id, status, reason, time.Now(),
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Accept runs the whole accept fan-out in one transaction: the conditional
// update on the winner, the auto-reject of every still-submitted peer and the
// job status move. Losing the race or hitting a terminal status rolls back with
// ErrNotFound.
func (r *applicationRepo) Accept(ctx context.Context, applicationID, jobStatus string) (*domain.AcceptResult, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	now := time.Now()

	var a domain.Application
	err = tx.QueryRow(ctx,
		`UPDATE `+r.table+` SET status = $2, updated_at = $3
		 WHERE id = $1 AND status IN ($4, $5, $6)
		 RETURNING `+applicationColumns,
		applicationID, domain.ApplicationStatusAccepted, now,
		domain.ApplicationStatusSubmitted, domain.ApplicationStatusNegotiating, domain.ApplicationStatusWaitlisted,
	).Scan(
		&a.ID, &a.JobID, &a.UserID, &a.Message, &a.Status, &a.RejectionReason,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	rejected, err := tx.Exec(ctx,
		`UPDATE `+r.table+` SET status = $3, updated_at = $4
		 WHERE job_id = $1 AND id <> $2 AND status = $5`,
		a.JobID, a.ID, domain.ApplicationStatusAutoRejected, now, domain.ApplicationStatusSubmitted,
	)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE `+r.jobsTable+` SET status = $2, updated_at = $3 WHERE id = $1`,
		a.JobID, jobStatus, now,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &domain.AcceptResult{
		Application:       &a,
		AutoRejectedCount: int(rejected.RowsAffected()),
		JobStatus:         jobStatus,
	}, nil
}
