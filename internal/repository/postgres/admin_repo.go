package postgres

import (
	"context"
	"time"

	"jobbridge-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type adminRepo struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) domain.AdminRepository {
	return &adminRepo{db: db}
}

func (r *adminRepo) GetStats(ctx context.Context) (*domain.AdminStats, error) {
	stats := &domain.AdminStats{}

	err := r.db.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE account_type = 'job_seeker' AND NOT is_staff),
			COUNT(*) FILTER (WHERE account_type = 'job_provider' AND NOT is_staff),
			COUNT(*) FILTER (WHERE is_staff)
		FROM profiles`).Scan(
		&stats.TotalUsers,
		&stats.UsersByAccountType.JobSeeker,
		&stats.UsersByAccountType.JobProvider,
		&stats.UsersByAccountType.Staff,
	)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'open'),
			COUNT(*) FILTER (WHERE status = 'reviewing'),
			COUNT(*) FILTER (WHERE status = 'reserved'),
			COUNT(*) FILTER (WHERE status = 'filled'),
			COUNT(*) FILTER (WHERE status = 'closed')
		FROM jobs`).Scan(
		&stats.TotalJobs,
		&stats.JobsByStatus.Open,
		&stats.JobsByStatus.Reviewing,
		&stats.JobsByStatus.Reserved,
		&stats.JobsByStatus.Filled,
		&stats.JobsByStatus.Closed,
	)
	if err != nil {
		return nil, err
	}

	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM applications`).Scan(&stats.TotalApplications); err != nil {
		return nil, err
	}
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM demo_sessions WHERE enabled`).Scan(&stats.ActiveDemoSessions); err != nil {
		return nil, err
	}
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM guardian_consents WHERE status = 'pending'`).Scan(&stats.PendingConsents); err != nil {
		return nil, err
	}

	stats.SystemHealth = domain.SystemHealth{
		Status:      "healthy",
		LastChecked: time.Now().UTC().Format(time.RFC3339),
	}
	return stats, nil
}

func (r *adminRepo) ListUsers(ctx context.Context, limit, offset int) ([]domain.AdminUser, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, display_name, account_type, city, is_staff, is_disabled,
	                 guardian_consent_status, created_at
	          FROM profiles
	          ORDER BY created_at DESC, id DESC
	          LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []domain.AdminUser
	for rows.Next() {
		var u domain.AdminUser
		var createdAt time.Time
		if err := rows.Scan(
			&u.ID, &u.DisplayName, &u.AccountType, &u.City, &u.IsStaff, &u.IsDisabled,
			&u.GuardianConsentStatus, &createdAt,
		); err != nil {
			return nil, 0, err
		}
		u.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		users = append(users, u)
	}
	return users, total, rows.Err()
}

func (r *adminRepo) ListJobs(ctx context.Context, status string, limit, offset int) ([]domain.AdminJob, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM jobs WHERE ($1 = '' OR status = $1)`, status,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT j.id, j.title, j.posted_by, COALESCE(p.display_name, ''), j.status,
	                 COALESCE(m.name, ''), j.created_at
	          FROM jobs j
	          LEFT JOIN profiles p ON p.id = j.posted_by
	          LEFT JOIN markets m ON m.id = j.market_id
	          WHERE ($1 = '' OR j.status = $1)
	          ORDER BY j.created_at DESC, j.id DESC
	          LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []domain.AdminJob
	for rows.Next() {
		var j domain.AdminJob
		var createdAt time.Time
		if err := rows.Scan(&j.ID, &j.Title, &j.PostedBy, &j.CreatorName, &j.Status, &j.MarketName, &createdAt); err != nil {
			return nil, 0, err
		}
		j.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		jobs = append(jobs, j)
	}
	return jobs, total, rows.Err()
}
