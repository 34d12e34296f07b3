package postgres

import (
	"context"
	"time"

	"jobbridge-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type demoSessionRepo struct {
	db *pgxpool.Pool
}

func NewDemoSessionRepository(db *pgxpool.Pool) domain.DemoSessionRepository {
	return &demoSessionRepo{db: db}
}

func (r *demoSessionRepo) GetByUserID(ctx context.Context, userID string) (*domain.DemoSession, error) {
	query := `SELECT user_id, enabled, demo_view, updated_at FROM demo_sessions WHERE user_id = $1`
	var s domain.DemoSession
	err := r.db.QueryRow(ctx, query, userID).Scan(&s.UserID, &s.Enabled, &s.DemoView, &s.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			// Absence means demo was never toggled; not an error.
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *demoSessionRepo) Upsert(ctx context.Context, session *domain.DemoSession) error {
	query := `INSERT INTO demo_sessions (user_id, enabled, demo_view, updated_at)
	          VALUES ($1, $2, $3, $4)
	          ON CONFLICT (user_id) DO UPDATE SET
	              enabled = EXCLUDED.enabled,
	              demo_view = EXCLUDED.demo_view,
	              updated_at = EXCLUDED.updated_at`
	session.UpdatedAt = time.Now()
	_, err := r.db.Exec(ctx, query, session.UserID, session.Enabled, session.DemoView, session.UpdatedAt)
	return err
}

type roleOverrideRepo struct {
	db *pgxpool.Pool
}

func NewRoleOverrideRepository(db *pgxpool.Pool) domain.RoleOverrideRepository {
	return &roleOverrideRepo{db: db}
}

func (r *roleOverrideRepo) GetActive(ctx context.Context, userID string, now time.Time) (*domain.RoleOverride, error) {
	query := `SELECT user_id, view_as, expires_at, created_by, created_at
	          FROM role_overrides
	          WHERE user_id = $1 AND expires_at > $2`
	var o domain.RoleOverride
	err := r.db.QueryRow(ctx, query, userID, now).Scan(
		&o.UserID, &o.ViewAs, &o.ExpiresAt, &o.CreatedBy, &o.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			// Expired rows stay in the table but are never returned.
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *roleOverrideRepo) Upsert(ctx context.Context, override *domain.RoleOverride) error {
	query := `INSERT INTO role_overrides (user_id, view_as, expires_at, created_by, created_at)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (user_id) DO UPDATE SET
	              view_as = EXCLUDED.view_as,
	              expires_at = EXCLUDED.expires_at,
	              created_by = EXCLUDED.created_by,
	              created_at = EXCLUDED.created_at`
	override.CreatedAt = time.Now()
	_, err := r.db.Exec(ctx, query,
		override.UserID, override.ViewAs, override.ExpiresAt, override.CreatedBy, override.CreatedAt,
	)
	return err
}

func (r *roleOverrideRepo) Delete(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM role_overrides WHERE user_id = $1`, userID)
	return err
}
