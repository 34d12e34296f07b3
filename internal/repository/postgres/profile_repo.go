package postgres

import (
	"context"
	"time"

	"jobbridge-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type profileRepo struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepo{db: db}
}

const profileColumns = `id, account_type, display_name, city, market_id, verified, is_staff, is_disabled,
	birth_date, guardian_name, guardian_email, guardian_consent_status, preferred_categories, created_at, updated_at`

func (r *profileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	var p domain.Profile
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.AccountType, &p.DisplayName, &p.City, &p.MarketID, &p.Verified, &p.IsStaff, &p.IsDisabled,
		&p.BirthDate, &p.GuardianName, &p.GuardianEmail, &p.GuardianConsentStatus,
		pq.Array(&p.PreferredCategories), &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) GetByIDs(ctx context.Context, ids []string) ([]domain.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = ANY($1)`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(
			&p.ID, &p.AccountType, &p.DisplayName, &p.City, &p.MarketID, &p.Verified, &p.IsStaff, &p.IsDisabled,
			&p.BirthDate, &p.GuardianName, &p.GuardianEmail, &p.GuardianConsentStatus,
			pq.Array(&p.PreferredCategories), &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *profileRepo) Update(ctx context.Context, p *domain.Profile) error {
	query := `UPDATE profiles SET
		display_name = $2,
		city = $3,
		market_id = $4,
		birth_date = $5,
		guardian_name = $6,
		guardian_email = $7,
		guardian_consent_status = $8,
		preferred_categories = $9,
		updated_at = $10
	WHERE id = $1`
	p.UpdatedAt = time.Now()
	result, err := r.db.Exec(ctx, query,
		p.ID, p.DisplayName, p.City, p.MarketID, p.BirthDate,
		p.GuardianName, p.GuardianEmail, p.GuardianConsentStatus,
		pq.Array(p.PreferredCategories), p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *profileRepo) SetDisabled(ctx context.Context, id string, disabled bool) error {
	result, err := r.db.Exec(ctx,
		`UPDATE profiles SET is_disabled = $2, updated_at = $3 WHERE id = $1`,
		id, disabled, time.Now(),
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
