package postgres

import (
	"context"
	"time"

	"jobbridge-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type onboardingRepo struct {
	db *pgxpool.Pool
}

func NewOnboardingRepository(db *pgxpool.Pool) domain.OnboardingRepository {
	return &onboardingRepo{db: db}
}

// GetStatus treats an existing profile row as completed onboarding.
func (r *onboardingRepo) GetStatus(ctx context.Context, userID string) (*domain.OnboardingStatus, error) {
	var createdAt time.Time
	var consentStatus string
	err := r.db.QueryRow(ctx,
		`SELECT created_at, guardian_consent_status FROM profiles WHERE id = $1`,
		userID,
	).Scan(&createdAt, &consentStatus)
	if err != nil {
		if err == pgx.ErrNoRows {
			return &domain.OnboardingStatus{
				Completed:             false,
				GuardianConsentStatus: domain.ConsentStatusNone,
			}, nil
		}
		return nil, err
	}
	return &domain.OnboardingStatus{
		Completed:             true,
		CompletedAt:           &createdAt,
		GuardianConsentStatus: consentStatus,
	}, nil
}

// SaveOnboarding upserts the profile and, for minors, the pending consent row
// in one transaction. A crash between the two writes must not leave a profile
// without its consent request.
func (r *onboardingRepo) SaveOnboarding(ctx context.Context, profile *domain.Profile, consent *domain.GuardianConsent) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	_, err = tx.Exec(ctx,
		`INSERT INTO profiles (id, account_type, display_name, city, market_id, verified, is_staff, is_disabled,
		     birth_date, guardian_name, guardian_email, guardian_consent_status, preferred_categories, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		 ON CONFLICT (id) DO UPDATE SET
		     account_type = EXCLUDED.account_type,
		     display_name = EXCLUDED.display_name,
		     city = EXCLUDED.city,
		     market_id = EXCLUDED.market_id,
		     birth_date = EXCLUDED.birth_date,
		     guardian_name = EXCLUDED.guardian_name,
		     guardian_email = EXCLUDED.guardian_email,
		     guardian_consent_status = EXCLUDED.guardian_consent_status,
		     preferred_categories = EXCLUDED.preferred_categories,
		     updated_at = EXCLUDED.updated_at`,
		profile.ID, profile.AccountType, profile.DisplayName, profile.City, profile.MarketID,
		profile.Verified, profile.IsStaff, profile.IsDisabled,
		profile.BirthDate, profile.GuardianName, profile.GuardianEmail, profile.GuardianConsentStatus,
		pq.Array(profile.PreferredCategories), profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if consent != nil {
		consent.RequestedAt = now
		err = tx.QueryRow(ctx,
			`INSERT INTO guardian_consents (user_id, guardian_name, guardian_email, status, token, requested_at)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING id`,
			consent.UserID, consent.GuardianName, consent.GuardianEmail,
			consent.Status, consent.Token, consent.RequestedAt,
		).Scan(&consent.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *onboardingRepo) GetConsentByToken(ctx context.Context, token string) (*domain.GuardianConsent, error) {
	query := `SELECT id, user_id, guardian_name, guardian_email, status, token, requested_at, decided_at
	          FROM guardian_consents WHERE token = $1`
	var c domain.GuardianConsent
	err := r.db.QueryRow(ctx, query, token).Scan(
		&c.ID, &c.UserID, &c.GuardianName, &c.GuardianEmail, &c.Status, &c.Token,
		&c.RequestedAt, &c.DecidedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// UpdateConsentStatus stamps the decision on the consent row and mirrors it to
// the minor's profile in the same transaction.
func (r *onboardingRepo) UpdateConsentStatus(ctx context.Context, consentID, status string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	var userID string
	err = tx.QueryRow(ctx,
		`UPDATE guardian_consents SET status = $2, decided_at = $3 WHERE id = $1 RETURNING user_id`,
		consentID, status, now,
	).Scan(&userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.ErrNotFound
		}
		return err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE profiles SET guardian_consent_status = $2, updated_at = $3 WHERE id = $1`,
		userID, status, now,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *onboardingRepo) ListPendingConsents(ctx context.Context, limit, offset int) ([]domain.GuardianConsent, error) {
	query := `SELECT id, user_id, guardian_name, guardian_email, status, token, requested_at, decided_at
	          FROM guardian_consents
	          WHERE status = 'pending'
	          ORDER BY requested_at ASC
	          LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var consents []domain.GuardianConsent
	for rows.Next() {
		var c domain.GuardianConsent
		if err := rows.Scan(
			&c.ID, &c.UserID, &c.GuardianName, &c.GuardianEmail, &c.Status, &c.Token,
			&c.RequestedAt, &c.DecidedAt,
		); err != nil {
			return nil, err
		}
		consents = append(consents, c)
	}
	return consents, rows.Err()
}
