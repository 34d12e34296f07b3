package database

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewPostgresConnection(connString string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, err
	}

	// Fix for Supabase Transaction Mode (PgBouncer)
	// Prevents "prepared statement already exists" errors
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	config.MaxConns = 25
	config.MinConns = 5
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, err
	}

	log.Println("Database connection established successfully")
	return pool, nil
}

// NewServiceConnection opens the elevated (service-role) pool used only to
// cross-reference a user's own application linkage across jobs they do not own.
// Returns nil when no service URL is configured; callers fall back to the
// normal pool in that case.
func NewServiceConnection(connString string) *pgxpool.Pool {
	if connString == "" {
		return nil
	}

	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		log.Printf("WARNING: invalid DATABASE_SERVICE_URL, elevated pool disabled: %v", err)
		return nil
	}
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	config.MaxConns = 5
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Printf("WARNING: elevated pool unavailable, falling back to user pool: %v", err)
		return nil
	}
	if err := pool.Ping(context.Background()); err != nil {
		log.Printf("WARNING: elevated pool ping failed, falling back to user pool: %v", err)
		pool.Close()
		return nil
	}

	log.Println("Elevated database connection established")
	return pool
}
