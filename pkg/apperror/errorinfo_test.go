package apperror

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestToErrorInfo_NilError(t *testing.T) {
	info := ToErrorInfo(nil, nil)

	assert.NotNil(t, info)
	assert.Equal(t, "Unbekannter Fehler", info.Message)
	assert.Empty(t, info.Code)
}

func TestToErrorInfo_PgError(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:    "23505",
		Message: "duplicate key value violates unique constraint",
		Detail:  "Key (job_id, user_id) already exists.",
		Hint:    "use upsert",
	}

	info := ToErrorInfo(pgErr, nil)

	assert.Equal(t, "23505", info.Code)
	assert.Equal(t, "duplicate key value violates unique constraint", info.Message)
	assert.Equal(t, "Key (job_id, user_id) already exists.", info.Details)
	assert.Equal(t, "use upsert", info.Hint)
}

func TestToErrorInfo_WrappedPgError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "42883", Message: "function does not exist"}
	wrapped := errors.Join(errors.New("insert failed"), pgErr)

	info := ToErrorInfo(wrapped, nil)

	assert.Equal(t, "42883", info.Code)
}

func TestToErrorInfo_EmptyPgMessageGetsFallback(t *testing.T) {
	info := ToErrorInfo(&pgconn.PgError{Code: "08000"}, nil)

	assert.Equal(t, "Datenbankfehler", info.Message)
	assert.Equal(t, "08000", info.Code)
}

func TestToErrorInfo_AppError(t *testing.T) {
	info := ToErrorInfo(Conflict("Du hast dich bereits auf diesen Job beworben"), nil)

	assert.Equal(t, "Du hast dich bereits auf diesen Job beworben", info.Message)
	assert.Equal(t, 409, info.Status)
	assert.Equal(t, "Conflict", info.StatusText)
}

func TestToErrorInfo_PlainError(t *testing.T) {
	info := ToErrorInfo(errors.New("connection refused"), nil)

	assert.Equal(t, "connection refused", info.Message)
	assert.Empty(t, info.Code)
	assert.Zero(t, info.Status)
}

func TestToErrorInfo_ExtraIsCarried(t *testing.T) {
	info := ToErrorInfo(errors.New("sidecar write failed"), map[string]string{"job_id": "job-1"})

	assert.Equal(t, "job-1", info.Extra["job_id"])
}
