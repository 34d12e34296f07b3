package domain

import (
	"context"

	"jobbridge-backend/pkg/apperror"
)

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyUserEmail CtxKey = "Email"
	KeyUserRole  CtxKey = "Role"
	// KeyProfile holds the *Profile loaded by the auth middleware, when the
	// token holder has completed onboarding.
	KeyProfile CtxKey = "Profile"
	// KeyEffectiveView holds the *EffectiveView resolved per request.
	KeyEffectiveView CtxKey = "EffectiveView"
)

// ErrNotAuthenticated marks the expected "no session" outcome. The message is
// the exact string the frontend matches on.
var ErrNotAuthenticated = apperror.Unauthorized("Nicht authentifiziert")

// UserIDFromContext resolves the authenticated principal for the current
// request. An absent session is a normal outcome for anonymous requests, not
// an exceptional one; callers must check the error before touching any data.
func UserIDFromContext(ctx context.Context) (string, error) {
	v := ctx.Value(KeyUserID)
	userID, ok := v.(string)
	if !ok || userID == "" {
		return "", ErrNotAuthenticated
	}
	return userID, nil
}
