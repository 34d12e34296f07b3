package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"jobbridge-backend/config"
	"jobbridge-backend/internal/delivery/http/response"
	"jobbridge-backend/internal/domain"
	"jobbridge-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func AuthMiddleware(jwksProvider *auth.Provider, cfg *config.Config, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string

		// 1. Try to get token from Header
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else {
			// 2. Try to get token from Cookie
			cookie, err := c.Cookie("auth_token")
			if err == nil && cookie != "" {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Nicht authentifiziert", nil)
			c.Abort()
			return
		}
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); ok {
				// HS256 - Use Secret
				if cfg.SupabaseJWTSecret == "" {
					return nil, fmt.Errorf("HS256 token received but SUPABASE_JWT_SECRET is not configured")
				}
				return []byte(cfg.SupabaseJWTSecret), nil
			}

			if _, ok := token.Method.(*jwt.SigningMethodRSA); ok {
				// RS256 - Use JWKS
				return jwksProvider.KeyFunc(token)
			}

			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		})

		if err != nil || !token.Valid {
			response.Error(c, http.StatusUnauthorized, "Nicht authentifiziert", nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Nicht authentifiziert", nil)
			c.Abort()
			return
		}

		sub, _ := claims["sub"].(string)
		email, _ := claims["email"].(string)
		if sub == "" {
			response.Error(c, http.StatusUnauthorized, "Nicht authentifiziert", nil)
			c.Abort()
			return
		}

		// The role is read from our own profile row, never from the JWT role
		// claim, which may be 'authenticated' or stale. A missing profile is
		// fine: the token holder has not completed onboarding yet.
		role := domain.AccountTypeJobSeeker
		profile, err := authUC.GetCurrentProfile(c.Request.Context(), sub)
		if err == nil {
			if profile.IsDisabled {
				response.Error(c, http.StatusForbidden, "Dieses Konto wurde deaktiviert", nil)
				c.Abort()
				return
			}
			role = profile.Role()
			c.Set(string(domain.KeyProfile), profile)
		}

		c.Set(string(domain.KeyUserID), sub)
		c.Set(string(domain.KeyUserEmail), email)
		c.Set(string(domain.KeyUserRole), role)

		// Also carried on the request context so code below the delivery
		// layer can resolve the principal via domain.UserIDFromContext.
		c.Request = c.Request.WithContext(
			context.WithValue(c.Request.Context(), domain.KeyUserID, sub))

		c.Next()
	}
}

// StaffOnly gates the admin console. It relies on AuthMiddleware having run.
func StaffOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(string(domain.KeyUserRole)) != domain.RoleStaff {
			response.Error(c, http.StatusForbidden, "Nur für Mitarbeiter", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
