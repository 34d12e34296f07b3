package middleware

import (
	"jobbridge-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// EffectiveView resolves the caller's role lens and data partition once per
// request and stores it in the context. Resolution is fail-closed: when the
// lookup errors the request is aborted rather than served with a guessed view.
func EffectiveView(viewUC domain.ViewUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(string(domain.KeyUserID))

		baseAccountType := ""
		if v, ok := c.Get(string(domain.KeyProfile)); ok {
			if profile, ok := v.(*domain.Profile); ok {
				baseAccountType = profile.AccountType
			}
		}

		view, err := viewUC.GetEffectiveView(c.Request.Context(), domain.ViewQuery{
			UserID:          userID,
			BaseAccountType: baseAccountType,
		})
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyEffectiveView), view)
		c.Next()
	}
}
