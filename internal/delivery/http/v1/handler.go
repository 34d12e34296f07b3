package v1

import (
	"jobbridge-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// viewFromContext returns the effective view resolved by the middleware. A nil
// result means the middleware did not run; treat it as live view with the
// request role so misconfigured routes stay on the safe partition.
func viewFromContext(c *gin.Context) *domain.EffectiveView {
	if v, ok := c.Get(string(domain.KeyEffectiveView)); ok {
		if view, ok := v.(*domain.EffectiveView); ok {
			return view
		}
	}
	return &domain.EffectiveView{
		ViewRole: domain.NormalizeAccountType(c.GetString(string(domain.KeyUserRole))),
		Source:   domain.ViewSourceLive,
	}
}

func toPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
