package v1

import (
	"net/http"

	"jobbridge-backend/internal/delivery/http/response"
	"jobbridge-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

func NewAuthHandler(protected *gin.RouterGroup, authUC domain.AuthUsecase) {
	handler := &AuthHandler{authUC: authUC}

	auth := protected.Group("/auth")
	{
		auth.GET("/me", handler.Me)
	}
}

// Me godoc
// @Summary      Get current session profile
// @Description  Returns the profile behind the token; 404 signals the onboarding wizard
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	profile, err := h.authUC.GetCurrentProfile(c.Request.Context(), c.GetString(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profil geladen", profile)
}
