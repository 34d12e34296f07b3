package v1

import (
	"net/http"

	"jobbridge-backend/internal/delivery/http/response"
	"jobbridge-backend/internal/domain"
	"jobbridge-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
}

func NewProfileHandler(protected *gin.RouterGroup, profileUC domain.ProfileUsecase) {
	handler := &ProfileHandler{profileUC: profileUC}

	protected.GET("/profile", handler.Get)
	protected.PUT("/profile", handler.Update)
	protected.GET("/markets", handler.ListMarkets)
}

type UpdateProfileRequest struct {
	DisplayName         string   `json:"display_name" binding:"required,min=2,max=80"`
	City                string   `json:"city" binding:"required"`
	MarketID            string   `json:"market_id"`
	PreferredCategories []string `json:"preferred_categories"`
}

// Get godoc
// @Summary      Get own profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /profile [get]
// @Security     BearerAuth
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profileUC.GetProfile(c.Request.Context(), c.GetString(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profil geladen", profile)
}

// Update godoc
// @Summary      Update own profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      UpdateProfileRequest  true  "Profile"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /profile [put]
// @Security     BearerAuth
func (h *ProfileHandler) Update(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	// The id always comes from the session, so nobody can update a foreign
	// profile by id.
	profile := &domain.Profile{
		ID:                  c.GetString(string(domain.KeyUserID)),
		DisplayName:         req.DisplayName,
		City:                req.City,
		MarketID:            toPtr(req.MarketID),
		PreferredCategories: req.PreferredCategories,
	}
	if err := h.profileUC.UpdateProfile(c.Request.Context(), profile); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profil aktualisiert", nil)
}

// ListMarkets godoc
// @Summary      List markets
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /markets [get]
// @Security     BearerAuth
func (h *ProfileHandler) ListMarkets(c *gin.Context) {
	markets, err := h.profileUC.ListMarkets(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Märkte geladen", markets)
}
