package v1

import (
	"net/http"
	"strconv"

	"jobbridge-backend/internal/delivery/http/middleware"
	"jobbridge-backend/internal/delivery/http/response"
	"jobbridge-backend/internal/domain"
	"jobbridge-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminUC domain.AdminUsecase
}

func NewAdminHandler(protected *gin.RouterGroup, adminUC domain.AdminUsecase) {
	handler := &AdminHandler{adminUC: adminUC}

	admin := protected.Group("/admin")
	admin.Use(middleware.StaffOnly())
	{
		admin.GET("/stats", handler.Stats)
		admin.GET("/users", handler.ListUsers)
		admin.POST("/users/:id/disable", handler.SetUserDisabled)
		admin.GET("/jobs", handler.ListJobs)
		admin.POST("/jobs/:id/close", handler.CloseJob)
		admin.GET("/consents", handler.ListPendingConsents)
	}
}

type SetUserDisabledRequest struct {
	Disabled bool `json:"disabled"`
}

func pageQuery(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return page, pageSize
}

// Stats godoc
// @Summary      Staff dashboard statistics
// @Tags         admin
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /admin/stats [get]
// @Security     BearerAuth
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminUC.GetStats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Statistiken geladen", stats)
}

// ListUsers godoc
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Param        page       query  int  false  "Page"       default(1)
// @Param        page_size  query  int  false  "Page size"  default(20)
// @Success      200  {object}  response.Response
// @Router       /admin/users [get]
// @Security     BearerAuth
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, pageSize := pageQuery(c)
	result, err := h.adminUC.ListUsers(c.Request.Context(), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Nutzer geladen", result)
}

// SetUserDisabled godoc
// @Summary      Disable or re-enable a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "User ID"
// @Param        body  body      SetUserDisabledRequest  true  "Disabled flag"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/users/{id}/disable [post]
// @Security     BearerAuth
func (h *AdminHandler) SetUserDisabled(c *gin.Context) {
	var req SetUserDisabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	err := h.adminUC.SetUserDisabled(c.Request.Context(),
		c.GetString(string(domain.KeyUserID)), c.Param("id"), req.Disabled)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Nutzerstatus aktualisiert", nil)
}

// ListJobs godoc
// @Summary      List jobs for moderation
// @Tags         admin
// @Produce      json
// @Param        status     query  string  false  "Status filter"
// @Param        page       query  int     false  "Page"       default(1)
// @Param        page_size  query  int     false  "Page size"  default(20)
// @Success      200  {object}  response.Response
// @Router       /admin/jobs [get]
// @Security     BearerAuth
func (h *AdminHandler) ListJobs(c *gin.Context) {
	page, pageSize := pageQuery(c)
	result, err := h.adminUC.ListJobs(c.Request.Context(), c.Query("status"), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs geladen", result)
}

// CloseJob godoc
// @Summary      Force-close a job
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/jobs/{id}/close [post]
// @Security     BearerAuth
func (h *AdminHandler) CloseJob(c *gin.Context) {
	err := h.adminUC.CloseJob(c.Request.Context(), c.GetString(string(domain.KeyUserID)), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job geschlossen", nil)
}

// ListPendingConsents godoc
// @Summary      List pending guardian consents
// @Tags         admin
// @Produce      json
// @Param        page       query  int  false  "Page"       default(1)
// @Param        page_size  query  int  false  "Page size"  default(20)
// @Success      200  {object}  response.Response
// @Router       /admin/consents [get]
// @Security     BearerAuth
func (h *AdminHandler) ListPendingConsents(c *gin.Context) {
	page, pageSize := pageQuery(c)
	consents, err := h.adminUC.ListPendingConsents(c.Request.Context(), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Offene Einverständnisse geladen", consents)
}
