package v1

import (
	"net/http"

	"jobbridge-backend/internal/delivery/http/response"
	"jobbridge-backend/internal/domain"
	"jobbridge-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ViewHandler struct {
	viewUC domain.ViewUsecase
}

func NewViewHandler(protected *gin.RouterGroup, viewUC domain.ViewUsecase) {
	handler := &ViewHandler{viewUC: viewUC}

	view := protected.Group("/view")
	{
		view.GET("", handler.Get)
		view.POST("/demo", handler.EnableDemo)
		view.DELETE("/demo", handler.DisableDemo)
		view.POST("/override", handler.SetOverride)
		view.DELETE("/override", handler.ClearOverride)
	}
}

type EnableDemoRequest struct {
	DemoView string `json:"demo_view" binding:"omitempty,oneof=job_seeker job_provider"`
}

type SetOverrideRequest struct {
	ViewAs string `json:"view_as" binding:"required,oneof=job_seeker job_provider"`
}

// Get godoc
// @Summary      Get effective view
// @Description  Returns the resolved role lens and data partition for the caller
// @Tags         view
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /view [get]
// @Security     BearerAuth
func (h *ViewHandler) Get(c *gin.Context) {
	response.Success(c, http.StatusOK, "Effektive Ansicht", viewFromContext(c))
}

// EnableDemo godoc
// @Summary      Enable demo mode
// @Description  Switches the caller onto the demo data partition
// @Tags         view
// @Accept       json
// @Produce      json
// @Param        body  body      EnableDemoRequest  true  "Demo view"
// @Success      200  {object}  response.Response
// @Router       /view/demo [post]
// @Security     BearerAuth
func (h *ViewHandler) EnableDemo(c *gin.Context) {
	var req EnableDemoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	view, err := h.viewUC.EnableDemo(c.Request.Context(), userID, req.DemoView)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Demo-Modus aktiviert", view)
}

// DisableDemo godoc
// @Summary      Disable demo mode
// @Tags         view
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /view/demo [delete]
// @Security     BearerAuth
func (h *ViewHandler) DisableDemo(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	view, err := h.viewUC.DisableDemo(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Demo-Modus deaktiviert", view)
}

// SetOverride godoc
// @Summary      Set role override
// @Description  Temporarily view the product as the other account type
// @Tags         view
// @Accept       json
// @Produce      json
// @Param        body  body      SetOverrideRequest  true  "Override"
// @Success      200  {object}  response.Response
// @Router       /view/override [post]
// @Security     BearerAuth
func (h *ViewHandler) SetOverride(c *gin.Context) {
	var req SetOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	view, err := h.viewUC.SetOverride(c.Request.Context(), userID, req.ViewAs)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Rollenansicht gesetzt", view)
}

// ClearOverride godoc
// @Summary      Clear role override
// @Tags         view
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /view/override [delete]
// @Security     BearerAuth
func (h *ViewHandler) ClearOverride(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	view, err := h.viewUC.ClearOverride(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Rollenansicht zurückgesetzt", view)
}
