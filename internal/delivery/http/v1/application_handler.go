package v1

import (
	"net/http"

	"jobbridge-backend/internal/delivery/http/response"
	"jobbridge-backend/internal/domain"
	"jobbridge-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

func NewApplicationHandler(protected *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	protected.POST("/jobs/:id/apply", handler.Apply)

	applications := protected.Group("/applications")
	{
		applications.GET("", handler.List)
		applications.POST("/:id/accept", handler.Accept)
		applications.POST("/:id/reject", handler.Reject)
		applications.POST("/:id/withdraw", handler.Withdraw)
	}
}

type ApplyRequest struct {
	Message string `json:"message" binding:"max=1000"`
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type WithdrawRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// Apply godoc
// @Summary      Apply to a job
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      string        true  "Job ID"
// @Param        body  body      ApplyRequest  true  "Application message"
// @Success      201  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /jobs/{id}/apply [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	app, err := h.applicationUC.ApplyToJob(c.Request.Context(),
		viewFromContext(c), c.GetString(string(domain.KeyUserID)), c.Param("id"), req.Message)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Bewerbung gesendet", app)
}

// List godoc
// @Summary      List applications
// @Description  Without job_id lists the caller's own applications; with job_id lists a job's applications (owner only)
// @Tags         applications
// @Produce      json
// @Param        job_id  query  string  false  "Job ID"
// @Success      200  {object}  response.Response
// @Router       /applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) List(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	view := viewFromContext(c)

	var apps []domain.Application
	var err error
	if jobID := c.Query("job_id"); jobID != "" {
		apps, err = h.applicationUC.ListByJobID(c.Request.Context(), view, userID, jobID)
	} else {
		apps, err = h.applicationUC.GetMyApplications(c.Request.Context(), view, userID)
	}
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Bewerbungen geladen", apps)
}

// Accept godoc
// @Summary      Accept an applicant
// @Description  Accepts one application, auto-rejects every still submitted peer and moves the job (filled for single_hire, reserved for multi_hire)
// @Tags         applications
// @Produce      json
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /applications/{id}/accept [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Accept(c *gin.Context) {
	result, err := h.applicationUC.AcceptApplicant(c.Request.Context(),
		viewFromContext(c), c.GetString(string(domain.KeyUserID)), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Bewerbung angenommen", result)
}

// Reject godoc
// @Summary      Reject an applicant
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Application ID"
// @Param        body  body      RejectRequest  true  "Rejection reason"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /applications/{id}/reject [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Reject(c *gin.Context) {
	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	err := h.applicationUC.RejectApplicant(c.Request.Context(),
		viewFromContext(c), c.GetString(string(domain.KeyUserID)), c.Param("id"), req.Reason)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Bewerbung abgelehnt", nil)
}

// Withdraw godoc
// @Summary      Withdraw own application
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      string           true  "Application ID"
// @Param        body  body      WithdrawRequest  true  "Withdrawal reason"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /applications/{id}/withdraw [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	err := h.applicationUC.WithdrawApplication(c.Request.Context(),
		viewFromContext(c), c.GetString(string(domain.KeyUserID)), c.Param("id"), toPtr(req.Reason))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Bewerbung zurückgezogen", nil)
}
