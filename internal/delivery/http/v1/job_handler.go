package v1

import (
	"net/http"
	"strconv"

	"jobbridge-backend/internal/delivery/http/response"
	"jobbridge-backend/internal/domain"
	"jobbridge-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	jobs := protected.Group("/jobs")
	{
		jobs.GET("", handler.List)
		jobs.GET("/:id", handler.GetDetails)
		jobs.POST("", handler.Create)
		jobs.PUT("/:id", handler.Update)
		jobs.POST("/:id/close", handler.Close)
		jobs.PUT("/:id/private-details", handler.SavePrivateDetails)
	}
}

type CreateJobRequest struct {
	Title               string   `json:"title" binding:"required"`
	Description         string   `json:"description" binding:"required"`
	WageHourly          float64  `json:"wage_hourly" binding:"required,gt=0"`
	Category            string   `json:"category"`
	MarketID            string   `json:"market_id"`
	HiringMode          string   `json:"hiring_mode" binding:"omitempty,oneof=single_hire multi_hire"`
	AddressRevealPolicy string   `json:"address_reveal_policy" binding:"omitempty,oneof=public after_accept on_review"`
	PublicLocationLabel string   `json:"public_location_label"`
	PublicLocationLat   *float64 `json:"public_location_lat"`
	PublicLocationLng   *float64 `json:"public_location_lng"`
	// Private address sidecar; omitted for public-location jobs
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

type UpdateJobRequest struct {
	Title               string   `json:"title" binding:"required"`
	Description         string   `json:"description" binding:"required"`
	WageHourly          float64  `json:"wage_hourly" binding:"required,gt=0"`
	Category            string   `json:"category"`
	HiringMode          string   `json:"hiring_mode" binding:"omitempty,oneof=single_hire multi_hire"`
	AddressRevealPolicy string   `json:"address_reveal_policy" binding:"omitempty,oneof=public after_accept on_review"`
	PublicLocationLabel string   `json:"public_location_label"`
	PublicLocationLat   *float64 `json:"public_location_lat"`
	PublicLocationLng   *float64 `json:"public_location_lng"`
}

type SavePrivateDetailsRequest struct {
	Address string `json:"address" binding:"required"`
	Notes   string `json:"notes"`
}

// List godoc
// @Summary      List jobs
// @Description  mode=feed lists open jobs in the caller's partition; mode=my_jobs lists own postings
// @Tags         jobs
// @Produce      json
// @Param        mode       query  string  false  "feed or my_jobs"  default(feed)
// @Param        market_id  query  string  false  "Filter by market"
// @Param        status     query  string  false  "Feed status filter"
// @Param        limit      query  int     false  "Page size (max 50)"
// @Param        offset     query  int     false  "Page offset"
// @Success      200  {object}  response.Response
// @Router       /jobs [get]
// @Security     BearerAuth
func (h *JobHandler) List(c *gin.Context) {
	mode := domain.FetchJobsMode(c.DefaultQuery("mode", string(domain.FetchModeFeed)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, err := h.jobUC.FetchJobs(c.Request.Context(), domain.FetchJobsParams{
		Mode:     mode,
		View:     viewFromContext(c),
		UserID:   c.GetString(string(domain.KeyUserID)),
		MarketID: toPtr(c.Query("market_id")),
		Status:   c.Query("status"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs geladen", items)
}

// GetDetails godoc
// @Summary      Get job details
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
// @Security     BearerAuth
func (h *JobHandler) GetDetails(c *gin.Context) {
	item, err := h.jobUC.GetJobDetails(c.Request.Context(),
		viewFromContext(c), c.GetString(string(domain.KeyUserID)), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job geladen", item)
}

// Create godoc
// @Summary      Create a job
// @Description  Creates a posting. The result may be partial when the private address could not be stored; resume via the private-details endpoint.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      CreateJobRequest  true  "Job JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	job := &domain.Job{
		Title:               req.Title,
		Description:         req.Description,
		WageHourly:          req.WageHourly,
		Category:            toPtr(req.Category),
		MarketID:            toPtr(req.MarketID),
		HiringMode:          req.HiringMode,
		AddressRevealPolicy: req.AddressRevealPolicy,
		PublicLocationLabel: toPtr(req.PublicLocationLabel),
		PublicLocationLat:   req.PublicLocationLat,
		PublicLocationLng:   req.PublicLocationLng,
	}

	var details *domain.JobPrivateDetails
	if req.Address != "" {
		details = &domain.JobPrivateDetails{
			Address: req.Address,
			Notes:   toPtr(req.Notes),
		}
	}

	outcome, err := h.jobUC.CreateJob(c.Request.Context(),
		viewFromContext(c), c.GetString(string(domain.KeyUserID)), job, details)
	if err != nil {
		c.Error(err)
		return
	}

	message := "Job erstellt"
	if outcome.Outcome == domain.CreateOutcomePartial {
		message = "Job erstellt, Adresse konnte nicht gespeichert werden"
	}
	response.Success(c, http.StatusCreated, message, outcome)
}

// SavePrivateDetails godoc
// @Summary      Save job private details
// @Description  Stores the non-public address. Also used to resume a partial creation; the write is idempotent.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "Job ID"
// @Param        body  body      SavePrivateDetailsRequest  true  "Private details"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id}/private-details [put]
// @Security     BearerAuth
func (h *JobHandler) SavePrivateDetails(c *gin.Context) {
	var req SavePrivateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	err := h.jobUC.RetrySaveJobPrivateDetails(c.Request.Context(),
		c.GetString(string(domain.KeyUserID)), c.Param("id"),
		&domain.JobPrivateDetails{Address: req.Address, Notes: toPtr(req.Notes)})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Adresse gespeichert", nil)
}

// Update godoc
// @Summary      Update a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      string            true  "Job ID"
// @Param        job  body      UpdateJobRequest  true  "Job JSON"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	var req UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	job := &domain.Job{
		ID:                  c.Param("id"),
		Title:               req.Title,
		Description:         req.Description,
		WageHourly:          req.WageHourly,
		Category:            toPtr(req.Category),
		HiringMode:          req.HiringMode,
		AddressRevealPolicy: req.AddressRevealPolicy,
		PublicLocationLabel: toPtr(req.PublicLocationLabel),
		PublicLocationLat:   req.PublicLocationLat,
		PublicLocationLng:   req.PublicLocationLng,
	}

	if err := h.jobUC.UpdateJob(c.Request.Context(), viewFromContext(c), c.GetString(string(domain.KeyUserID)), job); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job aktualisiert", nil)
}

// Close godoc
// @Summary      Close a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /jobs/{id}/close [post]
// @Security     BearerAuth
func (h *JobHandler) Close(c *gin.Context) {
	err := h.jobUC.CloseJob(c.Request.Context(),
		viewFromContext(c), c.GetString(string(domain.KeyUserID)), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job geschlossen", nil)
}
