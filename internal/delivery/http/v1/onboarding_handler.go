package v1

import (
	"net/http"

	"jobbridge-backend/internal/delivery/http/response"
	"jobbridge-backend/internal/domain"
	"jobbridge-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type OnboardingHandler struct {
	onboardingUC domain.OnboardingUsecase
}

// NewOnboardingHandler wires the wizard routes plus the public consent
// endpoint guardians reach from their mail link.
func NewOnboardingHandler(public *gin.RouterGroup, protected *gin.RouterGroup, onboardingUC domain.OnboardingUsecase) {
	handler := &OnboardingHandler{onboardingUC: onboardingUC}

	onboarding := protected.Group("/onboarding")
	{
		onboarding.GET("/status", handler.Status)
		onboarding.POST("/complete", handler.Complete)
	}

	public.POST("/consent", handler.DecideConsent)
}

type ConsentDecisionRequest struct {
	Token    string `json:"token" binding:"required"`
	Decision string `json:"decision" binding:"required,oneof=granted declined"`
}

// Status godoc
// @Summary      Get onboarding status
// @Tags         onboarding
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /onboarding/status [get]
// @Security     BearerAuth
func (h *OnboardingHandler) Status(c *gin.Context) {
	status, err := h.onboardingUC.GetOnboardingStatus(c.Request.Context(), c.GetString(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Onboarding-Status geladen", status)
}

// Complete godoc
// @Summary      Complete onboarding
// @Description  Writes the profile. Seekers under 18 trigger a guardian consent mail and stay blocked from live applications until consent is granted.
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        body  body      domain.OnboardingSubmitRequest  true  "Onboarding data"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /onboarding/complete [post]
// @Security     BearerAuth
func (h *OnboardingHandler) Complete(c *gin.Context) {
	var req domain.OnboardingSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	status, err := h.onboardingUC.CompleteOnboarding(c.Request.Context(), c.GetString(string(domain.KeyUserID)), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Onboarding abgeschlossen", status)
}

// DecideConsent godoc
// @Summary      Decide a guardian consent request
// @Description  Public endpoint reached from the guardian's mail link
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        body  body      ConsentDecisionRequest  true  "Decision"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /consent [post]
func (h *OnboardingHandler) DecideConsent(c *gin.Context) {
	var req ConsentDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.onboardingUC.DecideConsent(c.Request.Context(), req.Token, req.Decision); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Entscheidung gespeichert", nil)
}
