package v1

import (
	"net/http"

	"jobbridge-backend/internal/delivery/http/response"
	"jobbridge-backend/internal/domain"
	"jobbridge-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	messageUC domain.MessageUsecase
}

func NewMessageHandler(protected *gin.RouterGroup, messageUC domain.MessageUsecase) {
	handler := &MessageHandler{messageUC: messageUC}

	messages := protected.Group("/applications/:id/messages")
	{
		messages.GET("", handler.List)
		messages.POST("", handler.Send)
		messages.POST("/read", handler.MarkRead)
	}
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

// List godoc
// @Summary      List messages of an application
// @Tags         messages
// @Produce      json
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /applications/{id}/messages [get]
// @Security     BearerAuth
func (h *MessageHandler) List(c *gin.Context) {
	messages, err := h.messageUC.List(c.Request.Context(),
		viewFromContext(c), c.GetString(string(domain.KeyUserID)), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Nachrichten geladen", messages)
}

// Send godoc
// @Summary      Send a message
// @Description  Only allowed while the application is submitted, negotiating or accepted
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Application ID"
// @Param        body  body      SendMessageRequest  true  "Message"
// @Success      201  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /applications/{id}/messages [post]
// @Security     BearerAuth
func (h *MessageHandler) Send(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	msg, err := h.messageUC.Send(c.Request.Context(),
		viewFromContext(c), c.GetString(string(domain.KeyUserID)), c.Param("id"), req.Content)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Nachricht gesendet", msg)
}

// MarkRead godoc
// @Summary      Mark messages as read
// @Tags         messages
// @Produce      json
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  response.Response
// @Router       /applications/{id}/messages/read [post]
// @Security     BearerAuth
func (h *MessageHandler) MarkRead(c *gin.Context) {
	err := h.messageUC.MarkRead(c.Request.Context(),
		viewFromContext(c), c.GetString(string(domain.KeyUserID)), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Nachrichten als gelesen markiert", nil)
}
