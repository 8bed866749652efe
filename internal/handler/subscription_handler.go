package handler

import (
	"delit-api/internal/service"
	"delit-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

type SubscribeRequest struct {
	MailID string `form:"mail_id" json:"mail_id"`
}

// Subscribe adds an address to the mailing list. The address may be sent
// as a query parameter, a form field or JSON.
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	_ = c.ShouldBind(&req)
	if req.MailID == "" {
		req.MailID = c.Query("mail_id")
	}

	subscriber, created, err := h.subscriptionService.Subscribe(c.Request.Context(), req.MailID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if !created {
		utils.MessageResponse(c, "Already subscribed")
		return
	}
	utils.CreatedResponse(c, subscriber)
}

func (h *SubscriptionHandler) List(c *gin.Context) {
	subscribers, err := h.subscriptionService.List(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, subscribers)
}

func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	if err := h.subscriptionService.Unsubscribe(c.Request.Context(), c.Param("mail_id")); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.MessageResponse(c, "Unsubscribed successfully")
}
