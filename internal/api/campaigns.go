package api

import (
	"context"
	"net/http"
	"whatsapp-campaign/internal/campaign"
	"whatsapp-campaign/internal/templates"

	"github.com/gin-gonic/gin"
)

type CampaignSender interface {
	Send(ctx context.Context, req campaign.Request) (*campaign.Result, error)
	SendMemberEvent(ctx context.Context, evt templates.MemberEvent) (*campaign.Result, error)
}

type CampaignHandler struct {
	Service CampaignSender
}

func NewCampaignHandler(service CampaignSender) *CampaignHandler {
	return &CampaignHandler{Service: service}
}

func (h *CampaignHandler) Send(c *gin.Context) {
	var req campaign.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.Service.Send(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to send campaign")
		return
	}
	respondResult(c, result)
}

// MemberEvent sends the template named in a loyalty-program event to the
// member.
func (h *CampaignHandler) MemberEvent(c *gin.Context) {
	var evt templates.MemberEvent
	if err := c.ShouldBindJSON(&evt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.Service.SendMemberEvent(c.Request.Context(), evt)
	if err != nil {
		respondError(c, err, "Failed to send message")
		return
	}
	respondResult(c, result)
}

// respondResult reports 500 only when no recipient got the message.
func respondResult(c *gin.Context, result *campaign.Result) {
	status := http.StatusOK
	if result.Sent == 0 {
		status = http.StatusInternalServerError
	}
	c.JSON(status, result)
}
