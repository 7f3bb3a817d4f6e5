package api

import (
	"net/http"
	"strconv"
	"whatsapp-campaign/internal/models"

	"github.com/gin-gonic/gin"
)

type MessageReader interface {
	Recent(limit int, campaignID string) ([]models.Message, error)
}

type MessageHandler struct {
	Log MessageReader
}

func NewMessageHandler(log MessageReader) *MessageHandler {
	return &MessageHandler{Log: log}
}

// GetMessages lists the send log newest first. Supports limit and
// campaign_id query parameters.
func (h *MessageHandler) GetMessages(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	messages, err := h.Log.Recent(limit, c.Query("campaign_id"))
	if err != nil {
		respondError(c, err, "Failed to load messages")
		return
	}
	c.JSON(http.StatusOK, messages)
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
