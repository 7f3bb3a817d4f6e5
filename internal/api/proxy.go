package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"whatsapp-campaign/internal/middleware"
	"whatsapp-campaign/internal/whatsapp"

	"github.com/gin-gonic/gin"
)

type MessageSender interface {
	SendMessage(ctx context.Context, body interface{}) (json.RawMessage, error)
}

// ProxyHandler forwards message bodies built by the frontend to the
// provider as they are.
type ProxyHandler struct {
	Client MessageSender
}

func NewProxyHandler(client MessageSender) *ProxyHandler {
	return &ProxyHandler{Client: client}
}

func (h *ProxyHandler) Create(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 || !json.Valid(body) {
		c.JSON(http.StatusBadRequest, gin.H{"created": false, "error": "invalid request body"})
		return
	}

	data, err := h.Client.SendMessage(c.Request.Context(), json.RawMessage(body))
	middleware.RecordProxy(err == nil)
	if err != nil {
		if whatsapp.IsAPIError(err) {
			log.Printf("Provider rejected message: %v", err)
		} else {
			log.Printf("Failed to reach provider: %v", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"created": false, "error": "failed to create"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"created": true, "data": data})
}
