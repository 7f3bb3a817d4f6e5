package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type TemplateLister interface {
	GetTemplates(ctx context.Context, name, language string) (json.RawMessage, error)
}

// ProviderHandler exposes the provider's own template listing.
type ProviderHandler struct {
	Client TemplateLister
}

func NewProviderHandler(client TemplateLister) *ProviderHandler {
	return &ProviderHandler{Client: client}
}

func (h *ProviderHandler) GetTemplates(c *gin.Context) {
	data, err := h.Client.GetTemplates(c.Request.Context(), c.Query("name"), c.Query("language"))
	if err != nil {
		log.Printf("Failed to fetch provider templates: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch templates"})
		return
	}
	c.JSON(http.StatusOK, data)
}
