package api

import (
	"log"
	"net/http"
	"whatsapp-campaign/internal/campaign"
	"whatsapp-campaign/internal/templates"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// respondError maps service errors onto status codes. Anything unexpected
// is logged and hidden behind a generic message.
func respondError(c *gin.Context, err error, fallback string) {
	var verr *campaign.ValidationError
	switch {
	case errors.As(err, &verr):
		body := gin.H{"error": verr.Message}
		if len(verr.Invalid) > 0 {
			body["invalid"] = verr.Invalid
		}
		c.JSON(http.StatusBadRequest, body)
	case errors.Cause(err) == templates.ErrMissingTemplate:
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
	default:
		log.Printf("%s: %v", fallback, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
