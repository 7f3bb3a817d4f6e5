package api

import (
	"io"
	"net/http"
	"whatsapp-campaign/internal/templates"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type TemplateStore interface {
	Approved() ([]templates.Template, error)
	FindByID(id string) (*templates.Template, error)
}

type TemplateHandler struct {
	Store TemplateStore
}

func NewTemplateHandler(store TemplateStore) *TemplateHandler {
	return &TemplateHandler{Store: store}
}

// GetTemplates returns approved templates, optionally narrowed by the
// category and language query parameters.
func (h *TemplateHandler) GetTemplates(c *gin.Context) {
	approved, err := h.Store.Approved()
	if err != nil {
		respondError(c, err, "Failed to load templates")
		return
	}
	c.JSON(http.StatusOK, templates.Filter(approved, c.Query("category"), c.Query("language")))
}

func (h *TemplateHandler) GetFilters(c *gin.Context) {
	approved, err := h.Store.Approved()
	if err != nil {
		respondError(c, err, "Failed to load templates")
		return
	}
	c.JSON(http.StatusOK, templates.BuildFacets(approved))
}

func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	tmpl, err := h.Store.FindByID(c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load template")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"template":  tmpl,
		"variables": templates.ExtractVariables(tmpl.Components),
	})
}

type PreviewRequest struct {
	Variables []templates.Variable `json:"variables"`
}

// Preview renders the template with the given values. Variables the
// template does not use are ignored.
func (h *TemplateHandler) Preview(c *gin.Context) {
	var req PreviewRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	tmpl, err := h.Store.FindByID(c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load template")
		return
	}

	values := make(map[string]string, len(req.Variables))
	for _, v := range req.Variables {
		values[v.Name] = v.Value
	}
	vars := templates.MergeValues(templates.ExtractVariables(tmpl.Components), values)

	c.JSON(http.StatusOK, templates.RenderPreview(tmpl, vars))
}

type BuildRequest struct {
	Variables templates.Variables `json:"variables"`
}

// BuildRequest returns the provider content object for the template
// without sending it.
func (h *TemplateHandler) BuildRequest(c *gin.Context) {
	var req BuildRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	tmpl, err := h.Store.FindByID(c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load template")
		return
	}

	content, err := templates.BuildContent(tmpl, req.Variables)
	if err != nil {
		respondError(c, err, "Failed to format template")
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": content})
}

// bindOptionalJSON accepts an empty body but rejects malformed JSON.
func bindOptionalJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}
