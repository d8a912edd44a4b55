package inference

import (
	"errors"
	"strings"

	"github.com/A-CE-V/Endless-Artificial-Connections/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct{ gw *Gateway }

func NewHandler(gw *Gateway) *Handler { return &Handler{gw: gw} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/summarize", h.summarize)
	rg.POST("/detect-ai", h.detectAI)
	rg.POST("/generate", h.generate)
	rg.GET("/models", h.listModels)
}

type summarizeDTO struct {
	Text       string `json:"text"`
	ModelIndex *int   `json:"modelIndex"`
}

type detectDTO struct {
	Text string `json:"text"`
}

type generateDTO struct {
	Prompt     string `json:"prompt"`
	ModelIndex *int   `json:"modelIndex"`
}

// POST /summarize
func (h *Handler) summarize(c *gin.Context) {
	var dto summarizeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid JSON body")
		return
	}
	if strings.TrimSpace(dto.Text) == "" {
		response.BadRequest(c, "text is required")
		return
	}

	result, err := h.gw.Summarize(c.Request.Context(), dto.Text, indexOrDefault(dto.ModelIndex))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, result)
}

// POST /detect-ai
func (h *Handler) detectAI(c *gin.Context) {
	var dto detectDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid JSON body")
		return
	}
	if strings.TrimSpace(dto.Text) == "" {
		response.BadRequest(c, "text is required")
		return
	}

	result, err := h.gw.DetectAI(c.Request.Context(), dto.Text)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, result)
}

// POST /generate — success is binary image bytes, not JSON.
func (h *Handler) generate(c *gin.Context) {
	var dto generateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid JSON body")
		return
	}
	if strings.TrimSpace(dto.Prompt) == "" {
		response.BadRequest(c, "prompt is required")
		return
	}

	result, err := h.gw.GenerateImage(c.Request.Context(), dto.Prompt, indexOrDefault(dto.ModelIndex))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Binary(c, result.ContentType, result.Data)
}

// GET /models
func (h *Handler) listModels(c *gin.Context) {
	response.OK(c, Catalog())
}

func indexOrDefault(index *int) int {
	if index == nil {
		return 0
	}
	return *index
}

// writeError maps the gateway error taxonomy onto the HTTP surface:
// unknown index -> 400, loading -> 503 retry hint, upstream -> 500 with the
// provider payload echoed, anything else -> generic 500.
func (h *Handler) writeError(c *gin.Context, err error) {
	var loading *LoadingError
	var upstream *UpstreamError

	switch {
	case errors.Is(err, ErrUnknownModel):
		response.BadRequest(c, "invalid modelIndex")
	case errors.As(err, &loading):
		response.Loading(c, loading.Message, loading.EstimatedTime)
	case errors.As(err, &upstream):
		response.UpstreamError(c, upstream.Message, upstream.Details())
	default:
		response.UpstreamError(c, "inference request failed", err.Error())
	}
}
