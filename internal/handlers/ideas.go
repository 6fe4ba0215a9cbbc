package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/biloute593/GAMELLE-APP/internal/ai"
	"github.com/biloute593/GAMELLE-APP/internal/logger"
	"github.com/biloute593/GAMELLE-APP/internal/service"
)

// Fixed messages of the serverless-compatible /generate-ideas contract.
const (
	msgProxyMethodNotAllowed = "Only POST requests are allowed."
	msgProxyMissingFields    = "Missing ingredients or cuisine in request body."
	msgProxyFailed           = "Failed to generate ideas."
)

// IdeaHandler serves dish idea generation.
type IdeaHandler struct {
	Service  *service.IdeaService
	Provider ai.IdeaProvider
}

// NewIdeaHandler creates a new IdeaHandler.
func NewIdeaHandler(svc *service.IdeaService, provider ai.IdeaProvider) *IdeaHandler {
	return &IdeaHandler{
		Service:  svc,
		Provider: provider,
	}
}

type ideasRequest struct {
	Ingredients string `json:"ingredients"`
	Cuisine     string `json:"cuisine"`
}

// GenerateIdeas handles POST /v1/ideas for the storefront listing form.
func (h *IdeaHandler) GenerateIdeas(c *gin.Context) {
	var req ideasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": service.MsgMissingIdeaInput})
		return
	}

	ideas, err := h.Service.GenerateIdeas(c.Request.Context(), req.Ingredients, req.Cuisine)
	if err != nil {
		var vErr *service.ValidationError
		var genErr *service.GenerationError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
		case errors.As(err, &genErr):
			logIdeaFailure(c, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": genErr.Message})
		default:
			logIdeaFailure(c, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": service.MsgIdeasFailed})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": ideas})
}

// GenerateIdeasProxy handles /generate-ideas with the exact contract of the
// hosted function it replaces: POST only, both fields required, and a single
// generic message for every failure.
func (h *IdeaHandler) GenerateIdeasProxy(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": msgProxyMethodNotAllowed})
		return
	}

	var req ideasRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Ingredients == "" || req.Cuisine == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgProxyMissingFields})
		return
	}

	ideas, err := h.Provider.GenerateIdeas(c.Request.Context(), req.Ingredients, req.Cuisine)
	if err != nil {
		logIdeaFailure(c, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgProxyFailed})
		return
	}

	c.JSON(http.StatusOK, ai.GeneratedIdeas{Suggestions: ideas})
}

func logIdeaFailure(c *gin.Context, err error) {
	log := logger.FromGin(c)
	if ai.IsConfigurationError(err) {
		log.Error("idea generation is not configured on the server", zap.Error(err))
		return
	}
	log.Error("failed to generate ideas", zap.Error(err))
}
