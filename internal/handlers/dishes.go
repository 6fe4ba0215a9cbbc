package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/biloute593/GAMELLE-APP/internal/logger"
	"github.com/biloute593/GAMELLE-APP/internal/repository"
	"github.com/biloute593/GAMELLE-APP/internal/service"
)

// DishHandler serves the storefront listing, search and new listings.
type DishHandler struct {
	Service       *service.DishService
	SearchService *service.SearchService
}

// NewDishHandler creates a new DishHandler.
func NewDishHandler(svc *service.DishService, searchSvc *service.SearchService) *DishHandler {
	return &DishHandler{
		Service:       svc,
		SearchService: searchSvc,
	}
}

// ListDishes handles GET /v1/dishes. With a non-blank q the storefront is
// filtered by the model; without it every dish is returned.
func (h *DishHandler) ListDishes(c *gin.Context) {
	query := c.Query("q")

	result, err := h.SearchService.Search(c.Request.Context(), query)
	if err != nil {
		logger.FromGin(c).Error("dish search failed", zap.String("query", query), zap.Error(err))

		var searchErr *service.SearchError
		if errors.As(err, &searchErr) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": searchErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if !result.Filtered {
		c.JSON(http.StatusOK, gin.H{
			"dishes":    result.Dishes,
			"citations": result.Citations,
			"filtered":  false,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"dishes":     result.Dishes,
		"matchedIds": result.MatchedIDs,
		"citations":  result.Citations,
		"filtered":   true,
	})
}

// GetDish handles GET /v1/dishes/:dish_id.
func (h *DishHandler) GetDish(c *gin.Context) {
	dishIDStr := c.Param("dish_id")
	dishID, err := parseIntParam(dishIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dish ID"})
		return
	}

	dish, err := h.Service.GetDish(dishID)
	if err != nil {
		switch e := err.(type) {
		case repository.NotFoundError:
			c.JSON(http.StatusNotFound, gin.H{"error": e.Error()})
		default:
			logger.FromGin(c).Error("failed to get dish", zap.String("dish_id", dishIDStr), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": e.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"dish": dish})
}

// CreateDish handles POST /v1/dishes.
func (h *DishHandler) CreateDish(c *gin.Context) {
	var listing service.NewDishListing
	if err := c.ShouldBindJSON(&listing); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": service.MsgIncompleteListing})
		return
	}

	dish, err := h.Service.CreateDish(listing)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
			return
		}
		logger.FromGin(c).Error("failed to create dish", zap.String("name", listing.Name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de publier le plat pour le moment."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"dish": dish})
}
