package router

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/biloute593/GAMELLE-APP/internal/ai"
	"github.com/biloute593/GAMELLE-APP/internal/config"
	"github.com/biloute593/GAMELLE-APP/internal/handlers"
	"github.com/biloute593/GAMELLE-APP/internal/logger"
	"github.com/biloute593/GAMELLE-APP/internal/middleware"
	"github.com/biloute593/GAMELLE-APP/internal/repository"
	"github.com/biloute593/GAMELLE-APP/internal/s3"
	"github.com/biloute593/GAMELLE-APP/internal/service"
	"github.com/biloute593/GAMELLE-APP/internal/ws"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterExpiration      = 10 * time.Minute
)

// Dependencies are the collaborators the routes are built from.
type Dependencies struct {
	DishRepo repository.DishRepo
	Provider ai.Provider
	Images   handlers.ImageUploader
	Hub      *ws.Hub
}

// SetupRouter wires the production dependencies and starts the feed hub.
func SetupRouter(cfg *config.Config, database *gorm.DB) (*gin.Engine, error) {
	provider, err := ai.NewProvider(cfg)
	if err != nil {
		return nil, err
	}

	hub := ws.NewHub()
	go hub.Run()

	return NewRouter(cfg, Dependencies{
		DishRepo: repository.NewDishRepository(database),
		Provider: provider,
		Images:   s3.NewImageStore(cfg),
		Hub:      hub,
	}), nil
}

// NewRouter builds the Gin engine. The caller owns the hub's Run loop. A nil
// Hub disables the live feed.
func NewRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(corsConfig(cfg.EnvVars.AllowedOrigins)))

	// Add request ID middleware for request correlation
	r.Use(logger.RequestIDMiddleware())
	r.Use(logger.AccessLogMiddleware())

	// Ping route for testing
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	rps := cfg.EnvVars.RateLimitRPS
	if rps <= 0 {
		rps = 5
	}
	aiLimiter := middleware.NewIPRateLimiter(rps, limiterCleanupInterval, limiterExpiration)

	ideaService := service.NewIdeaService(deps.Provider)
	ideaHandler := handlers.NewIdeaHandler(ideaService, deps.Provider)

	var publisher service.DishPublisher
	if deps.Hub != nil {
		publisher = deps.Hub
	}
	dishService := service.NewDishService(deps.DishRepo, publisher)
	searchService := service.NewSearchService(deps.DishRepo, deps.Provider)
	dishHandler := handlers.NewDishHandler(dishService, searchService)

	imageHandler := handlers.NewImageHandler(deps.Images)

	// Serverless-compatible idea proxy with its own per-IP budget; any method
	// reaches the handler so it can answer 405 itself.
	r.Any("/generate-ideas", middleware.RateLimitByIP(rps, limiterCleanupInterval, limiterExpiration), ideaHandler.GenerateIdeasProxy)

	api := r.Group("/v1")
	if cfg.EnvVars.IDHeader != "" {
		api.Use(middleware.CheckIDHeader(cfg.EnvVars.IDHeader))
	}
	{
		// Idea generation for the listing form
		api.POST("/ideas", aiLimiter.Middleware(), ideaHandler.GenerateIdeas)

		// Storefront listing; searches hit the model and are rate limited
		api.GET("/dishes", aiLimiter.MiddlewareWhen(isSearch), dishHandler.ListDishes)
		api.GET("/dishes/:dish_id", dishHandler.GetDish)
		api.POST("/dishes", dishHandler.CreateDish)

		// Image upload
		api.POST("/images/upload", imageHandler.UploadImage)
	}

	// Browsers cannot set custom headers on websocket upgrades.
	if deps.Hub != nil {
		feedHandler := ws.NewFeedHandler(deps.Hub, cfg.EnvVars.AllowedOrigins)
		r.GET("/v1/ws/dishes", feedHandler.HandleDishFeed)
	}

	return r
}

func isSearch(c *gin.Context) bool {
	return strings.TrimSpace(c.Query("q")) != ""
}

func corsConfig(allowedOrigins []string) cors.Config {
	config := cors.DefaultConfig()
	config.AllowHeaders = append(config.AllowHeaders, middleware.IDHeaderName)
	if len(allowedOrigins) == 0 {
		config.AllowAllOrigins = true
		return config
	}
	config.AllowCredentials = true
	config.AllowOrigins = allowedOrigins
	return config
}
