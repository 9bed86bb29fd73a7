package server

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/openoralcare/oralhealth-backend/internal/cache"
	"github.com/openoralcare/oralhealth-backend/internal/handlers"
	"github.com/openoralcare/oralhealth-backend/internal/logger"
	"github.com/openoralcare/oralhealth-backend/internal/middleware"
)

type RouterConfig struct {
	Log                *logger.Logger
	Cache              cache.Cache
	CatalogHandler     *handlers.CatalogHandler
	CochraneHandler    *handlers.CochraneHandler
	PersonalizeHandler *handlers.PersonalizeHandler
	FeedbackHandler    *handlers.FeedbackHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(cfg.Log))

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")

	// Browse endpoints are cacheable; the corpus changes rarely.
	cached := api.Group("/")
	cached.Use(middleware.CacheResponse(cfg.Cache, cache.DefaultTTL))
	{
		cached.GET("/recommendations", cfg.CatalogHandler.ListRecommendations)
		cached.GET("/recommendations/:id", cfg.CatalogHandler.GetRecommendation)
		cached.GET("/search", cfg.CatalogHandler.Suggest)
		cached.GET("/topics", cfg.CatalogHandler.ListTopics)
		cached.GET("/countries", cfg.CatalogHandler.ListCountries)
		cached.GET("/cochrane/reviews", cfg.CochraneHandler.ListReviews)
		cached.GET("/cochrane/reviews/:cochraneID", cfg.CochraneHandler.GetReview)
	}

	// Personalization is per-profile and never cached.
	api.POST("/personalize", cfg.PersonalizeHandler.Personalize)
	api.GET("/personalize/:sessionID", cfg.PersonalizeHandler.GetResults)
	api.GET("/personalize/:sessionID/status", cfg.PersonalizeHandler.GetStatus)
	api.POST("/feedback", cfg.FeedbackHandler.SubmitFeedback)

	return router
}

func allowedOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if raw == "" {
		return []string{"http://localhost:3000", "http://localhost:8000"}
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
