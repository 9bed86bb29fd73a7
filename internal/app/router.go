package app

import (
	"github.com/gin-gonic/gin"

	"github.com/openoralcare/oralhealth-backend/internal/cache"
	"github.com/openoralcare/oralhealth-backend/internal/logger"
	"github.com/openoralcare/oralhealth-backend/internal/server"
)

func wireRouter(log *logger.Logger, store *cache.RedisCache, handlers Handlers) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		Log:                log,
		Cache:              store,
		CatalogHandler:     handlers.Catalog,
		CochraneHandler:    handlers.Cochrane,
		PersonalizeHandler: handlers.Personalize,
		FeedbackHandler:    handlers.Feedback,
	})
}
