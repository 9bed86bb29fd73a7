package app

import (
	"github.com/openoralcare/oralhealth-backend/internal/handlers"
	"github.com/openoralcare/oralhealth-backend/internal/logger"
)

type Handlers struct {
	Catalog     *handlers.CatalogHandler
	Cochrane    *handlers.CochraneHandler
	Personalize *handlers.PersonalizeHandler
	Feedback    *handlers.FeedbackHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Catalog:     handlers.NewCatalogHandler(log, services.Catalog),
		Cochrane:    handlers.NewCochraneHandler(log, services.Catalog),
		Personalize: handlers.NewPersonalizeHandler(log, services.Personalization),
		Feedback:    handlers.NewFeedbackHandler(log),
	}
}
