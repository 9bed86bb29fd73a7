package app

import (
	"github.com/openoralcare/oralhealth-backend/internal/logger"
	"github.com/openoralcare/oralhealth-backend/internal/services"
)

type Services struct {
	Catalog         services.CatalogService
	Personalization services.PersonalizationService
}

func wireServices(log *logger.Logger, cfg Config, r Repos) (Services, error) {
	log.Info("Wiring services...")

	narrativeClient, err := services.NewGeminiClient(log)
	if err != nil {
		// Without a client every session uses deterministic synthesis.
		log.Warn("Narrative client unavailable", "error", err)
		narrativeClient = nil
	}
	synthesizer := services.NewNarrativeSynthesizer(narrativeClient, log)

	return Services{
		Catalog: services.NewCatalogService(log, r.Recommendation, r.Vocab, r.Cochrane),
		Personalization: services.NewPersonalizationService(
			log,
			r.UserProfile,
			r.Recommendation,
			r.Session,
			r.Match,
			synthesizer,
			cfg.MatchLimit,
		),
	}, nil
}
