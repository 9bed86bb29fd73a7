package app

import (
	"gorm.io/gorm"

	"github.com/openoralcare/oralhealth-backend/internal/logger"
	"github.com/openoralcare/oralhealth-backend/internal/repos"
)

type Repos struct {
	Recommendation repos.RecommendationRepo
	Vocab          repos.VocabRepo
	Cochrane       repos.CochraneRepo
	UserProfile    repos.UserProfileRepo
	Session        repos.SessionRepo
	Match          repos.MatchRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Recommendation: repos.NewRecommendationRepo(db, log),
		Vocab:          repos.NewVocabRepo(db, log),
		Cochrane:       repos.NewCochraneRepo(db, log),
		UserProfile:    repos.NewUserProfileRepo(db, log),
		Session:        repos.NewSessionRepo(db, log),
		Match:          repos.NewMatchRepo(db, log),
	}
}
