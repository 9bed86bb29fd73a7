package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openoralcare/oralhealth-backend/internal/logger"
	"github.com/openoralcare/oralhealth-backend/internal/types"
)

type MatchRepo interface {
	Create(ctx context.Context, tx *gorm.DB, matches []*types.RecommendationMatch) ([]*types.RecommendationMatch, error)
	GetBySessionID(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*types.RecommendationMatch, error)
	CountBySessionID(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (int64, error)
}

type matchRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMatchRepo(db *gorm.DB, baseLog *logger.Logger) MatchRepo {
	repoLog := baseLog.With("repo", "MatchRepo")
	return &matchRepo{db: db, log: repoLog}
}

func (mr *matchRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return mr.db
}

func (mr *matchRepo) Create(ctx context.Context, tx *gorm.DB, matches []*types.RecommendationMatch) ([]*types.RecommendationMatch, error) {
	if len(matches) == 0 {
		return []*types.RecommendationMatch{}, nil
	}
	if err := mr.handle(tx).WithContext(ctx).Create(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

// GetBySessionID returns matches in ranked order: score descending with the
// stored position breaking ties, so the pipeline's stable ordering survives
// the round-trip through the database.
func (mr *matchRepo) GetBySessionID(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*types.RecommendationMatch, error) {
	var results []*types.RecommendationMatch
	if err := mr.handle(tx).WithContext(ctx).
		Preload("Recommendation").
		Preload("Recommendation.Guideline").
		Preload("Recommendation.Guideline.Organization").
		Preload("Recommendation.Guideline.Organization.Country").
		Preload("Recommendation.Strength").
		Preload("Recommendation.EvidenceQuality").
		Preload("Recommendation.Topics").
		Where("session_id = ?", sessionID).
		Order("relevance_score DESC, position ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *matchRepo) CountBySessionID(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (int64, error) {
	var count int64
	if err := mr.handle(tx).WithContext(ctx).
		Model(&types.RecommendationMatch{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
