package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/openoralcare/oralhealth-backend/internal/logger"
	"github.com/openoralcare/oralhealth-backend/internal/types"
)

// VocabRepo serves the filter vocabularies the browse UI offers: topics,
// countries, strengths, and evidence qualities.
type VocabRepo interface {
	ListTopics(ctx context.Context, tx *gorm.DB) ([]*types.Topic, error)
	ListCountries(ctx context.Context, tx *gorm.DB) ([]*types.Country, error)
	ListStrengths(ctx context.Context, tx *gorm.DB) ([]*types.RecommendationStrength, error)
	ListEvidenceQualities(ctx context.Context, tx *gorm.DB) ([]*types.EvidenceQuality, error)
}

type vocabRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVocabRepo(db *gorm.DB, baseLog *logger.Logger) VocabRepo {
	repoLog := baseLog.With("repo", "VocabRepo")
	return &vocabRepo{db: db, log: repoLog}
}

func (vr *vocabRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return vr.db
}

func (vr *vocabRepo) ListTopics(ctx context.Context, tx *gorm.DB) ([]*types.Topic, error) {
	var results []*types.Topic
	if err := vr.handle(tx).WithContext(ctx).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (vr *vocabRepo) ListCountries(ctx context.Context, tx *gorm.DB) ([]*types.Country, error) {
	var results []*types.Country
	if err := vr.handle(tx).WithContext(ctx).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (vr *vocabRepo) ListStrengths(ctx context.Context, tx *gorm.DB) ([]*types.RecommendationStrength, error) {
	var results []*types.RecommendationStrength
	if err := vr.handle(tx).WithContext(ctx).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (vr *vocabRepo) ListEvidenceQualities(ctx context.Context, tx *gorm.DB) ([]*types.EvidenceQuality, error) {
	var results []*types.EvidenceQuality
	if err := vr.handle(tx).WithContext(ctx).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
