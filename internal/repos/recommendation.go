package repos

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openoralcare/oralhealth-backend/internal/logger"
	"github.com/openoralcare/oralhealth-backend/internal/types"
)

// SearchParams are the browse/search filters of the public API.
type SearchParams struct {
	Query             string
	CountryCode       string
	TopicID           *uuid.UUID
	StrengthID        *uuid.UUID
	EvidenceQualityID *uuid.UUID
	Page              int
	Limit             int
}

type Suggestion struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Country string    `json:"country"`
}

type RecommendationRepo interface {
	Search(ctx context.Context, tx *gorm.DB, params SearchParams) ([]*types.Recommendation, int64, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Recommendation, error)
	Suggest(ctx context.Context, tx *gorm.DB, query string, limit int) ([]Suggestion, error)
	ListForMatching(ctx context.Context, tx *gorm.DB) ([]*types.Recommendation, error)
}

type recommendationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecommendationRepo(db *gorm.DB, baseLog *logger.Logger) RecommendationRepo {
	repoLog := baseLog.With("repo", "RecommendationRepo")
	return &recommendationRepo{db: db, log: repoLog}
}

func (rr *recommendationRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return rr.db
}

// preloaded attaches the associations the API and the matcher both need.
func preloaded(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Guideline").
		Preload("Guideline.Organization").
		Preload("Guideline.Organization.Country").
		Preload("Strength").
		Preload("EvidenceQuality").
		Preload("Topics")
}

func (rr *recommendationRepo) Search(ctx context.Context, tx *gorm.DB, params SearchParams) ([]*types.Recommendation, int64, error) {
	if params.Limit <= 0 {
		params.Limit = 20
	}
	if params.Limit > 100 {
		params.Limit = 100
	}
	if params.Page <= 0 {
		params.Page = 1
	}

	q := rr.handle(tx).WithContext(ctx).Model(&types.Recommendation{})

	if query := strings.TrimSpace(params.Query); query != "" {
		pattern := "%" + strings.ToLower(query) + "%"
		q = q.Where(
			"LOWER(recommendation.title) LIKE ? OR LOWER(recommendation.text) LIKE ? OR LOWER(recommendation.keywords) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if params.CountryCode != "" {
		q = q.
			Joins("JOIN guideline ON guideline.id = recommendation.guideline_id").
			Joins("JOIN organization ON organization.id = guideline.organization_id").
			Joins("JOIN country ON country.id = organization.country_id").
			Where("country.code = ?", params.CountryCode)
	}
	if params.TopicID != nil {
		q = q.
			Joins("JOIN recommendation_topic ON recommendation_topic.recommendation_id = recommendation.id").
			Where("recommendation_topic.topic_id = ?", *params.TopicID)
	}
	if params.StrengthID != nil {
		q = q.Where("recommendation.strength_id = ?", *params.StrengthID)
	}
	if params.EvidenceQualityID != nil {
		q = q.Where("recommendation.evidence_quality_id = ?", *params.EvidenceQualityID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []*types.Recommendation
	offset := (params.Page - 1) * params.Limit
	if err := preloaded(q).
		Order("recommendation.created_at DESC").
		Offset(offset).
		Limit(params.Limit).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (rr *recommendationRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Recommendation, error) {
	var result types.Recommendation
	if err := preloaded(rr.handle(tx).WithContext(ctx)).
		Where("recommendation.id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (rr *recommendationRepo) Suggest(ctx context.Context, tx *gorm.DB, query string, limit int) ([]Suggestion, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return []Suggestion{}, nil
	}
	if limit <= 0 {
		limit = 10
	}

	pattern := "%" + strings.ToLower(query) + "%"
	var rows []*types.Recommendation
	if err := rr.handle(tx).WithContext(ctx).
		Preload("Guideline.Organization.Country").
		Preload("Guideline.Organization").
		Preload("Guideline").
		Where("LOWER(title) LIKE ? OR LOWER(keywords) LIKE ?", pattern, pattern).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]Suggestion, 0, len(rows))
	for _, r := range rows {
		out = append(out, Suggestion{ID: r.ID, Title: r.Title, Country: r.CountryName()})
	}
	return out, nil
}

func (rr *recommendationRepo) ListForMatching(ctx context.Context, tx *gorm.DB) ([]*types.Recommendation, error) {
	var results []*types.Recommendation
	if err := preloaded(rr.handle(tx).WithContext(ctx)).
		Joins("JOIN guideline ON guideline.id = recommendation.guideline_id").
		Where("guideline.is_active = ?", true).
		Order("recommendation.created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
