package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openoralcare/oralhealth-backend/internal/logger"
	"github.com/openoralcare/oralhealth-backend/internal/types"
)

type CochraneRepo interface {
	ListReviews(ctx context.Context, tx *gorm.DB, page, limit int) ([]*types.CochraneReview, int64, error)
	GetReviewByCochraneID(ctx context.Context, tx *gorm.DB, cochraneID string) (*types.CochraneReview, error)
	GetSoFTables(ctx context.Context, tx *gorm.DB, reviewID uuid.UUID) ([]*types.SummaryOfFindings, error)
}

type cochraneRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCochraneRepo(db *gorm.DB, baseLog *logger.Logger) CochraneRepo {
	repoLog := baseLog.With("repo", "CochraneRepo")
	return &cochraneRepo{db: db, log: repoLog}
}

func (cr *cochraneRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return cr.db
}

func (cr *cochraneRepo) ListReviews(ctx context.Context, tx *gorm.DB, page, limit int) ([]*types.CochraneReview, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if page <= 0 {
		page = 1
	}

	q := cr.handle(tx).WithContext(ctx).Model(&types.CochraneReview{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []*types.CochraneReview
	if err := q.
		Order("last_updated DESC, title ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (cr *cochraneRepo) GetReviewByCochraneID(ctx context.Context, tx *gorm.DB, cochraneID string) (*types.CochraneReview, error) {
	var result types.CochraneReview
	if err := cr.handle(tx).WithContext(ctx).
		Where("cochrane_id = ?", cochraneID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *cochraneRepo) GetSoFTables(ctx context.Context, tx *gorm.DB, reviewID uuid.UUID) ([]*types.SummaryOfFindings, error) {
	var results []*types.SummaryOfFindings
	if err := cr.handle(tx).WithContext(ctx).
		Preload("Outcomes").
		Where("review_id = ?", reviewID).
		Order("comparison_title ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
