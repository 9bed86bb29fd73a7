package repos

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openoralcare/oralhealth-backend/internal/logger"
	"github.com/openoralcare/oralhealth-backend/internal/types"
)

type SessionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, session *types.RecommendationSession) (*types.RecommendationSession, error)
	Update(ctx context.Context, tx *gorm.DB, session *types.RecommendationSession) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.RecommendationSession, error)
	GetLatestByProfileID(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) (*types.RecommendationSession, error)
}

type sessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSessionRepo(db *gorm.DB, baseLog *logger.Logger) SessionRepo {
	repoLog := baseLog.With("repo", "SessionRepo")
	return &sessionRepo{db: db, log: repoLog}
}

func (sr *sessionRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return sr.db
}

func (sr *sessionRepo) Create(ctx context.Context, tx *gorm.DB, session *types.RecommendationSession) (*types.RecommendationSession, error) {
	if err := sr.handle(tx).WithContext(ctx).Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

// Update persists the session. Terminal sessions are write-protected: once a
// run completes or errors its record never changes again.
func (sr *sessionRepo) Update(ctx context.Context, tx *gorm.DB, session *types.RecommendationSession) error {
	var current types.RecommendationSession
	if err := sr.handle(tx).WithContext(ctx).
		Select("status").
		Where("id = ?", session.ID).
		First(&current).Error; err != nil {
		return err
	}
	if current.Status.Terminal() && current.Status != session.Status {
		return fmt.Errorf("session %s is terminal (%s), refusing transition to %s", session.ID, current.Status, session.Status)
	}
	return sr.handle(tx).WithContext(ctx).Save(session).Error
}

func (sr *sessionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.RecommendationSession, error) {
	var result types.RecommendationSession
	if err := sr.handle(tx).WithContext(ctx).
		Preload("UserProfile").
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (sr *sessionRepo) GetLatestByProfileID(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) (*types.RecommendationSession, error) {
	var result types.RecommendationSession
	if err := sr.handle(tx).WithContext(ctx).
		Preload("UserProfile").
		Where("user_profile_id = ?", profileID).
		Order("created_at DESC").
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}
