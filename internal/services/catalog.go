package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/openoralcare/oralhealth-backend/internal/logger"
	"github.com/openoralcare/oralhealth-backend/internal/repos"
	"github.com/openoralcare/oralhealth-backend/internal/types"
)

// RecommendationPage is one page of browse/search results.
type RecommendationPage struct {
	Recommendations []*types.Recommendation `json:"recommendations"`
	Total           int64                   `json:"total"`
	Page            int                     `json:"page"`
	Limit           int                     `json:"limit"`
}

// CochraneReviewPage is one page of Cochrane reviews.
type CochraneReviewPage struct {
	Reviews []*types.CochraneReview `json:"reviews"`
	Total   int64                   `json:"total"`
	Page    int                     `json:"page"`
	Limit   int                     `json:"limit"`
}

// CochraneReviewDetail bundles a review with its Summary-of-Findings tables.
type CochraneReviewDetail struct {
	Review    *types.CochraneReview      `json:"review"`
	SoFTables []*types.SummaryOfFindings `json:"sof_tables"`
}

// FilterVocabularies lists the values the browse UI can filter on.
type FilterVocabularies struct {
	Topics            []*types.Topic                  `json:"topics"`
	Countries         []*types.Country                `json:"countries"`
	Strengths         []*types.RecommendationStrength `json:"strengths"`
	EvidenceQualities []*types.EvidenceQuality        `json:"evidence_qualities"`
}

// CatalogService is the read-only browse/search surface over the corpus.
type CatalogService interface {
	SearchRecommendations(ctx context.Context, params repos.SearchParams) (*RecommendationPage, error)
	GetRecommendation(ctx context.Context, id uuid.UUID) (*types.Recommendation, error)
	Suggest(ctx context.Context, query string) ([]repos.Suggestion, error)
	Vocabularies(ctx context.Context) (*FilterVocabularies, error)
	ListCochraneReviews(ctx context.Context, page, limit int) (*CochraneReviewPage, error)
	GetCochraneReview(ctx context.Context, cochraneID string) (*CochraneReviewDetail, error)
}

type catalogService struct {
	log          *logger.Logger
	recRepo      repos.RecommendationRepo
	vocabRepo    repos.VocabRepo
	cochraneRepo repos.CochraneRepo
}

func NewCatalogService(
	baseLog *logger.Logger,
	recRepo repos.RecommendationRepo,
	vocabRepo repos.VocabRepo,
	cochraneRepo repos.CochraneRepo,
) CatalogService {
	return &catalogService{
		log:          baseLog.With("service", "CatalogService"),
		recRepo:      recRepo,
		vocabRepo:    vocabRepo,
		cochraneRepo: cochraneRepo,
	}
}

func (cs *catalogService) SearchRecommendations(ctx context.Context, params repos.SearchParams) (*RecommendationPage, error) {
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Limit <= 0 {
		params.Limit = 20
	}
	if params.Limit > 100 {
		params.Limit = 100
	}
	results, total, err := cs.recRepo.Search(ctx, nil, params)
	if err != nil {
		return nil, err
	}
	return &RecommendationPage{
		Recommendations: results,
		Total:           total,
		Page:            params.Page,
		Limit:           params.Limit,
	}, nil
}

func (cs *catalogService) GetRecommendation(ctx context.Context, id uuid.UUID) (*types.Recommendation, error) {
	return cs.recRepo.GetByID(ctx, nil, id)
}

func (cs *catalogService) Suggest(ctx context.Context, query string) ([]repos.Suggestion, error) {
	return cs.recRepo.Suggest(ctx, nil, query, 10)
}

func (cs *catalogService) Vocabularies(ctx context.Context) (*FilterVocabularies, error) {
	topics, err := cs.vocabRepo.ListTopics(ctx, nil)
	if err != nil {
		return nil, err
	}
	countries, err := cs.vocabRepo.ListCountries(ctx, nil)
	if err != nil {
		return nil, err
	}
	strengths, err := cs.vocabRepo.ListStrengths(ctx, nil)
	if err != nil {
		return nil, err
	}
	qualities, err := cs.vocabRepo.ListEvidenceQualities(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &FilterVocabularies{
		Topics:            topics,
		Countries:         countries,
		Strengths:         strengths,
		EvidenceQualities: qualities,
	}, nil
}

func (cs *catalogService) ListCochraneReviews(ctx context.Context, page, limit int) (*CochraneReviewPage, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	reviews, total, err := cs.cochraneRepo.ListReviews(ctx, nil, page, limit)
	if err != nil {
		return nil, err
	}
	return &CochraneReviewPage{Reviews: reviews, Total: total, Page: page, Limit: limit}, nil
}

func (cs *catalogService) GetCochraneReview(ctx context.Context, cochraneID string) (*CochraneReviewDetail, error) {
	review, err := cs.cochraneRepo.GetReviewByCochraneID(ctx, nil, cochraneID)
	if err != nil {
		return nil, err
	}
	tables, err := cs.cochraneRepo.GetSoFTables(ctx, nil, review.ID)
	if err != nil {
		return nil, err
	}
	return &CochraneReviewDetail{Review: review, SoFTables: tables}, nil
}
