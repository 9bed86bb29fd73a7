package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/openoralcare/oralhealth-backend/internal/logger"
	"github.com/openoralcare/oralhealth-backend/internal/matching"
	"github.com/openoralcare/oralhealth-backend/internal/repos"
	"github.com/openoralcare/oralhealth-backend/internal/types"
)

// SessionResults is the full result surface for one processed profile.
type SessionResults struct {
	Profile        *types.UserProfile                                  `json:"profile"`
	Session        *types.RecommendationSession                        `json:"session"`
	Matches        []*types.RecommendationMatch                        `json:"matches"`
	PriorityGroups map[types.PriorityLevel][]*types.RecommendationMatch `json:"priority_groups"`
}

// SessionStatusInfo is the lightweight polling view of a session.
type SessionStatusInfo struct {
	Status            types.SessionStatus `json:"status"`
	MatchCount        int64               `json:"match_count"`
	ProcessingSeconds float64             `json:"processing_seconds"`
	ErrorMessage      string              `json:"error_message,omitempty"`
}

type PersonalizationService interface {
	// Intake stores a new profile and runs the pipeline for it.
	Intake(ctx context.Context, profile *types.UserProfile) (*types.UserProfile, *types.RecommendationSession, error)
	// ProcessProfile runs the whole pipeline for a stored profile: filter,
	// score, rank, persist matches, synthesize the narrative. Pipeline errors
	// mark the session and propagate; narrative failures do not.
	ProcessProfile(ctx context.Context, profile *types.UserProfile) (*types.RecommendationSession, error)
	GetResults(ctx context.Context, sessionID uuid.UUID) (*SessionResults, error)
	GetStatus(ctx context.Context, sessionID uuid.UUID) (*SessionStatusInfo, error)
}

type personalizationService struct {
	log         *logger.Logger
	profileRepo repos.UserProfileRepo
	recRepo     repos.RecommendationRepo
	sessionRepo repos.SessionRepo
	matchRepo   repos.MatchRepo
	synthesizer *NarrativeSynthesizer
	matchLimit  int
}

func NewPersonalizationService(
	baseLog *logger.Logger,
	profileRepo repos.UserProfileRepo,
	recRepo repos.RecommendationRepo,
	sessionRepo repos.SessionRepo,
	matchRepo repos.MatchRepo,
	synthesizer *NarrativeSynthesizer,
	matchLimit int,
) PersonalizationService {
	if matchLimit <= 0 {
		matchLimit = matching.DefaultLimit
	}
	return &personalizationService{
		log:         baseLog.With("service", "PersonalizationService"),
		profileRepo: profileRepo,
		recRepo:     recRepo,
		sessionRepo: sessionRepo,
		matchRepo:   matchRepo,
		synthesizer: synthesizer,
		matchLimit:  matchLimit,
	}
}

func (ps *personalizationService) Intake(ctx context.Context, profile *types.UserProfile) (*types.UserProfile, *types.RecommendationSession, error) {
	stored, err := ps.profileRepo.Create(ctx, nil, profile)
	if err != nil {
		return nil, nil, err
	}
	session, err := ps.ProcessProfile(ctx, stored)
	return stored, session, err
}

func (ps *personalizationService) ProcessProfile(ctx context.Context, profile *types.UserProfile) (*types.RecommendationSession, error) {
	start := time.Now()

	session, err := ps.sessionRepo.Create(ctx, nil, &types.RecommendationSession{
		UserProfileID: profile.ID,
		Status:        types.SessionPending,
	})
	if err != nil {
		return nil, err
	}

	session.Status = types.SessionProcessing
	if err := ps.sessionRepo.Update(ctx, nil, session); err != nil {
		return nil, err
	}

	corpus, err := ps.recRepo.ListForMatching(ctx, nil)
	if err != nil {
		return session, ps.markError(ctx, session, start, err)
	}

	scored := matching.Match(profile, corpus, ps.matchLimit)

	matches := make([]*types.RecommendationMatch, 0, len(scored))
	for i, sc := range scored {
		matches = append(matches, &types.RecommendationMatch{
			SessionID:        session.ID,
			RecommendationID: sc.Recommendation.ID,
			RelevanceScore:   sc.Score,
			PriorityLevel:    matching.PriorityFor(sc.Score),
			Reasoning:        matching.Reasoning(profile, sc.Recommendation, sc.Score),
			Position:         i,
		})
	}
	if _, err := ps.matchRepo.Create(ctx, nil, matches); err != nil {
		return session, ps.markError(ctx, session, start, err)
	}

	analysis := ps.synthesizer.Analyze(ctx, profile, scored)

	actions := analysis.PriorityActionList()
	if actions == nil {
		actions = []string{}
	}
	actionsJSON, err := json.Marshal(actions)
	if err != nil {
		return session, ps.markError(ctx, session, start, err)
	}

	session.Analysis = analysis.Full
	session.RiskAssessment = analysis.RiskAssessment
	session.PersonalizedAdvice = analysis.PersonalizedAdvice
	session.PreventiveStrategies = analysis.PreventiveStrategies
	session.ProfessionalCare = analysis.ProfessionalCare
	session.ImportantNotes = analysis.ImportantNotes
	session.PriorityActions = actionsJSON
	session.Status = types.SessionCompleted
	session.ProcessingSeconds = time.Since(start).Seconds()

	if err := ps.sessionRepo.Update(ctx, nil, session); err != nil {
		return session, err
	}

	ps.log.Info("Processed personalization session",
		"session_id", session.ID.String(),
		"profile_id", profile.ID.String(),
		"matches", len(matches),
		"seconds", session.ProcessingSeconds,
	)
	return session, nil
}

// markError records the failure on the session and returns the original
// error; callers surface a generic message while the session keeps the
// diagnostic text.
func (ps *personalizationService) markError(ctx context.Context, session *types.RecommendationSession, start time.Time, cause error) error {
	session.Status = types.SessionError
	session.ErrorMessage = cause.Error()
	session.ProcessingSeconds = time.Since(start).Seconds()
	if err := ps.sessionRepo.Update(ctx, nil, session); err != nil {
		ps.log.Error("Failed to record session error", "session_id", session.ID.String(), "error", err)
	}
	ps.log.Error("Personalization run failed", "session_id", session.ID.String(), "error", cause)
	return cause
}

func (ps *personalizationService) GetResults(ctx context.Context, sessionID uuid.UUID) (*SessionResults, error) {
	profile, err := ps.profileRepo.GetBySessionID(ctx, nil, sessionID)
	if err != nil {
		return nil, err
	}
	session, err := ps.sessionRepo.GetLatestByProfileID(ctx, nil, profile.ID)
	if err != nil {
		return nil, err
	}
	matches, err := ps.matchRepo.GetBySessionID(ctx, nil, session.ID)
	if err != nil {
		return nil, err
	}

	groups := map[types.PriorityLevel][]*types.RecommendationMatch{
		types.PriorityCritical: {},
		types.PriorityHigh:     {},
		types.PriorityMedium:   {},
		types.PriorityLow:      {},
	}
	for _, m := range matches {
		groups[m.PriorityLevel] = append(groups[m.PriorityLevel], m)
	}

	return &SessionResults{
		Profile:        profile,
		Session:        session,
		Matches:        matches,
		PriorityGroups: groups,
	}, nil
}

func (ps *personalizationService) GetStatus(ctx context.Context, sessionID uuid.UUID) (*SessionStatusInfo, error) {
	profile, err := ps.profileRepo.GetBySessionID(ctx, nil, sessionID)
	if err != nil {
		return nil, err
	}
	session, err := ps.sessionRepo.GetLatestByProfileID(ctx, nil, profile.ID)
	if err != nil {
		return nil, err
	}
	count, err := ps.matchRepo.CountBySessionID(ctx, nil, session.ID)
	if err != nil {
		return nil, err
	}
	info := &SessionStatusInfo{
		Status:            session.Status,
		MatchCount:        count,
		ProcessingSeconds: session.ProcessingSeconds,
	}
	if session.Status == types.SessionError {
		info.ErrorMessage = session.ErrorMessage
	}
	return info, nil
}
