package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/openoralcare/oralhealth-backend/internal/repos"
	"github.com/openoralcare/oralhealth-backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&types.Country{},
		&types.Organization{},
		&types.Guideline{},
		&types.Chapter{},
		&types.Topic{},
		&types.RecommendationStrength{},
		&types.EvidenceQuality{},
		&types.Recommendation{},
		&types.Reference{},
		&types.UserProfile{},
		&types.RecommendationSession{},
		&types.RecommendationMatch{},
	)
	if err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// seedCorpus stores one strong candidate and one generic one that scores at
// the base only and is discarded during ranking.
func seedCorpus(t *testing.T, db *gorm.DB) {
	t.Helper()

	country := &types.Country{Name: "United Kingdom", Code: "GB"}
	if err := db.Create(country).Error; err != nil {
		t.Fatalf("seed country: %v", err)
	}
	org := &types.Organization{Name: "NICE", CountryID: country.ID}
	if err := db.Create(org).Error; err != nil {
		t.Fatalf("seed organization: %v", err)
	}
	guideline := &types.Guideline{
		Title:           "Oral health promotion",
		OrganizationID:  org.ID,
		PublicationYear: 2021,
		IsActive:        true,
	}
	if err := db.Create(guideline).Error; err != nil {
		t.Fatalf("seed guideline: %v", err)
	}
	strength := &types.RecommendationStrength{Name: "Strong", Code: "strong"}
	quality := &types.EvidenceQuality{Name: "High", Grade: "high"}
	if err := db.Create(strength).Error; err != nil {
		t.Fatalf("seed strength: %v", err)
	}
	if err := db.Create(quality).Error; err != nil {
		t.Fatalf("seed quality: %v", err)
	}

	recs := []*types.Recommendation{
		{
			Title:             "Fluoride toothpaste for high caries risk patients",
			Text:              "Prescribe higher concentration toothpaste for patients at high risk.",
			GuidelineID:       guideline.ID,
			StrengthID:        &strength.ID,
			EvidenceQualityID: &quality.ID,
		},
		{
			Title:       "Oral health advice",
			Text:        "General advice applicable to everyone.",
			GuidelineID: guideline.ID,
		},
	}
	for _, rec := range recs {
		if err := db.Create(rec).Error; err != nil {
			t.Fatalf("seed recommendation: %v", err)
		}
	}
}

// germanProfile sits outside every geographic bucket, so the whole corpus
// passes the location filter and nothing earns a geographic bonus.
func germanProfile() *types.UserProfile {
	return &types.UserProfile{
		AgeGroup:          types.AgeGroup31To50,
		LocationCountry:   "Germany",
		CariesRisk:        types.RiskHigh,
		PeriodontalStatus: types.PerioHealthy,
		FluorideExposure:  types.FluorideToothpaste,
		DietSugarIntake:   types.RiskModerate,
	}
}

func newTestService(t *testing.T, db *gorm.DB, client NarrativeClient) (PersonalizationService, repos.SessionRepo) {
	t.Helper()
	log := testLogger(t)
	profileRepo := repos.NewUserProfileRepo(db, log)
	recRepo := repos.NewRecommendationRepo(db, log)
	sessionRepo := repos.NewSessionRepo(db, log)
	matchRepo := repos.NewMatchRepo(db, log)
	synthesizer := NewNarrativeSynthesizer(client, log)
	svc := NewPersonalizationService(log, profileRepo, recRepo, sessionRepo, matchRepo, synthesizer, 0)
	return svc, sessionRepo
}

func TestIntakeCompletesSessionWithFallbackNarrative(t *testing.T) {
	db := newTestDB(t)
	seedCorpus(t, db)

	// Narrative generation fails; the run must still complete.
	svc, _ := newTestService(t, db, &stubClient{err: errors.New("context deadline exceeded")})
	ctx := context.Background()

	profile, session, err := svc.Intake(ctx, germanProfile())
	if err != nil {
		t.Fatalf("Intake: %v", err)
	}
	if profile.SessionID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("profile SessionID not assigned")
	}
	if session.Status != types.SessionCompleted {
		t.Fatalf("session status = %s, want %s", session.Status, types.SessionCompleted)
	}
	if session.ProcessingSeconds <= 0 {
		t.Errorf("ProcessingSeconds = %f, want > 0", session.ProcessingSeconds)
	}
	if session.RiskAssessment == "" || session.PersonalizedAdvice == "" {
		t.Error("fallback narrative sections not stored")
	}

	var actions []string
	if err := json.Unmarshal(session.PriorityActions, &actions); err != nil {
		t.Fatalf("unmarshal priority actions: %v", err)
	}
	if len(actions) != 1 {
		t.Errorf("priority actions = %v, want one fallback entry", actions)
	}
}

func TestIntakePersistsRankedMatchesAndDiscardsBaseScores(t *testing.T) {
	db := newTestDB(t)
	seedCorpus(t, db)

	svc, _ := newTestService(t, db, &stubClient{text: "**RISK ASSESSMENT:**\nModerate."})
	ctx := context.Background()

	profile, _, err := svc.Intake(ctx, germanProfile())
	if err != nil {
		t.Fatalf("Intake: %v", err)
	}

	results, err := svc.GetResults(ctx, profile.SessionID)
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}
	// Only the fluoride candidate survives; the generic one stays at the base
	// score and is discarded.
	if len(results.Matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(results.Matches))
	}
	m := results.Matches[0]
	if m.Position != 0 {
		t.Errorf("position = %d, want 0", m.Position)
	}
	// base 0.1 + evidence 0.3 + strength 0.25 + caries terms 0.3
	if !approxScore(m.RelevanceScore, 0.95) {
		t.Errorf("relevance score = %f, want 0.95", m.RelevanceScore)
	}
	if m.PriorityLevel != types.PriorityCritical {
		t.Errorf("priority = %s, want %s", m.PriorityLevel, types.PriorityCritical)
	}
	if m.Reasoning == "" {
		t.Error("reasoning is empty")
	}
	if m.Recommendation == nil || m.Recommendation.Title != "Fluoride toothpaste for high caries risk patients" {
		t.Errorf("unexpected matched recommendation: %+v", m.Recommendation)
	}
	if got := len(results.PriorityGroups[types.PriorityCritical]); got != 1 {
		t.Errorf("critical group size = %d, want 1", got)
	}
	if results.Profile == nil || results.Profile.SessionID != profile.SessionID {
		t.Error("results profile missing or mismatched")
	}
}

func TestGetStatusAfterCompletedRun(t *testing.T) {
	db := newTestDB(t)
	seedCorpus(t, db)

	svc, _ := newTestService(t, db, &stubClient{text: "**RISK ASSESSMENT:**\nModerate."})
	ctx := context.Background()

	profile, _, err := svc.Intake(ctx, germanProfile())
	if err != nil {
		t.Fatalf("Intake: %v", err)
	}

	status, err := svc.GetStatus(ctx, profile.SessionID)
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if status.Status != types.SessionCompleted {
		t.Errorf("status = %s, want %s", status.Status, types.SessionCompleted)
	}
	if status.MatchCount != 1 {
		t.Errorf("match count = %d, want 1", status.MatchCount)
	}
	if status.ErrorMessage != "" {
		t.Errorf("error message = %q, want empty", status.ErrorMessage)
	}
}

func TestPipelineFailureMarksSessionError(t *testing.T) {
	db := newTestDB(t)
	seedCorpus(t, db)

	svc, sessionRepo := newTestService(t, db, &stubClient{text: "ignored"})
	ctx := context.Background()

	// Corpus loading fails once the table is gone.
	if err := db.Migrator().DropTable(&types.Recommendation{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	_, session, err := svc.Intake(ctx, germanProfile())
	if err == nil {
		t.Fatal("Intake succeeded, want pipeline error")
	}
	if session == nil {
		t.Fatal("session is nil")
	}

	stored, gerr := sessionRepo.GetByID(ctx, nil, session.ID)
	if gerr != nil {
		t.Fatalf("GetByID: %v", gerr)
	}
	if stored.Status != types.SessionError {
		t.Errorf("status = %s, want %s", stored.Status, types.SessionError)
	}
	if stored.ErrorMessage == "" {
		t.Error("error message not recorded")
	}
}

func approxScore(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-9
}
