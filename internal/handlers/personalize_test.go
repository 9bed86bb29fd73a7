package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/openoralcare/oralhealth-backend/internal/logger"
	"github.com/openoralcare/oralhealth-backend/internal/repos"
	"github.com/openoralcare/oralhealth-backend/internal/services"
	"github.com/openoralcare/oralhealth-backend/internal/types"
)

type noNarrative struct{}

func (noNarrative) GenerateText(context.Context, string) (string, error) {
	return "", context.DeadlineExceeded
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

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
	seedHandlersCorpus(t, db)

	log := testLogger(t)
	profileRepo := repos.NewUserProfileRepo(db, log)
	recRepo := repos.NewRecommendationRepo(db, log)
	vocabRepo := repos.NewVocabRepo(db, log)
	cochraneRepo := repos.NewCochraneRepo(db, log)
	sessionRepo := repos.NewSessionRepo(db, log)
	matchRepo := repos.NewMatchRepo(db, log)

	synthesizer := services.NewNarrativeSynthesizer(noNarrative{}, log)
	persSvc := services.NewPersonalizationService(log, profileRepo, recRepo, sessionRepo, matchRepo, synthesizer, 0)
	catalogSvc := services.NewCatalogService(log, recRepo, vocabRepo, cochraneRepo)

	catalogHandler := NewCatalogHandler(log, catalogSvc)
	persHandler := NewPersonalizeHandler(log, persSvc)
	feedbackHandler := NewFeedbackHandler(log)

	router := gin.New()
	api := router.Group("/api")
	api.GET("/recommendations", catalogHandler.ListRecommendations)
	api.GET("/search", catalogHandler.Suggest)
	api.POST("/personalize", persHandler.Personalize)
	api.GET("/personalize/:sessionID", persHandler.GetResults)
	api.GET("/personalize/:sessionID/status", persHandler.GetStatus)
	api.POST("/feedback", feedbackHandler.SubmitFeedback)
	return router
}

func seedHandlersCorpus(t *testing.T, db *gorm.DB) {
	t.Helper()
	country := &types.Country{Name: "United Kingdom", Code: "GB"}
	if err := db.Create(country).Error; err != nil {
		t.Fatalf("seed country: %v", err)
	}
	org := &types.Organization{Name: "NICE", CountryID: country.ID}
	if err := db.Create(org).Error; err != nil {
		t.Fatalf("seed organization: %v", err)
	}
	guideline := &types.Guideline{Title: "Delivering better oral health", OrganizationID: org.ID, PublicationYear: 2021, IsActive: true}
	if err := db.Create(guideline).Error; err != nil {
		t.Fatalf("seed guideline: %v", err)
	}
	rec := &types.Recommendation{
		Title:       "Fluoride toothpaste for high caries risk patients",
		Text:        "Prescribe higher concentration toothpaste for patients at high risk.",
		GuidelineID: guideline.ID,
	}
	if err := db.Create(rec).Error; err != nil {
		t.Fatalf("seed recommendation: %v", err)
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const validIntake = `{
	"age_group": "31-50",
	"location_country": "Germany",
	"caries_risk": "high",
	"periodontal_status": "healthy",
	"fluoride_exposure": "toothpaste",
	"diet_sugar_intake": "moderate"
}`

func TestPersonalizeEndToEnd(t *testing.T) {
	router := newTestRouter(t)

	resp := doJSON(t, router, http.MethodPost, "/api/personalize", validIntake)
	if resp.Code != http.StatusOK {
		t.Fatalf("POST /api/personalize = %d, body %s", resp.Code, resp.Body.String())
	}
	var intake struct {
		SessionID string `json:"session_id"`
		Status    string `json:"status"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &intake); err != nil {
		t.Fatalf("unmarshal intake response: %v", err)
	}
	if intake.Status != string(types.SessionCompleted) {
		t.Errorf("status = %q, want completed", intake.Status)
	}
	if intake.SessionID == "" {
		t.Fatal("missing session_id")
	}

	resp = doJSON(t, router, http.MethodGet, "/api/personalize/"+intake.SessionID, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("GET results = %d, body %s", resp.Code, resp.Body.String())
	}
	var results struct {
		Session struct {
			Status         string `json:"status"`
			RiskAssessment string `json:"risk_assessment"`
		} `json:"session"`
		Matches []struct {
			RelevanceScore float64 `json:"relevance_score"`
		} `json:"matches"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &results); err != nil {
		t.Fatalf("unmarshal results: %v", err)
	}
	if results.Session.Status != string(types.SessionCompleted) {
		t.Errorf("session status = %q", results.Session.Status)
	}
	if results.Session.RiskAssessment == "" {
		t.Error("risk assessment missing; fallback narrative should be stored")
	}
	if len(results.Matches) != 1 {
		t.Errorf("matches = %d, want 1", len(results.Matches))
	}

	resp = doJSON(t, router, http.MethodGet, "/api/personalize/"+intake.SessionID+"/status", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("GET status = %d", resp.Code)
	}
	var status struct {
		Status     string `json:"status"`
		MatchCount int64  `json:"match_count"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &status); err != nil {
		t.Fatalf("unmarshal status: %v", err)
	}
	if status.Status != string(types.SessionCompleted) || status.MatchCount != 1 {
		t.Errorf("status = %+v, want completed with 1 match", status)
	}
}

func TestPersonalizeRejectsInvalidEnums(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		name string
		body string
	}{
		{name: "bad_age_group", body: `{"age_group":"200-300","location_country":"UK","caries_risk":"high","periodontal_status":"healthy","fluoride_exposure":"toothpaste"}`},
		{name: "bad_caries_risk", body: `{"age_group":"31-50","location_country":"UK","caries_risk":"extreme","periodontal_status":"healthy","fluoride_exposure":"toothpaste"}`},
		{name: "missing_country", body: `{"age_group":"31-50","caries_risk":"high","periodontal_status":"healthy","fluoride_exposure":"toothpaste"}`},
		{name: "bad_fluoride", body: `{"age_group":"31-50","location_country":"UK","caries_risk":"high","periodontal_status":"healthy","fluoride_exposure":"tablets"}`},
		{name: "not_json", body: `{]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doJSON(t, router, http.MethodPost, "/api/personalize", tc.body)
			if resp.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400; body %s", resp.Code, resp.Body.String())
			}
		})
	}
}

func TestGetResultsInvalidSessionID(t *testing.T) {
	router := newTestRouter(t)

	resp := doJSON(t, router, http.MethodGet, "/api/personalize/not-a-uuid", "")
	if resp.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.Code)
	}

	resp = doJSON(t, router, http.MethodGet, "/api/personalize/00000000-0000-0000-0000-0000000000aa", "")
	if resp.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.Code)
	}
}

func TestSuggestShortQueryReturnsEmptyList(t *testing.T) {
	router := newTestRouter(t)

	resp := doJSON(t, router, http.MethodGet, "/api/search?q=f", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}
	var body struct {
		Suggestions []repos.Suggestion `json:"suggestions"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(body.Suggestions) != 0 {
		t.Errorf("suggestions = %d, want 0", len(body.Suggestions))
	}
}

func TestFeedbackValidation(t *testing.T) {
	router := newTestRouter(t)

	resp := doJSON(t, router, http.MethodPost, "/api/feedback", `{"helpful":true}`)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("missing ids: status = %d, want 400", resp.Code)
	}

	resp = doJSON(t, router, http.MethodPost, "/api/feedback",
		`{"session_id":"7f0f4e4e-6f0e-4e6e-9a4e-2b9a4e2b9a4e","recommendation_id":"8a1b2c3d-4e5f-4a6b-8c9d-0e1f2a3b4c5d","helpful":true,"comment":"useful"}`)
	if resp.Code != http.StatusOK {
		t.Errorf("valid feedback: status = %d, body %s", resp.Code, resp.Body.String())
	}
}

func TestListRecommendationsReturnsSeededCorpus(t *testing.T) {
	router := newTestRouter(t)

	resp := doJSON(t, router, http.MethodGet, "/api/recommendations?q=fluoride", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}
	var page struct {
		Recommendations []types.Recommendation `json:"recommendations"`
		Total           int64                  `json:"total"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &page); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if page.Total != 1 || len(page.Recommendations) != 1 {
		t.Errorf("got %d recommendations (total %d), want 1", len(page.Recommendations), page.Total)
	}
}
