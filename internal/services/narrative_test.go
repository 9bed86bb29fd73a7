package services

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/openoralcare/oralhealth-backend/internal/logger"
	"github.com/openoralcare/oralhealth-backend/internal/matching"
	"github.com/openoralcare/oralhealth-backend/internal/types"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

type stubClient struct {
	text string
	err  error
}

func (s *stubClient) GenerateText(_ context.Context, _ string) (string, error) {
	return s.text, s.err
}

func basicProfile() *types.UserProfile {
	return &types.UserProfile{
		AgeGroup:          types.AgeGroup31To50,
		LocationCountry:   "United Kingdom",
		CariesRisk:        types.RiskHigh,
		PeriodontalStatus: types.PerioGingivitis,
		FluorideExposure:  types.FluorideToothpaste,
		DietSugarIntake:   types.RiskHigh,
		HasDiabetes:       true,
	}
}

func TestParseAnalysisSplitsSections(t *testing.T) {
	text := strings.Join([]string{
		"**RISK ASSESSMENT:**",
		"Elevated risk overall.",
		"",
		"**PERSONALIZED ADVICE:**",
		"Brush twice daily.",
		"Use fluoride toothpaste.",
		"**PRIORITY ACTIONS:**",
		"• See a dentist",
		"• Cut sugary snacks",
		"**PREVENTIVE STRATEGIES:**",
		"Interdental cleaning.",
		"**PROFESSIONAL CARE:**",
		"Six-month recalls.",
		"**IMPORTANT NOTES:**",
		"Not a diagnosis.",
	}, "\n")

	a := ParseAnalysis(text)
	if a.Full != text {
		t.Errorf("Full not preserved")
	}
	if a.RiskAssessment != "Elevated risk overall." {
		t.Errorf("RiskAssessment = %q", a.RiskAssessment)
	}
	if want := "Brush twice daily.\nUse fluoride toothpaste."; a.PersonalizedAdvice != want {
		t.Errorf("PersonalizedAdvice = %q, want %q", a.PersonalizedAdvice, want)
	}
	if want := "• See a dentist\n• Cut sugary snacks"; a.PriorityActions != want {
		t.Errorf("PriorityActions = %q, want %q", a.PriorityActions, want)
	}
	if a.PreventiveStrategies != "Interdental cleaning." {
		t.Errorf("PreventiveStrategies = %q", a.PreventiveStrategies)
	}
	if a.ProfessionalCare != "Six-month recalls." {
		t.Errorf("ProfessionalCare = %q", a.ProfessionalCare)
	}
	if a.ImportantNotes != "Not a diagnosis." {
		t.Errorf("ImportantNotes = %q", a.ImportantNotes)
	}
}

func TestParseAnalysisMissingMarkersLeaveSectionsEmpty(t *testing.T) {
	a := ParseAnalysis("**RISK ASSESSMENT:**\nSome risk.\nNo other markers here.")
	if a.RiskAssessment != "Some risk.\nNo other markers here." {
		t.Errorf("RiskAssessment = %q", a.RiskAssessment)
	}
	for name, got := range map[string]string{
		"PersonalizedAdvice":   a.PersonalizedAdvice,
		"PriorityActions":      a.PriorityActions,
		"PreventiveStrategies": a.PreventiveStrategies,
		"ProfessionalCare":     a.ProfessionalCare,
		"ImportantNotes":       a.ImportantNotes,
	} {
		if got != "" {
			t.Errorf("%s = %q, want empty", name, got)
		}
	}
}

func TestParseAnalysisIgnoresPreambleBeforeFirstMarker(t *testing.T) {
	a := ParseAnalysis("Here is your analysis:\n**PERSONALIZED ADVICE:**\nFloss daily.")
	if a.PersonalizedAdvice != "Floss daily." {
		t.Errorf("PersonalizedAdvice = %q", a.PersonalizedAdvice)
	}
	if a.RiskAssessment != "" {
		t.Errorf("RiskAssessment = %q, want empty", a.RiskAssessment)
	}
}

func TestPriorityActionListTrimsBulletsAndCapsAtFive(t *testing.T) {
	a := Analysis{PriorityActions: "• one\n- two\n* three\n\n  four  \nfive\nsix"}
	got := a.PriorityActionList()
	want := []string{"one", "two", "three", "four", "five"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PriorityActionList() = %v, want %v", got, want)
	}
}

func TestPriorityActionListEmptySection(t *testing.T) {
	a := Analysis{}
	if got := a.PriorityActionList(); got != nil {
		t.Errorf("PriorityActionList() = %v, want nil", got)
	}
}

func TestAnalyzeUsesClientText(t *testing.T) {
	ns := NewNarrativeSynthesizer(&stubClient{
		text: "**RISK ASSESSMENT:**\nModerate risk.",
	}, testLogger(t))

	a := ns.Analyze(context.Background(), basicProfile(), nil)
	if a.RiskAssessment != "Moderate risk." {
		t.Errorf("RiskAssessment = %q", a.RiskAssessment)
	}
}

func TestAnalyzeFallsBackOnClientError(t *testing.T) {
	profile := basicProfile()
	ns := NewNarrativeSynthesizer(&stubClient{err: errors.New("deadline exceeded")}, testLogger(t))

	got := ns.Analyze(context.Background(), profile, nil)
	want := ns.Fallback(profile, nil)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Analyze() = %+v, want fallback %+v", got, want)
	}
}

func TestAnalyzeFallsBackWithoutClient(t *testing.T) {
	profile := basicProfile()
	ns := NewNarrativeSynthesizer(nil, testLogger(t))

	got := ns.Analyze(context.Background(), profile, nil)
	want := ns.Fallback(profile, nil)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Analyze() without client = %+v, want fallback %+v", got, want)
	}
}

func TestFallbackNamesRiskFactors(t *testing.T) {
	ns := NewNarrativeSynthesizer(nil, testLogger(t))

	a := ns.Fallback(basicProfile(), nil)
	for _, factor := range []string{"high caries risk", "gum disease", "diabetes", "high sugar diet"} {
		if !strings.Contains(a.RiskAssessment, factor) {
			t.Errorf("RiskAssessment missing %q: %q", factor, a.RiskAssessment)
		}
	}
	if !strings.Contains(a.RiskAssessment, "4 identified risk factors") {
		t.Errorf("RiskAssessment missing count: %q", a.RiskAssessment)
	}
}

func TestFallbackLowRiskProfile(t *testing.T) {
	ns := NewNarrativeSynthesizer(nil, testLogger(t))
	profile := &types.UserProfile{
		AgeGroup:          types.AgeGroup18To30,
		LocationCountry:   "Sweden",
		CariesRisk:        types.RiskLow,
		PeriodontalStatus: types.PerioHealthy,
		FluorideExposure:  types.FluorideWater,
	}

	a := ns.Fallback(profile, nil)
	if !strings.Contains(a.RiskAssessment, "low to moderate") {
		t.Errorf("RiskAssessment = %q", a.RiskAssessment)
	}
	if strings.Contains(a.PersonalizedAdvice, "fluoride use and dietary modifications") {
		t.Errorf("low-risk advice should not include the high-caries point: %q", a.PersonalizedAdvice)
	}
}

func TestBuildAnalysisPromptIncludesProfileAndMatches(t *testing.T) {
	profile := basicProfile()
	matches := []matching.ScoredCandidate{
		{
			Recommendation: &types.Recommendation{
				Title: "Fluoride varnish application",
				Text:  "Apply fluoride varnish twice yearly.",
			},
			Score: 0.85,
		},
	}

	prompt := BuildAnalysisPrompt(profile, matches)
	for _, fragment := range []string{
		"31-50",
		"United Kingdom",
		"Fluoride varnish application",
		markerRiskAssessment,
		markerImportantNotes,
	} {
		if !strings.Contains(prompt, fragment) {
			t.Errorf("prompt missing %q", fragment)
		}
	}
}
