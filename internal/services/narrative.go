package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/openoralcare/oralhealth-backend/internal/logger"
	"github.com/openoralcare/oralhealth-backend/internal/matching"
	"github.com/openoralcare/oralhealth-backend/internal/types"
)

// Analysis is the six-section narrative accompanying a result set. Every
// field is always present; sections the model failed to produce are empty
// strings, never an error.
type Analysis struct {
	Full                 string `json:"full"`
	RiskAssessment       string `json:"risk_assessment"`
	PersonalizedAdvice   string `json:"personalized_advice"`
	PriorityActions      string `json:"priority_actions"`
	PreventiveStrategies string `json:"preventive_strategies"`
	ProfessionalCare     string `json:"professional_care"`
	ImportantNotes       string `json:"important_notes"`
}

// PriorityActionList splits the priority-actions section into at most five
// entries, trimming bullet markers.
func (a Analysis) PriorityActionList() []string {
	var actions []string
	for _, line := range strings.Split(a.PriorityActions, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "•-* ")
		if line == "" {
			continue
		}
		actions = append(actions, line)
		if len(actions) == 5 {
			break
		}
	}
	return actions
}

// narrativeResult carries the external-service outcome to the synthesizer:
// either generated text or the reason it is unavailable.
type narrativeResult struct {
	Text string
	Err  error
}

func (r narrativeResult) OK() bool { return r.Err == nil }

const (
	markerRiskAssessment       = "**RISK ASSESSMENT:**"
	markerPersonalizedAdvice   = "**PERSONALIZED ADVICE:**"
	markerPriorityActions      = "**PRIORITY ACTIONS:**"
	markerPreventiveStrategies = "**PREVENTIVE STRATEGIES:**"
	markerProfessionalCare     = "**PROFESSIONAL CARE:**"
	markerImportantNotes       = "**IMPORTANT NOTES:**"
)

// promptMatchLimit caps how many matches go into the prompt to bound its size.
const promptMatchLimit = 10

// NarrativeSynthesizer turns a profile and its top matches into the
// six-section analysis, preferring the external service and falling back to
// deterministic templates when it is absent or fails.
type NarrativeSynthesizer struct {
	log    *logger.Logger
	client NarrativeClient
}

func NewNarrativeSynthesizer(client NarrativeClient, baseLog *logger.Logger) *NarrativeSynthesizer {
	return &NarrativeSynthesizer{
		log:    baseLog.With("service", "NarrativeSynthesizer"),
		client: client,
	}
}

// Analyze never returns an error: external-service failure is recovered
// locally by deterministic synthesis and logged, not surfaced.
func (ns *NarrativeSynthesizer) Analyze(ctx context.Context, profile *types.UserProfile, matches []matching.ScoredCandidate) Analysis {
	result := ns.generate(ctx, profile, matches)
	if !result.OK() {
		ns.log.Warn("Narrative generation unavailable, using fallback synthesis", "error", result.Err)
		return ns.Fallback(profile, matches)
	}
	return ParseAnalysis(result.Text)
}

func (ns *NarrativeSynthesizer) generate(ctx context.Context, profile *types.UserProfile, matches []matching.ScoredCandidate) narrativeResult {
	if ns.client == nil {
		return narrativeResult{Err: fmt.Errorf("narrative client not configured")}
	}
	prompt := BuildAnalysisPrompt(profile, matches)
	text, err := ns.client.GenerateText(ctx, prompt)
	if err != nil {
		return narrativeResult{Err: err}
	}
	return narrativeResult{Text: text}
}

// BuildAnalysisPrompt assembles the structured prompt: profile summary plus a
// numbered list of the top matches.
func BuildAnalysisPrompt(profile *types.UserProfile, matches []matching.ScoredCandidate) string {
	var b strings.Builder

	b.WriteString("You are an expert dental professional providing personalized oral health advice. ")
	b.WriteString("Based on the user profile and evidence-based recommendations below, provide a comprehensive analysis.\n\n")

	b.WriteString("User Profile:\n")
	fmt.Fprintf(&b, "- Age: %s\n", profile.AgeGroup)
	fmt.Fprintf(&b, "- Location: %s\n", profile.LocationCountry)
	fmt.Fprintf(&b, "- Caries Risk: %s\n", profile.CariesRisk)
	fmt.Fprintf(&b, "- Gum Health: %s\n", profile.PeriodontalStatus)
	fmt.Fprintf(&b, "- Fluoride Exposure: %s\n", profile.FluorideExposure)
	fmt.Fprintf(&b, "- Special Conditions: %s\n", formatConditions(profile))
	fmt.Fprintf(&b, "- Oral Hygiene: Brushing %s, Flossing %s\n",
		orDefault(profile.BrushingFrequency, "not specified"),
		orDefault(profile.FlossingFrequency, "not specified"))
	fmt.Fprintf(&b, "- Diet: %s\n", orDefault(string(profile.DietSugarIntake), "not specified"))
	fmt.Fprintf(&b, "- Specific Concerns: %s\n", orDefault(profile.SpecificConcerns, "None specified"))
	fmt.Fprintf(&b, "- Medications: %s\n", orDefault(profile.Medications, "None specified"))

	b.WriteString("\nRelevant Evidence-Based Recommendations:\n")
	for i, m := range matches {
		if i == promptMatchLimit {
			break
		}
		rec := m.Recommendation
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, rec.Title)
		fmt.Fprintf(&b, "   Source: %s (%s)\n", orDefault(rec.OrganizationName(), "Unknown"), orDefault(rec.CountryName(), "Unknown"))
		fmt.Fprintf(&b, "   Evidence: %s\n", orDefault(rec.EvidenceQualityName(), "Not specified"))
		fmt.Fprintf(&b, "   Strength: %s\n", orDefault(rec.StrengthName(), "Not specified"))
		fmt.Fprintf(&b, "   Content: %s\n", truncate(rec.Text, 300))
	}

	b.WriteString("\nPlease provide your analysis in the following structured format:\n\n")
	b.WriteString(markerRiskAssessment + "\nAssess the user's overall oral health risk profile and identify key risk factors.\n\n")
	b.WriteString(markerPersonalizedAdvice + "\nProvide specific, actionable advice tailored to this user's profile, incorporating the evidence-based recommendations.\n\n")
	b.WriteString(markerPriorityActions + "\nList 3-5 priority actions the user should take, ranked by importance.\n\n")
	b.WriteString(markerPreventiveStrategies + "\nSuggest preventive measures specific to their risk factors and conditions.\n\n")
	b.WriteString(markerProfessionalCare + "\nRecommend when and what type of professional dental care they should seek.\n\n")
	b.WriteString(markerImportantNotes + "\nInclude any important considerations, contraindications, or warnings relevant to their profile.\n\n")
	b.WriteString("Keep your response practical, evidence-based, and easy to understand. ")
	b.WriteString("Focus on actionable advice that aligns with the provided evidence-based recommendations.\n")

	return b.String()
}

func formatConditions(profile *types.UserProfile) string {
	var conditions []string
	if profile.HasOrthodontics {
		conditions = append(conditions, "Orthodontic treatment")
	}
	if profile.HasDentalImplants {
		conditions = append(conditions, "Dental implants")
	}
	if profile.HasDiabetes {
		conditions = append(conditions, "Diabetes")
	}
	if profile.IsPregnant {
		conditions = append(conditions, "Pregnancy")
	}
	if profile.HasDryMouth {
		conditions = append(conditions, "Dry mouth")
	}
	if len(conditions) == 0 {
		return "None"
	}
	return strings.Join(conditions, ", ")
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// ParseAnalysis scans the response line by line: a marker switches the active
// section and following lines accumulate into it until the next marker.
// Missing markers simply leave their sections empty.
func ParseAnalysis(text string) Analysis {
	sections := map[string]*strings.Builder{
		markerRiskAssessment:       {},
		markerPersonalizedAdvice:   {},
		markerPriorityActions:      {},
		markerPreventiveStrategies: {},
		markerProfessionalCare:     {},
		markerImportantNotes:       {},
	}
	markers := []string{
		markerRiskAssessment,
		markerPersonalizedAdvice,
		markerPriorityActions,
		markerPreventiveStrategies,
		markerProfessionalCare,
		markerImportantNotes,
	}

	var active *strings.Builder
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		matched := false
		for _, marker := range markers {
			if strings.Contains(line, marker) {
				active = sections[marker]
				matched = true
				break
			}
		}
		if matched || active == nil {
			continue
		}
		active.WriteString(line)
		active.WriteString("\n")
	}

	section := func(marker string) string {
		return strings.TrimSpace(sections[marker].String())
	}
	return Analysis{
		Full:                 text,
		RiskAssessment:       section(markerRiskAssessment),
		PersonalizedAdvice:   section(markerPersonalizedAdvice),
		PriorityActions:      section(markerPriorityActions),
		PreventiveStrategies: section(markerPreventiveStrategies),
		ProfessionalCare:     section(markerProfessionalCare),
		ImportantNotes:       section(markerImportantNotes),
	}
}

// Fallback synthesizes the six sections from templates driven by the
// profile's risk factors, so results degrade gracefully without the external
// service.
func (ns *NarrativeSynthesizer) Fallback(profile *types.UserProfile, matches []matching.ScoredCandidate) Analysis {
	var riskFactors []string
	if profile.CariesRisk == types.RiskHigh {
		riskFactors = append(riskFactors, "high caries risk")
	}
	if profile.HasPeriodontalDisease() {
		riskFactors = append(riskFactors, "gum disease")
	}
	if profile.HasDiabetes {
		riskFactors = append(riskFactors, "diabetes")
	}
	if profile.DietSugarIntake == types.RiskHigh {
		riskFactors = append(riskFactors, "high sugar diet")
	}

	riskText := "Your oral health risk appears to be low to moderate."
	if len(riskFactors) > 0 {
		riskText = fmt.Sprintf("Based on your profile, you have %d identified risk factors: %s.",
			len(riskFactors), strings.Join(riskFactors, ", "))
	}

	advicePoints := []string{
		"Follow evidence-based recommendations from reputable dental organizations",
		"Maintain regular oral hygiene practices",
		"Consider professional dental care based on your risk factors",
	}
	if profile.CariesRisk == types.RiskHigh {
		advicePoints = append(advicePoints, "Focus on fluoride use and dietary modifications")
	}
	if profile.PeriodontalStatus != types.PerioHealthy {
		advicePoints = append(advicePoints, "Pay special attention to gum health and interdental cleaning")
	}

	var advice strings.Builder
	for _, point := range advicePoints {
		fmt.Fprintf(&advice, "• %s\n", point)
	}
	adviceText := strings.TrimSpace(advice.String())

	full := fmt.Sprintf("Analysis based on %d evidence-based recommendations.\n\n%s\n\nKey recommendations:\n%s",
		len(matches), riskText, adviceText)

	return Analysis{
		Full:                 full,
		RiskAssessment:       riskText,
		PersonalizedAdvice:   adviceText,
		PriorityActions:      "Review the evidence-based recommendations below and consult with a dental professional for personalized guidance.",
		PreventiveStrategies: "Follow standard oral hygiene practices and address specific risk factors identified in your profile.",
		ProfessionalCare:     "Regular dental check-ups are recommended, with frequency based on your risk assessment.",
		ImportantNotes:       "This analysis is based on general guidelines. Always consult with a qualified dental professional for personalized care.",
	}
}
