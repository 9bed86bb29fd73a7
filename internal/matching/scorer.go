package matching

import (
	"strings"

	"github.com/openoralcare/oralhealth-backend/internal/types"
)

// Score bonuses and thresholds. The final score is capped at 1.0 and never
// floored: the age-mismatch penalty can take a contribution negative, and the
// discard threshold removes anything that earned no meaningful bonus.
const (
	baseScore        = 0.1
	maxScore         = 1.0
	DiscardThreshold = 0.1

	ageMatchBonus      = 0.2
	ageMismatchPenalty = -0.1

	cariesBonus      = 0.3
	periodontalBonus = 0.3
	conditionBonus   = 0.25

	geoCountryBonus  = 0.3
	geoUKFamilyBonus = 0.25
	geoGlobalBonus   = 0.15

	fluorideLowExposureBonus  = 0.2
	fluorideProfessionalBonus = 0.1
	dietBonus                 = 0.2
)

// Score computes the relevance of one candidate for a profile along the
// independent dimensions: evidence quality, recommendation strength, age
// match, condition match, geographic match, and risk-factor alignment.
func Score(profile *types.UserProfile, rec *types.Recommendation) float64 {
	score := baseScore

	score += tierBonus(rec.EvidenceQualityName(), evidenceQualityTiers)
	score += tierBonus(rec.StrengthName(), strengthTiers)
	score += ageScore(profile, rec)
	score += conditionScore(profile, rec)
	score += geographicScore(profile, rec)
	score += riskAlignmentScore(profile, rec)

	if score > maxScore {
		score = maxScore
	}
	return score
}

// tierBonus awards the first matching tier only.
func tierBonus(name string, tiers []keywordBonus) float64 {
	if name == "" {
		return 0
	}
	lower := strings.ToLower(name)
	for _, tier := range tiers {
		if strings.Contains(lower, tier.Keyword) {
			return tier.Bonus
		}
	}
	return 0
}

func ageScore(profile *types.UserProfile, rec *types.Recommendation) float64 {
	text := candidateText(rec)
	own := scoreAgeKeywords[profile.AgeGroup]
	for _, kw := range own {
		if strings.Contains(text, kw) {
			return ageMatchBonus
		}
	}
	ownSet := make(map[string]bool, len(own))
	for _, kw := range own {
		ownSet[kw] = true
	}
	for _, group := range ageGroupOrder {
		if group == profile.AgeGroup {
			continue
		}
		for _, kw := range scoreAgeKeywords[group] {
			// "adult" appears across brackets and is too generic to penalize.
			if kw == "adult" || ownSet[kw] {
				continue
			}
			if strings.Contains(text, kw) {
				return ageMismatchPenalty
			}
		}
	}
	return 0
}

func conditionScore(profile *types.UserProfile, rec *types.Recommendation) float64 {
	score := 0.0
	text := candidateText(rec)

	if profile.CariesRisk == types.RiskHigh && containsAny(text, cariesTerms) {
		score += cariesBonus
	}
	if profile.HasPeriodontalDisease() && containsAny(text, periodontalTerms) {
		score += periodontalBonus
	}

	conditions := []struct {
		active bool
		terms  []string
	}{
		{profile.HasOrthodontics, orthodonticTerms},
		{profile.HasDiabetes, diabetesTerms},
		{profile.IsPregnant, pregnancyTerms},
		{profile.HasDryMouth, dryMouthTerms},
	}
	for _, c := range conditions {
		if c.active && containsAny(text, c.terms) {
			score += conditionBonus
		}
	}
	return score
}

func geographicScore(profile *types.UserProfile, rec *types.Recommendation) float64 {
	userCountry := strings.ToLower(strings.TrimSpace(profile.LocationCountry))
	recCountry := strings.ToLower(rec.CountryName())

	if userCountry != "" && recCountry != "" {
		if strings.Contains(recCountry, userCountry) || strings.Contains(userCountry, recCountry) {
			return geoCountryBonus
		}
	}
	if containsAny(userCountry, ukFamilyTerms) && containsAny(recCountry, ukFamilyTerms) {
		return geoUKFamilyBonus
	}
	org := strings.ToLower(rec.OrganizationName())
	if containsAny(org, globalOrgTerms) {
		return geoGlobalBonus
	}
	return 0
}

func riskAlignmentScore(profile *types.UserProfile, rec *types.Recommendation) float64 {
	score := 0.0
	text := candidateText(rec)

	if strings.Contains(text, "fluoride") {
		switch profile.FluorideExposure {
		case types.FluorideNone, types.FluorideWater:
			score += fluorideLowExposureBonus
		case types.FluorideProfessional:
			score += fluorideProfessionalBonus
		}
	}
	if profile.DietSugarIntake == types.RiskHigh && containsAny(text, dietTerms) {
		score += dietBonus
	}
	return score
}
