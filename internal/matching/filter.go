package matching

import (
	"strings"

	"github.com/openoralcare/oralhealth-backend/internal/types"
)

// FilterCandidates narrows the corpus to recommendations plausibly relevant
// to the profile. Each step widens with OR inside itself and the steps are
// intersected, so the net effect favours false positives over false
// negatives: omitting relevant guidance is worse than including marginal
// guidance.
func FilterCandidates(profile *types.UserProfile, corpus []*types.Recommendation) []*types.Recommendation {
	out := make([]*types.Recommendation, 0, len(corpus))
	for _, rec := range corpus {
		if rec == nil {
			continue
		}
		if !passesGeographicFilter(profile, rec) {
			continue
		}
		if !passesAgeFilter(profile, rec) {
			continue
		}
		if !passesConditionFilter(profile, rec) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func passesGeographicFilter(profile *types.UserProfile, rec *types.Recommendation) bool {
	bucket := bucketFor(profile.LocationCountry)
	if bucket == nil {
		// Unknown location: keep everything rather than guess.
		return true
	}
	country := strings.ToLower(rec.CountryName())
	if containsAny(country, bucket.CountryTerms) {
		return true
	}
	org := strings.ToLower(rec.OrganizationName())
	return strings.Contains(org, "who") || strings.Contains(org, "international")
}

func passesAgeFilter(profile *types.UserProfile, rec *types.Recommendation) bool {
	// Recommendations without a stated target population are age-neutral.
	if strings.TrimSpace(rec.TargetPopulation) == "" {
		return true
	}
	keywords, ok := filterAgeKeywords[profile.AgeGroup]
	if !ok {
		keywords = []string{"adult"}
	}
	text := strings.ToLower(rec.Title + " " + rec.Text + " " + rec.TargetPopulation)
	return containsAny(text, keywords)
}

func passesConditionFilter(profile *types.UserProfile, rec *types.Recommendation) bool {
	preds := activeConditionPredicates(profile)
	if len(preds) == 0 {
		return true
	}
	title := strings.ToLower(rec.Title)
	text := strings.ToLower(rec.Text)
	target := strings.ToLower(rec.TargetPopulation)
	for _, pred := range preds {
		if pred(title, text, target) {
			return true
		}
	}
	// Generic oral-health advice passes regardless of conditions.
	return containsAny(title, genericTitleTerms)
}

type conditionPredicate func(title, text, target string) bool

func activeConditionPredicates(profile *types.UserProfile) []conditionPredicate {
	var preds []conditionPredicate
	if profile.CariesRisk == types.RiskHigh {
		preds = append(preds, func(title, text, _ string) bool {
			return containsAny(title, []string{"caries", "decay", "fluoride"}) ||
				strings.Contains(text, "high risk")
		})
	}
	if profile.HasPeriodontalDisease() {
		preds = append(preds, func(title, _, _ string) bool {
			return containsAny(title, []string{"periodontal", "gum", "gingivitis", "periodontitis"})
		})
	}
	if profile.HasOrthodontics {
		preds = append(preds, func(title, text, _ string) bool {
			return containsAny(title, orthodonticTerms) || strings.Contains(text, "orthodontic")
		})
	}
	if profile.HasDiabetes {
		preds = append(preds, func(_, text, _ string) bool {
			return containsAny(text, diabetesTerms)
		})
	}
	if profile.IsPregnant {
		preds = append(preds, func(_, text, target string) bool {
			return containsAny(text, pregnancyTerms) || strings.Contains(target, "pregnant")
		})
	}
	if profile.HasDryMouth {
		preds = append(preds, func(_, text, _ string) bool {
			return containsAny(text, dryMouthTerms)
		})
	}
	return preds
}
