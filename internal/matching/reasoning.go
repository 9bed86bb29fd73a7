package matching

import (
	"fmt"
	"strings"

	"github.com/openoralcare/oralhealth-backend/internal/types"
)

// Age keywords scanned for the reasoning clause, in fixed priority order.
var reasoningAgeKeywords = []string{"infant", "child", "adolescent", "adult", "senior"}

// Reasoning builds the human-readable explanation for one match: short
// clauses in a fixed order, joined with "; ", with the score appended to two
// decimal places.
func Reasoning(profile *types.UserProfile, rec *types.Recommendation, score float64) string {
	var reasons []string
	text := candidateText(rec)

	userCountry := strings.ToLower(strings.TrimSpace(profile.LocationCountry))
	recCountry := rec.CountryName()
	if userCountry != "" && recCountry != "" && strings.Contains(strings.ToLower(recCountry), userCountry) {
		reasons = append(reasons, fmt.Sprintf("Guideline from %s", recCountry))
	}

	for _, kw := range reasoningAgeKeywords {
		if strings.Contains(text, kw) {
			reasons = append(reasons, fmt.Sprintf("Age-appropriate (%s)", kw))
			break
		}
	}

	if profile.CariesRisk == types.RiskHigh && containsAny(text, []string{"caries", "decay", "fluoride"}) {
		reasons = append(reasons, "Addresses high caries risk")
	}
	if profile.PeriodontalStatus != types.PerioHealthy && containsAny(text, []string{"periodontal", "gum"}) {
		reasons = append(reasons, "Relevant to gum health concerns")
	}

	if quality := rec.EvidenceQualityName(); quality != "" && strings.Contains(strings.ToLower(quality), "high") {
		reasons = append(reasons, "High-quality evidence")
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "General oral health recommendation")
	}

	return strings.Join(reasons, "; ") + fmt.Sprintf(" (Relevance score: %.2f)", score)
}
