package matching

import (
	"strings"
	"testing"

	"github.com/openoralcare/oralhealth-backend/internal/types"
)

func TestReasoningClauses(t *testing.T) {
	profile := highRiskUKProfile()
	rec := testRec(
		"Fluoride use for high risk adults in the UK",
		"Use fluoride toothpaste.",
		"United Kingdom", "NICE", "Strong", "High",
	)
	got := Reasoning(profile, rec, 1.0)

	for _, want := range []string{
		"Guideline from United Kingdom",
		"Age-appropriate (adult)",
		"Addresses high caries risk",
		"High-quality evidence",
		"(Relevance score: 1.00)",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("Reasoning=%q missing %q", got, want)
		}
	}
	if !strings.Contains(got, "; ") {
		t.Fatalf("Reasoning=%q, want clauses joined with semicolons", got)
	}
}

func TestReasoningAgeKeywordPriority(t *testing.T) {
	profile := &types.UserProfile{AgeGroup: types.AgeGroup6To12, LocationCountry: "unmapped", PeriodontalStatus: types.PerioHealthy}
	rec := testRec("Advice for child and adult patients", "Notes.", "Japan", "JDA", "", "")
	got := Reasoning(profile, rec, 0.3)
	if !strings.Contains(got, "Age-appropriate (child)") {
		t.Fatalf("Reasoning=%q, want first keyword in priority order (child)", got)
	}
	if strings.Contains(got, "Age-appropriate (adult)") {
		t.Fatalf("Reasoning=%q, only the first age keyword should be reported", got)
	}
}

func TestReasoningDefaultClause(t *testing.T) {
	profile := &types.UserProfile{AgeGroup: types.AgeGroup31To50, LocationCountry: "unmapped", PeriodontalStatus: types.PerioHealthy}
	rec := testRec("Veneer bonding", "Cosmetic technique.", "Japan", "JDA", "", "")
	got := Reasoning(profile, rec, 0.15)
	want := "General oral health recommendation (Relevance score: 0.15)"
	if got != want {
		t.Fatalf("Reasoning=%q, want %q", got, want)
	}
}
